package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dave/jobwiz-sub002/internal/app"
	"github.com/dave/jobwiz-sub002/internal/config"
	"github.com/dave/jobwiz-sub002/internal/usecase"
)

func runOrchestrate(e *env, args []string) int {
	var (
		configPath string
		company    string
		roles      string
		batch      bool
		top        int
		maxRetries int
		noSkip     bool
		dryRun     bool
		worker     string
		fast       bool
		asJSON     bool
	)
	fs := newFlagSet(e, "orchestrate", "--company SLUG [--roles a,b] | --batch [--top N]")
	fs.StringVar(&configPath, "config", "", "YAML config file (default $CONTENTQA_CONFIG)")
	fs.StringVar(&company, "company", "", "company slug to generate")
	fs.StringVar(&roles, "roles", "", "comma-separated role slugs")
	fs.BoolVar(&batch, "batch", false, "process the top companies from the search volume data")
	fs.IntVar(&top, "top", 0, "number of companies in batch mode (default from config)")
	fs.IntVar(&maxRetries, "max-retries", usecase.DefaultMaxRetries, "retries per unit of work")
	fs.BoolVar(&noSkip, "no-skip", false, "reprocess units already in the completion ledger")
	fs.BoolVar(&dryRun, "dry-run", false, "run every step but do not store content or record completion")
	fs.StringVar(&worker, "worker", "", "worker name recorded in the ledger")
	fs.BoolVar(&fast, "fast", false, "skip step and retry delays")
	fs.BoolVar(&asJSON, "json", false, "print the run summary as JSON")
	if code, ok := parse(e, fs, args); !ok {
		return code
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fail(e, "orchestrate", err)
	}
	if fast {
		cfg.Pipeline.FastMode = true
	}

	oc := app.OrchestrateConfig(cfg)
	oc.Company = strings.TrimSpace(company)
	oc.Roles = splitList(roles)
	oc.Batch = batch
	oc.DryRun = dryRun
	oc.SkipExisting = !noSkip
	if top > 0 {
		oc.Top = top
	}
	if flagWasSet(fs, "max-retries") {
		if maxRetries < 0 {
			return fail(e, "orchestrate", errors.New("--max-retries must not be negative"))
		}
		oc.MaxRetries = maxRetries
	}
	if worker != "" {
		oc.Worker = worker
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, e.logger(cfg))
	if err != nil {
		return fail(e, "orchestrate", err)
	}
	defer application.Close()

	summary, err := application.Orchestrate(ctx, oc)
	if err != nil {
		if errors.Is(err, usecase.ErrNoWork) {
			fmt.Fprintln(e.stderr, "contentqa orchestrate: pass --company or --batch")
			return exitFail
		}
		return fail(e, "orchestrate", err)
	}

	if asJSON {
		if err := e.writeJSON(summary); err != nil {
			return fail(e, "orchestrate", err)
		}
	} else {
		printRunSummary(e, summary)
	}

	if !summary.Success {
		return exitFail
	}
	return exitOK
}

func printRunSummary(e *env, s usecase.RunSummary) {
	p := e.printer()
	verdict := "PASS"
	if !s.Success {
		verdict = "FAIL"
	}
	title := "orchestration"
	if s.DryRun {
		title += " (dry run)"
	}
	p.Banner(verdict, title)
	p.Line("Processed: %d  Skipped: %d  Failed: %d", s.Processed, s.Skipped, s.Failed)
	if len(s.Units) == 0 {
		return
	}

	rows := make([][]string, 0, len(s.Units))
	for _, u := range s.Units {
		note := u.ModuleID
		if u.Error != "" {
			note = u.Error
		} else if u.Flagged {
			note += " (review needed)"
		}
		attempts := ""
		if u.Attempts > 0 {
			attempts = fmt.Sprint(u.Attempts)
		}
		rows = append(rows, []string{u.Item.Key(), string(u.Status), attempts, note})
	}
	p.Table([]string{"Unit", "Status", "Attempts", "Detail"}, rows, maxCellWidth)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
