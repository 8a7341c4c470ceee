package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/dave/jobwiz-sub002/internal/app"
	"github.com/dave/jobwiz-sub002/internal/config"
	"github.com/dave/jobwiz-sub002/internal/review"
)

const (
	formatMarkdown = "md"
	formatJSON     = "json"
)

func runSample(e *env, args []string) int {
	var (
		in                  inputFlags
		configPath          string
		percent             float64
		resultsPath         string
		out                 string
		format              string
		noPrioritizeFlagged bool
		noPrioritizeNew     bool
	)
	fs := newFlagSet(e, "sample", "--dir DIR [--percent N] [--format md|json] [--out FILE]")
	in.register(fs)
	fs.StringVar(&configPath, "config", "", "YAML config file (default $CONTENTQA_CONFIG)")
	fs.Float64Var(&percent, "percent", review.DefaultPercent, "percentage of modules to sample")
	fs.StringVar(&resultsPath, "results", "", "review results file (default from config)")
	fs.StringVar(&out, "out", "", "write the queue to this file instead of stdout")
	fs.StringVar(&format, "format", formatMarkdown, "output format: md or json")
	fs.BoolVar(&noPrioritizeFlagged, "no-prioritize-flagged", false, "do not rank flagged modules first")
	fs.BoolVar(&noPrioritizeNew, "no-prioritize-new", false, "do not rank unreviewed companies first")
	if code, ok := parse(e, fs, args); !ok {
		return code
	}
	if format != formatMarkdown && format != formatJSON {
		return fail(e, "sample", fmt.Errorf("unknown format %q", format))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fail(e, "sample", err)
	}
	sc := app.SamplingConfig(cfg)
	if flagWasSet(fs, "percent") {
		sc.Percent = percent
	}
	if sc.Percent <= 0 || sc.Percent > 100 {
		return fail(e, "sample", fmt.Errorf("percent must be in (0, 100], got %g", sc.Percent))
	}
	sc.PrioritizeFlagged = !noPrioritizeFlagged
	sc.PrioritizeNew = !noPrioritizeNew

	if resultsPath == "" {
		resultsPath = cfg.Paths.ReviewResultsPath
	}
	reviewed := review.ReviewedCompanies(review.LoadReviewResults(resultsPath))

	paths, err := in.paths()
	if err != nil {
		return fail(e, "sample", err)
	}
	queue, err := review.GenerateReviewQueue(paths, reviewed, sc, e.now().UTC())
	if err != nil {
		return fail(e, "sample", err)
	}

	var body []byte
	if format == formatJSON {
		body, err = review.FormatJSON(queue)
		if err != nil {
			return fail(e, "sample", err)
		}
		body = append(body, '\n')
	} else {
		body = []byte(review.FormatMarkdown(queue))
	}

	if out == "" {
		_, _ = e.stdout.Write(body)
		return exitOK
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fail(e, "sample", err)
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fail(e, "sample", err)
	}
	fmt.Fprintf(e.stdout, "Sampled %d of %d modules into %s\n", queue.SampledCount, queue.TotalModules, out)
	return exitOK
}

func runReviewRecord(e *env, args []string) int {
	var (
		configPath  string
		resultsPath string
		itemID      string
		moduleID    string
		reviewer    string
		status      string
		issues      stringList
		notes       string
		minutes     int
	)
	fs := newFlagSet(e, "review-record", "--module ID --reviewer NAME --status pass|fail")
	fs.StringVar(&configPath, "config", "", "YAML config file (default $CONTENTQA_CONFIG)")
	fs.StringVar(&resultsPath, "results", "", "review results file (default from config)")
	fs.StringVar(&itemID, "item", "", "review queue item id (generated when empty)")
	fs.StringVar(&moduleID, "module", "", "reviewed module id")
	fs.StringVar(&reviewer, "reviewer", "", "reviewer name")
	fs.StringVar(&status, "status", "", "pass or fail")
	fs.Var(&issues, "issue", "issue found (repeatable)")
	fs.StringVar(&notes, "notes", "", "free-form notes")
	fs.IntVar(&minutes, "minutes", 0, "time spent in minutes")
	if code, ok := parse(e, fs, args); !ok {
		return code
	}

	if moduleID == "" || reviewer == "" {
		return fail(e, "review-record", errors.New("--module and --reviewer are required"))
	}
	st, err := review.ParseStatus(status)
	if err != nil {
		return fail(e, "review-record", err)
	}
	if minutes < 0 {
		return fail(e, "review-record", errors.New("--minutes must not be negative"))
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fail(e, "review-record", err)
	}
	if resultsPath == "" {
		resultsPath = cfg.Paths.ReviewResultsPath
	}
	if itemID == "" {
		itemID = uuid.NewString()
	}

	result := review.Result{
		ItemID:           itemID,
		ModuleID:         moduleID,
		Reviewer:         reviewer,
		Status:           st,
		Date:             e.now().UTC().Format(review.DateFormat),
		Issues:           issues,
		Notes:            notes,
		TimeSpentMinutes: minutes,
	}
	if err := review.RecordReviewResult(resultsPath, result); err != nil {
		return fail(e, "review-record", err)
	}
	fmt.Fprintf(e.stdout, "Recorded %s review of %s by %s in %s\n", st, moduleID, reviewer, resultsPath)
	return exitOK
}
