package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dave/jobwiz-sub002/internal/app"
	"github.com/dave/jobwiz-sub002/internal/config"
	"github.com/dave/jobwiz-sub002/internal/console"
	"github.com/dave/jobwiz-sub002/internal/quality"
	"github.com/dave/jobwiz-sub002/internal/quality/facts"
	"github.com/dave/jobwiz-sub002/internal/quality/readability"
	"github.com/dave/jobwiz-sub002/internal/quality/repetition"
	"github.com/dave/jobwiz-sub002/internal/review"
	"github.com/dave/jobwiz-sub002/internal/validation"
)

const maxCellWidth = 60

// analysisFlags are shared by the analyzer commands. Each command registers
// the subset it understands.
type analysisFlags struct {
	inputFlags
	config     string
	threshold  int
	min        float64
	max        float64
	perSection bool
	json       bool
}

func (f *analysisFlags) registerCommon(fs *flag.FlagSet) {
	f.inputFlags.register(fs)
	fs.StringVar(&f.config, "config", "", "YAML config file (default $CONTENTQA_CONFIG)")
	fs.BoolVar(&f.json, "json", false, "print the result as JSON")
}

func (f *analysisFlags) registerRepetition(fs *flag.FlagSet) {
	fs.IntVar(&f.threshold, "threshold", repetition.DefaultThreshold, "occurrences before a phrase is reported")
}

func (f *analysisFlags) registerReadability(fs *flag.FlagSet) {
	fs.Float64Var(&f.min, "min", readability.DefaultMinScore, "lowest acceptable Flesch-Kincaid score")
	fs.Float64Var(&f.max, "max", readability.DefaultMaxScore, "highest acceptable Flesch-Kincaid score")
	fs.BoolVar(&f.perSection, "per-section", false, "also score each section")
}

// options starts from config and applies any flag the user set.
func (f *analysisFlags) options(fs *flag.FlagSet, cfg config.Config) quality.Options {
	opts := app.QualityOptions(cfg)
	if flagWasSet(fs, "threshold") {
		opts.Repetition.Threshold = f.threshold
	}
	if flagWasSet(fs, "min") {
		opts.Readability.MinScore = f.min
	}
	if flagWasSet(fs, "max") {
		opts.Readability.MaxScore = f.max
	}
	if flagWasSet(fs, "per-section") {
		opts.PerSection = f.perSection
	}
	return opts
}

func (f *analysisFlags) prepare(fs *flag.FlagSet) ([]review.ModuleFile, quality.Options, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, quality.Options{}, err
	}
	files, err := f.load()
	if err != nil {
		return nil, quality.Options{}, err
	}
	return files, f.options(fs, cfg), nil
}

func runQuality(e *env, args []string) int {
	var f analysisFlags
	fs := newFlagSet(e, "quality", "--input FILE [--input FILE] [--dir DIR]")
	f.registerCommon(fs)
	f.registerRepetition(fs)
	f.registerReadability(fs)
	if code, ok := parse(e, fs, args); !ok {
		return code
	}

	files, opts, err := f.prepare(fs)
	if err != nil {
		return fail(e, "quality", err)
	}
	result := quality.Check(review.Modules(files), opts)

	if f.json {
		if err := e.writeJSON(result); err != nil {
			return fail(e, "quality", err)
		}
	} else {
		e.printer().Banner(result.Verdict(), strings.Join(result.ModuleIDs, ", "))
		fmt.Fprint(e.stdout, quality.Summary(result))
	}

	if !result.Overall.Pass {
		return exitFail
	}
	return exitOK
}

func runReadability(e *env, args []string) int {
	var f analysisFlags
	fs := newFlagSet(e, "readability", "--input FILE [--min N] [--max N] [--per-section]")
	f.registerCommon(fs)
	f.registerReadability(fs)
	if code, ok := parse(e, fs, args); !ok {
		return code
	}

	files, opts, err := f.prepare(fs)
	if err != nil {
		return fail(e, "readability", err)
	}
	modules := review.Modules(files)
	result := readability.Analyze(modules, opts.Readability, opts.PerSection)

	if f.json {
		if err := e.writeJSON(result); err != nil {
			return fail(e, "readability", err)
		}
	} else {
		p := e.printer()
		p.Banner(string(result.Status), moduleIDs(modules))
		p.Line("Score: %.2f (target %.0f-%.0f)", result.Score, opts.Readability.MinScore, opts.Readability.MaxScore)
		p.Muted("%d words, %d sentences, %d syllables", result.WordCount, result.SentenceCount, result.SyllableCount)
		if len(result.SectionScores) > 0 {
			rows := make([][]string, 0, len(result.SectionScores))
			for _, s := range result.SectionScores {
				rows = append(rows, []string{
					s.ModuleID + "/" + s.SectionID, s.SectionTitle,
					strconv.FormatFloat(s.Score, 'f', 2, 64), string(s.Status),
				})
			}
			p.Heading("Sections")
			p.Table([]string{"Section", "Title", "Score", "Status"}, rows, maxCellWidth)
		}
	}

	if !result.Pass() {
		return exitFail
	}
	return exitOK
}

func runRepetition(e *env, args []string) int {
	var f analysisFlags
	fs := newFlagSet(e, "repetition", "--input FILE [--threshold N]")
	f.registerCommon(fs)
	f.registerRepetition(fs)
	if code, ok := parse(e, fs, args); !ok {
		return code
	}

	files, opts, err := f.prepare(fs)
	if err != nil {
		return fail(e, "repetition", err)
	}
	modules := review.Modules(files)
	result := repetition.Detect(modules, opts.Repetition)

	if f.json {
		if err := e.writeJSON(result); err != nil {
			return fail(e, "repetition", err)
		}
	} else {
		p := e.printer()
		verdict := "PASS"
		if !result.Pass {
			verdict = "FAIL"
		}
		p.Banner(verdict, moduleIDs(modules))
		p.Muted("%d unique phrases checked", result.UniquePhrases)
		printPhrases(p, "AI phrases", result.AIPhrases)
		printPhrases(p, "Repeated phrases", result.RepeatedPhrases)
	}

	if !result.Pass {
		return exitFail
	}
	return exitOK
}

func printPhrases(p *console.Printer, title string, phrases []repetition.RepeatedPhrase) {
	if len(phrases) == 0 {
		return
	}
	rows := make([][]string, 0, len(phrases))
	for _, ph := range phrases {
		locs := make([]string, 0, len(ph.Locations))
		for _, loc := range ph.Locations {
			locs = append(locs, loc.String())
		}
		rows = append(rows, []string{ph.Phrase, strconv.Itoa(ph.Count), strings.Join(locs, ", ")})
	}
	p.Heading(title)
	p.Table([]string{"Phrase", "Count", "Locations"}, rows, maxCellWidth)
}

func runFacts(e *env, args []string) int {
	var (
		f   analysisFlags
		out string
	)
	fs := newFlagSet(e, "facts", "--input FILE [--out DIR]")
	f.registerCommon(fs)
	fs.StringVar(&out, "out", "", "directory for Markdown verification checklists")
	if code, ok := parse(e, fs, args); !ok {
		return code
	}

	files, _, err := f.prepare(fs)
	if err != nil {
		return fail(e, "facts", err)
	}
	reports := facts.ExtractModules(review.Modules(files))

	if out != "" {
		if err := writeChecklists(e, out, reports); err != nil {
			return fail(e, "facts", err)
		}
	}

	if f.json {
		if err := e.writeJSON(reports); err != nil {
			return fail(e, "facts", err)
		}
		return exitOK
	}

	p := e.printer()
	for _, r := range reports {
		verdict := "PASS"
		if len(r.Facts) > 0 {
			verdict = string(quality.StatusReviewNeeded)
		}
		p.Banner(verdict, r.ModuleID)
		p.Muted("%d facts, confidence %.0f", len(r.Facts), r.Confidence)
		if len(r.Facts) == 0 {
			continue
		}
		rows := make([][]string, 0, len(r.Facts))
		for _, fact := range r.Facts {
			rows = append(rows, []string{facts.TypeLabel(fact.Type), string(facts.PriorityOf(fact.Type)), fact.Value, fact.Location.String()})
		}
		p.Table([]string{"Type", "Priority", "Value", "Location"}, rows, maxCellWidth)
	}
	return exitOK
}

func writeChecklists(e *env, dir string, reports []facts.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create checklist dir: %w", err)
	}
	now := e.now()
	for _, r := range reports {
		path := filepath.Join(dir, facts.ChecklistFileName(r))
		if err := os.WriteFile(path, []byte(facts.RenderChecklist(r, now)), 0o644); err != nil {
			return fmt.Errorf("write checklist %s: %w", path, err)
		}
		fmt.Fprintf(e.stderr, "wrote %s\n", path)
	}
	return nil
}

func runValidate(e *env, args []string) int {
	var (
		f        analysisFlags
		company  string
		role     string
		maxWords int
	)
	fs := newFlagSet(e, "validate", "--input FILE [--company SLUG] [--role SLUG]")
	f.registerCommon(fs)
	fs.StringVar(&company, "company", "", "company slug the content must mention")
	fs.StringVar(&role, "role", "", "role slug the content must mention")
	fs.IntVar(&maxWords, "max-words", validation.DefaultMaxWords, "warn above this many words")
	if code, ok := parse(e, fs, args); !ok {
		return code
	}

	files, _, err := f.prepare(fs)
	if err != nil {
		return fail(e, "validate", err)
	}

	type fileResult struct {
		Path     string `json:"path"`
		ModuleID string `json:"moduleId"`
		validation.Result
	}
	results := make([]fileResult, 0, len(files))
	allValid := true
	for _, file := range files {
		res := validation.Validate(file.Module, validation.Options{Company: company, Role: role, MaxWords: maxWords})
		allValid = allValid && res.Valid
		results = append(results, fileResult{Path: file.Path, ModuleID: file.Module.ID, Result: res})
	}

	if f.json {
		if err := e.writeJSON(results); err != nil {
			return fail(e, "validate", err)
		}
	} else {
		p := e.printer()
		for _, r := range results {
			verdict := "VALID"
			if !r.Valid {
				verdict = "INVALID"
			}
			p.Banner(verdict, describeModule(r.ModuleID, r.Path))
			for _, msg := range r.Errors {
				p.Line("  error: %s", msg)
			}
			for _, msg := range r.Warnings {
				p.Line("  warning: %s", msg)
			}
		}
	}

	if !allValid {
		return exitFail
	}
	return exitOK
}

func describeModule(id, path string) string {
	if id == "" {
		return path
	}
	return id + " (" + filepath.Base(path) + ")"
}
