// Package cli implements the contentqa command line: the quality analyzers,
// the review sampler and the orchestration pipeline.
package cli

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dave/jobwiz-sub002/internal/config"
	"github.com/dave/jobwiz-sub002/internal/console"
	"github.com/dave/jobwiz-sub002/internal/domain"
	"github.com/dave/jobwiz-sub002/internal/logging"
	"github.com/dave/jobwiz-sub002/internal/review"
)

const (
	exitOK   = 0
	exitFail = 1
)

type command struct {
	summary string
	run     func(e *env, args []string) int
}

var commands = map[string]command{
	"quality":       {"run repetition, readability and fact checks", runQuality},
	"readability":   {"score Flesch-Kincaid readability", runReadability},
	"repetition":    {"find repeated and stock AI phrases", runRepetition},
	"facts":         {"extract factual claims and write checklists", runFacts},
	"validate":      {"check module structure", runValidate},
	"sample":        {"build the human review queue", runSample},
	"review-record": {"record a human review outcome", runReviewRecord},
	"orchestrate":   {"generate, check and store content", runOrchestrate},
}

type env struct {
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
}

// Run executes one command and returns the process exit code: 0 when the
// command passed, 1 on failed checks or errors.
func Run(args []string, stdout, stderr io.Writer) int {
	return run(&env{stdout: stdout, stderr: stderr, now: time.Now}, args)
}

func run(e *env, args []string) int {
	if len(args) == 0 {
		usage(e.stderr)
		return exitFail
	}
	name := args[0]
	if name == "-h" || name == "--help" || name == "help" {
		usage(e.stdout)
		return exitOK
	}
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(e.stderr, "contentqa: unknown command %q\n\n", name)
		usage(e.stderr)
		return exitFail
	}
	return cmd.run(e, args[1:])
}

func usage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage: contentqa <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'contentqa <command> --help' for command flags.")
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func newFlagSet(e *env, name, synopsis string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: contentqa %s %s\n\nflags:\n", name, synopsis)
		fs.PrintDefaults()
	}
	return fs
}

// parse returns an exit code and false when the command should stop.
func parse(e *env, fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitFail, false
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(e.stderr, "contentqa %s: unexpected arguments %v\n", fs.Name(), fs.Args())
		return exitFail, false
	}
	return exitOK, true
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func fail(e *env, cmd string, err error) int {
	fmt.Fprintf(e.stderr, "contentqa %s: %v\n", cmd, err)
	return exitFail
}

func (e *env) logger(cfg config.Config) *slog.Logger {
	return logging.NewWithWriter(e.stderr, cfg.Logging.Level)
}

func (e *env) printer() *console.Printer {
	return console.New(e.stdout)
}

func (e *env) writeJSON(v any) error {
	enc := json.NewEncoder(e.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// inputFlags are the file selection flags shared by the analyzers.
type inputFlags struct {
	inputs stringList
	dirs   stringList
}

func (f *inputFlags) register(fs *flag.FlagSet) {
	fs.Var(&f.inputs, "input", "module JSON file (repeatable)")
	fs.Var(&f.dirs, "dir", "directory of module JSON files (repeatable)")
}

func (f *inputFlags) paths() ([]string, error) {
	paths, err := review.CollectModuleFiles(f.inputs, f.dirs)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("no input files: pass --input or --dir")
	}
	return paths, nil
}

func (f *inputFlags) load() ([]review.ModuleFile, error) {
	paths, err := f.paths()
	if err != nil {
		return nil, err
	}
	files, err := review.LoadModuleFiles(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no content modules found in inputs")
	}
	return files, nil
}

func moduleIDs(modules []domain.ContentModule) string {
	ids := make([]string, 0, len(modules))
	for _, m := range modules {
		ids = append(ids, m.ID)
	}
	return strings.Join(ids, ", ")
}
