// Command epsnfa searches text for literal patterns with an epsilon-NFA and
// prints where each match ends.
//
// Usage:
//
//	epsnfa -p he -p she -p hers ushers
//	echo ushers | epsnfa -patterns-file patterns.json -format json
//	epsnfa -demo
//
// The patterns file is a JSON object:
//
//	{"patterns": ["he", "she"], "config": {"strategy": "lazy", "prefilter": false}}
//
// Flags override the file's config. Text is taken from the remaining
// arguments joined by spaces, or from stdin when there are none.
//
// Exit status is 0 on success, 1 on runtime errors and 2 on usage errors.
// Diagnostics go to stderr at the level named by EPSNFA_LOG_LEVEL
// (debug, info, warn, error; default warn).
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/coregx/epsnfa"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// patternList collects repeated -p flags.
type patternList []string

// String implements flag.Value.
func (p *patternList) String() string { return strings.Join(*p, ",") }

// Set implements flag.Value.
func (p *patternList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

type options struct {
	patterns     patternList
	patternsFile string
	strategy     string
	noPrefilter  bool
	dump         bool
	format       string
	demo         bool
	text         []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("epsnfa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&opts.patterns, "p", "pattern to search for (repeatable)")
	fs.StringVar(&opts.patternsFile, "patterns-file", "", "JSON file with a \"patterns\" array and an optional \"config\" object")
	fs.StringVar(&opts.strategy, "strategy", "", "union strategy: eager or lazy (default eager)")
	fs.BoolVar(&opts.noPrefilter, "no-prefilter", false, "simulate every byte instead of jumping between candidates")
	fs.BoolVar(&opts.dump, "dump", false, "print the search automaton before the matches")
	fs.StringVar(&opts.format, "format", "text", "output format: text or json")
	fs.BoolVar(&opts.demo, "demo", false, "print the example automata and exit")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: epsnfa [options] [text...]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.format != "text" && opts.format != "json" {
		return opts, fmt.Errorf("unknown format %q (want text or json)", opts.format)
	}
	opts.text = fs.Args()
	return opts, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: parseLogLevel(getEnv("EPSNFA_LOG_LEVEL", "warn")),
	}))

	if opts.demo {
		if err := demo(stdout); err != nil {
			logger.Error("demo failed", "err", err)
			return exitError
		}
		return exitOK
	}

	config := epsnfa.DefaultConfig()
	patterns := []string(opts.patterns)
	if opts.patternsFile != "" {
		data, err := os.ReadFile(opts.patternsFile)
		if err != nil {
			logger.Error("reading patterns file", "path", opts.patternsFile, "err", err)
			return exitError
		}
		filePatterns, err := loadPatterns(data, &config)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s: %v\n", opts.patternsFile, err)
			return exitUsage
		}
		patterns = append(filePatterns, patterns...)
	}
	if opts.strategy != "" {
		if config.Strategy, err = epsnfa.ParseStrategy(opts.strategy); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
	}
	if opts.noPrefilter {
		config.EnablePrefilter = false
	}
	if len(patterns) == 0 {
		fmt.Fprintf(stderr, "Error: no patterns (use -p or -patterns-file)\n")
		return exitUsage
	}

	s, err := epsnfa.CompileWithConfig(config, patterns...)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	logger.Debug("compiled searcher",
		"patterns", len(patterns),
		"strategy", config.Strategy.String(),
		"prefilter", config.EnablePrefilter,
	)

	text := strings.Join(opts.text, " ")
	if len(opts.text) == 0 {
		data, err := io.ReadAll(stdin)
		if err != nil {
			logger.Error("reading stdin", "err", err)
			return exitError
		}
		text = string(data)
	}

	matches := s.SearchString(text)
	logger.Info("search done", "bytes", len(text), "matches", len(matches))

	if err := report(stdout, opts, s, matches); err != nil {
		logger.Error("writing report", "err", err)
		return exitError
	}
	return exitOK
}

// loadPatterns reads the "patterns" array and the optional "config" object
// of a patterns file, applying the config onto config.
func loadPatterns(data []byte, config *epsnfa.Config) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	list := gjson.GetBytes(data, "patterns")
	if !list.IsArray() {
		return nil, errors.New(`"patterns" must be an array of strings`)
	}
	var patterns []string
	for i, p := range list.Array() {
		if p.Type != gjson.String {
			return nil, fmt.Errorf("patterns[%d] is not a string", i)
		}
		patterns = append(patterns, p.String())
	}

	if v := gjson.GetBytes(data, "config.strategy"); v.Exists() {
		strategy, err := epsnfa.ParseStrategy(v.String())
		if err != nil {
			return nil, err
		}
		config.Strategy = strategy
	}
	if v := gjson.GetBytes(data, "config.prefilter"); v.Exists() {
		config.EnablePrefilter = v.Bool()
	}
	if v := gjson.GetBytes(data, "config.max_patterns"); v.Exists() {
		config.MaxPatterns = int(v.Int())
	}
	return patterns, nil
}

func report(w io.Writer, opts options, s *epsnfa.Searcher, matches []epsnfa.Match) error {
	patterns := s.Patterns()
	if opts.format == "json" {
		out := []byte(`{"matches":[]}`)
		var err error
		if opts.dump {
			if out, err = sjson.SetBytes(out, "automaton", s.Dump()); err != nil {
				return err
			}
		}
		if out, err = sjson.SetBytes(out, "strategy", s.Config().Strategy.String()); err != nil {
			return err
		}
		for _, m := range matches {
			out, err = sjson.SetBytes(out, "matches.-1", map[string]any{
				"pattern": patterns[m.Pattern],
				"index":   m.Pattern,
				"start":   m.Start(patterns),
				"end":     m.End,
			})
			if err != nil {
				return err
			}
		}
		out = append(out, '\n')
		_, err = w.Write(out)
		return err
	}

	if opts.dump {
		if _, err := io.WriteString(w, s.Dump()+"\n"); err != nil {
			return err
		}
	}
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%s\n", m.Start(patterns), m.End, patterns[m.Pattern]); err != nil {
			return err
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
