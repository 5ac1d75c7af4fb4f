package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/1broseidon/spatialnav/internal/browse"
	"github.com/1broseidon/spatialnav/internal/config"
	"github.com/1broseidon/spatialnav/internal/document"
	"github.com/1broseidon/spatialnav/internal/focus"
	"github.com/1broseidon/spatialnav/internal/index"
	"github.com/1broseidon/spatialnav/internal/spatial"
)

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func rulesFromFlags(tags, roles stringList, tabindex bool, fallback index.Rules) index.Rules {
	if len(tags) == 0 && len(roles) == 0 && !tabindex {
		return fallback
	}
	return index.Rules{Tags: tags, Roles: roles, Tabindex: tabindex}
}

// documentRules returns the flag rules, or the config eligibility section
// when no rule flag is set.
func documentRules(tags, roles stringList, tabindex bool) (index.Rules, error) {
	if len(tags) > 0 || len(roles) > 0 || tabindex {
		return rulesFromFlags(tags, roles, tabindex, index.Rules{}), nil
	}
	cfg, err := config.Load()
	if err != nil {
		return index.Rules{}, err
	}
	return cfg.Rules(), nil
}

func runResolve(args []string) int {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	doc := fs.String("doc", "", "Document file (.html, .yaml or .yml)")
	start := fs.String("focus", "", "Element id to focus before navigating")
	var tags, roles stringList
	fs.Var(&tags, "tag", "Eligible tag (repeatable; default: config eligibility)")
	fs.Var(&roles, "role", "Eligible role (repeatable)")
	tabindex := fs.Bool("tabindex", false, "Treat elements with a tabindex as eligible")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spatialnav resolve --doc FILE [--focus ID] <dir>...")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Navigate a document in the given directions and print the focus")
		fmt.Fprintln(os.Stderr, "after each step.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if *doc == "" {
		fmt.Fprintln(os.Stderr, "resolve requires --doc")
		fs.Usage()
		return 2
	}

	dirs := make([]spatial.Direction, 0, fs.NArg())
	for _, arg := range fs.Args() {
		dir, err := spatial.ParseDirection(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		dirs = append(dirs, dir)
	}

	rules, err := documentRules(tags, roles, *tabindex)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	tree, err := document.LoadFile(*doc)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := resolve(os.Stdout, tree, rules, *start, dirs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// resolve runs dirs against tree and writes one line per step.
func resolve(w io.Writer, tree *document.Tree, rules index.Rules, start string, dirs []spatial.Direction) error {
	ctrl := focus.NewController(tree, nil, focus.Config{Rules: &rules})
	if start != "" {
		if err := ctrl.Focus(start); err != nil {
			return err
		}
		fmt.Fprintf(w, "start  %s\n", describeFocus(ctrl.State()))
	}
	for _, dir := range dirs {
		moved := ctrl.Navigate(dir)
		mark := " "
		if !moved {
			mark = "x"
		}
		fmt.Fprintf(w, "%-5s %s %s\n", dir, mark, describeFocus(ctrl.State()))
	}
	return nil
}

func describeFocus(snap focus.Snapshot) string {
	if !snap.Focused {
		return "(none)"
	}
	return fmt.Sprintf("%s %s", snap.CurrentID, snap.CurrentRect)
}

func runBrowse(args []string) int {
	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	watchFile := fs.Bool("watch", false, "Reload the document when the file changes")
	throttle := fs.Duration("throttle", 0, "Drop key presses closer together than this (e.g. 80ms)")
	var tags, roles stringList
	fs.Var(&tags, "tag", "Eligible tag (repeatable; default: config eligibility)")
	fs.Var(&roles, "role", "Eligible role (repeatable)")
	tabindex := fs.Bool("tabindex", false, "Treat elements with a tabindex as eligible")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: spatialnav browse [--watch] [--throttle DURATION] <file>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Explore a document with the arrow or h/j/k/l keys.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "browse requires exactly one file")
		fs.Usage()
		return 2
	}
	if *throttle < 0 {
		*throttle = 0
	}

	rules, err := documentRules(tags, roles, *tabindex)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = browse.Run(ctx, fs.Arg(0), browse.Options{
		Rules:    rules,
		Throttle: *throttle,
		Watch:    *watchFile,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
