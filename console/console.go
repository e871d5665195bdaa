// Copyright © 2025 The Lantern authors

// Package console provides an interactive inspector over a diagnostics
// store: list files, show filtered messages, and apply fixes, from a
// readline prompt.
package console

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"

	"github.com/lanternhq/lantern/diagnostics"
	"github.com/lanternhq/lantern/filter"
	"github.com/lanternhq/lantern/fixer"
	"github.com/lanternhq/lantern/render"
)

type config struct {
	stdin  io.ReadCloser
	stdout io.WriteCloser
	fixes  *fixer.Applicator
}

// Option configures the console.
type Option func(*config)

// WithStdin overrides the input to the console.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStdout overrides the output of the console.
func WithStdout(stdout io.WriteCloser) Option {
	return func(c *config) {
		c.stdout = stdout
	}
}

// WithApplicator enables the fix command.
func WithApplicator(fixes *fixer.Applicator) Option {
	return func(c *config) {
		c.fixes = fixes
	}
}

// Run starts an interactive console over the store, reading commands
// until EOF or the exit command.
func Run(store *diagnostics.Store, renderer *render.Renderer, opts ...Option) error {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	out := io.WriteCloser(os.Stdout)
	if cfg.stdout != nil {
		out = cfg.stdout
	}

	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            "lantern> ",
		HistoryFile:       historyPath(),
		HistorySearchFold: true,
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return err
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	c := &console{store: store, renderer: renderer, fixes: cfg.fixes, out: out}

	for {
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if done := c.dispatch(string(line)); done {
			return nil
		}
	}
}

type console struct {
	store    *diagnostics.Store
	renderer *render.Renderer
	fixes    *fixer.Applicator
	out      io.Writer
}

// dispatch runs one command line and reports whether the console
// should exit.
func (c *console) dispatch(line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		c.help()
	case "files":
		c.listFiles()
	case "show":
		c.show(rest)
	case "project":
		c.render(c.store.ProjectMessages(), rest)
	case "all":
		c.render(c.store.Messages(), rest)
	case "fix":
		c.fix(rest)
	default:
		fmt.Fprintf(c.out, "unknown command %q; try help\n", cmd)
	}
	return false
}

func (c *console) help() {
	fmt.Fprint(c.out, `Commands:
  files                 list files with diagnostics
  show <path> [query]   show messages for a file
  project [query]       show project-scoped messages
  all [query]           show every message
  fix <path>            apply all fixes in a file
  help                  show this help
  exit                  leave the console

Queries are space-separated terms, all of which must match, e.g.
  severity:error provider:lint fix
`)
}

func (c *console) listFiles() {
	paths := c.store.FilePaths()
	if len(paths) == 0 {
		fmt.Fprintln(c.out, "no diagnostics")
		return
	}
	for _, p := range paths {
		fmt.Fprintf(c.out, "%s (%d)\n", p, len(c.store.FileMessages(p)))
	}
}

func (c *console) show(args string) {
	path, query, _ := strings.Cut(args, " ")
	if path == "" {
		fmt.Fprintln(c.out, "usage: show <path> [query]")
		return
	}
	c.render(c.store.FileMessages(path), query)
}

func (c *console) render(msgs []*diagnostics.Message, query string) {
	if query = strings.TrimSpace(query); query != "" {
		q, err := filter.Parse(query)
		if err != nil {
			fmt.Fprintf(c.out, "bad query: %v\n", err)
			return
		}
		msgs = q.Filter(msgs)
	}
	if len(msgs) == 0 {
		fmt.Fprintln(c.out, "no messages")
		return
	}
	if err := c.renderer.RenderAll(c.out, msgs); err != nil {
		fmt.Fprintf(c.out, "render: %v\n", err)
	}
}

func (c *console) fix(path string) {
	if path == "" {
		fmt.Fprintln(c.out, "usage: fix <path>")
		return
	}
	if c.fixes == nil {
		fmt.Fprintln(c.out, "fixing is not available in this console")
		return
	}
	if err := c.fixes.ApplyFixesForFile(path); err != nil {
		fmt.Fprintf(c.out, "fix: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "fixed %s\n", path)
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lantern_history")
}
