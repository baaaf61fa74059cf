// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docgen renders docs/commands/<cmd>.md into a man page and a tldr page for
// each cartctl subcommand. Man pages get a flag reference built from the live
// command definitions, so storage and output flags never drift from the code.
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/cartctl/internal/command"
	"github.com/staranto/cartctl/internal/kv"
)

const (
	binary  = "cartctl"
	homeURL = "https://github.com/staranto/cartctl"

	sectionShort    = "short description"
	sectionUsage    = "usage"
	sectionExamples = "quick examples"
	sectionFlags    = "flags and related docs"
)

var sectionNames = []string{sectionShort, sectionUsage, sectionExamples, sectionFlags}

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	app, err := command.InitApp(context.Background(), []string{binary})
	if err != nil {
		fatalf("building command tree: %v", err)
	}

	processed, err := generate(repoRoot, app.Commands, writeOnlyIfChanged)
	if err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("rendered %d command docs\n", processed)
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

// generate renders every doc under <root>/docs/commands. Each cart command in
// cmds must have a doc; completion is exempt.
func generate(root string, cmds []*cli.Command, onlyIfChanged bool) (int, error) {
	srcDir := filepath.Join(root, "docs", "commands")
	manDir := filepath.Join(root, "docs", "man", "share", "man1")
	tldrDir := filepath.Join(root, "docs", "tldr")

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", srcDir, err)
	}

	byName := map[string]*cli.Command{}
	for _, c := range cmds {
		byName[c.Name] = c
	}

	var seen []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".md")
		if e.IsDir() || !ok {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(srcDir, e.Name()))
		if err != nil {
			return len(seen), err
		}
		d := parseDoc(string(raw))

		man := md2man.Render([]byte(string(raw) + flagReference(byName[name])))
		if err := writeIfChanged(filepath.Join(manDir, binary+"-"+name+".1"), man, onlyIfChanged); err != nil {
			return len(seen), fmt.Errorf("man page for %s: %w", name, err)
		}

		tldr := []byte(renderTLDR(name, d))
		if err := writeIfChanged(filepath.Join(tldrDir, binary+"-"+name+".md"), tldr, onlyIfChanged); err != nil {
			return len(seen), fmt.Errorf("tldr page for %s: %w", name, err)
		}

		seen = append(seen, name)
	}

	var missing []string
	for _, c := range cmds {
		if c.Name != "completion" && !slices.Contains(seen, c.Name) {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return len(seen), fmt.Errorf("no doc in %s for: %s", srcDir, strings.Join(missing, ", "))
	}
	if len(seen) == 0 {
		return 0, fmt.Errorf("no command docs found under %s", srcDir)
	}

	return len(seen), nil
}

// writeIfChanged writes b to path, creating parent dirs. With onlyIfChanged an
// identical file, ignoring surrounding whitespace, is left alone.
func writeIfChanged(path string, b []byte, onlyIfChanged bool) error {
	if onlyIfChanged {
		old, err := os.ReadFile(path)
		if err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(b)) {
			return nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644) //nolint:gosec
}

type example struct {
	Desc string
	Cmd  string
}

// doc is the part of a command doc the tldr page is built from.
type doc struct {
	Title    string
	Short    string
	Examples []example
}

// parseDoc splits md into its named sections. A section starts at a bare line
// naming it, outside a code fence.
func parseDoc(md string) doc {
	var d doc
	sections := map[string][]string{}
	current := ""
	inFence := false

	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "```"):
			inFence = !inFence
		case !inFence && d.Title == "" && strings.HasPrefix(trimmed, "# "):
			d.Title = strings.TrimSpace(trimmed[2:])
			continue
		case !inFence && slices.Contains(sectionNames, strings.ToLower(trimmed)):
			current = strings.ToLower(trimmed)
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}

	d.Short = firstParagraph(sections[sectionShort])
	if d.Short == "" && d.Title != "" {
		d.Short = d.Title + "."
	}
	d.Examples = fencedExamples(sections[sectionExamples])
	return d
}

func firstParagraph(lines []string) string {
	var words []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			if len(words) > 0 {
				break
			}
			continue
		}
		words = append(words, l)
	}
	return strings.Join(words, " ")
}

// fencedExamples reads "# description" / "command" pairs from the first code
// fence in lines. A command with no description gets a generic one.
func fencedExamples(lines []string) []example {
	var (
		out     []example
		desc    string
		inFence bool
	)
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "```") {
			if inFence {
				break
			}
			inFence = true
			continue
		}
		if !inFence || l == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(l, "#"); ok {
			desc = strings.TrimSpace(rest)
			continue
		}
		if desc == "" {
			desc = "Example"
		}
		out = append(out, example{Desc: desc, Cmd: strings.Join(strings.Fields(l), " ")})
		desc = ""
	}
	return out
}

func renderTLDR(name string, d doc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s-%s\n\n", binary, name)

	short := d.Short
	if short == "" {
		short = binary + " " + name
	}
	fmt.Fprintf(&b, "> %s\n> More information: %s.\n", short, homeURL)

	exs := d.Examples
	if len(exs) == 0 {
		exs = []example{{Desc: "Show help for the command", Cmd: binary + " " + name + " --help"}}
	}
	for _, ex := range exs {
		fmt.Fprintf(&b, "\n- %s:\n\n`%s`\n", ex.Desc, ex.Cmd)
	}
	return b.String()
}

// flagReference renders the visible flags of cmd as a markdown section, with
// the storage flags in their own list. It returns "" for a nil cmd.
func flagReference(cmd *cli.Command) string {
	if cmd == nil || len(cmd.Flags) == 0 {
		return ""
	}

	storage := map[string]bool{}
	for _, f := range command.NewStorageFlags("") {
		storage[f.Names()[0]] = true
	}

	var local, store []string
	for _, f := range cmd.Flags {
		if v, ok := f.(cli.VisibleFlag); ok && !v.IsVisible() {
			continue
		}
		line := flagLine(f)
		if storage[f.Names()[0]] {
			store = append(store, line)
		} else {
			local = append(local, line)
		}
	}

	var b strings.Builder
	b.WriteString("\n# FLAGS\n\n")
	for _, l := range local {
		b.WriteString(l)
	}
	if len(store) > 0 {
		b.WriteString("\n# STORAGE\n\n")
		fmt.Fprintf(&b, "Backends are %s.\n\n", strings.Join(kv.Backends, ", "))
		for _, l := range store {
			b.WriteString(l)
		}
	}
	return b.String()
}

func flagLine(f cli.Flag) string {
	names := make([]string, 0, len(f.Names()))
	for _, n := range f.Names() {
		if len(n) == 1 {
			names = append(names, "`-"+n+"`")
		} else {
			names = append(names, "`--"+n+"`")
		}
	}
	line := "- " + strings.Join(names, ", ")

	if d, ok := f.(cli.DocGenerationFlag); ok {
		if u := d.GetUsage(); u != "" {
			line += ": " + u
		}
		if d.TakesValue() {
			if v := strings.Trim(d.GetValue(), `"`); v != "" && v != "0" {
				line += " (default `" + v + "`)"
			}
		}
		if env := d.GetEnvVars(); len(env) > 0 {
			line += " [env " + strings.Join(env, ", ") + "]"
		}
	}
	return line + "\n"
}
