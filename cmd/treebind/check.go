package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/reoring/treebind"
)

var errUnstable = errors.New("document does not survive a round trip")

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	docs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return checkDocs(cfg.MainConfig, cc.Out, docs, cfg.Diff, cfg.colorize(cc.Out))
}

// checkDocs renders each document canonically, parses the rendering again
// and requires the two trees to be equal.
func checkDocs(cfg *MainConfig, w io.Writer, docs []document, showDiff, colored bool) error {
	p := newPalette(colored)
	failed := 0
	for _, doc := range docs {
		in := cfg.inFormat(doc.name, doc.data)
		n, err := cfg.readTree(in, doc.data)
		if err != nil {
			fmt.Fprintf(w, "%s %s: %v\n", p.bad("FAIL"), doc.name, err)
			failed++
			continue
		}
		out := cfg.outFormat(in)
		canon, err := writeTree(out, n)
		if err != nil {
			return fmt.Errorf("error rendering %s: %w", doc.name, err)
		}
		back, err := cfg.readTree(out, []byte(canon))
		if err != nil {
			return fmt.Errorf("error re-parsing %s: %w", doc.name, err)
		}
		if !treebind.Equal(n, back) {
			fmt.Fprintf(w, "%s %s: %v\n", p.bad("FAIL"), doc.name, errUnstable)
			failed++
			continue
		}
		fmt.Fprintf(w, "%s %s\n", p.good("ok"), doc.name)
		if showDiff {
			io.WriteString(w, lineDiff(string(doc.data), canon, p))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(docs))
	}
	return nil
}

// lineDiff renders a line-oriented diff of a against b; unchanged lines are
// prefixed with two spaces.
func lineDiff(a, b string, p palette) string {
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	var sb strings.Builder
	for _, d := range diffs {
		prefix, paint := "  ", fmt.Sprint
		switch d.Type {
		case diffpatch.DiffDelete:
			prefix, paint = "- ", p.bad
		case diffpatch.DiffInsert:
			prefix, paint = "+ ", p.good
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(paint(prefix + strings.TrimSuffix(line, "\n")))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

type palette struct {
	good, bad, key func(a ...any) string
}

func newPalette(colored bool) palette {
	if !colored {
		return palette{good: fmt.Sprint, bad: fmt.Sprint, key: fmt.Sprint}
	}
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		good: mk(color.FgGreen),
		bad:  mk(color.FgRed, color.Bold),
		key:  mk(color.FgCyan),
	}
}
