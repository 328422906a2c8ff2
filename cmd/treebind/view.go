package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	docs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return viewDocs(cfg.MainConfig, cc.Out, docs, cfg.colorize(cc.Out))
}

func viewDocs(cfg *MainConfig, w io.Writer, docs []document, colored bool) error {
	p := newPalette(colored)
	for i, doc := range docs {
		n, err := cfg.readTree(cfg.inFormat(doc.name, doc.data), doc.data)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", doc.name, err)
		}
		if len(docs) > 1 {
			if i > 0 {
				io.WriteString(w, "\n")
			}
			fmt.Fprintf(w, "%s:\n", p.key(doc.name))
		}
		fmt.Fprintln(w, n.String())
	}
	return nil
}
