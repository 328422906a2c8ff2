package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"go.uber.org/zap"

	"github.com/reoring/treebind"
)

func convert(cfg *ConvertConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Convert.Parse(cc, args)
	if err != nil {
		return err
	}
	docs, err := readInputs(cc.In, args)
	if err != nil {
		return err
	}
	return convertDocs(cfg.MainConfig, cc.Out, docs)
}

func convertDocs(cfg *MainConfig, w io.Writer, docs []document) error {
	for i, doc := range docs {
		in := cfg.inFormat(doc.name, doc.data)
		n, err := cfg.readTree(in, doc.data)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", doc.name, err)
		}
		out := cfg.outFormat(in)
		s, err := writeTree(out, n)
		if err != nil {
			return fmt.Errorf("error rendering %s: %w", doc.name, err)
		}
		treebind.Logger().Debug("converted",
			zap.String("file", doc.name),
			zap.Stringer("from", in),
			zap.Stringer("to", out))
		if i > 0 && out == YAMLFormat {
			io.WriteString(w, "---\n")
		}
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}
