package main

import (
	"fmt"
	"io"
	"os"
)

// document is one input read fully into memory.
type document struct {
	name string
	data []byte
}

// readInputs reads every named file, or stdin when files is empty. The
// name "-" also stands for stdin.
func readInputs(in io.Reader, files []string) ([]document, error) {
	if len(files) == 0 {
		files = []string{"-"}
	}
	docs := make([]document, 0, len(files))
	for _, file := range files {
		var (
			data []byte
			err  error
		)
		if file == "-" {
			data, err = io.ReadAll(in)
		} else {
			data, err = os.ReadFile(file)
		}
		if err != nil {
			return nil, fmt.Errorf("could not read %q: %w", file, err)
		}
		docs = append(docs, document{name: file, data: data})
	}
	return docs, nil
}
