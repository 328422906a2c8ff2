package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reoring/treebind"
	"github.com/reoring/treebind/jsontree"
	"github.com/reoring/treebind/yamltree"
)

type Format int

const (
	JSONFormat Format = iota
	YAMLFormat
)

func (f Format) String() string {
	if f == YAMLFormat {
		return "yaml"
	}
	return "json"
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "j":
		return JSONFormat, nil
	case "yaml", "yml", "y":
		return YAMLFormat, nil
	}
	return 0, fmt.Errorf("unknown format %q (want json or yaml)", s)
}

// detectFormat picks the input format of a document from its file extension,
// falling back to sniffing the first significant byte.
func detectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return JSONFormat
	case ".yaml", ".yml":
		return YAMLFormat
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return JSONFormat
	}
	return YAMLFormat
}

func (cfg *MainConfig) inFormat(name string, data []byte) Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	return detectFormat(name, data)
}

func (cfg *MainConfig) outFormat(in Format) Format {
	if cfg.OutFormat != nil {
		return *cfg.OutFormat
	}
	return in
}

func (cfg *MainConfig) readTree(f Format, data []byte) (treebind.Node, error) {
	switch f {
	case YAMLFormat:
		return yamltree.FromYAMLString(string(data), yamltree.Options{
			MaxDepth:           cfg.MaxDepth,
			AllowDuplicateKeys: cfg.Dup,
		})
	default:
		return jsontree.FromJSONBytes(data, jsontree.Options{
			MaxDepth:           cfg.MaxDepth,
			AllowDuplicateKeys: cfg.Dup,
		})
	}
}

func writeTree(f Format, n treebind.Node) (string, error) {
	switch f {
	case YAMLFormat:
		return yamltree.ToYAMLString(n)
	default:
		s, err := jsontree.ToJSONString(n)
		if err != nil {
			return "", err
		}
		return s + "\n", nil
	}
}
