// Package yamltree converts between YAML documents and treebind trees.
//
// Scalars keep their source text regardless of the tag YAML would resolve
// (so 1.5, true and ~ arrive as "1.5", "true" and "~"); aliases are
// expanded and duplicate mapping keys are rejected. Rendering marks every
// scalar as !!str so that the text survives unchanged.
package yamltree

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/reoring/treebind"
)

// Options controls parsing. The zero value uses treebind.DefaultMaxDepth and
// rejects duplicate keys.
type Options struct {
	// MaxDepth limits nesting, counting expanded aliases. 0 selects
	// treebind.DefaultMaxDepth; a negative value disables the limit.
	MaxDepth int
	// AllowDuplicateKeys keeps the last value of a repeated key.
	AllowDuplicateKeys bool
}

func pick(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	if opt.MaxDepth == 0 {
		opt.MaxDepth = treebind.DefaultMaxDepth
	}
	return opt
}

// FromYAML converts a yaml.v3 node. Document nodes are unwrapped.
func FromYAML(n *yaml.Node, opts ...Options) (treebind.Node, error) {
	if n == nil {
		return nil, treebind.NewError(treebind.CodeParseError, "empty input")
	}
	c := &converter{opt: pick(opts)}
	return c.convert(n)
}

type converter struct {
	opt   Options
	depth int
}

func (c *converter) convert(n *yaml.Node) (treebind.Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, treebind.NewError(treebind.CodeParseError, "empty input")
		}
		return c.convert(n.Content[0])
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, treebind.NewError(treebind.CodeParseError, "unresolved alias *"+n.Value)
		}
		if err := c.enter(); err != nil {
			return nil, err
		}
		defer c.leave()
		return c.convert(n.Alias)
	case yaml.ScalarNode:
		return treebind.NewScalar(n.Value), nil
	case yaml.MappingNode:
		if err := c.enter(); err != nil {
			return nil, err
		}
		defer c.leave()
		m := make(map[string]treebind.Node, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return nil, treebind.NewError(treebind.CodeParseError,
					"line "+strconv.Itoa(k.Line)+": mapping keys must be scalars")
			}
			key := k.Value
			if _, dup := m[key]; dup && !c.opt.AllowDuplicateKeys {
				return nil, treebind.Errorf(treebind.CodeDuplicateKey, map[string]string{"key": key}).AddField(key)
			}
			child, err := c.convert(v)
			if err != nil {
				return nil, treebind.AsError(err).AddField(key)
			}
			m[key] = child
		}
		return treebind.NewMapping(m), nil
	case yaml.SequenceNode:
		if err := c.enter(); err != nil {
			return nil, err
		}
		defer c.leave()
		items := make([]treebind.Node, 0, len(n.Content))
		for i, it := range n.Content {
			child, err := c.convert(it)
			if err != nil {
				return nil, treebind.AsError(err).AddIndex(i)
			}
			items = append(items, child)
		}
		return treebind.NewSequence(items...), nil
	}
	return nil, treebind.NewError(treebind.CodeParseError, "unsupported YAML node kind")
}

func (c *converter) enter() *treebind.Error {
	c.depth++
	if c.opt.MaxDepth > 0 && c.depth > c.opt.MaxDepth {
		c.depth--
		return treebind.Errorf(treebind.CodeMaxDepth, map[string]string{"max": strconv.Itoa(c.opt.MaxDepth)})
	}
	return nil
}

func (c *converter) leave() { c.depth-- }

// ToYAML renders n as a yaml.v3 node tree with sorted mapping keys.
func ToYAML(n treebind.Node) *yaml.Node {
	switch t := n.(type) {
	case treebind.Scalar:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.Text()}
	case treebind.Mapping:
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		t.Range(func(k string, v treebind.Node) bool {
			out.Content = append(out.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				ToYAML(v))
			return true
		})
		return out
	case treebind.Sequence:
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, it := range t.Items() {
			out.Content = append(out.Content, ToYAML(it))
		}
		return out
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// FromYAMLReader parses exactly one YAML document from r.
func FromYAMLReader(r io.Reader, opts ...Options) (treebind.Node, error) {
	dec := yaml.NewDecoder(r)
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, treebind.NewError(treebind.CodeParseError, "empty input")
		}
		return nil, parseError(err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, parseError(err)
		}
		return nil, treebind.NewError(treebind.CodeParseError, "expected a single YAML document")
	}
	return FromYAML(&root, opts...)
}

// FromYAMLString parses exactly one YAML document.
func FromYAMLString(s string, opts ...Options) (treebind.Node, error) {
	return FromYAMLReader(strings.NewReader(s), opts...)
}

// FromYAMLFile parses the YAML document stored at path. Failing to read the
// file is reported as an io_error.
func FromYAMLFile(path string, opts ...Options) (treebind.Node, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("load", path, err)
	}
	treebind.Logger().Debug("loaded yaml file", zap.String("path", path), zap.Int("bytes", len(b)))
	return FromYAMLReader(bytes.NewReader(b), opts...)
}

// ToYAMLString renders n as a YAML document with two-space indentation.
func ToYAMLString(n treebind.Node) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToYAML(n)); err != nil {
		return "", &treebind.Error{Code: treebind.CodeParseError, Message: "render yaml: " + err.Error(), Cause: err}
	}
	if err := enc.Close(); err != nil {
		return "", &treebind.Error{Code: treebind.CodeParseError, Message: "render yaml: " + err.Error(), Cause: err}
	}
	return buf.String(), nil
}

// ToYAMLFile writes n to path.
func ToYAMLFile(n treebind.Node, path string) error {
	s, err := ToYAMLString(n)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0o644); err != nil {
		return ioError("write", path, err)
	}
	treebind.Logger().Debug("wrote yaml file", zap.String("path", path), zap.Int("bytes", len(s)))
	return nil
}

func parseError(err error) *treebind.Error {
	return &treebind.Error{Code: treebind.CodeParseError, Message: "malformed input: " + err.Error(), Cause: err}
}

func ioError(op, path string, err error) *treebind.Error {
	e := treebind.Errorf(treebind.CodeIO, map[string]string{
		"op":     op,
		"format": "YAML",
		"file":   path,
		"reason": err.Error(),
	})
	e.Cause = err
	return e
}
