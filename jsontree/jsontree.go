// Package jsontree converts between JSON documents and treebind trees.
//
// Objects become mappings, arrays become sequences and every primitive
// becomes a scalar holding its literal text, so 12.5, true and null arrive
// as "12.5", "true" and "null". Rendering goes the other way with every
// scalar written as a JSON string; typed conversion happens afterwards
// through treebind.ToValue.
package jsontree

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	j "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/reoring/treebind"
	eng "github.com/reoring/treebind/internal/engine"
)

// Options controls parsing. The zero value uses treebind.DefaultMaxDepth,
// no size limit, and rejects duplicate keys.
type Options struct {
	// MaxDepth limits container nesting. 0 selects treebind.DefaultMaxDepth;
	// a negative value disables the limit.
	MaxDepth int
	// MaxBytes limits the input size; 0 or less disables the limit.
	MaxBytes int64
	// AllowDuplicateKeys keeps the last value of a repeated key.
	AllowDuplicateKeys bool
}

func pick(opts []Options) Options {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}

func (o Options) maxDepth() int {
	switch {
	case o.MaxDepth == 0:
		return treebind.DefaultMaxDepth
	case o.MaxDepth < 0:
		return 0
	}
	return o.MaxDepth
}

func (o Options) enforce() eng.EnforceOptions {
	return eng.EnforceOptions{
		AllowDuplicateKeys: o.AllowDuplicateKeys,
		MaxDepth:           o.maxDepth(),
		MaxBytes:           o.MaxBytes,
	}
}

// FromJSONReader parses one JSON document from r.
func FromJSONReader(r io.Reader, opts ...Options) (treebind.Node, error) {
	opt := pick(opts)
	return eng.Build(eng.WrapWithEnforcement(newSource(r), opt.enforce()))
}

// FromJSONBytes parses one JSON document.
func FromJSONBytes(b []byte, opts ...Options) (treebind.Node, error) {
	return FromJSONReader(bytes.NewReader(b), opts...)
}

// FromJSONString parses one JSON document.
func FromJSONString(s string, opts ...Options) (treebind.Node, error) {
	return FromJSONReader(strings.NewReader(s), opts...)
}

// FromJSONFile parses the JSON document stored at path. Failing to open or
// read the file is reported as an io_error.
func FromJSONFile(path string, opts ...Options) (treebind.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("load", path, err)
	}
	defer f.Close()
	treebind.Logger().Debug("loading json file", zap.String("path", path))
	in := &recordingReader{r: f}
	n, err := FromJSONReader(in, opts...)
	if in.err != nil {
		return nil, ioError("load", path, in.err)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// recordingReader remembers the first read failure so that it can be told
// apart from a syntax error in the content.
type recordingReader struct {
	r   io.Reader
	err error
}

func (r *recordingReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	if err != nil && err != io.EOF && r.err == nil {
		r.err = err
	}
	return n, err
}

// FromJSON converts an already-decoded JSON value: map[string]any, []any,
// string, json.Number, float64, bool, nil, or other numeric kinds.
func FromJSON(v any, opts ...Options) (treebind.Node, error) {
	opt := pick(opts)
	return fromNative(v, 0, opt.maxDepth())
}

func fromNative(v any, depth, max int) (treebind.Node, error) {
	switch v.(type) {
	case map[string]any, []any:
		if max > 0 && depth+1 > max {
			return nil, treebind.Errorf(treebind.CodeMaxDepth, map[string]string{"max": strconv.Itoa(max)})
		}
	}
	switch t := v.(type) {
	case nil:
		return treebind.NewScalar("null"), nil
	case treebind.Node:
		return t, nil
	case map[string]any:
		m := make(map[string]treebind.Node, len(t))
		for k, child := range t {
			n, err := fromNative(child, depth+1, max)
			if err != nil {
				return nil, treebind.AsError(err).AddField(k)
			}
			m[k] = n
		}
		return treebind.NewMapping(m), nil
	case []any:
		items := make([]treebind.Node, 0, len(t))
		for i, child := range t {
			n, err := fromNative(child, depth+1, max)
			if err != nil {
				return nil, treebind.AsError(err).AddIndex(i)
			}
			items = append(items, n)
		}
		return treebind.NewSequence(items...), nil
	case string:
		return treebind.NewScalar(t), nil
	case j.Number:
		return treebind.NewScalar(t.String()), nil
	case bool:
		return treebind.NewScalar(strconv.FormatBool(t)), nil
	case float64:
		return treebind.NewScalar(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case float32:
		return treebind.NewScalar(strconv.FormatFloat(float64(t), 'g', -1, 32)), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return treebind.NewScalar(strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return treebind.NewScalar(strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.String:
		return treebind.NewScalar(rv.String()), nil
	}
	return nil, treebind.NewError(treebind.CodeParseError, fmt.Sprintf("unsupported JSON value of type %T", v))
}

// ToJSON renders n as plain Go values: mappings become map[string]any,
// sequences []any and scalars string.
func ToJSON(n treebind.Node) any {
	switch t := n.(type) {
	case treebind.Scalar:
		return t.Text()
	case treebind.Mapping:
		m := make(map[string]any, t.Len())
		t.Range(func(k string, v treebind.Node) bool {
			m[k] = ToJSON(v)
			return true
		})
		return m
	case treebind.Sequence:
		items := make([]any, 0, t.Len())
		for _, it := range t.Items() {
			items = append(items, ToJSON(it))
		}
		return items
	}
	return nil
}

// ToJSONString renders n as indented JSON with sorted keys.
func ToJSONString(n treebind.Node) (string, error) {
	b, err := j.MarshalIndent(ToJSON(n), "", "  ")
	if err != nil {
		return "", &treebind.Error{Code: treebind.CodeParseError, Message: "render json: " + err.Error(), Cause: err}
	}
	return string(b), nil
}

// ToJSONFile writes n to path as indented JSON followed by a newline.
func ToJSONFile(n treebind.Node, path string) error {
	s, err := ToJSONString(n)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(s+"\n"), 0o644); err != nil {
		return ioError("write", path, err)
	}
	treebind.Logger().Debug("wrote json file", zap.String("path", path), zap.Int("bytes", len(s)+1))
	return nil
}

func ioError(op, path string, err error) *treebind.Error {
	e := treebind.Errorf(treebind.CodeIO, map[string]string{
		"op":     op,
		"format": "JSON",
		"file":   path,
		"reason": err.Error(),
	})
	e.Cause = err
	return e
}
