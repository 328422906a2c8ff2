package treebind

import "strconv"

// DefaultMaxDepth bounds Decode recursion when no MaxDepth option is given.
const DefaultMaxDepth = 512

// DecodeOpt configures a Decoder.
type DecodeOpt func(*decodeConfig)

type decodeConfig struct {
	strict   bool
	maxDepth int
}

// Strict rejects mapping entries that no declared field consumes. When off
// (the default) they are kept as extra fields.
func Strict(on bool) DecodeOpt { return func(c *decodeConfig) { c.strict = on } }

// MaxDepth limits nesting depth during decoding. Zero selects
// DefaultMaxDepth; a negative value disables the limit.
func MaxDepth(n int) DecodeOpt { return func(c *decodeConfig) { c.maxDepth = n } }

// Decoder carries options and the current depth through one tree->typed
// conversion. It is not safe for concurrent use; ToValue creates a fresh one
// per call.
type Decoder struct {
	cfg   decodeConfig
	depth int
}

// NewDecoder returns a Decoder configured by opts.
func NewDecoder(opts ...DecodeOpt) *Decoder {
	d := &Decoder{}
	for _, o := range opts {
		if o != nil {
			o(&d.cfg)
		}
	}
	if d.cfg.maxDepth == 0 {
		d.cfg.maxDepth = DefaultMaxDepth
	}
	return d
}

// IsStrict reports whether unknown mapping entries are rejected.
func (d *Decoder) IsStrict() bool { return d.cfg.strict }

// Depth returns the current nesting depth.
func (d *Decoder) Depth() int { return d.depth }

func (d *Decoder) enter() *Error {
	d.depth++
	if d.cfg.maxDepth > 0 && d.depth > d.cfg.maxDepth {
		d.depth--
		return Errorf(CodeMaxDepth, map[string]string{"max": strconv.Itoa(d.cfg.maxDepth)})
	}
	return nil
}

func (d *Decoder) leave() { d.depth-- }
