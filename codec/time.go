// Package codec provides ready-made treebind Converters for standard types
// that cannot carry NodeDecoder/NodeEncoder methods themselves.
//
//	treebind.Register(codec.TimeRFC3339())
//	treebind.Register(codec.Duration())
//	treebind.Register(codec.Base64())
package codec

import (
	"time"

	"github.com/reoring/treebind"
)

// TimeRFC3339 converts between RFC3339 scalars and time.Time. Fractional
// seconds are accepted; values render in UTC with trailing zeros trimmed.
func TimeRFC3339() treebind.Converter[time.Time] {
	return treebind.Converter[time.Time]{
		Decode: func(_ *treebind.Decoder, n treebind.Node) (time.Time, error) {
			text, err := scalarText(n)
			if err != nil {
				return time.Time{}, err
			}
			t, perr := parseRFC3339(text)
			if perr != nil {
				return time.Time{}, parseError(text, perr)
			}
			return t, nil
		},
		Encode: func(t time.Time) treebind.Node {
			return treebind.NewScalar(formatRFC3339Canonical(t))
		},
	}
}

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// Duration converts between time.ParseDuration text ("1h30m") and
// time.Duration.
func Duration() treebind.Converter[time.Duration] {
	return treebind.Converter[time.Duration]{
		Decode: func(_ *treebind.Decoder, n treebind.Node) (time.Duration, error) {
			text, err := scalarText(n)
			if err != nil {
				return 0, err
			}
			d, perr := time.ParseDuration(text)
			if perr != nil {
				return 0, parseError(text, perr)
			}
			return d, nil
		},
		Encode: func(d time.Duration) treebind.Node { return treebind.NewScalar(d.String()) },
	}
}

func scalarText(n treebind.Node) (string, error) {
	s, ok := n.(treebind.Scalar)
	if !ok {
		got := "nothing"
		if n != nil {
			got = n.Kind().String()
		}
		return "", treebind.Errorf(treebind.CodeInvalidKind, map[string]string{"want": "scalar", "got": got})
	}
	return s.Text(), nil
}

func parseError(text string, cause error) *treebind.Error {
	e := treebind.Errorf(treebind.CodeParseError, map[string]string{"text": text})
	e.Cause = cause
	return e
}
