package codec

import (
	"encoding/base64"

	"github.com/reoring/treebind"
)

// Base64 converts between standard padded base64 scalars and []byte.
func Base64() treebind.Converter[[]byte] {
	return treebind.Converter[[]byte]{
		Decode: func(_ *treebind.Decoder, n treebind.Node) ([]byte, error) {
			text, err := scalarText(n)
			if err != nil {
				return nil, err
			}
			b, perr := base64.StdEncoding.DecodeString(text)
			if perr != nil {
				return nil, parseError(text, perr)
			}
			return b, nil
		},
		Encode: func(b []byte) treebind.Node {
			return treebind.NewScalar(base64.StdEncoding.EncodeToString(b))
		},
	}
}
