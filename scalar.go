package treebind

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// decodeScalar applies the default text conversion to dst. handled is false
// when T has no text capability, in which case the caller reports
// not_implemented.
func decodeScalar[T any](dst *T, text string) (handled bool, err *Error) {
	if tu, ok := any(dst).(encoding.TextUnmarshaler); ok {
		if e := tu.UnmarshalText([]byte(text)); e != nil {
			pe := parseError(text)
			pe.Cause = e
			return true, pe
		}
		return true, nil
	}
	rv := reflect.ValueOf(dst).Elem()
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(text)
		return true, nil
	case reflect.Bool:
		b, perr := strconv.ParseBool(text)
		if perr != nil {
			return true, parseErrorCause(text, perr)
		}
		rv.SetBool(b)
		return true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		tok, err := scanToken(text, scanInt(true))
		if err != nil {
			return true, err
		}
		i, perr := strconv.ParseInt(tok, 10, 64)
		if perr != nil || rv.OverflowInt(i) {
			return true, parseErrorCause(text, perr)
		}
		rv.SetInt(i)
		return true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		tok, err := scanToken(text, scanInt(false))
		if err != nil {
			return true, err
		}
		u, perr := strconv.ParseUint(strings.TrimPrefix(tok, "+"), 10, 64)
		if perr != nil || rv.OverflowUint(u) {
			return true, parseErrorCause(text, perr)
		}
		rv.SetUint(u)
		return true, nil
	case reflect.Float32, reflect.Float64:
		tok, err := scanToken(text, scanFloat)
		if err != nil {
			return true, err
		}
		f, perr := strconv.ParseFloat(tok, rv.Type().Bits())
		if perr != nil {
			return true, parseErrorCause(text, perr)
		}
		rv.SetFloat(f)
		return true, nil
	}
	return false, nil
}

// scanToken splits the leading decimal literal off text using scan, which
// returns the literal's length or 0 when text does not start with one. A
// literal followed by anything else is rejected, so "123et" and "0x10" are
// not integers.
func scanToken(text string, scan func(string) int) (string, *Error) {
	n := scan(text)
	if n == 0 {
		return "", parseError(text)
	}
	if n < len(text) {
		return "", Errorf(CodeUnusedCharacters, map[string]string{"text": text})
	}
	return text, nil
}

func scanInt(signed bool) func(string) int {
	return func(s string) int {
		i := 0
		if i < len(s) && (s[i] == '+' || (signed && s[i] == '-')) {
			i++
		}
		d := digits(s[i:])
		if d == 0 {
			return 0
		}
		return i + d
	}
}

// scanFloat accepts [+-]digits[.digits][(e|E)[+-]digits] with at least one
// mantissa digit; an exponent without digits is left unconsumed.
func scanFloat(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	mant := digits(s[i:])
	i += mant
	if i < len(s) && s[i] == '.' {
		frac := digits(s[i+1:])
		if mant == 0 && frac == 0 {
			return 0
		}
		i += 1 + frac
	} else if mant == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if exp := digits(s[j:]); exp > 0 {
			i = j + exp
		}
	}
	return i
}

func digits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func parseError(text string) *Error {
	return Errorf(CodeParseError, map[string]string{"text": text})
}

func parseErrorCause(text string, cause error) *Error {
	pe := parseError(text)
	if cause != nil {
		pe.Cause = cause
	}
	return pe
}

// encodeScalar renders v with its text capability.
func encodeScalar(v any) Node {
	if tm, ok := v.(encoding.TextMarshaler); ok {
		if b, err := tm.MarshalText(); err == nil {
			return NewScalar(string(b))
		}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return NewScalar(rv.String())
	case reflect.Bool:
		return NewScalar(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewScalar(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewScalar(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32:
		return NewScalar(strconv.FormatFloat(rv.Float(), 'g', -1, 32))
	case reflect.Float64:
		return NewScalar(strconv.FormatFloat(rv.Float(), 'g', -1, 64))
	}
	return NewScalar(fmt.Sprint(v))
}
