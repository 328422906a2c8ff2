package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized messages for Error codes.
// data provides the values substituted into the message (for example,
// "name" or "text").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator. Templates use
// {key} placeholders filled from data.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl := t.template(code)
	if tmpl == "" {
		return code
	}
	return expand(tmpl, data)
}

func (t dictTranslator) template(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "not_implemented":
			return "この型の解析は実装されていません"
		case "invalid_kind":
			return "{want} が必要ですが {got} が見つかりました"
		case "missing_field":
			return "{name} がありません"
		case "unknown_fields":
			return "未使用のフィールド: {names}"
		case "enum_payload_required":
			return "列挙型 {name} には値が必要です"
		case "enum_payload_forbidden":
			return "列挙型 {name} に値を含めることはできません"
		case "enum_unknown":
			return "未知の列挙型 \"{text}\""
		case "enum_arity":
			return "列挙型はちょうど1つのエントリを持つ必要があります (実際: {count})"
		case "constraint":
			return "制約を満たしていません: {description}"
		case "parse_error":
			return "解析できません \"{text}\""
		case "unused_characters":
			return "未使用の文字があります: \"{text}\""
		case "variant_exhausted":
			return "どのバリアントとしても解析できません: [ {attempts} ]"
		case "max_depth":
			return "最大ネスト深度 {max} を超えました"
		case "duplicate_key":
			return "キーが重複しています \"{key}\""
		case "io_error":
			return "{format} ファイル {file} の処理に失敗しました ({op}): {reason}"
		}
	default: // "en"
		switch code {
		case "not_implemented":
			return "Parsing not implemented for given type"
		case "invalid_kind":
			return "Expected {want}, found {got}"
		case "missing_field":
			return "Missing {name}"
		case "unknown_fields":
			return "Unused fields: {names}"
		case "enum_payload_required":
			return "Enum type {name} must contain a value"
		case "enum_payload_forbidden":
			return "Enum type {name} must not include values"
		case "enum_unknown":
			return "Unknown enum type \"{text}\""
		case "enum_arity":
			return "Enum must contain exactly one entry, found {count}"
		case "constraint":
			return "Did not pass constraint: {description}"
		case "parse_error":
			return "Unable to parse \"{text}\""
		case "unused_characters":
			return "Value has unused characters: \"{text}\""
		case "variant_exhausted":
			return "Unable to parse any variant: [ {attempts} ]"
		case "max_depth":
			return "Maximum nesting depth {max} exceeded"
		case "duplicate_key":
			return "Duplicate key \"{key}\""
		case "io_error":
			return "Unable to {op} {format} file {file}: {reason}"
		}
	}
	return ""
}

func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, 2*len(data))
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
