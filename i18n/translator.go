package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "path", "type", "want" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"unbounded_field":    "field {path} of type {type} is not bounded",
		"missing_default":    "field {path} of type {type} is unbounded and has no default",
		"override_config":    "invalid override for {path}: {reason}",
		"dimension_mismatch": "expected {want} unit values, got {got}",
		"unit_range":         "unit value {value} at index {index} is outside [0, 1]",
		"invalid_schema":     "invalid schema at {path}: {reason}",
	},
	"ja": {
		"unbounded_field":    "フィールド {path} (型 {type}) は有界ではありません",
		"missing_default":    "フィールド {path} (型 {type}) は有界でなく、デフォルト値もありません",
		"override_config":    "{path} のオーバーライドが不正です: {reason}",
		"dimension_mismatch": "単位値は {want} 個必要ですが {got} 個でした",
		"unit_range":         "インデックス {index} の単位値 {value} が [0, 1] の範囲外です",
		"invalid_schema":     "{path} のスキーマが不正です: {reason}",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	tmpl, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	return expand(tmpl, data)
}

// expand substitutes {key} placeholders; unknown keys are left as-is.
func expand(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
