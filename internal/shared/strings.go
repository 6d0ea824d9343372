// Package shared holds the small string and tag helpers used by both the
// transform layer and codegen.
package shared

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	camelizeRe   = regexp.MustCompile(`-(\w)`)
	identifierRe = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
)

// Camelize converts kebab-case to camelCase: "select-koma" -> "selectKoma".
func Camelize(s string) string {
	return camelizeRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

// Capitalize upper-cases the first character and leaves the rest untouched.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	// Casers are stateful and must not be shared between goroutines.
	return cases.Title(language.Und, cases.NoLower).String(s[:size]) + s[size:]
}

// ToHandlerKey derives the prop name a handler for event is bound to:
// "click" -> "onClick", "select-koma" -> "onSelectKoma".
func ToHandlerKey(event string) string {
	if event == "" {
		return ""
	}
	return "on" + Capitalize(Camelize(event))
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsSimpleIdentifier reports whether s can be used as an unquoted property
// key or variable name.
func IsSimpleIdentifier(s string) bool {
	return identifierRe.MatchString(s)
}

// ToValidAssetID turns an asset name into the identifier the resolved asset
// is bound to: ("my-button", "component") -> "_component_my_button".
func ToValidAssetID(name, kind string) string {
	var sb strings.Builder
	sb.WriteString("_")
	sb.WriteString(kind)
	sb.WriteString("_")
	for _, r := range name {
		switch {
		case r == '-':
			sb.WriteByte('_')
		case r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
			sb.WriteRune(r)
		default:
			sb.WriteString(strconv.Itoa(int(r)))
		}
	}
	return sb.String()
}

// Stringify renders s as a double-quoted JavaScript string literal.
func Stringify(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
