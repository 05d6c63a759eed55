package extract

import (
	"strings"
	"unicode"
)

// Sentinels returned by the extractors.
const (
	NotAvailable  = "N/A"
	ComplexObject = "Complex object"
	MultipleItems = "Multiple items"
	None          = "None"

	// TruncationMarker is appended to a joined list that was cut short.
	TruncationMarker = ", ..."
)

// Kind classifies a JSON value by its first character.
type Kind int

const (
	// KindMissing means the key is absent or nothing follows its colon.
	KindMissing Kind = iota
	KindString
	KindArray
	KindObject
	KindNull
	// KindScalar covers numbers, booleans and anything unrecognised.
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	default:
		return "missing"
	}
}

// located is a value found in a document: its kind and the index of its
// first character.
type located struct {
	kind  Kind
	start int
}

// KindOf reports the kind of the value stored under key.
func KindOf(text, key string) Kind {
	return locate(text, key).kind
}

// locate finds the first literal occurrence of "<key>": and classifies
// the value that follows it.
func locate(text, key string) located {
	pattern := `"` + key + `":`
	idx := strings.Index(text, pattern)
	if idx == -1 {
		return located{kind: KindMissing, start: NotFound}
	}
	return classify(text, idx+len(pattern))
}

func classify(text string, pos int) located {
	for pos < len(text) && unicode.IsSpace(rune(text[pos])) {
		pos++
	}
	if pos >= len(text) {
		return located{kind: KindMissing, start: NotFound}
	}

	switch text[pos] {
	case '"':
		return located{kind: KindString, start: pos}
	case '[':
		return located{kind: KindArray, start: pos}
	case '{':
		return located{kind: KindObject, start: pos}
	case 'n':
		if strings.HasPrefix(text[pos:], "null") {
			return located{kind: KindNull, start: pos}
		}
	}
	return located{kind: KindScalar, start: pos}
}

// Value returns the value stored under key as a display string.
//
// Strings are unescaped, arrays are projected with ProjectArray, objects
// yield ComplexObject, numbers and booleans are returned verbatim. A missing
// key, a null value or a truncated value yields NotAvailable.
func Value(text, key string) string {
	v := locate(text, key)
	switch v.kind {
	case KindString:
		s, ok := quotedAt(text, v.start)
		if !ok {
			return NotAvailable
		}
		return s
	case KindArray:
		return ProjectArray(text, v.start)
	case KindObject:
		return ComplexObject
	case KindScalar:
		return scalarAt(text, v.start)
	default:
		return NotAvailable
	}
}

// stringField returns the value under key only when it is a JSON string.
func stringField(text, key string) (string, bool) {
	v := locate(text, key)
	if v.kind != KindString {
		return "", false
	}
	return quotedAt(text, v.start)
}

// quotedAt decodes the string literal whose opening quote is at text[open].
func quotedAt(text string, open int) (string, bool) {
	end := closingQuote(text, open+1)
	if end == NotFound {
		return "", false
	}
	return unescape(text[open+1 : end]), true
}

// closingQuote returns the index of the first unescaped quote at or after
// from. A quote preceded by an odd run of backslashes is escaped.
func closingQuote(text string, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] != '"' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= from && text[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			return i
		}
	}
	return NotFound
}

// unescape applies the replacements one after another, in this order.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `\/`, `/`)
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\r`, "\r")
	s = strings.ReplaceAll(s, `\t`, "\t")
	return s
}

// scalarAt returns the raw token starting at start, up to the next ',' or '}'.
func scalarAt(text string, start int) string {
	end := strings.IndexAny(text[start:], ",}")
	if end == -1 {
		return NotAvailable
	}
	token := strings.TrimSpace(text[start : start+end])
	if token == "" {
		return NotAvailable
	}
	return token
}
