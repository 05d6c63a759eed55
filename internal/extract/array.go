package extract

import "strings"

// arrayLimit is the number of elements shown for a generic array.
const arrayLimit = 3

// ProjectArray summarises the JSON array whose '[' is at text[open].
//
// String arrays and arrays of objects carrying a "name" field are rendered as
// up to three comma-joined values, followed by TruncationMarker when a fourth
// value exists. An empty array yields None. Anything else, including an
// unterminated array, yields MultipleItems.
func ProjectArray(text string, open int) string {
	if open < 0 || open >= len(text) || text[open] != '[' {
		return MultipleItems
	}
	end := MatchClosing(text, open, '[', ']')
	if end == NotFound {
		return MultipleItems
	}

	content := strings.TrimSpace(text[open+1 : end])
	if content == "" {
		return None
	}

	switch content[0] {
	case '"':
		items := stringElements(content, arrayLimit+1)
		if len(items) == 0 {
			return MultipleItems
		}
		return joinTruncated(items, arrayLimit)
	case '{':
		names := objectNames(content, arrayLimit+1)
		if len(names) == 0 {
			return MultipleItems
		}
		return joinTruncated(names, arrayLimit)
	default:
		return MultipleItems
	}
}

// stringElements collects up to max quoted strings from content in order.
func stringElements(content string, max int) []string {
	var items []string
	pos := 0
	for len(items) < max {
		open := indexByteFrom(content, '"', pos)
		if open == NotFound {
			break
		}
		end := closingQuote(content, open+1)
		if end == NotFound {
			break
		}
		items = append(items, unescape(content[open+1:end]))
		pos = end + 1
	}
	return items
}

// objectNames collects the "name" string of successive objects, up to max.
// Objects without a string name are skipped.
func objectNames(content string, max int) []string {
	var names []string
	pos := 0
	for len(names) < max {
		obj, next, ok := nextObject(content, pos)
		if !ok {
			break
		}
		pos = next
		if name, ok := stringField(obj, "name"); ok {
			names = append(names, name)
		}
	}
	return names
}

// joinTruncated joins at most limit items and marks the cut when more were
// collected.
func joinTruncated(items []string, limit int) string {
	if len(items) > limit {
		return strings.Join(items[:limit], ", ") + TruncationMarker
	}
	return strings.Join(items, ", ")
}
