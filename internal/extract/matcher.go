// Package extract pulls individual fields out of raw catalog JSON documents
// by scanning the text directly instead of decoding it into a tree.
//
// All functions are pure: the same document always yields the same strings.
// Absent or malformed values never produce errors, they produce sentinels.
package extract

// NotFound is returned by MatchClosing when the text ends before the
// opening delimiter is balanced.
const NotFound = -1

// MatchClosing returns the index of the delimiter that closes the one at
// text[open], counting nested openCh/closeCh pairs. Delimiters inside quoted
// strings are counted like any other character.
func MatchClosing(text string, open int, openCh, closeCh byte) int {
	depth := 1
	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return NotFound
}

// nextObject finds the next brace-delimited object in s at or after pos.
// It returns the object text and the position just past it.
func nextObject(s string, pos int) (string, int, bool) {
	if pos >= len(s) {
		return "", pos, false
	}
	start := indexByteFrom(s, '{', pos)
	if start == NotFound {
		return "", pos, false
	}
	end := MatchClosing(s, start, '{', '}')
	if end == NotFound {
		return "", pos, false
	}
	return s[start : end+1], end + 1, true
}

func indexByteFrom(s string, c byte, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return NotFound
}
