package query

import (
	"strings"
	"unicode"
)

// Chunk splits text into pieces of at most size runes, with overlap runes
// carried from the end of each piece into the next. Cut points prefer
// whitespace in the back half of the window so words stay intact; a piece
// with no whitespace there is cut hard at the limit. Pieces are trimmed and
// empty pieces are dropped.
func Chunk(text string, size, overlap int) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if size <= 0 {
		return []string{strings.TrimSpace(text)}
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}

		cut := end
		if end < len(runes) {
			for cut > start+size/2 && !unicode.IsSpace(runes[cut-1]) {
				cut--
			}
			if cut <= start+size/2 {
				cut = end
			}
		}

		if chunk := strings.TrimSpace(string(runes[start:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if cut >= len(runes) {
			break
		}

		next := cut - overlap
		if next <= start {
			// The window is too tight to honor the overlap; advance anyway.
			next = cut
		}
		start = next
	}
	return chunks
}
