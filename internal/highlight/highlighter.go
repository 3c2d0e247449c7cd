package highlight

import "strings"

// Highlight tokenizes the whole text and returns its spans ordered by start
// offset. Declarations and comments are consumed before any tag scanning
// can see them, so markup characters inside a comment never produce tag
// or attribute spans.
func Highlight(text string) []Span {
	spans := make([]Span, 0)
	n := len(text)
	i := 0

	for i < n {
		j := strings.IndexByte(text[i:], '<')
		if j < 0 {
			break
		}
		i += j
		rest := text[i:]

		switch {
		case strings.HasPrefix(rest, "<!--"):
			end := skipPast(text, i+4, "-->")
			spans = append(spans, Span{Start: i, End: end, Category: CategoryComment})
			i = end

		case strings.HasPrefix(rest, "<?"):
			// Processing instructions, the XML declaration included
			end := skipPast(text, i+2, "?>")
			spans = append(spans, Span{Start: i, End: end, Category: CategoryDeclaration})
			i = end

		case strings.HasPrefix(rest, "<![CDATA["):
			i = skipPast(text, i+9, "]]>")

		case strings.HasPrefix(rest, "<!"):
			// DOCTYPE and friends are left plain
			i = skipPast(text, i+2, ">")

		default:
			i = scanTag(text, i, &spans)
		}
	}

	return spans
}

// scanTag tags the element name and name="value" pairs of the tag starting
// at start and returns the offset just past it.
func scanTag(text string, start int, spans *[]Span) int {
	n := len(text)
	i := start + 1
	if i < n && text[i] == '/' {
		i++
	}

	nameEnd := scanName(text, i)
	if nameEnd > i {
		*spans = append(*spans, Span{Start: i, End: nameEnd, Category: CategoryTag})
	}
	i = nameEnd

	for i < n {
		c := text[i]
		switch {
		case c == '>':
			return i + 1
		case c == '<':
			// Unterminated tag; let the caller handle the new markup
			return i
		case isNameByte(c):
			attrEnd := scanName(text, i)
			k := skipSpace(text, attrEnd)
			if k < n && text[k] == '=' {
				k = skipSpace(text, k+1)
				if k < n && (text[k] == '"' || text[k] == '\'') {
					if closing := strings.IndexByte(text[k+1:], text[k]); closing >= 0 {
						valueEnd := k + 1 + closing + 1
						*spans = append(*spans,
							Span{Start: i, End: attrEnd, Category: CategoryAttribute},
							Span{Start: k, End: valueEnd, Category: CategoryAttributeValue},
						)
						i = valueEnd
						continue
					}
				}
			}
			i = attrEnd
		default:
			i++
		}
	}

	return n
}

func skipPast(text string, from int, terminator string) int {
	if from > len(text) {
		return len(text)
	}
	idx := strings.Index(text[from:], terminator)
	if idx < 0 {
		return len(text)
	}
	return from + idx + len(terminator)
}

func scanName(text string, i int) int {
	for i < len(text) && isNameByte(text[i]) {
		i++
	}
	return i
}

func skipSpace(text string, i int) int {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == ':' || c == '-' || c == '.' || c >= 0x80
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
