package text

import "strings"

// span is one contiguous run of text sharing a foreground color. An
// empty fg means "use the caller's default".
type span struct {
	text string
	fg   string
}

var entities = map[string]string{
	"&amp;":  "&",
	"&lt;":   "<",
	"&gt;":   ">",
	"&quot;": `"`,
	"&apos;": "'",
}

// parseSpans splits a markup string into colored runs. Span tags push
// their foreground color onto a stack, closing tags pop it, all other
// tags are stripped and their content kept. Unterminated tags are kept
// as literal text.
func parseSpans(markup string) []span {
	var runs []span
	var cur strings.Builder
	colors := []string{""}

	flush := func() {
		if cur.Len() > 0 {
			runs = append(runs, span{text: cur.String(), fg: colors[len(colors)-1]})
			cur.Reset()
		}
	}

	for i := 0; i < len(markup); {
		switch markup[i] {
		case '<':
			end := strings.IndexByte(markup[i:], '>')
			if end < 0 {
				cur.WriteString(markup[i:])
				i = len(markup)
				continue
			}
			tag := markup[i+1 : i+end]
			flush()
			if closing, ok := strings.CutPrefix(tag, "/"); ok {
				if strings.TrimSpace(closing) == "span" && len(colors) > 1 {
					colors = colors[:len(colors)-1]
				}
			} else if name, attrs, _ := strings.Cut(tag, " "); name == "span" {
				fg := foregroundAttr(attrs)
				if fg == "" {
					// Inherit the enclosing color.
					fg = colors[len(colors)-1]
				}
				colors = append(colors, fg)
			}
			i += end + 1
		case '&':
			text, n := unescapeEntity(markup[i:])
			cur.WriteString(text)
			i += n
		default:
			cur.WriteByte(markup[i])
			i++
		}
	}
	flush()
	return runs
}

// foregroundAttr extracts the foreground color from a span tag's
// attribute list. Pango's aliases for the attribute are all accepted.
func foregroundAttr(attrs string) string {
	for _, field := range strings.Fields(attrs) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch key {
		case "foreground", "fgcolor", "color":
			return strings.Trim(value, `'"`)
		}
	}
	return ""
}

// unescapeEntity decodes the entity at the start of s, returning the
// replacement and the number of input bytes consumed. Anything that is
// not one of the five known entities stays a literal ampersand.
func unescapeEntity(s string) (string, int) {
	if semi := strings.IndexByte(s, ';'); semi > 0 && semi < 7 {
		if text, ok := entities[s[:semi+1]]; ok {
			return text, semi + 1
		}
	}
	return "&", 1
}
