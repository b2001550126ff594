package structures

import (
	"fmt"
	"strings"
)

// HyperlinkField is a decoded HYPERLINK field: the URL and display
// text bracketed by the 0x0013/0x0014/0x0015 field control characters
// in the retrieved text (spec 6.2's hyperlink start/separator/end
// marks), and the CP range it spans.
type HyperlinkField struct {
	URL         string
	DisplayText string
	Start       CP
	End         CP
}

// ParseHyperlinkFieldCode extracts the URL and (when present) the
// display text from a field's instruction text - the run of
// characters between the 0x0013 start mark and the 0x0014 separator,
// e.g. `HYPERLINK "https://example.com" \o "tooltip"`. Returns an
// empty URL when the instruction text is not a HYPERLINK field.
func ParseHyperlinkFieldCode(fieldCode string) (url, displayText string) {
	if !strings.Contains(strings.ToUpper(fieldCode), "HYPERLINK") {
		return "", ""
	}

	parts := strings.Fields(fieldCode)
	for i, part := range parts {
		if strings.ToUpper(part) != "HYPERLINK" || i+1 >= len(parts) {
			continue
		}
		url = strings.Trim(parts[i+1], "\"")
		if i+2 < len(parts) {
			displayText = strings.Trim(strings.Join(parts[i+2:], " "), "\"")
		}
		break
	}
	return url, displayText
}

// FormatAsMarkdown formats the hyperlink as markdown [text](url).
func (hl *HyperlinkField) FormatAsMarkdown() string {
	if hl.DisplayText != "" {
		return fmt.Sprintf("[%s](%s)", hl.DisplayText, hl.URL)
	}
	return fmt.Sprintf("[%s](%s)", hl.URL, hl.URL)
}
