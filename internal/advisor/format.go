package advisor

import "strings"

// Line is one display line of a model response, pre-classified so the
// rendering layer only has to pick a style.
type Line struct {
	Text   string
	Header bool
}

// FormatLines splits a model response into lines and tags headers. A line is
// a header when it uses markdown header or bold syntax, or when it is a short
// "Label: value" style line.
func FormatLines(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			lines = append(lines, Line{})
			continue
		}
		lines = append(lines, Line{Text: stripMarkers(trimmed), Header: isHeader(trimmed)})
	}
	return lines
}

func isHeader(line string) bool {
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "**") {
		return true
	}
	return len(line) < 50 && strings.Contains(line, ":")
}

func stripMarkers(line string) string {
	line = strings.TrimLeft(line, "# ")
	return strings.ReplaceAll(line, "**", "")
}
