package output

import "strings"

// Header writes a styled header line for text mode.
func (r *Renderer) Header(level int, text string) {
	switch level {
	case 1:
		r.Println(r.Styles().Header1.Render(text))
	default:
		r.Println(r.Styles().Header2.Render(text))
	}
}

// FormatHeader returns a markdown header line.
func FormatHeader(level int, text string) string {
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown key/value bullet.
func FormatKeyValue(key, value string) string {
	return "- **" + key + "**: " + value
}
