package tui

import "strings"

const uiDivider = "──────────────────────────────────────────────────────"

// renderPage lays out a screen as title, divider, indented body, divider,
// hotkey hint line. Every screen of the engine UI goes through it so the
// pages stay visually aligned.
func renderPage(title, data, hotKeys string) string {
	body := "-"
	if strings.TrimSpace(data) != "" {
		body = data
	}

	sections := []string{
		title,
		indent(uiDivider),
		"",
		indent(body),
		"",
		indent(uiDivider),
	}
	if strings.TrimSpace(hotKeys) != "" {
		sections = append(sections, indent(hotKeys))
	}
	sections = append(sections, indent("ctrl+c: выход"))

	return strings.Join(sections, "\n")
}

func indent(v string) string {
	lines := strings.Split(v, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

func fitText(v string, max int) string {
	if max <= 0 || len(v) <= max {
		return v
	}
	if max <= 3 {
		return v[:max]
	}
	return v[:max-3] + "..."
}
