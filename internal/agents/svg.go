package agents

import (
	"fmt"
	"strings"
)

// shapeSVG returns an inline SVG drawing of a basic geometric shape for
// flashcard fronts. Unknown shapes get a neutral placeholder.
func shapeSVG(shape string) string {
	switch shape {
	case "circle":
		return `<svg width="200" height="200" viewBox="0 0 200 200" xmlns="http://www.w3.org/2000/svg">` +
			`<circle cx="100" cy="100" r="80" fill="#ffeb3b" stroke="#ff9800" stroke-width="4"/></svg>`
	case "triangle":
		return `<svg width="200" height="200" viewBox="0 0 200 200" xmlns="http://www.w3.org/2000/svg">` +
			`<polygon points="100,20 30,160 170,160" fill="#4caf50" stroke="#2e7d32" stroke-width="4"/></svg>`
	case "square":
		return `<svg width="200" height="200" viewBox="0 0 200 200" xmlns="http://www.w3.org/2000/svg">` +
			`<rect x="30" y="30" width="140" height="140" fill="#2196f3" stroke="#1565c0" stroke-width="4"/></svg>`
	default:
		return `<svg width="200" height="200" viewBox="0 0 200 200" xmlns="http://www.w3.org/2000/svg">` +
			`<rect x="50" y="50" width="100" height="100" fill="#e0e0e0" stroke="#666" stroke-width="2"/></svg>`
	}
}

// applesSVG draws count1 apples, and when count2 > 0 a "+" and count2 more,
// for addition flashcards.
func applesSVG(count1, count2 int) string {
	var sb strings.Builder

	if count2 == 0 {
		for i := 0; i < count1; i++ {
			cx := 50 + i*40
			fmt.Fprintf(&sb, `<circle cx="%d" cy="75" r="25" fill="#ff6b6b" stroke="#333" stroke-width="2"/>`, cx)
			fmt.Fprintf(&sb, `<ellipse cx="%d" cy="55" rx="3" ry="8" fill="#4ecdc4"/>`, cx)
		}
	} else {
		for i := 0; i < count1; i++ {
			cx := 30 + i*30
			fmt.Fprintf(&sb, `<circle cx="%d" cy="75" r="20" fill="#ff6b6b" stroke="#333" stroke-width="2"/>`, cx)
			fmt.Fprintf(&sb, `<ellipse cx="%d" cy="60" rx="2" ry="6" fill="#4ecdc4"/>`, cx)
		}
		sb.WriteString(`<text x="150" y="85" font-family="Arial" font-size="30" fill="#333" text-anchor="middle">+</text>`)
		for i := 0; i < count2; i++ {
			cx := 190 + i*30
			fmt.Fprintf(&sb, `<circle cx="%d" cy="75" r="20" fill="#ff6b6b" stroke="#333" stroke-width="2"/>`, cx)
			fmt.Fprintf(&sb, `<ellipse cx="%d" cy="60" rx="2" ry="6" fill="#4ecdc4"/>`, cx)
		}
	}

	return fmt.Sprintf(`<svg width="300" height="150" viewBox="0 0 300 150" xmlns="http://www.w3.org/2000/svg">%s</svg>`, sb.String())
}
