// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"text/template"
)

// DefaultMaxChars is the prompt content cap when the configuration leaves it unset.
const DefaultMaxChars = 2000

// sitePromptTmpl asks the model for one self-contained HTML page built from
// the extracted document content.
var sitePromptTmpl = template.Must(template.New("site").Parse(`You are an expert UI/UX designer and front-end developer.

Task: turn the following raw content, extracted from a PDF, into a polished, modern single-page website. It must not look like a plain text dump.

Design requirements:
1. Tech stack: Tailwind CSS loaded from its CDN for all styling.
2. Structure:
   - Hero section: a header with a gradient background (for example indigo to purple), a large white title and a subtitle.
   - Content grid: present the content as a responsive grid of cards with white backgrounds, soft shadows (shadow-lg) and a hover effect (scale-105).
   - Typography: a sans-serif Google Font such as 'Poppins' or 'Inter'.
   - Navbar and footer: a sticky navbar with a logo placeholder and a professional footer with copyright information.
3. Aesthetics: a professional palette (Slate-900 text, Indigo-600 accents), generous padding and margins, rounded corners (rounded-2xl) and subtle borders.
4. Icons: include the FontAwesome CDN and put relevant icons on section headers.

Output rules:
- Return ONLY the complete HTML document.
- Do NOT wrap it in markdown fences (` + "```html" + `).
- Produce valid HTML5 with every CDN link in the <head>.

Content to transform:
{{.Content}}
`))

// Truncate returns the first limit characters of s. Characters are Unicode
// code points, so a multi-byte sequence is never split; words may be.
// A non-positive limit returns s unchanged.
func Truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// RenderPrompt executes the site prompt template with content.
func RenderPrompt(content string) (string, error) {
	var buf bytes.Buffer
	if err := sitePromptTmpl.Execute(&buf, struct{ Content string }{Content: content}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
