package plugin

import (
	"html/template"
	"strings"

	"golang.org/x/net/html"
)

// consolePrompts are the line prefixes treated as typed commands.
var consolePrompts = []string{"$ ", "# ", "> "}

// Console renders a terminal session as HTML. Lines starting with a prompt are
// wrapped as commands, every other line as program output.
func Console(text string) template.HTML {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")

	var b strings.Builder
	b.WriteString(`<div class="console"><pre>`)
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteByte('\n')
		}
		if prompt, cmd, ok := cutPrompt(line); ok {
			b.WriteString(`<span class="prompt">`)
			b.WriteString(html.EscapeString(prompt))
			b.WriteString(`</span><span class="command">`)
			b.WriteString(html.EscapeString(cmd))
			b.WriteString(`</span>`)
			continue
		}
		if line == "" {
			continue
		}
		b.WriteString(`<span class="output">`)
		b.WriteString(html.EscapeString(line))
		b.WriteString(`</span>`)
	}
	b.WriteString(`</pre></div>`)
	return template.HTML(b.String()) //nolint:gosec // every piece of user text above is escaped
}

func cutPrompt(line string) (prompt, cmd string, ok bool) {
	for _, p := range consolePrompts {
		if rest, found := strings.CutPrefix(line, p); found {
			return strings.TrimSpace(p), rest, true
		}
	}
	return "", "", false
}
