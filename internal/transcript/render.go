package transcript

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// RenderHTML projects messages into the chat markup. Every text is escaped.
func RenderHTML(msgs []Message) string {
	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(htmlBlock(m))
	}
	return b.String()
}

func htmlBlock(m Message) string {
	text := EscapeHTML(m.Text)
	switch m.Role {
	case RoleUser:
		return "<div><strong>You:</strong> " + text + "</div>"
	case RoleAssistant:
		return "<div><strong>Assistant:</strong><pre>" + text + "</pre></div>"
	case RoleError:
		return "<div><strong>Error:</strong>" + text + "</div>"
	default:
		if m.Preformatted {
			return "<div><em><pre>" + text + "</pre></em></div>"
		}
		return "<div><em>" + text + "</em></div>"
	}
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
<div id="chat">%s</div>
</body>
</html>
`

// Document wraps the chat markup into a standalone page.
func Document(title string, msgs []Message) string {
	return fmt.Sprintf(pageTemplate, EscapeHTML(title), RenderHTML(msgs))
}

// RenderTerminal projects messages into tview markup for the conversation view.
func RenderTerminal(msgs []Message) string {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(terminalBlock(m))
	}
	return b.String()
}

func terminalBlock(m Message) string {
	text := tview.Escape(m.Text)
	switch m.Role {
	case RoleUser:
		return "[red::b]You:[-::-] " + text + "\n"
	case RoleAssistant:
		return "[green::b]Assistant:[-::-]\n" + text + "\n"
	case RoleError:
		return "[yellow::b]Error:[-::-] " + text + "\n"
	default:
		return "[gray::i]" + text + "[-::-]\n"
	}
}
