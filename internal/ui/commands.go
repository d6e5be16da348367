package ui

import (
	"fmt"
	"strings"

	"github.com/bz888/docask/internal/docs"
)

type command string

const (
	cmdHelp   command = "/help"
	cmdDocs   command = "/docs"
	cmdUpload command = "/upload"
	cmdSave   command = "/save"
	cmdDebug  command = "/debug"
	cmdBye    command = "/bye"
)

var aliases = map[string]command{
	"/help":   cmdHelp,
	"/docs":   cmdDocs,
	"/upload": cmdUpload,
	"/save":   cmdSave,
	"/debug":  cmdDebug,
	"/bye":    cmdBye,
	"/quit":   cmdBye,
	"/exit":   cmdBye,
}

// parseCommand recognises a slash command typed into the question area.
// Anything else, including unknown slash words, is a question.
func parseCommand(input string) (command, string, bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		return "", "", false
	}
	name, arg, _ := strings.Cut(trimmed, " ")
	cmd, ok := aliases[strings.ToLower(name)]
	if !ok {
		return "", "", false
	}
	return cmd, strings.TrimSpace(arg), true
}

const helpText = `Keys:
- F2: upload form, F3: document id, F4: question
- Enter in the question area asks, Esc moves to the conversation
Commands:
- /help: Display this help message
- /docs: List documents uploaded in this session
- /upload <path>: Upload a PDF
- /save <path>: Save the conversation as HTML
- /debug: Toggle the debug console
- /bye: Exit the application`

func formatDocuments(list []docs.Document) string {
	if len(list) == 0 {
		return "No documents uploaded in this session."
	}
	var b strings.Builder
	b.WriteString("Documents uploaded in this session:")
	for _, d := range list {
		fmt.Fprintf(&b, "\n- %s (doc_id=%s) at %s", d.Filename, d.DocID, d.UploadedAt.Format("15:04:05"))
	}
	return b.String()
}
