package ui

import (
	"testing"
	"time"

	"github.com/bz888/docask/internal/docs"
	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		cmd   command
		arg   string
		ok    bool
	}{
		{input: "/help", cmd: cmdHelp, ok: true},
		{input: "  /docs  ", cmd: cmdDocs, ok: true},
		{input: "/upload ~/papers/a b.pdf", cmd: cmdUpload, arg: "~/papers/a b.pdf", ok: true},
		{input: "/save out.html", cmd: cmdSave, arg: "out.html", ok: true},
		{input: "/QUIT", cmd: cmdBye, ok: true},
		{input: "/exit", cmd: cmdBye, ok: true},
		{input: "/unknown thing", ok: false},
		{input: "what does /help do?", ok: false},
		{input: "", ok: false},
	}

	for _, tt := range tests {
		cmd, arg, ok := parseCommand(tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
		assert.Equal(t, tt.cmd, cmd, tt.input)
		assert.Equal(t, tt.arg, arg, tt.input)
	}
}

func TestFormatDocuments(t *testing.T) {
	assert.Equal(t, "No documents uploaded in this session.", formatDocuments(nil))

	at := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	got := formatDocuments([]docs.Document{{DocID: "42", Filename: "a.pdf", UploadedAt: at}})
	assert.Equal(t, "Documents uploaded in this session:\n- a.pdf (doc_id=42) at 09:30:00", got)
}
