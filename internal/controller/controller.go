// Package controller handles the upload and ask submissions: it validates
// the form fields, calls the document server and writes the outcome into the
// view and the transcript.
package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bz888/docask/internal/api"
	"github.com/bz888/docask/internal/docs"
	"github.com/bz888/docask/internal/logger"
	"github.com/bz888/docask/internal/transcript"
	"go.uber.org/zap"
)

const (
	MsgSelectFile    = "Select a PDF"
	MsgEnterDocID    = "Enter document id"
	MsgEnterQuestion = "Enter question"
)

var (
	ErrNoFile     = errors.New(MsgSelectFile)
	ErrNoDocID    = errors.New(MsgEnterDocID)
	ErrNoQuestion = errors.New(MsgEnterQuestion)
)

type Backend interface {
	Upload(ctx context.Context, filename string, content io.Reader) api.UploadResult
	Ask(ctx context.Context, docID, question string) api.AskResult
}

// View is the display side. Implementations must be safe to call from any goroutine.
type View interface {
	Alert(message string)
	SetUploadResult(text string)
	SetDocID(docID string)
	// TranscriptChanged redraws the conversation and scrolls it to the bottom.
	TranscriptChanged()
}

// File is one selected file.
type File struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// FileFromPath selects a file on disk under its base name.
func FileFromPath(path string) File {
	return File{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

type UploadForm struct {
	Files []File
}

type AskForm struct {
	DocID    string
	Question string
}

type Controller struct {
	backend     Backend
	view        View
	transcript  *transcript.Transcript
	docs        *docs.Registry
	localLogger *logger.Logger
}

func New(backend Backend, view View, tr *transcript.Transcript, registry *docs.Registry) *Controller {
	return &Controller{
		backend:     backend,
		view:        view,
		transcript:  tr,
		docs:        registry,
		localLogger: logger.NewLogger("controller"),
	}
}

// SubmitUpload sends the first selected file. It only returns an error when
// validation stopped the submission; server and transport failures are shown
// in the upload result area.
func (c *Controller) SubmitUpload(ctx context.Context, form UploadForm) error {
	if len(form.Files) == 0 {
		c.view.Alert(MsgSelectFile)
		return ErrNoFile
	}
	file := form.Files[0]

	result := c.upload(ctx, file)
	if result.Status.Failed() {
		c.view.SetUploadResult("Upload error: " + result.Error)
		return nil
	}

	c.view.SetUploadResult(fmt.Sprintf("Uploaded: %s (doc_id=%s)", result.Filename, result.DocID))
	c.view.SetDocID(result.DocID)
	if c.docs != nil {
		c.docs.Remember(result.DocID, result.Filename)
	}
	return nil
}

func (c *Controller) upload(ctx context.Context, file File) api.UploadResult {
	rc, err := file.Open()
	if err != nil {
		c.localLogger.Error("cannot open selected file", zap.String("filename", file.Name), zap.Error(err))
		return api.UploadResult{Status: api.StatusTransportError, Error: err.Error()}
	}
	defer rc.Close()

	return c.backend.Upload(ctx, file.Name, rc)
}

// SubmitAsk records the question, asks the server and records the answer.
// Concurrent calls append in the order their replies arrive.
func (c *Controller) SubmitAsk(ctx context.Context, form AskForm) error {
	if form.DocID == "" {
		c.view.Alert(MsgEnterDocID)
		return ErrNoDocID
	}
	if form.Question == "" {
		c.view.Alert(MsgEnterQuestion)
		return ErrNoQuestion
	}

	c.transcript.User(form.Question)
	c.view.TranscriptChanged()

	result := c.backend.Ask(ctx, form.DocID, form.Question)
	switch {
	case result.Status == api.StatusSuccess:
		c.transcript.Assistant(result.Response)
	case result.Status.Failed():
		c.transcript.Error(result.Error)
	default:
		c.localLogger.Warn("nothing to show for exchange", zap.String("doc_id", form.DocID))
	}

	c.view.TranscriptChanged()
	return nil
}

// Transcript exposes the conversation for rendering.
func (c *Controller) Transcript() *transcript.Transcript {
	return c.transcript
}

// Documents exposes the session registry. It may be nil.
func (c *Controller) Documents() *docs.Registry {
	return c.docs
}
