package ui

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bz888/docask/internal/controller"
	"github.com/bz888/docask/internal/docs"
	"github.com/bz888/docask/internal/logger"
	"github.com/bz888/docask/internal/transcript"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

const (
	alertPage       = "alert"
	shutdownTimeout = 2 * time.Second
)

type UI struct {
	app      *tview.Application
	pages    *tview.Pages
	mainFlex *tview.Flex

	uploadForm   *tview.Form
	fileInput    *tview.InputField
	uploadResult *tview.TextView
	askForm      *tview.Form
	docIDInput   *tview.InputField
	textArea     *tview.TextArea
	textView     *tview.TextView
	debugConsole *tview.TextView

	debugShown bool

	view        *view
	ctrl        *controller.Controller
	localLogger *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New builds the widgets. The debug console exists from the start so the
// logger can write to it; it is only shown in dev mode or after /debug.
func New(dev bool) *UI {
	u := &UI{
		app:        tview.NewApplication(),
		debugShown: dev,
	}
	u.ctx, u.cancel = context.WithCancel(context.Background())
	u.view = &view{u: u}
	u.app.EnablePaste(true)
	u.app.EnableMouse(true)

	u.debugConsole = u.initDebugConsole()
	u.textView = u.initChatViewer()
	u.textArea = initQuestionInput()
	u.fileInput = tview.NewInputField().SetLabel("PDF file ").SetFieldWidth(0)
	u.uploadResult = tview.NewTextView().SetWordWrap(true)
	u.uploadResult.SetTitle("Upload").SetBorder(true)
	u.docIDInput = tview.NewInputField().SetLabel("Document id ").SetFieldWidth(0)

	return u
}

// The conversation is only ever redrawn through QueueUpdateDraw, so it has no
// changed handler.
func (u *UI) initChatViewer() *tview.TextView {
	textView := tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	textView.SetTitle("Conversation").SetBorder(true)
	textView.SetScrollable(true)
	textView.ScrollToEnd()
	return textView
}

func initQuestionInput() *tview.TextArea {
	textArea := tview.NewTextArea().SetPlaceholder("Ask about the document, or /help")
	textArea.SetTitle("Question").SetBorder(true)
	return textArea
}

func (u *UI) initDebugConsole() *tview.TextView {
	console := tview.NewTextView().
		SetChangedFunc(func() {
			u.app.Draw()
		}).
		SetDynamicColors(true).
		SetRegions(true).
		SetWordWrap(true)

	console.SetTitle("Debugger").SetBorder(true)
	console.ScrollToEnd()
	return console
}

// DebugConsole is the sink for dev-mode log lines.
func (u *UI) DebugConsole() *tview.TextView {
	return u.debugConsole
}

// Attach wires the form controller. It must run after logger.InitLogger.
func (u *UI) Attach(backend controller.Backend, tr *transcript.Transcript, registry *docs.Registry) {
	u.localLogger = logger.NewLogger("views")
	u.ctrl = controller.New(backend, u.view, tr, registry)
}

// Run blocks until the user quits.
func (u *UI) Run() error {
	if u.ctrl == nil {
		return fmt.Errorf("ui: Run called before Attach")
	}

	u.uploadForm = tview.NewForm().
		AddFormItem(u.fileInput).
		AddButton("Upload", u.submitUpload)
	u.uploadForm.SetTitle("Upload a PDF (F2)").SetBorder(true)

	u.askForm = tview.NewForm().
		AddFormItem(u.docIDInput).
		AddButton("Ask", func() { u.submitAsk(u.textArea.GetText()) })
	u.askForm.SetTitle("Ask (F3)").SetBorder(true)

	topRow := tview.NewFlex().
		AddItem(u.uploadForm, 0, 2, false).
		AddItem(u.uploadResult, 0, 1, false)

	subFlex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(topRow, 7, 0, false).
		AddItem(u.textView, 0, 1, false).
		AddItem(u.askForm, 5, 0, false).
		AddItem(u.textArea, 6, 0, true)
	u.mainFlex = tview.NewFlex().
		AddItem(subFlex, 0, 2, true)

	if u.debugShown {
		u.mainFlex.AddItem(u.debugConsole, 0, 1, false)
	}

	u.setInputCapture()

	u.pages = tview.NewPages().AddPage("main", u.mainFlex, true, true)

	u.localLogger.Info("ui started")
	err := u.app.SetRoot(u.pages, true).SetFocus(u.textArea).Run()

	u.cancel()
	u.waitForSubmissions(shutdownTimeout)
	return err
}

// waitForSubmissions gives in-flight exchanges a moment to observe the
// cancelled context.
func (u *UI) waitForSubmissions(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		u.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		u.localLogger.Warn("shutdown timeout exceeded, some requests may not have completed",
			zap.Duration("timeout", timeout))
	}
}

func (u *UI) setInputCapture() {
	u.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if u.pages != nil && u.pages.HasPage(alertPage) {
			return event
		}
		switch event.Key() {
		case tcell.KeyF2:
			u.app.SetFocus(u.uploadForm)
			return nil
		case tcell.KeyF3:
			u.app.SetFocus(u.askForm)
			return nil
		case tcell.KeyF4:
			u.app.SetFocus(u.textArea)
			return nil
		}
		return event
	})

	u.textView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEnter {
			u.app.SetFocus(u.textArea)
		}
		return event
	})

	u.textArea.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyESC:
			if u.textView.GetText(false) != "" {
				u.app.SetFocus(u.textView)
			}
		case tcell.KeyEnter:
			if event.Modifiers()&tcell.ModAlt != 0 {
				return event
			}
			content := u.textArea.GetText()
			if cmd, arg, ok := parseCommand(content); ok {
				u.textArea.SetText("", true)
				u.runCommand(cmd, arg)
				return nil
			}
			u.submitAsk(content)
			return nil
		}
		return event
	})
}

// submitUpload and submitAsk read the fields on the event goroutine and hand
// the exchange to a goroutine, so several can be in flight at once.
func (u *UI) submitUpload() {
	form := controller.UploadForm{}
	if path := u.fileInput.GetText(); path != "" {
		form.Files = []controller.File{controller.FileFromPath(path)}
	}
	u.goSubmit(func(ctx context.Context) error {
		return u.ctrl.SubmitUpload(ctx, form)
	})
}

func (u *UI) submitAsk(question string) {
	form := controller.AskForm{DocID: u.docIDInput.GetText(), Question: question}
	if form.DocID != "" && form.Question != "" {
		u.textArea.SetText("", true)
	}
	u.goSubmit(func(ctx context.Context) error {
		return u.ctrl.SubmitAsk(ctx, form)
	})
}

func (u *UI) goSubmit(submit func(ctx context.Context) error) {
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		if err := submit(u.ctx); err != nil {
			u.localLogger.Info("submission stopped", zap.Error(err))
		}
	}()
}

func (u *UI) runCommand(cmd command, arg string) {
	tr := u.ctrl.Transcript()
	switch cmd {
	case cmdHelp:
		tr.Info(helpText)
		u.refreshTranscript()
	case cmdDocs:
		var list []docs.Document
		if registry := u.ctrl.Documents(); registry != nil {
			list = registry.List()
		}
		tr.Info(formatDocuments(list))
		u.refreshTranscript()
	case cmdUpload:
		u.fileInput.SetText(arg)
		u.submitUpload()
	case cmdSave:
		u.saveTranscript(arg)
	case cmdDebug:
		u.toggleDebugConsole()
	case cmdBye:
		u.quit()
	}
}

func (u *UI) saveTranscript(path string) {
	if path == "" {
		u.showAlert("Enter a file name: /save <path>")
		return
	}
	tr := u.ctrl.Transcript()
	page := transcript.Document("docask conversation", tr.Messages())

	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
			u.localLogger.Error("save transcript", zap.String("path", path), zap.Error(err))
			u.view.Alert("Save failed: " + err.Error())
			return
		}
		u.localLogger.Info("transcript saved", zap.String("path", path))
		tr.Info("Saved conversation to " + path)
		u.view.TranscriptChanged()
	}()
}

func (u *UI) toggleDebugConsole() {
	if u.debugShown {
		u.mainFlex.RemoveItem(u.debugConsole)
	} else {
		u.mainFlex.AddItem(u.debugConsole, 0, 1, false)
	}
	u.debugShown = !u.debugShown
}

func (u *UI) quit() {
	u.localLogger.Info("shutting down")
	u.cancel()
	u.app.Stop()
}

// refreshTranscript must run on the event goroutine.
func (u *UI) refreshTranscript() {
	u.textView.SetText(transcript.RenderTerminal(u.ctrl.Transcript().Messages()))
	u.textView.ScrollToEnd()
}

// showAlert must run on the event goroutine.
func (u *UI) showAlert(message string) {
	previous := u.app.GetFocus()
	modal := tview.NewModal().
		SetText(message).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(int, string) {
			u.pages.RemovePage(alertPage)
			if previous != nil {
				u.app.SetFocus(previous)
			}
		})
	u.pages.AddPage(alertPage, modal, false, true)
	u.app.SetFocus(modal)
}

// view adapts the UI to controller.View; every call hops onto the event
// goroutine. Once the UI is shutting down updates are dropped, since nothing
// drains the queue after the application stops.
type view struct {
	u *UI
}

func (v *view) queue(f func()) {
	if v.u.ctx.Err() != nil {
		return
	}
	v.u.app.QueueUpdateDraw(f)
}

func (v *view) Alert(message string) {
	v.queue(func() { v.u.showAlert(message) })
}

func (v *view) SetUploadResult(text string) {
	v.queue(func() { v.u.uploadResult.SetText(text) })
}

func (v *view) SetDocID(docID string) {
	v.queue(func() { v.u.docIDInput.SetText(docID) })
}

func (v *view) TranscriptChanged() {
	v.queue(v.u.refreshTranscript)
}
