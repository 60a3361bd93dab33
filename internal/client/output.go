package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/MKhiriev/go-safe-keeper/models"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	successColor   = color.New(color.FgGreen)
	errorColor     = color.New(color.FgRed)
	highlightColor = color.New(color.FgCyan)
	mutedColor     = color.New(color.Faint)
)

// FormatError renders a failure message the way commands report it.
func FormatError(msg string) string {
	return errorColor.Sprint("✗") + " " + msg
}

func printSuccess(w io.Writer, format string, a ...any) {
	fmt.Fprintln(w, successColor.Sprint("✓")+" "+fmt.Sprintf(format, a...))
}

func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%-14s %s\n", label+":", highlightColor.Sprint(value))
}

// activity is a spinner shown while waiting on the network. It is paused
// while a prompt owns the terminal.
type activity struct {
	mu      sync.Mutex
	spinner *spinner.Spinner
	running bool
}

func newActivity(w io.Writer) *activity {
	opt := spinner.WithWriter(w)
	if f, ok := w.(*os.File); ok {
		opt = spinner.WithWriterFile(f)
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, opt)
	_ = s.Color("cyan")
	return &activity{spinner: s}
}

func (a *activity) start(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.spinner.Suffix = " " + message
	a.spinner.Start()
	a.running = true
}

func (a *activity) stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.spinner.Stop()
	a.running = false
}

// pause stops the spinner and returns a function that restarts it if it
// was running.
func (a *activity) pause() func() {
	a.mu.Lock()
	wasRunning := a.running
	a.mu.Unlock()
	if !wasRunning {
		return func() {}
	}
	a.spinner.Stop()
	return func() { a.spinner.Start() }
}

// pausingApprover hides the spinner for the length of a signature prompt.
type pausingApprover struct {
	prompter Prompter
	activity *activity
}

func (p pausingApprover) Approve(ctx context.Context, req models.SignatureRequest) (bool, error) {
	resume := p.activity.pause()
	defer resume()
	return p.prompter.Approve(ctx, req)
}
