package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// maybeSpinner is a spinner that can also just log text
type maybeSpinner struct {
	spin    bool
	out     io.Writer
	spinner *spinner.Spinner
}

// Start might start the spinner
func (m *maybeSpinner) Start(msg string) {
	if m.spin {
		m.spinner.Suffix = " " + msg
		m.spinner.Start()
		return
	}
	fmt.Fprintln(m.out, "  "+msg)
}

// Stop will stop the spinner
func (m *maybeSpinner) Stop() {
	if m.spin {
		m.spinner.Stop()
	}
}

func newMaybeSpinner(spin bool, out io.Writer) *maybeSpinner {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(out))
	s.Prefix = "  "
	return &maybeSpinner{spin: spin, out: out, spinner: s}
}
