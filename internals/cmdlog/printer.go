package cmdlog

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/jwalton/gchalk"
)

// Printer prints pretty stuff to the console
type Printer struct {
	out       io.Writer
	emojis    bool
	chalk     *gchalk.Builder
	indention int
}

// NewPrinter returns a new Printer writing to out
func NewPrinter(out io.Writer, noColor bool) *Printer {
	emojis := runtime.GOOS != "windows"
	level := gchalk.GetLevel()

	// disable color for CI
	if noColor || os.Getenv("CI") != "" {
		emojis = false
		level = gchalk.LevelNone
	}
	return &Printer{out: out, emojis: emojis, chalk: gchalk.New(gchalk.ForceLevel(level))}
}

// helper for indention
func (p *Printer) println(a string) {
	fmt.Fprintln(p.out, strings.Repeat(" ", p.indention)+a)
}

func (p *Printer) sprintEmoji(e string) string {
	if p.emojis {
		return e + " "
	}
	return ""
}

// Headline prints a cyan bold line
func (p *Printer) Headline(s string) {
	fmt.Fprintln(p.out, p.chalk.WithCyan().Bold(s))
}

// Info prints a "normal" line
func (p *Printer) Info(s string) {
	p.println(s)
}

// Gray prints a dimmed line
func (p *Printer) Gray(s string) {
	p.println(p.chalk.Gray(s))
}

// Warn will print a warning
func (p *Printer) Warn(s string) {
	fmt.Fprintln(p.out, p.sprintEmoji("⚠️ ")+p.chalk.WithYellow().Bold(s))
}

// NewTask returns a new Task printer with end steps
func (p *Printer) NewTask(end int) *Task {
	printer := *p
	printer.indention = 2
	return &Task{Printer: &printer, end: end}
}

// Task prints but with progress
type Task struct {
	*Printer
	current int
	end     int
}

// Step prints the next step headline
func (t *Task) Step(e string, s string) {
	t.current++
	text := t.chalk.Cyan(fmt.Sprintf(
		"[%d / %d] %s%s",
		t.current,
		t.end,
		t.sprintEmoji(e),
		s,
	))

	// we don't use t.println here, because step headlines should have no indentation
	fmt.Fprintln(t.out, text)
}
