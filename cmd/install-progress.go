package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/minepkg/mcfetch/internals/downloadmgr"
	"github.com/minepkg/mcfetch/internals/utils"
	"github.com/muesli/reflow/truncate"
)

// downloadFunc runs the actual download and reports progress to onProgress
type downloadFunc func(ctx context.Context, onProgress downloadmgr.ProgressFunc) error

type progressMsg struct {
	name      string
	completed int
	total     int
	class     downloadmgr.DownloadClass
}

type downloadDoneMsg struct{}

type classProgress struct {
	completed int
	total     int
}

func (c classProgress) percent() float64 {
	if c.total == 0 {
		return 0
	}
	return float64(c.completed) / float64(c.total)
}

var (
	currentFileStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	labelStyle       = lipgloss.NewStyle().Width(12)
	checkMark        = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).SetString("✓")
)

type downloadModel struct {
	classes  [2]classProgress
	last     string
	width    int
	spinner  spinner.Model
	progress progress.Model
	cancel   context.CancelFunc
	canceled bool
	done     bool
}

func newDownloadModel(cancel context.CancelFunc) downloadModel {
	p := progress.New(
		progress.WithDefaultGradient(),
		progress.WithWidth(40),
		progress.WithoutPercentage(),
	)
	s := spinner.New()
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	return downloadModel{
		spinner:  s,
		progress: p,
		cancel:   cancel,
	}
}

func (m downloadModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			// the download returns shortly after and sends downloadDoneMsg
			m.canceled = true
			m.cancel()
		}
	case progressMsg:
		class := &m.classes[msg.class]
		// progress of concurrent downloads can arrive out of order
		if msg.completed > class.completed {
			class.completed = msg.completed
		}
		class.total = msg.total
		m.last = msg.name
	case downloadDoneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m downloadModel) View() string {
	if m.done {
		return ""
	}

	lines := []string{
		m.line("Core files", m.classes[downloadmgr.ClassCore]),
		m.line("Assets", m.classes[downloadmgr.ClassResource]),
	}
	status := m.last
	if m.canceled {
		status = "canceling …"
	}
	if m.width > 4 {
		status = truncate.StringWithTail(status, uint(m.width-4), "…")
	}
	lines = append(lines, "  "+currentFileStyle.Render(status), "")
	return strings.Join(lines, "\n")
}

func (m downloadModel) line(label string, c classProgress) string {
	prefix := m.spinner.View()
	if c.total != 0 && c.completed == c.total {
		prefix = checkMark.String()
	}
	w := lipgloss.Width(fmt.Sprint(c.total))
	return fmt.Sprintf(
		"%s %s %s %*d/%*d",
		prefix,
		labelStyle.Render(label),
		m.progress.ViewAs(c.percent()),
		w, c.completed,
		w, c.total,
	)
}

// runWithProgressUI runs download while rendering progress bars to out
func runWithProgressUI(ctx context.Context, out io.Writer, download downloadFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newDownloadModel(cancel), tea.WithOutput(out))

	result := make(chan error, 1)
	go func() {
		err := download(ctx, func(name string, completed int, total int, class downloadmgr.DownloadClass) {
			p.Send(progressMsg{name: name, completed: completed, total: total, class: class})
		})
		result <- err
		p.Send(downloadDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-result
		return err
	}
	return <-result
}

// plainProgress prints a line every 10 percent of a class. Used if stdout is no terminal
type plainProgress struct {
	mu      sync.Mutex
	out     io.Writer
	printed [2]int
}

func (p *plainProgress) report(name string, completed int, total int, class downloadmgr.DownloadClass) {
	p.mu.Lock()
	defer p.mu.Unlock()

	step := completed * 10 / total
	if step <= p.printed[class] && completed != total {
		return
	}
	if completed == total && p.printed[class] == 11 {
		return
	}
	p.printed[class] = step
	if completed == total {
		p.printed[class] = 11
	}

	label := "core files"
	if class == downloadmgr.ClassResource {
		label = "assets"
	}
	fmt.Fprintf(p.out, "  %3d%% %s (%s/%s)\n", completed*100/total, label, utils.HumanInteger(completed), utils.HumanInteger(total))
}

func runWithPlainProgress(ctx context.Context, out io.Writer, download downloadFunc) error {
	p := &plainProgress{out: out}
	return download(ctx, p.report)
}
