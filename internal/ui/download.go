package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DownloadProgress displays an animated progress line for streaming model
// downloads (outside Bubble Tea). The Ollama daemon reports several
// phases: status-only lines ("pulling manifest") and byte-counted blob
// transfers; both render on the same line.
type DownloadProgress struct {
	mu           sync.Mutex
	label        string
	status       string
	completed    int64
	total        int64
	startTime    time.Time
	stopChan     chan struct{}
	doneChan     chan struct{}
	output       io.Writer
	running      bool
	lastRendered string
	width        int
}

// NewDownloadProgress creates a new download progress display.
func NewDownloadProgress(label string, output io.Writer) *DownloadProgress {
	return &DownloadProgress{
		label:  label,
		output: output,
		width:  30,
	}
}

// SetWidth sets the progress bar width.
func (p *DownloadProgress) SetWidth(w int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.width = w
}

// Start begins the progress animation.
func (p *DownloadProgress) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.startTime = time.Now()
	p.stopChan = make(chan struct{})
	p.doneChan = make(chan struct{})
	p.mu.Unlock()

	p.render()

	go p.animate()
}

// Update records the latest progress chunk from the daemon.
func (p *DownloadProgress) Update(status string, completed, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
	if total > 0 {
		p.completed = completed
		p.total = total
	}
}

// Stop halts the progress animation.
func (p *DownloadProgress) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopChan)
	p.mu.Unlock()

	<-p.doneChan
}

// Success stops and renders the success state.
func (p *DownloadProgress) Success() {
	p.Stop()
	p.renderFinal(true)
}

// Fail stops and renders the failure state.
func (p *DownloadProgress) Fail() {
	p.Stop()
	p.renderFinal(false)
}

func (p *DownloadProgress) animate() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	defer close(p.doneChan)

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.render()
		}
	}
}

func (p *DownloadProgress) render() {
	p.mu.Lock()
	defer p.mu.Unlock()

	frame := spinnerFrames[int(time.Since(p.startTime).Milliseconds()/100)%len(spinnerFrames)]
	symbolStyle := lipgloss.NewStyle().Foreground(ColorInfo)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var detail string
	if p.total > 0 {
		percent := float64(p.completed) / float64(p.total) * 100
		bar := RenderBar(percent, p.width, ProgressColor)
		pct := lipgloss.NewStyle().Foreground(ColorPrimary).Render(fmt.Sprintf("%3.0f%%", percent))
		detail = fmt.Sprintf("%s %s %s", bar,
			pct,
			mutedStyle.Render(FormatBytes(p.completed)+" / "+FormatBytes(p.total)))
	} else if p.status != "" {
		detail = mutedStyle.Render(p.status)
	}

	line := fmt.Sprintf("\r%s %s %s", symbolStyle.Render(frame), p.label, detail)

	if p.lastRendered != "" {
		clearLen := len([]rune(stripAnsi(p.lastRendered)))
		fmt.Fprintf(p.output, "\r%s\r", strings.Repeat(" ", clearLen))
	}

	fmt.Fprint(p.output, line)
	p.lastRendered = line
}

func (p *DownloadProgress) renderFinal(success bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lastRendered != "" {
		clearLen := len([]rune(stripAnsi(p.lastRendered)))
		fmt.Fprintf(p.output, "\r%s\r", strings.Repeat(" ", clearLen))
	}

	var symbol string
	var style lipgloss.Style

	if success {
		symbol = SymbolSuccess
		style = lipgloss.NewStyle().Foreground(ColorSuccess)
	} else {
		symbol = SymbolFail
		style = lipgloss.NewStyle().Foreground(ColorError)
	}

	elapsed := time.Since(p.startTime)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	var sizeInfo string
	if p.total > 0 {
		sizeInfo = " " + timingStyle.Render("("+FormatBytes(p.total)+")")
	}

	fmt.Fprintf(p.output, "%s %s%s %s\n",
		style.Render(symbol),
		p.label,
		sizeInfo,
		timingStyle.Render(formatDuration(elapsed)),
	)
}

// stripAnsi removes ANSI escape codes from a string for length calculation.
func stripAnsi(s string) string {
	result := strings.Builder{}
	inEscape := false
	for _, r := range s {
		if r == '\x1b' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
