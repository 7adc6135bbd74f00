// Package viewer is the terminal surface of dicomloop: it loads a series,
// loops through its frames and shows the two renderings with the metadata.
package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrsinham/dicomloop/cmd/dicomloop/viewer/components"
	"github.com/mrsinham/dicomloop/internal/config"
	"github.com/mrsinham/dicomloop/internal/dicom"
	dcmimage "github.com/mrsinham/dicomloop/internal/image"
	"github.com/mrsinham/dicomloop/internal/logger"
	"github.com/mrsinham/dicomloop/internal/playback"
	"github.com/mrsinham/dicomloop/internal/util"
)

const (
	noFilesMessage     = "No DICOM files found"
	noImageMessage     = "Unable to display DICOM image"
	reservedLines      = 12 // Title, info panel and help
	minImageLines      = 4
	placeholderMinCols = 32
)

// Options configures the viewer.
type Options struct {
	Dir         string
	Extension   string
	FPS         int
	ExtraFields []util.TagInfo
	ShowStats   bool
}

// framesLoadedMsg carries the result of the directory scan.
type framesLoadedMsg struct {
	frames []dicom.Frame
	err    error
}

// Model is the bubbletea model of the viewer.
type Model struct {
	opts    Options
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	info    *components.InfoPanel

	session *playback.Session
	view    playback.FrameView
	hasView bool

	loading bool
	paused  bool // Paused by the user
	focused bool // Terminal has focus
	message string

	width  int
	height int

	quitting bool
}

// New creates a viewer over opts.Dir. Frames are loaded once Init runs.
func New(opts Options) *Model {
	if opts.FPS <= 0 {
		opts.FPS = config.DefaultFPS
	}

	info := components.NewInfoPanel()
	info.SetShowStats(opts.ShowStats)

	return &Model{
		opts:    opts,
		keys:    defaultKeys,
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		info:    info,
		loading: true,
		focused: true,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadFrames(m.opts.Dir, m.opts.Extension))
}

func loadFrames(dir, ext string) tea.Cmd {
	return func() tea.Msg {
		frames, err := dicom.LoadFrames(dir, dicom.LoadOptions{Extension: ext})
		return framesLoadedMsg{frames: frames, err: err}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.info.SetWidth(msg.Width)
		return m, nil

	case framesLoadedMsg:
		return m, m.setFrames(msg.frames, msg.err)

	case tea.FocusMsg:
		m.focused = true
		return m, m.resume()

	case tea.BlurMsg:
		m.focused = false
		m.suspend()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case playback.TickMsg:
		if m.session == nil {
			return m, nil
		}
		// Stale ticks return nil and leave the cursor alone
		cmd := m.session.Driver().Update(msg)
		if cmd != nil {
			m.refresh()
		}
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.suspend()
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Stats):
		m.opts.ShowStats = !m.opts.ShowStats
		m.info.SetShowStats(m.opts.ShowStats)
	}

	if m.session == nil {
		return nil
	}
	driver := m.session.Driver()

	switch {
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		if m.paused {
			m.suspend()
			return nil
		}
		return m.resume()

	case key.Matches(msg, m.keys.Next):
		driver.Step(1)
		m.refresh()

	case key.Matches(msg, m.keys.Prev):
		driver.Step(-1)
		m.refresh()

	case key.Matches(msg, m.keys.Faster):
		return m.setFPS(driver.FPS() + 1)

	case key.Matches(msg, m.keys.Slower):
		return m.setFPS(driver.FPS() - 1)
	}

	return nil
}

// setFrames installs the loaded series and starts playback.
func (m *Model) setFrames(frames []dicom.Frame, err error) tea.Cmd {
	m.loading = false
	m.session = playback.NewSession(frames, playback.Options{
		Interval:    config.FPSInterval(m.opts.FPS),
		ExtraFields: m.opts.ExtraFields,
	})

	switch {
	case err != nil:
		m.message = err.Error()
	case len(frames) == 0:
		m.message = noFilesMessage
	default:
		m.message = ""
	}

	logger.Log.WithField("dir", m.opts.Dir).WithField("frames", len(frames)).Info("Viewer ready")
	m.refresh()
	return m.resume()
}

func (m *Model) setFPS(fps int) tea.Cmd {
	fps = min(max(fps, 1), config.MaxFPS)
	m.opts.FPS = fps
	return m.session.Driver().SetFPS(fps)
}

// resume starts playback when the frames are on screen and nothing holds it.
func (m *Model) resume() tea.Cmd {
	if m.session == nil || m.session.Len() == 0 || m.paused || !m.focused {
		return nil
	}
	if m.session.Driver().Running() {
		return nil
	}
	return m.session.Driver().Start()
}

func (m *Model) suspend() {
	if m.session != nil {
		m.session.Driver().Stop()
	}
}

// refresh re-derives the frame under the cursor.
func (m *Model) refresh() {
	if m.session == nil {
		return
	}
	m.view, m.hasView = m.session.Current()
	if m.hasView {
		m.info.SetFrame(m.view, m.session.Len())
		if m.view.Err != nil {
			logger.Log.WithError(m.view.Err).WithField("file", m.view.Filename).Debug("Frame not drawable")
		}
	}
}

// Running reports whether frames are advancing.
func (m *Model) Running() bool {
	return m.session != nil && m.session.Driver().Running()
}

// Cursor is the index of the frame on screen.
func (m *Model) Cursor() int {
	if m.session == nil {
		return 0
	}
	return m.session.Cursor()
}

// View implements tea.Model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := components.TitleStyle.Render("dicomloop") + " " + components.SubtitleStyle.Render(m.opts.Dir)

	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			m.spinner.View()+" Loading DICOM files...",
		)
	}

	if m.session == nil || m.session.Len() == 0 || !m.hasView {
		msg := m.message
		if msg == "" {
			msg = noFilesMessage
		}
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			components.ErrorStyle.Render(msg),
			"",
			m.help.View(m.keys),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.renderImages(),
		m.info.View(),
		m.statusLine(),
		m.help.View(m.keys),
	)
}

func (m *Model) renderImages() string {
	maxLines := max(m.height-reservedLines, minImageLines)
	maxCols := max(m.width/2-1, 1)

	if !m.view.HasImage() {
		cols := min(max(maxCols, placeholderMinCols), m.width)
		return components.PlaceholderStyle.
			Width(cols).
			Height(min(maxLines, 6)).
			Render("▣\n" + noImageMessage)
	}

	left := m.view.Left.Bounds()
	cols, lines := dcmimage.FitCells(left.Dx(), left.Dy(), maxCols, maxLines)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		dcmimage.HalfBlocks(m.view.Left, cols, lines),
		" ",
		dcmimage.HalfBlocks(m.view.Right, cols, lines),
	)
}

func (m *Model) statusLine() string {
	var state string
	switch {
	case m.paused:
		state = "⏸ paused"
	case m.Running():
		state = "▶ playing"
	default:
		state = "■ stopped"
	}

	var sb strings.Builder
	sb.WriteString(components.StatusStyle.Render(state))
	sb.WriteString(components.SubtitleStyle.Render(fmt.Sprintf("  %d fps", m.opts.FPS)))
	if m.view.Err != nil {
		sb.WriteString("  ")
		sb.WriteString(components.ErrorStyle.Render(m.view.Err.Error()))
	}
	return sb.String()
}

// Run starts the viewer full screen and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithReportFocus())
	start := time.Now()
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	logger.Log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Debug("Viewer closed")
	return nil
}
