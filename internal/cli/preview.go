package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flexgrid/pkg/album"
	"github.com/matzehuels/flexgrid/pkg/flexgrid"
	"github.com/matzehuels/flexgrid/pkg/layout"
	"github.com/matzehuels/flexgrid/pkg/pipeline"
	"github.com/matzehuels/flexgrid/pkg/render"
)

const (
	minColumnStep = 20.0
	previewChrome = 4 // title, help, blank line, status
)

var (
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
	previewFrameStyle  = lipgloss.NewStyle().Foreground(colorWhite)
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		opts pipeline.Options
		step float64
	)

	cmd := &cobra.Command{
		Use:   "preview [album.toml|album.json]",
		Short: "Resize an album layout interactively",
		Long: `Resize an album layout interactively in the terminal.

  ←/→  narrow or widen the container
  -/+  lower or raise the minimum column width
  ↑/↓  scroll
  r    reset
  q    quit

Every change re-runs the layout the way a browser would on resize.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.AlbumPath = args[0]
			opts.Logger = c.Logger
			if err := opts.ValidateForLoad(); err != nil {
				return err
			}
			if err := opts.ValidateForLayout(); err != nil {
				return err
			}
			a, err := pipeline.Load(cmd.Context(), opts)
			if err != nil {
				return err
			}

			m, err := newPreviewModel(a, opts.Width, opts.GridConfig(a), step)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	gridFlags(cmd, &opts)
	cmd.Flags().Float64Var(&step, "step", 50, "width change per key press")

	return cmd
}

// previewModel drives a live Grid. The grid reads its width through a
// WidthFunc bound to the model, so the model is used by pointer.
type previewModel struct {
	album *album.Album
	grid  *flexgrid.Grid
	rec   *flexgrid.Recorder

	width     float64 // container width fed to the grid
	initWidth float64
	initMin   float64
	minWidth  float64
	step      float64

	cols, rows int // terminal size
	offset     int
	err        error
}

func newPreviewModel(a *album.Album, width float64, cfg flexgrid.Config, step float64) (*previewModel, error) {
	m := &previewModel{
		album:     a,
		rec:       flexgrid.NewRecorder(),
		width:     width,
		initWidth: width,
		initMin:   cfg.MinColumnWidth,
		minWidth:  cfg.MinColumnWidth,
		step:      step,
		cols:      render.DefaultTextColumns,
		rows:      24,
	}
	g, err := flexgrid.New(flexgrid.WidthFunc(func() float64 { return m.width }), m.rec, a.FlexItems(), cfg)
	if err != nil {
		return nil, err
	}
	m.grid = g
	return m, nil
}

func (m *previewModel) Init() tea.Cmd { return nil }

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = max(msg.Width, 10), max(msg.Height, previewChrome+1)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.resize(m.width - m.step)
		case "right", "l":
			m.resize(m.width + m.step)
		case "-", "_":
			m.setMinWidth(max(m.minWidth-minColumnStep, 0))
		case "+", "=":
			m.setMinWidth(m.minWidth + minColumnStep)
		case "up", "k":
			m.offset = max(m.offset-1, 0)
		case "down", "j":
			m.offset++
		case "r":
			m.resize(m.initWidth)
			m.setMinWidth(m.initMin)
			m.offset = 0
		}
	}
	return m, nil
}

// resize changes the container width and asks the grid to rescale. A width
// the grid cannot lay out is rolled back.
func (m *previewModel) resize(w float64) {
	if w <= 0 {
		return
	}
	prev := m.width
	m.width = w
	m.rec.ClearEvents()
	if err := m.grid.Rescale(); err != nil {
		m.width = prev
		m.err = err
		return
	}
	m.err = nil
}

func (m *previewModel) setMinWidth(v float64) {
	m.rec.ClearEvents()
	if err := m.grid.SetMinColumnWidth(v); err != nil {
		m.err = err
		return
	}
	m.minWidth = v
	m.err = nil
}

func (m *previewModel) document() layout.Document {
	doc := layout.Capture(m.grid, m.rec)
	doc.Title = m.album.Title
	return doc
}

func (m *previewModel) View() string {
	var b strings.Builder

	title := m.album.Title
	if title == "" {
		title = "Preview"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ width  -/+ min column  ↑/↓ scroll  r reset  q quit"))
	b.WriteString("\n")

	lines := strings.Split(strings.TrimRight(render.RenderText(m.document(), m.cols), "\n"), "\n")
	visible := m.rows - previewChrome
	m.offset = min(m.offset, max(len(lines)-visible, 0))
	end := min(m.offset+visible, len(lines))
	b.WriteString(previewFrameStyle.Render(strings.Join(lines[m.offset:end], "\n")))
	b.WriteString("\n")

	b.WriteString(m.status())
	return b.String()
}

func (m *previewModel) status() string {
	s := m.grid.Sizing()
	line := previewStatusStyle.Render(fmt.Sprintf("width %.0f · %d × %.0fpx columns · min %.0f · height %.0f · %d stacks",
		m.width, s.Columns, s.ColumnWidth, m.minWidth, m.grid.TotalHeight(), len(m.grid.Stacks())))
	if m.err != nil {
		line += "  " + previewErrorStyle.Render(m.err.Error())
	}
	return line
}
