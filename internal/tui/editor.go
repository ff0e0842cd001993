package tui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kartoza/dual-monitor-tools/internal/geometry"
	"github.com/kartoza/dual-monitor-tools/internal/wallpaper"
)

const (
	panStep   = 10
	zoomStep  = 1.1
	gridWidth = 48
)

// editorKeyMap holds the wallpaper editor bindings
type editorKeyMap struct {
	SelectAll key.Binding
	Fit       key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	FastLeft  key.Binding
	FastRight key.Binding
	FastUp    key.Binding
	FastDown  key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	Reset     key.Binding
	Preview   key.Binding
	Backdrop  key.Binding
	Save      key.Binding
	Apply     key.Binding
	Quit      key.Binding
}

var editorKeys = editorKeyMap{
	SelectAll: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "all screens")),
	Fit:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle fit")),
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan")),
	Right:     key.NewBinding(key.WithKeys("right", "l")),
	Up:        key.NewBinding(key.WithKeys("up", "k")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	FastLeft:  key.NewBinding(key.WithKeys("shift+left", "H")),
	FastRight: key.NewBinding(key.WithKeys("shift+right", "L")),
	FastUp:    key.NewBinding(key.WithKeys("shift+up", "K")),
	FastDown:  key.NewBinding(key.WithKeys("shift+down", "J")),
	ZoomIn:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
	ZoomOut:   key.NewBinding(key.WithKeys("-", "_")),
	Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset view")),
	Preview:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "preview")),
	Backdrop:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "background")),
	Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Apply:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

var fitCycle = []geometry.Fit{
	geometry.Center,
	geometry.StretchToFit,
	geometry.UnderStretch,
	geometry.OverStretch,
}

var backgroundCycle = []color.Color{
	color.Black,
	color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff},
	color.White,
	color.RGBA{R: 0xdd, G: 0xa0, B: 0x36, A: 0xff},
}

// Messages
type wallpaperDoneMsg struct {
	action string
	path   string
	err    error
}

// EditorConfig configures the wallpaper editor
type EditorConfig struct {
	Compositor *wallpaper.Compositor
	Image      image.Image
	ImageName  string
	Fit        geometry.Fit
	// Sink receives the composed wallpaper on apply
	Sink wallpaper.Sink
	// SavePath is where "save" writes the composed image
	SavePath string
}

// EditorModel is the interactive wallpaper layout editor
type EditorModel struct {
	comp     *wallpaper.Compositor
	img      image.Image
	name     string
	fit      geometry.Fit
	sink     wallpaper.Sink
	savePath string

	selected map[int]bool

	// preview shows the composed wallpaper instead of the schematic when
	// the terminal can draw images
	preview   bool
	graphics  bool
	previewer previewFunc
	rendered  string
	stale     bool

	busy    bool
	spinner spinner.Model
	message string
	err     error
	width   int
	height  int
}

// NewEditorModel creates the editor and lays the image over the
// compositor's active screens
func NewEditorModel(cfg EditorConfig) (*EditorModel, error) {
	if cfg.Compositor == nil {
		return nil, errors.New("no compositor")
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorOrange)

	m := &EditorModel{
		comp:      cfg.Compositor,
		img:       cfg.Image,
		name:      cfg.ImageName,
		fit:       cfg.Fit,
		sink:      cfg.Sink,
		savePath:  cfg.SavePath,
		selected:  make(map[int]bool),
		spinner:   s,
		graphics:  detectKittySupport(),
		previewer: kittyPreviewer(),
		stale:     true,
	}
	for _, i := range cfg.Compositor.ActiveScreens() {
		m.selected[i] = true
	}
	if len(m.selected) == 0 {
		m.selectAll()
	}
	if m.img != nil {
		if err := m.comp.AddImageTo(m.img, m.selection(), m.fit); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Init initializes the editor
func (m *EditorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the editor
func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case wallpaperDoneMsg:
		m.busy = false
		m.err = msg.err
		if msg.err == nil {
			m.message = msg.action + ": " + msg.path
		} else {
			m.message = ""
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, editorKeys.Quit) {
			return m, tea.Quit
		}
		// the compositor is being read by a render command
		if m.busy {
			return m, nil
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.err = nil
	m.message = ""
	m.stale = true

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		m.toggle(int(s[0] - '1'))
		return nil
	}

	switch {
	case key.Matches(msg, editorKeys.SelectAll):
		m.selectAll()
	case key.Matches(msg, editorKeys.Fit):
		m.cycleFit()
	case key.Matches(msg, editorKeys.Left):
		m.move(-panStep, 0)
	case key.Matches(msg, editorKeys.Right):
		m.move(panStep, 0)
	case key.Matches(msg, editorKeys.Up):
		m.move(0, -panStep)
	case key.Matches(msg, editorKeys.Down):
		m.move(0, panStep)
	case key.Matches(msg, editorKeys.FastLeft):
		m.move(-panStep*10, 0)
	case key.Matches(msg, editorKeys.FastRight):
		m.move(panStep*10, 0)
	case key.Matches(msg, editorKeys.FastUp):
		m.move(0, -panStep*10)
	case key.Matches(msg, editorKeys.FastDown):
		m.move(0, panStep*10)
	case key.Matches(msg, editorKeys.ZoomIn):
		m.zoom(zoomStep)
	case key.Matches(msg, editorKeys.ZoomOut):
		m.zoom(1 / zoomStep)
	case key.Matches(msg, editorKeys.Reset):
		if err := m.comp.SetActiveScreens(m.selection()); err != nil {
			m.err = err
			return nil
		}
		m.comp.ResetView()
	case key.Matches(msg, editorKeys.Preview):
		m.preview = !m.preview
	case key.Matches(msg, editorKeys.Backdrop):
		m.cycleBackground()
	case key.Matches(msg, editorKeys.Save):
		return m.render("saved", m.save)
	case key.Matches(msg, editorKeys.Apply):
		return m.render("applied", m.apply)
	}
	return nil
}

// toggle adds or removes screen i from the selection
func (m *EditorModel) toggle(i int) {
	if i >= len(m.comp.Screens()) {
		m.err = fmt.Errorf("%w: %d", wallpaper.ErrScreenIndex, i+1)
		return
	}
	if m.selected[i] {
		delete(m.selected, i)
	} else {
		m.selected[i] = true
	}
}

func (m *EditorModel) selectAll() {
	for i := range m.comp.Screens() {
		m.selected[i] = true
	}
}

// selection returns the selected screen indices in ascending order
func (m *EditorModel) selection() []int {
	var out []int
	for i := range m.comp.Screens() {
		if m.selected[i] {
			out = append(out, i)
		}
	}
	return out
}

// cycleFit moves to the next fit and lays the image again
func (m *EditorModel) cycleFit() {
	next := 0
	for i, f := range fitCycle {
		if f == m.fit {
			next = (i + 1) % len(fitCycle)
		}
	}
	m.fit = fitCycle[next]
	if m.img == nil {
		return
	}
	m.err = m.comp.AddImageTo(m.img, m.selection(), m.fit)
}

// cycleBackground steps the fill colour through backgroundCycle
func (m *EditorModel) cycleBackground() {
	cur := color.RGBAModel.Convert(m.comp.Background())
	next := 0
	for i, c := range backgroundCycle {
		if color.RGBAModel.Convert(c) == cur {
			next = (i + 1) % len(backgroundCycle)
		}
	}
	m.comp.SetBackground(backgroundCycle[next])
}

func (m *EditorModel) move(dx, dy int) {
	m.err = m.comp.MoveScreens(m.selection(), dx, dy)
}

func (m *EditorModel) zoom(factor float64) {
	m.err = m.comp.ZoomScreens(m.selection(), factor)
}

// render composes the wallpaper off the UI goroutine and hands it to fn
func (m *EditorModel) render(action string, fn func(*image.RGBA) (string, error)) tea.Cmd {
	if m.sink == nil {
		m.err = errors.New("no wallpaper output configured")
		return nil
	}
	m.busy = true
	comp := m.comp
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		path, err := fn(comp.CreateWallpaperImage())
		return wallpaperDoneMsg{action: action, path: path, err: err}
	})
}

func (m *EditorModel) save(img *image.RGBA) (string, error) {
	if m.savePath == "" {
		return "", errors.New("no save path configured")
	}
	return m.savePath, m.sink.SaveWallpaperToFile(img, m.savePath)
}

func (m *EditorModel) apply(img *image.RGBA) (string, error) {
	return "desktop", m.sink.SetWallpaper(img, m.comp.DesktopRect().Min)
}

// View renders the editor
func (m *EditorModel) View() string {
	desktop := m.comp.DesktopRect()
	header := RenderHeader("Wallpaper", &HeaderState{
		Screens:  len(m.comp.Screens()),
		Selected: len(m.selected),
		Desktop:  fmt.Sprintf("%dx%d", desktop.Dx(), desktop.Dy()),
	})

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Layout") + "\n")
	b.WriteString(m.renderLayout())
	b.WriteString("\n\n")
	b.WriteString(m.renderScreenList())
	b.WriteString("\n")

	name := m.name
	if name == "" {
		name = "(none)"
	}
	b.WriteString(LabelStyle.Render("Image: ") + ValueStyle.Render(name) + "  ")
	b.WriteString(LabelStyle.Render("Fit: ") + ActiveStyle.Render(m.fit.String()) + "\n")

	switch {
	case m.busy:
		b.WriteString(m.spinner.View() + " Rendering...")
	case m.err != nil:
		b.WriteString(ErrorStyle.Render("Error: " + m.err.Error()))
	case m.message != "":
		b.WriteString(SuccessStyle.Render(m.message))
	}

	helpText := "1-9: toggle screen • space: all • f: fit • ←↑↓→/hjkl: pan (shift ×10) • +/-: zoom • r: reset • b: background • p: preview • s: save • a: apply • q: quit"
	footer := RenderHelpFooter(helpText, m.width)

	return LayoutWithHeaderFooter(header, BoxStyle.Render(b.String()), footer, m.width, m.height)
}

// renderScreenList prints one line per screen with its mapping
func (m *EditorModel) renderScreenList() string {
	var lines []string
	for i, s := range m.comp.Screens() {
		marker := InactiveStyle.Render("○")
		if m.selected[i] {
			marker = ActiveStyle.Render("●")
		}
		desc := fmt.Sprintf("%d %dx%d at (%d,%d)", i+1, s.ScreenRect.Dx(), s.ScreenRect.Dy(), s.ScreenRect.Min.X, s.ScreenRect.Min.Y)
		if s.Primary {
			desc += " primary"
		}
		src := "no image"
		if s.HasImage() {
			src = fmt.Sprintf("source %v", s.SourceRect)
		}
		lines = append(lines, fmt.Sprintf("%s %s  %s", marker, ValueStyle.Render(desc), LabelStyle.Render(src)))
	}
	return strings.Join(lines, "\n")
}

// renderLayout shows the composed wallpaper when preview is on and the
// terminal supports it, the schematic otherwise
func (m *EditorModel) renderLayout() string {
	if !m.preview {
		return m.renderSchematic()
	}
	if !m.graphics || m.previewer == nil {
		return m.renderSchematic() + "\n" + LabelStyle.Render("preview needs a Kitty graphics terminal")
	}
	if m.stale {
		desktop := m.comp.DesktopRect()
		out, err := m.previewer(m.comp.CreateWallpaperImage(), gridWidth, schematicRows(desktop))
		if err != nil {
			return m.renderSchematic() + "\n" + ErrorStyle.Render("preview failed: "+err.Error())
		}
		m.rendered = out
		m.stale = false
	}
	return m.rendered
}

// schematicRows keeps the desktop aspect, cells being about twice as tall
// as they are wide
func schematicRows(desktop image.Rectangle) int {
	if desktop.Dx() <= 0 {
		return 4
	}
	rows := gridWidth * desktop.Dy() / desktop.Dx() / 2
	return min(max(rows, 4), 16)
}

// renderSchematic draws the desktop layout as boxes, selected screens
// with a double border
func (m *EditorModel) renderSchematic() string {
	desktop := m.comp.DesktopRect()
	if desktop.Empty() {
		return ""
	}
	rows := schematicRows(desktop)
	grid := image.Rect(0, 0, gridWidth, rows)

	cells := make([][]rune, rows)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", gridWidth))
	}

	for i, s := range m.comp.Screens() {
		r, err := geometry.CalcDestRect(desktop, grid, s.ScreenRect)
		if err != nil {
			continue
		}
		r = r.Intersect(grid)
		if r.Dx() < 2 || r.Dy() < 2 {
			continue
		}
		box := []rune("─│┌┐└┘")
		if m.selected[i] {
			box = []rune("═║╔╗╚╝")
		}
		drawBox(cells, r, box)
		label := []rune(fmt.Sprintf("%d", i+1))
		if s.HasImage() {
			label = append(label, '*')
		}
		c := geometry.Midpoint(r)
		for n, ch := range label {
			x := c.X - len(label)/2 + n
			if x > r.Min.X && x < r.Max.X-1 && c.Y > r.Min.Y && c.Y < r.Max.Y-1 {
				cells[c.Y][x] = ch
			}
		}
	}

	lines := make([]string, rows)
	for y := range cells {
		lines[y] = string(cells[y])
	}
	return SubtitleStyle.Render(strings.Join(lines, "\n"))
}

// drawBox outlines r in cells using the runes h, v, tl, tr, bl, br
func drawBox(cells [][]rune, r image.Rectangle, box []rune) {
	top, bottom := r.Min.Y, r.Max.Y-1
	left, right := r.Min.X, r.Max.X-1
	for x := left; x <= right; x++ {
		cells[top][x] = box[0]
		cells[bottom][x] = box[0]
	}
	for y := top; y <= bottom; y++ {
		cells[y][left] = box[1]
		cells[y][right] = box[1]
	}
	cells[top][left] = box[2]
	cells[top][right] = box[3]
	cells[bottom][left] = box[4]
	cells[bottom][right] = box[5]
}

// RunEditor runs the wallpaper editor full screen
func RunEditor(cfg EditorConfig) error {
	m, err := NewEditorModel(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
