// Package cursor implements screen edge barriers that make the mouse
// cursor stick to, or stay locked on, the screen it is on.
package cursor

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/kartoza/dual-monitor-tools/internal/hook"
)

// Screens answers the layout questions the engine needs
type Screens interface {
	// VirtualBounds is the bounding box of every screen
	VirtualBounds() image.Rectangle
	// ScreenBounds is the screen containing p, or the nearest one
	ScreenBounds(p image.Point) image.Rectangle
	PrimaryBounds() image.Rectangle
}

// Notifier shows a message to the user. It must not block.
type Notifier func(title, body string)

// Engine owns the four barriers around the current screen and filters
// pointer input through them.
type Engine struct {
	icpt   hook.Interceptor
	logger *slog.Logger
	notify Notifier
	cfg    atomic.Pointer[Config]

	// modeMu serialises mode changes and filter (un)registration. It is
	// never held by the input thread.
	modeMu sync.Mutex
	reg    hook.Registration

	mu            sync.Mutex
	screens       Screens
	mode          Mode
	minForce      int
	left, right   Barrier
	top, bottom   Barrier
	keyPressed    bool
	buttonPressed bool
	last          image.Point
}

// Option configures an Engine
type Option func(*Engine)

// WithConfig sets the initial configuration
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.cfg.Store(&cfg)
	}
}

// WithLogger sets the logger used for mode changes and failures
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithNotifier sets the callback used to tell the user about failures
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notify = n
		}
	}
}

// New creates an engine in Free mode. screens may be nil until the first
// DisplayChanged.
func New(screens Screens, icpt hook.Interceptor, opts ...Option) *Engine {
	e := &Engine{
		icpt:    icpt,
		screens: screens,
		logger:  slog.Default(),
		notify:  func(string, string) {},
		mode:    Free,
		left:    Barrier{Kind: Lower},
		right:   Barrier{Kind: Upper},
		top:     Barrier{Kind: Lower},
		bottom:  Barrier{Kind: Upper},
	}
	def := DefaultConfig()
	e.cfg.Store(&def)
	for _, opt := range opts {
		opt(e)
	}
	if p, err := icpt.CursorPos(); err == nil {
		e.last = p
	}
	return e
}

// Config returns the active configuration
func (e *Engine) Config() Config {
	return *e.cfg.Load()
}

// Start applies the configured default mode
func (e *Engine) Start() error {
	mode := e.Config().DefaultMode
	if mode == Free {
		return nil
	}
	return e.SetMode(mode)
}

// Stop releases the input filter and returns to Free mode
func (e *Engine) Stop() {
	e.modeMu.Lock()
	defer e.modeMu.Unlock()
	e.releaseLocked()
	e.applyMode(Free, e.cursorPos())
}

// Mode returns the current mode
func (e *Engine) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Free switches to Free mode
func (e *Engine) Free() error { return e.SetMode(Free) }

// Sticky switches to Sticky mode, or toggles back to Free when already
// sticky and no separate free command exists.
func (e *Engine) Sticky() error { return e.SetMode(Sticky) }

// Lock switches to Lock mode with the same toggle rule as Sticky
func (e *Engine) Lock() error { return e.SetMode(Lock) }

// SetMode changes the confinement mode. Leaving Free installs the input
// filter; if that fails the engine stays Free and the error is returned.
func (e *Engine) SetMode(mode Mode) error {
	e.modeMu.Lock()
	defer e.modeMu.Unlock()

	cfg := e.Config()
	if mode != Free && mode == e.Mode() && !cfg.HasFreeTrigger {
		mode = Free
	}

	pos := e.cursorPos()
	if mode == Free {
		e.releaseLocked()
		e.applyMode(Free, pos)
		e.logger.Info("cursor mode changed", "mode", Free)
		return nil
	}

	e.applyMode(mode, pos)
	if e.reg == nil {
		reg, err := e.icpt.Install(e)
		if err != nil {
			e.applyMode(Free, pos)
			e.logger.Error("failed to install input filter", "mode", mode, "error", err)
			e.notify("Dual Monitor Tools", fmt.Sprintf("Cursor %s mode is unavailable: %v", mode, err))
			return fmt.Errorf("failed to enter %s mode: %w", mode, err)
		}
		e.reg = reg
	}
	e.logger.Info("cursor mode changed", "mode", mode)
	return nil
}

// applyMode sets the mode and its barrier force, then rebuilds around pos
func (e *Engine) applyMode(mode Mode, pos image.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.mode = mode
	e.minForce = e.forceFor(mode)
	e.rebuildLocked(pos)
}

// forceFor requires e.mu
func (e *Engine) forceFor(mode Mode) int {
	switch mode {
	case Sticky:
		return e.cfg.Load().MinStickyForce
	case Lock:
		return MaxForce
	}
	return 0
}

// releaseLocked closes the filter registration. Requires modeMu and must
// not hold mu, since closing waits for the input thread.
func (e *Engine) releaseLocked() {
	if e.reg == nil {
		return
	}
	if err := e.reg.Close(); err != nil {
		e.logger.Warn("failed to remove input filter", "error", err)
	}
	e.reg = nil
}

// SetConfig replaces the configuration. A sticky engine picks up the new
// force immediately.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg.Store(&cfg)
	pos := e.cursorPos()

	e.mu.Lock()
	defer e.mu.Unlock()
	if !cfg.AllowFreeMovementKey {
		e.keyPressed = false
	}
	if !cfg.AllowFreeMovementButton {
		e.buttonPressed = false
	}
	e.minForce = e.forceFor(e.mode)
	e.rebuildLocked(pos)
}

// DisplayChanged swaps in a new screen layout and rebuilds the barriers
func (e *Engine) DisplayChanged(screens Screens) {
	pos := e.cursorPos()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.screens = screens
	e.rebuildLocked(pos)
}

// Barriers returns copies of the left, right, top and bottom barriers
func (e *Engine) Barriers() [4]Barrier {
	e.mu.Lock()
	defer e.mu.Unlock()
	return [4]Barrier{e.left, e.right, e.top, e.bottom}
}

// RebuildBarriers re-targets the barriers on the screen containing pt
func (e *Engine) RebuildBarriers(pt image.Point) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebuildLocked(pt)
}

// rebuildLocked requires e.mu. An edge shared with the virtual desktop
// bound gets no barrier, the OS already stops the cursor there.
func (e *Engine) rebuildLocked(pt image.Point) {
	var cur, virt image.Rectangle
	if e.screens != nil {
		cur = e.screens.ScreenBounds(pt)
		virt = e.screens.VirtualBounds()
	}
	if cur.Empty() {
		e.left.Change(false, 0, 0)
		e.right.Change(false, 0, 0)
		e.top.Change(false, 0, 0)
		e.bottom.Change(false, 0, 0)
		return
	}

	set := func(b *Barrier, enabled bool, edge int) {
		if !enabled {
			b.Change(false, 0, 0)
			return
		}
		b.Change(true, edge, e.minForce)
	}
	set(&e.left, cur.Min.X > virt.Min.X, cur.Min.X)
	set(&e.right, cur.Max.X < virt.Max.X, cur.Max.X)
	set(&e.top, cur.Min.Y > virt.Min.Y, cur.Min.Y)
	set(&e.bottom, cur.Max.Y < virt.Max.Y, cur.Max.Y)
}

// OnPointerMove applies the barriers to a raw pointer position. It
// returns whether the move may pass unchanged and the corrected position.
// With bypass set the barriers are not applied, but they still follow the
// cursor onto whatever screen it reaches.
func (e *Engine) OnPointerMove(x, y int, bypass bool) (allow bool, cx, cy int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pointerLocked(x, y, bypass)
}

func (e *Engine) pointerLocked(x, y int, bypass bool) (bool, int, int) {
	if bypass {
		if e.left.Outside(x) || e.right.Outside(x) || e.top.Outside(y) || e.bottom.Outside(y) {
			e.rebuildLocked(image.Pt(x, y))
		}
		e.last = image.Pt(x, y)
		return true, x, y
	}

	cx, cy := x, y
	broken := e.left.BrokenThrough(&cx)
	if e.right.BrokenThrough(&cx) {
		broken = true
	}
	if e.top.BrokenThrough(&cy) {
		broken = true
	}
	if e.bottom.BrokenThrough(&cy) {
		broken = true
	}
	if broken {
		e.rebuildLocked(image.Pt(cx, cy))
	}
	e.last = image.Pt(cx, cy)
	return cx == x && cy == y, cx, cy
}

// Override names the input that lifts the barriers while held
type Override int

const (
	OverrideKey Override = iota
	OverrideButton
)

// OnOverrideChanged records the state of the free movement key or button.
// Releasing it rebuilds the barriers around the cursor, which may already
// have left the screen.
func (e *Engine) OnOverrideChanged(src Override, pressed bool) {
	pos := e.cursorPos()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.overrideLocked(src, pressed, pos)
}

// overrideLocked requires e.mu
func (e *Engine) overrideLocked(src Override, pressed bool, pos image.Point) {
	switch src {
	case OverrideKey:
		e.keyPressed = pressed
	case OverrideButton:
		e.buttonPressed = pressed
	}
	if !pressed {
		e.rebuildLocked(pos)
	}
}

// FilterPointer implements hook.Filter
func (e *Engine) FilterPointer(ev hook.PointerEvent) hook.Verdict {
	cfg := e.cfg.Load()

	e.mu.Lock()
	defer e.mu.Unlock()

	// a key released while another window had focus never reaches us
	if e.keyPressed && !e.icpt.KeyDown(cfg.FreeMovementKey) {
		e.keyPressed = false
	}

	bypass := e.keyPressed || e.buttonPressed || ev.Touch
	if !bypass && cfg.PrimaryReturnUnhindered && e.screens != nil {
		bypass = ev.Point().In(e.screens.PrimaryBounds())
	}

	allow, cx, cy := e.pointerLocked(ev.X, ev.Y, bypass)
	if allow {
		return hook.Pass
	}
	return hook.MoveTo(image.Pt(cx, cy))
}

// FilterButton implements hook.Filter
func (e *Engine) FilterButton(ev hook.ButtonEvent) hook.Verdict {
	cfg := e.cfg.Load()
	if !cfg.AllowFreeMovementButton || cfg.FreeMovementButton == hook.ButtonNone || ev.Button != cfg.FreeMovementButton {
		return hook.Pass
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.overrideLocked(OverrideButton, ev.Down, image.Pt(ev.X, ev.Y))
	return hook.Pass
}

// FilterKey implements hook.Filter
func (e *Engine) FilterKey(ev hook.KeyEvent) hook.Verdict {
	cfg := e.cfg.Load()
	if !cfg.AllowFreeMovementKey || !sameKey(cfg.FreeMovementKey, ev.Key) {
		return hook.Pass
	}

	// the input thread cannot ask for the cursor, use the last filtered move
	e.mu.Lock()
	defer e.mu.Unlock()
	e.overrideLocked(OverrideKey, ev.Down, e.last)
	return hook.Pass
}

// sameKey matches a configured key against a reported one. Low level
// hooks report the left or right variant of a modifier.
func sameKey(want, got hook.Key) bool {
	if want == got {
		return true
	}
	switch want {
	case hook.KeyShift:
		return got == hook.KeyLShift || got == hook.KeyRShift
	case hook.KeyControl:
		return got == hook.KeyLControl || got == hook.KeyRControl
	case hook.KeyMenu:
		return got == hook.KeyLMenu || got == hook.KeyRMenu
	}
	return false
}

// cursorPos asks the platform for the cursor, falling back to the last
// position seen by the filter. Must not be called with mu held.
func (e *Engine) cursorPos() image.Point {
	if p, err := e.icpt.CursorPos(); err == nil {
		return p
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}
