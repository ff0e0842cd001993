//go:build cgo

package systray

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fyne.io/systray"
	"github.com/kartoza/dual-monitor-tools/internal/cursor"
	"github.com/kartoza/dual-monitor-tools/internal/terminal"
)

// Available reports whether this build can show a tray icon
const Available = true

// Manager handles the system tray icon and menu
type Manager struct {
	ctrl   Controller
	logger *slog.Logger

	// Menu items
	mFree    *systray.MenuItem
	mSticky  *systray.MenuItem
	mLock    *systray.MenuItem
	mNext    *systray.MenuItem
	mPrev    *systray.MenuItem
	mPrimary *systray.MenuItem
	mEdit    *systray.MenuItem
	mQuit    *systray.MenuItem

	quitChan chan struct{}

	// Pre-rendered icons, one per mode
	icons map[cursor.Mode][]byte

	mu       sync.Mutex
	lastMode cursor.Mode
	shown    bool

	statusTicker *time.Ticker
	stopStatus   chan struct{}
}

// New creates a new systray manager driving ctrl
func New(ctrl Controller, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		ctrl:       ctrl,
		logger:     logger,
		quitChan:   make(chan struct{}, 1),
		stopStatus: make(chan struct{}),
		icons:      make(map[cursor.Mode][]byte, 3),
	}
	for _, mode := range []cursor.Mode{cursor.Free, cursor.Sticky, cursor.Lock} {
		m.icons[mode] = iconBytes(mode)
	}
	return m
}

// QuitChan returns the channel signalled when Quit is chosen
func (m *Manager) QuitChan() <-chan struct{} { return m.quitChan }

// OnReady is called when the systray is ready
func (m *Manager) OnReady() {
	systray.SetTitle("Dual Monitor Tools")

	// Left click cycles Free -> Sticky -> Lock
	systray.SetOnTapped(func() {
		next := (m.ctrl.Mode() + 1) % 3
		m.setMode(next)
	})

	m.mFree = systray.AddMenuItemCheckbox("Free", "Cursor moves freely between screens", false)
	m.mSticky = systray.AddMenuItemCheckbox("Sticky", "Cursor resists leaving the screen", false)
	m.mLock = systray.AddMenuItemCheckbox("Lock", "Cursor stays on its screen", false)
	systray.AddSeparator()
	m.mNext = systray.AddMenuItem("Next Screen", "Move the cursor to the next screen")
	m.mPrev = systray.AddMenuItem("Previous Screen", "Move the cursor to the previous screen")
	m.mPrimary = systray.AddMenuItem("Primary Screen", "Move the cursor to the primary screen")
	systray.AddSeparator()
	m.mEdit = systray.AddMenuItem("Edit Wallpaper...", "Open the wallpaper editor")
	if terminal.IsTerminalOnly() {
		m.mEdit.Disable()
	}
	systray.AddSeparator()
	m.mQuit = systray.AddMenuItem("Quit", "Quit the application")

	go m.handleClicks()
	m.startStatusPolling()
}

// OnExit is called when the systray is exiting
func (m *Manager) OnExit() {
	m.stopStatusPolling()
}

func (m *Manager) handleClicks() {
	for {
		select {
		case <-m.mFree.ClickedCh:
			m.setMode(cursor.Free)
		case <-m.mSticky.ClickedCh:
			m.setMode(cursor.Sticky)
		case <-m.mLock.ClickedCh:
			m.setMode(cursor.Lock)
		case <-m.mNext.ClickedCh:
			m.report("next screen", m.ctrl.CursorToNextScreen())
		case <-m.mPrev.ClickedCh:
			m.report("previous screen", m.ctrl.CursorToPrevScreen())
		case <-m.mPrimary.ClickedCh:
			m.report("primary screen", m.ctrl.CursorToPrimaryScreen())
		case <-m.mEdit.ClickedCh:
			m.report("open wallpaper editor", terminal.Open("wallpaper", "edit"))
		case <-m.mQuit.ClickedCh:
			select {
			case m.quitChan <- struct{}{}:
			default:
			}
			return
		}
	}
}

func (m *Manager) setMode(mode cursor.Mode) {
	var err error
	switch mode {
	case cursor.Free:
		err = m.ctrl.Free()
	case cursor.Sticky:
		err = m.ctrl.Sticky()
	case cursor.Lock:
		err = m.ctrl.Lock()
	}
	m.report("set mode "+mode.String(), err)
	m.updateStatus()
}

func (m *Manager) report(action string, err error) {
	if err != nil {
		m.logger.Warn("tray action failed", "action", action, "error", err)
	}
}

// startStatusPolling follows mode changes made through hotkeys
func (m *Manager) startStatusPolling() {
	m.statusTicker = time.NewTicker(500 * time.Millisecond)
	go func() {
		m.updateStatus()
		for {
			select {
			case <-m.statusTicker.C:
				m.updateStatus()
			case <-m.stopStatus:
				return
			}
		}
	}()
}

func (m *Manager) stopStatusPolling() {
	if m.statusTicker != nil {
		m.statusTicker.Stop()
	}
	select {
	case <-m.stopStatus:
	default:
		close(m.stopStatus)
	}
}

// updateStatus refreshes icon, tooltip and check marks when the mode changed
func (m *Manager) updateStatus() {
	mode := m.ctrl.Mode()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shown && mode == m.lastMode {
		return
	}
	m.shown = true
	m.lastMode = mode

	systray.SetIcon(m.icons[mode])
	systray.SetTooltip("Dual Monitor Tools - " + tooltip(mode))
	for item, itemMode := range map[*systray.MenuItem]cursor.Mode{
		m.mFree:   cursor.Free,
		m.mSticky: cursor.Sticky,
		m.mLock:   cursor.Lock,
	} {
		if itemMode == mode {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
}

// Run shows the tray icon until Quit is chosen or ctx is done
func Run(ctx context.Context, ctrl Controller, logger *slog.Logger) error {
	manager := New(ctrl, logger)

	go systray.Run(manager.OnReady, manager.OnExit)

	select {
	case <-manager.QuitChan():
	case <-ctx.Done():
	}
	systray.Quit()
	return nil
}
