//go:build windows

package hook

import (
	"fmt"
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
	procGetCursorPos        = user32.NewProc("GetCursorPos")
	procSetCursorPos        = user32.NewProc("SetCursorPos")
	procGetAsyncKeyState    = user32.NewProc("GetAsyncKeyState")
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmQuit        = 0x0012
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C

	xButton1 = 0x0001
	xButton2 = 0x0002

	// signature placed in dwExtraInfo by the touch/pen stack
	mouseEventFromTouch = 0xFF515700
)

type point struct {
	X, Y int32
}

type msllHookStruct struct {
	Pt          point
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd     uintptr
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       point
	LPrivate uint32
}

// The hook procedures are created once; windows.NewCallback slots are
// never released.
var (
	activeFilter atomic.Pointer[filterBox]
	mouseHook    uintptr
	keyboardHook uintptr

	callbacksOnce sync.Once
	mouseProcPtr  uintptr
	keyboardPtr   uintptr
)

type filterBox struct {
	f Filter
}

type winInterceptor struct {
	mu  sync.Mutex
	reg *winRegistration
}

// New returns the Windows low level hook interceptor
func New() Interceptor {
	return &winInterceptor{}
}

// Supported reports whether New returns a working interceptor
func Supported() bool {
	return procSetWindowsHookExW.Find() == nil
}

type winRegistration struct {
	owner    *winInterceptor
	threadID uint32
	done     chan struct{}
	once     sync.Once
}

// Install starts a dedicated OS thread owning the mouse and keyboard
// hooks and pumping its message queue.
func (w *winInterceptor) Install(f Filter) (Registration, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.reg != nil {
		return nil, ErrAlreadyInstalled
	}

	callbacksOnce.Do(func() {
		mouseProcPtr = windows.NewCallback(lowLevelMouseProc)
		keyboardPtr = windows.NewCallback(lowLevelKeyboardProc)
	})

	activeFilter.Store(&filterBox{f: f})

	reg := &winRegistration{owner: w, done: make(chan struct{})}
	ready := make(chan error, 1)
	go reg.run(ready)
	if err := <-ready; err != nil {
		activeFilter.Store(nil)
		return nil, err
	}

	w.reg = reg
	return reg, nil
}

func (r *winRegistration) run(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(r.done)

	r.threadID = windows.GetCurrentThreadId()

	h, _, err := procSetWindowsHookExW.Call(whMouseLL, mouseProcPtr, 0, 0)
	if h == 0 {
		ready <- fmt.Errorf("failed to install mouse hook: %w", err)
		return
	}
	mouseHook = h

	// mouse and keyboard are hooked together
	h, _, err = procSetWindowsHookExW.Call(whKeyboardLL, keyboardPtr, 0, 0)
	if h == 0 {
		procUnhookWindowsHookEx.Call(mouseHook)
		mouseHook = 0
		ready <- fmt.Errorf("failed to install keyboard hook: %w", err)
		return
	}
	keyboardHook = h
	ready <- nil

	var m msg
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(ret) <= 0 {
			break
		}
	}

	procUnhookWindowsHookEx.Call(keyboardHook)
	keyboardHook = 0
	procUnhookWindowsHookEx.Call(mouseHook)
	mouseHook = 0
}

// Close stops the message loop and removes both hooks
func (r *winRegistration) Close() error {
	var err error
	r.once.Do(func() {
		activeFilter.Store(nil)
		ret, _, callErr := procPostThreadMessageW.Call(uintptr(r.threadID), wmQuit, 0, 0)
		if ret == 0 {
			err = fmt.Errorf("failed to stop hook thread: %w", callErr)
		} else {
			<-r.done
		}
		r.owner.mu.Lock()
		r.owner.reg = nil
		r.owner.mu.Unlock()
	})
	return err
}

func lowLevelMouseProc(nCode int, wParam, lParam uintptr) uintptr {
	box := activeFilter.Load()
	if nCode < 0 || box == nil {
		return callNext(mouseHook, nCode, wParam, lParam)
	}

	info := (*msllHookStruct)(unsafe.Pointer(lParam))
	x, y := int(info.Pt.X), int(info.Pt.Y)

	var v Verdict
	switch wParam {
	case wmMouseMove:
		touch := uint32(info.DwExtraInfo)&mouseEventFromTouch == mouseEventFromTouch
		v = box.f.FilterPointer(PointerEvent{X: x, Y: y, Touch: touch})
	case wmLButtonDown, wmLButtonUp:
		v = box.f.FilterButton(ButtonEvent{Button: ButtonLeft, Down: wParam == wmLButtonDown, X: x, Y: y})
	case wmRButtonDown, wmRButtonUp:
		v = box.f.FilterButton(ButtonEvent{Button: ButtonRight, Down: wParam == wmRButtonDown, X: x, Y: y})
	case wmMButtonDown, wmMButtonUp:
		v = box.f.FilterButton(ButtonEvent{Button: ButtonMiddle, Down: wParam == wmMButtonDown, X: x, Y: y})
	case wmXButtonDown, wmXButtonUp:
		b := ButtonNone
		switch info.MouseData >> 16 {
		case xButton1:
			b = ButtonX1
		case xButton2:
			b = ButtonX2
		}
		v = box.f.FilterButton(ButtonEvent{Button: b, Down: wParam == wmXButtonDown, X: x, Y: y})
	}

	if v.Replace {
		procSetCursorPos.Call(uintptr(v.Pos.X), uintptr(v.Pos.Y))
		return 1
	}
	if v.Suppress {
		return 1
	}
	return callNext(mouseHook, nCode, wParam, lParam)
}

func lowLevelKeyboardProc(nCode int, wParam, lParam uintptr) uintptr {
	box := activeFilter.Load()
	if nCode < 0 || box == nil {
		return callNext(keyboardHook, nCode, wParam, lParam)
	}

	info := (*kbdllHookStruct)(unsafe.Pointer(lParam))
	var down bool
	switch wParam {
	case wmKeyDown, wmSysKeyDown:
		down = true
	case wmKeyUp, wmSysKeyUp:
		down = false
	default:
		return callNext(keyboardHook, nCode, wParam, lParam)
	}

	if v := box.f.FilterKey(KeyEvent{Key: Key(info.VkCode), Down: down}); v.Suppress {
		return 1
	}
	return callNext(keyboardHook, nCode, wParam, lParam)
}

func callNext(h uintptr, nCode int, wParam, lParam uintptr) uintptr {
	ret, _, _ := procCallNextHookEx.Call(h, uintptr(nCode), wParam, lParam)
	return ret
}

// CursorPos returns the current cursor position
func (w *winInterceptor) CursorPos() (image.Point, error) {
	var pt point
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return image.Point{}, fmt.Errorf("GetCursorPos failed: %w", err)
	}
	return image.Pt(int(pt.X), int(pt.Y)), nil
}

// SetCursorPos moves the cursor
func (w *winInterceptor) SetCursorPos(p image.Point) error {
	ret, _, err := procSetCursorPos.Call(uintptr(p.X), uintptr(p.Y))
	if ret == 0 {
		return fmt.Errorf("SetCursorPos failed: %w", err)
	}
	return nil
}

// KeyDown reports whether k is physically held right now
func (w *winInterceptor) KeyDown(k Key) bool {
	ret, _, _ := procGetAsyncKeyState.Call(uintptr(k))
	// most significant bit of the 16 bit result is the pressed flag
	return uint16(ret)&0x8000 != 0
}
