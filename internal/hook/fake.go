package hook

import (
	"image"
	"sync"
)

// Fake is an in-memory Interceptor. It records the installed filter and
// lets callers feed events through it.
type Fake struct {
	mu         sync.Mutex
	filter     Filter
	pos        image.Point
	keys       map[Key]bool
	InstallErr error
	Installs   int
}

// NewFake returns a Fake with the cursor at pos
func NewFake(pos image.Point) *Fake {
	return &Fake{pos: pos, keys: map[Key]bool{}}
}

type fakeRegistration struct {
	f    *Fake
	once sync.Once
}

func (r *fakeRegistration) Close() error {
	r.once.Do(func() {
		r.f.mu.Lock()
		r.f.filter = nil
		r.f.mu.Unlock()
	})
	return nil
}

// Install records f as the active filter
func (f *Fake) Install(filter Filter) (Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InstallErr != nil {
		return nil, f.InstallErr
	}
	if f.filter != nil {
		return nil, ErrAlreadyInstalled
	}
	f.filter = filter
	f.Installs++
	return &fakeRegistration{f: f}, nil
}

// Installed reports whether a filter is registered
func (f *Fake) Installed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter != nil
}

// CursorPos returns the simulated cursor position
func (f *Fake) CursorPos() (image.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos, nil
}

// SetCursorPos moves the simulated cursor
func (f *Fake) SetCursorPos(p image.Point) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = p
	return nil
}

// KeyDown reports the simulated key state
func (f *Fake) KeyDown(k Key) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.keys[k]
}

// SetKey changes the simulated key state without emitting an event
func (f *Fake) SetKey(k Key, down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[k] = down
}

// Move feeds a pointer move through the filter the way a platform hook
// would: a replacement position becomes the new cursor position and an
// untouched event moves the cursor to the raw position.
func (f *Fake) Move(x, y int, touch bool) Verdict {
	f.mu.Lock()
	filter := f.filter
	f.mu.Unlock()

	v := Pass
	if filter != nil {
		v = filter.FilterPointer(PointerEvent{X: x, Y: y, Touch: touch})
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case v.Replace:
		f.pos = v.Pos
	case !v.Suppress:
		f.pos = image.Pt(x, y)
	}
	return v
}

// Press feeds a key transition through the filter
func (f *Fake) Press(k Key, down bool) Verdict {
	f.mu.Lock()
	f.keys[k] = down
	filter := f.filter
	f.mu.Unlock()

	if filter == nil {
		return Pass
	}
	return filter.FilterKey(KeyEvent{Key: k, Down: down})
}

// Click feeds a button transition through the filter
func (f *Fake) Click(b Button, down bool) Verdict {
	f.mu.Lock()
	filter := f.filter
	pos := f.pos
	f.mu.Unlock()

	if filter == nil {
		return Pass
	}
	return filter.FilterButton(ButtonEvent{Button: b, Down: down, X: pos.X, Y: pos.Y})
}
