package cursor

import (
	"errors"
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/kartoza/dual-monitor-tools/internal/hook"
	"github.com/kartoza/dual-monitor-tools/internal/models"
	"github.com/kartoza/dual-monitor-tools/internal/monitor"
)

func sideBySide() *monitor.Layout {
	return monitor.NewLayout([]models.Monitor{
		{Index: 0, Bounds: image.Rect(0, 0, 1920, 1080), Primary: true},
		{Index: 1, Bounds: image.Rect(1920, 0, 3840, 1080)},
	})
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T, screens Screens, pos image.Point, cfg Config) (*Engine, *hook.Fake) {
	t.Helper()
	fake := hook.NewFake(pos)
	e := New(screens, fake, WithConfig(cfg), WithLogger(quietLogger()))
	t.Cleanup(e.Stop)
	return e, fake
}

func stickyConfig(force int) Config {
	cfg := DefaultConfig()
	cfg.MinStickyForce = force
	return cfg
}

func TestEngine_StickyPinsThenBreaks(t *testing.T) {
	e, fake := newTestEngine(t, sideBySide(), image.Pt(1919, 500), stickyConfig(50))
	if err := e.SetMode(Sticky); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if !fake.Installed() {
		t.Fatal("expected filter to be installed")
	}

	v := fake.Move(1925, 500, false)
	if !v.Suppress || !v.Replace || v.Pos != image.Pt(1919, 500) {
		t.Fatalf("first push verdict = %+v, expected pin at (1919,500)", v)
	}

	v = fake.Move(1975, 500, false)
	if v.Suppress {
		t.Fatalf("second push verdict = %+v, expected pass", v)
	}
	if pos, _ := fake.CursorPos(); pos != image.Pt(1975, 500) {
		t.Errorf("cursor = %v, expected (1975,500)", pos)
	}

	b := e.Barriers()
	left, right := b[0], b[1]
	if !left.Enabled || left.Edge != 1920 {
		t.Errorf("left barrier = %+v, expected enabled at 1920", left)
	}
	if right.Enabled {
		t.Errorf("right barrier = %+v, expected disabled on the desktop edge", right)
	}
}

func TestEngine_OnPointerMove(t *testing.T) {
	e, _ := newTestEngine(t, sideBySide(), image.Pt(1000, 500), stickyConfig(50))
	if err := e.SetMode(Sticky); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	allow, x, y := e.OnPointerMove(1500, 600, false)
	if !allow || x != 1500 || y != 600 {
		t.Errorf("inside move = %v (%d,%d)", allow, x, y)
	}
	allow, x, _ = e.OnPointerMove(1930, 600, false)
	if allow || x != 1919 {
		t.Errorf("edge move = %v x=%d, expected pinned at 1919", allow, x)
	}
}

func TestEngine_BarriersFollowScreen(t *testing.T) {
	e, _ := newTestEngine(t, sideBySide(), image.Pt(100, 100), stickyConfig(50))
	if err := e.SetMode(Sticky); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	b := e.Barriers()
	if b[0].Enabled {
		t.Error("left barrier enabled on the desktop edge")
	}
	if !b[1].Enabled || b[1].Edge != 1920 || b[1].MinForce != 50 {
		t.Errorf("right barrier = %+v", b[1])
	}
	if b[2].Enabled || b[3].Enabled {
		t.Error("top/bottom barriers enabled on a single row of screens")
	}

	e.RebuildBarriers(image.Pt(3000, 100))
	b = e.Barriers()
	if !b[0].Enabled || b[0].Edge != 1920 || b[1].Enabled {
		t.Errorf("after rebuild left=%+v right=%+v", b[0], b[1])
	}
}

func TestEngine_LockNeverBreaks(t *testing.T) {
	e, fake := newTestEngine(t, sideBySide(), image.Pt(1900, 500), DefaultConfig())
	if err := e.SetMode(Lock); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	for i := 0; i < 200; i++ {
		v := fake.Move(2500, 500, false)
		if !v.Replace || v.Pos.X != 1919 {
			t.Fatalf("push %d escaped: %+v", i, v)
		}
	}
}

func TestEngine_SingleScreenHasNoBarriers(t *testing.T) {
	single := monitor.NewLayout([]models.Monitor{{Bounds: image.Rect(0, 0, 1920, 1080), Primary: true}})
	e, fake := newTestEngine(t, single, image.Pt(10, 10), DefaultConfig())
	if err := e.SetMode(Lock); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	for _, b := range e.Barriers() {
		if b.Enabled {
			t.Errorf("barrier enabled on a single screen: %+v", b)
		}
	}
	if v := fake.Move(5000, 5000, false); v.Suppress {
		t.Errorf("verdict = %+v, expected pass", v)
	}
}

func TestEngine_NoScreens(t *testing.T) {
	e, fake := newTestEngine(t, monitor.NewLayout(nil), image.Pt(0, 0), DefaultConfig())
	if err := e.SetMode(Sticky); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if v := fake.Move(100, 100, false); v.Suppress {
		t.Errorf("verdict = %+v, expected pass", v)
	}

	e2, _ := newTestEngine(t, nil, image.Pt(0, 0), DefaultConfig())
	if allow, _, _ := e2.OnPointerMove(10, 10, false); !allow {
		t.Error("engine without screens blocked a move")
	}
}

func TestEngine_FreeMovementKey(t *testing.T) {
	e, fake := newTestEngine(t, sideBySide(), image.Pt(1900, 500), stickyConfig(50))
	if err := e.SetMode(Sticky); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	fake.Press(hook.KeyControl, true)
	if v := fake.Move(2000, 500, false); v.Suppress {
		t.Fatalf("verdict with key held = %+v, expected pass", v)
	}
	// the barriers moved with the cursor
	b := e.Barriers()
	if !b[0].Enabled || b[0].Edge != 1920 {
		t.Errorf("left barrier = %+v after bypass crossing", b[0])
	}

	fake.Press(hook.KeyControl, false)
	if v := fake.Move(1910, 500, false); !v.Replace || v.Pos.X != 1920 {
		t.Errorf("verdict after release = %+v, expected pin at 1920", v)
	}
}

func TestEngine_FreeMovementKeyVariant(t *testing.T) {
	e, fake := newTestEngine(t, sideBySide(), image.Pt(1900, 500), stickyConfig(50))
	if err := e.SetMode(Sticky); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	// hooks report the right hand key, the async state the generic one
	fake.SetKey(hook.KeyControl, true)
	e.FilterKey(hook.KeyEvent{Key: hook.KeyRControl, Down: true})
	if v := fake.Move(2000, 500, false); v.Suppress {
		t.Errorf("right control did not bypass: %+v", v)
	}
}

func TestEngine_StaleKeyIsRechecked(t *testing.T) {
	e, fake := newTestEngine(t, sideBySide(), image.Pt(1900, 500), stickyConfig(50))
	if err := e.SetMode(Sticky); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	fake.Press(hook.KeyControl, true)
	// released while another desktop had the input, no up event seen
	fake.SetKey(hook.KeyControl, false)

	if v := fake.Move(1925, 500, false); !v.Replace {
		t.Errorf("verdict = %+v, expected the stale key to be ignored", v)
	}
}

func TestEngine_KeyDisallowed(t *testing.T) {
	cfg := stickyConfig(50)
	cfg.AllowFreeMovementKey = false
	e, fake := newTestEngine(t, sideBySide(), image.Pt(1900, 500), cfg)
	if err := e.SetMode(Sticky); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	fake.Press(hook.KeyControl, true)
	if v := fake.Move(1925, 500, false); !v.Replace {
		t.Errorf("verdict = %+v, expected disallowed key to be ignored", v)
	}
}

func TestEngine_FreeMovementButton(t *testing.T) {
	cfg := stickyConfig(50)
	cfg.AllowFreeMovementButton = true
	cfg.FreeMovementButton = hook.ButtonMiddle
	e, fake := newTestEngine(t, sideBySide(), image.Pt(1900, 500), cfg)
	if err := e.SetMode(Sticky); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	fake.Click(hook.ButtonLeft, true)
	if v := fake.Move(1925, 500, false); !v.Replace {
		t.Fatalf("other button bypassed: %+v", v)
	}
	fake.Click(hook.ButtonLeft, false)

	fake.Click(hook.ButtonMiddle, true)
	if v := fake.Move(2100, 500, false); v.Suppress {
		t.Fatalf("verdict with button held = %+v, expected pass", v)
	}
	fake.Click(hook.ButtonMiddle, false)

	b := e.Barriers()
	if !b[0].Enabled || b[0].Edge != 1920 {
		t.Errorf("left barrier = %+v after button release", b[0])
	}
}

func TestEngine_OverrideReleaseRebuilds(t *testing.T) {
	tests := []struct {
		name    string
		press   func(*Engine, *hook.Fake)
		release func(*Engine, *hook.Fake)
	}{
		{
			name: "key",
			press: func(e *Engine, f *hook.Fake) {
				f.SetKey(e.Config().FreeMovementKey, true)
				e.OnOverrideChanged(OverrideKey, true)
			},
			release: func(e *Engine, f *hook.Fake) {
				f.SetKey(e.Config().FreeMovementKey, false)
				e.OnOverrideChanged(OverrideKey, false)
			},
		},
		{
			name:    "button",
			press:   func(e *Engine, _ *hook.Fake) { e.OnOverrideChanged(OverrideButton, true) },
			release: func(e *Engine, _ *hook.Fake) { e.OnOverrideChanged(OverrideButton, false) },
		},
		{
			name:    "button event",
			press:   func(_ *Engine, f *hook.Fake) { f.Click(hook.ButtonMiddle, true) },
			release: func(_ *Engine, f *hook.Fake) { f.Click(hook.ButtonMiddle, false) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := stickyConfig(50)
			cfg.AllowFreeMovementButton = true
			cfg.FreeMovementButton = hook.ButtonMiddle
			e, fake := newTestEngine(t, sideBySide(), image.Pt(1900, 500), cfg)
			if err := e.SetMode(Sticky); err != nil {
				t.Fatalf("SetMode: %v", err)
			}

			tt.press(e, fake)
			if v := fake.Move(2000, 500, false); v.Suppress {
				t.Fatalf("verdict while held = %+v, expected pass", v)
			}
			// warped back without a filtered move
			if err := fake.SetCursorPos(image.Pt(100, 500)); err != nil {
				t.Fatal(err)
			}
			tt.release(e, fake)

			b := e.Barriers()
			if b[0].Enabled || !b[1].Enabled || b[1].Edge != 1920 {
				t.Errorf("after release left=%+v right=%+v, expected barriers on the left screen", b[0], b[1])
			}
			if v := fake.Move(1925, 500, false); !v.Replace || v.Pos.X != 1919 {
				t.Errorf("verdict after release = %+v, expected pin at 1919", v)
			}
		})
	}
}

func TestEngine_TouchBypasses(t *testing.T) {
	e, fake := newTestEngine(t, sideBySide(), image.Pt(1900, 500), stickyConfig(50))
	if err := e.SetMode(Lock); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if v := fake.Move(2500, 500, true); v.Suppress {
		t.Errorf("touch verdict = %+v, expected pass", v)
	}
	if b := e.Barriers(); !b[0].Enabled || b[0].Edge != 1920 {
		t.Errorf("barriers did not follow touch: %+v", b[0])
	}
}

func TestEngine_PrimaryReturnUnhindered(t *testing.T) {
	cfg := stickyConfig(50)
	cfg.PrimaryReturnUnhindered = true
	e, fake := newTestEngine(t, sideBySide(), image.Pt(2000, 500), cfg)
	if err := e.SetMode(Lock); err != nil {
		t.Fatalf("SetMode: %v", err)
	}

	if v := fake.Move(1800, 500, false); v.Suppress {
		t.Errorf("move into primary = %+v, expected pass", v)
	}
	if v := fake.Move(1950, 500, false); !v.Replace || v.Pos.X != 1919 {
		t.Errorf("move out of primary = %+v, expected pin", v)
	}
}

func TestEngine_ReselectTogglesToFree(t *testing.T) {
	e, fake := newTestEngine(t, sideBySide(), image.Pt(100, 100), DefaultConfig())

	if err := e.Sticky(); err != nil {
		t.Fatal(err)
	}
	if err := e.Sticky(); err != nil {
		t.Fatal(err)
	}
	if e.Mode() != Free {
		t.Errorf("mode = %v, expected free after re-selecting sticky", e.Mode())
	}
	if fake.Installed() {
		t.Error("filter still installed in free mode")
	}

	cfg := DefaultConfig()
	cfg.HasFreeTrigger = true
	e.SetConfig(cfg)
	_ = e.Lock()
	_ = e.Lock()
	if e.Mode() != Lock {
		t.Errorf("mode = %v, expected lock to stay with a free trigger", e.Mode())
	}
}

func TestEngine_ModeSwitchKeepsOneRegistration(t *testing.T) {
	e, fake := newTestEngine(t, sideBySide(), image.Pt(100, 100), DefaultConfig())
	if err := e.Sticky(); err != nil {
		t.Fatal(err)
	}
	if err := e.Lock(); err != nil {
		t.Fatal(err)
	}
	if fake.Installs != 1 {
		t.Errorf("Installs = %d, expected 1", fake.Installs)
	}
	if b := e.Barriers(); b[1].MinForce != MaxForce {
		t.Errorf("right MinForce = %d, expected MaxForce", b[1].MinForce)
	}
}

func TestEngine_InstallFailureStaysFree(t *testing.T) {
	fake := hook.NewFake(image.Pt(100, 100))
	fake.InstallErr = errors.New("access denied")

	var notified []string
	e := New(sideBySide(), fake,
		WithLogger(quietLogger()),
		WithNotifier(func(title, body string) { notified = append(notified, body) }),
	)

	err := e.SetMode(Sticky)
	if err == nil {
		t.Fatal("expected an error")
	}
	if e.Mode() != Free {
		t.Errorf("mode = %v, expected free", e.Mode())
	}
	if len(notified) != 1 {
		t.Errorf("notifications = %d, expected 1", len(notified))
	}
	if allow, _, _ := e.OnPointerMove(1950, 100, false); !allow {
		t.Error("free engine blocked a move")
	}
}

func TestEngine_SetConfigUpdatesForce(t *testing.T) {
	e, _ := newTestEngine(t, sideBySide(), image.Pt(100, 100), stickyConfig(50))
	if err := e.Sticky(); err != nil {
		t.Fatal(err)
	}
	e.SetConfig(stickyConfig(5))
	if b := e.Barriers(); b[1].MinForce != 5 {
		t.Errorf("MinForce = %d, expected 5", b[1].MinForce)
	}
}

func TestEngine_DisplayChanged(t *testing.T) {
	e, _ := newTestEngine(t, sideBySide(), image.Pt(100, 100), stickyConfig(50))
	if err := e.Sticky(); err != nil {
		t.Fatal(err)
	}

	stacked := monitor.NewLayout([]models.Monitor{
		{Bounds: image.Rect(0, 0, 1920, 1080), Primary: true},
		{Bounds: image.Rect(0, 1080, 1920, 2160)},
	})
	e.DisplayChanged(stacked)

	b := e.Barriers()
	if b[1].Enabled {
		t.Errorf("right barrier = %+v, expected disabled", b[1])
	}
	if !b[3].Enabled || b[3].Edge != 1080 {
		t.Errorf("bottom barrier = %+v, expected enabled at 1080", b[3])
	}
}

func TestEngine_Corner(t *testing.T) {
	grid := monitor.NewLayout([]models.Monitor{
		{Bounds: image.Rect(0, 0, 100, 100), Primary: true},
		{Bounds: image.Rect(100, 0, 200, 100)},
		{Bounds: image.Rect(0, 100, 100, 200)},
		{Bounds: image.Rect(100, 100, 200, 200)},
	})
	e, _ := newTestEngine(t, grid, image.Pt(50, 50), stickyConfig(50))
	if err := e.Sticky(); err != nil {
		t.Fatal(err)
	}

	allow, x, y := e.OnPointerMove(110, 110, false)
	if allow || x != 99 || y != 99 {
		t.Errorf("corner push = %v (%d,%d), expected pin at (99,99)", allow, x, y)
	}
}

func TestSameKey(t *testing.T) {
	tests := []struct {
		want, got hook.Key
		expected  bool
	}{
		{hook.KeyControl, hook.KeyControl, true},
		{hook.KeyControl, hook.KeyLControl, true},
		{hook.KeyControl, hook.KeyRControl, true},
		{hook.KeyShift, hook.KeyRShift, true},
		{hook.KeyMenu, hook.KeyLMenu, true},
		{hook.KeyLControl, hook.KeyRControl, false},
		{hook.KeyShift, hook.KeyControl, false},
	}
	for _, tt := range tests {
		if got := sameKey(tt.want, tt.got); got != tt.expected {
			t.Errorf("sameKey(%#x, %#x) = %v", tt.want, tt.got, got)
		}
	}
}
