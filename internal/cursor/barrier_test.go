package cursor

import "testing"

func TestBarrier_Upper(t *testing.T) {
	b := Barrier{Kind: Upper}
	b.Change(true, 1920, 50)

	tests := []struct {
		name     string
		in       int
		expected int
		broken   bool
		force    int
	}{
		{"inside", 1900, 1900, false, 0},
		{"last pixel", 1919, 1919, false, 0},
		{"small push pinned", 1925, 1919, false, 6},
		{"second push pinned", 1950, 1919, false, 37},
		{"third push breaks", 1940, 1940, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.in
			broken := b.BrokenThrough(&v)
			if broken != tt.broken {
				t.Errorf("broken = %v, expected %v", broken, tt.broken)
			}
			if v != tt.expected {
				t.Errorf("v = %d, expected %d", v, tt.expected)
			}
			if b.Force() != tt.force {
				t.Errorf("force = %d, expected %d", b.Force(), tt.force)
			}
		})
	}
}

func TestBarrier_Lower(t *testing.T) {
	b := Barrier{Kind: Lower}
	b.Change(true, 1920, 10)

	v := 1915
	if b.BrokenThrough(&v) || v != 1920 {
		t.Fatalf("expected pin at 1920, got %d", v)
	}
	v = 1914
	if !b.BrokenThrough(&v) || v != 1914 {
		t.Fatalf("expected break at 1914, got %d", v)
	}
}

func TestBarrier_ForceResetsInside(t *testing.T) {
	b := Barrier{Kind: Upper}
	b.Change(true, 100, 20)

	v := 110
	b.BrokenThrough(&v)
	if b.Force() != 11 {
		t.Fatalf("force = %d, expected 11", b.Force())
	}

	v = 50
	b.BrokenThrough(&v)
	if b.Force() != 0 {
		t.Errorf("force = %d after returning inside, expected 0", b.Force())
	}
}

func TestBarrier_MaxForceNeverBreaks(t *testing.T) {
	b := Barrier{Kind: Upper}
	b.Change(true, 1920, MaxForce)

	for i := 0; i < 1000; i++ {
		v := 1920 + 100000
		if b.BrokenThrough(&v) {
			t.Fatalf("locked barrier broke on push %d", i)
		}
		if v != 1919 {
			t.Fatalf("v = %d, expected 1919", v)
		}
	}
}

func TestBarrier_ForceSaturates(t *testing.T) {
	b := Barrier{Kind: Lower}
	b.Change(true, 0, MaxForce-1)

	v := -(MaxForce - 10)
	b.BrokenThrough(&v)
	v = -(MaxForce - 10)
	if !b.BrokenThrough(&v) {
		t.Fatal("expected saturated force to exceed MinForce")
	}
}

func TestBarrier_Disabled(t *testing.T) {
	b := Barrier{Kind: Upper}
	b.Change(false, 0, 0)

	v := 99999
	if b.BrokenThrough(&v) || v != 99999 {
		t.Errorf("disabled barrier changed v to %d", v)
	}
	if b.Outside(v) {
		t.Error("disabled barrier reports Outside")
	}
}

func TestBarrier_ChangeResetsForce(t *testing.T) {
	b := Barrier{Kind: Upper}
	b.Change(true, 100, 50)
	v := 120
	b.BrokenThrough(&v)
	if b.Force() == 0 {
		t.Fatal("expected force to accumulate")
	}
	b.Change(true, 200, 50)
	if b.Force() != 0 {
		t.Errorf("force = %d after Change, expected 0", b.Force())
	}
}

// The pinned coordinate always stays on or inside the edge.
func TestBarrier_PinnedStaysInside(t *testing.T) {
	for _, kind := range []BarrierKind{Lower, Upper} {
		b := Barrier{Kind: kind}
		b.Change(true, 500, 1000)
		for d := -300; d <= 300; d += 7 {
			v := 500 + d
			if b.BrokenThrough(&v) {
				continue
			}
			if kind == Upper && v > 499 {
				t.Errorf("upper barrier left v = %d", v)
			}
			if kind == Lower && v < 500 {
				t.Errorf("lower barrier left v = %d", v)
			}
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected Mode
		wantErr  bool
	}{
		{"free", Free, false},
		{"", Free, false},
		{"Sticky", Sticky, false},
		{"lock", Lock, false},
		{"locked", Lock, false},
		{"bouncy", Free, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
		}
		if got != tt.expected {
			t.Errorf("ParseMode(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}
