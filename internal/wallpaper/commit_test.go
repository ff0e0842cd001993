package wallpaper

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"
)

func TestSidePath(t *testing.T) {
	tests := []struct {
		path, tag, expected string
	}{
		{"dir/wall.bmp", "new", "dir/wall.new.bmp"},
		{"wall.BMP", "old", "wall.old.BMP"},
		{"wall", "new", "wall.new"},
	}
	for _, tt := range tests {
		if got := sidePath(tt.path, tt.tag); got != tt.expected {
			t.Errorf("sidePath(%q, %q) = %q, expected %q", tt.path, tt.tag, got, tt.expected)
		}
	}
}

func TestDesktopCommit(t *testing.T) {
	errStyle := errors.New("registry locked")
	errActivate := errors.New("desktop refused")

	tests := []struct {
		name        string
		previous    bool
		styleErr    error
		activateErr error

		// red channel of the file afterwards, 0 when it should not be the new image
		expectRed     uint32
		expectRestore bool
	}{
		{name: "first wallpaper", expectRed: 0xffff},
		{name: "replaces previous", previous: true, expectRed: 0xffff},
		{name: "activate fails keeps previous", previous: true, activateErr: errActivate, expectRestore: true},
		{name: "style fails keeps previous", previous: true, styleErr: errStyle},
		{name: "activate fails without previous", activateErr: errActivate, expectRestore: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "wall.bmp")
			if tt.previous {
				if err := writeImageFile(solid(4, 2, blue), path); err != nil {
					t.Fatal(err)
				}
			}

			restored := false
			var activated string
			commit := desktopCommit{
				setStyle: func() (func() error, error) {
					if tt.styleErr != nil {
						return nil, tt.styleErr
					}
					return func() error { restored = true; return nil }, nil
				},
				activate: func(p string) error {
					activated = p
					// the new bitmap is in place when the desktop reads it
					if img, err := LoadImage(p); err != nil || img.Bounds().Size() != image.Pt(8, 4) {
						t.Errorf("bitmap at activation: %v, %v", img, err)
					}
					return tt.activateErr
				},
			}

			err := commit.run(solid(8, 4, red), path)
			wantErr := tt.styleErr
			if wantErr == nil {
				wantErr = tt.activateErr
			}
			if wantErr == nil && err != nil {
				t.Fatalf("run: %v", err)
			}
			if wantErr != nil && !errors.Is(err, wantErr) {
				t.Fatalf("error = %v, expected %v", err, wantErr)
			}
			if restored != tt.expectRestore {
				t.Errorf("style restored = %v, expected %v", restored, tt.expectRestore)
			}
			if tt.styleErr == nil && activated != path {
				t.Errorf("activated %q, expected %q", activated, path)
			}

			switch {
			case tt.expectRed != 0:
				img, err := LoadImage(path)
				if err != nil {
					t.Fatal(err)
				}
				if r, _, _, _ := img.At(0, 0).RGBA(); r != tt.expectRed {
					t.Errorf("red = %#x, expected %#x", r, tt.expectRed)
				}
			case tt.previous:
				img, err := LoadImage(path)
				if err != nil {
					t.Fatal(err)
				}
				if img.Bounds().Size() != image.Pt(4, 2) {
					t.Errorf("previous wallpaper replaced: size %v", img.Bounds().Size())
				}
			default:
				if _, err := os.Stat(path); !os.IsNotExist(err) {
					t.Errorf("wallpaper left behind after failure: %v", err)
				}
			}

			entries, err := os.ReadDir(dir)
			if err != nil {
				t.Fatal(err)
			}
			for _, e := range entries {
				if e.Name() != "wall.bmp" {
					t.Errorf("left behind %s", e.Name())
				}
			}
		})
	}
}
