package wallpaper

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
)

// desktopCommit changes the desktop wallpaper in steps that can be undone.
// A failure at any step leaves the previous bitmap and desktop settings.
type desktopCommit struct {
	// setStyle applies the wallpaper style and returns a function that
	// puts the previous style back
	setStyle func() (restore func() error, err error)
	// activate points the desktop at path
	activate func(path string) error
}

// sidePath inserts tag before the extension so the encoder still matches
func sidePath(path, tag string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "." + tag + ext
}

func (c desktopCommit) run(img image.Image, path string) error {
	staged := sidePath(path, "new")
	backup := sidePath(path, "old")

	if err := writeImageFile(img, staged); err != nil {
		return err
	}
	defer os.Remove(staged)

	hadOld := false
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, backup); err != nil {
			return fmt.Errorf("failed to keep the previous wallpaper: %w", err)
		}
		hadOld = true
	}
	rollbackFile := func() error {
		if !hadOld {
			return os.Remove(path)
		}
		return os.Rename(backup, path)
	}

	if err := os.Rename(staged, path); err != nil {
		return errors.Join(fmt.Errorf("failed to save wallpaper: %w", err), rollbackFile())
	}

	restore, err := c.setStyle()
	if err != nil {
		return errors.Join(err, rollbackFile())
	}
	if err := c.activate(path); err != nil {
		return errors.Join(err, restore(), rollbackFile())
	}

	if hadOld {
		os.Remove(backup)
	}
	return nil
}
