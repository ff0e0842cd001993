package cmd

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/kartoza/dual-monitor-tools/internal/config"
	"github.com/kartoza/dual-monitor-tools/internal/geometry"
	"github.com/kartoza/dual-monitor-tools/internal/monitor"
	"github.com/kartoza/dual-monitor-tools/internal/notify"
	"github.com/kartoza/dual-monitor-tools/internal/tui"
	"github.com/kartoza/dual-monitor-tools/internal/wallpaper"
	"github.com/spf13/cobra"
)

var (
	wallpaperImage   string
	wallpaperFit     string
	wallpaperScreens []int
	wallpaperOutput  string
)

var wallpaperCmd = &cobra.Command{
	Use:   "wallpaper",
	Short: "Compose wallpapers across monitors",
	Long: `Lay an image over one or more monitors as a single surface and
render the desktop wallpaper from it.

Fits:
  center   the image unscaled in the middle
  stretch  covers the screens exactly, ignoring aspect ratio
  under    keeps aspect ratio with bars on two sides
  over     keeps aspect ratio and crops the overflow`,
}

var wallpaperComposeCmd = &cobra.Command{
	Use:   "compose",
	Short: "Render the wallpaper to an image file",
	RunE: func(cmd *cobra.Command, args []string) error {
		comp, err := composeFromFlags()
		if err != nil {
			return err
		}
		out := wallpaperOutput
		if out == "" {
			out = appConfig.Wallpaper.Output
		}
		sink := wallpaper.FileSink{Path: out, Wrap: appConfig.Wallpaper.LegacyWrap}
		if err := sink.SetWallpaper(comp.CreateWallpaperImage(), comp.DesktopRect().Min); err != nil {
			return err
		}
		fmt.Println("Wallpaper written to " + out)
		return nil
	},
}

var wallpaperSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Render the wallpaper and apply it to the desktop",
	RunE: func(cmd *cobra.Command, args []string) error {
		sink, err := desktopSink()
		if err != nil {
			return err
		}
		comp, err := composeFromFlags()
		if err != nil {
			return err
		}
		if err := sink.SetWallpaper(comp.CreateWallpaperImage(), comp.DesktopRect().Min); err != nil {
			return err
		}
		notify.WallpaperSet(appConfig.Wallpaper.Output)
		return nil
	},
}

var wallpaperEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Arrange the wallpaper interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		comp, fit, err := newCompositor()
		if err != nil {
			return err
		}

		path := wallpaperImage
		if path == "" {
			path = appConfig.Wallpaper.LastImage
		}
		var img image.Image
		if path != "" {
			if img, err = wallpaper.LoadImage(path); err != nil {
				return err
			}
			rememberImage(path)
		}

		sink, err := desktopSink()
		if errors.Is(err, wallpaper.ErrUnsupported) {
			sink = wallpaper.FileSink{Path: appConfig.Wallpaper.Output, Wrap: appConfig.Wallpaper.LegacyWrap}
		} else if err != nil {
			return err
		}

		savePath := wallpaperOutput
		if savePath == "" {
			savePath = appConfig.Wallpaper.Output
		}
		return tui.RunEditor(tui.EditorConfig{
			Compositor: comp,
			Image:      img,
			ImageName:  filepath.Base(path),
			Fit:        fit,
			Sink:       sink,
			SavePath:   savePath,
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{wallpaperComposeCmd, wallpaperSetCmd, wallpaperEditCmd} {
		c.Flags().StringVarP(&wallpaperImage, "image", "i", "", "Image to lay out (default: last used image)")
		c.Flags().StringVar(&wallpaperFit, "fit", "", "center, stretch, under or over (default from config)")
		c.Flags().IntSliceVar(&wallpaperScreens, "screens", nil, "Monitor numbers to cover, starting at 1 (default: all)")
		wallpaperCmd.AddCommand(c)
	}
	wallpaperComposeCmd.Flags().StringVarP(&wallpaperOutput, "output", "o", "", "Output file, type from extension (default from config)")
	wallpaperEditCmd.Flags().StringVarP(&wallpaperOutput, "output", "o", "", "File written by save (default from config)")

	rootCmd.AddCommand(wallpaperCmd)
}

// newCompositor builds a compositor over the current monitors with the
// configured background, interpolation and screen selection
func newCompositor() (*wallpaper.Compositor, geometry.Fit, error) {
	wcfg := appConfig.Wallpaper

	fit := wcfg.Fit
	if wallpaperFit != "" {
		f, err := geometry.ParseFit(wallpaperFit)
		if err != nil {
			return nil, fit, err
		}
		fit = f
	}
	bg, err := wallpaper.ParseColor(wcfg.Background)
	if err != nil {
		return nil, fit, err
	}
	interp, err := wallpaper.ParseInterpolation(wcfg.Interpolation)
	if err != nil {
		return nil, fit, err
	}

	monitors, err := monitor.ListMonitors()
	if err != nil {
		return nil, fit, err
	}
	comp := wallpaper.New(monitors,
		wallpaper.WithBackground(bg),
		wallpaper.WithInterpolation(interp),
		wallpaper.WithLogger(slog.Default().With("module", "wallpaper")),
	)

	if err := selectScreens(comp, wcfg.Screens, wallpaperScreens); err != nil {
		return nil, fit, err
	}
	return comp, fit, nil
}

// selectScreens activates the 1-based --screen numbers, else the configured
// 0-based indices, else every screen
func selectScreens(comp *wallpaper.Compositor, configured, numbers []int) error {
	screens := configured
	if len(numbers) > 0 {
		screens = make([]int, len(numbers))
		for i, n := range numbers {
			screens[i] = n - 1
		}
	}
	if len(screens) == 0 {
		comp.SelectAllScreens()
		return nil
	}
	return comp.SetActiveScreens(screens)
}

// composeFromFlags lays the selected image over the selected screens
func composeFromFlags() (*wallpaper.Compositor, error) {
	comp, fit, err := newCompositor()
	if err != nil {
		return nil, err
	}
	path := wallpaperImage
	if path == "" {
		path = appConfig.Wallpaper.LastImage
	}
	if path == "" {
		return nil, errors.New("no image given, use --image")
	}
	img, err := wallpaper.LoadImage(path)
	if err != nil {
		return nil, err
	}
	if err := comp.AddImage(img, fit); err != nil {
		return nil, err
	}
	rememberImage(path)
	return comp, nil
}

func desktopSink() (wallpaper.Sink, error) {
	sink, err := wallpaper.NewDesktopSink(appConfig.Wallpaper.Output, appConfig.Wallpaper.LegacyWrap)
	if errors.Is(err, wallpaper.ErrUnsupported) {
		return nil, fmt.Errorf("%w on this platform, use 'dmt wallpaper compose' to write a file", err)
	}
	return sink, err
}

// rememberImage stores path as the last used image
func rememberImage(path string) {
	abs, err := filepath.Abs(path)
	if err != nil || abs == appConfig.Wallpaper.LastImage {
		return
	}
	appConfig.Wallpaper.LastImage = abs
	if err := saveConfig(); err != nil {
		slog.Warn("failed to save configuration", "error", err)
	}
}

func saveConfig() error {
	if configPath != "" {
		return config.SaveTo(appConfig, configPath)
	}
	return config.Save(appConfig)
}
