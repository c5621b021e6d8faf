package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lixenwraith/ascii3d/config"
	"github.com/lixenwraith/ascii3d/engine"
	"github.com/lixenwraith/ascii3d/logging"
	"github.com/lixenwraith/ascii3d/render"
	"github.com/lixenwraith/ascii3d/scene"
	"github.com/lixenwraith/ascii3d/terminal"
	"github.com/lixenwraith/ascii3d/vmath"
)

// flag values layered over the environment
var (
	cfg = config.Default()

	snapshotOut    string
	snapshotWidth  int
	snapshotHeight int
	snapshotANSI   bool
	snapshotScene  int
)

var rootCmd = &cobra.Command{
	Use:           "ascii3d",
	Short:         "Render 3D scenes as colored ASCII in the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run [scene.json...]",
	Short: "Fly through scenes in the terminal",
	Long: `Fly through scenes in the terminal.

  w/s/a/d    move            space/x   up/down
  i/k/j/l    look            arrows    look
  q/e        previous/next   c         capture PNG
  h          toggle HUD      p/Esc     pause
  Ctrl-C     quit`,
	RunE: runRun,
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [scene.json]",
	Short: "Render one frame to a PNG, or to stdout as ANSI",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSnapshot,
}

var rampCmd = &cobra.Command{
	Use:   "ramp",
	Short: "Print the glyph ramp and the lightness each glyph starts at",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printRamp(cmd.OutOrStdout())
	},
}

func init() {
	bindConfigFlags(rootCmd.PersistentFlags(), &cfg)

	runCmd.Flags().IntVar(&cfg.FPS, "fps", cfg.FPS, "frame rate, 1-240")
	runCmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload scene files when they change")
	runCmd.Flags().BoolVar(&cfg.AudioEnabled, "audio", cfg.AudioEnabled, "play sound cues")
	runCmd.Flags().Float64Var(&cfg.MasterVolume, "volume", cfg.MasterVolume, "master volume, 0-1")

	snapshotCmd.Flags().StringVarP(&snapshotOut, "out", "o", "", "output PNG path, default a new file under the capture dir")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 160, "target width in terminal columns")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", 48, "target height in terminal rows")
	snapshotCmd.Flags().BoolVar(&snapshotANSI, "ansi", false, "print the frame to stdout as ANSI instead of a PNG")
	snapshotCmd.Flags().IntVar(&snapshotScene, "scene", 0, "demo scene index when no file is given")

	rootCmd.AddCommand(runCmd, snapshotCmd, rampCmd)
}

// bindConfigFlags registers the settings shared by every command
func bindConfigFlags(fs *pflag.FlagSet, c *config.Config) {
	fs.StringVar(&c.AssetsDir, "assets", c.AssetsDir, "directory scene asset paths resolve against")
	fs.StringVar(&c.CaptureDir, "capture-dir", c.CaptureDir, "directory captures are written to")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "append logs to this file, empty disables logging")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&c.FlipY, "flip-y", c.FlipY, "flip the image vertically when printing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ascii3d: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig layers explicitly set flags over ASCII3D_* variables over defaults
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	env, err := config.LoadFromEnv(os.Getenv)
	if err != nil {
		return config.Config{}, err
	}

	merged := env
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "assets":
			merged.AssetsDir = cfg.AssetsDir
		case "capture-dir":
			merged.CaptureDir = cfg.CaptureDir
		case "log-file":
			merged.LogFile = cfg.LogFile
		case "log-level":
			merged.LogLevel = cfg.LogLevel
		case "flip-y":
			merged.FlipY = cfg.FlipY
		case "fps":
			merged.FPS = cfg.FPS
		case "watch":
			merged.Watch = cfg.Watch
		case "audio":
			merged.AudioEnabled = cfg.AudioEnabled
		case "volume":
			merged.MasterVolume = cfg.MasterVolume
		}
	})

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// setupLogging installs the file logger when one is configured
func setupLogging(c config.Config) (io.Closer, error) {
	if c.LogFile == "" {
		return io.NopCloser(nil), nil
	}
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	l, closer, err := logging.OpenFile(c.LogFile, level)
	if err != nil {
		return nil, err
	}
	logging.SetLogger(l)
	return closer, nil
}

// loadPrefabs returns the built-ins plus every model under <assets>/models
func loadPrefabs(c config.Config) *scene.PrefabList {
	prefabs := scene.NewPrefabList()
	dir := filepath.Join(c.AssetsDir, "models")
	if _, err := os.Stat(dir); err != nil {
		return prefabs
	}
	n, err := prefabs.LoadDir(dir)
	if err != nil {
		logging.L().Warn("model load failed", "dir", dir, "error", err)
	}
	logging.L().Info("models loaded", "dir", dir, "count", n)
	return prefabs
}

// loadScenes reads the given scene files, falling back to the demo scenes
func loadScenes(c config.Config, prefabs *scene.PrefabList, paths []string) ([]*scene.Scene, error) {
	if len(paths) == 0 {
		return demoScenes(prefabs, c.Background), nil
	}
	scenes := make([]*scene.Scene, 0, len(paths))
	for _, p := range paths {
		s, err := scene.LoadFile(p, c.AssetsDir, prefabs)
		if err != nil {
			return nil, err
		}
		s.Background = c.Background
		scenes = append(scenes, s)
	}
	return scenes, nil
}

func runRun(cmd *cobra.Command, args []string) (err error) {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	// Panic Recovery: Ensure terminal is reset even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			engine.HandleCrash(r)
		}
	}()

	prefabs := loadPrefabs(c)
	scenes, err := loadScenes(c, prefabs, args)
	if err != nil {
		return err
	}

	cam := scene.NewCamera(vmath.Vec3{Y: 0.5}, vmath.Vec3{}, c.MoveSpeed, c.Sensitivity, 0, 0)
	g := engine.NewGame(cam)
	for _, s := range scenes {
		g.AddScene(s)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)
	engine.Go(func() {
		select {
		case sig := <-sigCh:
			logging.L().Info("signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	})

	err = engine.Run(ctx, g, engine.Options{
		Config:     c,
		ScenePaths: args,
		Prefabs:    prefabs,
	})
	if err != nil {
		logging.L().Error("run failed", "error", err)
	}
	return err
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := setupLogging(c)
	if err != nil {
		return err
	}
	defer closer.Close()

	if snapshotWidth < 2 || snapshotHeight < 1 {
		return fmt.Errorf("%w: snapshot size %dx%d", config.ErrInvalid, snapshotWidth, snapshotHeight)
	}

	prefabs := loadPrefabs(c)
	scenes, err := loadScenes(c, prefabs, args)
	if err != nil {
		return err
	}
	if snapshotScene < 0 || snapshotScene >= len(scenes) {
		return fmt.Errorf("%w: %d", engine.ErrNoScene, snapshotScene)
	}

	cols, rows := snapshotWidth, snapshotHeight
	cam := scene.NewCamera(vmath.Vec3{Y: 0.5}, vmath.Vec3{}, c.MoveSpeed, c.Sensitivity, cols, rows)
	rast := render.NewRasterizer(cols, rows)
	defer rast.Close()

	img, err := rast.Render(&render.Frame{Scene: scenes[snapshotScene], Camera: cam})
	if err != nil {
		return err
	}

	if snapshotANSI {
		fb, err := terminal.NewFrameBuffer(cmd.OutOrStdout(), cols/2, rows, terminal.RGBBlack)
		if err != nil {
			return err
		}
		render.Blit(fb, img, cols, rows, c.FlipY)
		return fb.DrawFrame()
	}

	path := snapshotOut
	if path == "" {
		path, err = render.Capture(c.CaptureDir, img)
	} else {
		err = rast.SavePNG(path)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// printRamp lists each glyph with the highest lightness that still selects it
func printRamp(w io.Writer) {
	last := len(terminal.GlyphRamp) - 1
	fmt.Fprintf(w, "%s  %s  %s\n", runewidth.FillRight("idx", 4), runewidth.FillRight("glyph", 6), "up to l")
	for i, g := range terminal.GlyphRamp {
		label := string(g)
		if g == '\u00a0' {
			label = "nbsp"
		}
		fmt.Fprintf(w, "%s  %s  %.3f\n",
			runewidth.FillRight(fmt.Sprint(i), 4),
			runewidth.FillRight(label, 6),
			float64(i)/float64(last))
	}
}
