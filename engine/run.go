// @lixen: #focus{sys[engine,loop]}
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/ascii3d/audio"
	"github.com/lixenwraith/ascii3d/config"
	"github.com/lixenwraith/ascii3d/logging"
	"github.com/lixenwraith/ascii3d/render"
	"github.com/lixenwraith/ascii3d/scene"
	"github.com/lixenwraith/ascii3d/status"
	"github.com/lixenwraith/ascii3d/terminal"
)

// errQuit unwinds the task group on a user quit, Run reports it as a clean exit
var errQuit = errors.New("quit")

// fpsSmoothing weights each new frame interval in the fps average
const fpsSmoothing = 0.1

// ErrOutput wraps a failed terminal write; the frame stream cannot recover from it
var ErrOutput = errors.New("terminal output failed")

// Input is the control state handed to one fixed update step
type Input struct {
	Move       [3]int8 // strafe right+, up+, forward+
	Look       [2]int8 // yaw right+, pitch up+
	Cols, Rows int
	Step       time.Duration
}

// UpdateFunc advances the game by one fixed step
type UpdateFunc func(g *Game, in Input)

// CameraUpdate is the default step, flying the camera from the controls
func CameraUpdate(g *Game, in Input) {
	if g.Camera != nil {
		g.Camera.Update(in.Cols, in.Rows, in.Move, in.Look)
	}
}

// Options configures Run
type Options struct {
	Config  config.Config
	Backend terminal.Backend // nil selects the platform terminal
	Clock   TimeProvider     // nil selects the system clock
	Cues    *audio.Cues      // nil builds cues from Config
	Update  UpdateFunc       // nil selects CameraUpdate
	Stats   *status.Registry // nil keeps stats private to the run

	// ScenePaths maps scene index to its source file for hot reload, entries may be empty
	ScenePaths []string
	Prefabs    *scene.PrefabList

	// MaxFrames stops the loop after that many frames, 0 runs until quit
	MaxFrames int
}

// loop holds the state owned by the frame goroutine
type loop struct {
	game     *Game
	opts     Options
	backend  terminal.Backend
	fb       *terminal.FrameBuffer
	rast     *render.Rasterizer
	hud      *render.HUDPass
	cues     *audio.Cues
	controls *Controls
	stepper  *Stepper
	clock    TimeProvider
	update   UpdateFunc
	scene    *render.ScenePass
	stats    loopStats

	cols, rows int
	frames     int
	lastImage  *image.RGBA
	lastFrame  time.Time

	resizeCh chan [2]int
	reloadCh chan string
}

// loopStats caches the registry entries written every frame
type loopStats struct {
	reg       *status.Registry
	frames    *atomic.Int64
	cells     *atomic.Int64
	triangles *atomic.Int64
	scene     *atomic.Int64
	fps       *status.Gauge
}

func newLoopStats(reg *status.Registry) loopStats {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return loopStats{
		reg:       reg,
		frames:    reg.Counters.Get(status.Frames),
		cells:     reg.Counters.Get(status.Cells),
		triangles: reg.Counters.Get(status.Triangles),
		scene:     reg.Counters.Get(status.SceneIndex),
		fps:       reg.Gauges.Get(status.FPS),
	}
}

// Run drives the terminal until ctx is cancelled, the user quits or output fails
func Run(ctx context.Context, g *Game, opts Options) error {
	l := &loop{
		game:     g,
		opts:     opts,
		backend:  opts.Backend,
		cues:     opts.Cues,
		controls: NewControls(),
		clock:    opts.Clock,
		update:   opts.Update,
		stats:    newLoopStats(opts.Stats),
		resizeCh: make(chan [2]int, 1),
		reloadCh: make(chan string, 4),
	}
	if l.backend == nil {
		l.backend = terminal.NewBackend()
	}
	if l.clock == nil {
		l.clock = MonotonicTimeProvider{}
	}
	if l.update == nil {
		l.update = CameraUpdate
	}
	if l.cues == nil {
		l.cues = audio.NewCues(audioConfig(opts.Config))
	}

	if err := l.backend.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer l.backend.Fini()

	if err := l.setup(); err != nil {
		return err
	}
	defer l.rast.Close()
	defer l.cues.Cleanup()

	logging.L().Info("engine started", append([]any{"cols", l.cols, "rows", l.rows}, opts.Config.LogAttrs()...)...)

	reader := terminal.NewInputReader(l.backend)
	group, gctx := errgroup.WithContext(ctx)

	group.Go(Guard(func() error { return reader.Run(gctx) }))

	if paths := l.watchPaths(); opts.Config.Watch && len(paths) > 0 {
		group.Go(Guard(func() error {
			return WatchFiles(gctx, paths, DebounceDelay, func(p string) {
				select {
				case l.reloadCh <- p:
				default:
				}
			})
		}))
	}

	group.Go(Guard(func() error { return l.run(gctx, reader.Events()) }))

	err := group.Wait()
	logging.L().Info("engine stopped", l.stats.reg.LogAttrs()...)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func audioConfig(cfg config.Config) audio.Config {
	ac := audio.DefaultConfig()
	ac.Enabled = cfg.AudioEnabled
	ac.MasterVolume = cfg.MasterVolume
	return ac
}

func (l *loop) setup() error {
	l.cols, l.rows = l.backend.Size()

	fb, err := terminal.NewFrameBuffer(l.backend.Output(), l.cols/2, l.rows, terminal.RGBBlack)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	l.fb = fb

	l.rast = render.NewEmptyRasterizer(l.cols, l.rows)
	l.hud = render.NewHUDPass()
	l.scene = render.NewScenePass()
	l.rast.Register(l.scene, render.PriorityScene)
	l.rast.Register(render.NewUIPass(), render.PriorityUI)
	l.rast.Register(l.hud, render.PriorityHUD)
	l.syncHUD()

	if l.game.Camera != nil {
		l.game.Camera.Resize(l.cols, l.rows)
	}

	l.backend.SetResizeHandler(func(cols, rows int) {
		// Keep only the newest size
		select {
		case <-l.resizeCh:
		default:
		}
		l.resizeCh <- [2]int{cols, rows}
	})

	if err := l.cues.Initialize(); err != nil {
		logging.L().Warn("audio unavailable", "error", err)
	}

	l.stepper = NewStepper(l.opts.Config.FPS, l.clock)
	return nil
}

func (l *loop) watchPaths() []string {
	var paths []string
	for _, p := range l.opts.ScenePaths {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func (l *loop) run(ctx context.Context, events <-chan *tcell.EventKey) error {
	ticker := time.NewTicker(l.stepper.Step())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				// Input ended, keep rendering until cancelled or quit
				events = nil
				continue
			}
			if err := l.handleKey(ev); err != nil {
				return err
			}

		case size := <-l.resizeCh:
			if err := l.resize(size[0], size[1]); err != nil {
				return err
			}

		case path := <-l.reloadCh:
			l.reload(path)

		case <-ticker.C:
			if err := l.frame(); err != nil {
				return err
			}
			l.frames++
			if l.opts.MaxFrames > 0 && l.frames >= l.opts.MaxFrames {
				return errQuit
			}
		}
	}
}

func (l *loop) handleKey(ev *tcell.EventKey) error {
	g := l.game
	switch l.controls.Handle(ev, l.clock.Now()) {
	case ActionQuit:
		return errQuit
	case ActionPause:
		g.Paused = !g.Paused
		l.controls.Release()
		if !g.Paused {
			l.stepper.Reset()
		}
	case ActionPrevScene:
		if g.CycleScene(-1) {
			l.cues.PlaySceneSwitch()
		}
	case ActionNextScene:
		if g.CycleScene(1) {
			l.cues.PlaySceneSwitch()
		}
	case ActionCapture:
		l.capture()
	case ActionToggleHUD:
		g.HUD = !g.HUD
		l.syncHUD()
	}
	return nil
}

func (l *loop) syncHUD() {
	if l.hud.IsVisible() != l.game.HUD {
		l.hud.Toggle()
	}
}

func (l *loop) capture() {
	if l.lastImage == nil {
		return
	}
	if _, err := render.Capture(l.opts.Config.CaptureDir, l.lastImage); err != nil {
		logging.L().Warn("capture failed", "error", err)
		return
	}
	l.cues.PlayCapture()
}

// resize rebuilds the frame buffer and target for the new terminal size
func (l *loop) resize(cols, rows int) error {
	if cols == l.cols && rows == l.rows {
		return nil
	}
	logging.L().Info("terminal resized", "cols", cols, "rows", rows)
	l.cols, l.rows = cols, rows

	if err := l.fb.Reset(cols/2, rows, terminal.RGBBlack); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if err := l.rast.Resize(cols, rows); err != nil {
		return err
	}
	if l.game.Camera != nil {
		l.game.Camera.Resize(cols, rows)
	}
	return nil
}

func (l *loop) reload(path string) {
	for i, p := range l.opts.ScenePaths {
		if p == "" || !samePath(p, path) {
			continue
		}
		s, err := scene.LoadFile(p, l.opts.Config.AssetsDir, l.opts.Prefabs)
		if err != nil {
			logging.L().Warn("scene reload failed", "path", p, "error", err)
			return
		}
		s.Background = l.opts.Config.Background
		if err := l.game.ReplaceScene(i, s); err != nil {
			logging.L().Warn("scene reload failed", "path", p, "error", err)
			return
		}
		logging.L().Info("scene reloaded", "path", p, "objects", len(s.Objects))
		return
	}
}

// frame runs due update steps, renders, and repaints changed cells
func (l *loop) frame() error {
	g := l.game
	steps := l.stepper.Advance()
	l.sampleFPS(l.clock.Now())

	if !g.Paused {
		now := l.clock.Now()
		for range steps {
			move, look := l.controls.State(now)
			in := Input{Move: move, Look: look, Cols: l.cols, Rows: l.rows, Step: l.stepper.Step()}
			l.update(g, in)
			if in.Move != [3]int8{} {
				l.cues.PlayStep()
			}
		}
	}

	f := &render.Frame{
		Scene:  g.Scene(),
		Camera: g.Camera,
		UI:     g.UIElems(),
		HUD:    l.hudLines(),
	}
	img, err := l.rast.Render(f)
	if err != nil {
		return err
	}
	l.lastImage = img

	l.fb.Clear()
	render.Blit(l.fb, img, l.cols, l.rows, l.opts.Config.FlipY)
	if err := l.fb.DrawFrame(); err != nil {
		logging.L().Error("frame output failed", "error", err)
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}

	l.stats.frames.Add(1)
	l.stats.cells.Add(int64(l.fb.Repainted()))
	l.stats.triangles.Store(int64(l.scene.Triangles()))
	l.stats.scene.Store(int64(g.SceneIndex()))
	return nil
}

// sampleFPS folds the interval since the previous frame into the fps gauge
func (l *loop) sampleFPS(now time.Time) {
	if !l.lastFrame.IsZero() {
		if dt := now.Sub(l.lastFrame).Seconds(); dt > 0 {
			l.stats.fps.Smooth(1/dt, fpsSmoothing)
		}
	}
	l.lastFrame = now
}

func (l *loop) hudLines() []string {
	g := l.game
	if !g.HUD {
		return nil
	}
	lines := []string{fmt.Sprintf("%d/%d %.0ffps", g.SceneIndex()+1, g.SceneCount(), l.stats.fps.Get())}
	if g.Paused {
		lines = append(lines, "PAUSED")
	}
	return lines
}

func samePath(a, b string) bool {
	if a == b {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
