// Package flappy implements the game: a bird falls under gravity, flaps
// upward on input and has to pass through a stream of gapped pipes.
//
// The world is a fixed 400x600-unit area by default. Game owns all state
// and is driven one step at a time; it is not safe for concurrent use.
package flappy

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// BestScoreKey is the key the best score is stored under.
const BestScoreKey = "flappyHighScore"

// ErrRunActive is returned by Start while a run is in progress.
var ErrRunActive = errors.New("flappy: a run is already in progress")

// Phase is the session state.
type Phase int

const (
	PhaseIdle    Phase = iota // Menu shown, nothing simulated
	PhaseRunning              // Simulation advancing
	PhasePaused               // Frozen, still drawn
	PhaseEnded                // Game over shown
)

// String returns the phase name used in logs.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// BestScoreStore persists a single integer per key.
type BestScoreStore interface {
	GetInt(key string) (int, error)
	SetInt(key string, value int) error
}

// bestRaiser is implemented by stores that can raise a value atomically,
// so games sharing one store never lower each other's best.
type bestRaiser interface {
	RaiseInt(key string, value int) (int, error)
}

// Option configures a Game.
type Option func(*Game)

// WithStore persists the best score. Without it the best score lives only
// as long as the Game.
func WithStore(s BestScoreStore) Option {
	return func(g *Game) { g.store = s }
}

// WithAudio routes sound effects and music.
func WithAudio(p audio.Player) Option {
	return func(g *Game) { g.audio = p }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// Game is one player's game: the session state machine plus the world.
type Game struct {
	cfg    config.FlappyConfig
	theme  config.Theme
	phase  Phase
	bird   Bird
	pipes  *PipeManager
	scroll Scroll
	score  int
	best   int
	ticks  int

	store  BestScoreStore
	audio  audio.Player
	logger *log.Logger
	events []core.Event
}

// New creates a game in the Idle phase. cfg is expected to be valid.
func New(cfg config.FlappyConfig, opts ...Option) *Game {
	g := &Game{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.audio == nil {
		g.audio = audio.NewMixer(nil, cfg.Audio, g.logger)
	}

	g.theme, _ = cfg.ThemeOrDefault(cfg.DefaultTheme)
	g.bird = newBird(cfg.Bird)
	g.pipes = NewPipeManager(0, cfg)

	g.refreshBest()
	return g
}

// refreshBest picks up a higher best written through the same store by
// another game. On a read error the known best is kept.
func (g *Game) refreshBest() {
	if g.store == nil {
		return
	}
	best, err := g.store.GetInt(BestScoreKey)
	if err != nil {
		g.logger.Warn("cannot load best score", "error", err)
		return
	}
	if best > g.best {
		g.best = best
	}
}

// saveBest persists g.best. A raising store may report a higher value
// that was stored meanwhile.
func (g *Game) saveBest() {
	if g.store == nil {
		return
	}
	if r, ok := g.store.(bestRaiser); ok {
		stored, err := r.RaiseInt(BestScoreKey, g.best)
		if err != nil {
			g.logger.Error("cannot save best score", "score", g.best, "error", err)
			return
		}
		if stored > g.best {
			g.best = stored
		}
		return
	}
	if err := g.store.SetInt(BestScoreKey, g.best); err != nil {
		g.logger.Error("cannot save best score", "score", g.best, "error", err)
	}
}

// Start begins a run from Idle or Ended. It resets the bird, the pipes,
// the score and the scroll layers, and fixes the theme for the run.
// An unknown theme name falls back to the default theme.
func (g *Game) Start(themeName string, seed int64) (config.Theme, error) {
	if g.phase == PhaseRunning || g.phase == PhasePaused {
		return g.theme, ErrRunActive
	}

	theme, ok := g.cfg.ThemeOrDefault(themeName)
	if !ok {
		g.logger.Warn("unknown theme, using default", "theme", themeName, "default", theme.Name)
	}
	g.theme = theme
	g.refreshBest()

	g.bird = newBird(g.cfg.Bird)
	g.pipes.Reset(seed)
	g.scroll = Scroll{}
	g.score = 0
	g.ticks = 0
	g.phase = PhaseRunning
	g.audio.PlayMusic()

	g.logger.Info("run started", "theme", theme.Name, "seed", seed)
	return theme, nil
}

// Flap gives the bird its upward impulse. No-op unless running.
func (g *Game) Flap() bool {
	if g.phase != PhaseRunning {
		return false
	}
	g.bird.Flap(g.cfg.Physics)
	g.audio.Play(audio.EffectFlap)
	g.events = append(g.events, core.EventFlap)
	return true
}

// TogglePause switches between Running and Paused. No-op otherwise.
func (g *Game) TogglePause() bool {
	switch g.phase {
	case PhaseRunning:
		g.phase = PhasePaused
		g.audio.PauseMusic()
		g.events = append(g.events, core.EventPaused)
	case PhasePaused:
		g.phase = PhaseRunning
		g.audio.PlayMusic()
		g.events = append(g.events, core.EventResumed)
	default:
		return false
	}
	return true
}

// ReturnToMenu moves from Ended back to Idle.
func (g *Game) ReturnToMenu() bool {
	if g.phase != PhaseEnded {
		return false
	}
	g.phase = PhaseIdle
	return true
}

// Step applies the input collected since the last step and, when running,
// advances the world by exactly one frame. Paused and idle games do not
// move. The returned events are valid until the next call.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]

	switch {
	case in.Has(core.ActionPause):
		g.TogglePause()
	case in.Has(core.ActionJump):
		// Space resumes a paused game as well as flapping
		if g.phase == PhasePaused {
			g.TogglePause()
		} else {
			g.Flap()
		}
	case in.Has(core.ActionTap):
		g.Flap()
	}

	if g.phase == PhaseRunning {
		g.advance()
	}

	return core.StepResult{State: g.State(), Events: g.events}
}

// advance runs one physics step: bird, bounds, pipes, scroll.
func (g *Game) advance() {
	g.ticks++

	g.bird.Fall(g.cfg.Physics)

	// Ground is fatal
	ground := g.cfg.GroundLine()
	if g.bird.Y+g.bird.Height > ground {
		g.bird.Y = ground - g.bird.Height
		g.end()
		return
	}

	// Ceiling is not
	if g.bird.Y < 0 {
		g.bird.Y = 0
		g.bird.Velocity = 0
	}

	scored, hit := g.pipes.Update(g.bird.Box())
	for i := 0; i < scored; i++ {
		g.score++
		g.audio.Play(audio.EffectScore)
		g.events = append(g.events, core.EventScore)
	}
	if hit {
		g.end()
		return
	}

	g.scroll.Advance(g.cfg.World.Width, g.cfg.Scroll)
}

// end finalizes the run. The best score is written only when it beats
// the stored one, which is re-read first.
func (g *Game) end() {
	g.phase = PhaseEnded
	g.audio.PauseMusic()

	g.refreshBest()
	if g.score > g.best {
		g.best = g.score
		g.saveBest()
	}

	g.audio.Play(audio.EffectHit)
	g.events = append(g.events, core.EventHit)
	g.logger.Info("run ended", "score", g.score, "best", g.best, "ticks", g.ticks)
}

// State returns the snapshot the platform reads after every step.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.score,
		BestScore: g.best,
		Running:   g.phase == PhaseRunning || g.phase == PhasePaused,
		GameOver:  g.phase == PhaseEnded,
		Paused:    g.phase == PhasePaused,
	}
}

// Phase returns the current session phase.
func (g *Game) Phase() Phase { return g.phase }

// Theme returns the theme of the current or last run.
func (g *Game) Theme() config.Theme { return g.theme }

// Bird returns a copy of the bird.
func (g *Game) Bird() Bird { return g.bird }

// Pipes returns the pipes on screen, oldest first.
func (g *Game) Pipes() []Pipe { return g.pipes.Pipes() }

// Scroll returns the scroll layer offsets.
func (g *Game) Scroll() Scroll { return g.scroll }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// BestScore returns the best score known to this game.
func (g *Game) BestScore() int { return g.best }

// Ticks returns the number of steps simulated in the current run.
func (g *Game) Ticks() int { return g.ticks }

// Config returns the configuration the game was built with.
func (g *Game) Config() config.FlappyConfig { return g.cfg }
