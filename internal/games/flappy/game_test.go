package flappy

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

type memStore struct {
	values map[string]int
	writes int
	err    error
}

func newMemStore(best int) *memStore {
	return &memStore{values: map[string]int{BestScoreKey: best}}
}

func (m *memStore) GetInt(key string) (int, error) {
	return m.values[key], m.err
}

func (m *memStore) SetInt(key string, value int) error {
	m.writes++
	if m.err != nil {
		return m.err
	}
	m.values[key] = value
	return nil
}

type recordingPlayer struct {
	calls []string
}

func (r *recordingPlayer) Play(e audio.Effect) { r.calls = append(r.calls, e.String()) }
func (r *recordingPlayer) PlayMusic()          { r.calls = append(r.calls, "music on") }
func (r *recordingPlayer) PauseMusic()         { r.calls = append(r.calls, "music off") }

func startedGame(t *testing.T, opts ...Option) *Game {
	t.Helper()
	g := New(config.DefaultFlappyConfig(), opts...)
	if _, err := g.Start("water", 42); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return g
}

func step(g *Game, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return g.Step(in)
}

func hasEvent(events []core.Event, want core.Event) bool {
	for _, e := range events {
		if e == want {
			return true
		}
	}
	return false
}

func TestStartResetsWorld(t *testing.T) {
	g := startedGame(t)

	b := g.Bird()
	if b.X != 100 || b.Y != 300 || b.Velocity != 0 || b.Rotation != 0 {
		t.Errorf("bird after Start = %+v", b)
	}
	if len(g.Pipes()) != 0 {
		t.Errorf("expected no pipes after Start, got %d", len(g.Pipes()))
	}
	if g.Phase() != PhaseRunning {
		t.Errorf("phase = %v, expected running", g.Phase())
	}
	if s := g.Scroll(); s.Background != 0 || s.Ground != 0 {
		t.Errorf("scroll after Start = %+v", s)
	}
}

func TestFirstStep(t *testing.T) {
	g := startedGame(t)

	step(g)

	b := g.Bird()
	if !near(b.Velocity, 0.2) {
		t.Errorf("velocity = %v, expected 0.2", b.Velocity)
	}
	if !near(b.Y, 300.2) {
		t.Errorf("y = %v, expected 300.2", b.Y)
	}
	if !near(b.Rotation, 1) {
		t.Errorf("rotation = %v, expected 1", b.Rotation)
	}
	if b.X != 100 {
		t.Errorf("x changed to %v", b.X)
	}
}

func TestRotationClamp(t *testing.T) {
	tests := []struct {
		name     string
		velocity float64
		want     float64
	}{
		{"capped going down", 30, 90},
		{"below cap", 10, 51},
		{"no lower bound", -30, -149},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := startedGame(t)
			g.bird.Y = 200
			g.bird.Velocity = tc.velocity

			step(g)

			if !near(g.Bird().Rotation, tc.want) {
				t.Errorf("rotation = %v, expected %v", g.Bird().Rotation, tc.want)
			}
		})
	}
}

func TestGravityAccumulates(t *testing.T) {
	g := startedGame(t)

	prev := g.Bird().Velocity
	for i := 0; i < 30; i++ {
		step(g)
		v := g.Bird().Velocity
		if !near(v-prev, 0.2) {
			t.Fatalf("step %d: velocity went %v -> %v, expected +0.2", i, prev, v)
		}
		prev = v
	}
}

func TestFlapOverridesVelocity(t *testing.T) {
	g := startedGame(t)
	g.bird.Velocity = 3

	if !g.Flap() {
		t.Fatal("Flap() should apply while running")
	}
	if g.Bird().Velocity != -5 {
		t.Errorf("velocity after flap = %v, expected -5", g.Bird().Velocity)
	}

	// Through the step the flap lands before gravity
	g.bird.Velocity = 3
	res := step(g, core.ActionJump)
	if !near(g.Bird().Velocity, -4.8) {
		t.Errorf("velocity after jump step = %v, expected -4.8", g.Bird().Velocity)
	}
	if !hasEvent(res.Events, core.EventFlap) {
		t.Error("expected a flap event")
	}
}

func TestFlapIgnoredUnlessRunning(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game)
	}{
		{"idle", func(g *Game) {}},
		{"paused", func(g *Game) {
			g.Start("water", 1)
			g.TogglePause()
		}},
		{"ended", func(g *Game) {
			g.Start("water", 1)
			g.end()
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New(config.DefaultFlappyConfig())
			tc.setup(g)
			g.bird.Velocity = 3

			if g.Flap() {
				t.Error("Flap() should be a no-op")
			}
			step(g, core.ActionTap)
			if g.Bird().Velocity != 3 {
				t.Errorf("velocity = %v, expected unchanged 3", g.Bird().Velocity)
			}
		})
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g := startedGame(t)
	for i := 0; i < 10; i++ {
		step(g)
	}

	res := step(g, core.ActionPause)
	if !res.State.Paused || !hasEvent(res.Events, core.EventPaused) {
		t.Fatalf("expected paused state, got %+v", res)
	}

	frozen := g.Bird()
	pipes := append([]Pipe(nil), g.Pipes()...)
	ticks := g.Ticks()
	for i := 0; i < 20; i++ {
		step(g)
	}
	// A click does not resume
	step(g, core.ActionTap)

	if g.Bird() != frozen || g.Ticks() != ticks {
		t.Errorf("world moved while paused: %+v -> %+v", frozen, g.Bird())
	}
	if len(g.Pipes()) != len(pipes) || (len(pipes) > 0 && g.Pipes()[0].X != pipes[0].X) {
		t.Error("pipes moved while paused")
	}
	if g.Phase() != PhasePaused {
		t.Fatalf("tap should not resume, phase = %v", g.Phase())
	}

	// Space does
	res = step(g, core.ActionJump)
	if res.State.Paused || !hasEvent(res.Events, core.EventResumed) {
		t.Errorf("jump should resume, got %+v", res)
	}
	if g.Ticks() != ticks+1 {
		t.Errorf("resume step should advance once, ticks = %d", g.Ticks())
	}
}

func TestPauseIgnoredWhenNotRunning(t *testing.T) {
	g := New(config.DefaultFlappyConfig())
	if g.TogglePause() {
		t.Error("pause should be a no-op while idle")
	}

	g.Start("water", 1)
	g.end()
	if g.TogglePause() || g.Phase() != PhaseEnded {
		t.Error("pause should be a no-op once ended")
	}
}

func TestGroundIsFatal(t *testing.T) {
	g := startedGame(t)

	var res core.StepResult
	for i := 0; i < 100 && !res.State.GameOver; i++ {
		res = step(g)
	}

	if !res.State.GameOver {
		t.Fatal("bird should hit the ground")
	}
	if !hasEvent(res.Events, core.EventHit) {
		t.Error("expected a hit event")
	}
	if g.Bird().Y != 470 {
		t.Errorf("bird should rest on the ground line, y = %v", g.Bird().Y)
	}
	// No pipe ever reached the bird
	if g.Score() != 0 {
		t.Errorf("score = %d, expected 0", g.Score())
	}
}

func TestCeilingIsNotFatal(t *testing.T) {
	g := startedGame(t)
	g.bird.Y = 1
	g.bird.Velocity = -5

	res := step(g)

	if res.State.GameOver {
		t.Fatal("ceiling must not end the run")
	}
	if g.Bird().Y != 0 || g.Bird().Velocity != 0 {
		t.Errorf("bird = %+v, expected y=0 velocity=0", g.Bird())
	}
}

func TestBestScorePersistence(t *testing.T) {
	tests := []struct {
		name       string
		stored     int
		score      int
		wantBest   int
		wantWrites int
	}{
		{"beaten", 5, 7, 7, 1},
		{"not beaten", 5, 3, 5, 0},
		{"tied", 5, 5, 5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore(tc.stored)
			g := startedGame(t, WithStore(store))
			if g.BestScore() != tc.stored {
				t.Fatalf("best loaded = %d, expected %d", g.BestScore(), tc.stored)
			}

			g.score = tc.score
			g.bird.Y = 480
			res := step(g)

			if !res.State.GameOver {
				t.Fatal("run should have ended on the ground")
			}
			if store.values[BestScoreKey] != tc.wantBest || res.State.BestScore != tc.wantBest {
				t.Errorf("best = %d (state %d), expected %d", store.values[BestScoreKey], res.State.BestScore, tc.wantBest)
			}
			if store.writes != tc.wantWrites {
				t.Errorf("store writes = %d, expected %d", store.writes, tc.wantWrites)
			}
		})
	}
}

func TestBestScoreStoreErrorKeepsPlaying(t *testing.T) {
	store := newMemStore(0)
	store.err = errors.New("disk full")
	g := startedGame(t, WithStore(store))

	g.score = 4
	g.end()

	if g.BestScore() != 4 {
		t.Errorf("in-memory best = %d, expected 4", g.BestScore())
	}
	if _, err := g.Start("water", 2); err != nil {
		t.Errorf("restart after store error failed: %v", err)
	}
}

func TestSharedStoreBestNeverDecreases(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if err := store.SetInt(BestScoreKey, 5); err != nil {
		t.Fatalf("SetInt() failed: %v", err)
	}

	a := startedGame(t, WithStore(store))
	b := startedGame(t, WithStore(store))
	late := New(config.DefaultFlappyConfig(), WithStore(store))

	b.score = 10
	b.end()
	a.score = 7
	a.end()

	stored, err := store.GetInt(BestScoreKey)
	if err != nil {
		t.Fatalf("GetInt() failed: %v", err)
	}
	if stored != 10 {
		t.Errorf("stored best = %d, expected 10", stored)
	}
	if a.BestScore() != 10 {
		t.Errorf("game A best = %d, expected 10", a.BestScore())
	}

	// A game created before the record sees it on its next run
	if late.BestScore() != 5 {
		t.Fatalf("best before start = %d, expected 5", late.BestScore())
	}
	if _, err := late.Start("water", 3); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	if late.BestScore() != 10 {
		t.Errorf("best after start = %d, expected 10", late.BestScore())
	}
}

func TestEndRereadsStoredBest(t *testing.T) {
	store := newMemStore(5)
	g := startedGame(t, WithStore(store))

	// Another writer raised the best mid-run
	store.values[BestScoreKey] = 10
	g.score = 7
	g.end()

	if store.writes != 0 {
		t.Errorf("store writes = %d, expected 0", store.writes)
	}
	if store.values[BestScoreKey] != 10 || g.BestScore() != 10 {
		t.Errorf("best = %d (game %d), expected 10", store.values[BestScoreKey], g.BestScore())
	}
}

func TestStartWhileRunning(t *testing.T) {
	g := startedGame(t)

	if _, err := g.Start("night", 1); !errors.Is(err, ErrRunActive) {
		t.Errorf("Start() while running = %v, expected ErrRunActive", err)
	}
	g.TogglePause()
	if _, err := g.Start("night", 1); !errors.Is(err, ErrRunActive) {
		t.Errorf("Start() while paused = %v, expected ErrRunActive", err)
	}
	if g.Theme().Name != "water" {
		t.Errorf("theme changed mid-run to %q", g.Theme().Name)
	}
}

func TestStartThemes(t *testing.T) {
	g := New(config.DefaultFlappyConfig())

	theme, err := g.Start("night", 1)
	if err != nil || theme.Name != "night" || theme.Background != "#0a0a2a" {
		t.Errorf("Start(night) = %+v, %v", theme, err)
	}

	g.end()
	theme, err = g.Start("lava", 1)
	if err != nil {
		t.Fatalf("unknown theme should not fail: %v", err)
	}
	if theme.Name != "water" || g.Theme().Name != "water" {
		t.Errorf("unknown theme should fall back to water, got %q", theme.Name)
	}
}

func TestRestartAndReturnToMenu(t *testing.T) {
	g := startedGame(t)
	for i := 0; i < 100 && g.Phase() == PhaseRunning; i++ {
		step(g)
	}
	if g.Phase() != PhaseEnded {
		t.Fatalf("phase = %v, expected ended", g.Phase())
	}

	g.score = 3
	if _, err := g.Start("snow", 7); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if g.Score() != 0 || g.Bird().Y != 300 || g.Ticks() != 0 {
		t.Errorf("restart did not reset the run: score=%d y=%v ticks=%d", g.Score(), g.Bird().Y, g.Ticks())
	}

	if g.ReturnToMenu() {
		t.Error("ReturnToMenu() should fail while running")
	}
	g.end()
	if !g.ReturnToMenu() || g.Phase() != PhaseIdle {
		t.Errorf("ReturnToMenu() from ended, phase = %v", g.Phase())
	}
	if s := g.State(); s.Running || s.GameOver || s.Paused {
		t.Errorf("idle state = %+v", s)
	}
}

func TestIdleStepDoesNothing(t *testing.T) {
	g := New(config.DefaultFlappyConfig())

	res := step(g, core.ActionJump)

	if g.Ticks() != 0 || len(res.Events) != 0 || g.Bird().Y != 300 {
		t.Errorf("idle step changed the game: ticks=%d events=%v", g.Ticks(), res.Events)
	}
}

func TestScoringThroughPipes(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	// Hover in place with every gap at the same height
	cfg.Physics.Gravity = 0
	cfg.Pipes.MinMargin = 175
	cfg.Bird.Y = 200

	g := New(cfg)
	g.Start("water", 3)

	scoreEvents := 0
	for i := 0; i < 1000; i++ {
		res := step(g)
		if res.State.GameOver {
			t.Fatalf("step %d: unexpected game over", i)
		}
		for _, e := range res.Events {
			if e == core.EventScore {
				scoreEvents++
			}
		}
	}

	// A pipe spawns every 126 steps and is passed 190 steps after spawning
	if g.Score() != 7 {
		t.Errorf("score = %d, expected 7", g.Score())
	}
	if scoreEvents != g.Score() {
		t.Errorf("score events = %d, score = %d", scoreEvents, g.Score())
	}
	for _, p := range g.Pipes() {
		passed := g.Bird().X > p.X+cfg.Pipes.Width
		if p.Scored != passed {
			t.Errorf("pipe at %v scored=%v, passed=%v", p.X, p.Scored, passed)
		}
	}
}

func TestPipeCollisionEndsRun(t *testing.T) {
	g := startedGame(t)
	g.pipes.pipes = append(g.pipes.pipes, Pipe{X: 110, TopHeight: 80})
	// Bird at 300..330 is below the 80..230 gap

	res := step(g)

	if !res.State.GameOver {
		t.Fatal("expected the pipe to end the run")
	}
	if !hasEvent(res.Events, core.EventHit) {
		t.Error("expected a hit event")
	}
}

func TestAudioCues(t *testing.T) {
	player := &recordingPlayer{}
	g := New(config.DefaultFlappyConfig(), WithAudio(player))

	g.Start("water", 1)
	g.Flap()
	g.TogglePause()
	g.Flap() // ignored
	g.TogglePause()
	g.score = 1
	g.end()

	want := []string{"music on", "flap", "music off", "music on", "music off", "hit"}
	if len(player.calls) != len(want) {
		t.Fatalf("audio calls = %v, expected %v", player.calls, want)
	}
	for i := range want {
		if player.calls[i] != want[i] {
			t.Errorf("call %d = %q, expected %q", i, player.calls[i], want[i])
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() (int, []Pipe) {
		g := New(config.DefaultFlappyConfig())
		g.Start("water", 12345)
		for i := 0; i < 400 && !g.State().GameOver; i++ {
			if i%20 == 0 {
				step(g, core.ActionJump)
			} else {
				step(g)
			}
		}
		return g.Ticks(), append([]Pipe(nil), g.Pipes()...)
	}

	t1, p1 := run()
	t2, p2 := run()

	if t1 != t2 {
		t.Errorf("tick counts differ: %d vs %d", t1, t2)
	}
	if len(p1) != len(p2) {
		t.Fatalf("pipe counts differ: %d vs %d", len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			t.Errorf("pipe %d differs: %+v vs %+v", i, p1[i], p2[i])
		}
	}
}
