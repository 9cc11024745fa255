// Package audio provides the game's sound effects and music switch.
// A terminal has no mixer, so effects are rendered as the terminal bell
// and the background track is tracked as state only.
package audio

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Effect is a short one-shot sound.
type Effect int

const (
	EffectFlap Effect = iota
	EffectScore
	EffectHit
)

// String returns the effect name used in logs.
func (e Effect) String() string {
	switch e {
	case EffectFlap:
		return "flap"
	case EffectScore:
		return "score"
	case EffectHit:
		return "hit"
	default:
		return "unknown"
	}
}

// Player is what the game talks to. Calls are fire-and-forget.
type Player interface {
	Play(e Effect)
	PlayMusic()
	PauseMusic()
}

// Sink turns an effect into actual output.
type Sink interface {
	Emit(e Effect) error
}

// Bell rings the terminal bell for the effects it is configured with.
type Bell struct {
	w     io.Writer
	rings map[Effect]bool
}

// NewBell creates a bell sink writing to w. With no effects given it rings
// for score and hit only.
func NewBell(w io.Writer, effects ...Effect) *Bell {
	if len(effects) == 0 {
		effects = []Effect{EffectScore, EffectHit}
	}
	rings := make(map[Effect]bool, len(effects))
	for _, e := range effects {
		rings[e] = true
	}
	return &Bell{w: w, rings: rings}
}

// Emit writes BEL if the effect rings.
func (b *Bell) Emit(e Effect) error {
	if b.w == nil || !b.rings[e] {
		return nil
	}
	_, err := io.WriteString(b.w, "\a")
	return err
}

// Mixer gates effects and music behind the two user toggles.
// It is owned by a single session and is not safe for concurrent use.
type Mixer struct {
	sink         Sink
	logger       *log.Logger
	soundEnabled bool
	musicEnabled bool
	musicPlaying bool
}

// NewMixer creates a mixer with the toggles initialized from cfg.
// A nil sink makes the mixer silent; a nil logger discards logs.
func NewMixer(sink Sink, cfg config.Audio, logger *log.Logger) *Mixer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Mixer{
		sink:         sink,
		logger:       logger,
		soundEnabled: cfg.Sound,
		musicEnabled: cfg.Music,
	}
}

// Play emits an effect if sound is enabled. Sink failures are logged and
// otherwise ignored: the game plays on silently.
func (m *Mixer) Play(e Effect) {
	if !m.soundEnabled || m.sink == nil {
		return
	}
	if err := m.sink.Emit(e); err != nil {
		m.logger.Warn("sound effect failed", "effect", e, "error", err)
	}
}

// PlayMusic starts the background track if music is enabled.
func (m *Mixer) PlayMusic() {
	if !m.musicEnabled || m.musicPlaying {
		return
	}
	m.musicPlaying = true
	m.logger.Debug("music started")
}

// PauseMusic stops the background track.
func (m *Mixer) PauseMusic() {
	if !m.musicPlaying {
		return
	}
	m.musicPlaying = false
	m.logger.Debug("music paused")
}

// SetSoundEnabled toggles effects.
func (m *Mixer) SetSoundEnabled(on bool) {
	m.soundEnabled = on
}

// SetMusicEnabled toggles music. Turning it on while a run is active
// (running and not paused) starts the track right away; turning it off
// always stops it.
func (m *Mixer) SetMusicEnabled(on, active bool) {
	m.musicEnabled = on
	if !on {
		m.PauseMusic()
		return
	}
	if active {
		m.PlayMusic()
	}
}

// SoundEnabled reports the effects toggle.
func (m *Mixer) SoundEnabled() bool { return m.soundEnabled }

// MusicEnabled reports the music toggle.
func (m *Mixer) MusicEnabled() bool { return m.musicEnabled }

// MusicPlaying reports whether the background track is on.
func (m *Mixer) MusicPlaying() bool { return m.musicPlaying }

// Ensure Mixer implements Player
var _ Player = (*Mixer)(nil)
