// Package audio plays procedurally synthesized battle sounds through the
// system speaker.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tatianab/math-battles/internal/engine"
)

const (
	sampleRate    = beep.SampleRate(48000)
	DefaultVolume = 0.5
)

// Player implements engine.AudioEffects. Until Init succeeds, or when muted,
// Play does nothing.
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	open   func(*beep.Mixer) error
	volume float64
	muted  bool
	ready  bool
}

func NewPlayer(volume float64, muted bool) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		open:   openSpeaker,
		volume: volume,
		muted:  muted,
	}
}

func openSpeaker(mixer *beep.Mixer) error {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(mixer)
	return nil
}

// Init opens the speaker. It does so even when muted so that unmuting
// later takes effect.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := p.open(p.mixer); err != nil {
		return err
	}
	p.ready = true
	return nil
}

// Play queues s on the mixer and returns immediately.
func (p *Player) Play(s engine.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready || p.muted {
		return
	}
	v := Voice(s, sampleRate)
	if v == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(newVolume(v, p.volume))
	speaker.Unlock()
}

// SetMuted toggles output. Sounds already playing finish.
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close silences everything still playing.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}
