// Package audio plays the short synthesized effects used by the paddle games.
// A Player that was never initialised, or whose speaker failed to open, stays
// usable and silent, so games never have to check for audio support.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	collisionFreq     = 660.0
	collisionDuration = 40 * time.Millisecond
	scoreFreq         = 220.0
	scoreDuration     = 180 * time.Millisecond
)

// Player mixes collision and score blips onto the speaker.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	queued      int
}

// NewPlayer creates a silent player. Call Init to open the speaker.
// Volume is linear, 1.0 being full scale.
func NewPlayer(volume float64) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Init opens the speaker. On error the player keeps working as a no-op.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// PlayCollision queues the bounce blip. Safe on a nil player.
func (p *Player) PlayCollision() {
	p.play(collisionFreq, collisionDuration)
}

// PlayScore queues the lower, longer tone used when a ball is lost.
func (p *Player) PlayScore() {
	p.play(scoreFreq, scoreDuration)
}

// Queued reports how many effects have been sent to the speaker.
func (p *Player) Queued() int {
	if p == nil {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.queued
}

func (p *Player) play(freq float64, d time.Duration) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s := beep.Take(sampleRate.N(d), NewBlip(sampleRate, freq, d))
	speaker.Lock()
	p.mixer.Add(withVolume(s, p.volume))
	speaker.Unlock()
	p.queued++
}

// withVolume converts a linear volume to beep's logarithmic scale.
// Zero or less is silent since log2(0) is -Inf.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Blip is a sine tone with a fast exponential decay, ending after a fixed
// duration.
type Blip struct {
	rate  beep.SampleRate
	freq  float64
	pos   int
	total int
}

// NewBlip creates a blip generator.
func NewBlip(rate beep.SampleRate, freq float64, d time.Duration) *Blip {
	return &Blip{rate: rate, freq: freq, total: rate.N(d)}
}

func (b *Blip) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		t := float64(b.pos) / float64(b.rate)
		v := 0.4 * math.Exp(-t*40) * math.Sin(2*math.Pi*b.freq*t)
		samples[i][0] = v
		samples[i][1] = v
		b.pos++
	}
	return len(samples), true
}

func (b *Blip) Err() error { return nil }
