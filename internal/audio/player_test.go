package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestBlipStream(t *testing.T) {
	rate := beep.SampleRate(44100)
	b := NewBlip(rate, 440, 20*time.Millisecond)
	total := rate.N(20 * time.Millisecond)

	samples := make([][2]float64, total+100)
	n, ok := b.Stream(samples)
	if !ok || n != total {
		t.Fatalf("Stream() = (%d, %v), expected (%d, true)", n, ok, total)
	}
	for i := range n {
		if samples[i][0] < -1 || samples[i][0] > 1 {
			t.Fatalf("sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Fatalf("sample %d differs between channels", i)
		}
	}

	n, ok = b.Stream(samples)
	if ok || n != 0 {
		t.Errorf("Stream() after the end = (%d, %v), expected (0, false)", n, ok)
	}
	if b.Err() != nil {
		t.Errorf("Err() = %v, expected nil", b.Err())
	}
}

func TestBlipDecays(t *testing.T) {
	rate := beep.SampleRate(44100)
	b := NewBlip(rate, 440, 200*time.Millisecond)

	samples := make([][2]float64, rate.N(200*time.Millisecond))
	b.Stream(samples)

	peak := func(from, to int) float64 {
		m := 0.0
		for _, s := range samples[from:to] {
			if s[0] > m {
				m = s[0]
			}
		}
		return m
	}
	window := rate.N(10 * time.Millisecond)
	if head, tail := peak(0, window), peak(len(samples)-window, len(samples)); tail >= head {
		t.Errorf("tail peak %f should be below head peak %f", tail, head)
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := NewPlayer(0.5)
	p.PlayCollision()
	p.PlayScore()
	p.Close()

	if p.Queued() != 0 {
		t.Errorf("Queued() = %d, expected 0 without a speaker", p.Queued())
	}
}

func TestNilPlayer(t *testing.T) {
	var p *Player
	p.PlayCollision()
	p.PlayScore()
	p.Close()
	if p.Queued() != 0 {
		t.Errorf("Queued() = %d, expected 0", p.Queued())
	}
}
