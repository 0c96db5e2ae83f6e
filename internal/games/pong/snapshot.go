package pong

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// Snapshot contains the complete state of a Pong game.
type Snapshot struct {
	Tick       uint64
	BallX      float64
	BallY      float64
	BallVX     float64
	BallVY     float64
	Paddle1Y   float64
	Paddle2Y   float64
	Score1     int
	Score2     int
	GameOver   bool
	Winner     int // 0=none, 1=Player1, 2=CPU
	ServeDelay int
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	r := g.ball.Rect()
	v := g.ball.Velocity()
	return Snapshot{
		Tick:       uint64(max(0, g.tickCount)), //nolint:gosec // tickCount is always non-negative in game logic
		BallX:      r.X,
		BallY:      r.Y,
		BallVX:     v.X,
		BallVY:     v.Y,
		Paddle1Y:   g.player.y,
		Paddle2Y:   g.cpu.y,
		Score1:     g.score1,
		Score2:     g.score2,
		GameOver:   g.gameOver,
		Winner:     g.winner,
		ServeDelay: g.serveDelay,
	}
}

// Hash returns an xxh3 digest over the exact bits of every field.
func (s Snapshot) Hash() uint64 {
	var buf [8*7 + 8*4 + 1]byte
	b := buf[:0]
	b = binary.LittleEndian.AppendUint64(b, s.Tick)
	for _, f := range [...]float64{s.BallX, s.BallY, s.BallVX, s.BallVY, s.Paddle1Y, s.Paddle2Y} {
		b = binary.LittleEndian.AppendUint64(b, math.Float64bits(f))
	}
	for _, n := range [...]int{s.Score1, s.Score2, s.Winner, s.ServeDelay} {
		b = binary.AppendVarint(b, int64(n))
	}
	if s.GameOver {
		b = append(b, 1)
	} else {
		b = append(b, 0)
	}
	return xxh3.Hash(b)
}
