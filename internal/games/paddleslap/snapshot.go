package paddleslap

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"
)

// BallState is one ball inside a Snapshot.
type BallState struct {
	ID     int
	X, Y   float64
	VX, VY float64
	Alive  bool
	Hold   int
}

// Snapshot contains the complete game state for replay and determinism checks.
type Snapshot struct {
	Tick        uint64
	PlayerY     float64
	CPUY        float64
	PlayerScore int
	CPUScore    int
	GameOver    bool
	Winner      int // 0=none, 1=Player, 2=CPU
	PeakSpeed   float64
	Balls       []BallState
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	balls := make([]BallState, len(g.slots))
	for i, s := range g.slots {
		r := s.ball.Rect()
		v := s.ball.Velocity()
		balls[i] = BallState{
			ID:    s.ball.ID(),
			X:     r.X,
			Y:     r.Y,
			VX:    v.X,
			VY:    v.Y,
			Alive: s.ball.Alive(),
			Hold:  s.hold,
		}
	}

	return Snapshot{
		Tick:        uint64(max(0, g.tickCount)), //nolint:gosec // tickCount is always non-negative in game logic
		PlayerY:     g.player.y,
		CPUY:        g.cpu.y,
		PlayerScore: g.playerScore,
		CPUScore:    g.cpuScore,
		GameOver:    g.gameOver,
		Winner:      g.winner,
		PeakSpeed:   g.peakSpeed,
		Balls:       balls,
	}
}

// Hash returns an xxh3 digest of the snapshot. Floats are hashed by their
// exact bits, so two runs only match when they agree to the last ulp.
func (s *Snapshot) Hash() uint64 {
	buf := make([]byte, 0, 64+len(s.Balls)*48)
	buf = binary.LittleEndian.AppendUint64(buf, s.Tick)
	buf = appendFloat(buf, s.PlayerY)
	buf = appendFloat(buf, s.CPUY)
	buf = appendInt(buf, s.PlayerScore)
	buf = appendInt(buf, s.CPUScore)
	buf = appendBool(buf, s.GameOver)
	buf = appendInt(buf, s.Winner)
	buf = appendFloat(buf, s.PeakSpeed)

	for _, b := range s.Balls {
		buf = appendInt(buf, b.ID)
		buf = appendFloat(buf, b.X)
		buf = appendFloat(buf, b.Y)
		buf = appendFloat(buf, b.VX)
		buf = appendFloat(buf, b.VY)
		buf = appendBool(buf, b.Alive)
		buf = appendInt(buf, b.Hold)
	}
	return xxh3.Hash(buf)
}

func appendFloat(buf []byte, f float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
}

func appendInt(buf []byte, n int) []byte {
	return binary.AppendVarint(buf, int64(n))
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}
