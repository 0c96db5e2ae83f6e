package physics

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/paddle-arcade/internal/core"
)

// MaxSpawnAngle bounds how far from horizontal a freshly spawned ball may head.
const MaxSpawnAngle = math.Pi / 4

// Spawn places a size x size ball at a random spot inside the field, heading
// within MaxSpawnAngle of horizontal at the given speed. A coin flip then
// reverses the heading so neither side of the field is served more often.
//
// Options are applied after the random rect and velocity, so callers can
// still override flags, bounce toggles, sound and so on. The same seed always
// produces the same ball.
func Spawn(field Field, rng *rand.Rand, size, speed float64, opts ...Option) *Ball {
	x := spawnCoord(rng, field.W, size)
	y := spawnCoord(rng, field.H, size)

	angle := (rng.Float64()*2 - 1) * MaxSpawnAngle
	vel := Velocity{X: speed * math.Cos(angle), Y: speed * math.Sin(angle)}
	if rng.Intn(2) == 0 {
		vel.Scale(-1)
	}

	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithRect(core.NewRectF(x, y, size, size)), WithVelocity(vel))
	all = append(all, opts...)
	return NewBall(field, all...)
}

// spawnCoord picks a position on one axis that keeps a one-size margin from
// both edges, falling back to the middle when the field is too small for that.
func spawnCoord(rng *rand.Rand, extent, size float64) float64 {
	span := extent - 3*size
	if span <= 0 {
		return math.Max(0, (extent-size)/2)
	}
	return size + rng.Float64()*span
}
