package physics

import (
	"math"
	"math/rand"
	"testing"
)

func TestSpawnDeterministic(t *testing.T) {
	field := NewField(80, 24)
	a := Spawn(field, rand.New(rand.NewSource(42)), 1, 20)
	b := Spawn(field, rand.New(rand.NewSource(42)), 1, 20)

	if a.Rect() != b.Rect() {
		t.Errorf("Rect() differs for the same seed: %+v vs %+v", a.Rect(), b.Rect())
	}
	if a.Velocity() != b.Velocity() {
		t.Errorf("Velocity() differs for the same seed: %+v vs %+v", a.Velocity(), b.Velocity())
	}
}

func TestSpawnBounds(t *testing.T) {
	field := NewField(80, 24)
	var left, right int

	for seed := int64(0); seed < 200; seed++ {
		b := Spawn(field, rand.New(rand.NewSource(seed)), 2, 30)
		r := b.Rect()
		v := b.Velocity()

		if !field.Contains(r) {
			t.Fatalf("seed %d: rect %+v outside the field", seed, r)
		}
		if !approxEqual(v.Magnitude(), 30, 1e-9) {
			t.Fatalf("seed %d: speed %v, expected 30", seed, v.Magnitude())
		}
		if math.Abs(v.Y) > math.Abs(v.X)+1e-9 {
			t.Fatalf("seed %d: heading %+v steeper than 45 degrees", seed, v)
		}
		if v.X > 0 {
			right++
		} else {
			left++
		}
	}

	if left == 0 || right == 0 {
		t.Errorf("serves went left %d and right %d times, expected both directions", left, right)
	}
}

func TestSpawnOptionsOverride(t *testing.T) {
	b := Spawn(NewField(80, 24), rand.New(rand.NewSource(1)), 1, 10,
		WithFlags(AllWall), WithBounce(true, true), WithID(7))

	if b.Flags() != AllWall {
		t.Errorf("Flags() = %v, expected %v", b.Flags(), AllWall)
	}
	if b.ID() != 7 {
		t.Errorf("ID() = %d, expected 7", b.ID())
	}
}

func TestSpawnTinyField(t *testing.T) {
	b := Spawn(NewField(4, 4), rand.New(rand.NewSource(3)), 2, 5)
	if r := b.Rect(); r.X != 1 || r.Y != 1 {
		t.Errorf("Rect() = %+v, expected the ball centred at (1, 1)", r)
	}
}
