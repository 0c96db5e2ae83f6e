// Package pong implements a classic Pong game with CPU opponent.
// Player 1 controls the left paddle, CPU controls the right paddle.
//
// The ball is driven through the heading model: a paddle hit mirrors the
// heading, skews it by where the ball struck the paddle and adds the
// configured increment to the speed.
package pong

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/paddle-arcade/internal/config"
	"github.com/vovakirdan/paddle-arcade/internal/core"
	"github.com/vovakirdan/paddle-arcade/internal/physics"
	"github.com/vovakirdan/paddle-arcade/internal/registry"
)

// Visual characters for rendering
const (
	PaddleChar = '█'
	BallChar   = '●'
	NetChar    = '│'
)

const hudRows = 1

type scorer interface {
	PlayScore()
}

type paddle struct {
	x, y float64
	w, h float64
}

func (p *paddle) Rect() core.RectF {
	return core.NewRectF(p.x, p.y, p.w, p.h)
}

// offset returns where y falls on the paddle: -1 at the top, 1 at the bottom.
func (p *paddle) offset(y float64) float64 {
	half := p.h / 2
	if half <= 0 {
		return 0
	}
	return core.ClampF((y-(p.y+half))/half, -1, 1)
}

// Game implements the Pong game logic.
type Game struct {
	opts registry.Options

	cfg         config.PongConfig
	ballOptions []physics.Option
	difficulty  *config.DifficultyManager

	runtime core.RuntimeConfig
	rng     *rand.Rand
	field   physics.Field

	player *paddle
	cpu    *paddle
	ball   *physics.HeadingBall
	nextID int

	score1     int // Player 1 score
	score2     int // CPU score
	gameOver   bool
	paused     bool
	winner     int // 1 or 2
	serveDelay int // Ticks left before the ball moves
	cpuSkill   float64
	peakSpeed  float64
	tickCount  int
}

// New creates a new Pong game instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pong"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pong"
}

// Description returns a one-line summary for game listings.
func (g *Game) Description() string {
	return "Classic Pong with angle-based paddle spin"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	cfg, err := config.LoadPong(g.opts.ConfigPath)
	if err != nil {
		cfg = config.DefaultPongConfig()
	}
	if preset := config.ParsePreset(g.opts.Difficulty); preset != "" {
		config.ApplyPongPreset(&cfg, preset)
	}
	g.cfg = cfg

	g.ballOptions, err = cfg.Ball.Options()
	if err != nil {
		g.ballOptions, _ = config.DefaultPongConfig().Ball.Options()
	}
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.field = physics.NewField(float64(runtime.ScreenW), float64(runtime.ScreenH-hudRows))

	pw := float64(cfg.Paddles.Width)
	ph := float64(cfg.Paddles.Height)
	g.player = &paddle{x: float64(cfg.Paddles.Offset), y: (g.field.H - ph) / 2, w: pw, h: ph}
	g.cpu = &paddle{x: g.field.W - float64(cfg.Paddles.Offset) - pw, y: (g.field.H - ph) / 2, w: pw, h: ph}

	g.score1 = 0
	g.score2 = 0
	g.gameOver = false
	g.paused = false
	g.winner = 0
	g.tickCount = 0
	g.peakSpeed = 0
	g.nextID = 0
	g.cpuSkill = cfg.CPU.MinSkill

	g.startServe(1)
}

// startServe centres a fresh ball heading towards the player who was
// scored against.
func (g *Game) startServe(server int) {
	size := g.cfg.Ball.Size
	speed := g.difficulty.Speed(g.cfg.Ball.Speed, g.score1+g.score2, g.tickCount)

	g.nextID++
	opts := append([]physics.Option{}, g.ballOptions...)
	opts = append(opts, physics.WithID(g.nextID), physics.WithSound(g.opts.Sound))

	b := physics.Spawn(g.field, g.rng, size, speed, opts...)
	b.SetRect(core.NewRectF((g.field.W-size)/2, (g.field.H-size)/2, size, size))

	v := b.Velocity()
	v.X = math.Abs(v.X)
	if server == 1 {
		v.X = -v.X
	}
	b.SetVelocity(v)

	g.ball = physics.NewHeadingBall(b)
	g.serveDelay = g.cfg.Gameplay.ServeDelay
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State(), PeakSpeed: g.peakSpeed}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State(), PeakSpeed: g.peakSpeed}
	}

	g.tickCount++
	dt := g.runtime.TickSeconds()

	// Paddles move during the serve delay too
	g.player.y += in.Vertical() * g.cfg.Paddles.Speed * dt
	g.player.y = core.ClampF(g.player.y, 0, g.field.H-g.player.h)

	g.cpuSkill = g.difficulty.CPUSkill(g.cfg.CPU.MinSkill, g.cfg.CPU.MaxSkill, g.score1+g.score2, g.tickCount)
	g.updateCPU(dt)

	if g.serveDelay > 0 {
		if in.Has(core.ActionServe) {
			g.serveDelay = 0
		} else {
			g.serveDelay--
			return core.StepResult{State: g.State(), PeakSpeed: g.peakSpeed}
		}
	}

	res := g.ball.Tick(dt)
	collisions := res.Collisions()
	if res.Destroyed {
		g.score(res.Exit)
		return core.StepResult{State: g.State(), Collisions: collisions, PeakSpeed: g.peakSpeed}
	}

	if g.bounce(g.player, -1) {
		collisions++
	}
	if g.bounce(g.cpu, 1) {
		collisions++
	}

	g.capSpeed()

	return core.StepResult{
		State:      g.State(),
		Collisions: collisions,
		PeakSpeed:  g.peakSpeed,
	}
}

// bounce resolves a hit from p. side is -1 for the left paddle and 1 for the
// right one, so a low hit always sends the ball downwards.
func (g *Game) bounce(p *paddle, side float64) bool {
	_, by := g.ball.Center()
	diff := side * p.offset(by) * g.cfg.Gameplay.Spin
	return g.ball.BouncePaddle(p, diff)
}

// score awards the point for a ball that left through the given side.
func (g *Game) score(exit physics.Side) {
	if s, ok := g.opts.Sound.(scorer); ok {
		s.PlayScore()
	}

	win := g.cfg.Gameplay.WinScore
	switch exit {
	case physics.SideLeft:
		g.score2++
		if g.score2 >= win {
			g.gameOver = true
			g.winner = 2
			return
		}
		g.startServe(1)
	case physics.SideRight:
		g.score1++
		if g.score1 >= win {
			g.gameOver = true
			g.winner = 1
			return
		}
		g.startServe(2)
	default:
		g.startServe(1)
	}
}

func (g *Game) capSpeed() {
	speed := g.ball.Speed()
	if limit := g.cfg.Ball.MaxSpeed; limit > 0 && speed > limit {
		g.ball.SetHeading(g.ball.Heading(), limit)
		speed = limit
	}
	g.peakSpeed = math.Max(g.peakSpeed, speed)
}

// updateCPU handles CPU paddle movement.
func (g *Game) updateCPU(dt float64) {
	// Only move if ball is coming towards CPU
	if g.serveDelay > 0 || g.ball.Velocity().X <= 0 {
		return
	}

	_, by := g.ball.Center()
	diff := by - (g.cpu.y + g.cpu.h/2)
	step := g.cfg.Paddles.Speed * g.cpuSkill * dt
	if math.Abs(diff) > step {
		g.cpu.y += math.Copysign(step, diff)
	}
	g.cpu.y = core.ClampF(g.cpu.y, 0, g.field.H-g.cpu.h)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Draw center line (net)
	centerX := dst.Width() / 2
	for y := hudRows; y < dst.Height(); y += 2 {
		dst.Set(centerX, y, NetChar)
	}

	for _, p := range []*paddle{g.player, g.cpu} {
		r := p.Rect().Cell()
		r.Y += hudRows
		dst.DrawRect(r, PaddleChar)
	}

	if g.serveDelay == 0 || (g.serveDelay/10)%2 == 0 { // Blink during serve
		cell := g.ball.Rect().Cell()
		dst.Set(cell.X, cell.Y+hudRows, BallChar)
	}

	dst.DrawText(centerX-5, 0, fmt.Sprintf("%d", g.score1))
	dst.DrawText(centerX+4, 0, fmt.Sprintf("%d", g.score2))
	dst.DrawText(1, 0, "P1")
	dst.DrawText(dst.Width()-4, 0, "CPU")

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		msg := "CPU WINS!"
		if g.winner == 1 {
			msg = "YOU WIN!"
		}
		g.drawCenteredMessage(dst, msg, fmt.Sprintf("%d - %d  |  Press R to restart", g.score1, g.score2))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score1, // Report player's score
		Opponent: g.score2,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("pong", func(opts registry.Options) registry.Game {
		return New(opts)
	})
}
