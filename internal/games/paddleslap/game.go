// Package paddleslap implements Paddle Slap, a multi-ball paddle duel.
// The player controls the left paddle and the CPU the right one. Every ball
// runs on the physics engine: walls and paddles speed it up according to the
// configured rules, and balls bounce off each other.
package paddleslap

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
	NetChar    = '┊'
)

// hudRows is the number of screen rows above the play field.
const hudRows = 1

type scorer interface {
	PlayScore()
}

// paddle is a vertical bat. It satisfies physics.Paddle.
type paddle struct {
	x, y float64
	w, h float64
}

func (p *paddle) Rect() core.RectF {
	return core.NewRectF(p.x, p.y, p.w, p.h)
}

func (p *paddle) centerY() float64 {
	return p.y + p.h/2
}

// slot holds one ball and the ticks left before it is released.
type slot struct {
	ball *physics.Ball
	hold int
}

// Game implements the Paddle Slap game logic.
type Game struct {
	opts registry.Options

	cfg         config.PaddleSlapConfig
	ballOptions []physics.Option
	difficulty  *config.DifficultyManager
	collider    *physics.BallCollisionResolver

	runtime core.RuntimeConfig
	rng     *rand.Rand
	field   physics.Field

	player *paddle
	cpu    *paddle
	slots  []*slot
	nextID int

	playerScore int
	cpuScore    int
	gameOver    bool
	paused      bool
	winner      int // 1 = player, 2 = CPU
	tickCount   int
	cpuSkill    float64
	peakSpeed   float64
}

// New creates a new Paddle Slap game instance.
func New(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "paddleslap"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Paddle Slap"
}

// Description returns a one-line summary for game listings.
func (g *Game) Description() string {
	return "Multi-ball paddle duel with accelerating balls"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.rng = rand.New(rand.NewSource(runtime.Seed))

	// Load game config
	cfg, err := config.LoadPaddleSlap(g.opts.ConfigPath)
	if err != nil {
		cfg = config.DefaultPaddleSlapConfig()
	}

	// Apply difficulty preset if set
	if preset := config.ParsePreset(g.opts.Difficulty); preset != "" {
		config.ApplyPaddleSlapPreset(&cfg, preset)
	}
	g.cfg = cfg

	g.ballOptions, err = cfg.Ball.Options()
	if err != nil {
		g.ballOptions, _ = config.DefaultPaddleSlapConfig().Ball.Options()
	}

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.collider = &physics.BallCollisionResolver{
		Restitution: cfg.Gameplay.Restitution,
		Cooldown:    cfg.Gameplay.Cooldown,
		Sound:       g.opts.Sound,
	}

	g.field = physics.NewField(float64(runtime.ScreenW), float64(runtime.ScreenH-hudRows))

	pw := float64(cfg.Paddles.Width)
	ph := float64(g.difficulty.PaddleHeight(cfg.Paddles.Height, 0, 0))
	cpuH := float64(cfg.Paddles.Height)
	g.player = &paddle{x: float64(cfg.Paddles.Offset), w: pw, h: ph}
	g.player.y = (g.field.H - ph) / 2
	g.cpu = &paddle{x: g.field.W - float64(cfg.Paddles.Offset) - pw, w: pw, h: cpuH}
	g.cpu.y = (g.field.H - cpuH) / 2

	g.playerScore = 0
	g.cpuScore = 0
	g.gameOver = false
	g.paused = false
	g.winner = 0
	g.tickCount = 0
	g.peakSpeed = 0
	g.nextID = 0
	g.cpuSkill = cfg.CPU.MinSkill

	n := max(1, cfg.Gameplay.Balls)
	g.slots = make([]*slot, n)
	for i := range g.slots {
		g.slots[i] = &slot{}
		g.serve(g.slots[i], cfg.Gameplay.ServeDelay*(i+1))
	}
}

// serve puts a fresh ball in the middle column of the field and holds it
// for the given number of ticks.
func (g *Game) serve(s *slot, hold int) {
	size := g.cfg.Ball.Size
	speed := g.difficulty.Speed(g.cfg.Ball.Speed, g.playerScore+g.cpuScore, g.tickCount)

	g.nextID++
	opts := append([]physics.Option{}, g.ballOptions...)
	opts = append(opts, physics.WithID(g.nextID), physics.WithSound(g.opts.Sound))

	b := physics.Spawn(g.field, g.rng, size, speed, opts...)
	r := b.Rect()
	b.SetRect(core.NewRectF((g.field.W-size)/2, r.Y, size, size))

	s.ball = b
	s.hold = hold
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
	total := g.playerScore + g.cpuScore

	// Update player paddle
	g.player.h = float64(g.difficulty.PaddleHeight(g.cfg.Paddles.Height, total, g.tickCount))
	g.player.y += in.Vertical() * g.cfg.Paddles.Speed * dt
	g.player.y = core.ClampF(g.player.y, 0, g.field.H-g.player.h)

	// Serve releases every held ball at once
	if in.Has(core.ActionServe) {
		for _, s := range g.slots {
			s.hold = 0
		}
	}

	g.cpuSkill = g.difficulty.CPUSkill(g.cfg.CPU.MinSkill, g.cfg.CPU.MaxSkill, total, g.tickCount)
	g.updateCPU(dt)

	collisions := 0
	var live []*physics.Ball
	for _, s := range g.slots {
		if s.hold > 0 {
			s.hold--
			continue
		}

		res := s.ball.Tick(dt, g.player, g.cpu)
		collisions += res.Collisions()

		if res.Destroyed {
			g.score(res.Exit)
			if g.gameOver {
				break
			}
			g.serve(s, g.cfg.Gameplay.ServeDelay)
			continue
		}
		live = append(live, s.ball)
	}

	if g.cfg.Gameplay.BallCollisions && len(live) > 1 {
		collisions += g.collider.Resolve(live)
	}

	for _, b := range live {
		g.capSpeed(b)
	}

	return core.StepResult{
		State:      g.State(),
		Collisions: collisions,
		PeakSpeed:  g.peakSpeed,
	}
}

// score awards the point for a ball that left through the given side.
func (g *Game) score(exit physics.Side) {
	if s, ok := g.opts.Sound.(scorer); ok {
		s.PlayScore()
	}

	switch exit {
	case physics.SideLeft:
		g.cpuScore++
	case physics.SideRight:
		g.playerScore++
	default:
		return
	}

	win := g.cfg.Gameplay.WinScore
	switch {
	case g.playerScore >= win:
		g.gameOver = true
		g.winner = 1
	case g.cpuScore >= win:
		g.gameOver = true
		g.winner = 2
	}
}

// capSpeed keeps a ball under the configured maximum and tracks the peak.
func (g *Game) capSpeed(b *physics.Ball) {
	v := b.Velocity()
	speed := v.Magnitude()
	if limit := g.cfg.Ball.MaxSpeed; limit > 0 && speed > limit {
		b.SetVelocity(v.Scaled(limit / speed))
		speed = limit
	}
	g.peakSpeed = math.Max(g.peakSpeed, speed)
}

// updateCPU moves the CPU paddle towards the closest ball heading its way.
func (g *Game) updateCPU(dt float64) {
	var target *physics.Ball
	for _, s := range g.slots {
		b := s.ball
		if s.hold > 0 || !b.Alive() || b.Velocity().X <= 0 {
			continue
		}
		if target == nil || b.Rect().X > target.Rect().X {
			target = b
		}
	}
	if target == nil {
		return
	}

	_, by := target.Center()
	diff := by - g.cpu.centerY()
	step := g.cfg.Paddles.Speed * g.cpuSkill * dt
	if math.Abs(diff) > step {
		g.cpu.y += math.Copysign(step, diff)
	}
	g.cpu.y = core.ClampF(g.cpu.y, 0, g.field.H-g.cpu.h)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Draw net
	centerX := dst.Width() / 2
	for y := hudRows; y < dst.Height(); y += 2 {
		dst.SetColored(centerX, y, NetChar, core.ColorGray)
	}

	g.drawPaddle(dst, g.player, core.ColorBrightCyan)
	g.drawPaddle(dst, g.cpu, core.ColorBrightMagenta)

	for _, s := range g.slots {
		if s.hold > 0 && (s.hold/10)%2 == 1 { // Blink while held
			continue
		}
		cell := s.ball.Rect().Cell()
		dst.SetColored(cell.X, cell.Y+hudRows, BallChar, core.ColorBrightYellow)
	}

	// Draw scores
	dst.DrawTextColored(centerX-5, 0, fmt.Sprintf("%2d", g.playerScore), core.ColorBrightCyan)
	dst.DrawTextColored(centerX+4, 0, fmt.Sprintf("%d", g.cpuScore), core.ColorBrightMagenta)
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
		g.drawCenteredMessage(dst, msg, fmt.Sprintf("%d - %d  |  Press R to restart", g.playerScore, g.cpuScore))
	}
}

func (g *Game) drawPaddle(dst *core.Screen, p *paddle, c core.Color) {
	r := p.Rect().Cell()
	r.Y += hudRows
	dst.DrawRectColored(r, PaddleChar, c)
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
		Score:    g.playerScore,
		Opponent: g.cpuScore,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("paddleslap", func(opts registry.Options) registry.Game {
		return New(opts)
	})
}
