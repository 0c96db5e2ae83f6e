package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/paddle-arcade/internal/config"
	"github.com/vovakirdan/paddle-arcade/internal/physics"
	"github.com/vovakirdan/paddle-arcade/internal/sim"
	"github.com/vovakirdan/paddle-arcade/internal/storage"
)

var (
	flagSimTicks    int
	flagSimSpeedUps []string
	flagSimTrace    bool
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless ball simulation",
	Long: `Run a single ball through the physics engine without a terminal UI
and print a report: bounces, speed-ups, peak speed, where the ball left
the field and a hash of the whole trajectory.

The field, ball and static paddles come from the sim config (see
--config). Equal seeds and configs always give equal hashes.

Speed-up entries are aggregate names (none, wall, paddle, continuous,
all, legacy_linear) or single modes such as "wall:exponential" and
"paddle:per_axis:x".

Examples:
  arcade sim --seed 7
  arcade sim --seed 7 --ticks 6000 --speed-ups wall:uniform
  arcade sim --config ./box.yaml --trace
  arcade sim --seed 7 --save`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 0, "Ticks to simulate (0 = from config)")
	simCmd.Flags().StringSliceVar(&flagSimSpeedUps, "speed-ups", nil, "Override the ball's speed-up rules")
	simCmd.Flags().BoolVar(&flagSimTrace, "trace", false, "Print every tick that hit something")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the scores database")
}

func runSim(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadSim(flagConfig)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	if cmd.Flags().Changed("fps") {
		cfg.TickHz = flagFPS
	}
	if flagSimTicks > 0 {
		cfg.Ticks = flagSimTicks
	}
	if len(flagSimSpeedUps) > 0 {
		cfg.Ball.SpeedUps = flagSimSpeedUps
	}

	opts := []sim.Option{sim.WithLogger(logger)}
	if flagSimTrace {
		opts = append(opts, sim.WithTickFunc(traceTick))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := sim.Run(ctx, cfg, opts...)
	if err != nil {
		return err
	}

	printReport(cfg, report)

	if flagSimSave {
		return saveReport(report)
	}
	return nil
}

func traceTick(tick int, b *physics.Ball, res physics.TickResult) {
	if len(res.WallHits) == 0 && res.PaddleHits == 0 && res.SpeedUps == 0 && !res.Destroyed {
		return
	}

	var events []string
	for _, side := range res.WallHits {
		events = append(events, "wall:"+side.String())
	}
	if res.PaddleHits > 0 {
		events = append(events, fmt.Sprintf("paddle x%d", res.PaddleHits))
	}
	if res.SpeedUps > 0 {
		events = append(events, fmt.Sprintf("speed-up x%d", res.SpeedUps))
	}
	if res.Destroyed {
		events = append(events, "exit:"+res.Exit.String())
	}

	r := b.Rect()
	v := b.Velocity()
	fmt.Printf("%6d  pos (%7.2f, %6.2f)  vel (%8.2f, %8.2f)  %s\n",
		tick, r.X, r.Y, v.X, v.Y, strings.Join(events, " "))
}

func printReport(cfg config.SimConfig, r sim.Report) {
	fmt.Println("Simulation report")
	fmt.Println()
	fmt.Printf("  Seed:        %d\n", r.Seed)
	fmt.Printf("  Field:       %gx%g at %d Hz\n", cfg.Field.Width, cfg.Field.Height, cfg.TickHz)
	if flags, err := config.ParseFlags(cfg.Ball.SpeedUps); err == nil {
		fmt.Printf("  Rules:       %s\n", strings.Join(config.FormatFlags(flags), ", "))
	}
	fmt.Printf("  Ticks:       %d\n", r.Ticks)
	fmt.Printf("  Bounces:     %d\n", r.Bounces)
	fmt.Printf("  Paddle hits: %d\n", r.PaddleHits)
	fmt.Printf("  Speed-ups:   %d\n", r.SpeedUps)
	fmt.Printf("  Peak speed:  %.2f c/s\n", r.PeakSpeed)
	fmt.Printf("  Final:       (%.2f, %.2f) = %.2f c/s\n",
		r.FinalVelocity.X, r.FinalVelocity.Y, r.FinalVelocity.Magnitude())
	if r.Survived() {
		fmt.Println("  Outcome:     survived")
	} else {
		fmt.Printf("  Outcome:     left through %s at tick %d\n", r.Exit, r.DiedAt)
	}
	fmt.Printf("  Hash:        %016x\n", r.Hash)
}

func saveReport(r sim.Report) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	id, err := store.SaveSimRun(storage.SimRun{
		Seed:       r.Seed,
		Ticks:      r.Ticks,
		Bounces:    r.Bounces,
		SpeedUps:   r.SpeedUps,
		PeakSpeed:  r.PeakSpeed,
		FinalSpeed: r.FinalVelocity.Magnitude(),
		DiedAt:     r.DiedAt,
		Hash:       r.Hash,
	})
	if err != nil {
		return err
	}

	// Equal seeds should replay identically unless the config changed
	prev, err := store.SimRunsBySeed(r.Seed)
	if err != nil {
		return err
	}
	for _, p := range prev {
		if p.ID != id && p.Hash != r.Hash {
			logger.Warn("trajectory differs from an earlier run with this seed", "run", p.ID, "hash", fmt.Sprintf("%016x", p.Hash))
			break
		}
	}

	logger.Info("run saved", "id", id)
	return nil
}
