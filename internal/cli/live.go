package cli

import (
	"context"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/haskel/voltfox/internal/decision"
	"github.com/haskel/voltfox/internal/monitor"
	"github.com/haskel/voltfox/internal/plant"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Drive the controller with real host CPU load",
	Long: `Run the controller against the simulated battery, but derive the
disturbance signal from this machine's CPU utilization: whenever host load
exceeds the busy threshold, the controller sees an active disturbance. Stop
with Ctrl-C.`,
	Example: `  voltfox live
  voltfox live --duration 2m`,
	RunE: runLive,
}

var liveDuration time.Duration

func init() {
	liveCmd.Flags().DurationVar(&liveDuration, "duration", 0, "stop after this long (default: run until interrupted)")
	rootCmd.AddCommand(liveCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	runSeed := resolveSeed(cmd, cfg)

	// The host, not the model, decides when disturbances happen.
	pcfg := plantConfig(cfg)
	pcfg.DisturbanceRate = 0

	dev := plant.New(pcfg, rand.New(rand.NewSource(runSeed)))
	manager := decision.NewManager(managerConfig(cfg, runSeed), log)
	sampler := monitor.NewLoadSampler(cfg.Live.BusyThresholdPercent)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if liveDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, liveDuration)
		defer cancel()
	}

	interval := time.Duration(cfg.Live.IntervalMS) * time.Millisecond
	dt := interval.Seconds()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	reading := dev.Step(dt, 0, false)

	fmt.Printf("driving controller from host load (busy above %.0f%% CPU), interval %s\n",
		sampler.Threshold(), interval)

	for {
		select {
		case <-ctx.Done():
			fmt.Printf("\nstopped: final soc %.1f%%, charge used %.1f mAh\n",
				dev.SoC(), dev.ChargeUsedMAH())
			return nil
		case <-ticker.C:
		}

		load, busy, err := sampler.Sample()
		if err != nil {
			log.Warn("host load sample failed", "error", err)
			continue
		}
		dev.SetDisturbance(busy)

		d, err := manager.RunCycle(decision.Observation{
			Voltage:     reading.Voltage,
			Disturbance: busy,
			SoC:         reading.SoC,
		})
		if err != nil {
			return fmt.Errorf("control cycle failed: %w", err)
		}
		reading = dev.Step(dt, d.Duty, d.PowerMode == decision.PowerModeHigh)

		fmt.Printf("cpu %5.1f%%  busy %-5v  duty %.2f  mode %-4s  v %.2f  soc %5.1f%%  i_est %.2fA\n",
			load, busy, d.Duty, d.PowerMode, reading.Voltage, reading.SoC, d.Current)
	}
}
