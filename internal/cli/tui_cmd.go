package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/haskel/voltfox/internal/cli/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Watch a simulation live in the terminal",
	Long: `Open a dashboard that steps the adaptive controller against the
battery model in real time: voltage, charge, temperature, duty cycle, power
mode, and the learned value table.`,
	RunE: runTUI,
}

var (
	tuiInterval time.Duration
	tuiSpeed    int
)

func init() {
	tuiCmd.Flags().DurationVar(&tuiInterval, "interval", 200*time.Millisecond, "refresh interval")
	tuiCmd.Flags().IntVar(&tuiSpeed, "speed", 5, "simulated cycles per refresh")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runSeed := resolveSeed(cmd, cfg)

	return tui.Run(tui.Config{
		Plant:        plantConfig(cfg),
		Manager:      managerConfig(cfg, runSeed),
		Seed:         runSeed,
		DT:           cfg.Simulation.TimeStepSec,
		Interval:     tuiInterval,
		StepsPerTick: tuiSpeed,
	})
}
