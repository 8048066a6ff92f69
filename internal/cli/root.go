package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/haskel/voltfox/internal/config"
	"github.com/haskel/voltfox/internal/decision"
	"github.com/haskel/voltfox/internal/logger"
	"github.com/haskel/voltfox/internal/plant"
	"github.com/haskel/voltfox/internal/policy"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	verbose bool
	seed    int64

	// Version info (set from main)
	Version = "0.1.0"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "voltfox",
	Short: "Adaptive battery power controller",
	Long: `Voltfox is a three-layer power controller for battery-powered devices:
a Kalman filter estimates hidden load current from voltage sag, a predictive
controller computes the actuation duty cycle, and a Q-learning strategist
tunes the controller's aggressiveness as the battery depletes.

The bundled harness simulates the battery and load so the controller can be
run, compared against naive baselines, and watched live.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "override the run seed")
}

// SetVersion sets the version for the CLI
func SetVersion(v string) {
	Version = v
	rootCmd.Version = v
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(cfgFile)
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	return logger.New(level, cfg.Logging.Format)
}

// resolveSeed picks the effective seed: the --seed flag when given, else the
// configured seed, with -1 meaning "seed from the clock".
func resolveSeed(cmd *cobra.Command, cfg *config.Config) int64 {
	if cmd.Flags().Changed("seed") {
		return seed
	}
	if cfg.Simulation.Seed == -1 {
		return time.Now().UnixNano()
	}
	return cfg.Simulation.Seed
}

func plantConfig(cfg *config.Config) plant.Config {
	return plant.Config{
		CapacityMAH:        cfg.Battery.CapacityMAH,
		InternalResistance: cfg.Battery.InternalResistance,
		BaseLoadOhms:       cfg.Battery.BaseLoadOhms,
		DisturbanceRate:    cfg.Battery.DisturbanceRate,
		ThermalMass:        cfg.Battery.ThermalMass,
		CoolingRate:        cfg.Battery.CoolingRate,
		AmbientTemp:        cfg.Battery.AmbientTemp,
	}
}

func managerConfig(cfg *config.Config, runSeed int64) decision.Config {
	baseline := decision.DeltaPostUpdate
	if cfg.Controller.DeltaBaseline == "pre_update" {
		baseline = decision.DeltaPreUpdate
	}
	return decision.Config{
		Seed: runSeed,
		Learner: policy.Params{
			LearningRate: cfg.Learner.LearningRate,
			Discount:     cfg.Learner.Discount,
			Exploration:  cfg.Learner.Exploration,
		},
		GainA:         cfg.Controller.GainA,
		GainB:         cfg.Controller.GainB,
		DeltaBaseline: baseline,
	}
}
