package cli

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/haskel/voltfox/internal/decision"
	"github.com/haskel/voltfox/internal/plant"
	"github.com/haskel/voltfox/internal/sim"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the adaptive controller against the simulated battery",
	Long: `Run one simulation of the adaptive controller driving the battery
model and print the run summary. With --records each cycle's telemetry is
included in the JSON output.`,
	Example: `  voltfox simulate
  voltfox simulate --steps 7200 --seed 3
  voltfox simulate --records --json > run.json`,
	RunE: runSimulate,
}

var (
	simulateSteps   int
	simulateRecords bool
)

func init() {
	simulateCmd.Flags().IntVar(&simulateSteps, "steps", 0, "simulation steps (default from config)")
	simulateCmd.Flags().BoolVar(&simulateRecords, "records", false, "keep per-cycle telemetry")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)
	runSeed := resolveSeed(cmd, cfg)

	steps := cfg.Simulation.Steps
	if simulateSteps > 0 {
		steps = simulateSteps
	}

	engine := sim.NewEngine(sim.EngineConfig{
		Steps:       steps,
		DT:          cfg.Simulation.TimeStepSec,
		KeepRecords: simulateRecords || cfg.Simulation.KeepRecords,
	}, log)

	dev := plant.New(plantConfig(cfg), rand.New(rand.NewSource(runSeed)))
	manager := decision.NewManager(managerConfig(cfg, runSeed), log)

	res, err := engine.Run(sim.NewAdaptive(manager), dev)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	printSummary(res.Summary)
	return nil
}

func printSummary(s sim.Summary) {
	fmt.Printf("policy            %s\n", s.Policy)
	fmt.Printf("steps             %d\n", s.Steps)
	fmt.Printf("final soc         %.1f%%\n", s.FinalSoC)
	fmt.Printf("charge used       %.1f mAh\n", s.ChargeUsedMAH)
	fmt.Printf("mean voltage      %.3f V\n", s.MeanVoltage)
	fmt.Printf("min voltage       %.3f V\n", s.MinVoltage)
	fmt.Printf("high-power share  %.1f%%\n", s.HighFraction*100)
	fmt.Printf("mean temperature  %.1f C\n", s.MeanTemperature)
	fmt.Printf("disturbed cycles  %d\n", s.Disturbances)
}
