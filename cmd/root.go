package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	seed         int64   // Master seed controlling all simulation randomness
	horizon      float64 // Simulation horizon override (time units)
	logLevel     string  // Log verbosity level
	scenarioPath string  // Scenario YAML path (empty = built-in default)
	outputPath   string  // Persisted event log path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "fogsim",
	Short: "Discrete-event simulator for secure fog networks",
}

// runCmd executes one simulation run using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the fog network simulation",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		scenario := DefaultScenario()
		if scenarioPath != "" {
			scenario, err = LoadScenario(scenarioPath)
			if err != nil {
				logrus.Fatalf("Failed to load scenario: %v", err)
			}
		}

		s, err := BuildSimulator(scenario, seed, horizon)
		if err != nil {
			logrus.Fatalf("Failed to build simulator: %v", err)
		}

		logrus.Infof("Running scenario %q for %.0f time units...", scenario.Name, s.Horizon)
		s.Run()
		s.Metrics.Print(s.Horizon)

		if err := s.EventLog.WriteFile(outputPath); err != nil {
			logrus.Fatalf("Failed to write event log: %v", err)
		}
		logrus.Infof("Simulation finished. Event log saved to %s", outputPath)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Master seed for simulation randomness")
	runCmd.Flags().Float64Var(&horizon, "horizon", 0, "Simulation horizon in time units (0 = scenario duration)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario YAML file (empty = built-in secure-fog scenario)")
	runCmd.Flags().StringVar(&outputPath, "output", "simulation_log.json", "Path for the persisted event log")

	rootCmd.AddCommand(runCmd)
}
