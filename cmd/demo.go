package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/parley-irc/parley/internal/app"
	"github.com/parley-irc/parley/internal/config"
	"github.com/parley-irc/parley/internal/demo"
	"github.com/parley-irc/parley/internal/demo/scenarios"
	"github.com/parley-irc/parley/internal/logger"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run Parley with scripted chat traffic",
	Long: `Run Parley with scripted chat traffic instead of a network connection.
Useful for trying the interface, recording screencasts, and documentation.

Available subcommands:
  list  - List available demo scenarios
  run   - Run the UI replaying a scenario (default: basic)`,
}

var demoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available demo scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Available demo scenarios:")
		fmt.Println()
		for _, s := range scenarios.All() {
			fmt.Printf("  %-10s %s\n", s.Name, s.Description)
		}
	},
}

var demoRunCmd = &cobra.Command{
	Use:   "run [scenario]",
	Short: "Run the UI replaying a scenario",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDemo,
}

func init() {
	demoCmd.AddCommand(demoListCmd)
	demoCmd.AddCommand(demoRunCmd)
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	name := "basic"
	if len(args) > 0 {
		name = args[0]
	}
	scenario := scenarios.Get(name)
	if scenario == nil {
		return fmt.Errorf("unknown scenario %q\nRun 'parley demo list' to see available scenarios", name)
	}

	runner, err := demo.NewRunner(scenario)
	if err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	// A throwaway config keeps demo servers out of the real one.
	cfg, err := config.LoadFrom(filepath.Join(os.TempDir(), "parley-demo.json"))
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	for _, srv := range scenario.Servers {
		cfg.AddServer(srv)
	}

	defer logger.Close()

	m := app.New(cfg, version)
	m.SetDemo(runner)
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
