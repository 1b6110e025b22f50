package cmd

import (
	"strings"
	"testing"
)

func TestDemoCommandRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "demo" {
			subs := make(map[string]bool)
			for _, sc := range c.Commands() {
				subs[sc.Name()] = true
			}
			if !subs["list"] || !subs["run"] {
				t.Errorf("demo subcommands = %v, want list and run", subs)
			}
			return
		}
	}
	t.Fatal("demo command not registered")
}

func TestRunDemoUnknownScenario(t *testing.T) {
	err := runDemo(demoRunCmd, []string{"nonexistent"})
	if err == nil {
		t.Fatal("expected error for unknown scenario")
	}
	if !strings.Contains(err.Error(), "unknown scenario") {
		t.Errorf("error = %v, want unknown scenario message", err)
	}
}
