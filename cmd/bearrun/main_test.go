package main

import (
	"testing"

	"github.com/vovakirdan/bear-run/internal/config"
)

func TestPortOf(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{addr: ":23234", want: "23234"},
		{addr: "localhost:2222", want: "2222"},
		{addr: "2222", want: "2222"},
	}

	for _, tc := range tests {
		if got := portOf(tc.addr); got != tc.want {
			t.Errorf("portOf(%q) = %q, expected %q", tc.addr, got, tc.want)
		}
	}
}

func TestLoadGameConfigDifficulty(t *testing.T) {
	defer func(d string) { flagDifficulty = d }(flagDifficulty)

	flagDifficulty = "fixed"
	cfg, err := loadGameConfig()
	if err != nil {
		t.Fatalf("loadGameConfig() failed: %v", err)
	}
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable scaling")
	}

	flagDifficulty = "nightmare"
	if _, err := loadGameConfig(); err == nil {
		t.Error("expected an error for an unknown preset")
	}
}

func TestSimulateIsDeterministic(t *testing.T) {
	defer func(n int, a bool) { flagSimTicks, flagSimAutopilot = n, a }(flagSimTicks, flagSimAutopilot)
	flagSimTicks = 3000
	flagSimAutopilot = true

	cfg := config.DefaultBearConfig()
	first, err := simulate(cfg, 11, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	second, err := simulate(cfg, 11, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if first != second {
		t.Errorf("same seed gave %+v and %+v", first, second)
	}
	if first.ticks == 0 || first.ticks > 3000 {
		t.Errorf("ticks = %d, expected within the limit", first.ticks)
	}
}

func TestSimulateWithoutAutopilotCrashes(t *testing.T) {
	defer func(n int, a bool) { flagSimTicks, flagSimAutopilot = n, a }(flagSimTicks, flagSimAutopilot)
	flagSimTicks = 20000
	flagSimAutopilot = false

	res, err := simulate(config.DefaultBearConfig(), 5, nil)
	if err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	if res.alive {
		t.Error("a bear that never jumps should crash")
	}
	if res.score != 0 {
		t.Errorf("score = %d, expected 0", res.score)
	}
}
