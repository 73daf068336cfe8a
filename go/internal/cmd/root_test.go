package main

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := setupLogging("warn", "json"); err != nil {
		t.Fatalf("setupLogging: %v", err)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("level = %s", zerolog.GlobalLevel())
	}
	if err := setupLogging("loud", "json"); err == nil {
		t.Fatal("expected invalid level error")
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"serve", "migrate", "seed", "reset"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %s not registered: %v", name, err)
		}
	}
}
