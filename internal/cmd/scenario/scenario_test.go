package scenario

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Assertions {
		t.Fatal("expected assertions to default to true")
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.Locale != "en" {
		t.Fatalf("Locale = %q, want en", cfg.Locale)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("AVIATO_SCENARIO_FILE", "env.lua")
	t.Setenv("AVIATO_SCENARIO_VERBOSE", "true")

	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-scenario", "flag.lua", "-assert=false"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Scenario != "flag.lua" {
		t.Fatalf("Scenario = %q, want flag value", cfg.Scenario)
	}
	if cfg.Assertions {
		t.Fatal("expected assertions disabled by flag")
	}
	if !cfg.Verbose {
		t.Fatal("expected verbose from env")
	}
}

func TestRunRequiresScenario(t *testing.T) {
	if err := Run(context.Background(), Config{}, nil); err == nil {
		t.Fatal("expected missing scenario error")
	}
}

func TestRunLogOnlyReportsUnmetExpectations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.lua")
	script := `local scene = Scenario.new("demo")
scene:login("Sam")
scene:expect_approval("maya", 99)
return scene
`
	if err := os.WriteFile(path, []byte(script), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}

	var errOut bytes.Buffer
	err := Run(context.Background(), Config{Scenario: path, Timeout: time.Second}, &errOut)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(errOut.String(), "maya approval = 20, want 99") {
		t.Fatalf("output = %q", errOut.String())
	}

	err = Run(context.Background(), Config{Scenario: path, Assertions: true, Timeout: time.Second}, &errOut)
	if err == nil {
		t.Fatal("expected strict run to fail")
	}
}
