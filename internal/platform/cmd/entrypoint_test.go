package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"testing"
	"time"
)

type testConfig struct {
	Addr      string `env:"CMD_TEST_ADDR" envDefault:"127.0.0.1:8090"`
	Transport string `env:"CMD_TEST_TRANSPORT" envDefault:"stdio"`
}

func TestParseConfigFromArgsFlagsOverrideEnv(t *testing.T) {
	t.Setenv("AVIATO_CMD_TEST_ADDR", "env:9000")
	t.Setenv("AVIATO_CMD_TEST_TRANSPORT", "http")

	var cfg testConfig
	fs := flag.NewFlagSet("reach", flag.ContinueOnError)
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "address")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport")
	if err := ParseArgs(fs, []string{"-addr", "flag:9001"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}

	if cfg.Addr != "flag:9001" {
		t.Fatalf("Addr = %q, want flag value", cfg.Addr)
	}
	if cfg.Transport != "http" {
		t.Fatalf("Transport = %q, want env value", cfg.Transport)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	var cfg *testConfig
	if err := ParseConfig(cfg); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected nil parser error")
	}
}

func TestLogPrefix(t *testing.T) {
	prev := log.Prefix()
	t.Cleanup(func() { log.SetPrefix(prev) })

	if got := LogPrefix(" reach "); got != "[REACH] " {
		t.Fatalf("LogPrefix = %q, want %q", got, "[REACH] ")
	}
	if log.Prefix() != "[REACH] " {
		t.Fatalf("log prefix = %q", log.Prefix())
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), " ", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceReach, nil); err == nil {
		t.Fatal("expected missing run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("AVIATO_OTEL_ENDPOINT", "")
	want := errors.New("boom")

	err := RunWithTelemetryAndOptions(context.Background(), ServiceScenario, RunOptions{ShutdownTimeout: time.Second}, func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
