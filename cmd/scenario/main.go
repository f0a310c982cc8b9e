// Package main runs Lua scenario scripts against an in-process reach session.
package main

import (
	"context"
	"flag"
	"os"

	scenariocmd "github.com/louisbranch/aviato/internal/cmd/scenario"
	entrypoint "github.com/louisbranch/aviato/internal/platform/cmd"
	"github.com/louisbranch/aviato/internal/platform/config"
)

func main() {
	cfg, err := scenariocmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	entrypoint.LogPrefix(entrypoint.ServiceScenario)

	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := scenariocmd.Run(ctx, cfg, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
