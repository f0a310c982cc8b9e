// Package main starts the reach MCP server.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	reachcmd "github.com/louisbranch/aviato/internal/cmd/reach"
	entrypoint "github.com/louisbranch/aviato/internal/platform/cmd"
)

func main() {
	cfg, err := reachcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	entrypoint.LogPrefix(entrypoint.ServiceReach)

	ctx, stop := entrypoint.SignalContext(context.Background())
	defer stop()

	if err := reachcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
