// Package timeouts collects the durations shared by the reach runtime.
package timeouts

import "time"

// ReadHeader limits how long the MCP HTTP listener waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown bounds graceful shutdown of listeners.
const Shutdown = 5 * time.Second

// StoreOpen bounds the initial ping of a persistence backend.
const StoreOpen = 3 * time.Second

// StoreOp bounds a single gateway load, save or remove.
const StoreOp = 2 * time.Second

// HealthPoll is the interval at which the runtime republishes health status.
const HealthPoll = 10 * time.Second
