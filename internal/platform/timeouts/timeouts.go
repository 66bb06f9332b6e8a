// Package timeouts defines shared timeout constants for luckydraw servers.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Write caps how long a single response may take, including the draw pacing
// delay.
const Write = 30 * time.Second

// Idle bounds keep-alive connections between requests.
const Idle = 2 * time.Minute

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Telemetry limits how long trace exporters get to flush on exit.
const Telemetry = 5 * time.Second
