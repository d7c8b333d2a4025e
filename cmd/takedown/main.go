// Command takedown is the athlete profile admin tool.
//
// Usage:
//
//	takedown                       # terminal UI
//	takedown --layout review --open
//	takedown search burroughs
//	takedown show --external
//	takedown serve --listen 127.0.0.1:7611
//	takedown export-catalog ./catalog.yaml
//	takedown logs -n 50
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A missing .env is fine; values may come from the real environment.
	_ = godotenv.Load(".env")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "takedown: %v\n", err)
		return 1
	}
	return 0
}
