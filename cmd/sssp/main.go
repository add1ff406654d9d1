package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

const appName = "uPath-sssp"

func main() {
	// Cancel the calculation when the process is interrupted. The calculator
	// notices between rounds.
	ctx, cancelFn := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancelFn()

	if err := newRootCmd(newApp()).ExecuteContext(ctx); err != nil {
		cancelFn()
		os.Exit(1)
	}
}
