package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/leonardinius/esvalue/cmd"
)

var version string

func main() {
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)

	// trap Ctrl+C and call cancel on the context
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		select {
		case <-c:
			cancel()
		case <-ctx.Done():
		}
	}()

	code := cmd.Execute(ctx, version)

	signal.Stop(c)
	cancel()
	os.Exit(code)
}
