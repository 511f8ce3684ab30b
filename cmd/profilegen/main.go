package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/goliatone/go-profilegen/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cli.Execute(ctx, os.Args[1:], cli.Options{})
	stop()
	if err != nil {
		os.Exit(1)
	}
}
