package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/goliatone/go-dbform/internal/commands"
)

func main() {
	log.SetFlags(0)
	if err := run(); err != nil {
		log.Fatalf("dbform: %v", err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return commands.NewRootCmd().ExecuteContext(ctx)
}
