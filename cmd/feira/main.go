package main

import (
	"context"
	"os"
	"os/signal"

	"agrofeira/cmd/feira/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := commands.Execute(ctx, commands.Options{}, os.Args[1:])
	stop()
	os.Exit(code)
}
