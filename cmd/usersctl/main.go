package main

import (
	"context"
	"os"

	"github.com/rafabene/usermanager/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), cli.Options{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	}, os.Args[1:]))
}
