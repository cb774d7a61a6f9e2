package main

import (
	"os"
	"runtime"

	"github.com/joho/godotenv"

	"github.com/acldrift/acldrift/cmd/acldrift/cli"
	"github.com/acldrift/acldrift/cmd/acldrift/cli/command"
	"github.com/acldrift/acldrift/internal"
)

var (
	version        = internal.NotProvided
	gitCommit      = internal.NotProvided
	buildDate      = internal.NotProvided
	gitDescription = internal.NotProvided
)

func main() {
	// optional environment overrides from a local .env
	_ = godotenv.Load()

	internal.SetBuildInfo(version, gitCommit, buildDate, gitDescription, runtime.Version())

	app := cli.Application()

	err := app.Execute()
	command.TeardownBus()
	if err != nil {
		os.Exit(1)
	}
}
