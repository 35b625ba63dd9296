package main

import (
	"os"

	"github.com/schemalens/schemalens/cmd"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := cmd.Execute(Version); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
