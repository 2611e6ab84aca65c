package main

import (
	"os"

	"github.com/scenario-runner/sr/cmd/sr/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
