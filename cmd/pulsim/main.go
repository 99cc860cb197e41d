package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/pulsim/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pulsim:", err)
		os.Exit(1)
	}
}
