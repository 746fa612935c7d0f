package main

import (
	"os"

	"github.com/cmccomb/pastrami/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
