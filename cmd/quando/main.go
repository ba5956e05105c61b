package main

import (
	"os"

	"github.com/watzon/quando/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
