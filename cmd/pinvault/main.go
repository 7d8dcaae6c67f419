package main

import (
	"fmt"
	"os"

	"github.com/sachk/pinvault/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "pinvault:", err)
		os.Exit(1)
	}
}
