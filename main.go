package main

import (
	"os"

	"github.com/thenoetrevino/tasktrack/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
