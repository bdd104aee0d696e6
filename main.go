package main

import (
	"os"

	"github.com/sustainlab/materiality/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
