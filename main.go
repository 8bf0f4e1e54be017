package main

import (
	"os"

	"github.com/abhisek/soulsupport/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
