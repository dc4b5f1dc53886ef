package main

import (
	"os"

	"github.com/xamuil2/digitalludus/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
