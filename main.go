package main

import (
	"os"

	"github.com/ploofyz/ploofyz-web/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
