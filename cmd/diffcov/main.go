package main

import (
	"fmt"
	"os"

	"github.com/diffcov/diffcov/cmd/diffcov/app"
)

func main() {
	if err := app.NewDiffcovCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
