package main

import (
	"fmt"
	"os"

	"github.com/bethropolis/tag-filter/internal/app"
)

func main() {
	application := app.New()

	if err := application.Command().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
