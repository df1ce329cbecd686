package main

import (
	"fmt"
	"os"

	"github.com/sokinpui/portset"
)

func main() {
	if err := portset.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
