package main

import (
	"fmt"
	"os"

	"github.com/aturs3001/ai-math-tutor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
