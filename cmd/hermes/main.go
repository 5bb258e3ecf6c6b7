// Command hermes is the Hermes workspace CLI.
package main

import (
	"os"

	"github.com/hermes-labs/hermes-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
