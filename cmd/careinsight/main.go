// careinsight is the CarePath-Insight command-line tool: it analyzes
// discharge notes locally without needing the API server.
package main

import (
	"os"

	"github.com/turtacn/CarePath-Insight/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
