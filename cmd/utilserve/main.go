// Command utilserve runs the utilities HTTP API, or evaluates a utility
// directly from the command line.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
