// Package main is the entry point for the vehicle-valuator server.
package main

import (
	"os"

	"github.com/donaldgifford/vehicle-valuator/cmd/vehicle-valuator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
