// Package main writes reference documentation for the vehicle-valuator
// server and vvt client command trees.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	server "github.com/donaldgifford/vehicle-valuator/cmd/vehicle-valuator/cmd"
	client "github.com/donaldgifford/vehicle-valuator/cmd/vvt/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory")
	format := flag.String("format", "markdown", "markdown or man")
	flag.Parse()

	trees := map[string]*cobra.Command{
		"vehicle-valuator": server.Root(),
		"vvt":              client.Root(),
	}

	for name, root := range trees {
		dir := filepath.Join(*output, name)
		if err := generate(root, dir, *format); err != nil {
			log.Fatalf("generating %s docs: %v", name, err)
		}
		fmt.Printf("%s docs generated in %s/\n", name, dir)
	}
}

func generate(root *cobra.Command, dir, format string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	root.DisableAutoGenTag = true

	switch format {
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{Title: root.Name(), Section: "1"}, dir)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
