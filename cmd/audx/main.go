package main

import (
	"fmt"
	"os"

	"audx/internal/cli"
	"audx/internal/mcpserver"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "__mcp" {
		if err := mcpserver.Run("0.1.0"); err != nil {
			fmt.Fprintf(os.Stderr, "audx mcp: %v\n", err)
			os.Exit(1)
		}
		return
	}

	code := cli.Run(os.Args[1:])
	os.Exit(code)
}
