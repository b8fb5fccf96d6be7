package main

import (
	"os"

	"github.com/andkntr/youtube-comments-extract/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
