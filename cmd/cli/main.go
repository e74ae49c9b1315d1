package main

import (
	"os"

	"github.com/myblog-dev/myblog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
