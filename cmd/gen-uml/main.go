package main

import (
	"context"
	"os"

	"github.com/seitarof/gen-uml/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.NewCommand(version).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
