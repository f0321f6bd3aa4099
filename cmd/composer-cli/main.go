package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:     "composer-cli",
		HelpName: "composer-cli",
		Usage:    "executes and inspects composable call sequences",
		Commands: []*cli.Command{
			&RunCommand,
			&InspectCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
