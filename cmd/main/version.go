package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Printf("version:    %s\n", Version)
			fmt.Printf("commit:     %s\n", Commit)
			fmt.Printf("build date: %s\n", BuildDate)
			return nil
		},
	}
}
