package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func modelsCmd() *cli.Command {
	return &cli.Command{
		Name:    "models",
		Aliases: []string{"ls"},
		Usage:   "List stored models",
		Flags:   append(storeFlags(), loggingFlags()...),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyStoreConfig(c, cfg)

			st, closeStore, err := openStore(newLogger())
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer func() { _ = closeStore() }()

			return listModels(ctx, st)
		},
		Commands: []*cli.Command{
			{
				Name:      "rm",
				Usage:     "Delete a stored model",
				ArgsUsage: "<name>",
				Flags:     append(storeFlags(), loggingFlags()...),
				Action: func(ctx context.Context, c *cli.Command) error {
					cfg := LoadConfig()
					applyStoreConfig(c, cfg)

					name := c.Args().First()
					if name == "" {
						return cli.Exit("error: provide the model name to delete", 1)
					}

					st, closeStore, err := openStore(newLogger())
					if err != nil {
						return cli.Exit(fmt.Sprintf("error: %v", err), 1)
					}
					defer func() { _ = closeStore() }()

					if err = st.Delete(ctx, name); err != nil {
						return cli.Exit(fmt.Sprintf("error: delete model %q: %v", name, err), 1)
					}
					color.Green("Deleted model %q", name)
					return nil
				},
			},
		},
	}
}
