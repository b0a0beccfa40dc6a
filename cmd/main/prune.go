package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

func pruneCmd() *cli.Command {
	var (
		minCount int64
		minVocab int64
	)

	return &cli.Command{
		Name:  "prune",
		Usage: "Drop rare transitions or rare vocabulary from a model",
		Flags: commonFlags(
			&cli.Int64Flag{
				Name:        "min-count",
				Usage:       "remove transitions observed fewer than this many times",
				Destination: &minCount,
			},
			&cli.Int64Flag{
				Name:        "min-vocab",
				Usage:       "remove tokens whose total observations fall below this",
				Destination: &minVocab,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyStoreConfig(c, cfg)
			logger := newLogger()

			if minCount <= 0 && minVocab <= 0 {
				return cli.Exit("error: provide --min-count and/or --min-vocab", 1)
			}

			st, closeStore, err := openStore(logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer func() { _ = closeStore() }()

			model, err := restoreModel(ctx, st, modelName, logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			if minCount > 0 {
				removed := model.Prune(int(minCount))
				color.Green("Removed %d transitions below count %d", removed, minCount)
			}
			if minVocab > 0 {
				removed := model.PruneVocabulary(int(minVocab))
				color.Green("Removed %d vocabulary tokens below total %d", removed, minVocab)
			}

			if err = st.Save(ctx, modelName, model.Snapshot()); err != nil {
				return cli.Exit(fmt.Sprintf("error: save model %q: %v", modelName, err), 1)
			}

			stats := model.Stats()
			color.Green("Model %q now has vocabulary %d, contexts %d, transitions %d",
				modelName, stats.VocabSize, stats.Contexts, stats.Transitions)
			return nil
		},
	}
}
