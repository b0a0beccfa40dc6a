package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/quillault/glossolalia/pkg/ngram"
	"github.com/quillault/glossolalia/pkg/store"
)

func statsCmd() *cli.Command {
	var evalPath string

	return &cli.Command{
		Name:  "stats",
		Usage: "Show statistics for one model, or a table of all models",
		Flags: commonFlags(
			&cli.StringFlag{
				Name:        "eval",
				Usage:       "text file to score against the model",
				Destination: &evalPath,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyStoreConfig(c, cfg)
			logger := newLogger()

			st, closeStore, err := openStore(logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer func() { _ = closeStore() }()

			if !c.IsSet("model") && !c.IsSet("m") && evalPath == "" {
				return listModels(ctx, st)
			}

			model, err := restoreModel(ctx, st, modelName, logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			mcfg := model.Config()
			stats := model.Stats()
			color.Cyan("Model %q", modelName)
			fmt.Printf("  order:        %d\n", mcfg.Order)
			fmt.Printf("  smoothing:    %g\n", mcfg.Smoothing)
			fmt.Printf("  sampling:     %s\n", mcfg.Sampling)
			fmt.Printf("  temperature:  %g\n", mcfg.Temperature)
			if mcfg.TopK > 0 {
				fmt.Printf("  top_k:        %d\n", mcfg.TopK)
			}
			fmt.Printf("  vocabulary:   %d\n", stats.VocabSize)
			fmt.Printf("  contexts:     %d\n", stats.Contexts)
			fmt.Printf("  transitions:  %d\n", stats.Transitions)
			fmt.Printf("  total count:  %d\n", stats.TotalCount)

			if evalPath == "" {
				return nil
			}
			if err = evalFile(model, evalPath); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return nil
		},
	}
}

// restoreModel loads the named snapshot from the store and rebuilds a model
// from it.
func restoreModel(ctx context.Context, st store.Store, name string, logger *slog.Logger) (*ngram.Model, error) {
	snap, err := st.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load model %q: %w", name, err)
	}
	model, err := ngram.New(snap.Config)
	if err != nil {
		return nil, err
	}
	model.SetLogger(logger)
	if err = model.Restore(snap); err != nil {
		return nil, fmt.Errorf("restore model %q: %w", name, err)
	}
	return model, nil
}

// listModels prints a table of every stored model with its headline
// statistics.
func listModels(ctx context.Context, st store.Store) error {
	names, err := st.List(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: list models: %v", err), 1)
	}
	if len(names) == 0 {
		color.Yellow("No models stored yet. Train one with: glossolalia train --tiny-corpus")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, color.CyanString("NAME\tORDER\tSAMPLING\tVOCAB\tCONTEXTS\tTRANSITIONS\tTOTAL"))

	for _, name := range names {
		snap, err := st.Load(ctx, name)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\n", name, color.RedString("unreadable: %v", err))
			continue
		}
		model, err := ngram.New(snap.Config)
		if err == nil {
			err = model.Restore(snap)
		}
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\n", name, color.RedString("unreadable: %v", err))
			continue
		}
		stats := model.Stats()
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%d\t%d\t%d\n",
			name,
			snap.Config.Order,
			snap.Config.Sampling,
			stats.VocabSize,
			stats.Contexts,
			stats.Transitions,
			stats.TotalCount,
		)
	}
	_ = w.Flush()

	color.Green("\nTotal models: %d", len(names))
	return nil
}

// evalFile scores a text file against the model and prints the aggregate
// cross-entropy and perplexity over every line long enough to predict from.
func evalFile(model *ngram.Model, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	tok := ngram.NewWhitespaceTokenizer()
	order := model.Config().Order

	var (
		totalLP   float64
		positions int
		streams   int
	)
	for _, line := range strings.Split(string(data), "\n") {
		tokens := tok.Tokenize(line)
		if len(tokens) == 0 {
			continue
		}
		stream := ngram.Wrap(tokens)
		if len(stream) <= order {
			continue
		}
		lp, err := model.SequenceLogProb(stream)
		if err != nil {
			return fmt.Errorf("score %s: %w", path, err)
		}
		totalLP += lp
		positions += len(stream) - order
		streams++
	}
	if positions == 0 {
		return fmt.Errorf("%s has no streams longer than the model order %d", path, order)
	}

	entropy := -totalLP / float64(positions)
	color.Green("Scored %d streams (%d predicted tokens)", streams, positions)
	color.Green("Cross-entropy %.4f bits/token, perplexity %.3f", entropy, math.Exp2(entropy))
	return nil
}
