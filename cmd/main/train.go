package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"

	"github.com/quillault/glossolalia/pkg/ngram"
	"github.com/quillault/glossolalia/pkg/store"
)

func trainCmd() *cli.Command {
	var (
		order       int64
		smoothing   float64
		sampling    string
		temperature float64
		topK        int64
		lowercase   bool
		pattern     string
		tinyCorpus  bool
	)

	return &cli.Command{
		Name:      "train",
		Usage:     "Train a model on text files, one token stream per line",
		ArgsUsage: "[files...]",
		Flags: commonFlags(
			&cli.Int64Flag{
				Name:        "order",
				Aliases:     []string{"o"},
				Usage:       "context window length in tokens",
				Value:       2,
				Destination: &order,
			},
			&cli.Float64Flag{
				Name:        "smoothing",
				Aliases:     []string{"s"},
				Usage:       "additive smoothing constant",
				Value:       1.0,
				Destination: &smoothing,
			},
			&cli.StringFlag{
				Name:        "sampling",
				Usage:       "sampling strategy (stochastic, greedy, topk)",
				Value:       "stochastic",
				Destination: &sampling,
			},
			&cli.Float64Flag{
				Name:        "temperature",
				Aliases:     []string{"t"},
				Usage:       "sampling temperature",
				Value:       1.0,
				Destination: &temperature,
			},
			&cli.Int64Flag{
				Name:        "top-k",
				Usage:       "candidate pool size for topk sampling",
				Destination: &topK,
			},
			&cli.BoolFlag{
				Name:        "lowercase",
				Usage:       "lowercase tokens before counting",
				Destination: &lowercase,
			},
			&cli.StringFlag{
				Name:        "token-pattern",
				Usage:       "regular expression matching a single token",
				Destination: &pattern,
			},
			&cli.BoolFlag{
				Name:        "tiny-corpus",
				Usage:       "train on the built-in sample corpus",
				Destination: &tinyCorpus,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyStoreConfig(c, cfg)
			applySamplingConfig(c, cfg, &sampling, &temperature, &topK)
			if cfg.Order != nil && !c.IsSet("order") && !c.IsSet("o") {
				order = *cfg.Order
			}
			if cfg.Smoothing != nil && !c.IsSet("smoothing") && !c.IsSet("s") {
				smoothing = *cfg.Smoothing
			}
			logger := newLogger()

			files := c.Args().Slice()
			if len(files) == 0 && !tinyCorpus {
				return cli.Exit("error: provide input files or --tiny-corpus", 1)
			}

			strategy, err := ngram.ParseSampling(sampling)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			mcfg := ngram.Config{
				Order:       int(order),
				Smoothing:   smoothing,
				Sampling:    strategy,
				Temperature: temperature,
				TopK:        int(topK),
			}

			st, closeStore, err := openStore(logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer func() { _ = closeStore() }()

			model, err := ngram.New(mcfg)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			model.SetLogger(logger)

			// An existing model of the same name is extended rather than
			// replaced. Its stored config wins except for flags the user
			// set explicitly, and the order can never change once the
			// counts exist.
			snap, err := st.Load(ctx, modelName)
			switch {
			case err == nil:
				if c.IsSet("order") && int(order) != snap.Config.Order {
					return cli.Exit(fmt.Sprintf(
						"error: model %q has order %d, retraining with order %d would corrupt it",
						modelName, snap.Config.Order, order), 1)
				}
				if c.IsSet("smoothing") {
					snap.Config.Smoothing = smoothing
				}
				if c.IsSet("sampling") {
					snap.Config.Sampling = strategy
				}
				if c.IsSet("temperature") {
					snap.Config.Temperature = temperature
				}
				if c.IsSet("top-k") {
					snap.Config.TopK = int(topK)
				}
				if err = model.Restore(snap); err != nil {
					return cli.Exit(fmt.Sprintf("error: restore model %q: %v", modelName, err), 1)
				}
				color.Cyan("Extending model %q (order %d)", modelName, model.Config().Order)
			case errors.Is(err, store.ErrNotFound):
				color.Cyan("Creating model %q (order %d)", modelName, mcfg.Order)
			default:
				return cli.Exit(fmt.Sprintf("error: load model %q: %v", modelName, err), 1)
			}

			var opts []ngram.TokenizerOption
			if lowercase {
				opts = append(opts, ngram.WithLowercase())
			}
			if pattern != "" {
				opts = append(opts, ngram.WithTokenPattern(pattern))
			}
			tok := ngram.NewWhitespaceTokenizer(opts...)

			streams, tokenCount, err := collectStreams(tok, files, tinyCorpus)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			model.Train(streams)

			if err = st.Save(ctx, modelName, model.Snapshot()); err != nil {
				return cli.Exit(fmt.Sprintf("error: save model %q: %v", modelName, err), 1)
			}

			stats := model.Stats()
			color.Green("Trained %q on %d streams (%d tokens)", modelName, len(streams), tokenCount)
			color.Green("Vocabulary %d, contexts %d, transitions %d, total count %d",
				stats.VocabSize, stats.Contexts, stats.Transitions, stats.TotalCount)
			return nil
		},
	}
}

// collectStreams tokenizes the inputs into sentinel-wrapped token streams,
// one per non-empty line. tokenCount excludes the sentinels.
func collectStreams(tok ngram.Tokenizer, files []string, tinyCorpus bool) ([][]string, int, error) {
	var (
		streams    [][]string
		tokenCount int
	)

	add := func(line string) {
		tokens := tok.Tokenize(line)
		if len(tokens) == 0 {
			return
		}
		tokenCount += len(tokens)
		streams = append(streams, ngram.Wrap(tokens))
	}

	if tinyCorpus {
		for _, line := range ngram.TinyCorpus() {
			add(line)
		}
	}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, fmt.Errorf("could not read %s: %w", path, err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			add(line)
		}
	}
	return streams, tokenCount, nil
}
