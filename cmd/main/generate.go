package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/quillault/glossolalia/pkg/ngram"
)

func generateCmd() *cli.Command {
	var (
		seedText    string
		maxNew      int64
		samples     int64
		sampling    string
		temperature float64
		topK        int64
		rngSeed     int64
		stream      bool
	)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate text from a trained model",
		Flags: commonFlags(
			&cli.StringFlag{
				Name:        "seed",
				Aliases:     []string{"p"},
				Usage:       "seed text to continue from",
				Destination: &seedText,
			},
			&cli.Int64Flag{
				Name:        "max-new",
				Aliases:     []string{"n"},
				Usage:       "maximum number of tokens to generate",
				Value:       32,
				Destination: &maxNew,
			},
			&cli.Int64Flag{
				Name:        "samples",
				Usage:       "number of sequences to generate",
				Value:       1,
				Destination: &samples,
			},
			&cli.StringFlag{
				Name:        "sampling",
				Usage:       "override the stored sampling strategy",
				Destination: &sampling,
			},
			&cli.Float64Flag{
				Name:        "temperature",
				Aliases:     []string{"t"},
				Usage:       "override the stored sampling temperature",
				Destination: &temperature,
			},
			&cli.Int64Flag{
				Name:        "top-k",
				Usage:       "override the stored topk pool size",
				Destination: &topK,
			},
			&cli.Int64Flag{
				Name:        "rng-seed",
				Usage:       "sampling RNG seed (default -1 = random)",
				Value:       -1,
				Destination: &rngSeed,
			},
			&cli.BoolFlag{
				Name:        "stream",
				Usage:       "print tokens as they are generated",
				Destination: &stream,
			},
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg := LoadConfig()
			applyStoreConfig(c, cfg)
			applySamplingConfig(c, cfg, &sampling, &temperature, &topK)
			if cfg.MaxNew != nil && !c.IsSet("max-new") && !c.IsSet("n") {
				maxNew = *cfg.MaxNew
			}
			logger := newLogger()

			st, closeStore, err := openStore(logger)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer func() { _ = closeStore() }()

			snap, err := st.Load(ctx, modelName)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: load model %q: %v", modelName, err), 1)
			}
			if sampling != "" {
				strategy, err := ngram.ParseSampling(sampling)
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				snap.Config.Sampling = strategy
			}
			if c.IsSet("temperature") || c.IsSet("t") || (cfg.Temperature != nil && temperature > 0) {
				snap.Config.Temperature = temperature
			}
			if c.IsSet("top-k") || cfg.TopK != nil {
				snap.Config.TopK = int(topK)
			}

			model, err := ngram.New(snap.Config)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			model.SetLogger(logger)
			if err = model.Restore(snap); err != nil {
				return cli.Exit(fmt.Sprintf("error: restore model %q: %v", modelName, err), 1)
			}
			if rngSeed >= 0 {
				model.SetRand(rand.New(rand.NewPCG(uint64(rngSeed), 0)))
			}

			tok := ngram.NewWhitespaceTokenizer()
			seed := ngram.PadSOS(tok.Tokenize(seedText), model.Config().Order)

			for i := int64(0); i < samples; i++ {
				if stream {
					if err = streamSequence(ctx, model, seed, int(maxNew)); err != nil {
						return cli.Exit(fmt.Sprintf("error: generate: %v", err), 1)
					}
					continue
				}
				out, err := model.Generate(seed, int(maxNew))
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: generate: %v", err), 1)
				}
				fmt.Println(strings.Join(ngram.StripSentinels(out), " "))
			}
			return nil
		},
	}
}

// streamSequence prints tokens as the model emits them, so long generations
// show up immediately instead of after the full walk.
func streamSequence(ctx context.Context, model *ngram.Model, seed []string, maxNew int) error {
	ch, err := model.GenerateStream(ctx, seed, maxNew)
	if err != nil {
		return err
	}

	wrote := false
	for token := range ch {
		if token == ngram.SOSToken || token == ngram.EOSToken {
			continue
		}
		if wrote {
			fmt.Print(" ")
		}
		fmt.Print(token)
		wrote = true
	}
	fmt.Println()
	return nil
}
