package main

import "github.com/urfave/cli/v3"

var (
	modelName string
	dataDir   string
	dbPath    string
	logLevel  string
	logFormat string
)

func modelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "model",
		Aliases:     []string{"m"},
		Usage:       "name of the model in the store",
		Value:       "default",
		Destination: &modelName,
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "directory holding model snapshot files",
			Value:       "./data",
			Destination: &dataDir,
		},
		&cli.StringFlag{
			Name:        "db",
			Usage:       "sqlite database path (takes precedence over --data-dir)",
			Destination: &dbPath,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
	}
}

func commonFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{modelFlag()}
	flags = append(flags, extra...)
	flags = append(flags, storeFlags()...)
	flags = append(flags, loggingFlags()...)
	return flags
}
