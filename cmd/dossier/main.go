package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/oarkflow/json"
	"github.com/oarkflow/log"
	"github.com/urfave/cli/v2"

	"github.com/oarkflow/dossier"
	"github.com/oarkflow/dossier/datagen"
	"github.com/oarkflow/dossier/loader"
	"github.com/oarkflow/dossier/web"
)

func main() {
	app := &cli.App{
		Name:   "dossier",
		Usage:  "Fuzzy search and exact lookup over KYC record files",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Index the local datasets and serve the HTTP API",
				Action: serveCommand,
				Flags: append(dataFlags(),
					&cli.StringFlag{
						Name:    "addr",
						Aliases: []string{"a"},
						Usage:   "Listen address",
						Value:   "0.0.0.0:8001",
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Route prefix for the API",
						Value: "/",
					},
				),
			},
			{
				Name:   "generate",
				Usage:  "Generate linked synthetic datasets",
				Action: generateCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   "data",
					},
					&cli.IntFlag{
						Name:    "people",
						Aliases: []string{"p"},
						Usage:   "Number of individuals to generate",
						Value:   1000,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed; the same seed reproduces the same files",
						Value: 42,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format (json or msgpack)",
						Value: "json",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "One-shot fuzzy search against a dataset file",
				ArgsUsage: "<dataset> <query>",
				Action:    searchCommand,
				Flags: append(dataFlags(),
					&cli.StringFlag{
						Name:    "field",
						Aliases: []string{"f"},
						Usage:   "Field to search (defaults to the dataset's first text field)",
					},
					&cli.IntFlag{
						Name:    "top",
						Aliases: []string{"n"},
						Usage:   "Number of results",
						Value:   3,
					},
					&cli.BoolFlag{
						Name:  "scores",
						Usage: "Include relevance scores and positions in the output",
					},
				),
			},
			{
				Name:      "lookup",
				Usage:     "Exact unique-key lookup against a dataset file",
				ArgsUsage: "<dataset> <key>",
				Action:    lookupCommand,
				Flags:     dataFlags(),
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("dossier")
	}
}

func dataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "Directory holding the dataset files",
			Value:   "data",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file; the stock datasets are used when omitted",
		},
	}
}

// loadConfig resolves the effective config: the YAML file when given,
// the stock dataset declarations otherwise, with the data directory flag
// taking precedence either way.
func loadConfig(c *cli.Context) (dossier.Config, error) {
	cfg := dossier.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := dossier.LoadConfig(path)
		if err != nil {
			return dossier.Config{}, err
		}
		cfg = loaded
	}
	if dir := c.String("data"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	discovered, err := loader.Discover(cfg.DataDir)
	if err != nil {
		return err
	}
	for name, dcfg := range cfg.Datasets {
		if dcfg.Path != "" || dcfg.Database != nil {
			continue
		}
		if _, found := discovered[name]; !found {
			log.Warn().Str("dataset", name).Str("dir", cfg.DataDir).Msg("no data file, skipping dataset")
			delete(cfg.Datasets, name)
		}
	}
	registry, err := dossier.Load(context.Background(), cfg, loader.Records(cfg.DataDir))
	if err != nil {
		return err
	}
	if registry.Len() == 0 {
		log.Warn().Str("dir", cfg.DataDir).Msg("serving with no datasets, generate or mount data files first")
	}
	addr := c.String("addr")
	log.Info().Str("addr", addr).Int("datasets", registry.Len()).Msg("starting server")
	web.StartServer(addr, registry, c.String("prefix"))
	return nil
}

func generateCommand(c *cli.Context) error {
	bundle := datagen.Generate(datagen.Config{
		People: c.Int("people"),
		Seed:   c.Int64("seed"),
	})
	out := c.String("out")
	if c.String("format") == "msgpack" {
		return datagen.WriteMsgpack(out, bundle)
	}
	return datagen.Write(out, bundle)
}

// buildEngine loads and indexes a single dataset for the one-shot
// commands.
func buildEngine(c *cli.Context, name string) (*dossier.Engine, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	dcfg, ok := cfg.Datasets[name]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q, configured: %s", name, strings.Join(cfg.Names(), ", "))
	}
	records, err := loader.Records(cfg.DataDir)(c.Context, name, dcfg)
	if err != nil {
		return nil, err
	}
	return dossier.New(name, records, dcfg.Options())
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: dossier search <dataset> <query>")
	}
	name, query := c.Args().Get(0), c.Args().Get(1)
	eng, err := buildEngine(c, name)
	if err != nil {
		return err
	}
	field := c.String("field")
	if field == "" {
		field = eng.Fields()[0]
	}
	if c.Bool("scores") {
		hits, err := eng.SearchHits(query, field, c.Int("top"))
		if err != nil {
			return err
		}
		for _, hit := range hits {
			b, err := json.Marshal(hit.Record)
			if err != nil {
				return err
			}
			fmt.Printf("%3d  %.4f  %s\n", hit.Position, hit.Score, b)
		}
		return nil
	}
	records, err := eng.Search(query, field, c.Int("top"))
	if err != nil {
		return err
	}
	return loader.WriteRecords(os.Stdout, records)
}

func lookupCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: dossier lookup <dataset> <key>")
	}
	name, key := c.Args().Get(0), c.Args().Get(1)
	eng, err := buildEngine(c, name)
	if err != nil {
		return err
	}
	rec, found, err := eng.Lookup(key)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no %s record with %s=%q", name, eng.UniqueKeyField(), key)
	}
	return loader.WriteRecords(os.Stdout, []dossier.Record{rec})
}

func setupLogger(c *cli.Context) error {
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		log.DefaultLogger.Level = log.DebugLevel
	case "info":
		log.DefaultLogger.Level = log.InfoLevel
	case "warn":
		log.DefaultLogger.Level = log.WarnLevel
	case "error":
		log.DefaultLogger.Level = log.ErrorLevel
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.String("log-level"))
	}
	return nil
}
