package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"horaris.manresa.cat/internal/logging"
	"horaris.manresa.cat/internal/prepare"
	"horaris.manresa.cat/internal/schedule"
)

func main() {
	logger := logging.NewStructuredLogger(os.Stderr, logging.ParseLevel(os.Getenv("HORARIS_LOG_LEVEL")))

	if err := newApp(logger).Run(os.Args); err != nil {
		logging.LogError(logger, "prepara failed", err)
		os.Exit(1)
	}
}

func newApp(logger *slog.Logger) *cli.App {
	commonFlags := func(defaultInput string) []cli.Flag {
		return []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Value:   defaultInput,
				Usage:   "source file",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "data.json",
				Usage:   "schedule document to write",
			},
			&cli.StringFlag{
				Name:  "layout",
				Usage: "YAML layout file (built-in Manresa layout when empty)",
			},
		}
	}

	return &cli.App{
		Name:        "prepara",
		Usage:       "build the timetable document",
		Description: "Generates the schedule document served by horaris from operator exports",

		Commands: []*cli.Command{
			{
				Name:  "csv",
				Usage: "import an origin/destination CSV matrix",
				Flags: commonFlags("horaris_manresa_barcelona_fullmatrix_tipusbus.csv"),
				Action: func(c *cli.Context) error {
					return convert(c, logger, func(input string, layout *prepare.Layout) (*schedule.Document, error) {
						f, err := os.Open(input)
						if err != nil {
							return nil, err
						}
						defer logging.SafeCloseWithLogging(f, logger, "close csv input")
						return prepare.ImportCSV(f, layout, logger)
					})
				},
			},
			{
				Name:  "gtfs",
				Usage: "import a GTFS static feed (zip)",
				Flags: commonFlags("gtfs.zip"),
				Action: func(c *cli.Context) error {
					return convert(c, logger, func(input string, layout *prepare.Layout) (*schedule.Document, error) {
						feed, err := os.ReadFile(input)
						if err != nil {
							return nil, err
						}
						return prepare.ImportGTFS(feed, layout, logger)
					})
				},
			},
		},
	}
}

type importer func(input string, layout *prepare.Layout) (*schedule.Document, error)

func convert(c *cli.Context, logger *slog.Logger, importFn importer) error {
	input, output := c.String("input"), c.String("output")

	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input %s: %w", input, err)
	}

	layout, err := prepare.LoadLayout(c.String("layout"))
	if err != nil {
		return err
	}

	doc, err := importFn(input, layout)
	if err != nil {
		return fmt.Errorf("importing %s: %w", input, err)
	}

	if err := prepare.WriteDocumentFile(output, doc, logger); err != nil {
		return err
	}

	logging.LogOperation(logger, "document_written",
		slog.String("input", input),
		slog.String("output", output),
		slog.Int("sections", len(doc.Sections)),
		slog.Int("panels", doc.PanelCount()))

	return nil
}
