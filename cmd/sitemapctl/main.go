package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"sitemap-service/internal/core"
	"sitemap-service/internal/features/catalog/migrations"
	"sitemap-service/internal/features/catalog/services"
	"sitemap-service/internal/features/sitemap/handlers"
	sitemaps "sitemap-service/internal/features/sitemap/services"
)

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitDataError    = 3
)

func main() {
	godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitGeneralError)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "sitemapctl",
		Usage:   "Manage the video catalog and render sitemaps offline",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Value:   "./catalog.db",
				Usage:   "Catalog database file path",
				EnvVars: []string{"SITEMAP_DB_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"SITEMAP_LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "Import videos from a JSON catalog file",
				ArgsUsage: "<catalog.json>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "sync",
						Usage: "Remove videos that are not listed in the file",
					},
				},
				Action: importCatalog,
			},
			{
				Name:   "count",
				Usage:  "Print the number of videos in the catalog",
				Action: countVideos,
			},
			{
				Name:      "generate",
				Usage:     "Render a sitemap document",
				ArgsUsage: "<video|image|index>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "site",
						Aliases: []string{"s"},
						Usage:   "Public site URL",
						EnvVars: []string{"SITEMAP_SITE_URL"},
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file (default: stdout)",
					},
				},
				Action: generate,
			},
		},
	}
}

func getLogger(c *cli.Context) (*core.Logger, error) {
	level, err := core.ParseLevel(c.String("log-level"))
	if err != nil {
		return nil, err
	}
	return core.NewLoggerWithWriter(c.App.ErrWriter, level), nil
}

// getCatalog opens the catalog database and brings its schema up to date
func getCatalog(c *cli.Context) (*services.CatalogService, *core.Database, error) {
	logger, err := getLogger(c)
	if err != nil {
		return nil, nil, err
	}

	db, err := core.OpenDatabase(c.String("db"), logger)
	if err != nil {
		return nil, nil, err
	}

	if err := migrations.NewManager(db, logger).Migrate(c.Context); err != nil {
		db.Close()
		return nil, nil, err
	}

	return services.NewCatalogService(db, logger), db, nil
}

func outputJSON(c *cli.Context, v interface{}) error {
	encoder := json.NewEncoder(c.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func importCatalog(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: sitemapctl import [--sync] <catalog.json>", ExitUsageError)
	}
	path := c.Args().Get(0)

	catalog, db, err := getCatalog(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer db.Close()

	var count int
	if c.Bool("sync") {
		count, err = catalog.SyncFile(c.Context, path)
	} else {
		count, err = catalog.ImportFile(c.Context, path)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to import catalog: %v", err), ExitDataError)
	}

	return outputJSON(c, map[string]interface{}{
		"success": true,
		"file":    path,
		"videos":  count,
		"sync":    c.Bool("sync"),
	})
}

func countVideos(c *cli.Context) error {
	catalog, db, err := getCatalog(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}
	defer db.Close()

	count, err := catalog.Count(c.Context)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to count videos: %v", err), ExitDataError)
	}

	return outputJSON(c, map[string]interface{}{
		"videos": count,
	})
}

func generate(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("Usage: sitemapctl generate [--site URL] [--output FILE] <video|image|index>", ExitUsageError)
	}

	site := c.String("site")
	if site == "" {
		return cli.Exit("Site URL is not defined.", ExitUsageError)
	}

	logger, err := getLogger(c)
	if err != nil {
		return cli.Exit(err.Error(), ExitUsageError)
	}

	var document string
	switch kind := c.Args().Get(0); kind {
	case "index":
		document, err = sitemaps.NewIndexGenerator().Generate(site, []string{handlers.VideoSitemapPath, handlers.ImageSitemapPath})
	case "video", "image":
		var generator handlers.Generator = sitemaps.NewImageSitemapGenerator()
		if kind == "video" {
			generator = sitemaps.NewVideoSitemapGenerator(logger)
		}

		catalog, db, openErr := getCatalog(c)
		if openErr != nil {
			return cli.Exit(openErr.Error(), ExitDataError)
		}
		defer db.Close()

		videos, fetchErr := catalog.FetchAll(c.Context)
		if fetchErr != nil {
			return cli.Exit(fmt.Sprintf("Failed to load video data: %v", fetchErr), ExitDataError)
		}
		document, err = generator.Generate(site, videos)
	default:
		return cli.Exit(fmt.Sprintf("Unknown sitemap %q, expected video, image or index", kind), ExitUsageError)
	}
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to render sitemap: %v", err), ExitDataError)
	}

	outputPath := c.String("output")
	if outputPath == "" {
		if _, err := io.WriteString(c.App.Writer, document); err != nil {
			return cli.Exit(fmt.Sprintf("Failed to write sitemap: %v", err), ExitDataError)
		}
		return nil
	}

	if err := writeFile(outputPath, document); err != nil {
		return cli.Exit(err.Error(), ExitDataError)
	}

	logger.Info("Wrote sitemap", "file", outputPath, "bytes", len(document))
	return outputJSON(c, map[string]interface{}{
		"success": true,
		"file":    outputPath,
		"bytes":   len(document),
	})
}

// writeFile writes document to path and reports a failed close
func writeFile(path, document string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	if _, err := io.WriteString(file, document); err != nil {
		file.Close()
		return fmt.Errorf("failed to write sitemap: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	return nil
}
