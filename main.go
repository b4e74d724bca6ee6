package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/bleeding182/stringsexport/catalog"
	"github.com/bleeding182/stringsexport/catalog/sheets"
	"github.com/bleeding182/stringsexport/export"
)

// go build -ldflags "-X main.version={version}"
var version = "dev"

const appDescription = `
A CLI-Tool to export a multi-locale string catalog as Android and iOS resources.

Catalog sources:
    --catalog points to a directory of YAML files, one resource entity per file.
    --sheet-id reads a Google spreadsheet, one resource entity per tab. The header row names a "key" column, an optional "comment" column and one column per locale ("neutral" for the invariant culture).

Output:
    android   <output>/values[-<code>]/strings.xml
    ios       <output>/[<code>|Base].lproj/Localizable.strings

Values that are empty or whitespace-only are not exported.
`

var (
	app = kingpin.New("stringsexport", appDescription).Version(version)

	catalogDir = app.Flag("catalog", "Directory of YAML catalog files.").Envar("STRINGS_EXPORT_CATALOG").ExistingDir()
	sheetID    = app.Flag("sheet-id", "ID of the spreadsheet to use.").Short('s').Envar("STRINGS_EXPORT_SHEET_ID").String()
)

func main() {
	cfg := registerCommands(app)
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	logger, err := setupLogger(os.Stderr, *cfg.logLevel, *cfg.logFormat)
	app.FatalIfError(err, "")

	c, err := loadCatalog(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("unable to load catalog", slog.String("error", err.Error()))
		os.Exit(1)
	}

	platform, err := export.ParsePlatform(command)
	app.FatalIfError(err, "")

	report := export.Export(platform, c, *cfg.outputFolder, cfg.options(platform, logger))
	if *cfg.failOnError && report.Err() != nil {
		os.Exit(2)
	}
}

func loadCatalog(ctx context.Context, cfg *config, logger *slog.Logger) (catalog.Catalog, error) {
	switch {
	case *catalogDir != "" && *sheetID != "":
		return nil, errors.New("--catalog and --sheet-id are mutually exclusive")
	case *catalogDir != "":
		return catalog.LoadYAMLDir(*catalogDir)
	case *sheetID != "":
		return sheets.Load(ctx, sheets.Config{
			SheetID:         *sheetID,
			CredentialsFile: *cfg.credentials,
			TokenFile:       *cfg.tokenFile,
			KeyColumn:       *cfg.keyColumn,
			CommentColumn:   *cfg.commentColumn,
			Logger:          logger,
		})
	}
	return nil, errors.New("one of --catalog or --sheet-id is required")
}
