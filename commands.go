package main

import (
	"log/slog"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/bleeding182/stringsexport/export"
	"github.com/bleeding182/stringsexport/writer"
)

type config struct {
	outputFolder *string
	headers      *[]string
	normalize    *bool
	failOnError  *bool
	logLevel     *string
	logFormat    *string

	fileName *string
	swiftDir *string

	credentials   *string
	tokenFile     *string
	keyColumn     *string
	commentColumn *string
}

func registerCommands(app *kingpin.Application) *config {
	cfg := &config{}

	app.Command("android", "Export your strings as values[-<code>]/strings.xml for Android.")

	ios := app.Command("ios", "Export your strings as <code>.lproj/Localizable.strings for iOS. The neutral locale goes to Base.lproj.")
	cfg.fileName = ios.Flag("file-name", "Name of the strings file inside each *.lproj folder.").Default("Localizable.strings").Envar("STRINGS_EXPORT_FILE_NAME").String()
	cfg.swiftDir = ios.Flag("swift-dir", "Also generate a Strings.swift util file with constants for the neutral locale in this directory.").Envar("STRINGS_EXPORT_SWIFT_DIR").String()

	cfg.outputFolder = app.Flag("output-folder", "Set the output directory where the locale folders will be generated.").Short('o').Default("exports").Envar("STRINGS_EXPORT_OUTPUT").String()
	cfg.headers = app.Flag("header", "Comment line written at the top of every generated file. Repeatable.").Strings()
	cfg.normalize = app.Flag("normalize", "Convert between %s and %@ format specifiers for the target platform.").Envar("STRINGS_EXPORT_NORMALIZE").Bool()
	cfg.failOnError = app.Flag("fail-on-error", "Exit with code 2 if any locale could not be written.").Envar("STRINGS_EXPORT_FAIL_ON_ERROR").Bool()
	cfg.logLevel = app.Flag("log-level", "Log level.").Default("info").Envar("STRINGS_EXPORT_LOG_LEVEL").Enum("debug", "info", "warn", "error")
	cfg.logFormat = app.Flag("log-format", "Log format.").Default("text").Envar("STRINGS_EXPORT_LOG_FORMAT").Enum("text", "json")

	cfg.credentials = app.Flag("credentials", "OAuth client secret JSON used with --sheet-id.").Envar("STRINGS_EXPORT_CREDENTIALS").String()
	cfg.tokenFile = app.Flag("token-file", "Where the OAuth token is cached. Defaults to ~/.credentials.").Envar("STRINGS_EXPORT_TOKEN_FILE").String()
	cfg.keyColumn = app.Flag("key", "Override the name of the key column").Default("key").Short('k').String()
	cfg.commentColumn = app.Flag("comment", "Override the name of the comment column").Default("comment").Short('c').String()
	return cfg
}

func (cfg *config) options(platform export.Platform, logger *slog.Logger) export.Options {
	opts := export.Options{
		Options: writer.Options{
			Headers:         *cfg.headers,
			NormalizeFormat: *cfg.normalize,
		},
		Logger: logger,
	}
	if platform == export.IOS {
		opts.FileName = *cfg.fileName
		opts.AccessorsDir = *cfg.swiftDir
	}
	return opts
}
