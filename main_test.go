package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/bleeding182/stringsexport/export"
)

func TestSetupLogger(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := setupLogger(&buf, "warn", "json")
		if err != nil {
			t.Fatalf("setupLogger: %v", err)
		}
		logger.Info("hidden")
		logger.Warn("shown", slog.String("locale", "de"))
		out := buf.String()
		if strings.Contains(out, "hidden") {
			t.Fatalf("info must be filtered: %s", out)
		}
		if !strings.Contains(out, `"locale":"de"`) {
			t.Fatalf("json output = %s", out)
		}
	})
	t.Run("Invalid", func(t *testing.T) {
		if _, err := setupLogger(&bytes.Buffer{}, "loud", "text"); err == nil {
			t.Fatal("expected error for unknown level")
		}
		if _, err := setupLogger(&bytes.Buffer{}, "info", "xml"); err == nil {
			t.Fatal("expected error for unknown format")
		}
	})
}

func TestCommands(t *testing.T) {
	a := kingpin.New("test", "")
	cfg := registerCommands(a)
	command, err := a.Parse([]string{"ios", "--file-name", "App.strings", "--swift-dir", "Sources", "--header", "one", "--header", "two", "--normalize"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if command != "ios" {
		t.Fatalf("command = %q", command)
	}
	opts := cfg.options(export.IOS, nil)
	if opts.FileName != "App.strings" || opts.AccessorsDir != "Sources" || !opts.NormalizeFormat {
		t.Fatalf("options = %+v", opts)
	}
	if len(opts.Headers) != 2 {
		t.Fatalf("headers = %v", opts.Headers)
	}
	if *cfg.outputFolder != "exports" {
		t.Fatalf("output folder = %q", *cfg.outputFolder)
	}

	opts = cfg.options(export.Android, nil)
	if opts.FileName != "" || opts.AccessorsDir != "" {
		t.Fatalf("android options = %+v", opts)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.yaml"), []byte("languages: [de]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	a := kingpin.New("test", "")
	cfg := registerCommands(a)
	if _, err := a.Parse([]string{"android"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	oldDir, oldSheet := catalogDir, sheetID
	t.Cleanup(func() { catalogDir, sheetID = oldDir, oldSheet })

	empty, sheet := "", "sheet"
	catalogDir, sheetID = &empty, &empty
	if _, err := loadCatalog(context.Background(), cfg, slog.Default()); err == nil {
		t.Fatal("expected error without a source")
	}

	catalogDir, sheetID = &dir, &sheet
	if _, err := loadCatalog(context.Background(), cfg, slog.Default()); err == nil {
		t.Fatal("expected error with both sources")
	}

	catalogDir, sheetID = &dir, &empty
	c, err := loadCatalog(context.Background(), cfg, slog.Default())
	if err != nil {
		t.Fatalf("loadCatalog: %v", err)
	}
	if n := len(c.Entities()); n != 1 {
		t.Fatalf("entities = %d", n)
	}
}
