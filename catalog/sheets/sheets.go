// Package sheets loads a resource catalog from a Google spreadsheet.
//
// Every tab of the spreadsheet is one entity named after the tab. The first
// row holds the headers: a key column, an optional comment column and one
// column per locale.
//
//	key        comment            neutral        de
//	Greeting   Default greeting.  Hello, world!  Hallo, Welt!
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/bleeding182/stringsexport/catalog"
)

const readonlyScope = "https://www.googleapis.com/auth/spreadsheets.readonly"

// Config selects the spreadsheet and the column layout.
type Config struct {
	SheetID string
	// CredentialsFile is an OAuth client secret JSON for an installed app.
	CredentialsFile string
	// TokenFile caches the user token. Defaults to ~/.credentials/<...>.json.
	TokenFile     string
	KeyColumn     string
	CommentColumn string
	Logger        *slog.Logger
}

// Load reads every tab of the spreadsheet into a catalog.
func Load(ctx context.Context, cfg Config) (*catalog.Resources, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	secret, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read client secret: %w", err)
	}
	config, err := google.ConfigFromJSON(secret, readonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret: %w", err)
	}
	client, err := getClient(ctx, config, cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	info, err := srv.Spreadsheets.Get(cfg.SheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheets information: %w", err)
	}

	r := catalog.New()
	for _, sheet := range info.Sheets {
		title := sheet.Properties.Title
		res, err := srv.Spreadsheets.Values.Get(cfg.SheetID, sheetRange(title)).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", title, err)
		}
		if err := addRows(r, title, res.Values, cfg.KeyColumn, cfg.CommentColumn); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", title, err)
		}
		cfg.Logger.Debug("sheet loaded",
			slog.String("sheet", title),
			slog.Int64("gid", sheet.Properties.SheetId),
			slog.Int("rows", len(res.Values)),
		)
	}
	return r, nil
}

// sheetRange addresses a whole tab. Titles are always quoted so names with
// spaces or punctuation resolve.
func sheetRange(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// EntityFromRows converts the values of one tab into a single-entity catalog.
func EntityFromRows(name string, rows [][]interface{}, keyColumn, commentColumn string) (*catalog.Resources, error) {
	r := catalog.New()
	if err := addRows(r, name, rows, keyColumn, commentColumn); err != nil {
		return nil, err
	}
	return r, nil
}

func addRows(r *catalog.Resources, name string, rows [][]interface{}, keyColumn, commentColumn string) error {
	if keyColumn == "" {
		keyColumn = "key"
	}
	if commentColumn == "" {
		commentColumn = "comment"
	}
	if len(rows) == 0 {
		r.NewEntity(name)
		return nil
	}

	type localeColumn struct {
		index  int
		locale catalog.Locale
	}
	keyIndex, commentIndex := -1, -1
	var columns []localeColumn
	var declared []catalog.Locale
	seen := make(map[string]string)
	for i, v := range rows[0] {
		header := strings.TrimSpace(cell(v))
		switch {
		case header == "":
		case strings.EqualFold(header, keyColumn):
			keyIndex = i
		case strings.EqualFold(header, commentColumn):
			commentIndex = i
		default:
			l := catalog.ParseLocale(header)
			id := strings.ToLower(string(l))
			if prev, ok := seen[id]; ok {
				return fmt.Errorf("columns %q and %q name the same locale", prev, header)
			}
			seen[id] = header
			columns = append(columns, localeColumn{index: i, locale: l})
			declared = append(declared, l)
		}
	}
	if keyIndex < 0 {
		return fmt.Errorf("missing %q column", keyColumn)
	}

	entity := r.NewEntity(name, declared...)
	for _, row := range rows[1:] {
		key := parse(row, keyIndex)
		if key == "" {
			continue
		}
		values := make(map[catalog.Locale]string)
		for _, c := range columns {
			if c.index < len(row) {
				values[c.locale] = cell(row[c.index])
			}
		}
		entity.Add(key, values).Comment = parse(row, commentIndex)
	}
	return nil
}

func cell(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func parse(row []interface{}, index int) string {
	if index >= 0 && index < len(row) {
		return strings.TrimSpace(cell(row[index]))
	}
	return ""
}

// getClient uses a Context and Config to retrieve a Token
// then generate a Client. It returns the generated Client.
func getClient(ctx context.Context, config *oauth2.Config, cacheFile string) (*http.Client, error) {
	if cacheFile == "" {
		var err error
		cacheFile, err = tokenCacheFile()
		if err != nil {
			return nil, fmt.Errorf("locate token cache: %w", err)
		}
	}
	tok, err := tokenFromFile(cacheFile)
	if err != nil {
		tok, err = getTokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(cacheFile, tok); err != nil {
			return nil, err
		}
	}
	return config.Client(ctx, tok), nil
}

// getTokenFromWeb uses Config to request a Token.
func getTokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Go to the following link in your browser then type the "+
		"authorization code: \n%v\n", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	tok, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("retrieve token from web: %w", err)
	}
	return tok, nil
}

// tokenCacheFile generates credential file path/filename.
func tokenCacheFile() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", err
	}
	tokenCacheDir := filepath.Join(usr.HomeDir, ".credentials")
	if err := os.MkdirAll(tokenCacheDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(tokenCacheDir,
		url.QueryEscape("sheets.googleapis.com-github-bleeding182-stringsexport.json")), nil
}

// tokenFromFile retrieves a Token from a given file path.
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(t)
	return t, err
}

// saveToken uses a file path to create a file and store the token in it.
func saveToken(file string, token *oauth2.Token) error {
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
