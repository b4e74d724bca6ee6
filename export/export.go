// Package export materializes a resource catalog as native Android and iOS
// resource trees, one folder per locale.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bleeding182/stringsexport/catalog"
	"github.com/bleeding182/stringsexport/writer"
	"github.com/bleeding182/stringsexport/writer/android"
	"github.com/bleeding182/stringsexport/writer/ios"
)

// Platform selects the output format.
type Platform int

const (
	Android Platform = iota
	IOS
)

var platforms = map[Platform]string{
	Android: "android",
	IOS:     "ios",
}

func (p Platform) String() string {
	if s, ok := platforms[p]; ok {
		return s
	}
	return fmt.Sprintf("Platform(%d)", int(p))
}

// ParsePlatform maps "android" and "ios" to a Platform.
func ParsePlatform(s string) (Platform, error) {
	for p, name := range platforms {
		if strings.EqualFold(s, name) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown platform %q", s)
}

func (p Platform) writer() (writer.Writer, error) {
	switch p {
	case Android:
		return android.Write, nil
	case IOS:
		return ios.Write, nil
	}
	return nil, fmt.Errorf("unknown platform %d", int(p))
}

// Options configure an export run.
type Options struct {
	writer.Options
	Logger *slog.Logger
}

// Result is the outcome for one locale.
type Result struct {
	Locale  string
	Path    string
	Entries int
	Err     error
}

// Report collects the outcome of every locale of one export run.
type Report struct {
	Platform  Platform
	Results   []Result
	Conflicts []Conflict
}

// Failed returns the results of the locales that could not be written.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err joins the errors of all failed locales. It is nil when every locale
// was written.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Failed() {
		errs = append(errs, fmt.Errorf("locale %s: %w", res.Locale, res.Err))
	}
	return errors.Join(errs...)
}

// ToAndroid writes <rootDir>/values[-<code>]/strings.xml for every locale.
func ToAndroid(c catalog.Catalog, rootDir string, opts Options) *Report {
	return Export(Android, c, rootDir, opts)
}

// ToIOS writes <rootDir>/<code>.lproj/<file> for every locale.
func ToIOS(c catalog.Catalog, rootDir string, opts Options) *Report {
	return Export(IOS, c, rootDir, opts)
}

// Export extracts the catalog once and writes every locale with the writer of
// platform. A failing locale is logged and recorded in the report; it does not
// stop the remaining locales.
func Export(platform Platform, c catalog.Catalog, rootDir string, opts Options) *Report {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("platform", platform.String()))

	report := &Report{Platform: platform}
	write, err := platform.writer()
	if err != nil {
		report.Results = append(report.Results, Result{Err: err})
		logger.Error("export failed", slog.String("error", err.Error()))
		return report
	}

	buckets, conflicts := extract(c)
	report.Conflicts = conflicts
	for _, cf := range conflicts {
		logger.Warn("duplicate key, last value wins",
			slog.String("locale", cf.Locale),
			slog.String("key", cf.Key),
			slog.String("entity", cf.Entity),
		)
	}

	codes := make([]string, 0, len(buckets))
	for code := range buckets {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		bucket := buckets[code]
		res := Result{Locale: code, Entries: len(bucket.Keys())}
		res.Path, res.Err = write(code, bucket, rootDir, opts.Options)
		if res.Err != nil {
			logger.Error("locale export failed",
				slog.String("locale", code),
				slog.String("path", res.Path),
				slog.String("error", res.Err.Error()),
			)
		} else {
			logger.Debug("locale exported",
				slog.String("locale", code),
				slog.String("path", res.Path),
				slog.Int("entries", res.Entries),
			)
		}
		report.Results = append(report.Results, res)
	}

	if platform == IOS && opts.AccessorsDir != "" {
		if bucket, ok := buckets[catalog.Neutral]; ok {
			path, err := ios.WriteAccessors(opts.AccessorsDir, bucket, opts.Options)
			if err != nil {
				logger.Error("swift accessors failed",
					slog.String("path", path),
					slog.String("error", err.Error()),
				)
				report.Results = append(report.Results, Result{Locale: catalog.Neutral, Path: path, Err: err})
			}
		}
	}

	logger.Info("export finished",
		slog.String("root", rootDir),
		slog.Int("locales", len(codes)),
		slog.Int("failed", len(report.Failed())),
	)
	return report
}
