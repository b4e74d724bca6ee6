// Package writer holds what the platform writers share: the per-locale
// bucket, output options and the errors a write can fail with.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bleeding182/stringsexport/catalog"
)

// Bucket maps resource keys to resolved values for a single locale.
type Bucket map[string]string

// Keys returns the keys with a non-blank value in lexicographic order.
func (b Bucket) Keys() []string {
	keys := make([]string, 0, len(b))
	for k, v := range b {
		if strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Writer renders one locale bucket below rootDir and returns the written file.
type Writer func(localeCode string, bucket Bucket, rootDir string, opts Options) (string, error)

// Options tune the generated files.
type Options struct {
	// FileName overrides the iOS strings file name.
	FileName string
	// Headers are emitted as comments at the top of each file.
	Headers []string
	// NormalizeFormat converts %s and %@ specifiers to the target platform.
	NormalizeFormat bool
	// AccessorsDir, if set, receives a Strings.swift for the neutral locale.
	AccessorsDir string
}

// DirectoryError reports that a locale folder could not be created.
type DirectoryError struct {
	Dir string
	Err error
}

func (e *DirectoryError) Error() string {
	return fmt.Sprintf("create directory %s: %v", e.Dir, e.Err)
}

func (e *DirectoryError) Unwrap() error { return e.Err }

// WriteError reports that a resource file could not be encoded or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// EnsureDir creates folder below rootDir if absent.
func EnsureDir(rootDir, folder string) (string, error) {
	dir := filepath.Join(rootDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dir, &DirectoryError{Dir: dir, Err: err}
	}
	return dir, nil
}

// WriteFile replaces path with data.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

var (
	iosStringFormat     = regexp.MustCompile(`%(\d\$)?@`)
	androidStringFormat = regexp.MustCompile(`%(\d\$)?s`)
)

// ToAndroidFormat converts %@ and %1$@ to %s and %1$s.
func ToAndroidFormat(s string) string {
	return iosStringFormat.ReplaceAllStringFunc(s, func(s string) string {
		return strings.Replace(s, "@", "s", 1)
	})
}

// ToIOSFormat converts %s and %1$s to %@ and %1$@.
func ToIOSFormat(s string) string {
	return androidStringFormat.ReplaceAllStringFunc(s, func(s string) string {
		return strings.Replace(s, "s", "@", 1)
	})
}

// IsNeutral reports whether localeCode is the invariant culture.
func IsNeutral(localeCode string) bool {
	return localeCode == catalog.Neutral
}
