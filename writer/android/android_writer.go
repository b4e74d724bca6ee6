// Package android writes locale buckets as Android string resources:
// values[-<code>]/strings.xml.
package android

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bleeding182/stringsexport/writer"
)

// FileName of the generated resource file inside each values folder.
const FileName = "strings.xml"

// Folder returns the values folder for a locale code.
func Folder(localeCode string) string {
	if writer.IsNeutral(localeCode) {
		return "values"
	}
	return "values-" + localeCode
}

// Write renders bucket to <rootDir>/<Folder>/strings.xml, replacing any
// existing file.
func Write(localeCode string, bucket writer.Bucket, rootDir string, opts writer.Options) (string, error) {
	dir, err := writer.EnsureDir(rootDir, Folder(localeCode))
	if err != nil {
		return dir, err
	}
	path := filepath.Join(dir, FileName)
	data, err := Encode(bucket, opts)
	if err != nil {
		return path, &writer.WriteError{Path: path, Err: err}
	}
	return path, writer.WriteFile(path, data)
}

// Encode renders a <resources> document with one <string> per non-blank
// value, ordered by key. No XML declaration is written.
func Encode(bucket writer.Bucket, opts writer.Options) ([]byte, error) {
	var buf bytes.Buffer
	for _, h := range opts.Headers {
		if strings.Contains(h, "--") {
			return nil, fmt.Errorf("header %q: comments must not contain \"--\"", h)
		}
		fmt.Fprintf(&buf, "<!-- %s -->\n", h)
	}

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	root := xml.StartElement{Name: xml.Name{Local: "resources"}}
	if err := enc.EncodeToken(root); err != nil {
		return nil, err
	}
	for _, key := range bucket.Keys() {
		value := bucket[key]
		if opts.NormalizeFormat {
			value = writer.ToAndroidFormat(value)
		}
		if err := checkChars(key); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		if err := checkChars(value); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		start := xml.StartElement{
			Name: xml.Name{Local: "string"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: key}},
		}
		if err := enc.EncodeToken(start); err != nil {
			return nil, err
		}
		if err := enc.EncodeToken(xml.CharData(value)); err != nil {
			return nil, err
		}
		if err := enc.EncodeToken(start.End()); err != nil {
			return nil, err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// checkChars rejects text xml.Encoder would replace with U+FFFD.
func checkChars(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("invalid UTF-8")
	}
	for i, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("character %U at byte %d is not allowed in XML", r, i)
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 ||
		r == 0x0A ||
		r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}
