// Package ios writes locale buckets as iOS strings tables in <code>.lproj
// folders and, optionally, a Strings.swift accessor file.
package ios

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/iancoleman/strcase"

	"github.com/bleeding182/stringsexport/writer"
)

// DefaultFileName is used when Options.FileName is empty.
const DefaultFileName = "Localizable.strings"

// AccessorsFileName is the Swift file written to Options.AccessorsDir.
const AccessorsFileName = "Strings.swift"

const iosStringsTemplate = `{{range $header := $.Headers -}}
/* {{$header}} */
{{end -}}
{{range $s := $.Strings -}}
"{{.Key}}" = "{{.Value}}";
{{end}}
`

const iosStringsUtilTemplate = `import Foundation

{{range $header := $.Headers -}}
// {{$header}}
{{end -}}
// swiftlint:disable line_length
public struct Strings {
{{- range $s := $.Root}}
    public static let {{.Key | lowercamel}} = Strings.localized("{{.Key | swift}}", value: "{{.Value | swift}}")
{{- end}}
{{- range $g := $.Groups}}

    public struct {{.Name | camelcase}} {
    {{- range $s := $g.Strings}}
        public static let {{.Identifier | lowercamel}} = Strings.localized("{{.Key | swift}}", value: "{{.Value | swift}}")
    {{- end}}
    }
{{- end}}

    public static func localized(_ key: String, tableName: String? = {{$.Table}}, bundle: Bundle = Bundle.main, value: String, comment: String = "") -> String {
        return NSLocalizedString(key, tableName: tableName, bundle: bundle, value: value, comment: comment)
    }
}
`

var swiftEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

var funcs = template.FuncMap{
	"camelcase":  strcase.ToCamel,
	"lowercamel": strcase.ToLowerCamel,
	"swift":      swiftEscaper.Replace,
}

var (
	stringsTemplate = template.Must(template.New("strings").Parse(iosStringsTemplate))
	utilTemplate    = template.Must(template.New("util").Funcs(funcs).Parse(iosStringsUtilTemplate))
)

type localizedString struct {
	Key, Identifier, Value string
}

type group struct {
	Name    string
	Strings []localizedString
}

type stringsModel struct {
	Headers []string
	Strings []localizedString
}

type utilModel struct {
	Headers []string
	Table   string
	Root    []localizedString
	Groups  []group
}

// Folder returns the .lproj folder for a locale code.
func Folder(localeCode string) string {
	if writer.IsNeutral(localeCode) {
		return "Base.lproj"
	}
	return localeCode + ".lproj"
}

func fileName(opts writer.Options) string {
	if opts.FileName != "" {
		return opts.FileName
	}
	return DefaultFileName
}

// Write renders bucket to <rootDir>/<Folder>/<opts.FileName>, replacing any
// existing file.
func Write(localeCode string, bucket writer.Bucket, rootDir string, opts writer.Options) (string, error) {
	dir, err := writer.EnsureDir(rootDir, Folder(localeCode))
	if err != nil {
		return dir, err
	}
	path := filepath.Join(dir, fileName(opts))
	data, err := Encode(bucket, opts)
	if err != nil {
		return path, &writer.WriteError{Path: path, Err: err}
	}
	return path, writer.WriteFile(path, data)
}

// Encode renders one `"KEY" = "VALUE";` line per non-blank value, ordered by
// key, followed by a blank line. Quotes inside values are not escaped.
func Encode(bucket writer.Bucket, opts writer.Options) ([]byte, error) {
	model := stringsModel{Headers: opts.Headers}
	for _, key := range bucket.Keys() {
		value := bucket[key]
		if opts.NormalizeFormat {
			value = writer.ToIOSFormat(value)
		}
		model.Strings = append(model.Strings, localizedString{Key: key, Value: value})
	}
	var buf bytes.Buffer
	if err := stringsTemplate.Execute(&buf, model); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteAccessors writes Strings.swift to dir with one constant per non-blank
// key of bucket, grouped by the key's group prefix.
func WriteAccessors(dir string, bucket writer.Bucket, opts writer.Options) (string, error) {
	path := filepath.Join(dir, AccessorsFileName)
	if _, err := writer.EnsureDir(dir, ""); err != nil {
		return path, err
	}
	data, err := EncodeAccessors(bucket, opts)
	if err != nil {
		return path, &writer.WriteError{Path: path, Err: err}
	}
	return path, writer.WriteFile(path, data)
}

// EncodeAccessors renders the Strings.swift source for bucket.
func EncodeAccessors(bucket writer.Bucket, opts writer.Options) ([]byte, error) {
	table := "nil"
	if name := fileName(opts); name != DefaultFileName {
		table = fmt.Sprintf("%q", strings.TrimSuffix(name, filepath.Ext(name)))
	}
	model := utilModel{Headers: opts.Headers, Table: table}

	// Groups are keyed by their Swift struct name, so "main" and "Main" share
	// one struct. Constants are keyed by their qualified Swift name.
	groups := make(map[string]int)
	constants := make(map[string]string)
	for _, key := range bucket.Keys() {
		ck := writer.CompositeKeyOf(key)
		value := bucket[key]
		if opts.NormalizeFormat {
			value = writer.ToIOSFormat(value)
		}
		s := localizedString{Key: ck.Original(), Identifier: ck.Identifier(), Value: value}

		structName := strcase.ToCamel(ck.Group())
		id := "Strings." + strcase.ToLowerCamel(ck.Original())
		if ck.Group() != "" {
			id = "Strings." + structName + "." + strcase.ToLowerCamel(ck.Identifier())
		}
		if prev, ok := constants[id]; ok {
			return nil, fmt.Errorf("keys %q and %q both map to Swift constant %s", prev, key, id)
		}
		constants[id] = key

		if ck.Group() == "" {
			model.Root = append(model.Root, s)
			continue
		}
		i, ok := groups[structName]
		if !ok {
			i = len(model.Groups)
			groups[structName] = i
			model.Groups = append(model.Groups, group{Name: ck.Group()})
		}
		model.Groups[i].Strings = append(model.Groups[i].Strings, s)
	}

	var buf bytes.Buffer
	if err := utilTemplate.Execute(&buf, model); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
