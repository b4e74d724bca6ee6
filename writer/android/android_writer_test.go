package android

import (
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bleeding182/stringsexport/writer"
)

type resources struct {
	Strings []struct {
		Name  string `xml:"name,attr"`
		Value string `xml:",chardata"`
	} `xml:"string"`
}

func parseFile(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var r resources
	if err := xml.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
	out := make(map[string]string, len(r.Strings))
	for _, s := range r.Strings {
		out[s.Name] = s.Value
	}
	return out
}

func TestFolder(t *testing.T) {
	if got := Folder("neutral"); got != "values" {
		t.Errorf("Folder(neutral) = %q", got)
	}
	if got := Folder("de"); got != "values-de" {
		t.Errorf("Folder(de) = %q", got)
	}
}

func TestEncode(t *testing.T) {
	bucket := writer.Bucket{
		"b_title":  "Title",
		"a_empty":  "",
		"c_blank":  " \t\n",
		"a_escape": `Tom & "Jerry" <3`,
	}
	data, err := Encode(bucket, writer.Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "<resources>\n" +
		`  <string name="a_escape">Tom &amp; &#34;Jerry&#34; &lt;3</string>` + "\n" +
		`  <string name="b_title">Title</string>` + "\n" +
		"</resources>\n"
	if string(data) != want {
		t.Fatalf("Encode =\n%s\nwant\n%s", data, want)
	}
}

func TestEncode_Empty(t *testing.T) {
	data, err := Encode(writer.Bucket{"k": "  "}, writer.Options{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != "<resources></resources>\n" {
		t.Fatalf("Encode = %q", data)
	}
}

func TestEncode_Options(t *testing.T) {
	t.Run("Headers", func(t *testing.T) {
		data, err := Encode(writer.Bucket{"k": "v"}, writer.Options{Headers: []string{"Do not modify"}})
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		want := "<!-- Do not modify -->\n<resources>\n  <string name=\"k\">v</string>\n</resources>\n"
		if string(data) != want {
			t.Fatalf("Encode = %q", data)
		}
	})
	t.Run("InvalidHeader", func(t *testing.T) {
		if _, err := Encode(writer.Bucket{}, writer.Options{Headers: []string{"a -- b"}}); err == nil {
			t.Fatal("expected error for header containing --")
		}
	})
	t.Run("NormalizeFormat", func(t *testing.T) {
		data, err := Encode(writer.Bucket{"k": "%@ has %1$@"}, writer.Options{NormalizeFormat: true})
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		want := "<resources>\n  <string name=\"k\">%s has %1$s</string>\n</resources>\n"
		if string(data) != want {
			t.Fatalf("Encode = %q", data)
		}
	})
}

func TestWrite_RoundTrip(t *testing.T) {
	root := t.TempDir()
	bucket := writer.Bucket{
		"Greeting":  "Hallo",
		"Multiline": "line one\nline two",
		"Quote":     `it's "quoted" & <b>bold</b>`,
		"Empty":     "",
		"Spaces":    "   ",
	}
	path, err := Write("de", bucket, root, writer.Options{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want := filepath.Join(root, "values-de", "strings.xml"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	got := parseFile(t, path)
	if len(got) != 3 {
		t.Fatalf("parsed %d entries: %v", len(got), got)
	}
	for _, k := range []string{"Greeting", "Multiline", "Quote"} {
		if got[k] != bucket[k] {
			t.Errorf("%s = %q, want %q", k, got[k], bucket[k])
		}
	}
}

func TestWrite_Overwrite(t *testing.T) {
	root := t.TempDir()
	if _, err := Write("neutral", writer.Bucket{"a": "1", "b": "2"}, root, writer.Options{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	path, err := Write("neutral", writer.Bucket{"a": "3"}, root, writer.Options{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	got := parseFile(t, path)
	if len(got) != 1 || got["a"] != "3" {
		t.Fatalf("parsed %v", got)
	}
}

func TestWrite_Errors(t *testing.T) {
	t.Run("Directory", func(t *testing.T) {
		root := t.TempDir()
		if err := os.WriteFile(filepath.Join(root, "values-de"), nil, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := Write("de", writer.Bucket{"k": "v"}, root, writer.Options{})
		var dirErr *writer.DirectoryError
		if !errors.As(err, &dirErr) {
			t.Fatalf("err = %v, want DirectoryError", err)
		}
	})
	t.Run("File", func(t *testing.T) {
		root := t.TempDir()
		if err := os.MkdirAll(filepath.Join(root, "values", "strings.xml"), 0o755); err != nil {
			t.Fatal(err)
		}
		_, err := Write("neutral", writer.Bucket{"k": "v"}, root, writer.Options{})
		var writeErr *writer.WriteError
		if !errors.As(err, &writeErr) {
			t.Fatalf("err = %v, want WriteError", err)
		}
	})
}

func TestWrite_InvalidCharacters(t *testing.T) {
	cases := map[string]writer.Bucket{
		"ControlValue": {"ctrl": "a\x01b"},
		"InvalidUTF8":  {"badutf8": "a\xffb"},
		"ControlKey":   {"k\x02": "v"},
	}
	for name, bucket := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Write("de", bucket, t.TempDir(), writer.Options{})
			var writeErr *writer.WriteError
			if !errors.As(err, &writeErr) {
				t.Fatalf("err = %v, want WriteError", err)
			}
		})
	}
}

func TestWrite_AllowedCharacters(t *testing.T) {
	root := t.TempDir()
	bucket := writer.Bucket{"k": "tab\there\r\nemoji \U0001F600 end"}
	path, err := Write("neutral", bucket, root, writer.Options{})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := parseFile(t, path)["k"]; got != bucket["k"] {
		t.Fatalf("k = %q, want %q", got, bucket["k"])
	}
}
