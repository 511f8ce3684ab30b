package content_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-profilegen/pkg/content"
)

func TestMarshalLiteral_PreservesDocumentOrder(t *testing.T) {
	src := `
basic:
  name: "Alex Morgan"
  roles:
    - "Full Stack Developer"
    - "Problem Solver"
about:
  description: "Builds things."
  skills: []
zeta: 1
alpha: true
empty: {}
nothing: ~
`
	payload := mustParse(t, src)

	got, err := payload.MarshalLiteral()
	if err != nil {
		t.Fatalf("marshal literal: %v", err)
	}

	want := `{
  "basic": {
    "name": "Alex Morgan",
    "roles": [
      "Full Stack Developer",
      "Problem Solver"
    ]
  },
  "about": {
    "description": "Builds things.",
    "skills": []
  },
  "zeta": 1,
  "alpha": true,
  "empty": {},
  "nothing": null
}`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("literal mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalLiteral_IntegerKeysKeepDocumentOrder(t *testing.T) {
	got, err := mustParse(t, "name: x\n2021: b\n2020: a\n").MarshalLiteral()
	if err != nil {
		t.Fatalf("marshal literal: %v", err)
	}
	want := "{\n  \"name\": \"x\",\n  \"2021\": \"b\",\n  \"2020\": \"a\"\n}"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Fatalf("literal mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalLiteral_Scalars(t *testing.T) {
	src := `
quoted: "42"
number: 42
float: 1.5
inf: .inf
nan: .nan
huge: 1e400
negative: -1.5e999
quotedHuge: "1e400"
date: 2021-03-01
unicode: "你好"
script: "</script><b>&"
1: numeric key
`
	got, err := mustParse(t, src).MarshalLiteral()
	if err != nil {
		t.Fatalf("marshal literal: %v", err)
	}

	for _, want := range []string{
		`"quoted": "42"`,
		`"number": 42`,
		`"float": 1.5`,
		`"inf": null`,
		`"nan": null`,
		`"huge": null`,
		`"negative": null`,
		`"quotedHuge": "1e400"`,
		`"date": "2021-03-01T00:00:00.000Z"`,
		`"unicode": "你好"`,
		`"script": "\u003c/script\u003e\u003cb\u003e\u0026"`,
		`"1": "numeric key"`,
	} {
		if !strings.Contains(string(got), want) {
			t.Fatalf("expected %s in literal:\n%s", want, got)
		}
	}
}

func TestMarshalLiteral_ExpandsAnchorsAndMerges(t *testing.T) {
	src := `
defaults: &defaults
  color: blue
  size: 1
item:
  <<: *defaults
  size: 2
copy: *defaults
`
	got, err := mustParse(t, src).MarshalLiteral()
	if err != nil {
		t.Fatalf("marshal literal: %v", err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(got, &decoded); err != nil {
		t.Fatalf("literal does not parse: %v", err)
	}
	want := map[string]any{
		"defaults": map[string]any{"color": "blue", "size": 1},
		"item":     map[string]any{"color": "blue", "size": 2},
		"copy":     map[string]any{"color": "blue", "size": 1},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Fatalf("decoded literal mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(string(got), "\"item\": {\n    \"color\": \"blue\",\n    \"size\": 2\n  }") {
		t.Fatalf("merged keys should precede explicit ones:\n%s", got)
	}
}

func TestMarshalLiteral_RoundTrip(t *testing.T) {
	src := "title: Hello\ncount: 3\ntags: [a, b]\nnested:\n  deep:\n    ok: false\n"
	payload := mustParse(t, src)
	literal, err := payload.MarshalLiteral()
	if err != nil {
		t.Fatalf("marshal literal: %v", err)
	}

	var want, got map[string]any
	if err := payload.Decode(&want); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if err := yaml.Unmarshal(literal, &got); err != nil {
		t.Fatalf("unmarshal literal: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyDocuments(t *testing.T) {
	for _, src := range []string{"", "   \n", "~", "# only a comment\n"} {
		payload, err := content.Parse([]byte(src), "empty.yaml")
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		if payload.Len() != 0 {
			t.Fatalf("expected empty payload for %q", src)
		}
		got, err := payload.MarshalLiteral()
		if err != nil {
			t.Fatalf("marshal %q: %v", src, err)
		}
		if string(got) != "{}" {
			t.Fatalf("expected {} for %q, got %s", src, got)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"not a mapping":  "- a\n- b\n",
		"scalar root":    "hello",
		"invalid yaml":   "a: [1, 2\n",
		"duplicate keys": "a: 1\na: 2\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := content.Parse([]byte(src), "zh.yaml")
			if err == nil {
				t.Fatalf("expected parse error")
			}
			var parseErr *content.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if parseErr.Source != "zh.yaml" {
				t.Fatalf("source mismatch: %q", parseErr.Source)
			}
			if !strings.Contains(err.Error(), "zh.yaml") {
				t.Fatalf("error should name the source: %v", err)
			}
		})
	}

	_, err := content.Parse([]byte("- a"), "x.yaml")
	if !errors.Is(err, content.ErrNotMapping) {
		t.Fatalf("expected ErrNotMapping, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "en.yaml")
	if err := os.WriteFile(path, []byte("title: Hello\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	payload, err := content.LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if payload.Source() != path {
		t.Fatalf("source mismatch: %s", payload.Source())
	}

	_, err = content.LoadFile(filepath.Join(dir, "zh.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"sample/zh.yaml": {Data: []byte("title: 你好\n")},
	}
	payload, err := content.LoadFS(fsys, "sample/zh.yaml")
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	var decoded map[string]string
	if err := payload.Decode(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["title"] != "你好" {
		t.Fatalf("unexpected payload: %#v", decoded)
	}
}

func TestSanitize(t *testing.T) {
	src := `
name: "<b>Alex</b> & co"
bio: "<script>alert('x')</script>Hello"
encoded: "&lt;script&gt;alert(1)&lt;/script&gt;"
double: "&amp;lt;b&amp;gt;bold&amp;lt;/b&amp;gt;"
plain: "a &lt; b & c"
"<i>key</i>": kept
list:
  - "<a href='javascript:alert(1)'>link</a>"
count: 3
`
	original := mustParse(t, src)
	cleaned := original.Sanitize(nil)

	var got map[string]any
	if err := cleaned.Decode(&got); err != nil {
		t.Fatalf("decode sanitized: %v", err)
	}
	want := map[string]any{
		"name":       "Alex & co",
		"bio":        "Hello",
		"encoded":    "",
		"double":     "bold",
		"plain":      "a < b & c",
		"<i>key</i>": "kept",
		"list":       []any{"link"},
		"count":      3,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sanitized payload mismatch (-want +got):\n%s", diff)
	}

	var before map[string]any
	if err := original.Decode(&before); err != nil {
		t.Fatalf("decode original: %v", err)
	}
	if before["name"] != "<b>Alex</b> & co" {
		t.Fatalf("sanitize must not mutate the original payload: %#v", before["name"])
	}
}

func TestSplitBundle(t *testing.T) {
	data := []byte("```yaml\nbasic:\n  name: \"亚历克斯\"\n```\n---\nbasic:\n  name: \"Alex\"\n---\n\n---\nextra: 1\n")
	bundle := content.SplitBundle(data)

	zh, en, ok := bundle.Localized()
	if !ok {
		t.Fatalf("expected a localized bundle, got %d documents", len(bundle.Documents))
	}
	if diff := cmp.Diff("basic:\n  name: \"亚历克斯\"", string(zh)); diff != "" {
		t.Fatalf("zh document mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff("basic:\n  name: \"Alex\"", string(en)); diff != "" {
		t.Fatalf("en document mismatch (-want +got):\n%s", diff)
	}
	if bundle.Extra() != 1 {
		t.Fatalf("expected 1 extra document, got %d", bundle.Extra())
	}

	single := content.SplitBundle([]byte("---\ntitle: only one\n"))
	if _, _, ok := single.Localized(); ok {
		t.Fatalf("single document bundle should not be localized")
	}
	if len(single.Documents) != 1 {
		t.Fatalf("expected 1 document, got %d", len(single.Documents))
	}

	// Separators must sit on their own line.
	inline := content.SplitBundle([]byte("title: a---b\n"))
	if len(inline.Documents) != 1 {
		t.Fatalf("inline dashes must not split, got %d documents", len(inline.Documents))
	}
}

func mustParse(t *testing.T, src string) *content.Payload {
	t.Helper()
	payload, err := content.Parse([]byte(src), "test.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return payload
}
