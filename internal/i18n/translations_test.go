package i18n

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pelletier/go-toml/v2"
)

func TestCatalogsDefineEveryMessage(t *testing.T) {
	want := append([]string(nil), AllMessages...)
	sort.Strings(want)

	for _, file := range catalogFiles {
		data, err := localeFS.ReadFile(file)
		if err != nil {
			t.Fatalf("read %s: %v", file, err)
		}
		var catalog map[string]map[string]string
		if err := toml.Unmarshal(data, &catalog); err != nil {
			t.Fatalf("parse %s: %v", file, err)
		}

		got := make([]string, 0, len(catalog))
		for id, entry := range catalog {
			if entry["other"] == "" {
				t.Fatalf("%s: message %s has no text", file, id)
			}
			got = append(got, id)
		}
		sort.Strings(got)

		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s message ids mismatch (-want +got):\n%s", file, diff)
		}
	}
}

func TestTranslatorRendersLanguage(t *testing.T) {
	zh, err := NewTranslator("zh")
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	got := zh.T(MsgOutputFile, map[string]any{"Path": "index.html"})
	if got != "输出文件: index.html" {
		t.Fatalf("unexpected zh message: %q", got)
	}
	if name := zh.LocaleName("en"); name != "英文" {
		t.Fatalf("unexpected locale name: %q", name)
	}

	en, err := NewTranslator("en")
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	got = en.T(MsgErrMissingContent, map[string]any{"Language": en.LocaleName("zh"), "Path": "/tmp/zh.yaml"})
	if got != "Error: Chinese config file does not exist: /tmp/zh.yaml" {
		t.Fatalf("unexpected en message: %q", got)
	}
}

func TestTranslatorUnknownKey(t *testing.T) {
	tr, err := NewTranslator("not-a-tag!")
	if err != nil {
		t.Fatalf("new translator: %v", err)
	}
	if tr.Lang() != "en" {
		t.Fatalf("expected english fallback, got %s", tr.Lang())
	}
	if got := tr.T("NoSuchMessage", nil); got != "NoSuchMessage" {
		t.Fatalf("expected key echo, got %q", got)
	}
}
