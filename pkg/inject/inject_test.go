package inject_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-profilegen/pkg/inject"
)

const twoLineTemplate = `<script>
    const zh = (() => {
      let content = {}; // 初始化为空对象
      // CONFIG_PLACEHOLDER_ZH
      return content;
    })();
    const en = (() => {
      let content = {}; // 初始化为空对象
      // CONFIG_PLACEHOLDER_EN
      return content;
    })();
</script>`

const singleLineTemplate = `<script>
  var zh; { let content = {}; // CONFIG_PLACEHOLDER_ZH
  zh = content; }
  var en; { let content = {}; // CONFIG_PLACEHOLDER_EN
  en = content; }
</script>`

func TestApply_BothPayloadsTwoLine(t *testing.T) {
	payloads := map[inject.Locale]inject.Payload{
		inject.LocaleZH: inject.Value(map[string]any{"title": "你好"}),
		inject.LocaleEN: inject.Value(map[string]any{"title": "Hello"}),
	}

	res, err := inject.Apply(twoLineTemplate, payloads)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(res.Regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(res.Regions))
	}
	if len(res.Missing) != 0 {
		t.Fatalf("expected no missing locales, got %v", res.Missing)
	}

	wantText := map[inject.Locale]string{
		inject.LocaleZH: "content = {\n  \"title\": \"你好\"\n};",
		inject.LocaleEN: "content = {\n  \"title\": \"Hello\"\n};",
	}
	for _, region := range res.Regions {
		if region.Form != inject.FormTwoLine {
			t.Fatalf("locale %s: expected two-line form, got %s", region.Locale, region.Form)
		}
		if !region.Filled {
			t.Fatalf("locale %s: expected filled region", region.Locale)
		}
		if diff := cmp.Diff(wantText[region.Locale], res.Text(region)); diff != "" {
			t.Fatalf("locale %s literal mismatch (-want +got):\n%s", region.Locale, diff)
		}
	}

	// Everything outside the two spans must be byte-identical to the template.
	if diff := cmp.Diff(stripRegions(twoLineTemplate, twoLineMarkers(t)), stripResult(res)); diff != "" {
		t.Fatalf("content outside placeholder regions changed (-want +got):\n%s", diff)
	}
}

func TestApply_SingleLineScenario(t *testing.T) {
	payloads := map[inject.Locale]inject.Payload{
		inject.LocaleZH: inject.Value(map[string]any{"title": "你好"}),
		inject.LocaleEN: inject.Value(map[string]any{"title": "Hello"}),
	}

	got, err := inject.Inject(singleLineTemplate, payloads)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}

	want := `<script>
  var zh; { let content = {
  "title": "你好"
};
  zh = content; }
  var en; { let content = {
  "title": "Hello"
};
  en = content; }
</script>`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_ResetsLocaleWithoutPayload(t *testing.T) {
	payloads := map[inject.Locale]inject.Payload{
		inject.LocaleZH: inject.Value(map[string]any{"name": "亚历克斯"}),
	}

	for name, template := range map[string]string{
		"two-line":    twoLineTemplate,
		"single-line": singleLineTemplate,
	} {
		t.Run(name, func(t *testing.T) {
			res, err := inject.Apply(template, payloads)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}

			var en *inject.Region
			for i := range res.Regions {
				if res.Regions[i].Locale == inject.LocaleEN {
					en = &res.Regions[i]
				}
			}
			if en == nil {
				t.Fatalf("expected en region in %#v", res.Regions)
			}
			if en.Filled {
				t.Fatalf("expected en region to be reset, not filled")
			}

			text := res.Text(*en)
			if !strings.HasPrefix(text, "content = {};") || !strings.HasSuffix(text, "// CONFIG_PLACEHOLDER_EN") {
				t.Fatalf("unexpected reset text %q", text)
			}
			if string(en.Form) != name {
				t.Fatalf("expected reset in %s form, got %s", name, en.Form)
			}
			if !strings.Contains(res.Output, `"name": "亚历克斯"`) {
				t.Fatalf("zh payload missing from output:\n%s", res.Output)
			}
		})
	}
}

func TestApply_NoPayloadsKeepsTemplate(t *testing.T) {
	got, err := inject.Inject(twoLineTemplate, nil)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	if diff := cmp.Diff(twoLineTemplate, got); diff != "" {
		t.Fatalf("reset of a pristine template should be a no-op (-want +got):\n%s", diff)
	}
}

func TestApply_LiteralReparses(t *testing.T) {
	payloads := map[inject.Locale]inject.Payload{
		inject.LocaleEN: inject.Value(map[string]any{"a": 1}),
	}
	res, err := inject.Apply(singleLineTemplate, payloads)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	var literal string
	for _, region := range res.Regions {
		if region.Locale == inject.LocaleEN {
			literal = strings.TrimSuffix(strings.TrimPrefix(res.Text(region), "content = "), ";")
		}
	}
	if literal == "" {
		t.Fatalf("en literal not found")
	}

	var parsed map[string]any
	if err := yaml.Unmarshal([]byte(literal), &parsed); err != nil {
		t.Fatalf("literal does not re-parse: %v", err)
	}
	if diff := cmp.Diff(map[string]any{"a": 1}, parsed); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestApply_SecondPassIsNoOp(t *testing.T) {
	payloads := map[inject.Locale]inject.Payload{
		inject.LocaleZH: inject.Value(map[string]any{"a": 1}),
		inject.LocaleEN: inject.Value(map[string]any{"a": 2}),
	}
	first, err := inject.Inject(twoLineTemplate, payloads)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := inject.Apply(first, payloads)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if diff := cmp.Diff(first, second.Output); diff != "" {
		t.Fatalf("second pass changed output (-want +got):\n%s", diff)
	}
	if len(second.Missing) != 2 {
		t.Fatalf("expected both markers to be gone, missing=%v", second.Missing)
	}
}

func TestApply_PayloadTextIsNotAMarker(t *testing.T) {
	trap := "content = {}; // CONFIG_PLACEHOLDER_EN $0 ${1}"
	payloads := map[inject.Locale]inject.Payload{
		inject.LocaleZH: inject.Value(map[string]any{"note": trap}),
		inject.LocaleEN: inject.Value(map[string]any{"title": "Hello"}),
	}
	got, err := inject.Inject(twoLineTemplate, payloads)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	if !strings.Contains(got, `"note": "content = {}; // CONFIG_PLACEHOLDER_EN $0 ${1}"`) {
		t.Fatalf("zh payload was altered:\n%s", got)
	}
	if !strings.Contains(got, `"title": "Hello"`) {
		t.Fatalf("en payload missing:\n%s", got)
	}
}

func TestApply_MissingMarker(t *testing.T) {
	template := "<p>content = {}; // CONFIG_PLACEHOLDER_ZH</p>"
	payloads := map[inject.Locale]inject.Payload{
		inject.LocaleZH: inject.Value(map[string]any{"a": 1}),
		inject.LocaleEN: inject.Value(map[string]any{"a": 2}),
	}

	res, err := inject.Apply(template, payloads)
	if err != nil {
		t.Fatalf("lenient apply: %v", err)
	}
	if diff := cmp.Diff([]inject.Locale{inject.LocaleEN}, res.MissingPayload(payloads)); diff != "" {
		t.Fatalf("missing payload mismatch (-want +got):\n%s", diff)
	}

	_, err = inject.Apply(template, payloads, inject.WithStrict())
	if !errors.Is(err, inject.ErrPlaceholderNotFound) {
		t.Fatalf("expected ErrPlaceholderNotFound, got %v", err)
	}

	// A missing marker for a locale without payload is never an error.
	delete(payloads, inject.LocaleEN)
	if _, err := inject.Apply(template, payloads, inject.WithStrict()); err != nil {
		t.Fatalf("strict apply without en payload: %v", err)
	}
}

func TestApply_UnknownLocale(t *testing.T) {
	payloads := map[inject.Locale]inject.Payload{
		inject.Locale("fr"): inject.Value(map[string]any{}),
	}
	_, err := inject.Apply(twoLineTemplate, payloads)
	if !errors.Is(err, inject.ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
}

func TestApply_PrefersTwoLineForm(t *testing.T) {
	template := "content = {}; // CONFIG_PLACEHOLDER_ZH\ncontent = {}; // 初始化为空对象\n  // CONFIG_PLACEHOLDER_ZH"
	payloads := map[inject.Locale]inject.Payload{
		inject.LocaleZH: inject.Value(map[string]any{"a": 1}),
	}
	got, err := inject.Inject(template, payloads)
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	want := "content = {}; // CONFIG_PLACEHOLDER_ZH\ncontent = {\n  \"a\": 1\n};"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLocale(t *testing.T) {
	cases := map[string]inject.Locale{
		"zh":   inject.LocaleZH,
		" EN ": inject.LocaleEN,
	}
	for raw, want := range cases {
		got, err := inject.ParseLocale(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %s, got %s", raw, want, got)
		}
	}
	if _, err := inject.ParseLocale("de"); !errors.Is(err, inject.ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale for de, got %v", err)
	}
	if diff := cmp.Diff([]inject.Locale{inject.LocaleZH, inject.LocaleEN}, inject.Locales()); diff != "" {
		t.Fatalf("locale order mismatch (-want +got):\n%s", diff)
	}
}

type span struct{ start, end int }

func twoLineMarkers(t *testing.T) []span {
	t.Helper()
	var spans []span
	for _, tag := range []string{"ZH", "EN"} {
		marker := "content = {}; // 初始化为空对象\n      // CONFIG_PLACEHOLDER_" + tag
		idx := strings.Index(twoLineTemplate, marker)
		if idx < 0 {
			t.Fatalf("fixture marker %s not found", tag)
		}
		spans = append(spans, span{idx, idx + len(marker)})
	}
	return spans
}

func stripRegions(s string, spans []span) []string {
	var parts []string
	cursor := 0
	for _, sp := range spans {
		parts = append(parts, s[cursor:sp.start])
		cursor = sp.end
	}
	return append(parts, s[cursor:])
}

func stripResult(res inject.Result) []string {
	spans := make([]span, 0, len(res.Regions))
	for _, region := range res.Regions {
		spans = append(spans, span{region.Start, region.End})
	}
	return stripRegions(res.Output, spans)
}

func TestPlaceholder(t *testing.T) {
	got, ok := inject.Placeholder(inject.LocaleEN)
	if !ok || got != "// CONFIG_PLACEHOLDER_EN" {
		t.Fatalf("Placeholder(en) = %q, %v", got, ok)
	}
	if _, ok := inject.Placeholder("fr"); ok {
		t.Fatalf("expected no placeholder for an unknown locale")
	}
}
