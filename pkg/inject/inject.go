package inject

import (
	"fmt"
	"sort"
	"strings"
)

// Option configures Apply.
type Option func(*options)

type options struct {
	strict bool
}

// WithStrict makes a missing marker for a supplied payload an error instead of
// a reported miss.
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// Region describes one rewritten placeholder. Start and End are byte offsets
// into Result.Output.
type Region struct {
	Locale Locale
	Form   Form
	Filled bool
	Start  int
	End    int
}

// Result is the outcome of Apply.
type Result struct {
	Output  string
	Regions []Region
	// Missing lists locales whose marker was not found in the template,
	// whether or not a payload was supplied for them.
	Missing []Locale
}

// Text returns the rewritten text of region r.
func (r Result) Text(region Region) string {
	return r.Output[region.Start:region.End]
}

// MissingPayload reports whether a locale with a supplied payload was skipped
// because its marker was absent.
func (r Result) MissingPayload(payloads map[Locale]Payload) []Locale {
	var out []Locale
	for _, locale := range r.Missing {
		if payloads[locale] != nil {
			out = append(out, locale)
		}
	}
	return out
}

// Inject is Apply without the region report.
func Inject(template string, payloads map[Locale]Payload, opts ...Option) (string, error) {
	res, err := Apply(template, payloads, opts...)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Apply rewrites every known locale's placeholder in template. A locale with a
// non-nil payload gets `content = <literal>;`; a locale without one is reset to
// its empty marker in the form that was matched. Locales whose marker cannot be
// found are left alone and listed in Result.Missing.
func Apply(template string, payloads map[Locale]Payload, opts ...Option) (Result, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	for locale := range payloads {
		if !Known(locale) {
			return Result{}, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
		}
	}

	type edit struct {
		match
		text   string
		filled bool
	}

	var (
		edits   []edit
		missing []Locale
	)
	for _, m := range markers {
		payload := payloads[m.locale]
		found, ok := m.locate(template)
		if !ok {
			if cfg.strict && payload != nil {
				return Result{}, fmt.Errorf("%w: locale %s", ErrPlaceholderNotFound, m.locale)
			}
			missing = append(missing, m.locale)
			continue
		}

		if payload == nil {
			edits = append(edits, edit{match: found, text: m.empty(found)})
			continue
		}
		literal, err := payload.MarshalLiteral()
		if err != nil {
			return Result{}, fmt.Errorf("inject: serialise %s payload: %w", m.locale, err)
		}
		edits = append(edits, edit{match: found, text: filledAssignment(literal), filled: true})
	}

	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var (
		out     strings.Builder
		regions = make([]Region, 0, len(edits))
		cursor  int
	)
	out.Grow(len(template))
	for _, e := range edits {
		if e.start < cursor {
			return Result{}, fmt.Errorf("%w: locale %s", ErrOverlappingRegions, e.locale)
		}
		out.WriteString(template[cursor:e.start])
		start := out.Len()
		out.WriteString(e.text)
		regions = append(regions, Region{
			Locale: e.locale,
			Form:   e.form,
			Filled: e.filled,
			Start:  start,
			End:    out.Len(),
		})
		cursor = e.end
	}
	out.WriteString(template[cursor:])

	return Result{
		Output:  out.String(),
		Regions: regions,
		Missing: missing,
	}, nil
}
