package inject

import (
	"regexp"
)

// Form names the textual shape a marker was found in.
type Form string

const (
	// FormTwoLine is the assignment with its initialiser comment followed, after
	// any whitespace, by the placeholder comment.
	FormTwoLine Form = "two-line"
	// FormSingleLine is the assignment immediately followed by the placeholder
	// comment on the same line.
	FormSingleLine Form = "single-line"
)

const (
	emptyAssignment = "content = {};"
	initComment     = "// 初始化为空对象"
	placeholderTag  = "// CONFIG_PLACEHOLDER_"
)

type form struct {
	kind    Form
	pattern *regexp.Regexp
}

type marker struct {
	locale  Locale
	comment string
	forms   []form
}

// markers is processed in order; forms within a marker are tried in order and
// the first match wins.
var markers = []marker{
	newMarker(LocaleZH, "ZH"),
	newMarker(LocaleEN, "EN"),
}

func newMarker(locale Locale, tag string) marker {
	comment := placeholderTag + tag
	return marker{
		locale:  locale,
		comment: comment,
		forms: []form{
			{
				kind:    FormTwoLine,
				pattern: regexp.MustCompile(regexp.QuoteMeta(emptyAssignment+" "+initComment) + `(\s+)` + regexp.QuoteMeta(comment)),
			},
			{
				kind:    FormSingleLine,
				pattern: regexp.MustCompile(regexp.QuoteMeta(emptyAssignment + " " + comment)),
			},
		},
	}
}

// match is a located marker in template coordinates.
type match struct {
	locale Locale
	form   Form
	start  int
	end    int
	// separator holds the whitespace between the two comments of a two-line
	// marker so a reset reproduces the original layout.
	separator string
}

func (m marker) locate(template string) (match, bool) {
	for _, f := range m.forms {
		loc := f.pattern.FindStringSubmatchIndex(template)
		if loc == nil {
			continue
		}
		found := match{
			locale: m.locale,
			form:   f.kind,
			start:  loc[0],
			end:    loc[1],
		}
		if len(loc) >= 4 && loc[2] >= 0 {
			found.separator = template[loc[2]:loc[3]]
		}
		return found, true
	}
	return match{}, false
}

func (m marker) empty(found match) string {
	if found.form == FormTwoLine {
		return emptyAssignment + " " + initComment + found.separator + m.comment
	}
	return emptyAssignment + " " + m.comment
}

func filledAssignment(literal []byte) string {
	return "content = " + string(literal) + ";"
}

// Placeholder returns the placeholder comment for locale, such as
// "// CONFIG_PLACEHOLDER_ZH".
func Placeholder(locale Locale) (string, bool) {
	for _, m := range markers {
		if m.locale == locale {
			return m.comment, true
		}
	}
	return "", false
}
