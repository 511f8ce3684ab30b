// Package inject writes localized content payloads into the placeholder regions
// of a profile page template. A template carries one marker per locale, e.g.
//
//	content = {}; // 初始化为空对象
//	      // CONFIG_PLACEHOLDER_ZH
//
// or the single-line fallback `content = {}; // CONFIG_PLACEHOLDER_ZH`. Apply
// locates every marker on the pristine template first and then splices the
// replacements in, so the result never depends on the text of a payload and
// nothing outside the located regions changes.
package inject
