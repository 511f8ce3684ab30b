package content

import (
	"bytes"
	"regexp"
)

var (
	documentSeparator = regexp.MustCompile(`(?m)^---[ \t]*\r?$`)
	codeFence         = regexp.MustCompile("(?m)\\A```[a-zA-Z]*[ \\t]*\\r?\\n|\\n```[ \\t]*\\z")
)

// Bundle is a combined document holding several YAML documents separated by
// `---` lines, as produced when both locales are generated in one pass. Empty
// documents are dropped; each kept document is trimmed and has a surrounding
// markdown code fence removed.
type Bundle struct {
	Documents [][]byte
}

// SplitBundle splits data on document separator lines.
func SplitBundle(data []byte) Bundle {
	var docs [][]byte
	for _, part := range documentSeparator.Split(string(data), -1) {
		trimmed := bytes.TrimSpace([]byte(part))
		trimmed = bytes.TrimSpace(codeFence.ReplaceAll(trimmed, nil))
		if len(trimmed) == 0 {
			continue
		}
		docs = append(docs, trimmed)
	}
	return Bundle{Documents: docs}
}

// Localized returns the Chinese and English documents. ok is false when the
// bundle holds fewer than two documents.
func (b Bundle) Localized() (zh, en []byte, ok bool) {
	if len(b.Documents) < 2 {
		return nil, nil, false
	}
	return b.Documents[0], b.Documents[1], true
}

// Extra reports how many documents follow the two localized ones.
func (b Bundle) Extra() int {
	if len(b.Documents) <= 2 {
		return 0
	}
	return len(b.Documents) - 2
}
