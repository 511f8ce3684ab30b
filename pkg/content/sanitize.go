package content

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// StrictPolicy returns the shared policy used by Sanitize when none is given.
// It strips every element, keeping only text.
func StrictPolicy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// Sanitize returns a copy of the payload where every string value has been
// run through policy. The result is plain text again: entities produced by
// the policy are decoded because the literal is JSON, not HTML. Mapping keys
// are left untouched.
func (p *Payload) Sanitize(policy *bluemonday.Policy) *Payload {
	if p == nil || p.root == nil {
		return p
	}
	if policy == nil {
		policy = StrictPolicy()
	}
	s := sanitizer{policy: policy, seen: make(map[*yaml.Node]*yaml.Node)}
	return &Payload{source: p.source, root: s.clone(p.root, false)}
}

type sanitizer struct {
	policy *bluemonday.Policy
	seen   map[*yaml.Node]*yaml.Node
}

func (s sanitizer) clone(n *yaml.Node, isKey bool) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.AliasNode && n.Alias != nil {
		return s.clone(n.Alias, isKey)
	}
	if out, ok := s.seen[n]; ok && !isKey {
		return out
	}

	out := *n
	out.Content = nil
	out.Anchor = ""
	if !isKey {
		s.seen[n] = &out
	}

	switch n.Kind {
	case yaml.MappingNode:
		out.Content = make([]*yaml.Node, 0, len(n.Content))
		for i, child := range n.Content {
			out.Content = append(out.Content, s.clone(child, i%2 == 0))
		}
	case yaml.SequenceNode, yaml.DocumentNode:
		out.Content = make([]*yaml.Node, 0, len(n.Content))
		for _, child := range n.Content {
			out.Content = append(out.Content, s.clone(child, false))
		}
	case yaml.ScalarNode:
		if !isKey && n.ShortTag() == "!!str" {
			out.Value = s.text(n.Value)
		}
	}
	return &out
}

// maxSanitizePasses bounds the decode and sanitize loop in text.
const maxSanitizePasses = 8

// text decodes entities before sanitizing so encoded markup is seen by the
// policy, and repeats until decoding the policy output yields no new markup.
// A value that never settles is returned in its escaped, sanitized form.
func (s sanitizer) text(raw string) string {
	if !strings.ContainsAny(raw, "<>&") {
		return raw
	}
	out := raw
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(s.policy.Sanitize(html.UnescapeString(out)))
		if next == out {
			return out
		}
		out = next
	}
	return s.policy.Sanitize(out)
}
