// Package content loads the per-locale YAML documents that fill a profile page.
// A Payload keeps the parsed yaml.Node tree so the literal written into the
// template follows the author's key order rather than Go's map order.
package content
