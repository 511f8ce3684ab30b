package inject

import (
	"bytes"
	"encoding/json"
)

// Payload is the content assigned to one locale's placeholder. MarshalLiteral
// returns the object literal written after `content = `.
type Payload interface {
	MarshalLiteral() ([]byte, error)
}

// Value wraps an arbitrary Go value as a Payload, serialised as JSON with a
// two space indent. Map keys come out sorted.
func Value(v any) Payload {
	return valuePayload{value: v}
}

type valuePayload struct {
	value any
}

func (p valuePayload) MarshalLiteral() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p.value); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
