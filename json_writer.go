package holdings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose fields keep the order they were appended in,
// derived values included. Its zero value is ready to use.
type jsonObjectWriter struct {
	fields bytes.Buffer
	err    error
}

// Append marshals 'value' as the field 'key'.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	data, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal field %q: %w", key, err)
		return w
	}
	if w.fields.Len() > 0 {
		w.fields.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	w.fields.Write(k)
	w.fields.WriteByte(':')
	w.fields.Write(data)
	return w
}

// Optional is Append, skipped when 'value' is the zero value of its type.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON returns the object, or the first marshaling error.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	out := make([]byte, 0, w.fields.Len()+2)
	out = append(out, '{')
	out = append(out, w.fields.Bytes()...)
	return append(out, '}'), nil
}
