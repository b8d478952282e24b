package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Validator is implemented by response schemas that check their own shape
// after decoding.
type Validator interface {
	Validate() error
}

// List decodes either a bare JSON array or an object wrapping the array under
// one of the keys "data", "user", "users" or "items". Elements implementing
// Validator are checked by Validate.
type List[T any] []T

var listEnvelopeKeys = []string{"data", "user", "users", "items"}

// UnmarshalJSON implements json.Unmarshaler.
func (l *List[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = nil
		return nil
	}
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	if data[0] != '{' {
		return fmt.Errorf("list: expected array or object, got %q", data[:1])
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	for _, key := range listEnvelopeKeys {
		raw, ok := envelope[key]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '{' {
			// Paginated envelopes nest the array one level deeper.
			var inner List[T]
			if err := json.Unmarshal(raw, &inner); err != nil {
				return err
			}
			*l = inner
			return nil
		}
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	return fmt.Errorf("list: no array under %v", listEnvelopeKeys)
}

// Validate checks every element that knows how to.
func (l List[T]) Validate() error {
	for i := range l {
		if v, ok := any(l[i]).(Validator); ok {
			if err := v.Validate(); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

// Object decodes either a bare object or one wrapped under "data".
type Object[T any] struct {
	Value T
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Object[T]) UnmarshalJSON(data []byte) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(bytes.TrimSpace(envelope.Data)) > 0 && envelope.Data[0] == '{' {
		return json.Unmarshal(envelope.Data, &o.Value)
	}
	return json.Unmarshal(data, &o.Value)
}

// Validate delegates to the wrapped value.
func (o Object[T]) Validate() error {
	if v, ok := any(o.Value).(Validator); ok {
		return v.Validate()
	}
	return nil
}
