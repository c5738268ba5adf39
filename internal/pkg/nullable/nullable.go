// Package nullable holds JSON field types that tell an omitted field apart
// from an explicit null.
package nullable

import "encoding/json"

// String is unset when the field is absent, set with a nil Value for null,
// and set with a Value otherwise.
type String struct {
	Set   bool
	Value *string
}

func (s *String) UnmarshalJSON(data []byte) error {
	s.Set = true
	if string(data) == "null" {
		s.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.Value = &v
	return nil
}

// Of returns a set String holding v.
func Of(v string) String {
	return String{Set: true, Value: &v}
}

// Null returns a set String holding null.
func Null() String {
	return String{Set: true}
}
