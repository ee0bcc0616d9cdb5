package model

import "encoding/json"

// Record represents a single parsed log line.
type Record struct {
	Time    string
	Level   Level
	Message string
	Extras  Fields // every other field, in source order
}

// Field is one extra key/value pair. Value holds the raw JSON text.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Fields keeps extra fields in the order they appeared in the source object.
type Fields []Field

// Set appends a field, or replaces the value of an existing key in place.
func (f *Fields) Set(key string, value json.RawMessage) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// Get returns the raw value stored under key.
func (f Fields) Get(key string) (json.RawMessage, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Keys lists field names in order.
func (f Fields) Keys() []string {
	keys := make([]string, len(f))
	for i, field := range f {
		keys[i] = field.Key
	}
	return keys
}
