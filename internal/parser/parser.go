package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/atikulmunna/jsonpretty/internal/model"
)

// Names of the fields every record must carry.
const (
	FieldTime    = "time"
	FieldLevel   = "level"
	FieldMessage = "message"
)

var api = jsoniter.ConfigCompatibleWithStandardLibrary

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// SyntaxError means the line is not a single well-formed JSON object.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string { return "invalid JSON: " + e.Err.Error() }
func (e *SyntaxError) Unwrap() error { return e.Err }

// MissingFieldError means one of time, level or message is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing field %q", e.Field)
}

// FieldTypeError means a required field holds something other than a string.
type FieldTypeError struct {
	Field string
	Got   string
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("field %q: expected string, got %s", e.Field, e.Got)
}

var errUnexpectedEOF = errors.New("unexpected end of input")

// ---------------------------------------------------------------------------
// Parser
// ---------------------------------------------------------------------------

// Parse decodes one JSON object into a Record. Fields other than time, level
// and message are kept, in source order, as raw JSON in Record.Extras.
func Parse(line []byte) (model.Record, error) {
	var rec model.Record

	iter := jsoniter.ParseBytes(api, line)
	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		if next == jsoniter.InvalidValue && iter.Error != nil {
			return rec, &SyntaxError{Err: errUnexpectedEOF}
		}
		return rec, &SyntaxError{Err: fmt.Errorf("expected an object, got %s", kindOf(next))}
	}

	var (
		fieldErr error
		seen     = make(map[string]bool, 3)
	)
	ok := iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		switch key {
		case FieldTime, FieldLevel, FieldMessage:
			switch next := it.WhatIsNext(); next {
			case jsoniter.StringValue:
			case jsoniter.InvalidValue:
				fieldErr = &SyntaxError{Err: fmt.Errorf("invalid value for field %q", key)}
				return false
			default:
				fieldErr = &FieldTypeError{Field: key, Got: kindOf(next)}
				return false
			}
			s := it.ReadString()
			if it.Error != nil {
				return false
			}
			seen[key] = true
			switch key {
			case FieldTime:
				rec.Time = s
			case FieldMessage:
				rec.Message = s
			case FieldLevel:
				lvl, err := model.ParseLevel(s)
				if err != nil {
					fieldErr = err
					return false
				}
				rec.Level = lvl
			}
		default:
			raw := it.SkipAndReturnBytes()
			if it.Error != nil {
				return false
			}
			rec.Extras.Set(key, append(json.RawMessage(nil), bytes.TrimSpace(raw)...))
		}
		return true
	})

	if fieldErr != nil {
		return model.Record{}, fieldErr
	}
	if !ok || iter.Error != nil {
		return model.Record{}, syntaxError(iter.Error)
	}

	// A clean end of input leaves io.EOF behind; anything else is trailing data.
	iter.WhatIsNext()
	if iter.Error != io.EOF {
		return model.Record{}, &SyntaxError{Err: errors.New("trailing data after object")}
	}

	for _, name := range []string{FieldTime, FieldLevel, FieldMessage} {
		if !seen[name] {
			return model.Record{}, &MissingFieldError{Field: name}
		}
	}
	return rec, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func syntaxError(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return &SyntaxError{Err: errUnexpectedEOF}
	}
	return &SyntaxError{Err: err}
}

// kindOf names a JSON value type for error messages.
func kindOf(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "boolean"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid value"
	}
}
