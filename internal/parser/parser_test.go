package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atikulmunna/jsonpretty/internal/model"
)

func TestParseRecord(t *testing.T) {
	rec, err := Parse([]byte(`{"time":"2024-01-01T00:00:00Z","level":"info","message":"hello","user":"bob"}`))
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01T00:00:00Z", rec.Time)
	assert.Equal(t, model.Info, rec.Level)
	assert.Equal(t, "hello", rec.Message)
	assert.Equal(t, []string{"user"}, rec.Extras.Keys())

	v, _ := rec.Extras.Get("user")
	assert.Equal(t, `"bob"`, string(v))
}

func TestParseLevelIgnoresCase(t *testing.T) {
	rec, err := Parse([]byte(`{"time":"t","level":"FaTaL","message":"m"}`))
	require.NoError(t, err)
	assert.Equal(t, model.Fatal, rec.Level)
}

func TestParseKeepsExtraOrder(t *testing.T) {
	line := `{"zz":1,"time":"t","b":[1, 2],"level":"warn","a":{"y":1,"x":2},"message":"m","m":null}`
	rec, err := Parse([]byte(line))
	require.NoError(t, err)

	assert.Equal(t, []string{"zz", "b", "a", "m"}, rec.Extras.Keys())

	v, _ := rec.Extras.Get("b")
	assert.Equal(t, `[1, 2]`, string(v))
	v, _ = rec.Extras.Get("a")
	assert.Equal(t, `{"y":1,"x":2}`, string(v))
	v, _ = rec.Extras.Get("m")
	assert.Equal(t, `null`, string(v))
}

func TestParseTrimsWhitespaceAroundValues(t *testing.T) {
	rec, err := Parse([]byte(`  { "time" : "t" , "level" : "debug" , "message" : "m" , "n" :  42  }  `))
	require.NoError(t, err)

	v, _ := rec.Extras.Get("n")
	assert.Equal(t, `42`, string(v))
}

func TestParseUnknownLevel(t *testing.T) {
	_, err := Parse([]byte(`{"time":"t","level":"verbose","message":"m"}`))
	require.Error(t, err)

	var lerr *model.LevelError
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "verbose", lerr.Value)
}

func TestParseMissingField(t *testing.T) {
	tests := []struct {
		line    string
		missing string
	}{
		{`{"level":"info","message":"m"}`, "time"},
		{`{"time":"t","message":"m"}`, "level"},
		{`{"time":"t","level":"info"}`, "message"},
		{`{}`, "time"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.line))
		var merr *MissingFieldError
		require.True(t, errors.As(err, &merr), "line %s: got %v", tt.line, err)
		assert.Equal(t, tt.missing, merr.Field)
	}
}

func TestParseWrongFieldType(t *testing.T) {
	_, err := Parse([]byte(`{"time":12,"level":"info","message":"m"}`))
	var terr *FieldTypeError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "time", terr.Field)
	assert.Equal(t, "number", terr.Got)
	assert.EqualError(t, err, `field "time": expected string, got number`)
}

func TestParseSyntaxErrors(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"not json at all",
		`{"time":"t","level":"info","message":"m"`,
		`{"time":"t","level":"info","message":"m"} extra`,
		`[1,2,3]`,
		`"just a string"`,
		`{"time":"t","level":"info","message":"m","x":}`,
	}
	for _, line := range lines {
		_, err := Parse([]byte(line))
		require.Error(t, err, "line %q", line)

		var serr *SyntaxError
		assert.True(t, errors.As(err, &serr), "line %q: got %T %v", line, err, err)
		assert.NotEmpty(t, err.Error())
	}
}

func TestParseDuplicateExtraKeepsFirstPosition(t *testing.T) {
	rec, err := Parse([]byte(`{"time":"t","level":"info","message":"m","a":1,"b":2,"a":3}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, rec.Extras.Keys())
	v, _ := rec.Extras.Get("a")
	assert.Equal(t, `3`, string(v))
}
