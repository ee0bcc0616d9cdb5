package model

import (
	"fmt"
	"strings"
)

// Level is a record severity. The underlying value is the level's weight,
// so levels compare with the ordinary integer operators.
type Level int

const (
	Trace Level = 10
	Debug Level = 20
	Info  Level = 30
	Warn  Level = 40
	Error Level = 50
	Fatal Level = 60
)

var levelNames = map[Level]string{
	Trace: "trace",
	Debug: "debug",
	Info:  "info",
	Warn:  "warn",
	Error: "error",
	Fatal: "fatal",
}

// Levels returns every level in ascending order.
func Levels() []Level {
	return []Level{Trace, Debug, Info, Warn, Error, Fatal}
}

// LevelError reports a level name that is not one of the six known names.
type LevelError struct {
	Value string
}

func (e *LevelError) Error() string {
	return fmt.Sprintf("invalid level value: '%s'", e.Value)
}

// ParseLevel matches name against the known level names, ignoring case.
func ParseLevel(name string) (Level, error) {
	lower := strings.ToLower(name)
	for _, l := range Levels() {
		if levelNames[l] == lower {
			return l, nil
		}
	}
	return 0, &LevelError{Value: name}
}

// Compare returns -1, 0 or +1 depending on whether a is below, equal to or
// above b.
func Compare(a, b Level) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Enabled reports whether l passes a filter set at threshold.
func (l Level) Enabled(threshold Level) bool {
	return Compare(l, threshold) >= 0
}

func (l Level) Weight() int { return int(l) }

// Name returns the lower-case name used on the command line and in input.
func (l Level) Name() string {
	if n, ok := levelNames[l]; ok {
		return n
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// String returns the display name, e.g. "WARN".
func (l Level) String() string {
	return strings.ToUpper(l.Name())
}

func (l Level) MarshalText() ([]byte, error) {
	if _, ok := levelNames[l]; !ok {
		return nil, fmt.Errorf("unknown level weight %d", int(l))
	}
	return []byte(l.Name()), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Set and Type, together with String, let a *Level be used as a pflag.Value.
func (l *Level) Set(s string) error {
	return l.UnmarshalText([]byte(s))
}

func (l *Level) Type() string { return "level" }
