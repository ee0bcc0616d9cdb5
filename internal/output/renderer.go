package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/atikulmunna/jsonpretty/internal/model"
)

// Renderer writes records to an output stream.
type Renderer interface {
	Render(rec model.Record) error
	RenderParseError(raw string, err error) error
}

// Options controls record formatting.
type Options struct {
	Color bool
}

// Values rendered longer than this go to the detail block.
const maxInlineWidth = 50

// Fields that carry emitter metadata and are never shown.
var hiddenFields = map[string]bool{
	"line":   true,
	"target": true,
	"file":   true,
	"pid":    true,
	"name":   true,
	"host":   true,
}

// ---------------------------------------------------------------------------
// Formatter
// ---------------------------------------------------------------------------

// Formatter turns a Record into display text. It holds no state besides its
// styles, so one Formatter can format any number of records.
type Formatter struct {
	levels  map[model.Level]lipgloss.Style
	message lipgloss.Style
	key     lipgloss.Style
}

// NewFormatter builds a Formatter. With opts.Color unset the output contains
// no escape sequences.
func NewFormatter(opts Options) *Formatter {
	r := lipgloss.NewRenderer(io.Discard)
	if opts.Color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	return &Formatter{
		levels: map[model.Level]lipgloss.Style{
			model.Trace: base.Foreground(lipgloss.Color("7")), // white
			model.Debug: base.Foreground(lipgloss.Color("3")), // yellow
			model.Info:  base.Foreground(lipgloss.Color("6")), // cyan
			model.Warn:  base.Foreground(lipgloss.Color("5")), // magenta
			model.Error: base.Foreground(lipgloss.Color("1")), // red
			model.Fatal: base.Reverse(true),
		},
		message: base.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0")),
		key:     base.Bold(true),
	}
}

// Format renders rec as "[time] LEVEL: message", an inline " (k=v,...)"
// suffix for short extras, a newline, then an indented block of long extras.
func (f *Formatter) Format(rec model.Record) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(rec.Time)
	b.WriteString("] ")
	b.WriteString(f.Level(rec.Level))
	b.WriteString(": ")
	b.WriteString(style(f.message, rec.Message))
	b.WriteString(f.Extras(rec.Extras))
	return b.String()
}

// Level returns the styled display name of l.
func (f *Formatter) Level(l model.Level) string {
	st, ok := f.levels[l]
	if !ok {
		return l.String()
	}
	return style(st, l.String())
}

// Extras renders the inline suffix, the newline that ends the main line, and
// the detail block.
func (f *Formatter) Extras(fields model.Fields) string {
	var short, long []string
	for _, field := range fields {
		if hiddenFields[field.Key] {
			continue
		}

		rendered, str, isString := renderValue(field.Value)
		key := style(f.key, field.Key)

		if strings.Contains(rendered, "\n") || len(rendered) > maxInlineWidth {
			value := rendered
			if isString {
				value = str
			}
			long = append(long, indent(key+": "+value))
		} else {
			short = append(short, key+"="+rendered)
		}
	}

	var b strings.Builder
	if len(short) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(short, ","))
		b.WriteString(")")
	}
	b.WriteString("\n")
	if len(long) > 0 {
		b.WriteString(strings.Join(long, "\n    --\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Text Renderer
// ---------------------------------------------------------------------------

// TextRenderer writes formatted records to w.
type TextRenderer struct {
	w         io.Writer
	formatter *Formatter
}

// NewTextRenderer returns a Renderer that writes formatted text to w.
func NewTextRenderer(w io.Writer, opts Options) *TextRenderer {
	return &TextRenderer{w: w, formatter: NewFormatter(opts)}
}

func (r *TextRenderer) Render(rec model.Record) error {
	_, err := io.WriteString(r.w, r.formatter.Format(rec))
	return err
}

// RenderParseError echoes a line that could not be parsed, followed by the
// reason.
func (r *TextRenderer) RenderParseError(raw string, err error) error {
	_, werr := fmt.Fprintf(r.w, "%s %v\n", raw, err)
	return werr
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// renderValue returns the display text of a raw JSON value. For strings it
// also returns the decoded string and isString=true.
func renderValue(raw json.RawMessage) (rendered, str string, isString bool) {
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &str); err == nil {
			if str == "" || strings.Contains(str, " ") {
				return `"` + str + `"`, str, true
			}
			return str, str, true
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw), "", false
	}
	return buf.String(), "", false
}

// indent prefixes every line of s with four spaces.
func indent(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	return "    " + strings.Join(lines, "\n    ")
}

// style applies st line by line so multi-line text is not padded to a block.
func style(st lipgloss.Style, s string) string {
	if !strings.Contains(s, "\n") {
		return st.Render(s)
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = st.Render(l)
	}
	return strings.Join(lines, "\n")
}
