package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/atikulmunna/jsonpretty/internal/model"
	"github.com/atikulmunna/jsonpretty/internal/output"
	"github.com/atikulmunna/jsonpretty/internal/parser"
)

// Stats counts what happened to the lines of one or more streams.
type Stats struct {
	Lines       int
	Emitted     int
	Filtered    int
	ParseErrors int
}

// Processor reads newline-delimited JSON records and hands every record at
// or above Min to the renderer. Lines that fail to parse are echoed with the
// parse error.
type Processor struct {
	Min      model.Level
	Renderer output.Renderer
	Log      logrus.FieldLogger

	stats Stats
}

// New returns a Processor that drops records below threshold.
func New(threshold model.Level, r output.Renderer, log logrus.FieldLogger) *Processor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Processor{Min: threshold, Renderer: r, Log: log}
}

// Stats returns the counters accumulated so far.
func (p *Processor) Stats() Stats {
	return p.stats
}

// Process consumes r until end of input. It only fails on read or write
// errors; malformed lines never stop it.
func (p *Processor) Process(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if herr := p.handle(trimEOL(line)); herr != nil {
				return fmt.Errorf("failed to write output: %w", herr)
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// handle parses, filters and emits a single line.
func (p *Processor) handle(line string) error {
	p.stats.Lines++

	rec, err := parser.Parse([]byte(line))
	if err != nil {
		p.stats.ParseErrors++
		p.Log.WithError(err).Debugf("line %d did not parse", p.stats.Lines)
		return p.Renderer.RenderParseError(line, err)
	}

	if !rec.Level.Enabled(p.Min) {
		p.stats.Filtered++
		return nil
	}

	p.stats.Emitted++
	return p.Renderer.Render(rec)
}

// trimEOL drops a trailing "\n" or "\r\n".
func trimEOL(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
