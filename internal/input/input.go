package input

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Stdin is the argument that names standard input.
const Stdin = "-"

// Input is one stream to read records from.
type Input struct {
	Name string
	open func() (io.ReadCloser, error)
}

// Open returns a reader for the input. The caller closes it.
func (in Input) Open() (io.ReadCloser, error) {
	return in.open()
}

// Resolve expands args into inputs, in argument order. No args means
// standard input. Each glob's matches are sorted; a pattern matching nothing
// is an error.
func Resolve(args []string, stdin io.Reader) ([]Input, error) {
	if len(args) == 0 {
		args = []string{Stdin}
	}

	var inputs []Input
	for _, arg := range args {
		if arg == Stdin {
			inputs = append(inputs, Input{
				Name: "<stdin>",
				open: func() (io.ReadCloser, error) { return io.NopCloser(stdin), nil },
			})
			continue
		}

		matches, err := expandGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to expand pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files matched %q", arg)
		}
		sort.Strings(matches)

		for _, m := range matches {
			path := m
			inputs = append(inputs, Input{
				Name: path,
				open: func() (io.ReadCloser, error) { return os.Open(path) },
			})
		}
	}
	return inputs, nil
}

// expandGlob resolves a pattern to matching file paths. Plain paths match
// themselves; recursive patterns like logs/**/*.json are supported.
func expandGlob(pattern string) ([]string, error) {
	return doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
}
