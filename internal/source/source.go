// Package source reads raw text into the line slices the pattern engine mines.
//
// Every line is kept, blank ones included, because blank lines are valid
// members of the zero-width bucket. A read failure discards the whole input.
package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrNoInput is returned when there are no files and stdin is a terminal.
var ErrNoInput = errors.New("no input: pass files or pipe text on stdin")

// maxLineSize bounds a single line. Crash reports carry long symbol lines.
const maxLineSize = 1024 * 1024

// maxOpenFiles bounds concurrent reads in ReadFiles.
const maxOpenFiles = 8

// ReadLines reads every line from r. Line terminators ("\n" or "\r\n") are
// removed; a final line without a terminator is kept.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}

// ReadFile reads every line of the file at path.
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}

// ReadFiles reads all paths concurrently and concatenates their lines in
// the order the paths were given. The first failure cancels the rest and no
// lines are returned.
func ReadFiles(ctx context.Context, paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	results := make([][]string, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxOpenFiles)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			lines, err := ReadFile(path)
			if err != nil {
				return err
			}
			results[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	lines := make([]string, 0, total)
	for _, r := range results {
		lines = append(lines, r...)
	}
	return lines, nil
}
