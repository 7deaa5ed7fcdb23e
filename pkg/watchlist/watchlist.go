// Package watchlist persists discovered pairs in a newline-delimited text file.
package watchlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/StudioSol/set"
	"github.com/raykavin/toppairs/pkg/core"
	"github.com/raykavin/toppairs/pkg/logger"
	"github.com/raykavin/toppairs/pkg/logger/zerolog"
)

// DefaultPath is the watchlist file used when none is configured
const DefaultPath = "top_pairs.txt"

const fileMode = 0o644

// File is an append-only watchlist stored as one pair per line
type File struct {
	path string
	log  logger.Logger
}

type Option func(*File)

// WithLogger sets the logger of the watchlist
func WithLogger(log logger.Logger) Option {
	return func(f *File) {
		f.log = log
	}
}

// New creates a watchlist backed by path. The file is not touched until Load
// or Append is called.
func New(path string, options ...Option) *File {
	if path == "" {
		path = DefaultPath
	}

	f := &File{
		path: path,
		log:  zerolog.NewNop(),
	}
	for _, option := range options {
		option(f)
	}
	return f
}

func (f *File) Path() string {
	return f.path
}

// Load returns the stored pairs in file order. Lines are trimmed and blank
// lines skipped. A missing file is an empty watchlist.
func (f *File) Load() (*set.LinkedHashSetString, error) {
	pairs := set.NewLinkedHashSetString()

	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.log.Infof("No existing file found. Creating new file: %s", f.path)
		return pairs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		pairs.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}

	return pairs, nil
}

// Pairs returns the stored pairs in file order
func (f *File) Pairs() ([]core.TradingPair, error) {
	pairs, err := f.Load()
	if err != nil {
		return nil, err
	}
	return Members(pairs), nil
}

// Append writes pairs at the end of the file, creating it when missing.
// Nothing is written for an empty slice.
func (f *File) Append(pairs []core.TradingPair) error {
	if len(pairs) == 0 {
		return nil
	}

	terminated, err := f.endsWithNewline()
	if err != nil {
		return err
	}

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("open watchlist: %w", err)
	}

	if err := writePairs(file, pairs, !terminated); err != nil {
		file.Close()
		return fmt.Errorf("write watchlist: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close watchlist: %w", err)
	}
	return nil
}

func writePairs(w io.Writer, pairs []core.TradingPair, newlineFirst bool) error {
	bw := bufio.NewWriter(w)
	if newlineFirst {
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	for _, pair := range pairs {
		if _, err := bw.WriteString(pair.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// endsWithNewline reports whether the file is missing, empty or terminated by
// a newline
func (f *File) endsWithNewline() (bool, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("open watchlist: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return false, fmt.Errorf("stat watchlist: %w", err)
	}
	if info.Size() == 0 {
		return true, nil
	}

	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read watchlist: %w", err)
	}
	return last[0] == '\n', nil
}

// Members converts a loaded set to pairs, keeping insertion order
func Members(pairs *set.LinkedHashSetString) []core.TradingPair {
	if pairs == nil {
		return nil
	}

	out := make([]core.TradingPair, 0)
	for pair := range pairs.Iter() {
		out = append(out, core.TradingPair(pair))
	}
	return out
}
