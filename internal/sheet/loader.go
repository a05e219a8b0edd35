// SPDX-License-Identifier: Apache-2.0

package sheet

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when no registered reader accepts a source.
var ErrUnsupportedFormat = errors.New("unsupported sheet format")

type Loader struct {
	readers []Reader
}

// NewLoader creates a Loader trying the given readers in order.
func NewLoader(readers ...Reader) *Loader {
	return &Loader{readers: readers}
}

// LoadResult is the output of a successful load.
type LoadResult struct {
	Table      *Table
	ReaderUsed string
}

func (l *Loader) Load(ctx context.Context, source Source) (*Table, error) {
	result, err := l.LoadWithMeta(ctx, source)
	if err != nil {
		return nil, err
	}
	return result.Table, nil
}

func (l *Loader) LoadWithMeta(ctx context.Context, source Source) (LoadResult, error) {
	reader, err := l.selectReader(source)
	if err != nil {
		return LoadResult{}, err
	}

	table, err := reader.Read(ctx, source)
	if err != nil {
		return LoadResult{}, fmt.Errorf("%s reader failed on %q: %w", reader.Name(), source.Name, err)
	}

	return LoadResult{Table: table, ReaderUsed: reader.Name()}, nil
}

// selectReader returns the first registered reader that can handle the given source.
func (l *Loader) selectReader(source Source) (Reader, error) {
	for _, reader := range l.readers {
		if reader.CanHandle(source) {
			return reader, nil
		}
	}
	return nil, fmt.Errorf("%w: no reader found for %q (format hint: %q)", ErrUnsupportedFormat, source.Name, source.Format)
}

// RegisteredReaders returns the names of all registered readers.
func (l *Loader) RegisteredReaders() []string {
	names := make([]string, len(l.readers))
	for i, reader := range l.readers {
		names[i] = reader.Name()
	}
	return names
}
