package locator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/mailru/easyjson"
	"github.com/paulmach/orb"
	"github.com/royalcat/orthtree/geomodel"
	"github.com/royalcat/orthtree/orthtree"
	"github.com/royalcat/orthtree/snapshot"
)

// LoadFromReader builds a locator from a snapshot or, when no snapshot magic
// bytes are found, from a JSON array of geomodel.Record.
// Records outside bound are skipped.
func LoadFromReader(r io.Reader, bound orb.Bound, opts ...Option) (*Locator, error) {
	options := loadOptions(opts...)
	log := options.logger

	log.Info("Loading locator points from reader")
	records, err := readRecords(bufio.NewReader(r), log)
	if err != nil {
		return nil, err
	}

	l, err := New(bound, opts...)
	if err != nil {
		return nil, err
	}

	skipped := 0
	for _, rec := range records {
		err := l.Add(orb.Point{rec.X, rec.Y}, rec.Info())
		if errors.Is(err, orthtree.ErrOutOfBounds) {
			skipped++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("error adding record %d: %w", rec.ID, err)
		}
	}
	if skipped > 0 {
		log.Warn("Skipped records outside the locator bound", slog.Int("skipped", skipped))
	}
	log.Info("Locator loaded", slog.Int("points", l.Len()))

	return l, nil
}

func readRecords(br *bufio.Reader, log *slog.Logger) ([]geomodel.Record, error) {
	if snapshot.Is(br) {
		records, meta, err := snapshot.Load(br)
		if err != nil {
			return nil, fmt.Errorf("error loading snapshot: %w", err)
		}
		log.Info("Loaded snapshot",
			slog.Uint64("version", uint64(meta.Version)),
			slog.Time("date_created", meta.DateCreated),
		)
		return records, nil
	}

	log.Debug("Snapshot magic bytes not detected, reading json")
	data, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("error reading points: %w", err)
	}
	var records geomodel.RecordList
	if err := easyjson.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("error decoding points: %w", err)
	}
	return records, nil
}

// Save writes every location as a snapshot.
func (l *Locator) Save(w io.Writer, meta snapshot.Metadata) error {
	return snapshot.Save(w, l.Records(), meta)
}

func LoadFromFile(name string, bound orb.Bound, opts ...Option) (*Locator, error) {
	reader, err := OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("error opening points file: %w", err)
	}
	defer reader.Close()

	return LoadFromReader(reader, bound, opts...)
}

// OpenReader opens a points file, decompressing it when the name ends in .zst.
func OpenReader(name string) (io.ReadCloser, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open file: %w", err)
	}

	rc, err := Decompress(name, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return rc, nil
}

// Decompress wraps r with a zstd decoder when name ends in .zst. Closing the
// result closes r if it is an io.Closer.
func Decompress(name string, r io.Reader) (io.ReadCloser, error) {
	if !strings.HasSuffix(name, ".zst") {
		return readCloser{Reader: r, close: closerOf(r)}, nil
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("can`t create zstd reader: %w", err)
	}
	return readCloser{
		Reader: dec,
		close: func() error {
			dec.Close()
			return closerOf(r)()
		},
	}, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (rc readCloser) Close() error { return rc.close() }

func closerOf(r io.Reader) func() error {
	if c, ok := r.(io.Closer); ok {
		return c.Close
	}
	return func() error { return nil }
}
