// Package snapshot stores location records in a compact binary cache.
//
// A snapshot starts with magic bytes and a little endian compatibility
// level. The rest is a zstd stream of length prefixed protobuf messages:
// metadata, the kind table, then blobs of at most pointsChunkSize points.
package snapshot

import (
	"bufio"
	"bytes"
	"errors"
	"time"
)

var magicBytes = []byte("ORTHSNAP")

const CompatibilityLevel uint32 = 1

const pointsChunkSize = 1000

// maxMessageSize bounds a single message read back from a snapshot.
const maxMessageSize = 256 << 20

var (
	ErrNotSnapshot        = errors.New("magic bytes not found")
	ErrUnsupportedVersion = errors.New("unsupported compatibility level")
	ErrMalformed          = errors.New("malformed snapshot")
)

type Metadata struct {
	Version     uint32
	DateCreated time.Time
}

// Is reports whether br starts with a snapshot without consuming anything.
func Is(br *bufio.Reader) bool {
	head, err := br.Peek(len(magicBytes))
	return err == nil && bytes.Equal(head, magicBytes)
}

// message field numbers
const (
	metadataVersion     = 1
	metadataDateCreated = 2

	kindsValue = 1

	blobPoint = 1

	pointX    = 1
	pointY    = 2
	pointID   = 3
	pointName = 4
	pointKind = 5
)

type kindTable struct {
	m     map[string]uint64
	kinds []string
}

func newKindTable() *kindTable {
	return &kindTable{m: make(map[string]uint64)}
}

func (kt *kindTable) Add(kind string) uint64 {
	if i, ok := kt.m[kind]; ok {
		return i
	}
	i := uint64(len(kt.kinds))
	kt.m[kind] = i
	kt.kinds = append(kt.kinds, kind)
	return i
}
