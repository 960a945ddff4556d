package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"iter"
	"math"
	"slices"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/royalcat/orthtree/geomodel"
	"google.golang.org/protobuf/encoding/protowire"
)

// Save writes records to w.
func Save(w io.Writer, records iter.Seq[geomodel.Record], meta Metadata) error {
	if _, err := w.Write(magicBytes); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, CompatibilityLevel); err != nil {
		return err
	}

	kinds := newKindTable()
	var points []indexedRecord
	for r := range records {
		points = append(points, indexedRecord{Record: r, kind: kinds.Add(r.Kind)})
	}

	zw, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("can`t create zstd writer: %w", err)
	}

	kindsMsg := appendKinds(nil, kinds.kinds)
	if len(kindsMsg) > maxMessageSize {
		zw.Close()
		return fmt.Errorf("kind table of %d bytes exceeds %d", len(kindsMsg), maxMessageSize)
	}
	buf := appendMessage(nil, appendMetadata(nil, meta))
	buf = appendMessage(buf, kindsMsg)
	if _, err := zw.Write(buf); err != nil {
		zw.Close()
		return err
	}

	var blob []byte
	for chunk := range slices.Chunk(points, pointsChunkSize) {
		blob = blob[:0]
		for _, p := range chunk {
			blob = protowire.AppendTag(blob, blobPoint, protowire.BytesType)
			blob = protowire.AppendBytes(blob, appendPoint(nil, p))
		}
		if len(blob) > maxMessageSize {
			zw.Close()
			return fmt.Errorf("points blob of %d bytes exceeds %d", len(blob), maxMessageSize)
		}
		buf = appendMessage(buf[:0], blob)
		if _, err := zw.Write(buf); err != nil {
			zw.Close()
			return err
		}
	}

	return zw.Close()
}

type indexedRecord struct {
	geomodel.Record
	kind uint64
}

func appendMessage(b, msg []byte) []byte {
	b = protowire.AppendVarint(b, uint64(len(msg)))
	return append(b, msg...)
}

func appendMetadata(b []byte, meta Metadata) []byte {
	b = protowire.AppendTag(b, metadataVersion, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(meta.Version))
	if !meta.DateCreated.IsZero() {
		b = protowire.AppendTag(b, metadataDateCreated, protowire.BytesType)
		b = protowire.AppendString(b, meta.DateCreated.Format(time.RFC3339))
	}
	return b
}

func appendKinds(b []byte, kinds []string) []byte {
	for _, k := range kinds {
		b = protowire.AppendTag(b, kindsValue, protowire.BytesType)
		b = protowire.AppendString(b, k)
	}
	return b
}

func appendPoint(b []byte, p indexedRecord) []byte {
	b = protowire.AppendTag(b, pointX, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(p.X))
	b = protowire.AppendTag(b, pointY, protowire.Fixed64Type)
	b = protowire.AppendFixed64(b, math.Float64bits(p.Y))
	b = protowire.AppendTag(b, pointID, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(p.ID))
	b = protowire.AppendTag(b, pointName, protowire.BytesType)
	b = protowire.AppendString(b, p.Name)
	b = protowire.AppendTag(b, pointKind, protowire.VarintType)
	b = protowire.AppendVarint(b, p.kind)
	return b
}
