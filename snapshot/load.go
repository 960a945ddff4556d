package snapshot

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/royalcat/orthtree/geomodel"
	"google.golang.org/protobuf/encoding/protowire"
)

// Load reads every record of a snapshot from r.
func Load(r io.Reader) ([]geomodel.Record, Metadata, error) {
	var meta Metadata

	magic := make([]byte, len(magicBytes))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, meta, fmt.Errorf("error reading magic bytes: %w", err)
	}
	if !bytes.Equal(magic, magicBytes) {
		return nil, meta, ErrNotSnapshot
	}

	var level uint32
	if err := binary.Read(r, binary.LittleEndian, &level); err != nil {
		return nil, meta, fmt.Errorf("error reading compatibility level: %w", err)
	}
	if level != CompatibilityLevel {
		return nil, meta, fmt.Errorf("%w: %d", ErrUnsupportedVersion, level)
	}

	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, meta, fmt.Errorf("can`t create zstd reader: %w", err)
	}
	defer zr.Close()
	br := bufio.NewReader(zr)

	msg, err := readMessage(br)
	if err != nil {
		return nil, meta, fmt.Errorf("error reading metadata: %w", err)
	}
	if meta, err = decodeMetadata(msg); err != nil {
		return nil, meta, err
	}

	msg, err = readMessage(br)
	if err != nil {
		return nil, meta, fmt.Errorf("error reading kinds: %w", err)
	}
	kinds, err := decodeKinds(msg)
	if err != nil {
		return nil, meta, err
	}

	var records []geomodel.Record
	for {
		msg, err := readMessage(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, meta, fmt.Errorf("error reading points: %w", err)
		}
		records, err = decodeBlob(records, msg, kinds)
		if err != nil {
			return nil, meta, err
		}
	}

	return records, meta, nil
}

// readMessage returns io.EOF only when the stream ends between messages.
func readMessage(br *bufio.Reader) ([]byte, error) {
	size, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, err
	}
	if size > maxMessageSize {
		return nil, fmt.Errorf("%w: message of %d bytes exceeds %d", ErrMalformed, size, maxMessageSize)
	}
	msg, err := io.ReadAll(io.LimitReader(br, int64(size)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if uint64(len(msg)) != size {
		return nil, fmt.Errorf("%w: message truncated at %d of %d bytes", ErrMalformed, len(msg), size)
	}
	return msg, nil
}

// skipField tells fields to skip a value visit did not consume.
const skipField = math.MinInt

// fields calls visit for every field of a message. visit returns the
// number of bytes it consumed, a negative protowire error code, or skipField.
func fields(b []byte, visit func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("%w: %w", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		n = visit(num, typ, b)
		if n == skipField {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %w", ErrMalformed, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return nil
}

func decodeMetadata(msg []byte) (Metadata, error) {
	var meta Metadata
	var date string
	err := fields(msg, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case num == metadataVersion && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			meta.Version = uint32(v)
			return n
		case num == metadataDateCreated && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			date = v
			return n
		}
		return skipField
	})
	if err != nil {
		return meta, err
	}
	if date != "" {
		meta.DateCreated, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return meta, fmt.Errorf("%w: date created: %w", ErrMalformed, err)
		}
	}
	return meta, nil
}

func decodeKinds(msg []byte) ([]string, error) {
	var kinds []string
	err := fields(msg, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != kindsValue || typ != protowire.BytesType {
			return skipField
		}
		v, n := protowire.ConsumeString(b)
		kinds = append(kinds, v)
		return n
	})
	return kinds, err
}

func decodeBlob(records []geomodel.Record, msg []byte, kinds []string) ([]geomodel.Record, error) {
	var pointErr error
	err := fields(msg, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != blobPoint || typ != protowire.BytesType {
			return skipField
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n
		}
		rec, err := decodePoint(v, kinds)
		if err != nil {
			pointErr = err
			return n
		}
		records = append(records, rec)
		return n
	})
	if pointErr != nil {
		return nil, pointErr
	}
	return records, err
}

func decodePoint(msg []byte, kinds []string) (geomodel.Record, error) {
	var rec geomodel.Record
	var kind uint64
	err := fields(msg, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch {
		case (num == pointX || num == pointY) && typ == protowire.Fixed64Type:
			v, n := protowire.ConsumeFixed64(b)
			if num == pointX {
				rec.X = math.Float64frombits(v)
			} else {
				rec.Y = math.Float64frombits(v)
			}
			return n
		case num == pointID && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			rec.ID = protowire.DecodeZigZag(v)
			return n
		case num == pointName && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			rec.Name = v
			return n
		case num == pointKind && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			kind = v
			return n
		}
		return skipField
	})
	if err != nil {
		return rec, err
	}
	if kind >= uint64(len(kinds)) {
		return rec, fmt.Errorf("%w: kind %d of point %d not in table of %d", ErrMalformed, kind, rec.ID, len(kinds))
	}
	rec.Kind = kinds[kind]
	return rec, nil
}
