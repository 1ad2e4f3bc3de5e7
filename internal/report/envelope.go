package report

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/codegraft/codegraft/pkg/safeconv"
)

const (
	// envelopeMagic marks codegraft binary envelopes.
	envelopeMagic = "CGB1"

	// envelopeHeaderSize is magic bytes plus the raw and block payload
	// length fields.
	envelopeHeaderSize = 12
)

var (
	// ErrInvalidEnvelope indicates a malformed or truncated binary
	// envelope.
	ErrInvalidEnvelope = errors.New("invalid report envelope")

	// ErrPayloadTooLarge indicates a payload exceeding the envelope's
	// length field.
	ErrPayloadTooLarge = errors.New("report payload too large")
)

// EncodeEnvelope serializes value with msgpack, compresses the payload
// as an LZ4 block, and writes magic, raw length, block length, and the
// block. Incompressible payloads are stored raw; equal lengths in the
// header mark that case.
func EncodeEnvelope(value any, w io.Writer) error {
	payload, err := msgpack.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal envelope payload: %w", err)
	}

	if len(payload) > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(payload))
	}

	block := make([]byte, lz4.CompressBlockBound(len(payload)))

	written, err := lz4.CompressBlock(payload, block, nil)
	if err != nil {
		return fmt.Errorf("compress envelope payload: %w", err)
	}

	if written == 0 || written >= len(payload) {
		block = payload
		written = len(payload)
	} else {
		block = block[:written]
	}

	header := make([]byte, envelopeHeaderSize)
	copy(header[:4], envelopeMagic)
	binary.LittleEndian.PutUint32(header[4:8], safeconv.MustIntToUint32(len(payload)))
	binary.LittleEndian.PutUint32(header[8:12], safeconv.MustIntToUint32(written))

	_, err = w.Write(header)
	if err != nil {
		return fmt.Errorf("write envelope header: %w", err)
	}

	_, err = w.Write(block)
	if err != nil {
		return fmt.Errorf("write envelope payload: %w", err)
	}

	return nil
}

// DecodeEnvelope reads one binary envelope from r and unmarshals its
// payload into out.
func DecodeEnvelope(r io.Reader, out any) error {
	header := make([]byte, envelopeHeaderSize)

	_, err := io.ReadFull(r, header)
	if err != nil {
		return errors.Join(ErrInvalidEnvelope, err)
	}

	if !bytes.Equal(header[:4], []byte(envelopeMagic)) {
		return fmt.Errorf("%w: bad magic", ErrInvalidEnvelope)
	}

	rawLen := binary.LittleEndian.Uint32(header[4:8])
	blockLen := binary.LittleEndian.Uint32(header[8:12])

	block := make([]byte, blockLen)

	_, err = io.ReadFull(r, block)
	if err != nil {
		return errors.Join(ErrInvalidEnvelope, err)
	}

	payload := block

	if blockLen != rawLen {
		payload = make([]byte, rawLen)

		n, uncompressErr := lz4.UncompressBlock(block, payload)
		if uncompressErr != nil {
			return errors.Join(ErrInvalidEnvelope, uncompressErr)
		}

		if n != int(rawLen) {
			return fmt.Errorf("%w: short payload", ErrInvalidEnvelope)
		}
	}

	err = msgpack.Unmarshal(payload, out)
	if err != nil {
		return fmt.Errorf("unmarshal envelope payload: %w", err)
	}

	return nil
}
