// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package trielog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/alyokaz/besu/ids"
	"github.com/alyokaz/besu/utils/compression"
	"github.com/alyokaz/besu/utils/units"
)

// Trie log files start with a fixed header:
//
//	magic "BTLG" (4 bytes) | version (1 byte) | compression type (1 byte)
//
// followed by one frame per record:
//
//	block hash (32 bytes) | payload length (4 bytes, big endian) | payload
//
// Each frame's payload is compressed independently with the type named in
// the header, so a reader can skip records it does not want.
const (
	fileVersion = 1

	// maxFramePayloadSize bounds a single decompressed trie log. Guards
	// against corrupt or hostile length fields.
	maxFramePayloadSize = 256 * units.MiB
)

var (
	fileMagic = []byte("BTLG")

	// ErrInvalidFileFormat is returned when a trie log file fails to parse.
	ErrInvalidFileFormat  = errors.New("invalid trie log file")
	errBadMagic           = fmt.Errorf("%w: bad magic", ErrInvalidFileFormat)
	errUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrInvalidFileFormat)
	errTruncatedFrame     = fmt.Errorf("%w: truncated frame", ErrInvalidFileFormat)
)

type fileWriter struct {
	w          io.Writer
	compressor compression.Compressor
}

// newFileWriter writes the file header to [w] and returns a writer for the
// frames.
func newFileWriter(w io.Writer, compressionType compression.Type) (*fileWriter, error) {
	compressor, err := compression.NewCompressor(compressionType, maxFramePayloadSize)
	if err != nil {
		return nil, err
	}

	header := make([]byte, 0, len(fileMagic)+2)
	header = append(header, fileMagic...)
	header = append(header, fileVersion, byte(compressionType))
	if _, err := w.Write(header); err != nil {
		return nil, err
	}
	return &fileWriter{
		w:          w,
		compressor: compressor,
	}, nil
}

func (fw *fileWriter) WriteFrame(hash ids.ID, payload []byte) error {
	compressed, err := fw.compressor.Compress(payload)
	if err != nil {
		return err
	}

	frame := make([]byte, 0, ids.IDLen+4+len(compressed))
	frame = append(frame, hash[:]...)
	frame = binary.BigEndian.AppendUint32(frame, uint32(len(compressed)))
	frame = append(frame, compressed...)
	_, err = fw.w.Write(frame)
	return err
}

type fileReader struct {
	r          io.Reader
	compressor compression.Compressor
}

// newFileReader reads and validates the file header from [r] and returns a
// reader for the frames.
func newFileReader(r io.Reader) (*fileReader, error) {
	header := make([]byte, len(fileMagic)+2)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileFormat, err)
	}
	if string(header[:len(fileMagic)]) != string(fileMagic) {
		return nil, errBadMagic
	}
	if header[len(fileMagic)] != fileVersion {
		return nil, fmt.Errorf("%w: %d", errUnsupportedVersion, header[len(fileMagic)])
	}

	compressionType := compression.Type(header[len(fileMagic)+1])
	compressor, err := compression.NewCompressor(compressionType, maxFramePayloadSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileFormat, err)
	}
	return &fileReader{
		r:          r,
		compressor: compressor,
	}, nil
}

// ReadFrame returns the next record, or [io.EOF] after the last one. Any
// mid-frame truncation is reported as [ErrInvalidFileFormat].
func (fr *fileReader) ReadFrame() (ids.ID, []byte, error) {
	prefix := make([]byte, ids.IDLen+4)
	if _, err := io.ReadFull(fr.r, prefix); err != nil {
		if errors.Is(err, io.EOF) {
			return ids.Empty, nil, io.EOF
		}
		return ids.Empty, nil, errTruncatedFrame
	}

	hash, err := ids.ToID(prefix[:ids.IDLen])
	if err != nil {
		return ids.Empty, nil, err
	}

	length := binary.BigEndian.Uint32(prefix[ids.IDLen:])
	if length > maxFramePayloadSize {
		return ids.Empty, nil, fmt.Errorf("%w: frame of %d bytes", ErrInvalidFileFormat, length)
	}

	compressed := make([]byte, length)
	if _, err := io.ReadFull(fr.r, compressed); err != nil {
		return ids.Empty, nil, errTruncatedFrame
	}

	payload, err := fr.compressor.Decompress(compressed)
	if err != nil {
		return ids.Empty, nil, fmt.Errorf("%w: %s", ErrInvalidFileFormat, err)
	}
	return hash, payload, nil
}
