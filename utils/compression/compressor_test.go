// Copyright (C) 2024-2026, the besu-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alyokaz/besu/utils/units"
)

func TestCompressDecompress(t *testing.T) {
	for _, typ := range []Type{TypeNone, TypeGzip, TypeZstd} {
		t.Run(typ.String(), func(t *testing.T) {
			require := require.New(t)

			compressor, err := NewCompressor(typ, units.MiB)
			require.NoError(err)

			msg := bytes.Repeat([]byte("trie log payload "), 512)

			compressed, err := compressor.Compress(msg)
			require.NoError(err)

			decompressed, err := compressor.Decompress(compressed)
			require.NoError(err)
			require.Equal(msg, decompressed)
		})
	}
}

func TestCompressDeterministic(t *testing.T) {
	for _, typ := range []Type{TypeNone, TypeGzip, TypeZstd} {
		t.Run(typ.String(), func(t *testing.T) {
			require := require.New(t)

			compressor, err := NewCompressor(typ, units.MiB)
			require.NoError(err)

			msg := bytes.Repeat([]byte{0xab, 0xcd}, 2048)

			first, err := compressor.Compress(msg)
			require.NoError(err)
			second, err := compressor.Compress(msg)
			require.NoError(err)
			require.Equal(first, second)
		})
	}
}

func TestCompressTooLarge(t *testing.T) {
	for _, typ := range []Type{TypeGzip, TypeZstd} {
		t.Run(typ.String(), func(t *testing.T) {
			require := require.New(t)

			compressor, err := NewCompressor(typ, 8)
			require.NoError(err)

			_, err = compressor.Compress(make([]byte, 9))
			require.ErrorIs(err, ErrMsgTooLarge)
		})
	}
}

func TestDecompressTooLarge(t *testing.T) {
	for _, typ := range []Type{TypeGzip, TypeZstd} {
		t.Run(typ.String(), func(t *testing.T) {
			require := require.New(t)

			large, err := NewCompressor(typ, units.MiB)
			require.NoError(err)

			compressed, err := large.Compress(make([]byte, 1024))
			require.NoError(err)

			small, err := NewCompressor(typ, 16)
			require.NoError(err)

			_, err = small.Decompress(compressed)
			require.ErrorIs(err, ErrDecompressedMsgTooLarge)
		})
	}
}

func TestTypeFromString(t *testing.T) {
	require := require.New(t)

	for _, typ := range []Type{TypeNone, TypeGzip, TypeZstd} {
		parsed, err := TypeFromString(typ.String())
		require.NoError(err)
		require.Equal(typ, parsed)
	}

	_, err := TypeFromString("lz4")
	require.ErrorIs(err, errUnknownCompressionType)
}
