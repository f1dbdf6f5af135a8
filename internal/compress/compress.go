// Package compress provides transparent decompression of dataset files.
// Contest datasets are commonly shipped zstd- or lz4-compressed; the
// codec reads plain bytes, so the blob stream is sniffed and unwrapped
// here before decoding.
package compress

import (
	"bufio"
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	lz4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
)

// NewReader wraps r with the decompressor matching its leading magic
// bytes. Streams that are neither zstd nor lz4 frames pass through
// unchanged, including streams shorter than a magic number.
func NewReader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, 256*1024)

	magic, err := br.Peek(4)
	if err != nil {
		// Too short to carry a frame header; let the codec report it.
		return br, nil
	}

	switch {
	case bytes.Equal(magic, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	case bytes.Equal(magic, lz4Magic):
		return lz4.NewReader(br), nil
	default:
		return br, nil
	}
}
