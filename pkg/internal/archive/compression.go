package archive

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
)

func compressData(data []byte, alg Algorithm) ([]byte, error) {
	var b bytes.Buffer
	var w io.WriteCloser

	switch alg {
	case AlgorithmDeflate:
		w = gzip.NewWriter(&b)
	case AlgorithmSnappy:
		w = snappy.NewBufferedWriter(&b)
	case AlgorithmZstd:
		var err error
		w, err = zstd.NewWriter(&b)
		if err != nil {
			return nil, err
		}
	case AlgorithmBrotli:
		w = brotli.NewWriterLevel(&b, brotli.BestCompression)
	case AlgorithmLZ4:
		w = lz4.NewWriter(&b)
	default:
		return data, nil
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// decompressData inflates data and requires exactly want bytes out. Reading stops one byte past
// want so a lying length cannot make it inflate without bound.
func decompressData(data []byte, alg Algorithm, want int) ([]byte, error) {
	var r io.Reader

	switch alg {
	case AlgorithmDeflate:
		gz, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	case AlgorithmSnappy:
		r = snappy.NewReader(bytes.NewReader(data))
	case AlgorithmZstd:
		dec, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		r = dec
	case AlgorithmBrotli:
		r = brotli.NewReader(bytes.NewReader(data))
	case AlgorithmLZ4:
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		r = bytes.NewReader(data)
	}

	out := bytes.NewBuffer(make([]byte, 0, min(want, 1<<20)))
	if _, err := io.Copy(out, io.LimitReader(r, int64(want)+1)); err != nil {
		return nil, err
	}
	if out.Len() != want {
		return nil, fmt.Errorf("inflated to %d bytes, header says %d", out.Len(), want)
	}
	return out.Bytes(), nil
}
