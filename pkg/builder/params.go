package builder

import (
	"fmt"
	"strings"

	"github.com/joeydtaylor/eegcodec/pkg/internal/framecodec"
)

// ParamsFromEnv builds compression params from <prefix>_VERSION, <prefix>_FRAME_SIZE,
// <prefix>_KEEP, <prefix>_Q_BITS, <prefix>_WAVELET and <prefix>_LEVEL, falling back to
// DefaultCompressionParams for unset or unparsable values. The result is validated.
func ParamsFromEnv(prefix string) (CompressionParams, error) {
	prefix = strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(prefix)), "_")
	key := func(name string) string {
		if prefix == "" {
			return name
		}
		return prefix + "_" + name
	}

	def := DefaultCompressionParams()
	params := CompressionParams{
		WaveletName: EnvOr(key("WAVELET"), def.WaveletName),
	}

	var err error
	if params.Version, err = envUint8(key("VERSION"), def.Version); err != nil {
		return CompressionParams{}, err
	}
	if params.FrameSize, err = envUint32(key("FRAME_SIZE"), def.FrameSize); err != nil {
		return CompressionParams{}, err
	}
	if params.KeepNumCoeff, err = envUint32(key("KEEP"), def.KeepNumCoeff); err != nil {
		return CompressionParams{}, err
	}
	if params.QBits, err = envUint8(key("Q_BITS"), def.QBits); err != nil {
		return CompressionParams{}, err
	}
	if params.WaveletLevel, err = envUint8(key("LEVEL"), def.WaveletLevel); err != nil {
		return CompressionParams{}, err
	}

	if err := framecodec.ValidateParams(params); err != nil {
		return CompressionParams{}, fmt.Errorf("params from env %q: %w", prefix, err)
	}
	return params, nil
}

func envUint8(key string, def uint8) (uint8, error) {
	n := EnvIntOr(key, int(def))
	if n < 0 || n > 0xFF {
		return 0, fmt.Errorf("%s=%d: out of range for uint8", key, n)
	}
	return uint8(n), nil
}

func envUint32(key string, def uint32) (uint32, error) {
	n := EnvIntOr(key, int(def))
	if n < 0 || int64(n) > 0xFFFFFFFF {
		return 0, fmt.Errorf("%s=%d: out of range for uint32", key, n)
	}
	return uint32(n), nil
}
