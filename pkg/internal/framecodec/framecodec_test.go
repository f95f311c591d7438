package framecodec_test

import (
	"bytes"
	"errors"
	"math"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/joeydtaylor/eegcodec/pkg/internal/bitio"
	"github.com/joeydtaylor/eegcodec/pkg/internal/cobs"
	"github.com/joeydtaylor/eegcodec/pkg/internal/framecodec"
	"github.com/joeydtaylor/eegcodec/pkg/internal/quantizer"
	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
	"github.com/joeydtaylor/eegcodec/pkg/internal/wavelet"
	"github.com/joeydtaylor/eegcodec/pkg/logschema"
)

type logEntry struct {
	level types.LogLevel
	msg   string
	kv    []interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	level   types.LogLevel
	entries []logEntry
}

func (l *recordingLogger) record(level types.LogLevel, msg string, kv []interface{}) {
	l.mu.Lock()
	l.entries = append(l.entries, logEntry{level: level, msg: msg, kv: kv})
	l.mu.Unlock()
}

func (l *recordingLogger) snapshot() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}

func (l *recordingLogger) GetLevel() types.LogLevel {
	return l.level
}

func (l *recordingLogger) SetLevel(level types.LogLevel) {
	l.level = level
}

func (l *recordingLogger) Debug(msg string, kv ...interface{}) {
	l.record(types.DebugLevel, msg, kv)
}

func (l *recordingLogger) Info(msg string, kv ...interface{}) {
	l.record(types.InfoLevel, msg, kv)
}

func (l *recordingLogger) Warn(msg string, kv ...interface{}) {
	l.record(types.WarnLevel, msg, kv)
}

func (l *recordingLogger) Error(msg string, kv ...interface{}) {
	l.record(types.ErrorLevel, msg, kv)
}

func (l *recordingLogger) DPanic(msg string, kv ...interface{}) {
	l.record(types.DPanicLevel, msg, kv)
}

func (l *recordingLogger) Panic(msg string, kv ...interface{}) {
	l.record(types.PanicLevel, msg, kv)
}

func (l *recordingLogger) Fatal(msg string, kv ...interface{}) {
	l.record(types.FatalLevel, msg, kv)
}

func (l *recordingLogger) Flush() error { return nil }

func (l *recordingLogger) AddSink(string, types.SinkConfig) error { return nil }

func (l *recordingLogger) RemoveSink(string) error { return nil }

func (l *recordingLogger) ListSinks() ([]string, error) { return nil, nil }

func fieldValue(kv []interface{}, key string) (interface{}, bool) {
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i] == key {
			return kv[i+1], true
		}
	}
	return nil, false
}

type countingMeter struct {
	mu     sync.Mutex
	counts map[string]uint64
}

func newCountingMeter() *countingMeter {
	return &countingMeter{counts: make(map[string]uint64)}
}

func (m *countingMeter) IncrementCount(metric string) {
	m.AddCount(metric, 1)
}

func (m *countingMeter) AddCount(metric string, n uint64) {
	m.mu.Lock()
	m.counts[metric] += n
	m.mu.Unlock()
}

func (m *countingMeter) GetCount(metric string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[metric]
}

func (m *countingMeter) Snapshot() types.CodecStats { return types.CodecStats{} }

func (m *countingMeter) HostLoad() (types.HostLoad, error) { return types.HostLoad{}, nil }

func (m *countingMeter) Reset() {
	m.mu.Lock()
	clear(m.counts)
	m.mu.Unlock()
}

type recordingTransform struct {
	forwardLevels []int
	inverseLevels []int
}

func (r *recordingTransform) Name() string { return "recording" }

func (r *recordingTransform) Forward(data []float32, level int) error {
	r.forwardLevels = append(r.forwardLevels, level)
	for i := range data {
		data[i] *= 2
	}
	return nil
}

func (r *recordingTransform) Inverse(data []float32, level int) error {
	r.inverseLevels = append(r.inverseLevels, level)
	for i := range data {
		data[i] /= 2
	}
	return nil
}

func coefficientParams(frameSize, keep uint32, qbits uint8) types.CompressionParams {
	return types.CompressionParams{
		Version:      1,
		FrameSize:    frameSize,
		KeepNumCoeff: keep,
		QBits:        qbits,
		WaveletName:  wavelet.NameNone,
	}
}

func compressFrame(t *testing.T, c *framecodec.Codec, coeffs []float32, p types.CompressionParams, s *framecodec.Scratch) []byte {
	t.Helper()
	dst := make([]byte, c.MaxEncodedLen(p))
	n, err := c.CompressCoefficients(coeffs, p, s, dst)
	if err != nil {
		t.Fatalf("CompressCoefficients error: %v", err)
	}
	if bytes.IndexByte(dst[:n], 0) >= 0 {
		t.Fatalf("stuffed frame contains a zero byte: %x", dst[:n])
	}
	return dst[:n]
}

func readBody(t *testing.T, frame []byte, p types.CompressionParams) (float32, float32, []uint32) {
	t.Helper()
	body := make([]byte, framecodec.BodyLen(int(p.FrameSize), p.QBits))
	n, err := cobs.Decode(body, frame)
	if err != nil {
		t.Fatalf("cobs.Decode error: %v", err)
	}
	if n != len(body) {
		t.Fatalf("expected body of %d bytes, got %d", len(body), n)
	}

	r := bitio.NewReader(body)
	vmin, _ := r.ReadFloat32()
	vmax, _ := r.ReadFloat32()
	codes := make([]uint32, p.FrameSize)
	for i := range codes {
		code, err := r.ReadBits(p.QBits)
		if err != nil {
			t.Fatalf("ReadBits(%d) error: %v", i, err)
		}
		codes[i] = code
	}
	return vmin, vmax, codes
}

func TestCompressKeepsLargestCoefficients(t *testing.T) {
	p := coefficientParams(8, 3, 4)
	coeffs := []float32{0.1, -5, 0.2, 3, -0.05, 4, 0, -0.1}
	input := append([]float32(nil), coeffs...)

	c := framecodec.NewCodec()
	s := framecodec.NewScratch(8)
	frame := compressFrame(t, c, coeffs, p, s)

	for i := range coeffs {
		if coeffs[i] != input[i] {
			t.Fatalf("CompressCoefficients modified its input at %d", i)
		}
	}

	vmin, vmax, codes := readBody(t, frame, p)
	if vmin != -5 || vmax != 4 {
		t.Fatalf("expected range [-5, 4], got [%v, %v]", vmin, vmax)
	}
	// T = 16/9, zero code 8: -5 -> raw 0 -> stored 1, 3 -> raw 14, 4 clamps to 15.
	wantCodes := []uint32{0, 1, 0, 14, 0, 15, 0, 0}
	for i := range wantCodes {
		if codes[i] != wantCodes[i] {
			t.Fatalf("code %d: expected %d, got %d (all %v)", i, wantCodes[i], codes[i], codes)
		}
	}

	out := make([]float32, 8)
	if err := c.DecompressCoefficients(frame, p, s, out); err != nil {
		t.Fatalf("DecompressCoefficients error: %v", err)
	}

	step := 9.0 / 16.0
	for i, v := range out {
		switch i {
		case 1, 3, 5:
			if math.Abs(float64(v-input[i])) > step+1e-6 {
				t.Fatalf("coefficient %d: %v decoded as %v, more than one step away", i, input[i], v)
			}
		default:
			if v != 0 {
				t.Fatalf("discarded coefficient %d decoded as %v, expected exactly 0", i, v)
			}
		}
	}
	if out[1] != -5 {
		t.Fatalf("expected the minimum to decode exactly, got %v", out[1])
	}
}

func TestRoundTripWithinOneStep(t *testing.T) {
	const n = 1024
	r := rand.New(rand.NewSource(7))

	for _, qbits := range []uint8{4, 8, 12, 16, 24} {
		p := coefficientParams(n, 128, qbits)
		coeffs := make([]float32, n)
		for i := range coeffs {
			coeffs[i] = float32(r.NormFloat64() * 40)
		}

		mags := make([]float64, n)
		for i, v := range coeffs {
			mags[i] = math.Abs(float64(v))
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(mags)))
		kval := mags[p.KeepNumCoeff-1]

		vmin, vmax := quantizer.FindMinMax(coeffs)
		consts, err := quantizer.NewConstants(min(vmin, 0), max(vmax, 0), qbits)
		if err != nil {
			t.Fatalf("NewConstants error: %v", err)
		}

		c := framecodec.NewCodec()
		s := framecodec.NewScratch(n)
		frame := compressFrame(t, c, coeffs, p, s)
		out := make([]float32, n)
		if err := c.DecompressCoefficients(frame, p, s, out); err != nil {
			t.Fatalf("qbits %d: DecompressCoefficients error: %v", qbits, err)
		}

		for i, v := range coeffs {
			m := math.Abs(float64(v))
			switch {
			case m >= kval:
				if d := math.Abs(float64(out[i] - v)); d > consts.Step+1e-6*math.Max(1, m) {
					t.Fatalf("qbits %d coefficient %d: error %v exceeds step %v", qbits, i, d, consts.Step)
				}
			default:
				if out[i] != 0 {
					t.Fatalf("qbits %d: discarded coefficient %d decoded as %v", qbits, i, out[i])
				}
			}
		}
	}
}

func TestRetainedCountIsExact(t *testing.T) {
	const n, keep = 64, 16
	r := rand.New(rand.NewSource(11))
	p := coefficientParams(n, keep, 12)

	coeffs := make([]float32, n)
	big := r.Perm(n)[:keep]
	for i := range coeffs {
		coeffs[i] = float32(r.Float64()*0.9 + 0.05)
		if r.Intn(2) == 0 {
			coeffs[i] = -coeffs[i]
		}
	}
	for _, i := range big {
		coeffs[i] = float32(50 + r.Float64()*50)
		if r.Intn(2) == 0 {
			coeffs[i] = -coeffs[i]
		}
	}

	c := framecodec.NewCodec()
	s := framecodec.NewScratch(n)
	frame := compressFrame(t, c, coeffs, p, s)
	out := make([]float32, n)
	if err := c.DecompressCoefficients(frame, p, s, out); err != nil {
		t.Fatalf("DecompressCoefficients error: %v", err)
	}

	nonZero := 0
	for _, v := range out {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero != keep {
		t.Fatalf("expected %d retained coefficients, got %d", keep, nonZero)
	}
	for _, i := range big {
		if out[i] == 0 {
			t.Fatalf("large coefficient %d (%v) was discarded", i, coeffs[i])
		}
	}
}

func TestKeptValueInZeroBinBecomesSentinel(t *testing.T) {
	p := coefficientParams(8, 8, 4)
	coeffs := []float32{-5, 4, 3, -2, 1, 0.01, -1, 2}

	c := framecodec.NewCodec()
	s := framecodec.NewScratch(8)
	frame := compressFrame(t, c, coeffs, p, s)

	// Zero code is 8; 0.01 quantizes into it and is stored as 0 even though it is kept.
	_, _, codes := readBody(t, frame, p)
	wantCodes := []uint32{1, 15, 14, 6, 10, 0, 8, 12}
	for i := range wantCodes {
		if codes[i] != wantCodes[i] {
			t.Fatalf("code %d: expected %d, got %d (all %v)", i, wantCodes[i], codes[i], codes)
		}
	}

	out := make([]float32, 8)
	if err := c.DecompressCoefficients(frame, p, s, out); err != nil {
		t.Fatalf("DecompressCoefficients error: %v", err)
	}
	nonZero := 0
	for _, v := range out {
		if v != 0 {
			nonZero++
		}
	}
	if nonZero != 7 {
		t.Fatalf("expected 7 non-zero coefficients out of 8 kept, got %d: %v", nonZero, out)
	}
	if out[5] != 0 {
		t.Fatalf("zero-bin coefficient decoded as %v, expected exactly 0", out[5])
	}
	if d := math.Abs(float64(out[5] - coeffs[5])); d > 9.0/16 {
		t.Fatalf("zero-bin coefficient error %v exceeds one step", d)
	}
}

func TestTiesKeptInOriginalOrder(t *testing.T) {
	p := coefficientParams(8, 3, 8)
	coeffs := []float32{1, -1, 0.5, 1, -1, 0.25, 1, 0.125}

	c := framecodec.NewCodec()
	s := framecodec.NewScratch(8)
	frame := compressFrame(t, c, coeffs, p, s)
	out := make([]float32, 8)
	if err := c.DecompressCoefficients(frame, p, s, out); err != nil {
		t.Fatalf("DecompressCoefficients error: %v", err)
	}

	for i, v := range out {
		kept := i == 0 || i == 1 || i == 3
		if kept && v == 0 {
			t.Fatalf("tied coefficient %d should have been kept: %v", i, out)
		}
		if !kept && v != 0 {
			t.Fatalf("coefficient %d should have been discarded: %v", i, out)
		}
	}
}

func TestKeepAllFrame(t *testing.T) {
	p := coefficientParams(16, 16, 10)
	coeffs := make([]float32, 16)
	for i := range coeffs {
		coeffs[i] = float32(i) - 7.5
	}

	c := framecodec.NewCodec()
	s := framecodec.NewScratch(16)
	frame := compressFrame(t, c, coeffs, p, s)
	_, _, codes := readBody(t, frame, p)

	zeros := 0
	for _, code := range codes {
		if code == 0 {
			zeros++
		}
	}
	// Only a coefficient in the zero bin may use stored 0, and no value here lies in it.
	if zeros != 0 {
		t.Fatalf("expected no sentinel codes when every coefficient is kept, got %d", zeros)
	}
}

func TestAllZeroFrame(t *testing.T) {
	p := coefficientParams(32, 4, 12)
	coeffs := make([]float32, 32)

	m := newCountingMeter()
	c := framecodec.NewCodec(framecodec.WithMeter(m))
	s := framecodec.NewScratch(32)
	frame := compressFrame(t, c, coeffs, p, s)

	vmin, vmax, codes := readBody(t, frame, p)
	if vmin != 0 || vmax != 0 {
		t.Fatalf("expected zero range, got [%v, %v]", vmin, vmax)
	}
	for i, code := range codes {
		if code != 0 {
			t.Fatalf("code %d: expected 0, got %d", i, code)
		}
	}

	out := make([]float32, 32)
	for i := range out {
		out[i] = 42
	}
	if err := c.DecompressCoefficients(frame, p, s, out); err != nil {
		t.Fatalf("DecompressCoefficients error: %v", err)
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("coefficient %d: expected 0, got %v", i, v)
		}
	}
	if got := m.GetCount(types.MetricZeroFrames); got != 1 {
		t.Fatalf("expected 1 zero frame, got %d", got)
	}
}

func TestSingleSignedFrameAnchorsRangeAtZero(t *testing.T) {
	p := coefficientParams(4, 1, 8)
	coeffs := []float32{0, 0, 3, 0}

	c := framecodec.NewCodec()
	s := framecodec.NewScratch(4)
	frame := compressFrame(t, c, coeffs, p, s)

	vmin, vmax, _ := readBody(t, frame, p)
	if vmin != 0 || vmax != 3 {
		t.Fatalf("expected range [0, 3], got [%v, %v]", vmin, vmax)
	}

	out := make([]float32, 4)
	if err := c.DecompressCoefficients(frame, p, s, out); err != nil {
		t.Fatalf("DecompressCoefficients error: %v", err)
	}
	if math.Abs(float64(out[2]-3)) > 3.0/256+1e-6 || out[0] != 0 || out[1] != 0 || out[3] != 0 {
		t.Fatalf("unexpected reconstruction %v", out)
	}
}

func TestCompressRejectsInvalidInput(t *testing.T) {
	c := framecodec.NewCodec()
	coeffs := make([]float32, 8)
	dst := make([]byte, 64)

	cases := []struct {
		name    string
		params  types.CompressionParams
		coeffs  []float32
		scratch *framecodec.Scratch
		want    error
	}{
		{"zero bits", coefficientParams(8, 2, 0), coeffs, framecodec.NewScratch(8), framecodec.ErrInvalidQBits},
		{"32 bits", coefficientParams(8, 2, 32), coeffs, framecodec.NewScratch(8), framecodec.ErrInvalidQBits},
		{"keep zero", coefficientParams(8, 0, 8), coeffs, framecodec.NewScratch(8), framecodec.ErrInvalidKeepCount},
		{"keep too many", coefficientParams(8, 9, 8), coeffs, framecodec.NewScratch(8), framecodec.ErrInvalidKeepCount},
		{"short frame", coefficientParams(8, 2, 8), coeffs[:7], framecodec.NewScratch(8), framecodec.ErrInvalidFrameSize},
		{"small scratch", coefficientParams(8, 2, 8), coeffs, framecodec.NewScratch(4), framecodec.ErrScratchTooSmall},
		{"nil scratch", coefficientParams(8, 2, 8), coeffs, nil, framecodec.ErrScratchTooSmall},
		{"nan", coefficientParams(3, 1, 8), []float32{1, float32(math.NaN()), -1}, framecodec.NewScratch(8), framecodec.ErrNonFinite},
		{"inf", coefficientParams(3, 1, 8), []float32{1, float32(math.Inf(1)), -1}, framecodec.NewScratch(8), framecodec.ErrNonFinite},
	}

	for _, tc := range cases {
		if _, err := c.CompressCoefficients(tc.coeffs, tc.params, tc.scratch, dst); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestCompressShortDestination(t *testing.T) {
	p := coefficientParams(64, 64, 16)
	coeffs := make([]float32, 64)
	for i := range coeffs {
		coeffs[i] = float32(i + 1)
	}

	c := framecodec.NewCodec()
	_, err := c.CompressCoefficients(coeffs, p, framecodec.NewScratch(64), make([]byte, 10))
	if !errors.Is(err, cobs.ErrShortBuffer) {
		t.Fatalf("expected cobs.ErrShortBuffer, got %v", err)
	}
}

func TestDecompressTruncatedLeavesOutputUntouched(t *testing.T) {
	p := coefficientParams(32, 8, 12)
	r := rand.New(rand.NewSource(3))
	coeffs := make([]float32, 32)
	for i := range coeffs {
		coeffs[i] = float32(r.NormFloat64())
	}

	c := framecodec.NewCodec()
	s := framecodec.NewScratch(32)
	frame := compressFrame(t, c, coeffs, p, s)

	out := make([]float32, 32)
	for cut := 0; cut < len(frame); cut++ {
		for i := range out {
			out[i] = 42
		}
		if err := c.DecompressCoefficients(frame[:cut], p, s, out); err == nil {
			t.Fatalf("cut %d of %d: expected an error", cut, len(frame))
		}
		for i, v := range out {
			if v != 42 {
				t.Fatalf("cut %d: output %d overwritten with %v", cut, i, v)
			}
		}
	}

	err := c.DecompressCoefficients(frame[:len(frame)-1], p, s, out)
	if !errors.Is(err, framecodec.ErrTruncated) && !errors.Is(err, cobs.ErrTruncated) {
		t.Fatalf("expected a truncation error, got %v", err)
	}
}

func TestDecompressRejectsMalformedFrames(t *testing.T) {
	p := coefficientParams(8, 3, 4)
	c := framecodec.NewCodec()
	s := framecodec.NewScratch(8)
	out := make([]float32, 8)

	stuff := func(body []byte) []byte {
		dst := make([]byte, cobs.MaxEncodedLen(len(body)))
		n, err := cobs.Encode(dst, body)
		if err != nil {
			t.Fatalf("cobs.Encode error: %v", err)
		}
		return dst[:n]
	}
	body := func(vmin, vmax float32, codes ...uint32) []byte {
		buf := make([]byte, framecodec.BodyLen(8, 4))
		w := bitio.NewWriter(buf)
		_ = w.WriteFloat32(vmin)
		_ = w.WriteFloat32(vmax)
		for i := 0; i < 8; i++ {
			var code uint32
			if i < len(codes) {
				code = codes[i]
			}
			_ = w.WriteBits(code, 4)
		}
		return buf
	}

	good := compressFrame(t, c, []float32{0.1, -5, 0.2, 3, -0.05, 4, 0, -0.1}, p, s)

	cases := []struct {
		name  string
		frame []byte
		want  error
	}{
		{"equal non-zero bounds", stuff(body(2, 2, 1)), framecodec.ErrDegenerateRange},
		{"inverted bounds", stuff(body(3, -1, 1)), framecodec.ErrDegenerateRange},
		{"nan bound", stuff(body(float32(math.NaN()), 1, 1)), framecodec.ErrNonFinite},
		{"code in all-zero frame", stuff(body(0, 0, 0, 5)), framecodec.ErrDegenerateRange},
		{"extra body bytes", append(append([]byte(nil), good...), 0x02, 0x05), framecodec.ErrBodyLength},
		{"short body", stuff(body(-5, 4)[:6]), framecodec.ErrTruncated},
		{"zero byte", append([]byte{0x00}, good...), cobs.ErrZeroByte},
	}

	for _, tc := range cases {
		if err := c.DecompressCoefficients(tc.frame, p, s, out); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if err := c.DecompressCoefficients(good, p, s, out[:7]); !errors.Is(err, framecodec.ErrInvalidFrameSize) {
		t.Fatalf("expected ErrInvalidFrameSize for short output, got %v", err)
	}
}

func TestCompressWithHaarRoundTrip(t *testing.T) {
	const n = 1024
	p := types.CompressionParams{Version: 1, FrameSize: n, KeepNumCoeff: n, QBits: 16, WaveletName: wavelet.NameHaar, WaveletLevel: 5}

	samples := make([]float32, n)
	for i := range samples {
		x := float64(i) / 256
		samples[i] = float32(30*math.Sin(2*math.Pi*10*x) + 12*math.Sin(2*math.Pi*3*x+0.4))
	}
	original := append([]float32(nil), samples...)

	coeffs := append([]float32(nil), samples...)
	if err := (wavelet.Haar{}).Forward(coeffs, 5); err != nil {
		t.Fatalf("Forward error: %v", err)
	}
	vmin, vmax := quantizer.FindMinMax(coeffs)
	consts, err := quantizer.NewConstants(min(vmin, 0), max(vmax, 0), p.QBits)
	if err != nil {
		t.Fatalf("NewConstants error: %v", err)
	}

	c := framecodec.NewCodec()
	s := framecodec.NewScratch(n)
	dst := make([]byte, c.MaxEncodedLen(p))
	written, err := c.Compress(samples, p, s, dst)
	if err != nil {
		t.Fatalf("Compress error: %v", err)
	}

	out := make([]float32, n)
	if err := c.Decompress(dst[:written], p, s, out); err != nil {
		t.Fatalf("Decompress error: %v", err)
	}

	var sum float64
	for i := range out {
		d := float64(out[i] - original[i])
		sum += d * d
	}
	if rmse := math.Sqrt(sum / n); rmse > consts.Step*1.01 {
		t.Fatalf("rmse %v exceeds quantizer step %v", rmse, consts.Step)
	}
}

func TestPinnedTransform(t *testing.T) {
	p := types.CompressionParams{Version: 1, FrameSize: 4, KeepNumCoeff: 4, QBits: 12, WaveletName: "not-registered", WaveletLevel: 2}
	transform := &recordingTransform{}
	c := framecodec.NewCodec(framecodec.WithTransform(transform))
	s := framecodec.NewScratch(4)

	samples := []float32{1, -2, 3, -4}
	dst := make([]byte, c.MaxEncodedLen(p))
	n, err := c.Compress(samples, p, s, dst)
	if err != nil {
		t.Fatalf("Compress error: %v", err)
	}
	out := make([]float32, 4)
	if err := c.Decompress(dst[:n], p, s, out); err != nil {
		t.Fatalf("Decompress error: %v", err)
	}

	if len(transform.forwardLevels) != 1 || transform.forwardLevels[0] != 2 {
		t.Fatalf("expected one forward call at level 2, got %v", transform.forwardLevels)
	}
	if len(transform.inverseLevels) != 1 || transform.inverseLevels[0] != 2 {
		t.Fatalf("expected one inverse call at level 2, got %v", transform.inverseLevels)
	}
	for i, want := range []float32{1, -2, 3, -4} {
		if math.Abs(float64(out[i]-want)) > 0.01 {
			t.Fatalf("sample %d: expected about %v, got %v", i, want, out[i])
		}
	}
}

func TestTransformErrors(t *testing.T) {
	c := framecodec.NewCodec()
	s := framecodec.NewScratch(8)

	p := types.CompressionParams{Version: 1, FrameSize: 8, KeepNumCoeff: 2, QBits: 8, WaveletName: "morlet"}
	samples := []float32{1, 2, 3, 4, 5, 6, 7, 8}
	if _, err := c.Compress(samples, p, s, make([]byte, 64)); !errors.Is(err, wavelet.ErrUnknownWavelet) {
		t.Fatalf("expected ErrUnknownWavelet, got %v", err)
	}
	if samples[0] != 1 || samples[7] != 8 {
		t.Fatalf("samples modified after a failed lookup: %v", samples)
	}

	p.WaveletName = wavelet.NameHaar
	p.WaveletLevel = 4
	if _, err := c.Compress(samples, p, s, make([]byte, 64)); !errors.Is(err, wavelet.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}

	p.WaveletLevel = 0
	frame := compressFrame(t, c, samples, p, s)

	p.WaveletLevel = 4
	out := make([]float32, 8)
	for i := range out {
		out[i] = 42
	}
	if err := c.Decompress(frame, p, s, out); !errors.Is(err, wavelet.ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel on decompress, got %v", err)
	}
	for i, v := range out {
		if v != 42 {
			t.Fatalf("output %d overwritten with %v after a failed inverse", i, v)
		}
	}
}

func TestConcurrentCallsWithOwnScratch(t *testing.T) {
	const n, workers = 256, 8
	p := coefficientParams(n, 32, 12)
	c := framecodec.NewCodec()

	frames := make([][]float32, workers)
	want := make([][]byte, workers)
	for w := range frames {
		r := rand.New(rand.NewSource(int64(w)))
		frames[w] = make([]float32, n)
		for i := range frames[w] {
			frames[w][i] = float32(r.NormFloat64() * 10)
		}
		want[w] = compressFrame(t, c, frames[w], p, framecodec.NewScratch(n))
	}

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			s := framecodec.NewScratch(n)
			dst := make([]byte, c.MaxEncodedLen(p))
			out := make([]float32, n)
			for iter := 0; iter < 50; iter++ {
				m, err := c.CompressCoefficients(frames[w], p, s, dst)
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(dst[:m], want[w]) {
					errs <- errors.New("concurrent compress produced different bytes")
					return
				}
				if err := c.DecompressCoefficients(dst[:m], p, s, out); err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("worker error: %v", err)
	}
}

func TestCodecLogsAndMeters(t *testing.T) {
	logger := &recordingLogger{level: types.DebugLevel}
	m := newCountingMeter()
	c := framecodec.NewCodec(
		framecodec.WithLogger(logger, nil),
		framecodec.WithMeter(m),
		framecodec.WithComponentMetadata("channel-3", "codec-3"),
	)

	p := coefficientParams(8, 3, 4)
	s := framecodec.NewScratch(8)
	frame := compressFrame(t, c, []float32{0.1, -5, 0.2, 3, -0.05, 4, 0, -0.1}, p, s)

	out := make([]float32, 8)
	if err := c.DecompressCoefficients(frame[:len(frame)-1], p, s, out); err == nil {
		t.Fatalf("expected truncated frame to fail")
	}

	entries := logger.snapshot()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}

	if entries[0].level != types.DebugLevel {
		t.Fatalf("expected debug entry for compress, got %v", entries[0].level)
	}
	if v, _ := fieldValue(entries[0].kv, "encoded_bytes"); v != len(frame) {
		t.Fatalf("expected encoded_bytes %d, got %v", len(frame), v)
	}
	meta, _ := fieldValue(entries[0].kv, logschema.FieldComponent)
	if md, ok := meta.(types.ComponentMetadata); !ok || md.Name != "channel-3" || md.ID != "codec-3" || md.Type != "FRAME_CODEC" {
		t.Fatalf("unexpected component metadata %v", meta)
	}

	if entries[1].level != types.ErrorLevel {
		t.Fatalf("expected error entry for decompress, got %v", entries[1].level)
	}
	if v, _ := fieldValue(entries[1].kv, logschema.FieldEvent); v != "DecompressCoefficients" {
		t.Fatalf("unexpected event %v", v)
	}
	if v, _ := fieldValue(entries[1].kv, logschema.FieldError); v == nil {
		t.Fatalf("expected error field on failure entry")
	}

	if got := m.GetCount(types.MetricFramesEncoded); got != 1 {
		t.Fatalf("expected 1 encoded frame, got %d", got)
	}
	if got := m.GetCount(types.MetricRawBytes); got != 32 {
		t.Fatalf("expected 32 raw bytes, got %d", got)
	}
	if got := m.GetCount(types.MetricEncodedBytes); got != uint64(len(frame)) {
		t.Fatalf("expected %d encoded bytes, got %d", len(frame), got)
	}
	if got := m.GetCount(types.MetricDecodeErrors); got != 1 {
		t.Fatalf("expected 1 decode error, got %d", got)
	}
	if got := m.GetCount(types.MetricFramesDecoded); got != 0 {
		t.Fatalf("expected no decoded frames, got %d", got)
	}
}

func TestCompressReportsUnderOneEvent(t *testing.T) {
	logger := &recordingLogger{level: types.DebugLevel}
	m := newCountingMeter()
	c := framecodec.NewCodec(framecodec.WithLogger(logger), framecodec.WithMeter(m))

	p := coefficientParams(8, 3, 4)
	s := framecodec.NewScratch(8)
	samples := []float32{0.1, -5, 0.2, 3, -0.05, 4, 0, -0.1}

	if _, err := c.Compress(append([]float32(nil), samples...), p, s, make([]byte, 2)); !errors.Is(err, cobs.ErrShortBuffer) {
		t.Fatalf("expected cobs.ErrShortBuffer, got %v", err)
	}
	dst := make([]byte, c.MaxEncodedLen(p))
	if _, err := c.Compress(append([]float32(nil), samples...), p, s, dst); err != nil {
		t.Fatalf("Compress error: %v", err)
	}

	entries := logger.snapshot()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	for i, want := range []types.LogLevel{types.ErrorLevel, types.DebugLevel} {
		if entries[i].level != want {
			t.Fatalf("entry %d: expected level %v, got %v", i, want, entries[i].level)
		}
		if v, _ := fieldValue(entries[i].kv, logschema.FieldEvent); v != "Compress" {
			t.Fatalf("entry %d: expected event Compress, got %v", i, v)
		}
	}
	if got := m.GetCount(types.MetricEncodeErrors); got != 1 {
		t.Fatalf("expected 1 encode error, got %d", got)
	}
	if got := m.GetCount(types.MetricFramesEncoded); got != 1 {
		t.Fatalf("expected 1 encoded frame, got %d", got)
	}
}

func TestErrorLevelLoggerSkipsDebug(t *testing.T) {
	logger := &recordingLogger{level: types.ErrorLevel}
	c := framecodec.NewCodec(framecodec.WithLogger(logger))

	p := coefficientParams(4, 1, 8)
	compressFrame(t, c, []float32{1, 2, 3, 4}, p, framecodec.NewScratch(4))
	if entries := logger.snapshot(); len(entries) != 0 {
		t.Fatalf("expected no entries below error level, got %d", len(entries))
	}
}

func TestCodecCallsDoNotAllocate(t *testing.T) {
	const n = 1024
	p := coefficientParams(n, 128, 12)
	r := rand.New(rand.NewSource(5))
	coeffs := make([]float32, n)
	for i := range coeffs {
		coeffs[i] = float32(r.NormFloat64())
	}

	c := framecodec.NewCodec()
	s := framecodec.NewScratch(n)
	dst := make([]byte, c.MaxEncodedLen(p))
	out := make([]float32, n)

	var written int
	allocs := testing.AllocsPerRun(20, func() {
		written, _ = c.CompressCoefficients(coeffs, p, s, dst)
	})
	if allocs != 0 {
		t.Fatalf("CompressCoefficients allocated %v times per call", allocs)
	}

	allocs = testing.AllocsPerRun(20, func() {
		_ = c.DecompressCoefficients(dst[:written], p, s, out)
	})
	if allocs != 0 {
		t.Fatalf("DecompressCoefficients allocated %v times per call", allocs)
	}
}

func TestMaxEncodedLen(t *testing.T) {
	c := framecodec.NewCodec()
	p := types.DefaultCompressionParams()
	body := framecodec.BodyLen(int(p.FrameSize), p.QBits)
	if body != 8+1024*12/8 {
		t.Fatalf("unexpected body length %d", body)
	}
	if got := c.MaxEncodedLen(p); got != cobs.MaxEncodedLen(body) {
		t.Fatalf("expected %d, got %d", cobs.MaxEncodedLen(body), got)
	}
}
