package wavelet

const invSqrt2 = float32(0.70710678118654752440)

// Haar is the orthonormal Haar transform.
type Haar struct{}

func (Haar) Name() string { return NameHaar }

// Forward replaces each pair (a, b) at distance 2^l with ((a+b)/√2, (a-b)/√2) for l in [0, level).
func (Haar) Forward(data []float32, level int) error {
	if err := checkLevel(len(data), level); err != nil {
		return err
	}
	for l := 0; l < level; l++ {
		step := 1 << l
		for i := 0; i+step < len(data); i += 2 * step {
			a, b := data[i], data[i+step]
			data[i] = (a + b) * invSqrt2
			data[i+step] = (a - b) * invSqrt2
		}
	}
	return nil
}

// Inverse undoes Forward, finest level last.
func (Haar) Inverse(data []float32, level int) error {
	if err := checkLevel(len(data), level); err != nil {
		return err
	}
	for l := level - 1; l >= 0; l-- {
		step := 1 << l
		for i := 0; i+step < len(data); i += 2 * step {
			s, d := data[i], data[i+step]
			data[i] = (s + d) * invSqrt2
			data[i+step] = (s - d) * invSqrt2
		}
	}
	return nil
}
