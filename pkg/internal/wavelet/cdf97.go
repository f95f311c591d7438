package wavelet

// CDF 9/7 lifting coefficients.
const (
	alpha97 = float32(-1.586134342059924)
	beta97  = float32(-0.052980118572961)
	gamma97 = float32(0.882911075530934)
	delta97 = float32(0.443506852043971)
	k97     = float32(1.230174104914001)
)

// CDF97 is the Cohen-Daubechies-Feauveau 9/7 biorthogonal transform with symmetric extension.
type CDF97 struct{}

func (CDF97) Name() string { return NameCDF97 }

func (CDF97) Forward(data []float32, level int) error {
	if err := checkLevel(len(data), level); err != nil {
		return err
	}
	for l := 0; l < level; l++ {
		step := 1 << l
		m := len(data) / step
		lift(data, step, m, 1, alpha97)
		lift(data, step, m, 0, beta97)
		lift(data, step, m, 1, gamma97)
		lift(data, step, m, 0, delta97)
		scale(data, step, m, 0, k97)
		scale(data, step, m, 1, 1/k97)
	}
	return nil
}

func (CDF97) Inverse(data []float32, level int) error {
	if err := checkLevel(len(data), level); err != nil {
		return err
	}
	for l := level - 1; l >= 0; l-- {
		step := 1 << l
		m := len(data) / step
		scale(data, step, m, 0, 1/k97)
		scale(data, step, m, 1, k97)
		lift(data, step, m, 0, -delta97)
		lift(data, step, m, 1, -gamma97)
		lift(data, step, m, 0, -beta97)
		lift(data, step, m, 1, -alpha97)
	}
	return nil
}

// lift adds coef times the sum of both neighbours to every element of the given parity in the
// m-element view data[0], data[step], ... Missing neighbours are mirrored.
func lift(data []float32, step, m, parity int, coef float32) {
	for j := parity; j < m; j += 2 {
		left := j - 1
		if left < 0 {
			left = j + 1
		}
		right := j + 1
		if right >= m {
			right = j - 1
		}
		data[j*step] += coef * (data[left*step] + data[right*step])
	}
}

func scale(data []float32, step, m, parity int, factor float32) {
	for j := parity; j < m; j += 2 {
		data[j*step] *= factor
	}
}
