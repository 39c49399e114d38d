package light

// UniformSampler selects an emitter with equal probability for every
// light.
type UniformSampler struct {
	emitters []*Emitter
}

// NewUniformSampler builds a Sampler that picks every light with equal
// probability.
func NewUniformSampler(emitters []*Emitter) *UniformSampler {
	return &UniformSampler{emitters: emitters}
}

func (s *UniformSampler) Sample(u float64) (*Emitter, float64, int) {
	n := len(s.emitters)
	if n == 0 {
		return nil, 0, -1
	}
	idx := int(u * float64(n))
	if idx >= n {
		idx = n - 1
	}
	return s.emitters[idx], 1.0 / float64(n), idx
}

func (s *UniformSampler) Probability(index int) float64 {
	if len(s.emitters) == 0 {
		return 0
	}
	return 1.0 / float64(len(s.emitters))
}

func (s *UniformSampler) Count() int { return len(s.emitters) }

// PowerSampler selects an emitter proportional to its emitted power via
// a normalized cumulative distribution over Emitter.Power.
type PowerSampler struct {
	emitters []*Emitter
	cdf      []float64 // cumulative normalized power, cdf[len-1] == 1
	weights  []float64 // normalized power per light
}

// NewPowerSampler builds a Sampler weighted by each emitter's total
// emitted power. Falls back to uniform weighting if every light reports
// zero power (e.g. a scene under construction with placeholder
// emitters).
func NewPowerSampler(emitters []*Emitter) *PowerSampler {
	n := len(emitters)
	weights := make([]float64, n)
	total := 0.0
	for i, e := range emitters {
		weights[i] = e.Power()
		total += weights[i]
	}
	if total <= 0 {
		for i := range weights {
			weights[i] = 1.0 / float64(n)
		}
	} else {
		for i := range weights {
			weights[i] /= total
		}
	}
	cdf := make([]float64, n)
	running := 0.0
	for i, w := range weights {
		running += w
		cdf[i] = running
	}
	return &PowerSampler{emitters: emitters, cdf: cdf, weights: weights}
}

func (s *PowerSampler) Sample(u float64) (*Emitter, float64, int) {
	n := len(s.emitters)
	if n == 0 {
		return nil, 0, -1
	}
	for i, c := range s.cdf {
		if u <= c {
			return s.emitters[i], s.weights[i], i
		}
	}
	last := n - 1
	return s.emitters[last], s.weights[last], last
}

func (s *PowerSampler) Probability(index int) float64 {
	if index < 0 || index >= len(s.weights) {
		return 0
	}
	return s.weights[index]
}

func (s *PowerSampler) Count() int { return len(s.emitters) }
