package emotion

// Smoother keeps a rolling average of recent stress scores for trend
// reporting. Degraded samples are skipped so substituted values do not
// drag the trend.
type Smoother struct {
	window []float64
	size   int
}

const defaultSmoothingWindow = 5

func NewSmoother(size int) *Smoother {
	if size <= 0 {
		size = defaultSmoothingWindow
	}

	return &Smoother{
		window: make([]float64, 0, size),
		size:   size,
	}
}

// Add records one stress score and returns the updated average. A
// degraded score is not recorded; the previous average is returned, or
// the score itself while the window is still empty.
func (s *Smoother) Add(stress float64, degraded bool) float64 {
	if degraded {
		if len(s.window) == 0 {
			return stress
		}

		return s.Average()
	}

	s.window = append(s.window, stress)
	if len(s.window) > s.size {
		s.window = s.window[1:]
	}

	return s.Average()
}

// Average returns the mean of the current window, 0 when empty
func (s *Smoother) Average() float64 {
	if len(s.window) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range s.window {
		sum += v
	}

	return sum / float64(len(s.window))
}
