package throttle

// Average is a two-sample moving average. It removes single-sample sensor and
// ADC glitches at the cost of one sample period of latency. The caller keeps
// prev across periods.
func Average(prev, curr int16) int16 {
	return int16((int32(prev) + int32(curr)) / 2)
}
