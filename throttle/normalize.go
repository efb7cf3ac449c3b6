package throttle

// Normalize maps a raw sensor reading into [0, normMax] using the calibrated
// trigger bounds. reversed means full physical actuation corresponds to the
// minimum raw reading (sensor mounted backwards relative to the magnet).
//
// Degenerate bounds (minIn == maxIn) mean the trigger was never calibrated;
// the only safe answer is zero throttle.
func Normalize(raw, minIn, maxIn int16, normMax uint16, reversed bool) uint16 {
	if minIn == maxIn {
		return 0
	}

	clamped := constrain(int32(raw), int32(minIn), int32(maxIn))

	var distance int32
	if reversed {
		distance = int32(maxIn) - clamped
	} else {
		distance = clamped - int32(minIn)
	}

	return uint16(distance * int32(normMax) / (int32(maxIn) - int32(minIn)))
}

// AddDeadBand collapses values near minVal and maxVal onto the exact
// boundaries so that sensor jitter around a released or fully pressed trigger
// never reads as partial actuation. Values in between are rescaled from
// [deadBand, maxVal-deadBand] back onto [minVal, maxVal].
//
// When deadBand is large enough that the middle interval is empty, every
// input maps to one of the two boundaries. That is degenerate but harmless.
func AddDeadBand(value, minVal, maxVal, deadBand uint16) uint16 {
	if value < minVal+deadBand {
		return minVal
	}
	if value > maxVal-deadBand {
		return maxVal
	}

	span := int32(maxVal) - int32(minVal)
	inner := int32(maxVal) - 2*int32(deadBand)
	if inner <= 0 {
		return minVal
	}

	return uint16(int32(minVal) + (int32(value)-int32(deadBand))*span/inner)
}
