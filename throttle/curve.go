package throttle

// Vertex is the bend point of the two-segment throttle response curve.
// InputThrottle is the normalized throttle at the bend (x axis, 0..NormMax).
// SpeedDiff places the bend's output as a percentage of the min-max speed
// span, not as an absolute duty value.
type Vertex struct {
	InputThrottle uint16 `json:"inputThrottle"`
	SpeedDiff     uint16 `json:"speedDiff"`
}

// DutyValue returns the duty percentage at the vertex for the given speed
// window.
func (v Vertex) DutyValue(minSpeed, maxSpeed uint16) uint16 {
	return uint16(int32(minSpeed) + (int32(maxSpeed)-int32(minSpeed))*int32(v.SpeedDiff)/100)
}

// Curve maps a deadband-shaped normalized throttle value onto a duty cycle
// percentage through two linear segments joined at the vertex. Zero input is
// a hard cutoff: the motor is guaranteed off regardless of minSpeed.
func Curve(input uint16, v Vertex, minSpeed, maxSpeed uint16) uint16 {
	if input == 0 {
		return 0
	}

	vertexDuty := int32(v.DutyValue(minSpeed, maxSpeed))
	vi := int32(v.InputThrottle)
	in := int32(constrain(input, 0, NormMax))

	if in <= vi {
		// segment (0, minSpeed) -> (vi, vertexDuty); vi > 0 here since in >= 1
		return uint16(int32(minSpeed) + (vertexDuty-int32(minSpeed))*in/vi)
	}

	// segment (vi, vertexDuty) -> (NormMax, maxSpeed)
	return uint16(vertexDuty + (int32(maxSpeed)-vertexDuty)*(in-vi)/(NormMax-vi))
}
