package gesture

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Interp maps x linearly from the input range to the output range.
// Inputs at or below in.Min yield out.Min and inputs at or above in.Max
// yield out.Max.
func Interp(x float64, in, out Range) float64 {
	if x <= in.Min {
		return out.Min
	}
	if x >= in.Max {
		return out.Max
	}
	return out.Min + (x-in.Min)*(out.Max-out.Min)/(in.Max-in.Min)
}

// BrightnessRange is the fixed output range of brightness mode in percent.
var BrightnessRange = Range{Min: 0, Max: 100}
