package units

// CubicCentimetersPerCubicMeter is the number of cm³ in one m³.
const CubicCentimetersPerCubicMeter = 1_000_000

// VolumeCubicMeters converts package dimensions stored in centimeters into
// cubic meters. Inputs are not validated; callers reject negative values.
func VolumeCubicMeters(length, width, height float64) float64 {
	return length * width * height / CubicCentimetersPerCubicMeter
}
