package derive

// BatteryBand buckets a battery level for display.
type BatteryBand string

// Battery bands from fullest to emptiest.
const (
	BatteryFull         BatteryBand = "full"
	BatteryThreeQuarter BatteryBand = "three_quarter"
	BatteryHalf         BatteryBand = "half"
	BatteryLow          BatteryBand = "low"
)

// ClassifyBattery maps a level to its band. Each band's lower bound is
// exclusive, so 75 is three-quarter and 25 is low.
func ClassifyBattery(level int) BatteryBand {
	switch {
	case level > 75:
		return BatteryFull
	case level > 50:
		return BatteryThreeQuarter
	case level > 25:
		return BatteryHalf
	default:
		return BatteryLow
	}
}
