package decompose

// Platform replaces the compile-time COMPILE_ZEN_4 /
// COMPILE_ALDER_LAKE_DDR4 switches of the original design with a
// runtime tag: it only changes which refresh oracle a Decomposer
// picks and the label applied to the rank component, never the
// bit-level algorithm.
type Platform int

const (
	IntelDDR4 Platform = iota
	IntelDDR5
	AMDZen
)

func (p Platform) String() string {
	switch p {
	case IntelDDR4:
		return "IntelDDR4"
	case IntelDDR5:
		return "IntelDDR5"
	case AMDZen:
		return "AMDZen"
	default:
		return "Unknown"
	}
}
