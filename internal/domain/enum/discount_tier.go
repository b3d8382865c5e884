package enum

// DiscountTier represents one of the fixed discount percentages that can be
// applied uniformly to a quote subtotal
type DiscountTier string

const (
	DiscountNone    DiscountTier = "0%"
	DiscountFive    DiscountTier = "5%"
	DiscountTen     DiscountTier = "10%"
	DiscountFifteen DiscountTier = "15%"
)

// DiscountTiers lists every selectable tier in display order
var DiscountTiers = []DiscountTier{DiscountNone, DiscountFive, DiscountTen, DiscountFifteen}

// Valid checks whether the tier is one of the selectable tiers
func (d DiscountTier) Valid() bool {
	for _, t := range DiscountTiers {
		if d == t {
			return true
		}
	}
	return false
}

// Fraction returns the discount as a fraction of the subtotal (e.g. 0.10 for "10%")
func (d DiscountTier) Fraction() float64 {
	switch d {
	case DiscountFive:
		return 0.05
	case DiscountTen:
		return 0.10
	case DiscountFifteen:
		return 0.15
	default:
		return 0
	}
}

// Applied returns the tier as a nullable string for persistence; the zero
// tier is stored as NULL
func (d DiscountTier) Applied() *string {
	if d == DiscountNone || d == "" {
		return nil
	}
	s := string(d)
	return &s
}

// String returns the string representation of the tier
func (d DiscountTier) String() string {
	return string(d)
}
