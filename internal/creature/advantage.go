package creature

// Advantage is the outcome of comparing an attacker's affinity against a
// defender's on the catalog's advantage chart.
type Advantage int

const (
	AdvantageNeutral Advantage = iota
	AdvantageStrong
	AdvantageWeak
)

func (a Advantage) String() string {
	switch a {
	case AdvantageStrong:
		return "strong"
	case AdvantageWeak:
		return "weak"
	default:
		return "neutral"
	}
}

// Multiplier is the battle scaling for the advantage. It applies once to
// the attacker's aggregate power, never to the defender's.
func (a Advantage) Multiplier() float64 {
	switch a {
	case AdvantageStrong:
		return 1.5
	case AdvantageWeak:
		return 0.5
	default:
		return 1.0
	}
}
