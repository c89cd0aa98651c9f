package creature

import "math"

// Power scores a creature for battle.
//
// The base is attack + defense + speed + health/10, scaled by the tier's
// stat multiplier, then by 10% per level above the first. The result is
// rounded half away from zero. Levels below 1 score as level 1.
func Power(c Creature, tierMultiplier float64) int {
	level := c.Level
	if level < 1 {
		level = 1
	}

	base := float64(c.Stats.Attack+c.Stats.Defense+c.Stats.Speed) + float64(c.Stats.Health)/10
	scaled := base * tierMultiplier * (1 + float64(level-1)*0.1)
	return int(math.Round(scaled))
}
