package creature

// Stats are the four rolled attributes of a creature.
type Stats struct {
	Attack  int
	Defense int
	Speed   int
	Health  int
}

// Creature is a hatched creature. The engine treats it as a plain value;
// identity and ownership live with the caller.
type Creature struct {
	ID       string
	Name     string
	Species  string
	Tier     Tier
	Affinity Affinity
	Level    int
	Stats    Stats
	Ability  string
}
