package game

// Config enumerates the options recognized by NewGame.
type Config struct {
	MoveLimit int    // committed moves before the game is drawn
	Topology  string // board topology identifier
}

const DefaultMoveLimit = 500

// DefaultConfig is the traditional game: standard board, 500-move limit.
func DefaultConfig() Config {
	return Config{MoveLimit: DefaultMoveLimit, Topology: StandardTopology}
}

func (c Config) withDefaults() Config {
	if c.MoveLimit <= 0 {
		c.MoveLimit = DefaultMoveLimit
	}
	if c.Topology == "" {
		c.Topology = StandardTopology
	}
	return c
}

// placement positions one piece, in half-step coordinates.
type placement struct {
	row2, col2 int
	rank       Rank
}

// standardSetup lays out one side's pieces: three ranks of warriors (5/4/5)
// on the back rows, with the king and prince just ahead of them. Player1's
// layout is given directly; Player2's is its point reflection.
func standardSetup(p Player) []placement {
	var out []placement
	warriorRows := []int{10, 9, 8}
	for _, r := range warriorRows {
		start, end := 0, 8
		if r%2 != 0 { // secondary row
			start, end = 1, 7
		}
		for c := start; c <= end; c += 2 {
			out = append(out, placement{row2: r, col2: c, rank: Warrior})
		}
	}
	out = append(out,
		placement{row2: 7, col2: 7, rank: Prince},
		placement{row2: 6, col2: 8, rank: King},
	)

	if p == Player2 {
		for i := range out {
			out[i].row2 = 10 - out[i].row2
			out[i].col2 = 8 - out[i].col2
		}
	}
	return out
}
