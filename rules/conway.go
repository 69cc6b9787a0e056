package rules

const (
	// BirthNeighbors is the exact live-neighbor count that brings a dead cell to life.
	BirthNeighbors = 3
	// MinSurvivors and MaxSurvivors bound the live-neighbor count a live cell needs to survive.
	MinSurvivors = 2
	MaxSurvivors = 3
)

/*
ApplyConwayRules applies Conway's Game of Life rules (B3/S23) to determine the next state of a cell.

A live cell survives with 2 or 3 live neighbors, a dead cell is born with exactly 3.
Every other cell is dead in the next generation.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	if alive {
		return Survives(neighbors)
	}
	return neighbors == BirthNeighbors
}

// Survives reports whether a live cell with the given live-neighbor count stays alive
func Survives(neighbors int) bool {
	return neighbors >= MinSurvivors && neighbors <= MaxSurvivors
}
