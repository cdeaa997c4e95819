package model

// ServerMessage is one gob frame of the spectator feed. Only the populated
// slices carry news.
type ServerMessage struct {
	Setup        []Setup
	Sealed       []Sealed
	Eliminations []Elimination
	Results      []RoundResult
}

type Setup struct {
	RoundID    string
	Round      int
	Cols, Rows int
	Players    map[int]Coord
}

type Sealed struct {
	Col, Row int
	Walls    int
}

type Elimination struct {
	Victim    int
	Attacker  int
	HasKiller bool
}

type RoundResult struct {
	RoundID    string
	Round      int
	Players    int
	Kills      [][]int
	Eliminated []int
}
