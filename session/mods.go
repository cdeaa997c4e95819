package session

// Mod is an upgrade a player can stack between rounds.
type Mod string

const (
	BlastBounce     Mod = "BLAST_BOUNCE"
	AmmoBlammo      Mod = "AMMO_BLAMMO"
	FasterReload    Mod = "FASTER_RELOAD"
	FasterBlaster   Mod = "FASTER_BLASTER"
	JustPlainFaster Mod = "JUST_PLAIN_FASTER"
	AutoBlaster     Mod = "AUTO_BLASTER"
	DashRecovery    Mod = "DASH_RECOVERY"
	Shield          Mod = "SHIELD"
	ScoreBoost      Mod = "SCORE_BOOST"
	Fireworks       Mod = "FIREWORKS"
)

type ModInfo struct {
	Name        string
	Description string
	MaxLevel    int
}

var Catalog = map[Mod]ModInfo{
	BlastBounce:     {"Blast Bounce", "Blasts bounce off walls. Bonus: Limited selfie immunity.", 3},
	AmmoBlammo:      {"Ammo Blammo", "Longer lasting consecutive blasting (more ammo)", 3},
	FasterReload:    {"Faster Reload", "Reload faster", 3},
	FasterBlaster:   {"Faster Blaster", "Blasts go faster", 3},
	JustPlainFaster: {"Just Plain Faster", "Move faster", 3},
	AutoBlaster:     {"Auto Blaster", "Hold down blast to auto-blast", 1},
	DashRecovery:    {"Dash Recovery", "Don't slow down as much. Dash again sooner.", 3},
	Shield:          {"Shield", "Withstand an extra blast", 3},
	ScoreBoost:      {"Score Boost", "Get an extra point for every player defeated", 3},
	Fireworks:       {"Fireworks", "Blasts burst like fireworks", 1},
}

// Levels is one player's upgrade sheet.
type Levels map[Mod]int

func (l Levels) Of(m Mod) int {
	return l[m]
}
