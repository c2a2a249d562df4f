package game

// PlayerSummary is a read-only snapshot of one player's position, meant for
// display and logging.
type PlayerSummary struct {
	Player       int
	Agent        string
	Alive        bool
	Territories  int
	Armies       int
	Continents   int
	LargestGroup int // Size of the largest connected group of owned territories
	Cards        int
	Mission      string
	MissionScore float64
	Standing     float64 // Resource share against the strongest opponent, between -1 and 1
}

// Summaries returns a snapshot of every player in id order.
func (g *Game) Summaries() []PlayerSummary {
	summaries := make([]PlayerSummary, len(g.agents))
	for p, seat := range g.seats {
		score, _ := seat.Mission.Score(g.board)
		summaries[p] = PlayerSummary{
			Player:       p,
			Agent:        g.agents[p].Name(),
			Alive:        g.IsAlive(p),
			Territories:  g.board.TerritoryCount(p),
			Armies:       g.board.ArmyCount(p),
			Continents:   g.board.ContinentCount(p),
			LargestGroup: g.board.LargestGroup(p),
			Cards:        seat.Hand.Total(),
			Mission:      seat.Mission.Description(),
			MissionScore: score,
			Standing:     EvaluateResources(g.board, p, len(g.agents)),
		}
	}
	return summaries
}

// EvaluateResources tallies territories, armies and continent bonuses of the
// player against the strongest opponent on each count, to a score between -1
// and 1.
func EvaluateResources(b *Board, player, players int) float64 {
	territories := make([]float64, players)
	armies := make([]float64, players)
	bonus := make([]float64, players)
	for t, owner := range b.owners {
		territories[owner]++
		armies[owner] += float64(b.armies[t])
	}
	for c, continent := range b.topology.Continents {
		if owner, ok := b.ContinentOwner(c); ok {
			bonus[owner] += float64(continent.Bonus)
		}
	}
	score := normalize(territories[player], strongestOpponent(territories, player)) +
		normalize(armies[player], strongestOpponent(armies, player)) +
		normalize(bonus[player], strongestOpponent(bonus, player))
	return score / 3.0
}

func strongestOpponent(values []float64, player int) float64 {
	best := 0.0
	for p, v := range values {
		if p != player && v > best {
			best = v
		}
	}
	return best
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}

// LargestGroup returns the size of the largest connected group of territories
// owned by the player.
func (b *Board) LargestGroup(player int) int {
	visited := make([]bool, len(b.owners))
	largest := 0
	for t, owner := range b.owners {
		if owner == player && !visited[t] {
			largest = max(largest, b.dfs(t, visited))
		}
	}
	return largest
}

// dfs returns the size of the friendly group containing start that has not
// been visited yet.
func (b *Board) dfs(start int, visited []bool) int {
	if visited[start] {
		return 0
	}
	visited[start] = true
	size := 1
	for n := range b.FriendlyNeighbors(start) {
		size += b.dfs(n, visited)
	}
	return size
}
