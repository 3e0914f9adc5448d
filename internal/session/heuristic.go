package session

import (
	"math"
	"sort"

	"github.com/hexhive/hive-client/internal/hex"
)

// defaultPlacement computes where a piece freshly drawn from hand should
// sit before the user drags it: two rings out from the occupied cells, as
// close as possible to the legal placement cluster, never overlapping an
// existing piece. Callers hold mu.
func (s *Session) defaultPlacement() hex.Position {
	occupied := make(map[hex.Position]struct{})
	for _, pos := range s.game.OccupiedPositions() {
		occupied[pos] = struct{}{}
	}

	ring1 := make(map[hex.Position]struct{})
	for pos := range occupied {
		for _, adj := range pos.Adjacent() {
			if _, ok := occupied[adj]; ok {
				continue
			}
			ring1[adj] = struct{}{}
		}
	}

	ring2 := make(map[hex.Position]struct{})
	for pos := range ring1 {
		for _, adj := range pos.Adjacent() {
			if _, ok := occupied[adj]; ok {
				continue
			}
			if _, ok := ring1[adj]; ok {
				continue
			}
			ring2[adj] = struct{}{}
		}
	}

	candidates := make([]hex.Position, 0, len(ring2))
	for pos := range ring2 {
		candidates = append(candidates, pos)
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Less(candidates[j]) })

	if len(candidates) == 0 {
		return s.fallbackPlacement()
	}

	placeable := s.game.PlaceableTargets(s.activePlayer())
	best := candidates[0]
	bestTotal := math.MaxFloat64
	for _, pos := range candidates {
		total := 0.0
		for _, target := range placeable {
			total += pos.EuclideanDistance(target)
		}
		if total < bestTotal {
			best = pos
			bestTotal = total
		}
	}
	return best
}

// fallbackPlacement handles the degenerate early board: two columns left
// of the leftmost occupied column, vertically centered. Callers hold mu.
func (s *Session) fallbackPlacement() hex.Position {
	minX := 0
	for i, pos := range s.game.OccupiedPositions() {
		if i == 0 || pos.X < minX {
			minX = pos.X
		}
	}
	x := minX - 2
	var z int
	if x < 0 {
		z = -x / 2
	} else {
		z = int(math.Floor(float64(-x) / 2.0))
	}
	return hex.Position{X: x, Y: -x - z, Z: z}
}
