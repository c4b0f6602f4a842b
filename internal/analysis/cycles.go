// Package analysis extracts summary statistics from completed space-time
// grids, as consumed by parameter sweeps.
package analysis

// Cycles walks the grid in time order and returns the length of every cycle
// observed: each time a row reappears, the distance to its previous
// occurrence is recorded. The walk stops at the first fixed point (a row equal
// to its successor). The final row has no successor and is never inspected.
func Cycles(grid [][]uint8) []int {
	var cycles []int
	last := make(map[string]int)
	for i := 0; i+1 < len(grid); i++ {
		row := grid[i]
		if string(row) == string(grid[i+1]) {
			break
		}
		key := string(row)
		if prev, ok := last[key]; ok {
			cycles = append(cycles, i-prev)
		}
		last[key] = i
	}
	return cycles
}

// Mean returns the arithmetic mean of values, or 0 for an empty slice.
func Mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// MeanCycle is Mean(Cycles(grid)).
func MeanCycle(grid [][]uint8) float64 {
	return Mean(Cycles(grid))
}

// CountZeros reports how many values are exactly zero, i.e. how many sweep
// points never produced a cycle.
func CountZeros(values []float64) int {
	n := 0
	for _, v := range values {
		if v == 0 {
			n++
		}
	}
	return n
}

// Activity returns the fraction of cells in row that differ from quiescent.
func Activity(row []uint8, quiescent uint8) float64 {
	if len(row) == 0 {
		return 0
	}
	active := 0
	for _, v := range row {
		if v != quiescent {
			active++
		}
	}
	return float64(active) / float64(len(row))
}
