package tess

import "github.com/chewxy/math32"

// Dash defines a dash pattern for stroking.
// A dash pattern consists of alternating dash and gap lengths.
// For example, [5, 3] creates a pattern of 5 units dash, 3 units gap.
type Dash struct {
	// Array contains alternating dash/gap lengths.
	// If the array has an odd number of elements, it is logically duplicated
	// to create an even-length pattern (e.g., [5] becomes [5, 5]).
	Array []float32

	// Offset is the starting offset into the pattern.
	// The stroke begins at this point in the pattern cycle.
	Offset float32
}

// NewDash creates a dash pattern from alternating dash/gap lengths.
// If an odd number of elements is provided, the pattern is conceptually
// duplicated to create an even-length pattern.
//
// Examples:
//
//	NewDash(5, 3)        // 5 units dash, 3 units gap
//	NewDash(10, 5, 2, 5) // 10 dash, 5 gap, 2 dash, 5 gap
//	NewDash(5)           // equivalent to [5, 5]
//
// Returns nil if no lengths are provided or all lengths are zero.
func NewDash(lengths ...float32) *Dash {
	if len(lengths) == 0 {
		return nil
	}

	allZeroOrNeg := true
	for _, l := range lengths {
		if l > 0 {
			allZeroOrNeg = false
			break
		}
	}
	if allZeroOrNeg {
		return nil
	}

	// Take absolute values for any negative lengths
	normalized := make([]float32, len(lengths))
	for i, l := range lengths {
		normalized[i] = math32.Abs(l)
	}

	return &Dash{
		Array:  normalized,
		Offset: 0,
	}
}

// WithOffset returns a new Dash with the given offset.
// The offset determines where in the pattern the stroke begins.
func (d *Dash) WithOffset(offset float32) *Dash {
	if d == nil {
		return nil
	}
	return &Dash{
		Array:  d.Array,
		Offset: offset,
	}
}

// PatternLength returns the total length of one complete pattern cycle.
// For odd-length arrays, this includes the duplicated pattern.
func (d *Dash) PatternLength() float32 {
	if d == nil || len(d.Array) == 0 {
		return 0
	}

	var total float32
	for _, l := range d.Array {
		total += l
	}

	// If odd number of elements, pattern is duplicated
	if len(d.Array)%2 != 0 {
		total *= 2
	}

	return total
}

// IsDashed returns true if this pattern produces a dashed (non-solid) line.
func (d *Dash) IsDashed() bool {
	return d != nil && len(d.Array) > 0 && d.PatternLength() > 0
}

// NormalizedOffset returns the offset wrapped into [0, PatternLength).
func (d *Dash) NormalizedOffset() float32 {
	patLen := d.PatternLength()
	if patLen == 0 {
		return 0
	}
	off := math32.Mod(d.Offset, patLen)
	if off < 0 {
		off += patLen
	}
	return off
}

// Clone creates a deep copy of the dash pattern.
func (d *Dash) Clone() *Dash {
	if d == nil {
		return nil
	}
	arr := make([]float32, len(d.Array))
	copy(arr, d.Array)
	return &Dash{Array: arr, Offset: d.Offset}
}

// effectiveArray returns the pattern with odd-length arrays duplicated so
// the result always alternates dash, gap, dash, gap.
func (d *Dash) effectiveArray() []float32 {
	if len(d.Array)%2 == 0 {
		return d.Array
	}
	arr := make([]float32, 0, 2*len(d.Array))
	arr = append(arr, d.Array...)
	arr = append(arr, d.Array...)
	return arr
}

// splitPolyline cuts a polyline into the "on" runs of the dash pattern.
// A closed ring is treated as an open polyline whose last segment returns
// to the start. Each returned run has at least 2 points.
func (d *Dash) splitPolyline(points []Point, closed bool) [][]Point {
	pattern := d.effectiveArray()
	if len(pattern) == 0 {
		return [][]Point{points}
	}

	ring := points
	if closed && len(points) > 1 {
		ring = make([]Point, 0, len(points)+1)
		ring = append(ring, points...)
		ring = append(ring, points[0])
	}

	// Position within the pattern cycle.
	pos := d.NormalizedOffset()
	idx := 0
	for pos >= pattern[idx] {
		pos -= pattern[idx]
		idx = (idx + 1) % len(pattern)
	}
	on := idx%2 == 0

	var runs [][]Point
	var run []Point
	if on {
		run = append(run, ring[0])
	}

	for i := 1; i < len(ring); i++ {
		segStart := ring[i-1]
		segEnd := ring[i]
		segLen := segStart.Distance(segEnd)
		traveled := float32(0)

		for segLen-traveled > pattern[idx]-pos {
			traveled += pattern[idx] - pos
			cut := segStart.Lerp(segEnd, traveled/segLen)
			if on {
				run = append(run, cut)
				if len(run) >= 2 {
					runs = append(runs, run)
				}
				run = nil
			} else {
				run = append(run, cut)
			}
			on = !on
			pos = 0
			idx = (idx + 1) % len(pattern)
		}
		pos += segLen - traveled
		if on {
			run = append(run, segEnd)
		}
	}
	if len(run) >= 2 {
		runs = append(runs, run)
	}
	return runs
}
