package state

// Viewport tracks the first visible row of a scrolling list.
type Viewport struct {
	Offset int
}

// PageSize returns how many rows a page move covers.
func PageSize(total, maxVisible int) int {
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// MoveBy shifts cursor by delta within [0, total).
func MoveBy(cursor, total, delta int) int {
	if total == 0 {
		return 0
	}
	if cursor < 0 {
		cursor = 0
	}
	cursor += delta
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= total {
		cursor = total - 1
	}
	return cursor
}

// Wrap moves cursor by one step in either direction, wrapping at the ends.
func Wrap(cursor, total, delta int) int {
	if total == 0 {
		return 0
	}
	cursor += delta
	if cursor < 0 {
		return total - 1
	}
	if cursor >= total {
		return 0
	}
	return cursor
}

// Ensure adjusts the offset so row stays within a window of maxVisible rows.
func (v *Viewport) Ensure(row, total, maxVisible int) {
	if total == 0 || maxVisible <= 0 {
		v.Offset = 0
		return
	}
	if row < 0 {
		row = 0
	}
	if row >= total {
		row = total - 1
	}
	maxOffset := total - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if v.Offset > maxOffset {
		v.Offset = maxOffset
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
	if row < v.Offset {
		v.Offset = row
	}
	if upper := v.Offset + maxVisible - 1; row > upper {
		v.Offset = row - maxVisible + 1
		if v.Offset > maxOffset {
			v.Offset = maxOffset
		}
	}
}

// Window returns the half-open range of rows to draw.
func (v *Viewport) Window(total, maxVisible int) (int, int) {
	if maxVisible <= 0 || total <= maxVisible {
		return 0, total
	}
	start := v.Offset
	if start < 0 {
		start = 0
	}
	if start+maxVisible > total {
		start = total - maxVisible
	}
	return start, start + maxVisible
}
