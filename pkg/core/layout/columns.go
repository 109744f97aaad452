package layout

// PartitionOption adjusts the column breakpoint rule.
type PartitionOption func(*partitionConfig)

type partitionConfig struct {
	leading int
}

// WithLeading marks the first k sections as placed by the current pass.
// They count toward the shown total but never close a column, and the
// breakpoint is lowered by k when it is armed so that they still fill the
// first column.
func WithLeading(k int) PartitionOption {
	return func(c *partitionConfig) {
		if k > 0 {
			c.leading = k
		}
	}
}

// Partition distributes the shown sections across columns, filling them left
// to right. The column count is clamped to [1, len(shown)]; no sections
// yields no columns. Every column is non-empty and column sizes differ by at
// most one.
//
// The rule keeps a running shown count and a fractional breakpoint. The
// breakpoint is armed on the first section after the leading ones at
// shown + len(shown)/columns - 1 - leading. After each section, once the
// shown count reaches the breakpoint and columns remain, a new column starts
// and the breakpoint advances by len(shown)/columns. A break that fell due
// inside the leading sections is taken when the breakpoint is armed.
func Partition(shown []int, columns int, opts ...PartitionOption) [][]int {
	n := len(shown)
	if n == 0 {
		return nil
	}
	var cfg partitionConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.leading >= n {
		cfg.leading = n
	}
	if columns < 1 {
		columns = 1
	}
	if columns > n {
		columns = n
	}

	step := float64(n) / float64(columns)
	out := make([][]int, 1, columns)
	col := 1
	count := 0
	armed := false
	var breakpoint float64

	for i, section := range shown {
		if !armed && i >= cfg.leading {
			breakpoint = float64(count+1) + step - 1 - float64(cfg.leading)
			armed = true
			if count > 0 && float64(count) >= breakpoint && col < columns {
				out = append(out, nil)
				col++
				breakpoint += step
			}
		}
		out[col-1] = append(out[col-1], section)
		count++
		if !armed {
			continue
		}
		if float64(count) >= breakpoint && col < columns && i < n-1 {
			out = append(out, nil)
			col++
			breakpoint += step
		}
	}
	return out
}

// ColumnOf returns the 0-based column index of each section in columns.
func ColumnOf(columns [][]int) map[int]int {
	m := make(map[int]int)
	for i, col := range columns {
		for _, s := range col {
			m[s] = i
		}
	}
	return m
}
