package diff

// OpType classifies a line in an edit script.
type OpType int

const (
	Equal  OpType = iota // Line is unchanged between a and b.
	Insert               // Line was inserted (present in b only).
	Delete               // Line was deleted (present in a only).
)

// Op is a single operation in an edit script produced by LCS.
type Op struct {
	Type OpType
	Line string
}

// LCS computes an edit script transforming a into b from a longest common
// subsequence table over whole lines.
//
// The table is filled bottom-up: lcs[i][j] is the LCS length of a[i:] and
// b[j:]. Backtracking starts at (0, 0) and, when the current lines differ,
// emits an Insert whenever skipping b[j] does not shorten the remaining LCS
// (lcs[i][j+1] >= lcs[i+1][j]), otherwise a Delete. The tie-break is fixed,
// so the script is deterministic.
//
// Time and memory are O(len(a) * len(b)).
func LCS(a, b []string) []Op {
	m := len(a)
	n := len(b)

	// Handle trivial cases.
	if m == 0 && n == 0 {
		return nil
	}
	if m == 0 {
		ops := make([]Op, n)
		for i, line := range b {
			ops[i] = Op{Type: Insert, Line: line}
		}
		return ops
	}
	if n == 0 {
		ops := make([]Op, m)
		for i, line := range a {
			ops[i] = Op{Type: Delete, Line: line}
		}
		return ops
	}

	// Flat (m+1) x (n+1) table; row m and column n stay zero.
	width := n + 1
	table := make([]int, (m+1)*width)
	at := func(i, j int) int { return table[i*width+j] }

	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i*width+j] = at(i+1, j+1) + 1
			} else {
				table[i*width+j] = max(at(i+1, j), at(i, j+1))
			}
		}
	}

	ops := make([]Op, 0, m+n-at(0, 0))
	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i < m && j < n && a[i] == b[j]:
			ops = append(ops, Op{Type: Equal, Line: a[i]})
			i++
			j++
		case j < n && (i == m || at(i, j+1) >= at(i+1, j)):
			ops = append(ops, Op{Type: Insert, Line: b[j]})
			j++
		default:
			ops = append(ops, Op{Type: Delete, Line: a[i]})
			i++
		}
	}
	return ops
}
