package stats

// TopGroups keeps the first n groups and folds the rest into one OtherLabel
// group. Groups must already be sorted largest first.
func TopGroups(groups []Group, n int) []Group {
	if n <= 0 || len(groups) <= n {
		return append([]Group(nil), groups...)
	}
	out := append([]Group(nil), groups[:n]...)
	rest := Group{Label: OtherLabel}
	for _, g := range groups[n:] {
		rest.Count += g.Count
		rest.Share += g.Share
	}
	return append(out, rest)
}
