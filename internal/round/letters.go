package round

// isComposable reports whether word can be spelled by drawing letters from
// root, using each letter of root at most as many times as it occurs there.
// Order does not matter; only counts do.
func isComposable(root, word string) bool {
	pool := letterCounts(root)
	for _, r := range word {
		if pool[r] == 0 {
			return false
		}
		pool[r]--
	}
	return true
}

// letterCounts builds the multiset of runes in s.
func letterCounts(s string) map[rune]int {
	counts := make(map[rune]int, len(s))
	for _, r := range s {
		counts[r]++
	}
	return counts
}
