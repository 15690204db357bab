package property

import (
	"sort"

	"github.com/antzucaro/matchr"
)

// Suggest returns up to `n` addresses from `records` most similar to
// `selected` by Jaro-Winkler similarity, most similar first. It is only a hint
// for display; Match never uses it.
func Suggest(records []SaleRecord, selected string, n int) []string {
	type candidate struct {
		address    string
		similarity float64
	}

	seen := map[string]struct{}{}
	var candidates []candidate
	for _, r := range records {
		if _, ok := seen[r.Address]; ok {
			continue
		}
		seen[r.Address] = struct{}{}

		similarity := matchr.JaroWinkler(selected, r.Address, false)
		if similarity > 0 {
			candidates = append(candidates, candidate{address: r.Address, similarity: similarity})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.address
	}
	return out
}
