package configgen

// EnumerateAll depth-first enumerates every combination of at most k options
// (by increasing size) and keeps the ones whose pairwise validity matches
// onlyInvalid: by default the valid configurations, or with onlyInvalid set
// the clashing combinations instead. Validity is only checked once a
// combination is complete, matching the reference generator this is
// grounded on, which explores the full subset tree before filtering.
func EnumerateAll(catalog Catalog, k int, onlyInvalid bool) []Configuration {
	n := len(catalog.Options)
	var out []Configuration
	picked := make([]int, 0, k)

	var choose func(start, remaining int)
	choose = func(start, remaining int) {
		if remaining == 0 {
			if validSelection(catalog, picked) != onlyInvalid {
				out = append(out, namesOf(catalog, picked))
			}
			return
		}
		for c := start; c < n; c++ {
			picked = append(picked, c)
			choose(c+1, remaining-1)
			picked = picked[:len(picked)-1]
		}
	}

	for size := 0; size <= k; size++ {
		choose(0, size)
	}
	return out
}

func validSelection(catalog Catalog, picked []int) bool {
	for i := 0; i+1 < len(picked); i++ {
		for j := i + 1; j < len(picked); j++ {
			if !catalog.valid(picked[i], picked[j]) {
				return false
			}
		}
	}
	return true
}

func namesOf(catalog Catalog, picked []int) Configuration {
	cfg := make(Configuration, len(picked))
	for i, p := range picked {
		cfg[i] = catalog.shorten(catalog.Options[p].Flag)
	}
	return cfg
}
