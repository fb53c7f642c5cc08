package features

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Diagnostics collects the non-fatal warnings produced while loading a Set;
// in pedantic mode the loader turns the first one into an error instead of
// accumulating it here.
type Diagnostics []string

func (d Diagnostics) String() string {
	out := ""
	for _, w := range d {
		out += w + "\n"
	}
	return out
}

// LoadOptions controls how strictly a Set is validated while loading.
type LoadOptions struct {
	// Pedantic turns every warning (unsorted features, unsorted pairs,
	// redundant transitive implications) into a fatal error.
	Pedantic bool
}

func (o LoadOptions) warn(diags *Diagnostics, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if o.Pedantic {
		return fmt.Errorf("%s (treated as error)", msg)
	}
	*diags = append(*diags, msg)
	return nil
}

// Load reads the three CSV sources that together describe a feature
// catalog: features (option, usage-text rows), implied (option, option
// rows where the first implies the second), and clashing (option, option
// rows naming pairs that can't both be disabled). It validates duplicates,
// unknown options, self-contradicting pairs, and emits Diagnostics for
// anything that is a warning rather than a hard error.
func Load(featuresCSV, impliedCSV, clashingCSV io.Reader, opts LoadOptions) (*Set, Diagnostics, error) {
	var diags Diagnostics

	feats, err := readFeatures(featuresCSV, opts, &diags)
	if err != nil {
		return nil, diags, err
	}

	s := &Set{
		Features: feats,
		Implied:  make([][]int, len(feats)),
		byOption: make(map[string]int, len(feats)),
	}
	for i, f := range feats {
		s.byOption[f.Option] = i
	}

	impliedPairs, err := readPairs(impliedCSV, s, opts, &diags, "implied.csv", nil)
	if err != nil {
		return nil, diags, err
	}
	for _, p := range impliedPairs {
		s.Implied[p[0]] = append(s.Implied[p[0]], p[1])
	}

	clashingPairs, err := readPairs(clashingCSV, s, opts, &diags, "clashing.csv", impliedPairs)
	if err != nil {
		return nil, diags, err
	}
	s.Clashing = clashingPairs

	computeTransitiveClosure(s)
	if err := checkCyclicDependencies(s, opts, &diags); err != nil {
		return nil, diags, err
	}
	if err := checkClashingNotImplied(s); err != nil {
		return nil, diags, err
	}

	return s, diags, nil
}

func readFeatures(r io.Reader, opts LoadOptions, diags *Diagnostics) ([]Feature, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading features.csv: %w", err)
	}

	seen := map[string]bool{}
	feats := make([]Feature, 0, len(rows))
	var maxLen int
	var maxLine string

	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("features.csv line %d: expected 2 fields, got %d", i+1, len(row))
		}
		option, usage := row[0], row[1]
		name, err := optionToName(option)
		if err != nil {
			return nil, fmt.Errorf("features.csv line %d: %w", i+1, err)
		}
		if seen[option] {
			return nil, fmt.Errorf("features.csv line %d: duplicated feature %q", i+1, option)
		}
		seen[option] = true
		if len(feats) > 0 && feats[len(feats)-1].Option > option {
			if err := opts.warn(diags, "features.csv line %d: feature %q unsorted", i+1, option); err != nil {
				return nil, err
			}
		}
		define, err := optionToDefine(option)
		if err != nil {
			return nil, fmt.Errorf("features.csv line %d: %w", i+1, err)
		}
		feats = append(feats, Feature{Option: option, Usage: usage, Name: name, Define: define})
		if len(option)+len(usage) > maxLen {
			maxLen = len(option) + len(usage)
			maxLine = option
		}
	}

	if maxLen > 74 {
		if err := opts.warn(diags, "maximum feature %q and its usage together too long", maxLine); err != nil {
			return nil, err
		}
	}

	return feats, nil
}

// readPairs reads a two-column CSV of feature-option pairs into index pairs
// into s.Features. existing, when non-nil, is an already-loaded pair list
// (implied.csv) checked for overlap with the one being read (clashing.csv):
// a pair cannot be both implied and clashing.
func readPairs(r io.Reader, s *Set, opts LoadOptions, diags *Diagnostics, path string, existing [][2]int) ([][2]int, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	pairs := make([][2]int, 0, len(rows))
	seen := map[[2]int]bool{}

	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("%s line %d: expected 2 fields, got %d", path, i+1, len(row))
		}
		a, b := s.indexOf(row[0]), s.indexOf(row[1])
		if a < 0 {
			return nil, fmt.Errorf("%s line %d: feature %q not listed in features.csv", path, i+1, row[0])
		}
		if b < 0 {
			return nil, fmt.Errorf("%s line %d: feature %q not listed in features.csv", path, i+1, row[1])
		}
		pair := [2]int{a, b}
		swapped := [2]int{b, a}
		if seen[pair] {
			return nil, fmt.Errorf("%s line %d: pair '%s,%s' already occurs", path, i+1, row[0], row[1])
		}
		if seen[swapped] {
			return nil, fmt.Errorf("%s line %d: pair '%s,%s' occurs already reversed", path, i+1, row[0], row[1])
		}

		if existing != nil {
			if s.Features[a].Option >= s.Features[b].Option {
				if err := opts.warn(diags, "%s line %d: features in pair '%s,%s' unsorted", path, i+1, row[0], row[1]); err != nil {
					return nil, err
				}
			}
			for _, e := range existing {
				if e == pair || e == swapped {
					return nil, fmt.Errorf("%s line %d: pair '%s,%s' already in implied.csv", path, i+1, row[0], row[1])
				}
			}
		}

		if len(pairs) > 0 {
			prev := pairs[len(pairs)-1]
			if less := lessPair(s, prev, pair); !less {
				if err := opts.warn(diags, "%s line %d: pair '%s,%s' unsorted", path, i+1, row[0], row[1]); err != nil {
					return nil, err
				}
			}
		}

		seen[pair] = true
		pairs = append(pairs, pair)
	}

	return pairs, nil
}

func lessPair(s *Set, a, b [2]int) bool {
	ao, bo := s.Features[a[0]].Option, s.Features[b[0]].Option
	if ao != bo {
		return ao < bo
	}
	return s.Features[a[1]].Option < s.Features[b[1]].Option
}
