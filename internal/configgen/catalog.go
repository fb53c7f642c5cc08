// Package configgen computes a minimum-size family of build configurations
// covering every valid pair of command-line options, using an embedded SAT
// solver to search for the cover.
package configgen

// Option is a single toggle that may be enabled in a configuration.
type Option struct {
	Flag   string // long flag, e.g. "--debug"
	Abbrev string // short flag printed instead of Flag when non-empty
}

// Catalog is the compile-time-fixed set of options, their abbreviations, and
// the pairs of options that may never be enabled together in the same
// configuration. The table is hand-maintained here, mirroring the set baked
// into the reference tool it replaces; it is not derived from the
// feature-metadata generator's CSV inputs.
type Catalog struct {
	Options      []Option
	Incompatible [][2]string // pairs of Flag values that clash
	// Requires maps a Flag to the set of Flags of which at least one must
	// also be enabled whenever that Flag is enabled.
	Requires map[string][]string
}

// DefaultCatalog is the option set gencombi works on; its command line has
// no option to supply a different catalog.
var DefaultCatalog = Catalog{
	Options: []Option{
		{Flag: "--pedantic", Abbrev: "-p"},
		{Flag: "--debug", Abbrev: "-g"},
		{Flag: "--check", Abbrev: "-c"},
		{Flag: "--symbols", Abbrev: "-s"},
		{Flag: "--no-sort"},
		{Flag: "--no-block"},
		{Flag: "--no-flex"},
		{Flag: "--no-learn"},
		{Flag: "--no-reduce"},
		{Flag: "--no-restart"},
		{Flag: "--no-stable"},
	},
	Incompatible: [][2]string{
		{"--check", "--debug"},
		{"--debug", "--symbols"},
		{"--no-learn", "--no-reduce"},
		{"--no-restart", "--no-stable"},
	},
	Requires: map[string][]string{
		// Pedantic mode only has something to enforce if assertions
		// (--check) or the full debugging instrumentation (--debug) are
		// actually compiled in.
		"--pedantic": {"--check", "--debug"},
	},
}

// shorten returns the abbreviation configured for flag, or flag itself.
func (c Catalog) shorten(flag string) string {
	for _, o := range c.Options {
		if o.Flag == flag && o.Abbrev != "" {
			return o.Abbrev
		}
	}
	return flag
}

// valid reports whether options p and q (by index into c.Options) may be
// enabled together in the same configuration.
func (c Catalog) valid(p, q int) bool {
	a, b := c.Options[p].Flag, c.Options[q].Flag
	for _, pair := range c.Incompatible {
		if (pair[0] == a && pair[1] == b) || (pair[0] == b && pair[1] == a) {
			return false
		}
	}
	return true
}

// requirementIndices returns, for option p, the indices of the options of
// which at least one must be enabled whenever p is. A nil result means p
// carries no requirement.
func (c Catalog) requirementIndices(p int) []int {
	alts, ok := c.Requires[c.Options[p].Flag]
	if !ok {
		return nil
	}
	indices := make([]int, 0, len(alts))
	for _, flag := range alts {
		for i, o := range c.Options {
			if o.Flag == flag {
				indices = append(indices, i)
				break
			}
		}
	}
	return indices
}
