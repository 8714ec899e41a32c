package extract

// SelectorTable maps each profile field to an ordered list of CSS selector
// candidates. Candidates are evaluated in order and the first one producing
// non-empty trimmed text wins.
//
// The table is versioned data shipped with this package: when the site
// markup changes, this table changes, not the extraction algorithm. Tests
// inject synthetic tables instead of depending on the live markup.
type SelectorTable struct {
	DisplayName []string
	Headline    []string
	Location    []string
	Summary     []string
}

// DefaultSelectors returns the selector table for the current profile page
// markup, newest class names first with legacy fallbacks behind them.
func DefaultSelectors() SelectorTable {
	return SelectorTable{
		DisplayName: []string{
			".text-heading-xlarge",
			"h1",
		},
		Headline: []string{
			".text-body-medium.break-words",
			".pv-top-card-section__headline",
		},
		Location: []string{
			".text-body-small.inline.t-black--light.break-words",
			".pv-top-card-section__location",
		},
		Summary: []string{
			"section.pv-about-section p",
			"#about",
			".display-flex.ph5.pv3 span",
		},
	}
}
