package request

// SpeciesView selects how the species listing is presented.
type SpeciesView int

const (
	SpeciesViewSimple SpeciesView = iota
	SpeciesViewDetailed
	SpeciesViewOverview
)

func (v SpeciesView) String() string {
	switch v {
	case SpeciesViewDetailed:
		return "detailed"
	case SpeciesViewOverview:
		return "overview"
	default:
		return "simple"
	}
}

// NewSpeciesView falls back to the simple list for unknown names.
func NewSpeciesView(view string) SpeciesView {
	switch view {
	case "detailed":
		return SpeciesViewDetailed
	case "overview":
		return SpeciesViewOverview
	default:
		return SpeciesViewSimple
	}
}
