package db

// Comparison is a gene expected in both compared species.
type Comparison struct {
	Gene   string `json:"gene"`
	Count1 int    `json:"count1"`
	Count2 int    `json:"count2"`
}

// Compare lists the genes two species have in common, in the order they first
// appear for the first species.
func Compare(ref *SpeciesReference, species1, species2, database string) ([]Comparison, error) {

	genes1, err := ref.GenesFor(species1, database)
	if err != nil {
		return nil, err
	}
	genes2, err := ref.GenesFor(species2, database)
	if err != nil {
		return nil, err
	}

	var out []Comparison
	seen := make(map[string]bool)

	for _, e := range ref.Entries(species1, database) {
		if seen[e.Gene] {
			continue
		}
		seen[e.Gene] = true

		c2, ok := genes2[e.Gene]
		if !ok {
			continue
		}
		out = append(out, Comparison{Gene: e.Gene, Count1: genes1[e.Gene], Count2: c2})
	}

	return out, nil
}
