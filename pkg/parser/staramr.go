package parser

// staramr resfinder.tsv
var starAmrHeader = []string{
	"Isolate ID", "Gene", "Predicted Phenotype", "%Identity", "%Overlap",
	"HSP Length/Total Length", "Contig", "Start", "End", "Accession",
}

func NewStarAmr() FormatParser {
	return &columnParser{
		format:   FormatStarAmr,
		required: starAmrHeader,
		columns: columnMap{
			SourceFile: "Isolate ID",
			SequenceID: "Contig",
			Start:      "Start",
			End:        "End",
			Gene:       "Gene",
			Coverage:   "%Overlap",
			Identity:   "%Identity",
			Annotation: "Predicted Phenotype",
		},
		database: "resfinder",
	}
}
