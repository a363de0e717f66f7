package parser

// RGI main output (txt), predictions against CARD.
var rgiHeader = []string{
	"ORF_ID", "Contig", "Start", "Stop", "Orientation", "Cut_Off", "Pass_Bitscore",
	"Best_Hit_Bitscore", "Best_Hit_ARO", "Best_Identities", "ARO", "Model_type",
	"SNPs_in_Best_Hit_ARO", "Other_SNPs", "Drug Class", "Resistance Mechanism",
	"AMR Gene Family", "Predicted_DNA", "Predicted_Protein", "CARD_Protein_Sequence",
	"Percentage Length of Reference Sequence", "ID", "Model_ID", "Nudged", "Note",
}

// RGI has no input file column; records take the report name as their source.
func NewRgi() FormatParser {
	return &columnParser{
		format:   FormatRgi,
		required: rgiHeader,
		columns: columnMap{
			SequenceID: "Contig",
			Start:      "Start",
			End:        "Stop",
			Strand:     "Orientation",
			Gene:       "Best_Hit_ARO",
			Coverage:   "Percentage Length of Reference Sequence",
			Identity:   "Best_Identities",
			Annotation: "Drug Class",
		},
		database: "card",
	}
}
