package parser

// Abricate 0.9.8 and later add STRAND and RESISTANCE to the legacy layout.
var abricateHeader = []string{
	"#FILE", "SEQUENCE", "START", "END", "STRAND", "GENE", "COVERAGE", "COVERAGE_MAP", "GAPS",
	"%COVERAGE", "%IDENTITY", "DATABASE", "ACCESSION", "PRODUCT", "RESISTANCE",
}

// Abricate 0.9.7.
var abricateLegacyHeader = []string{
	"#FILE", "SEQUENCE", "START", "END", "GENE", "COVERAGE", "COVERAGE_MAP", "GAPS",
	"%COVERAGE", "%IDENTITY", "DATABASE", "ACCESSION", "PRODUCT",
}

func NewAbricate() FormatParser {
	return &columnParser{
		format:   FormatAbricate,
		required: abricateHeader,
		columns: columnMap{
			SourceFile: "#FILE",
			SequenceID: "SEQUENCE",
			Start:      "START",
			End:        "END",
			Strand:     "STRAND",
			Gene:       "GENE",
			Coverage:   "%COVERAGE",
			Identity:   "%IDENTITY",
			Database:   "DATABASE",
			Annotation: "PRODUCT",
		},
	}
}

func NewAbricateLegacy() FormatParser {
	return &columnParser{
		format:   FormatAbricateLegacy,
		required: abricateLegacyHeader,
		columns: columnMap{
			SourceFile: "#FILE",
			SequenceID: "SEQUENCE",
			Start:      "START",
			End:        "END",
			Gene:       "GENE",
			Coverage:   "%COVERAGE",
			Identity:   "%IDENTITY",
			Database:   "DATABASE",
			Annotation: "PRODUCT",
		},
	}
}
