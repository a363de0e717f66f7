package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yumyai/scagaire/logger"
	"github.com/yumyai/scagaire/pkg/table"
	"go.uber.org/zap"
)

// Hint is the optional format named by the user; HintNone means detect.
type Hint string

const (
	HintNone           Hint = ""
	HintAbricate       Hint = "abricate"
	HintAbricateLegacy Hint = "abricate-legacy"
	HintStarAmr        Hint = "staramr"
	HintRgi            Hint = "rgi"
)

func ParseHint(v string) (Hint, error) {
	switch h := Hint(strings.ToLower(strings.TrimSpace(v))); h {
	case HintNone, HintAbricate, HintAbricateLegacy, HintStarAmr, HintRgi:
		return h, nil
	default:
		return HintNone, &FormatError{Source: "--type", Msg: fmt.Sprintf("unknown results type %q (expected abricate, staramr or rgi)", v)}
	}
}

// Parsers returns the variants in detection priority order.
func Parsers() []FormatParser {
	return []FormatParser{
		NewAbricate(),
		NewAbricateLegacy(),
		NewStarAmr(),
		NewRgi(),
	}
}

// candidates narrows the priority list to the variants a hint allows.
func candidates(hint Hint) []FormatParser {
	all := Parsers()
	if hint == HintNone {
		return all
	}

	var out []FormatParser
	for _, p := range all {
		switch hint {
		case HintAbricate:
			if p.Format() == FormatAbricate || p.Format() == FormatAbricateLegacy {
				out = append(out, p)
			}
		default:
			if string(p.Format()) == string(hint) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Detect reads a report from disk and parses it with the first variant whose
// header validates, or with the hinted variant.
func Detect(path string, hint Hint) (*Report, error) {

	f, err := os.Open(path)
	if err != nil {
		return nil, &FormatError{Source: path, Format: Format(hint), Msg: "cannot read input", Err: err}
	}
	defer f.Close()

	return DetectReader(f, path, hint)
}

func DetectReader(r io.Reader, source string, hint Hint) (*Report, error) {

	t, err := table.Read(r)
	if err != nil {
		return nil, &FormatError{Source: source, Format: Format(hint), Msg: "cannot read input", Err: err}
	}

	for _, p := range candidates(hint) {
		if !p.IsValid(t) {
			continue
		}

		logger.Debug("Detected format", zap.String("source", source), zap.String("format", string(p.Format())))
		return p.Parse(source, t)
	}

	if hint != HintNone {
		return nil, &FormatError{Source: source, Format: Format(hint), Msg: "file does not match the requested results type", Err: ErrUnrecognizedFormat}
	}
	return nil, &FormatError{Source: source, Msg: "no supported AMR report header found", Err: ErrUnrecognizedFormat}
}
