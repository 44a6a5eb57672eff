package state

import (
	"lfmt/mdast"
	"lfmt/spacing"
	"lfmt/text"
)

// Formatter builds spacing formatter according to configuration.
func (e *LocalEnv) Formatter() *spacing.Formatter {
	sc := e.Cfg.Spacing

	skip := make([]mdast.Kind, 0, len(sc.SkipTypes))
	for _, name := range sc.SkipTypes {
		skip = append(skip, mdast.ParseKind(name))
	}

	return spacing.New(
		text.New(text.WithFullwidthFolding(sc.FoldFullwidth)),
		spacing.WithLogger(e.Log.Named("spacing")),
		spacing.WithTextNormalization(sc.NormalizeText),
		spacing.WithMathNormalization(sc.NormalizeMath),
		spacing.WithSkip(skip...),
	)
}
