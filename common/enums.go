// Enums shared by configuration, tree I/O and command line handling. Keep
// them here so mdast does not have to depend on config.
package common

//go:generate go tool go-enum --names --marshal

// Serialization of the syntax tree.
// ENUM(json, yaml)
type TreeFmt int

// Ext returns canonical file extension for the tree serialization.
func (f TreeFmt) Ext() string {
	switch f {
	case TreeFmtJson:
		return ".json"
	case TreeFmtYaml:
		return ".yaml"
	default:
		// this should never happen
		panic("unsupported tree format requested")
	}
}

// Specification of requested output serialization, same means "as source".
// ENUM(same, json, yaml)
type OutputFmt int

// Tree resolves requested output serialization against the source one.
func (o OutputFmt) Tree(src TreeFmt) TreeFmt {
	switch o {
	case OutputFmtJson:
		return TreeFmtJson
	case OutputFmtYaml:
		return TreeFmtYaml
	default:
		return src
	}
}
