package mdast

// Kind identifies mdast node type. The set is closed: anything the decoder
// does not recognize becomes KindUnknown and is carried through untouched.
type Kind string

const (
	KindRoot       Kind = "root"
	KindBlockquote Kind = "blockquote"
	KindList       Kind = "list"
	KindTable      Kind = "table"
	KindTableRow   Kind = "tableRow"

	KindDelete        Kind = "delete"
	KindEmphasis      Kind = "emphasis"
	KindHeading       Kind = "heading"
	KindLink          Kind = "link"
	KindLinkReference Kind = "linkReference"
	KindListItem      Kind = "listItem"
	KindParagraph     Kind = "paragraph"
	KindStrong        Kind = "strong"
	KindTableCell     Kind = "tableCell"

	KindText       Kind = "text"
	KindInlineMath Kind = "inlineMath"
	KindMath       Kind = "math"
	KindInlineCode Kind = "inlineCode"

	KindBreak              Kind = "break"
	KindThematicBreak      Kind = "thematicBreak"
	KindImage              Kind = "image"
	KindImageReference     Kind = "imageReference"
	KindHTML               Kind = "html"
	KindYAML               Kind = "yaml"
	KindCode               Kind = "code"
	KindDefinition         Kind = "definition"
	KindFootnoteDefinition Kind = "footnoteDefinition"
	KindFootnoteReference  Kind = "footnoteReference"

	KindUnknown Kind = "unknown"
)

// Class groups node kinds by the way spacing treats them.
type Class int

const (
	ClassUnknown Class = iota
	// ClassStructural containers hold block content only, they are recursed
	// into but their children never form inline boundaries.
	ClassStructural
	// ClassInline containers hold inline content, every pair of adjacent
	// children is a boundary.
	ClassInline
	ClassText
	ClassMath
	ClassCode
	// ClassOpaque leaves are never changed and break any pending spacing.
	ClassOpaque
)

var kinds = []Kind{
	KindRoot, KindBlockquote, KindList, KindTable, KindTableRow,
	KindDelete, KindEmphasis, KindHeading, KindLink, KindLinkReference,
	KindListItem, KindParagraph, KindStrong, KindTableCell,
	KindText, KindInlineMath, KindMath, KindInlineCode,
	KindBreak, KindThematicBreak, KindImage, KindImageReference, KindHTML,
	KindYAML, KindCode, KindDefinition, KindFootnoteDefinition, KindFootnoteReference,
	KindUnknown,
}

// Kinds returns all known node kinds including KindUnknown.
func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

// ParseKind maps mdast type name to Kind.
func ParseKind(name string) Kind {
	k := Kind(name)
	if k == KindUnknown {
		return KindUnknown
	}
	if k.Class() == ClassUnknown {
		return KindUnknown
	}
	return k
}

func (k Kind) Class() Class {
	switch k {
	case KindRoot, KindBlockquote, KindList, KindTable, KindTableRow:
		return ClassStructural
	case KindDelete, KindEmphasis, KindHeading, KindLink, KindLinkReference,
		KindListItem, KindParagraph, KindStrong, KindTableCell:
		return ClassInline
	case KindText:
		return ClassText
	case KindInlineMath, KindMath:
		return ClassMath
	case KindInlineCode:
		return ClassCode
	case KindBreak, KindThematicBreak, KindImage, KindImageReference, KindHTML,
		KindYAML, KindCode, KindDefinition, KindFootnoteDefinition, KindFootnoteReference:
		return ClassOpaque
	default:
		return ClassUnknown
	}
}

// IsContainer reports whether children of the node take part in formatting.
func (k Kind) IsContainer() bool {
	c := k.Class()
	return c == ClassStructural || c == ClassInline
}

// HasValue reports whether mdast defines literal "value" for the kind.
func (k Kind) HasValue() bool {
	switch k {
	case KindText, KindInlineMath, KindMath, KindInlineCode, KindHTML, KindYAML, KindCode:
		return true
	}
	return false
}

func (c Class) String() string {
	switch c {
	case ClassStructural:
		return "structural"
	case ClassInline:
		return "inline"
	case ClassText:
		return "text"
	case ClassMath:
		return "math"
	case ClassCode:
		return "code"
	case ClassOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}
