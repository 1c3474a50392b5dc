// Package ids defines the dense integer identifier types shared by the
// lexicon, forward index, and inverted index.
package ids

// DocId is a 1-based dense identifier over the collection. 0 never denotes
// a real document.
type DocId uint32

// TermId is a 1-based dense identifier over the vocabulary. 0 is reserved
// for "unknown/missing term" and must be skipped by every scoring loop.
type TermId uint32

// FieldId is a dense identifier for an indexed tag. 0 means "field not
// indexed".
type FieldId uint8

const (
	FieldNone FieldId = iota
	FieldBody
	FieldTitle
	FieldHeading
	FieldInlink
	FieldA
	FieldMainBody
	FieldApplet
	FieldObject
	FieldEmbed
)

// ScoredFields lists the fields the document feature extractor produces a
// per-field score column for, in the order the feature writer emits them.
var ScoredFields = [...]FieldId{FieldBody, FieldTitle, FieldHeading, FieldInlink, FieldA}

// CountedFields lists the fields tag-count features are derived from.
var CountedFields = [...]FieldId{FieldTitle, FieldHeading, FieldInlink, FieldMainBody, FieldApplet, FieldObject, FieldEmbed}

func (f FieldId) String() string {
	switch f {
	case FieldBody:
		return "body"
	case FieldTitle:
		return "title"
	case FieldHeading:
		return "heading"
	case FieldInlink:
		return "inlink"
	case FieldA:
		return "a"
	case FieldMainBody:
		return "mainbody"
	case FieldApplet:
		return "applet"
	case FieldObject:
		return "object"
	case FieldEmbed:
		return "embed"
	default:
		return "none"
	}
}
