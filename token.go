// SPDX-License-Identifier: MIT
package recipe

import (
	"strings"
)

type (
	// Kind int holding an identifier for the Token variants.
	Kind int

	// Token is one recognized unit of a recipe document.
	Token struct {
		// Src is the raw source span consumed for this Token, delimiters
		// included.
		Src string

		// Val is the semantic payload: the ingredient/material name, timer
		// duration, metadata value, comment body, backstory text or the
		// verbatim word/space run.
		Val string

		// Key is the metadata key; only set for KindMetadata.
		Key string

		// Amount is the ingredient amount; only set for KindIngredient with
		// HasAmount true.
		Amount string

		HasAmount bool

		Kind Kind

		// Pos is the starting position, (in bytes) of this Token.
		Pos int
	}

	// Tokens is an ordered token sequence covering a whole document.
	Tokens []Token
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_              Kind = iota // Consume 0 to start actual numbering at 1.
	KindMetadata               // `>> key: value` document metadata line.
	KindIngredient             // `{name}` with an optional `(amount)`.
	KindTimer                  // `t{duration}`.
	KindMaterial               // `m{name}`.
	KindWord                   // Run of non-whitespace prose.
	KindSpace                  // Run of whitespace, preserved for reconstruction.
	KindComment                // `/* text */`.
	KindBackstory              // Trailing narrative after a `---` line.
)

var kindNames = map[Kind]string{
	KindMetadata:   "metadata",
	KindIngredient: "ingredient",
	KindTimer:      "timer",
	KindMaterial:   "material",
	KindWord:       "word",
	KindSpace:      "space",
	KindComment:    "comment",
	KindBackstory:  "backstory",
}

// String obtains the Kind's name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "unknown"
}

// String renders the Token as it reads with markup stripped: an ingredient
// contributes its name (the amount is dropped), metadata & comments
// contribute nothing, everything else contributes its payload verbatim.
func (t Token) String() string {
	switch t.Kind {
	case KindMetadata, KindComment:
		return ""
	default:
		return t.Val
	}
}

// Render reassembles the document's prose with all markup stripped.
func (ts Tokens) Render() string {
	var buffer strings.Builder
	for index := range ts {
		buffer.WriteString(ts[index].String())
	}

	return buffer.String()
}

// Source reassembles the original document from the tokens' source spans.
//
// The result is byte-for-byte equal to the parsed input: every input
// character belongs to exactly one token.
func (ts Tokens) Source() string {
	var buffer strings.Builder
	for index := range ts {
		buffer.WriteString(ts[index].Src)
	}

	return buffer.String()
}
