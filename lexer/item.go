// SPDX-License-Identifier: MIT
package lexer

type (
	// ItemID int holding an identifier for the Item tokens
	ItemID int

	// Item type holding the scan result for one recognized unit of input.
	Item struct {
		Err error

		// Src is the raw source span consumed for this Item, delimiters
		// included.
		//
		// Concatenating the Src of every Item emitted for a document
		// reproduces the document byte for byte.
		Src string

		// Val is the semantic payload of this Item.
		Val string

		// Key is the metadata key; only set for ItemMetadata, Val then holds
		// the metadata value.
		Key string

		// Amount is the ingredient amount; only set for ItemIngredient with
		// HasAmount true.
		//
		// Captured verbatim, an amount of ` 1/2 ` keeps its padding.
		Amount string

		HasAmount bool

		ID ItemID // The type of this Item

		Pos int // The starting position, (in bytes) of this Item
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_              = iota // Consume 0 to start actual numbering at 1.
	ItemError             // Notify occurrence of an `error`.
	ItemEOF               // End of the file
	ItemMetadata          // `>> key: value` document metadata line.
	ItemIngredient        // `{name}` with an optional `(amount)`.
	ItemTimer             // `t{duration}`.
	ItemMaterial          // `m{name}`.
	ItemWord              // Run of non-whitespace prose.
	ItemSpace             // Run of whitespace, preserved for reconstruction.
	ItemComment           // `/* text */`.
	ItemBackstory         // Trailing narrative after a `---` line.
)
