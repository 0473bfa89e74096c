// SPDX-License-Identifier: MIT
package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"gitlab.com/halfroast/recipe/lexer"
)

// Parsing errors.
var (
	ErrParseRecipe = errors.New("failed to parse recipe")

	ErrEmptyRecipeSrc = errors.New("empty recipe source")
)

type (
	// ParseError describes a parse failure: the byte offset where scanning
	// stopped, the unconsumed remainder of the input & the expected
	// construct.
	//
	// Err unwraps to one of the lexer sentinels, [lexer.ErrMissingClosingBrace]
	// & co.
	ParseError struct {
		Err error

		// Remaining is the unconsumed input at the failure point.
		Remaining string

		// Offset is the failure position, (in bytes).
		Offset int
	}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Offset)
}

// Unwrap obtains the expected-construct sentinel.
func (e *ParseError) Unwrap() error { return e.Err }

// Parse scans a complete recipe document into its ordered token sequence.
//
// A failure anywhere aborts the whole parse; there is no partial-success
// mode. The Tokens are pure values, concurrent Parse calls on independent
// inputs share no state.
func Parse(ctx context.Context, input string) (tokens Tokens, err error) {
	if input == "" {
		err = ErrEmptyRecipeSrc
		return
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		l := lexer.New(input, lexer.WithLogger(fLogger))
		go l.Lex(ctx)

		for {
			item, proceed := l.Item()
			if !proceed {
				return
			}

			switch item.ID {
			case lexer.ItemEOF:
				return
			case lexer.ItemError:
				fLogger.Debugf("tokens before failure: %s", spew.Sprint(tokens))

				tokens = nil
				err = fmt.Errorf("%w: %w", ErrParseRecipe, &ParseError{
					Err:       item.Err,
					Remaining: input[item.Pos:],
					Offset:    item.Pos,
				})

				return
			default:
				tokens = append(tokens, tokenFromItem(item))
			}
		}
	}
}

// tokenFromItem converts a lexed Item to its public Token.
func tokenFromItem(item lexer.Item) Token {
	return Token{
		Kind:      kindFromItemID(item.ID),
		Pos:       item.Pos,
		Src:       item.Src,
		Key:       item.Key,
		Val:       item.Val,
		Amount:    item.Amount,
		HasAmount: item.HasAmount,
	}
}

func kindFromItemID(id lexer.ItemID) Kind {
	switch id {
	case lexer.ItemMetadata:
		return KindMetadata
	case lexer.ItemIngredient:
		return KindIngredient
	case lexer.ItemTimer:
		return KindTimer
	case lexer.ItemMaterial:
		return KindMaterial
	case lexer.ItemWord:
		return KindWord
	case lexer.ItemSpace:
		return KindSpace
	case lexer.ItemComment:
		return KindComment
	case lexer.ItemBackstory:
		return KindBackstory
	default:
		return 0
	}
}
