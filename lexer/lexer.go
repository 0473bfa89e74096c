// SPDX-License-Identifier: MIT
package lexer

// REF: https://github.com/sh4t/sql-parser
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func(context.Context) NextOperation

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer defines a type to scan recp markup into Items.
	//
	// The grammar is a prioritized alternative set applied at every scan
	// position: metadata, material, timer, ingredient, backstory, comment,
	// word, space. Word & space are unconditional fallbacks; reordering the
	// alternatives would let them swallow the marked constructs.
	Lexer struct {
		logger logrus.FieldLogger
		debug  bool

		// c is a channel for communicating lexed Items.
		c chan Item

		// input is the source document.
		input string

		// start is the offset of the Item being lexed.
		start int

		// pos is the current scan offset.
		pos int
	}
)

// Markup markers.
const (
	// MetadataMarker prefixes a `key: value` document metadata line.
	MetadataMarker = ">>"

	// MaterialMarker prefixes a brace-delimited equipment name.
	MaterialMarker = "m{"

	// TimerMarker prefixes a brace-delimited duration.
	TimerMarker = "t{"

	// BackstoryMarker sits on its own line, separating the recipe from its
	// trailing narrative.
	BackstoryMarker = "---"

	commentOpen  = "/*"
	commentClose = "*/"
)

const (
	sourceLimit   = 512
	defBufferSize = 10
)

// Lexing errors.
var (
	// ErrMissingClosingBrace notifies an unterminated `{...}` payload.
	//
	// An opened brace with a valid payload commits the scan; a missing
	// closer aborts the parse instead of re-reading the run as prose.
	ErrMissingClosingBrace = errors.New("missing closing }")

	// ErrMissingClosingParen notifies an unterminated `(...)` amount.
	ErrMissingClosingParen = errors.New("missing closing )")

	// ErrNoMatch notifies a position no grammar alternative could consume.
	ErrNoMatch = errors.New("no grammar alternative matched")
)

// Improves on performance compared to ORs.
//
// Reduces function cost improving probalility of inlining.
var (
	whitespace = [utf8.RuneSelf]bool{
		' ':  true,
		'\t': true,
		'\r': true,
		'\n': true,
	}

	// Symbols permitted inside `{...}` & `(...)` payloads, alongside
	// alphanumerics. The delimiters themselves are excluded, payloads can't
	// nest.
	payloadSymbols = [utf8.RuneSelf]bool{
		'\t': true,
		' ':  true,
		'/':  true,
		'-':  true,
		'_':  true,
		'@':  true,
		'.':  true,
		',':  true,
		'%':  true,
		'#':  true,
		'\'': true,
	}
)

// New creates a new scanner for the input string
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{
		logger: logrus.New(),

		c: make(chan Item, defBufferSize),

		input: input,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// Lex lexes the input by executing state functions.
func (l *Lexer) Lex(ctx context.Context) {
	select {
	case <-ctx.Done():
		l.EmitError(ctx.Err())
	default:
		for stateFunction := l.LexText; stateFunction != nil; {
			stateFunction = stateFunction(ctx)
		}
	}

	// Close channel
	close(l.c)
}

// LexText applies the grammar's alternatives, in precedence order, at the
// current scan position.
func (l *Lexer) LexText(ctx context.Context) NextOperation {
	select {
	case <-ctx.Done():
		l.EmitError(ctx.Err())
		return nil
	default:
	}

	if l.pos >= len(l.input) {
		l.EmitEOF()
		return nil
	}

	if l.lexMetadata() {
		return l.LexText
	}

	matched, err := l.lexMarkup()
	if err != nil {
		l.EmitError(err)
		return nil
	}
	if matched {
		return l.LexText
	}

	if l.lexBackstory() {
		// The backstory consumed the remainder of the document.
		l.EmitEOF()
		return nil
	}

	if l.lexComment() || l.lexWord() || l.lexSpace() {
		return l.LexText
	}

	// Unreachable while word & space remain catch-alls.
	l.EmitError(fmt.Errorf("%w: %q", ErrNoMatch, truncate(l.rest())))

	return nil
}

// lexMetadata recognizes a `>> key: value` line.
//
// The construct is line scoped: the `:` must occur before the line break &
// the key must be non-empty. The line break itself is left for the next
// Item.
func (l *Lexer) lexMetadata() (matched bool) {
	rest := l.rest()
	if !strings.HasPrefix(rest, MetadataMarker) {
		return
	}

	line := rest
	if index := strings.IndexByte(line, '\n'); index >= 0 {
		line = line[:index]
	}

	colon := strings.IndexByte(line, ':')
	if colon < len(MetadataMarker) {
		return
	}

	key := strings.TrimSpace(line[len(MetadataMarker):colon])
	if key == "" {
		return
	}

	l.pos += len(line)
	l.Emit(Item{
		ID:  ItemMetadata,
		Key: key,
		Val: strings.TrimSpace(line[colon+1:]),
	})

	return true
}

// lexMarkup recognizes the brace-delimited constructs: material, timer &
// ingredient, in that order; the bare-brace ingredient must be tried last.
//
// An empty payload declines the match & the run reads as prose. A valid
// payload missing its closing delimiter is a committed failure.
func (l *Lexer) lexMarkup() (matched bool, err error) {
	rest := l.rest()

	var id ItemID
	skip := 0
	switch {
	case strings.HasPrefix(rest, MaterialMarker):
		id, skip = ItemMaterial, 1
	case strings.HasPrefix(rest, TimerMarker):
		id, skip = ItemTimer, 1
	case strings.HasPrefix(rest, "{"):
		id = ItemIngredient
	default:
		return
	}

	open := l.pos + skip
	interior := acceptPayload(l.input, open+1)
	if interior == open+1 {
		// Empty payload, decline.
		return
	}
	if interior >= len(l.input) || l.input[interior] != '}' {
		l.pos = interior
		err = fmt.Errorf("%w: %q", ErrMissingClosingBrace, truncate(l.rest()))
		return
	}

	item := Item{ID: id, Val: strings.TrimSpace(l.input[open+1 : interior])}
	next := interior + 1

	// An amount attaches to an ingredient only when its `(` follows the `}`
	// immediately.
	if id == ItemIngredient && next < len(l.input) && l.input[next] == '(' {
		amountEnd := acceptPayload(l.input, next+1)
		switch {
		case amountEnd == next+1:
			// `()` doesn't attach; it reads as the following prose.
		case amountEnd >= len(l.input) || l.input[amountEnd] != ')':
			l.pos = amountEnd
			err = fmt.Errorf("%w: %q", ErrMissingClosingParen, truncate(l.rest()))
			return
		default:
			item.Amount, item.HasAmount = l.input[next+1:amountEnd], true
			next = amountEnd + 1
		}
	}

	l.pos = next
	l.Emit(item)
	matched = true

	return
}

// lexBackstory recognizes a line break, optional blank lines, `---`, a line
// break & optional blank lines; the remainder of the document becomes the
// payload & the scan stops.
//
// The alternative must see the line break itself: whitespace consumed by an
// earlier Space Item disqualifies a following `---`.
func (l *Lexer) lexBackstory() (matched bool) {
	pos, ok := acceptLineEnding(l.input, l.pos)
	if !ok {
		return
	}

	pos = acceptWhile(l.input, pos, isWhitespace)
	if !strings.HasPrefix(l.input[pos:], BackstoryMarker) {
		return
	}

	pos, ok = acceptLineEnding(l.input, pos+len(BackstoryMarker))
	if !ok {
		return
	}

	pos = acceptWhile(l.input, pos, isWhitespace)

	l.pos = len(l.input)
	l.Emit(Item{ID: ItemBackstory, Val: l.input[pos:]})

	return true
}

// lexComment recognizes a `/* ... */` span, consuming any spaces & tabs
// behind the closing delimiter so an inline comment collapses without
// leaving a stray gap.
//
// An unterminated comment declines & reads as prose.
func (l *Lexer) lexComment() (matched bool) {
	rest := l.rest()
	if !strings.HasPrefix(rest, commentOpen) {
		return
	}

	end := strings.Index(rest[len(commentOpen):], commentClose)
	if end < 0 {
		return
	}

	l.pos += len(commentOpen) + end + len(commentClose)
	l.pos = acceptWhile(l.input, l.pos, isSpace)
	l.Emit(Item{
		ID:  ItemComment,
		Val: strings.TrimSpace(rest[len(commentOpen) : len(commentOpen)+end]),
	})

	return true
}

// lexWord consumes a maximal run of non-whitespace characters.
func (l *Lexer) lexWord() (matched bool) { return l.lexRun(ItemWord, isNotWhitespace) }

// lexSpace consumes a maximal run of whitespace characters, preserved to
// rebuild the document's line breaks & spacing.
func (l *Lexer) lexSpace() (matched bool) { return l.lexRun(ItemSpace, isWhitespace) }

func (l *Lexer) lexRun(id ItemID, fn ValidationFunction) (matched bool) {
	pos := acceptWhile(l.input, l.pos, fn)
	if pos == l.pos {
		return
	}

	val := l.input[l.pos:pos]
	l.pos = pos
	l.Emit(Item{ID: id, Val: val})

	return true
}

// Emit sends an Item over the communication channel.
//
// The Item's Pos & Src span the input consumed since the previous emission.
func (l *Lexer) Emit(i Item) {
	i.Pos = l.start
	i.Src = l.input[l.start:l.pos]

	if l.debug {
		// Debug operation makes this operation un-inlinable.
		l.logger.Debug("lexer Emit: ", i.Src)
	}

	l.c <- i
	l.start = l.pos
}

// EmitEOF sends an ItemEOF Item over the communication channel.
func (l *Lexer) EmitEOF() {
	l.c <- Item{ID: ItemEOF, Pos: l.pos}
}

// EmitError sends an error over the `Lexer`'s channel.
//
// This terminates the scan process; Pos identifies the failure offset.
func (l *Lexer) EmitError(err error) {
	l.c <- Item{
		ID:  ItemError,
		Pos: l.pos,
		Err: err,
	}
}

// Item return a lexed Item from the input.
func (l *Lexer) Item() (i Item, ok bool) {
	i, ok = <-l.c
	return
}

// rest obtains the unconsumed input.
func (l *Lexer) rest() string { return l.input[l.pos:] }

// truncate caps diagnostic snippets at sourceLimit bytes.
func truncate(s string) string {
	if len(s) > sourceLimit {
		return s[:sourceLimit]
	}
	return s
}

// acceptPayload returns the offset terminating the run of payload runes
// starting at pos.
func acceptPayload(input string, pos int) int { return acceptWhile(input, pos, isPayload) }

// acceptWhile returns the offset terminating the run of runes satisfying fn
// starting at pos.
func acceptWhile(input string, pos int, fn ValidationFunction) int {
	for pos < len(input) {
		r, width := utf8.DecodeRuneInString(input[pos:])
		if !fn(r) {
			break
		}
		pos += width
	}

	return pos
}

// acceptLineEnding consumes a `\n` or `\r\n` at pos.
func acceptLineEnding(input string, pos int) (int, bool) {
	switch {
	case pos < len(input) && input[pos] == '\n':
		return pos + 1, true
	case pos+1 < len(input) && input[pos] == '\r' && input[pos+1] == '\n':
		return pos + 2, true
	default:
		return pos, false
	}
}

// isWhitespace return true for space, tab, newline & carriage return.
func isWhitespace(r rune) bool { return r < utf8.RuneSelf && whitespace[r] }

func isNotWhitespace(r rune) bool { return !isWhitespace(r) }

// isSpace return true for space or tab.
func isSpace(r rune) bool { return r == ' ' || r == '\t' }

// isPayload return true for runes permitted inside a delimited payload.
func isPayload(r rune) bool {
	if r < utf8.RuneSelf && payloadSymbols[r] {
		return true
	}

	return unicode.IsLetter(r) || unicode.IsNumber(r)
}
