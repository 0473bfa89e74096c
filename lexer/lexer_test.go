// SPDX-License-Identifier: MIT
package lexer

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

// collect drains a full scan of input, returning the lexed Items & the
// terminating error, if any.
func collect(t *testing.T, input string) (items []Item, err error) {
	t.Helper()

	l := New(input)
	go l.Lex(context.Background())

	for {
		item, proceed := l.Item()
		if !proceed {
			return
		}

		switch item.ID {
		case ItemEOF:
			return
		case ItemError:
			err = item.Err
			return
		default:
			items = append(items, item)
		}
	}
}

func TestLexer_Lex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []Item
		wantErr error
	}{
		{
			name:  "material",
			input: "m{pot}",
			want:  []Item{{ID: ItemMaterial, Pos: 0, Src: "m{pot}", Val: "pot"}},
		},
		{
			name:  "material with space",
			input: "m{small jar}",
			want:  []Item{{ID: ItemMaterial, Pos: 0, Src: "m{small jar}", Val: "small jar"}},
		},
		{
			name:  "timer",
			input: "t{1 minute}",
			want:  []Item{{ID: ItemTimer, Pos: 0, Src: "t{1 minute}", Val: "1 minute"}},
		},
		{
			name:  "ingredient with amount",
			input: "{sweet potato}(200gr)",
			want: []Item{{
				ID: ItemIngredient, Pos: 0, Src: "{sweet potato}(200gr)",
				Val: "sweet potato", Amount: "200gr", HasAmount: true,
			}},
		},
		{
			name:  "ingredient without amount",
			input: "{sweet potato}",
			want:  []Item{{ID: ItemIngredient, Pos: 0, Src: "{sweet potato}", Val: "sweet potato"}},
		},
		{
			name:  "ingredient name trimmed",
			input: "{   15 minutes  }",
			want:  []Item{{ID: ItemIngredient, Pos: 0, Src: "{   15 minutes  }", Val: "15 minutes"}},
		},
		{
			name:  "amount kept verbatim",
			input: "{rice}( 1/2 cup )",
			want: []Item{{
				ID: ItemIngredient, Pos: 0, Src: "{rice}( 1/2 cup )",
				Val: "rice", Amount: " 1/2 cup ", HasAmount: true,
			}},
		},
		{
			name:  "intervening space detaches amount",
			input: "{x} (y)",
			want: []Item{
				{ID: ItemIngredient, Pos: 0, Src: "{x}", Val: "x"},
				{ID: ItemSpace, Pos: 3, Src: " ", Val: " "},
				{ID: ItemWord, Pos: 4, Src: "(y)", Val: "(y)"},
			},
		},
		{
			name:  "empty amount detaches",
			input: "{x}()",
			want: []Item{
				{ID: ItemIngredient, Pos: 0, Src: "{x}", Val: "x"},
				{ID: ItemWord, Pos: 3, Src: "()", Val: "()"},
			},
		},
		{
			name:  "metadata",
			input: ">> tags: vegan\n",
			want: []Item{
				{ID: ItemMetadata, Pos: 0, Src: ">> tags: vegan", Key: "tags", Val: "vegan"},
				{ID: ItemSpace, Pos: 14, Src: "\n", Val: "\n"},
			},
		},
		{
			name:  "metadata at end of input",
			input: ">>key:pepe",
			want:  []Item{{ID: ItemMetadata, Pos: 0, Src: ">>key:pepe", Key: "key", Val: "pepe"}},
		},
		{
			name:  "metadata padding trimmed",
			input: ">>    key:\t\tpepe\n",
			want: []Item{
				{ID: ItemMetadata, Pos: 0, Src: ">>    key:\t\tpepe", Key: "key", Val: "pepe"},
				{ID: ItemSpace, Pos: 16, Src: "\n", Val: "\n"},
			},
		},
		{
			name:  "marker without colon is prose",
			input: ">>shrug",
			want:  []Item{{ID: ItemWord, Pos: 0, Src: ">>shrug", Val: ">>shrug"}},
		},
		{
			name:  "comment",
			input: "/* hello */",
			want:  []Item{{ID: ItemComment, Pos: 0, Src: "/* hello */", Val: "hello"}},
		},
		{
			name:  "empty comment",
			input: "/* */",
			want:  []Item{{ID: ItemComment, Pos: 0, Src: "/* */", Val: ""}},
		},
		{
			name:  "multiline comment",
			input: "/* multi\nline\ncomment */",
			want: []Item{{
				ID: ItemComment, Pos: 0, Src: "/* multi\nline\ncomment */",
				Val: "multi\nline\ncomment",
			}},
		},
		{
			name:  "comment swallows trailing spaces",
			input: "a /* note */ b",
			want: []Item{
				{ID: ItemWord, Pos: 0, Src: "a", Val: "a"},
				{ID: ItemSpace, Pos: 1, Src: " ", Val: " "},
				{ID: ItemComment, Pos: 2, Src: "/* note */ ", Val: "note"},
				{ID: ItemWord, Pos: 13, Src: "b", Val: "b"},
			},
		},
		{
			name:  "backstory",
			input: "\n---\nwhat a backstory",
			want: []Item{{
				ID: ItemBackstory, Pos: 0, Src: "\n---\nwhat a backstory",
				Val: "what a backstory",
			}},
		},
		{
			name:  "backstory with padding",
			input: "\n   ---\n\nwhat a backstory",
			want: []Item{{
				ID: ItemBackstory, Pos: 0, Src: "\n   ---\n\nwhat a backstory",
				Val: "what a backstory",
			}},
		},
		{
			name:  "trailing spaces disqualify the backstory marker",
			input: "\n---    \nstory",
			want: []Item{
				{ID: ItemSpace, Pos: 0, Src: "\n", Val: "\n"},
				{ID: ItemWord, Pos: 1, Src: "---", Val: "---"},
				{ID: ItemSpace, Pos: 4, Src: "    \n", Val: "    \n"},
				{ID: ItemWord, Pos: 9, Src: "story", Val: "story"},
			},
		},
		{
			name:  "empty braces are prose",
			input: "{}",
			want:  []Item{{ID: ItemWord, Pos: 0, Src: "{}", Val: "{}"}},
		},
		{
			name:  "empty material braces are prose",
			input: "m{}",
			want:  []Item{{ID: ItemWord, Pos: 0, Src: "m{}", Val: "m{}"}},
		},
		{
			name:    "unclosed brace",
			input:   "{unclosed",
			wantErr: ErrMissingClosingBrace,
		},
		{
			name:    "unclosed material brace",
			input:   "m{pot",
			wantErr: ErrMissingClosingBrace,
		},
		{
			name:    "unclosed paren",
			input:   "{x}(unclosed",
			wantErr: ErrMissingClosingParen,
		},
		{
			name:    "unclosed brace mid document",
			input:   "this is an {invalid recipe",
			wantErr: ErrMissingClosingBrace,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := collect(t, tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Lexer.Lex() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Lexer.Lex() error = %v, wantErr nil", err)
				return
			}
			if !reflect.DeepEqual(items, tt.want) {
				t.Errorf("Lexer.Lex() = %+v, want %+v", items, tt.want)
				return
			}

			// Every input byte belongs to exactly one Item.
			var buffer strings.Builder
			for index := range items {
				buffer.WriteString(items[index].Src)
			}
			if buffer.String() != tt.input {
				t.Errorf("Lexer.Lex() source spans = %q, want %q", buffer.String(), tt.input)
			}
		})
	}
}

func TestLexer_Lex_errorOffset(t *testing.T) {
	l := New("{bad{")
	go l.Lex(context.Background())

	for {
		item, proceed := l.Item()
		if !proceed {
			t.Fatal("Lexer.Lex() terminated without an ItemError")
		}

		if item.ID != ItemError {
			continue
		}

		if !errors.Is(item.Err, ErrMissingClosingBrace) {
			t.Errorf("Lexer.Lex() error = %v, want %v", item.Err, ErrMissingClosingBrace)
		}
		// The payload run ends where the nested `{` begins.
		if item.Pos != 4 {
			t.Errorf("Lexer.Lex() error Pos = %d, want %d", item.Pos, 4)
		}

		return
	}
}

func Test_acceptPayload(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{name: "word", input: "salt", want: 4},
		{name: "spaced", input: "sweet potato", want: 12},
		{name: "mixed case", input: "ToMaToeS", want: 8},
		{name: "fraction", input: "1/2 lemon", want: 9},
		{name: "hyphenated", input: "my-best-sauce", want: 13},
		{name: "decimal point", input: "1.2", want: 3},
		{name: "decimal comma", input: "1,2", want: 3},
		{name: "underscore", input: "1_200", want: 5},
		{name: "handle", input: "@woile", want: 6},
		{name: "percentage", input: "10%", want: 3},
		{name: "hashtag", input: "#vegan", want: 6},
		{name: "apostrophe", input: "mango's", want: 7},
		{name: "accented", input: "crème fraîche", want: 15},
		{name: "open brace stops the run", input: "a{b", want: 1},
		{name: "close brace stops the run", input: "a}b", want: 1},
		{name: "open paren stops the run", input: "a(b", want: 1},
		{name: "close paren stops the run", input: "a)b", want: 1},
		{name: "empty", input: "", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := acceptPayload(tt.input, 0); got != tt.want {
				t.Errorf("acceptPayload() = %v, want %v", got, tt.want)
			}
		})
	}
}

func BenchmarkLexer_Lex(b *testing.B) {
	src := "Boil the quinoa for t{5 minutes} in a m{pot}.\nPut the boiled {quinoa}(200gr) in the base of the bowl."

	logger := logrus.New()
	ctx := context.Background()

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		b.StopTimer()
		l := New(src, WithLogger(logger))
		b.StartTimer()

		go l.Lex(ctx)

		for {
			if item, proceed := l.Item(); !proceed || item.ID == ItemEOF || item.ID == ItemError {
				break
			}
		}
	}
}
