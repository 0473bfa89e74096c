// SPDX-License-Identifier: MIT
package recipe

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Ingredient is one ingredient occurrence extracted from a token
	// sequence.
	Ingredient struct {
		Name string

		// Amount is the free-form quantity; only meaningful with HasAmount
		// true.
		Amount string

		HasAmount bool
	}
)

// Ingredients lists the sequence's ingredient occurrences in document
// order.
//
// Occurrences are not deduplicated; a name used twice appears twice.
func (ts Tokens) Ingredients() (list []Ingredient) {
	for index := range ts {
		if ts[index].Kind != KindIngredient {
			continue
		}

		list = append(list, Ingredient{
			Name:      ts[index].Val,
			Amount:    ts[index].Amount,
			HasAmount: ts[index].HasAmount,
		})
	}

	return
}

// Materials lists the sequence's equipment names in document order.
func (ts Tokens) Materials() []string { return ts.values(KindMaterial) }

// Timers lists the sequence's timer durations in document order.
func (ts Tokens) Timers() []string { return ts.values(KindTimer) }

// Metadata collects the document's metadata lines into a key/value map.
//
// A key declared more than once keeps its last value.
func (ts Tokens) Metadata() (meta map[string]string) {
	meta = make(map[string]string)
	for index := range ts {
		if ts[index].Kind == KindMetadata {
			meta[ts[index].Key] = ts[index].Val
		}
	}

	return
}

// MetadataKeys lists the document's metadata keys in sorted order.
func (ts Tokens) MetadataKeys() (keys []string) {
	keys = maps.Keys(ts.Metadata())
	slices.Sort(keys)

	return
}

// Backstory obtains the document's trailing narrative.
//
// The ok result distinguishes an absent backstory from an empty one.
func (ts Tokens) Backstory() (text string, ok bool) {
	// If present, the backstory is the final token.
	if last := len(ts) - 1; last >= 0 && ts[last].Kind == KindBackstory {
		text, ok = ts[last].Val, true
	}

	return
}

func (ts Tokens) values(kind Kind) (list []string) {
	for index := range ts {
		if ts[index].Kind == kind {
			list = append(list, ts[index].Val)
		}
	}

	return
}
