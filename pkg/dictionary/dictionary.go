// Package dictionary provides the word list used by the spell checker and
// ranked spelling suggestions.
package dictionary

import (
	_ "embed"
	"slices"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
)

//go:embed words.txt
var curatedWords string

// DefaultCacheSize is the number of suggestion lists kept per dictionary.
const DefaultCacheSize = 1024

// MaxDistance is the largest edit distance a suggestion may have.
const MaxDistance = 2

// Dictionary is an immutable word set with a suggestion cache.
// All methods are safe for concurrent use; the cache is the only mutable
// state and it is internally synchronized.
type Dictionary struct {
	// rank maps folded words to their position in the source list.
	rank  map[string]int
	words []string
	cache *lru.Cache[string, []string]
}

//nolint:gochecknoglobals // Shared curated dictionary, built once.
var (
	curated     *Dictionary
	curatedOnce sync.Once
)

// Curated returns the shared dictionary built from the embedded word list.
func Curated() *Dictionary {
	curatedOnce.Do(func() {
		curated = New(strings.Fields(curatedWords))
	})
	return curated
}

// New builds a dictionary from words, most frequent first. Duplicates after
// case folding keep their first position.
func New(words []string) *Dictionary {
	d := &Dictionary{
		rank:  make(map[string]int, len(words)),
		words: make([]string, 0, len(words)),
	}
	for _, word := range words {
		d.add(word)
	}

	cache, err := lru.New[string, []string](DefaultCacheSize)
	if err == nil {
		d.cache = cache
	}
	return d
}

func (d *Dictionary) add(word string) {
	folded := fold(word)
	if folded == "" {
		return
	}
	if _, ok := d.rank[folded]; ok {
		return
	}
	d.rank[folded] = len(d.words)
	d.words = append(d.words, folded)
}

// With returns a new dictionary holding d's words followed by extra.
// The receiver is not modified.
func (d *Dictionary) With(extra []string) *Dictionary {
	if len(extra) == 0 {
		return d
	}
	return New(append(slices.Clone(d.words), extra...))
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Contains reports whether word is known, ignoring case. A trailing
// possessive "'s" is accepted when the stem is known.
func (d *Dictionary) Contains(word string) bool {
	folded := fold(word)
	if _, ok := d.rank[folded]; ok {
		return true
	}
	for _, suffix := range []string{"'s", "’s"} {
		if stem, ok := strings.CutSuffix(folded, suffix); ok {
			if _, known := d.rank[stem]; known {
				return true
			}
		}
	}
	return false
}

// Suggest returns up to limit known words close to word, ordered by edit
// distance and then by frequency. Suggestions are lower case.
func (d *Dictionary) Suggest(word string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	folded := fold(word)
	if d.cache != nil {
		if cached, ok := d.cache.Get(folded); ok {
			return clip(cached, limit)
		}
	}

	type candidate struct {
		word     string
		distance int
		rank     int
	}

	target := []rune(folded)
	var candidates []candidate
	for rank, known := range d.words {
		if known == folded {
			continue
		}
		runes := []rune(known)
		if abs(len(runes)-len(target)) > MaxDistance {
			continue
		}
		dist := Distance(target, runes)
		if dist <= MaxDistance {
			candidates = append(candidates, candidate{word: known, distance: dist, rank: rank})
		}
	}

	slices.SortFunc(candidates, func(a, b candidate) int {
		if a.distance != b.distance {
			return a.distance - b.distance
		}
		return a.rank - b.rank
	})

	ranked := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ranked = append(ranked, c.word)
	}

	if d.cache != nil {
		d.cache.Add(folded, ranked)
	}
	return clip(ranked, limit)
}

func clip(words []string, limit int) []string {
	if len(words) > limit {
		words = words[:limit]
	}
	if len(words) == 0 {
		return nil
	}
	return slices.Clone(words)
}

// fold case-folds word. A fresh Caser is used per call since Casers are not
// safe for concurrent use.
func fold(word string) string {
	return cases.Fold().String(strings.TrimSpace(word))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
