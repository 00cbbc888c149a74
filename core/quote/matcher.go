// Package quote locates occurrences of quoted phrases inside streams of
// per-verse word tokens and maps them to token spans.
//
// A quote may carry several parts separated by the literal delimiter "&";
// the parts match in left-to-right order, each starting strictly after the
// previous part's match. Matching runs over normalized search text (see
// core/normalize) so punctuation differences never block a match.
package quote

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/Interline/core/cache"
	"github.com/FocuswithJustin/Interline/core/errors"
	"github.com/FocuswithJustin/Interline/core/normalize"
	"github.com/FocuswithJustin/Interline/core/token"
)

// Delimiter separates the parts of a multi-part quote.
const Delimiter = "&"

// Match is one resolved sub-quote.
type Match struct {
	// Quote is the sub-quote text as supplied by the caller (trimmed).
	Quote string `json:"quote"`

	// Occurrence is the 1-based occurrence that was matched.
	Occurrence int `json:"occurrence"`

	// Tokens are the word tokens covered by the matched span, in order.
	Tokens []*token.WordToken `json:"tokens"`

	// VerseRef is the reference of the verse the match landed in.
	VerseRef string `json:"verse_ref"`

	// StartPosition and EndPosition delimit the matched span [start, end)
	// inside the verse's reconstructed search text.
	StartPosition int `json:"start_position"`
	EndPosition   int `json:"end_position"`
}

// Result is the outcome of a quote match.
type Result struct {
	// Success is false when the quote could not be resolved.
	Success bool `json:"success"`

	// Matches holds one entry per sub-quote, in quote order.
	Matches []*Match `json:"matches,omitempty"`

	// TotalTokens concatenates all sub-quote token lists in order.
	TotalTokens []*token.WordToken `json:"total_tokens,omitempty"`

	// Error describes the failure when Success is false.
	Error string `json:"error,omitempty"`

	// Err is the underlying error value for errors.Is/As inspection.
	Err error `json:"-"`
}

// Matcher resolves quotes against tokenized chapter streams.
// The zero value is usable; NewWithCache adds search-text memoization.
type Matcher struct {
	cache *cache.SearchTextCache
}

// New creates a Matcher without search-text memoization.
func New() *Matcher {
	return &Matcher{}
}

// NewWithCache creates a Matcher that memoizes per-verse search text in c.
func NewWithCache(c *cache.SearchTextCache) *Matcher {
	return &Matcher{cache: c}
}

// cursor tracks the search position across sub-quotes: the index of the
// verse being searched and the character offset within its search text.
type cursor struct {
	verse int
	char  int
}

// subMatch is a matched span inside one verse's search text.
type subMatch struct {
	verse int
	start int
	end   int
}

// FindOriginalTokens locates the given occurrence of quote inside the verses
// selected by ref and returns the covered word tokens.
//
// The first sub-quote matches the caller-supplied occurrence; every later
// sub-quote matches its first occurrence at or after the previous match's
// cursor. Failure of any sub-quote aborts the whole match; partial results
// are discarded. All errors are reported through the result value, never
// panicked past this function.
func (m *Matcher) FindOriginalTokens(chapters []*token.ProcessedChapter, quote string, occurrence int, ref token.QuoteReference) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = fail(errors.NewInternal("quote match", fmt.Errorf("%v", r)))
		}
	}()

	if occurrence < 1 {
		return fail(errors.Wrapf(errors.ErrInvalidInput, "occurrence must be 1-based, got %d", occurrence))
	}

	parts := SplitQuote(quote)
	if len(parts) == 0 {
		return fail(errors.Wrap(errors.ErrInvalidInput, "empty quote"))
	}

	verses := VersesInRange(chapters, ref)
	if len(verses) == 0 {
		return fail(errors.NewNoVersesInRange(ref.String()))
	}

	var cur cursor
	result = &Result{Success: true}
	for i, part := range parts {
		target := 1
		if i == 0 {
			target = occurrence
		}

		sub := normalize.Normalize(part)
		if sub == "" {
			return fail(errors.Wrapf(errors.ErrInvalidInput, "sub-quote %q normalizes to nothing", part))
		}

		sm, ok := m.findSubQuote(verses, sub, target, cur)
		if !ok {
			return fail(errors.NewQuoteNotFound(part, target, ref.String()))
		}

		verse := verses[sm.verse]
		match := &Match{
			Quote:         part,
			Occurrence:    target,
			Tokens:        tokensForSpan(verse, sm.start, sm.end),
			VerseRef:      verse.Reference,
			StartPosition: sm.start,
			EndPosition:   sm.end,
		}
		result.Matches = append(result.Matches, match)
		result.TotalTokens = append(result.TotalTokens, match.Tokens...)

		// Advance the cursor: stay in the same verse after an in-verse
		// match, otherwise start fresh at the verse after the match.
		if sm.verse == cur.verse {
			cur.char = sm.end
		} else {
			cur.verse = sm.verse + 1
			cur.char = 0
		}
	}
	return result
}

// SplitQuote splits a quote on the "&" delimiter and trims each part.
// Empty parts are dropped.
func SplitQuote(quote string) []string {
	var parts []string
	for _, p := range strings.Split(quote, Delimiter) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// VersesInRange selects the verses covered by ref, in chapter and verse
// order. Boundary chapters are bounded by the start and end verse numbers;
// interior chapters contribute all their verses.
func VersesInRange(chapters []*token.ProcessedChapter, ref token.QuoteReference) []*token.ProcessedVerse {
	r := ref.Normalized()
	var verses []*token.ProcessedVerse
	for _, ch := range chapters {
		if ch == nil || ch.Number < r.StartChapter || ch.Number > r.EndChapter {
			continue
		}
		for _, v := range ch.Verses {
			if v == nil {
				continue
			}
			if ch.Number == r.StartChapter && v.Number < r.StartVerse {
				continue
			}
			if ch.Number == r.EndChapter && v.Number > r.EndVerse {
				continue
			}
			verses = append(verses, v)
		}
	}
	return verses
}

// findSubQuote scans verses from the cursor's verse onward for the target
// occurrence of sub. Occurrences are found with repeated Index calls that
// advance one position past each hit, so overlapping occurrences count.
// In the cursor's own verse, occurrences starting before the cursor's
// character offset are discarded.
func (m *Matcher) findSubQuote(verses []*token.ProcessedVerse, sub string, target int, cur cursor) (subMatch, bool) {
	count := 0
	for vi := cur.verse; vi < len(verses); vi++ {
		text := m.searchText(verses[vi])
		if text == "" {
			continue
		}
		idx := 0
		for idx <= len(text)-len(sub) {
			p := strings.Index(text[idx:], sub)
			if p < 0 {
				break
			}
			pos := idx + p
			idx = pos + 1
			if vi == cur.verse && pos < cur.char {
				continue
			}
			count++
			if count == target {
				return subMatch{verse: vi, start: pos, end: pos + len(sub)}, true
			}
		}
	}
	return subMatch{}, false
}

// searchText returns the verse's normalized search text: each word token's
// normalized content joined with a single space. Non-word tokens and tokens
// that normalize to nothing are excluded, here and in tokensForSpan, so the
// two walks agree on offsets.
func (m *Matcher) searchText(v *token.ProcessedVerse) string {
	if m.cache == nil {
		return buildSearchText(v)
	}
	key := token.VerseDigest(v)
	if text, ok := m.cache.Get(key); ok {
		return text
	}
	text := buildSearchText(v)
	m.cache.Put(key, text)
	return text
}

func buildSearchText(v *token.ProcessedVerse) string {
	var b strings.Builder
	for _, t := range v.WordTokens {
		if !t.IsWord() {
			continue
		}
		c := normalize.Normalize(t.Content)
		if c == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c)
	}
	return b.String()
}

// tokensForSpan re-walks the verse's word tokens tracking the same running
// position used to build the search text (token length, then one joining
// space) and returns every token whose span overlaps [start, end).
func tokensForSpan(v *token.ProcessedVerse, start, end int) []*token.WordToken {
	var out []*token.WordToken
	pos := 0
	for _, t := range v.WordTokens {
		if !t.IsWord() {
			continue
		}
		c := normalize.Normalize(t.Content)
		if c == "" {
			continue
		}
		tokStart := pos
		tokEnd := pos + len(c)
		if tokEnd > start && tokStart < end {
			out = append(out, t)
		}
		pos = tokEnd + 1
	}
	return out
}

func fail(err error) *Result {
	return &Result{Success: false, Error: err.Error(), Err: err}
}
