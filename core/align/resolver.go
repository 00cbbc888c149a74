// Package align maps original-language tokens to their counterparts in a
// differently-tokenized translation using a tiered fallback strategy.
//
// The tiers, in priority order:
//
//  1. Exact link: the target token's alignment names the original token's
//     unique ID. Authoritative; shuts off the lower tiers.
//  2. Lexical entry: both tokens carry the same Strong's number and sit in
//     the same verse.
//  3. Content and occurrence: the target's recorded source content
//     normalizes to the original's content and the recorded source
//     occurrence equals the original's occurrence.
//
// A miss for a given original token is not an error; it contributes nothing.
package align

import (
	"fmt"

	"github.com/FocuswithJustin/Interline/core/errors"
	"github.com/FocuswithJustin/Interline/core/normalize"
	"github.com/FocuswithJustin/Interline/core/token"
)

// Match pairs one original-language token with its aligned target tokens.
type Match struct {
	// OriginalToken is the original-language token being resolved.
	OriginalToken *token.WordToken `json:"original_token"`

	// AlignedTokens are the target tokens aligned to it (one-to-many kept).
	AlignedTokens []*token.WordToken `json:"aligned_tokens"`

	// VerseRef is the original token's verse reference.
	VerseRef string `json:"verse_ref"`
}

// Result is the outcome of an alignment resolution.
type Result struct {
	// Success is false only for unexpected failures.
	Success bool `json:"success"`

	// AlignedMatches holds one entry per original token, in input order.
	AlignedMatches []*Match `json:"aligned_matches,omitempty"`

	// TotalAlignedTokens concatenates all aligned tokens in input order.
	TotalAlignedTokens []*token.WordToken `json:"total_aligned_tokens,omitempty"`

	// Error describes the failure when Success is false.
	Error string `json:"error,omitempty"`

	// Err is the underlying error value for errors.Is/As inspection.
	Err error `json:"-"`
}

// FindAlignedTokens resolves each original token against the target chapter
// stream. Original tokens whose verse has no counterpart in the target are
// skipped. The reference is carried for error context only; the verse each
// token resolves against comes from the token's own unique ID.
func FindAlignedTokens(originalTokens []*token.WordToken, targetChapters []*token.ProcessedChapter, ref token.QuoteReference) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			result = fail(errors.NewInternal("alignment", fmt.Errorf("%v", r)))
		}
	}()

	result = &Result{Success: true}
	for _, orig := range originalTokens {
		aligned, err := ResolveToken(orig, targetChapters)
		if err != nil {
			return fail(errors.NewInternal("alignment", errors.Wrapf(err, "reference %s", ref.String())))
		}
		if len(aligned) == 0 {
			continue
		}
		verseRef := ""
		if vr, err := orig.VerseRef(); err == nil {
			verseRef = vr.String()
		}
		result.AlignedMatches = append(result.AlignedMatches, &Match{
			OriginalToken: orig,
			AlignedTokens: aligned,
			VerseRef:      verseRef,
		})
		result.TotalAlignedTokens = append(result.TotalAlignedTokens, aligned...)
	}
	return result
}

// ResolveToken returns the target tokens aligned to one original-language
// token, applying the tiered fallback within the target verse whose chapter
// and verse numbers match the original token's verse reference. A missing
// target verse resolves to no tokens. A malformed verse reference in the
// original token's unique ID is an error.
func ResolveToken(orig *token.WordToken, targetChapters []*token.ProcessedChapter) ([]*token.WordToken, error) {
	origRef, err := orig.VerseRef()
	if err != nil {
		return nil, err
	}

	verse := findVerse(targetChapters, origRef)
	if verse == nil {
		return nil, nil
	}

	var exact, byStrong, byContent []*token.WordToken
	origContent := normalize.Normalize(orig.Content)
	origStrong := orig.Strong()
	for _, t := range verse.WordTokens {
		if !t.IsWord() || t.Alignment == nil {
			continue
		}
		a := t.Alignment
		switch {
		case a.SourceWordID != "" && a.SourceWordID == orig.UniqueID:
			exact = append(exact, t)
		case origStrong != "" && a.Strong == origStrong:
			// Same lexical entry in the same verse. Kept permissive: a
			// repeated entry without exact links yields every candidate.
			byStrong = append(byStrong, t)
		case a.SourceContent != "" &&
			normalize.Normalize(a.SourceContent) == origContent &&
			a.SourceOccurrence == orig.Occurrence:
			byContent = append(byContent, t)
		}
	}

	if len(exact) > 0 {
		return exact, nil
	}
	if len(byStrong) > 0 {
		return byStrong, nil
	}
	return byContent, nil
}

// findVerse locates the target verse matching ref. Chapter and verse are
// compared numerically: the target verse's own reference string is parsed
// when present, with the chapter and verse numbers as fallback.
func findVerse(chapters []*token.ProcessedChapter, ref *token.VerseRef) *token.ProcessedVerse {
	for _, ch := range chapters {
		if ch == nil {
			continue
		}
		for _, v := range ch.Verses {
			if v == nil {
				continue
			}
			if vr, err := token.ParseVerseRef(v.Reference); err == nil {
				if vr.Chapter == ref.Chapter && vr.Verse == ref.Verse {
					return v
				}
				continue
			}
			if ch.Number == ref.Chapter && v.Number == ref.Verse {
				return v
			}
		}
	}
	return nil
}

func fail(err error) *Result {
	return &Result{Success: false, Error: err.Error(), Err: err}
}
