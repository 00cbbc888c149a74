package token

// types.go - Consolidated token stream type definitions
// This file contains the core token and verse types used throughout Interline.
// Loaders and panels should import these types from core/token rather than
// defining their own.

import (
	"fmt"
	"strings"
)

// Type represents the kind of lexical unit a token holds.
type Type string

// Token type constants.
const (
	// TypeWord is a matchable, highlightable word.
	TypeWord Type = "word"

	// TypePunctuation is punctuation attached to the verse text.
	TypePunctuation Type = "punctuation"

	// TypeText is non-word filler text (whitespace, markers).
	TypeText Type = "text"
)

// validTypes is the set of valid token types.
var validTypes = map[Type]bool{
	TypeWord:        true,
	TypePunctuation: true,
	TypeText:        true,
}

// IsValid returns true if the token type is valid.
func (t Type) IsValid() bool {
	return validTypes[t]
}

// Position locates a token inside its verse's reconstructed text.
type Position struct {
	// Start is the character offset where the token begins.
	Start int `json:"start"`

	// End is the character offset just past the token.
	End int `json:"end"`

	// WordIndex is the ordinal of this token among the verse's word tokens.
	WordIndex int `json:"word_index"`
}

// Alignment records a token's claimed correspondence to an original-language
// token. For target-language tokens the Source* fields identify the original
// token this one renders. Original-language tokens carry their own lexical
// data (Strong, Lemma, Morph) here with the Source* fields left empty.
type Alignment struct {
	// SourceWordID is the exact UniqueID of the original-language token
	// this token was aligned to at ingestion time, when known.
	SourceWordID string `json:"source_word_id,omitempty"`

	// SourceContent is the surface form of the original-language token.
	SourceContent string `json:"source_content,omitempty"`

	// SourceOccurrence is the original token's 1-based occurrence in its verse.
	SourceOccurrence int `json:"source_occurrence,omitempty"`

	// Strong is the cross-linguistic lexical-entry identifier (e.g., "G4245").
	Strong string `json:"strong,omitempty"`

	// Lemma is the dictionary form of the word.
	Lemma string `json:"lemma,omitempty"`

	// Morph is the morphological parsing code.
	Morph string `json:"morph,omitempty"`
}

// WordToken is one lexical unit in a verse.
//
// Within one verse, Occurrence values for tokens sharing normalized content
// are contiguous integers starting at 1, and TotalOccurrences is identical
// across all tokens sharing that content.
type WordToken struct {
	// UniqueID identifies this token within its verse and translation
	// stream, stable across re-renders. Derived from the verse reference,
	// the token content, and the occurrence index (see UniqueID).
	UniqueID string `json:"unique_id"`

	// Content is the raw surface text.
	Content string `json:"content"`

	// Type is the token kind; only word tokens are matchable.
	Type Type `json:"type"`

	// Occurrence is the 1-based index among identical normalized content
	// within the verse.
	Occurrence int `json:"occurrence"`

	// TotalOccurrences is the count of identical normalized content
	// within the verse.
	TotalOccurrences int `json:"total_occurrences"`

	// Position locates the token in the verse's reconstructed text.
	Position Position `json:"position"`

	// Alignment is the token's correspondence data, if any.
	Alignment *Alignment `json:"alignment,omitempty"`
}

// IsWord returns true if the token is a matchable word token.
func (t *WordToken) IsWord() bool {
	return t.Type == TypeWord
}

// Strong returns the token's lexical-entry identifier, or "" if none.
func (t *WordToken) Strong() string {
	if t.Alignment != nil {
		return t.Alignment.Strong
	}
	return ""
}

// Lemma returns the token's dictionary form, or "" if none.
func (t *WordToken) Lemma() string {
	if t.Alignment != nil {
		return t.Alignment.Lemma
	}
	return ""
}

// UniqueID derives the stable token identifier from a verse reference, the
// token's surface content, and its 1-based occurrence index.
// Example: "3JN 1:1:πρεσβύτερος:1".
func UniqueID(verseRef, content string, occurrence int) string {
	return fmt.Sprintf("%s:%s:%d", verseRef, content, occurrence)
}

// VerseRef parses the verse reference embedded in the token's UniqueID.
func (t *WordToken) VerseRef() (*VerseRef, error) {
	first := strings.Index(t.UniqueID, ":")
	if first < 0 {
		return nil, fmt.Errorf("token %q: unique ID carries no verse reference", t.UniqueID)
	}
	second := strings.Index(t.UniqueID[first+1:], ":")
	if second < 0 {
		return nil, fmt.Errorf("token %q: unique ID carries no verse reference", t.UniqueID)
	}
	return ParseVerseRef(t.UniqueID[:first+1+second])
}

// ProcessedVerse is one verse of already-tokenized text.
// Verses are immutable once produced by the ingestion pipeline; this core
// only reads and re-packages them.
type ProcessedVerse struct {
	// Reference is the verse reference string (e.g., "3JN 1:1").
	Reference string `json:"reference"`

	// Number is the verse number within its chapter.
	Number int `json:"number"`

	// Text is the verse's display text.
	Text string `json:"text"`

	// WordTokens is the verse's token stream in document order.
	WordTokens []*WordToken `json:"word_tokens"`
}

// Words returns the verse's word-type tokens in order.
func (v *ProcessedVerse) Words() []*WordToken {
	var words []*WordToken
	for _, t := range v.WordTokens {
		if t.IsWord() {
			words = append(words, t)
		}
	}
	return words
}

// ProcessedChapter is one chapter of already-tokenized verses.
type ProcessedChapter struct {
	// Number is the chapter number.
	Number int `json:"number"`

	// Verses contains the chapter's verses in order.
	Verses []*ProcessedVerse `json:"verses"`
}

// QuoteReference is an inclusive verse range. Zero end fields default to the
// corresponding start values (see Normalized).
type QuoteReference struct {
	// Book is the book identifier (e.g., "3JN", "TIT").
	Book string `json:"book"`

	// StartChapter and StartVerse locate the first verse of the range.
	StartChapter int `json:"start_chapter"`
	StartVerse   int `json:"start_verse"`

	// EndChapter and EndVerse locate the last verse of the range (optional).
	EndChapter int `json:"end_chapter,omitempty"`
	EndVerse   int `json:"end_verse,omitempty"`
}

// Normalized returns a copy with zero end fields filled from the start fields.
func (r QuoteReference) Normalized() QuoteReference {
	if r.EndChapter == 0 {
		r.EndChapter = r.StartChapter
	}
	if r.EndVerse == 0 {
		r.EndVerse = r.StartVerse
	}
	return r
}

// String formats the reference for display and error messages.
// Single verse: "3JN 1:1". Same-chapter range: "3JN 1:1-2".
// Cross-chapter range: "TIT 1:15-2:2".
func (r QuoteReference) String() string {
	n := r.Normalized()
	switch {
	case n.EndChapter == n.StartChapter && n.EndVerse == n.StartVerse:
		return fmt.Sprintf("%s %d:%d", n.Book, n.StartChapter, n.StartVerse)
	case n.EndChapter == n.StartChapter:
		return fmt.Sprintf("%s %d:%d-%d", n.Book, n.StartChapter, n.StartVerse, n.EndVerse)
	default:
		return fmt.Sprintf("%s %d:%d-%d:%d", n.Book, n.StartChapter, n.StartVerse, n.EndChapter, n.EndVerse)
	}
}
