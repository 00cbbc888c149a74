package token

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// VerseRef is a parsed single-verse reference.
type VerseRef struct {
	// Book is the book identifier (e.g., "3JN").
	Book string `json:"book"`

	// Chapter is the chapter number (1-indexed).
	Chapter int `json:"chapter"`

	// Verse is the verse number (1-indexed).
	Verse int `json:"verse"`
}

// String returns the canonical "<book> <chapter>:<verse>" form.
func (r *VerseRef) String() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// refGrammar is the participle grammar for verse references and ranges.
// Examples: "3JN 1:1", "TIT 1:15-16", "TIT 1:15-2:2", "1CO 13:4"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string     `@Int?`
	BookName   string     `@Ident`
	Chapter    int        `@Int`
	Verse      int        `":" @Int`
	Range      *rangePart `( "-" @@ )?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type rangePart struct {
	First  int  `@Int`
	Second *int `( ":" @Int )?`
}

// refLexer defines the lexer for verse references.
// Note: book identifiers start with an uppercase letter, optionally preceded
// by a numeral prefix ("1CO", "3JN").
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Z][A-Za-z]*`},
	{Name: "Punct", Pattern: `[:\-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// refParser is the participle parser for verse references.
var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// ParseVerseRef parses a single-verse reference of the form
// "<book> <chapter>:<verse>" (e.g., "3JN 1:1").
func ParseVerseRef(s string) (*VerseRef, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty verse reference")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, fmt.Errorf("invalid verse reference: %q: %w", s, err)
	}
	if parsed.Range != nil {
		return nil, fmt.Errorf("invalid verse reference: %q: ranges are not allowed here", s)
	}

	return &VerseRef{
		Book:    parsed.BookPrefix + parsed.BookName,
		Chapter: parsed.Chapter,
		Verse:   parsed.Verse,
	}, nil
}

// ParseQuoteReference parses a verse reference or inclusive range.
// Supported formats:
//   - "3JN 1:1" (single verse)
//   - "TIT 1:15-16" (same-chapter range)
//   - "TIT 1:15-2:2" (cross-chapter range)
func ParseQuoteReference(s string) (QuoteReference, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return QuoteReference{}, fmt.Errorf("empty reference string")
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return QuoteReference{}, fmt.Errorf("invalid reference format: %q: %w", s, err)
	}

	ref := QuoteReference{
		Book:         parsed.BookPrefix + parsed.BookName,
		StartChapter: parsed.Chapter,
		StartVerse:   parsed.Verse,
	}

	if parsed.Range != nil {
		if parsed.Range.Second != nil {
			ref.EndChapter = parsed.Range.First
			ref.EndVerse = *parsed.Range.Second
		} else {
			ref.EndChapter = parsed.Chapter
			ref.EndVerse = parsed.Range.First
		}
	}

	return ref.Normalized(), nil
}
