package align

import (
	"testing"

	pkgerrors "errors"

	"github.com/FocuswithJustin/Interline/core/errors"
	"github.com/FocuswithJustin/Interline/core/token"
)

// origElder is a Greek original token used across the resolver tests.
func origElder() *token.WordToken {
	return &token.WordToken{
		UniqueID:         "3JN 1:1:πρεσβύτερος:1",
		Content:          "πρεσβύτερος",
		Type:             token.TypeWord,
		Occurrence:       1,
		TotalOccurrences: 1,
		Alignment:        &token.Alignment{Strong: "G4245", Lemma: "πρεσβύτερος"},
	}
}

func targetChapters(tokens ...*token.WordToken) []*token.ProcessedChapter {
	return []*token.ProcessedChapter{
		{
			Number: 1,
			Verses: []*token.ProcessedVerse{
				{
					Reference:  "3JN 1:1",
					Number:     1,
					WordTokens: tokens,
				},
			},
		},
	}
}

func ref3JN() token.QuoteReference {
	return token.QuoteReference{Book: "3JN", StartChapter: 1, StartVerse: 1}
}

func TestFindAlignedTokensExactLink(t *testing.T) {
	// A target token whose sourceWordId names the original
	// token resolves via tier 1.
	elder := &token.WordToken{
		UniqueID: "3JN 1:1:elder:1",
		Content:  "elder",
		Type:     token.TypeWord,
		Alignment: &token.Alignment{
			SourceWordID: "3JN 1:1:πρεσβύτερος:1",
		},
	}
	result := FindAlignedTokens([]*token.WordToken{origElder()}, targetChapters(elder), ref3JN())
	if !result.Success {
		t.Fatalf("alignment failed: %s", result.Error)
	}
	if len(result.TotalAlignedTokens) != 1 || result.TotalAlignedTokens[0] != elder {
		t.Fatalf("got %v, want exactly the exact-link token", result.TotalAlignedTokens)
	}
	if result.AlignedMatches[0].VerseRef != "3JN 1:1" {
		t.Errorf("verse ref = %q, want 3JN 1:1", result.AlignedMatches[0].VerseRef)
	}
}

func TestFindAlignedTokensExactLinkShutsOffLowerTiers(t *testing.T) {
	exact := &token.WordToken{
		UniqueID: "3JN 1:1:elder:1",
		Content:  "elder",
		Type:     token.TypeWord,
		Alignment: &token.Alignment{
			SourceWordID: "3JN 1:1:πρεσβύτερος:1",
			Strong:       "G4245",
		},
	}
	sameStrong := &token.WordToken{
		UniqueID:  "3JN 1:1:presbyter:1",
		Content:   "presbyter",
		Type:      token.TypeWord,
		Alignment: &token.Alignment{Strong: "G4245"},
	}
	result := FindAlignedTokens([]*token.WordToken{origElder()}, targetChapters(exact, sameStrong), ref3JN())
	if !result.Success {
		t.Fatalf("alignment failed: %s", result.Error)
	}
	if len(result.TotalAlignedTokens) != 1 || result.TotalAlignedTokens[0] != exact {
		t.Errorf("tier 1 did not shut off lower tiers: got %d tokens", len(result.TotalAlignedTokens))
	}
}

func TestFindAlignedTokensStrongTier(t *testing.T) {
	// Without exact links, every same-strong token in the verse is kept.
	a := &token.WordToken{
		UniqueID:  "3JN 1:1:elder:1",
		Content:   "elder",
		Type:      token.TypeWord,
		Alignment: &token.Alignment{Strong: "G4245"},
	}
	b := &token.WordToken{
		UniqueID:  "3JN 1:1:presbyter:1",
		Content:   "presbyter",
		Type:      token.TypeWord,
		Alignment: &token.Alignment{Strong: "G4245"},
	}
	other := &token.WordToken{
		UniqueID:  "3JN 1:1:beloved:1",
		Content:   "beloved",
		Type:      token.TypeWord,
		Alignment: &token.Alignment{Strong: "G0027"},
	}
	result := FindAlignedTokens([]*token.WordToken{origElder()}, targetChapters(a, b, other), ref3JN())
	if !result.Success {
		t.Fatalf("alignment failed: %s", result.Error)
	}
	if len(result.TotalAlignedTokens) != 2 {
		t.Fatalf("got %d tokens, want both same-strong candidates", len(result.TotalAlignedTokens))
	}
	if result.TotalAlignedTokens[0] != a || result.TotalAlignedTokens[1] != b {
		t.Error("strong tier candidates out of order")
	}
}

func TestFindAlignedTokensContentOccurrenceTier(t *testing.T) {
	match := &token.WordToken{
		UniqueID: "3JN 1:1:elder:1",
		Content:  "elder",
		Type:     token.TypeWord,
		Alignment: &token.Alignment{
			SourceContent:    "Πρεσβύτερος", // differs only in case from the original
			SourceOccurrence: 1,
		},
	}
	wrongOccurrence := &token.WordToken{
		UniqueID: "3JN 1:1:old:1",
		Content:  "old",
		Type:     token.TypeWord,
		Alignment: &token.Alignment{
			SourceContent:    "πρεσβύτερος",
			SourceOccurrence: 2,
		},
	}
	result := FindAlignedTokens([]*token.WordToken{origElder()}, targetChapters(match, wrongOccurrence), ref3JN())
	if !result.Success {
		t.Fatalf("alignment failed: %s", result.Error)
	}
	if len(result.TotalAlignedTokens) != 1 || result.TotalAlignedTokens[0] != match {
		t.Errorf("content tier = %v, want the occurrence-matching token only", result.TotalAlignedTokens)
	}
}

func TestFindAlignedTokensOneToMany(t *testing.T) {
	// One original token rendered by two linked target tokens.
	a := &token.WordToken{
		UniqueID:  "3JN 1:1:the:1",
		Content:   "the",
		Type:      token.TypeWord,
		Alignment: &token.Alignment{SourceWordID: "3JN 1:1:πρεσβύτερος:1"},
	}
	b := &token.WordToken{
		UniqueID:  "3JN 1:1:elder:1",
		Content:   "elder",
		Type:      token.TypeWord,
		Alignment: &token.Alignment{SourceWordID: "3JN 1:1:πρεσβύτερος:1"},
	}
	result := FindAlignedTokens([]*token.WordToken{origElder()}, targetChapters(a, b), ref3JN())
	if !result.Success {
		t.Fatalf("alignment failed: %s", result.Error)
	}
	if len(result.AlignedMatches) != 1 {
		t.Fatalf("got %d matches, want 1", len(result.AlignedMatches))
	}
	if len(result.AlignedMatches[0].AlignedTokens) != 2 {
		t.Errorf("got %d aligned tokens, want 2", len(result.AlignedMatches[0].AlignedTokens))
	}
}

func TestFindAlignedTokensMissIsNotError(t *testing.T) {
	unrelated := &token.WordToken{
		UniqueID:  "3JN 1:1:and:1",
		Content:   "and",
		Type:      token.TypeWord,
		Alignment: &token.Alignment{Strong: "G2532"},
	}
	result := FindAlignedTokens([]*token.WordToken{origElder()}, targetChapters(unrelated), ref3JN())
	if !result.Success {
		t.Fatalf("miss reported as error: %s", result.Error)
	}
	if len(result.AlignedMatches) != 0 || len(result.TotalAlignedTokens) != 0 {
		t.Error("miss produced aligned tokens")
	}
}

func TestFindAlignedTokensMissingVerseSkipsToken(t *testing.T) {
	orig := origElder()
	chapters := []*token.ProcessedChapter{
		{
			Number: 2, // no chapter 1 verse to resolve against
			Verses: []*token.ProcessedVerse{{Reference: "3JN 2:1", Number: 1}},
		},
	}
	result := FindAlignedTokens([]*token.WordToken{orig}, chapters, ref3JN())
	if !result.Success {
		t.Fatalf("missing verse reported as error: %s", result.Error)
	}
	if len(result.AlignedMatches) != 0 {
		t.Error("missing verse produced matches")
	}
}

func TestFindAlignedTokensMalformedReference(t *testing.T) {
	bad := &token.WordToken{UniqueID: "garbage", Content: "x", Type: token.TypeWord}
	result := FindAlignedTokens([]*token.WordToken{bad}, targetChapters(), ref3JN())
	if result.Success {
		t.Fatal("malformed unique ID succeeded, want internal error")
	}
	var ie *errors.InternalError
	if !pkgerrors.As(result.Err, &ie) {
		t.Errorf("error type = %T, want *InternalError", result.Err)
	}
}

func TestFindAlignedTokensPreservesInputOrder(t *testing.T) {
	origBeloved := &token.WordToken{
		UniqueID:   "3JN 1:1:ἀγαπητῷ:1",
		Content:    "ἀγαπητῷ",
		Type:       token.TypeWord,
		Occurrence: 1,
		Alignment:  &token.Alignment{Strong: "G0027"},
	}
	elder := &token.WordToken{
		UniqueID:  "3JN 1:1:elder:1",
		Content:   "elder",
		Type:      token.TypeWord,
		Alignment: &token.Alignment{SourceWordID: "3JN 1:1:πρεσβύτερος:1"},
	}
	beloved := &token.WordToken{
		UniqueID:  "3JN 1:1:beloved:1",
		Content:   "beloved",
		Type:      token.TypeWord,
		Alignment: &token.Alignment{SourceWordID: "3JN 1:1:ἀγαπητῷ:1"},
	}
	result := FindAlignedTokens([]*token.WordToken{origElder(), origBeloved},
		targetChapters(elder, beloved), ref3JN())
	if !result.Success {
		t.Fatalf("alignment failed: %s", result.Error)
	}
	if len(result.TotalAlignedTokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(result.TotalAlignedTokens))
	}
	if result.TotalAlignedTokens[0] != elder || result.TotalAlignedTokens[1] != beloved {
		t.Error("aligned tokens do not preserve original input order")
	}
}
