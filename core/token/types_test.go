package token

import (
	"encoding/json"
	"testing"
)

func TestTypeIsValid(t *testing.T) {
	for _, typ := range []Type{TypeWord, TypePunctuation, TypeText} {
		if !typ.IsValid() {
			t.Errorf("Type(%q).IsValid() = false, want true", typ)
		}
	}
	if Type("verse").IsValid() {
		t.Error("Type(\"verse\").IsValid() = true, want false")
	}
}

func TestUniqueID(t *testing.T) {
	got := UniqueID("3JN 1:1", "πρεσβύτερος", 1)
	want := "3JN 1:1:πρεσβύτερος:1"
	if got != want {
		t.Errorf("UniqueID = %q, want %q", got, want)
	}
}

func TestWordTokenVerseRef(t *testing.T) {
	tok := &WordToken{UniqueID: "3JN 1:1:πρεσβύτερος:1"}
	ref, err := tok.VerseRef()
	if err != nil {
		t.Fatalf("VerseRef failed: %v", err)
	}
	if ref.Book != "3JN" || ref.Chapter != 1 || ref.Verse != 1 {
		t.Errorf("VerseRef = %+v, want 3JN 1:1", ref)
	}

	bad := &WordToken{UniqueID: "no-reference-here"}
	if _, err := bad.VerseRef(); err == nil {
		t.Error("VerseRef on malformed unique ID succeeded, want error")
	}
}

func TestWordTokenStrongLemma(t *testing.T) {
	tok := &WordToken{
		Alignment: &Alignment{Strong: "G4245", Lemma: "πρεσβύτερος"},
	}
	if got := tok.Strong(); got != "G4245" {
		t.Errorf("Strong() = %q, want %q", got, "G4245")
	}
	if got := tok.Lemma(); got != "πρεσβύτερος" {
		t.Errorf("Lemma() = %q, want %q", got, "πρεσβύτερος")
	}

	bare := &WordToken{}
	if bare.Strong() != "" || bare.Lemma() != "" {
		t.Error("unaligned token reported lexical data")
	}
}

func TestProcessedVerseWords(t *testing.T) {
	v := &ProcessedVerse{
		WordTokens: []*WordToken{
			{Content: "ὁ", Type: TypeWord},
			{Content: ",", Type: TypePunctuation},
			{Content: "πρεσβύτερος", Type: TypeWord},
		},
	}
	words := v.Words()
	if len(words) != 2 {
		t.Fatalf("Words() returned %d tokens, want 2", len(words))
	}
	if words[0].Content != "ὁ" || words[1].Content != "πρεσβύτερος" {
		t.Errorf("Words() = %v, want word tokens in order", words)
	}
}

func TestWordTokenJSON(t *testing.T) {
	tok := &WordToken{
		UniqueID:         "3JN 1:1:elder:1",
		Content:          "elder",
		Type:             TypeWord,
		Occurrence:       1,
		TotalOccurrences: 1,
		Position:         Position{Start: 4, End: 9, WordIndex: 1},
		Alignment: &Alignment{
			SourceWordID:     "3JN 1:1:πρεσβύτερος:1",
			SourceContent:    "πρεσβύτερος",
			SourceOccurrence: 1,
			Strong:           "G4245",
		},
	}

	data, err := json.Marshal(tok)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var decoded WordToken
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal failed: %v", err)
	}

	if decoded.UniqueID != tok.UniqueID {
		t.Errorf("UniqueID = %q, want %q", decoded.UniqueID, tok.UniqueID)
	}
	if decoded.Position != tok.Position {
		t.Errorf("Position = %+v, want %+v", decoded.Position, tok.Position)
	}
	if decoded.Alignment == nil || *decoded.Alignment != *tok.Alignment {
		t.Errorf("Alignment = %+v, want %+v", decoded.Alignment, tok.Alignment)
	}
}
