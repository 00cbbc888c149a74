package token

import "testing"

func testChapters() []*ProcessedChapter {
	return []*ProcessedChapter{
		{
			Number: 1,
			Verses: []*ProcessedVerse{
				{
					Reference: "3JN 1:1",
					Number:    1,
					WordTokens: []*WordToken{
						{UniqueID: "3JN 1:1:ὁ:1", Content: "ὁ", Type: TypeWord},
						{UniqueID: "3JN 1:1:πρεσβύτερος:1", Content: "πρεσβύτερος", Type: TypeWord},
					},
				},
			},
		},
	}
}

func TestStreamDigestDeterministic(t *testing.T) {
	a := StreamDigest(testChapters())
	b := StreamDigest(testChapters())
	if a != b {
		t.Errorf("StreamDigest not deterministic: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("StreamDigest length = %d, want 64 hex chars", len(a))
	}
}

func TestStreamDigestDistinguishesContent(t *testing.T) {
	a := StreamDigest(testChapters())
	changed := testChapters()
	changed[0].Verses[0].WordTokens[0].Content = "καὶ"
	if b := StreamDigest(changed); a == b {
		t.Error("StreamDigest identical for different content")
	}
}

func TestStreamDigestSkipsNilEntries(t *testing.T) {
	withNils := testChapters()
	withNils[0].Verses = append(withNils[0].Verses, nil)
	withNils = append(withNils, nil)

	if got, want := StreamDigest(withNils), StreamDigest(testChapters()); got != want {
		t.Errorf("StreamDigest with nil entries = %s, want %s", got, want)
	}
}

func TestVerseDigest(t *testing.T) {
	chapters := testChapters()
	a := VerseDigest(chapters[0].Verses[0])
	b := VerseDigest(chapters[0].Verses[0])
	if a != b {
		t.Errorf("VerseDigest not deterministic: %s vs %s", a, b)
	}

	other := &ProcessedVerse{Reference: "3JN 1:2", Number: 2}
	if VerseDigest(other) == a {
		t.Error("VerseDigest identical for different verses")
	}
}
