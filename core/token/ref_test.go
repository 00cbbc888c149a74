package token

import "testing"

func TestParseVerseRef(t *testing.T) {
	tests := []struct {
		input    string
		expected *VerseRef
		wantErr  bool
	}{
		{
			input:    "3JN 1:1",
			expected: &VerseRef{Book: "3JN", Chapter: 1, Verse: 1},
		},
		{
			input:    "TIT 2:11",
			expected: &VerseRef{Book: "TIT", Chapter: 2, Verse: 11},
		},
		{
			input:    "1CO 13:4",
			expected: &VerseRef{Book: "1CO", Chapter: 13, Verse: 4},
		},
		{
			input:    "  GEN 1:1  ",
			expected: &VerseRef{Book: "GEN", Chapter: 1, Verse: 1},
		},
		{
			input:   "",
			wantErr: true,
		},
		{
			input:   "3JN",
			wantErr: true,
		},
		{
			input:   "3JN 1",
			wantErr: true,
		},
		{
			input:   "TIT 1:15-16",
			wantErr: true, // ranges are not single-verse references
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVerseRef(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVerseRef(%q) = %+v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVerseRef(%q) failed: %v", tt.input, err)
			}
			if got.Book != tt.expected.Book || got.Chapter != tt.expected.Chapter || got.Verse != tt.expected.Verse {
				t.Errorf("ParseVerseRef(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestVerseRefString(t *testing.T) {
	ref := &VerseRef{Book: "3JN", Chapter: 1, Verse: 14}
	if got := ref.String(); got != "3JN 1:14" {
		t.Errorf("String() = %q, want %q", got, "3JN 1:14")
	}
}

func TestParseQuoteReference(t *testing.T) {
	tests := []struct {
		input    string
		expected QuoteReference
		wantErr  bool
	}{
		{
			input: "3JN 1:1",
			expected: QuoteReference{
				Book: "3JN", StartChapter: 1, StartVerse: 1, EndChapter: 1, EndVerse: 1,
			},
		},
		{
			input: "TIT 1:15-16",
			expected: QuoteReference{
				Book: "TIT", StartChapter: 1, StartVerse: 15, EndChapter: 1, EndVerse: 16,
			},
		},
		{
			input: "TIT 1:15-2:2",
			expected: QuoteReference{
				Book: "TIT", StartChapter: 1, StartVerse: 15, EndChapter: 2, EndVerse: 2,
			},
		},
		{
			input:   "",
			wantErr: true,
		},
		{
			input:   "not a reference",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseQuoteReference(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseQuoteReference(%q) = %+v, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuoteReference(%q) failed: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseQuoteReference(%q) = %+v, want %+v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestQuoteReferenceNormalized(t *testing.T) {
	ref := QuoteReference{Book: "3JN", StartChapter: 1, StartVerse: 4}
	n := ref.Normalized()
	if n.EndChapter != 1 || n.EndVerse != 4 {
		t.Errorf("Normalized() = %+v, want end fields filled from start", n)
	}
}

func TestQuoteReferenceString(t *testing.T) {
	tests := []struct {
		ref  QuoteReference
		want string
	}{
		{QuoteReference{Book: "3JN", StartChapter: 1, StartVerse: 1}, "3JN 1:1"},
		{QuoteReference{Book: "TIT", StartChapter: 1, StartVerse: 15, EndChapter: 1, EndVerse: 16}, "TIT 1:15-16"},
		{QuoteReference{Book: "TIT", StartChapter: 1, StartVerse: 15, EndChapter: 2, EndVerse: 2}, "TIT 1:15-2:2"},
	}
	for _, tt := range tests {
		if got := tt.ref.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
