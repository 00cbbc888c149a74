package token

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
)

// VerseDigest returns the BLAKE3 digest of a verse's identity: its reference
// plus each token's unique ID and content in order. Two verses with the same
// digest produce the same search text, so the digest doubles as a
// memoization key.
func VerseDigest(v *ProcessedVerse) string {
	h := blake3.New()
	writeVerse(h, v)
	return hex.EncodeToString(h.Sum(nil))
}

// StreamDigest returns the BLAKE3 digest of an entire chapter stream.
// Panels record it at registration time so that diagnostics can tell two
// streams of the same resource apart. Nil chapters and verses contribute
// nothing, matching how the matcher walks a stream.
func StreamDigest(chapters []*ProcessedChapter) string {
	h := blake3.New()
	for _, ch := range chapters {
		if ch == nil {
			continue
		}
		fmt.Fprintf(h, "c%d\n", ch.Number)
		for _, v := range ch.Verses {
			if v != nil {
				writeVerse(h, v)
			}
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeVerse(w io.Writer, v *ProcessedVerse) {
	fmt.Fprintf(w, "v%d %s\n", v.Number, v.Reference)
	for _, t := range v.WordTokens {
		fmt.Fprintf(w, "%s\x00%s\x00%s\n", t.UniqueID, t.Type, t.Content)
	}
}
