// Package loader reads already-tokenized verse streams into the core token
// model. It understands plain JSON streams, xz-compressed JSON, token XML,
// and sqlite token databases.
//
// The loader never parses source markup (USFM, TSV, Markdown); that is the
// ingestion pipeline's job. It only materializes streams the pipeline
// produced, filling in derived token fields a source may have omitted
// (occurrence bookkeeping, unique IDs, positions).
package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/Interline/core/errors"
	"github.com/FocuswithJustin/Interline/core/normalize"
	"github.com/FocuswithJustin/Interline/core/token"
	"github.com/FocuswithJustin/Interline/internal/logging"
)

// Load reads a tokenized chapter stream from path, dispatching on the file
// extension: .json, .json.xz/.xz, .xml, .db/.sqlite/.sqlite3.
func Load(path string) ([]*token.ProcessedChapter, error) {
	switch {
	case strings.HasSuffix(path, ".xz"):
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open stream %s", path)
		}
		defer f.Close()
		r, err := xz.NewReader(f)
		if err != nil {
			return nil, errors.NewParse("xz", path, err.Error())
		}
		return LoadJSON(r)

	case strings.HasSuffix(path, ".json"):
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open stream %s", path)
		}
		defer f.Close()
		chapters, err := LoadJSON(f)
		if err != nil {
			return nil, errors.NewParse("JSON", path, err.Error())
		}
		return chapters, nil

	case strings.HasSuffix(path, ".xml"):
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open stream %s", path)
		}
		defer f.Close()
		chapters, err := LoadXML(f)
		if err != nil {
			return nil, errors.NewParse("XML", path, err.Error())
		}
		return chapters, nil

	case strings.HasSuffix(path, ".db"), strings.HasSuffix(path, ".sqlite"), strings.HasSuffix(path, ".sqlite3"):
		return LoadSQLite(path)

	default:
		return nil, fmt.Errorf("unsupported stream format: %s", path)
	}
}

// Finish fills derived token fields across a chapter stream: per-verse
// occurrence counts, unique IDs, positions, and verse display text, each
// only where the source left them empty. Sources that supply these fields
// keep them untouched.
func Finish(chapters []*token.ProcessedChapter) {
	total := 0
	for _, ch := range chapters {
		if ch == nil {
			continue
		}
		for _, v := range ch.Verses {
			if v != nil {
				finishVerse(v)
				total += len(v.WordTokens)
			}
		}
	}
	logging.Debug("stream finished", "chapters", len(chapters), "tokens", total)
}

func finishVerse(v *token.ProcessedVerse) {
	totals := make(map[string]int)
	for _, t := range v.WordTokens {
		if t.IsWord() {
			totals[normalize.Normalize(t.Content)]++
		}
	}

	counts := make(map[string]int)
	wordIndex := 0
	pos := 0
	var text strings.Builder
	for _, t := range v.WordTokens {
		if t.Type == "" {
			t.Type = token.TypeWord
		}
		if t.IsWord() && text.Len() > 0 {
			text.WriteByte(' ')
			pos++
		}
		start := pos
		text.WriteString(t.Content)
		pos += len(t.Content)

		if !t.IsWord() {
			continue
		}

		key := normalize.Normalize(t.Content)
		counts[key]++
		if t.Occurrence == 0 {
			t.Occurrence = counts[key]
		}
		if t.TotalOccurrences == 0 {
			t.TotalOccurrences = totals[key]
		}
		if t.UniqueID == "" {
			t.UniqueID = token.UniqueID(v.Reference, t.Content, t.Occurrence)
		}
		if t.Position == (token.Position{}) {
			t.Position = token.Position{Start: start, End: pos, WordIndex: wordIndex}
		}
		wordIndex++
	}

	if v.Text == "" {
		v.Text = text.String()
	}
}
