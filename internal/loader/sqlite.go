package loader

import (
	"database/sql"
	"sort"

	_ "modernc.org/sqlite" // pure Go sqlite driver

	"github.com/FocuswithJustin/Interline/core/errors"
	"github.com/FocuswithJustin/Interline/core/token"
)

// SQLite token database schema:
//
//	verses(id INTEGER PRIMARY KEY, chapter INTEGER, number INTEGER,
//	       reference TEXT, text TEXT)
//	tokens(verse_id INTEGER, idx INTEGER, uid TEXT, content TEXT,
//	       type TEXT, occurrence INTEGER, total INTEGER,
//	       start_pos INTEGER, end_pos INTEGER, word_index INTEGER,
//	       src_id TEXT, src_content TEXT, src_occurrence INTEGER,
//	       strong TEXT, lemma TEXT, morph TEXT)
//
// Nullable columns map to empty fields and are derived by Finish.

// LoadSQLite reads a tokenized chapter stream from a sqlite token database.
func LoadSQLite(path string) ([]*token.ProcessedChapter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open token database %s", path)
	}
	defer db.Close()

	verses, order, err := loadVerses(db)
	if err != nil {
		return nil, errors.Wrapf(err, "read verses from %s", path)
	}
	if err := loadTokens(db, verses); err != nil {
		return nil, errors.Wrapf(err, "read tokens from %s", path)
	}

	byChapter := make(map[int]*token.ProcessedChapter)
	var chapters []*token.ProcessedChapter
	for _, vid := range order {
		entry := verses[vid]
		ch, ok := byChapter[entry.chapter]
		if !ok {
			ch = &token.ProcessedChapter{Number: entry.chapter}
			byChapter[entry.chapter] = ch
			chapters = append(chapters, ch)
		}
		ch.Verses = append(ch.Verses, entry.verse)
	}
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].Number < chapters[j].Number })

	Finish(chapters)
	return chapters, nil
}

type verseRow struct {
	chapter int
	verse   *token.ProcessedVerse
}

func loadVerses(db *sql.DB) (map[int64]*verseRow, []int64, error) {
	rows, err := db.Query(`SELECT id, chapter, number, reference, COALESCE(text, '')
		FROM verses ORDER BY chapter, number`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	verses := make(map[int64]*verseRow)
	var order []int64
	for rows.Next() {
		var id int64
		row := &verseRow{verse: &token.ProcessedVerse{}}
		if err := rows.Scan(&id, &row.chapter, &row.verse.Number, &row.verse.Reference, &row.verse.Text); err != nil {
			return nil, nil, err
		}
		verses[id] = row
		order = append(order, id)
	}
	return verses, order, rows.Err()
}

func loadTokens(db *sql.DB, verses map[int64]*verseRow) error {
	rows, err := db.Query(`SELECT verse_id, COALESCE(uid, ''), content,
		COALESCE(type, 'word'), COALESCE(occurrence, 0), COALESCE(total, 0),
		COALESCE(start_pos, 0), COALESCE(end_pos, 0), COALESCE(word_index, 0),
		COALESCE(src_id, ''), COALESCE(src_content, ''), COALESCE(src_occurrence, 0),
		COALESCE(strong, ''), COALESCE(lemma, ''), COALESCE(morph, '')
		FROM tokens ORDER BY verse_id, idx`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			verseID int64
			wt      token.WordToken
			typ     string
			a       token.Alignment
		)
		if err := rows.Scan(&verseID, &wt.UniqueID, &wt.Content, &typ,
			&wt.Occurrence, &wt.TotalOccurrences,
			&wt.Position.Start, &wt.Position.End, &wt.Position.WordIndex,
			&a.SourceWordID, &a.SourceContent, &a.SourceOccurrence,
			&a.Strong, &a.Lemma, &a.Morph); err != nil {
			return err
		}
		wt.Type = token.Type(typ)
		if a != (token.Alignment{}) {
			wt.Alignment = &a
		}
		row, ok := verses[verseID]
		if !ok {
			continue
		}
		row.verse.WordTokens = append(row.verse.WordTokens, &wt)
	}
	return rows.Err()
}
