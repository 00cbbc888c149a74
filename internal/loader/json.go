package loader

import (
	"encoding/json"
	"io"

	"github.com/FocuswithJustin/Interline/core/token"
)

// stream is the JSON payload shape: {"chapters": [...]}.
type stream struct {
	Chapters []*token.ProcessedChapter `json:"chapters"`
}

// LoadJSON reads a tokenized chapter stream from JSON.
func LoadJSON(r io.Reader) ([]*token.ProcessedChapter, error) {
	var s stream
	dec := json.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	Finish(s.Chapters)
	return s.Chapters, nil
}
