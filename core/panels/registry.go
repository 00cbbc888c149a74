// Package panels tracks registered text panels and disseminates highlight
// instructions across them.
//
// A panel is an independently rendered display surface hosting one
// resource's tokenized text. Panels register with the process-wide Service
// and receive broadcast messages synchronously, in registration order. No
// panel knows another panel's internals; each resolves its own highlight
// set from the shared alignment metadata embedded in its tokens.
package panels

import (
	"github.com/FocuswithJustin/Interline/core/token"
)

// Kind tags a panel as holding original-language or target-language text.
// It is resolved once at registration time, never re-derived per click.
type Kind string

// Panel kind constants.
const (
	// KindOriginal marks a panel holding original-language text.
	KindOriginal Kind = "original"

	// KindTarget marks a panel holding a translation.
	KindTarget Kind = "target"
)

// originalLanguages is the set of original-language codes.
var originalLanguages = map[string]bool{
	"hbo": true, // Biblical Hebrew
	"grc": true, // Koine Greek
	"he":  true,
	"el":  true,
}

// KindForLanguage returns the panel kind implied by a language code.
func KindForLanguage(language string) Kind {
	if originalLanguages[language] {
		return KindOriginal
	}
	return KindTarget
}

// Registration describes one panel. The record is held in the registry
// keyed by ResourceID, created on panel mount and removed on unmount; the
// registry has no persistence beyond the current session.
type Registration struct {
	// ResourceID identifies the panel's resource (registry key).
	ResourceID string `json:"resource_id"`

	// ResourceType is the resource category (e.g., "scripture", "notes").
	ResourceType string `json:"resource_type"`

	// Language is the resource's language code.
	Language string `json:"language"`

	// Chapters is the panel's tokenized text.
	Chapters []*token.ProcessedChapter `json:"-"`

	// Kind is the original/target tag, filled at registration when empty.
	Kind Kind `json:"kind"`
}

// IsOriginalLanguage returns true for original-language panels.
func (r *Registration) IsOriginalLanguage() bool {
	return r.Kind == KindOriginal
}

// PanelStats describes one registered panel for diagnostics.
type PanelStats struct {
	ResourceID   string `json:"resource_id"`
	ResourceType string `json:"resource_type"`
	Language     string `json:"language"`
	Kind         Kind   `json:"kind"`
	Chapters     int    `json:"chapters"`
	StreamDigest string `json:"stream_digest"`
}

// Statistics reports panel counts by type and language.
// It has no effect on matching behavior.
type Statistics struct {
	PanelCount int            `json:"panel_count"`
	ByType     map[string]int `json:"by_type"`
	ByLanguage map[string]int `json:"by_language"`
	ByKind     map[Kind]int   `json:"by_kind"`
	Panels     []PanelStats   `json:"panels"`
}
