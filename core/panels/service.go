package panels

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/Interline/core/align"
	"github.com/FocuswithJustin/Interline/core/token"
)

// MessageType is the broadcast message kind.
type MessageType string

// Broadcast message types.
const (
	// MessageHighlight instructs panels to highlight their aligned tokens.
	MessageHighlight MessageType = "HIGHLIGHT_TOKENS"

	// MessageClear instructs panels to clear all highlights.
	MessageClear MessageType = "CLEAR"
)

// ReferenceToken is the original-language token a broadcast is anchored on.
// It carries only the shared alignment metadata, so target-to-target
// highlighting works with no original-language panel registered.
type ReferenceToken struct {
	UniqueID   string `json:"unique_id,omitempty"`
	Content    string `json:"content"`
	Strong     string `json:"strong,omitempty"`
	Lemma      string `json:"lemma,omitempty"`
	Occurrence int    `json:"occurrence"`

	// VerseRef is the verse the anchor lives in. It keeps the strong and
	// content+occurrence tiers usable when the alignment block recorded no
	// sourceWordId, so UniqueID may be empty.
	VerseRef string `json:"verse_ref,omitempty"`
}

// Message is one broadcast to all registered panels.
type Message struct {
	// Type is the message kind.
	Type MessageType `json:"type"`

	// SourceResourceID names the panel the click originated in.
	SourceResourceID string `json:"source_resource_id,omitempty"`

	// SourceContent is the clicked token's surface text.
	SourceContent string `json:"source_content,omitempty"`

	// OriginalLanguageToken anchors the highlight; nil for CLEAR.
	OriginalLanguageToken *ReferenceToken `json:"original_language_token,omitempty"`

	// Timestamp records when the broadcast was issued.
	Timestamp time.Time `json:"timestamp"`

	// clickedTokenID carries the clicked token's unique ID for the
	// self-exclusion rule; it is panel-local, not part of the wire shape.
	clickedTokenID string
}

// PanelHandler receives a broadcast together with the tokens the panel
// should highlight. For CLEAR messages tokens is nil.
type PanelHandler func(msg Message, tokens []*token.WordToken)

// Handler observes raw broadcast messages (e.g., a relay to render clients).
type Handler func(msg Message)

// panelEntry is one registered panel.
type panelEntry struct {
	reg     Registration
	handler PanelHandler
	digest  string
}

// subEntry is one subscribed observer.
type subEntry struct {
	id      string
	handler Handler
}

// Service is the process-wide panel registry and broadcast service.
// It is passed by reference to every component that needs it; there is no
// ambient global instance. Registration and delivery are guarded by a
// mutex so a multi-threaded host keeps registration-order delivery.
type Service struct {
	mu     sync.Mutex
	panels map[string]*panelEntry
	order  []string
	subs   []subEntry
}

// NewService creates an empty panel registry and broadcast service.
func NewService() *Service {
	return &Service{
		panels: make(map[string]*panelEntry),
	}
}

// Register adds a panel or, when the ResourceID is already registered,
// replaces its record in place (registration is idempotent; the panel keeps
// its original delivery slot). An empty Kind is resolved from the language.
func (s *Service) Register(reg Registration, handler PanelHandler) {
	if reg.Kind == "" {
		reg.Kind = KindForLanguage(reg.Language)
	}
	entry := &panelEntry{
		reg:     reg,
		handler: handler,
		digest:  token.StreamDigest(reg.Chapters),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.panels[reg.ResourceID]; !ok {
		s.order = append(s.order, reg.ResourceID)
	}
	s.panels[reg.ResourceID] = entry
}

// Unregister removes a panel. Removing the last panel resets the registry's
// delivery order; subscriptions are unaffected.
func (s *Service) Unregister(resourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.panels[resourceID]; !ok {
		return
	}
	delete(s.panels, resourceID)
	for i, id := range s.order {
		if id == resourceID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if len(s.panels) == 0 {
		s.order = nil
	}
}

// Subscribe adds an observer for raw broadcast messages and returns its
// subscription token. Delivery order equals subscription order, after all
// panels. Under the synchronous delivery model, no delivery happens after
// Unsubscribe returns.
func (s *Service) Subscribe(handler Handler) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, subEntry{id: id, handler: handler})
	return id
}

// Unsubscribe removes the observer identified by the subscription token.
func (s *Service) Unsubscribe(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// HandleWordClick derives the original-language reference token for a
// clicked token and broadcasts a highlight message to every registered
// panel.
//
// A click in an original-language panel anchors on the clicked token
// itself. A click in a target-language panel anchors on the clicked token's
// own alignment block; no original-language panel needs to be registered.
// Clicked tokens with no usable alignment are ignored.
func (s *Service) HandleWordClick(clicked *token.WordToken, sourceResourceID, sourceVerse string) {
	if clicked == nil || !clicked.IsWord() {
		return
	}

	ref := s.referenceTokenFor(clicked, sourceResourceID, sourceVerse)
	if ref == nil {
		return
	}

	s.publish(Message{
		Type:                  MessageHighlight,
		SourceResourceID:      sourceResourceID,
		SourceContent:         clicked.Content,
		OriginalLanguageToken: ref,
		Timestamp:             time.Now(),
		clickedTokenID:        clicked.UniqueID,
	})
}

// ClearHighlights broadcasts a clear message to all panels unconditionally.
func (s *Service) ClearHighlights() {
	s.publish(Message{
		Type:      MessageClear,
		Timestamp: time.Now(),
	})
}

// Publish delivers msg to every registered panel's handler and then to
// every subscriber, synchronously, in registration and subscription order.
// A panel registered after Publish begins does not receive the broadcast.
func (s *Service) Publish(msg Message) {
	s.publish(msg)
}

// PanelChapters returns the chapter stream of a registered panel, or nil.
func (s *Service) PanelChapters(resourceID string) []*token.ProcessedChapter {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.panels[resourceID]; ok {
		return entry.reg.Chapters
	}
	return nil
}

// GetStatistics reports panel counts by type, language, and kind.
func (s *Service) GetStatistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Statistics{
		PanelCount: len(s.panels),
		ByType:     make(map[string]int),
		ByLanguage: make(map[string]int),
		ByKind:     make(map[Kind]int),
	}
	for _, id := range s.order {
		entry := s.panels[id]
		stats.ByType[entry.reg.ResourceType]++
		stats.ByLanguage[entry.reg.Language]++
		stats.ByKind[entry.reg.Kind]++
		stats.Panels = append(stats.Panels, PanelStats{
			ResourceID:   entry.reg.ResourceID,
			ResourceType: entry.reg.ResourceType,
			Language:     entry.reg.Language,
			Kind:         entry.reg.Kind,
			Chapters:     len(entry.reg.Chapters),
			StreamDigest: entry.digest,
		})
	}
	return stats
}

// referenceTokenFor derives the original-language reference token for a
// click. The owning panel's kind decides the derivation; an unregistered
// source panel falls back to inspecting the token's alignment block.
// sourceVerse supplies the verse context when the alignment block recorded
// no sourceWordId.
func (s *Service) referenceTokenFor(clicked *token.WordToken, sourceResourceID, sourceVerse string) *ReferenceToken {
	s.mu.Lock()
	entry, registered := s.panels[sourceResourceID]
	s.mu.Unlock()

	original := false
	if registered {
		original = entry.reg.IsOriginalLanguage()
	} else {
		a := clicked.Alignment
		original = a == nil || (a.SourceWordID == "" && a.SourceContent == "")
	}

	if original {
		verseRef := sourceVerse
		if vr, err := clicked.VerseRef(); err == nil {
			verseRef = vr.String()
		}
		return &ReferenceToken{
			UniqueID:   clicked.UniqueID,
			Content:    clicked.Content,
			Strong:     clicked.Strong(),
			Lemma:      clicked.Lemma(),
			Occurrence: clicked.Occurrence,
			VerseRef:   verseRef,
		}
	}

	a := clicked.Alignment
	if a == nil || (a.SourceWordID == "" && a.SourceContent == "" && a.Strong == "") {
		return nil
	}
	uid := a.SourceWordID
	if uid == "" && sourceVerse != "" && a.SourceContent != "" && a.SourceOccurrence > 0 {
		// The unique ID scheme is verse:content:occurrence, so a complete
		// alignment block names its original token even without an explicit
		// sourceWordId.
		uid = token.UniqueID(sourceVerse, a.SourceContent, a.SourceOccurrence)
	}
	return &ReferenceToken{
		UniqueID:   uid,
		Content:    a.SourceContent,
		Strong:     a.Strong,
		Lemma:      a.Lemma,
		Occurrence: a.SourceOccurrence,
		VerseRef:   sourceVerse,
	}
}

// publish snapshots the delivery lists under the lock, then resolves and
// delivers outside it so handlers may call back into the service.
func (s *Service) publish(msg Message) {
	s.mu.Lock()
	entries := make([]*panelEntry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.panels[id])
	}
	subs := make([]subEntry, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, entry := range entries {
		entry.handler(msg, s.resolveHighlights(entry, msg))
	}
	for _, sub := range subs {
		sub.handler(msg)
	}
}

// resolveHighlights computes the tokens one panel should highlight for a
// message. An original-language panel highlights the token whose unique ID
// equals the reference token's; a target-language panel resolves through
// the alignment tiers. The clicked token is excluded only from its own
// panel's set: exclusion requires both the unique ID and the originating
// ResourceID to match, since an identical word in another panel can
// legitimately share the same unique ID pattern.
func (s *Service) resolveHighlights(entry *panelEntry, msg Message) []*token.WordToken {
	if msg.Type != MessageHighlight || msg.OriginalLanguageToken == nil {
		return nil
	}
	ref := msg.OriginalLanguageToken

	var tokens []*token.WordToken
	if entry.reg.IsOriginalLanguage() {
		tokens = findByUniqueID(entry.reg.Chapters, ref.UniqueID)
	} else {
		uid := ref.UniqueID
		if uid == "" && ref.VerseRef != "" {
			// No recorded original token ID: anchor on the verse alone so
			// the strong and content+occurrence tiers still run.
			uid = token.UniqueID(ref.VerseRef, ref.Content, ref.Occurrence)
		}
		pseudo := &token.WordToken{
			UniqueID:   uid,
			Content:    ref.Content,
			Type:       token.TypeWord,
			Occurrence: ref.Occurrence,
			Alignment: &token.Alignment{
				Strong: ref.Strong,
				Lemma:  ref.Lemma,
			},
		}
		resolved, err := align.ResolveToken(pseudo, entry.reg.Chapters)
		if err != nil {
			// Malformed reference tokens are skipped per panel; the
			// broadcast service has no error channel.
			return nil
		}
		tokens = resolved
	}

	if entry.reg.ResourceID != msg.SourceResourceID || msg.clickedTokenID == "" {
		return tokens
	}
	filtered := tokens[:0:0]
	for _, t := range tokens {
		if t.UniqueID != msg.clickedTokenID {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// findByUniqueID scans chapters for word tokens with the given unique ID.
func findByUniqueID(chapters []*token.ProcessedChapter, uniqueID string) []*token.WordToken {
	if uniqueID == "" {
		return nil
	}
	var out []*token.WordToken
	for _, ch := range chapters {
		if ch == nil {
			continue
		}
		for _, v := range ch.Verses {
			if v == nil {
				continue
			}
			for _, t := range v.WordTokens {
				if t.IsWord() && t.UniqueID == uniqueID {
					out = append(out, t)
				}
			}
		}
	}
	return out
}
