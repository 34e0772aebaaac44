// Package review holds the client-side state of one generation's review
// workflow: source text in, proposals reviewed and edited, accepted subset
// saved. It mirrors the lifecycle of the generate view: proposals live only
// in memory here and are discarded when the user navigates away or starts a
// new generation.
package review

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mateusz-szafarz/10x-cards/internal/model"

	"github.com/google/uuid"
)

// State is the workflow position: Idle -> Generating -> Generated -> Saving,
// with Generating -> Error (and Error -> Generating on retry), Saving ->
// Generated on a failed save, and Saving -> Done on success.
type State string

const (
	StateIdle       State = "idle"
	StateGenerating State = "generating"
	StateGenerated  State = "generated"
	StateSaving     State = "saving"
	StateError      State = "error"
	StateDone       State = "done"
)

// Status is the per-proposal review decision.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Item is one proposal under review. Edits overwrite Front/Back in place.
type Item struct {
	Front  string
	Back   string
	Status Status
}

// GenerateFunc asks the backend for proposals from source text.
type GenerateFunc func(ctx context.Context, sourceText string) (*model.GenerationResponse, error)

// AcceptFunc commits the selected proposals for a generation session.
type AcceptFunc func(ctx context.Context, generationID uuid.UUID, flashcards []model.AcceptFlashcard) (*model.AcceptGenerationResponse, error)

const (
	// generateTimeout is deliberately looser than the model client's own
	// timeout so retry and backoff time inside the client fits within it.
	generateTimeout = 60 * time.Second
	saveTimeout     = 10 * time.Second

	minSourceTextLen = 1000
	maxSourceTextLen = 10000
)

// ErrNothingAccepted is returned by Save when no item is accepted; the save
// action is disabled in that case.
var ErrNothingAccepted = errors.New("review: no accepted items to save")

// ErrBusy is returned when Generate or Save is invoked while a save is
// already running.
var ErrBusy = errors.New("review: save in progress")

// Session is the state machine for one review workflow instance. All methods
// are safe for concurrent use, though a single client drives it in practice;
// the mutex exists so a late generation result cannot race a user action.
type Session struct {
	generate GenerateFunc
	accept   AcceptFunc

	mu           sync.Mutex
	state        State
	sourceText   string
	items        []Item
	generationID uuid.UUID
	errorMessage string

	// genSeq identifies the latest Generate call. A completion whose seq no
	// longer matches belongs to a superseded call and is discarded, so an
	// out-of-order result can never overwrite fresher state.
	genSeq     int
	cancelPrev context.CancelFunc
}

func NewSession(generate GenerateFunc, accept AcceptFunc) *Session {
	return &Session{
		generate: generate,
		accept:   accept,
		state:    StateIdle,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errorMessage
}

func (s *Session) GenerationID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generationID
}

// Items returns a snapshot of the review items.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// AcceptedCount is the live number of accepted items.
func (s *Session) AcceptedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.acceptedCountLocked()
}

func (s *Session) acceptedCountLocked() int {
	n := 0
	for _, item := range s.items {
		if item.Status == StatusAccepted {
			n++
		}
	}
	return n
}

func (s *Session) SetSourceText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sourceText = text
}

// Generate starts a generation call for the current source text. Any
// in-flight generation is cancelled and its late result, if it still
// arrives, is discarded. The returned channel closes once this call's
// outcome has been applied (or discarded), which tests and CLI callers use
// to wait for completion.
func (s *Session) Generate(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	s.mu.Lock()
	if s.state == StateSaving {
		s.mu.Unlock()
		close(done)
		return done
	}

	textLen := utf8.RuneCountInString(s.sourceText)
	if textLen < minSourceTextLen || textLen > maxSourceTextLen {
		s.state = StateError
		s.errorMessage = "Source text must be between 1000 and 10000 characters."
		s.items = nil
		s.generationID = uuid.Nil
		s.mu.Unlock()
		close(done)
		return done
	}

	if s.cancelPrev != nil {
		s.cancelPrev()
	}

	callCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	s.cancelPrev = cancel

	s.genSeq++
	seq := s.genSeq
	text := s.sourceText

	s.state = StateGenerating
	s.errorMessage = ""
	s.items = nil
	s.generationID = uuid.Nil
	s.mu.Unlock()

	go func() {
		defer close(done)
		resp, err := s.generate(callCtx, text)
		cancel()

		s.mu.Lock()
		defer s.mu.Unlock()

		if seq != s.genSeq {
			// Superseded by a newer Generate call.
			return
		}

		if err != nil {
			if ctx.Err() != nil {
				// The caller went away (navigation, unmount): discard
				// silently rather than surfacing an error nobody sees.
				s.state = StateIdle
				return
			}
			s.state = StateError
			s.errorMessage = generationErrorMessage(err, callCtx)
			return
		}

		items := make([]Item, len(resp.FlashcardsProposals))
		for i, p := range resp.FlashcardsProposals {
			items[i] = Item{Front: p.Front, Back: p.Back, Status: StatusPending}
		}
		s.items = items
		s.generationID = resp.GenerationID
		s.state = StateGenerated
	}()

	return done
}

// Cancel aborts any in-flight generation without surfacing an error.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelPrev != nil {
		s.cancelPrev()
	}
	s.genSeq++ // orphan any completion already past the cancel
	if s.state == StateGenerating {
		s.state = StateIdle
	}
}

// Accept marks the item at index as accepted. Like the other item mutations
// it is local, idempotent, and valid only while proposals are on screen.
func (s *Session) Accept(index int) {
	s.mutateItem(index, func(item *Item) { item.Status = StatusAccepted })
}

// Reject marks the item at index as rejected.
func (s *Session) Reject(index int) {
	s.mutateItem(index, func(item *Item) { item.Status = StatusRejected })
}

// EditFront overwrites the front text of the item at index.
func (s *Session) EditFront(index int, value string) {
	s.mutateItem(index, func(item *Item) { item.Front = value })
}

// EditBack overwrites the back text of the item at index.
func (s *Session) EditBack(index int, value string) {
	s.mutateItem(index, func(item *Item) { item.Back = value })
}

func (s *Session) mutateItem(index int, fn func(*Item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateGenerated {
		return
	}
	if index < 0 || index >= len(s.items) {
		return
	}
	fn(&s.items[index])
}

// Save commits the accepted items (with their edits) and, on success, leaves
// the workflow in the terminal Done state. On failure the items stay exactly
// as reviewed so the user can retry without regenerating: a failed save is
// recoverable, a failed generation is not.
func (s *Session) Save(ctx context.Context) (*model.AcceptGenerationResponse, error) {
	s.mu.Lock()
	if s.state != StateGenerated {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	selected := make([]model.AcceptFlashcard, 0, len(s.items))
	for _, item := range s.items {
		if item.Status == StatusAccepted {
			selected = append(selected, model.AcceptFlashcard{Front: item.Front, Back: item.Back})
		}
	}
	if len(selected) == 0 {
		s.mu.Unlock()
		return nil, ErrNothingAccepted
	}

	generationID := s.generationID
	s.state = StateSaving
	s.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()
	resp, err := s.accept(callCtx, generationID, selected)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateGenerated
		return nil, err
	}

	s.state = StateDone
	s.items = nil
	return resp, nil
}

// generationErrorMessage derives the user-facing message from the failure
// kind: a timeout and a connectivity problem read differently from a
// validation or server-side error.
func generationErrorMessage(err error, callCtx context.Context) string {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return "Request timed out. Please try again."
	}

	var appErr *model.AppError
	if errors.As(err, &appErr) {
		switch appErr.Detail.Code {
		case "VALIDATION_ERROR":
			return "Invalid input. Please check your text and try again."
		case "UNAUTHORIZED":
			return "Session expired. Please log in again."
		}
		return "An unexpected error occurred. Please try again."
	}

	if errors.Is(err, model.ErrInvalidInput) {
		return "Invalid input. Please check your text and try again."
	}

	return "Unable to generate flashcards. Please check your connection and try again."
}
