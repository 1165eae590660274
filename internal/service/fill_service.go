package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"vibeform/internal/cache"
	"vibeform/internal/fill"
	"vibeform/internal/log"
	"vibeform/internal/model"
)

// ResponseSubmitter stores a completed fill. *ResponseService implements it.
type ResponseSubmitter interface {
	Submit(ctx context.Context, formID string, payload model.ResponsePayload) (*model.Response, error)
}

// EventType names a respondent action delivered over the websocket
type EventType string

const (
	EventAnswer EventType = "answer"
	EventToggle EventType = "toggle"
	EventNext   EventType = "next"
	EventBack   EventType = "back"
	EventJump   EventType = "jump"
)

var ErrUnknownEvent = errors.New("unknown fill event")

// submitTimeout bounds a dispatched submission, which no longer follows the
// caller's context.
const submitTimeout = 30 * time.Second

// Event is one respondent action
type Event struct {
	Type       EventType     `json:"type"`
	QuestionID string        `json:"questionId,omitempty"`
	Answer     *model.Answer `json:"answer,omitempty"`
	Emoji      string        `json:"emoji,omitempty"`
}

// FillService drives fill sessions stored in Redis
type FillService struct {
	forms       *FormService
	sessions    cache.SessionCache
	submitter   ResponseSubmitter
	broadcaster Broadcaster
	locks       *sessionLocks
}

// NewFillService creates a new fill service
func NewFillService(forms *FormService, sessions cache.SessionCache, submitter ResponseSubmitter) *FillService {
	return &FillService{
		forms:     forms,
		sessions:  sessions,
		submitter: submitter,
		locks:     newSessionLocks(),
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *FillService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Start opens a new session on the first question of formID
func (s *FillService) Start(ctx context.Context, formID string) (*model.FillSnapshot, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, err
	}

	sess, err := fill.NewSession("f_"+uuid.NewString(), form)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	log.WithFields(log.Fields{"session": sess.ID, "form": form.ID}).Info("fill session started")
	return sess.Snapshot(), nil
}

// Snapshot returns the current view of a session
func (s *FillService) Snapshot(ctx context.Context, sessionID string) (*model.FillSnapshot, error) {
	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Snapshot(), nil
}

// SetAnswer replaces the answer to one question
func (s *FillService) SetAnswer(ctx context.Context, sessionID, questionID string, a model.Answer) (*model.FillSnapshot, error) {
	return s.update(ctx, sessionID, func(sess *fill.Session) error {
		return sess.SetAnswer(questionID, a)
	})
}

// ToggleEmoji flips one emoji in an emoji question's selection
func (s *FillService) ToggleEmoji(ctx context.Context, sessionID, questionID, emoji string) (*model.FillSnapshot, error) {
	return s.update(ctx, sessionID, func(sess *fill.Session) error {
		return sess.ToggleEmoji(questionID, emoji)
	})
}

// Next validates the current question and advances, submitting after the last one
func (s *FillService) Next(ctx context.Context, sessionID string) (*model.FillSnapshot, error) {
	return s.step(ctx, sessionID, (*fill.Session).Next)
}

// Back moves to the previous question
func (s *FillService) Back(ctx context.Context, sessionID string) (*model.FillSnapshot, error) {
	return s.step(ctx, sessionID, (*fill.Session).Back)
}

// JumpToFirstMissingRequired shows the first unanswered required question
func (s *FillService) JumpToFirstMissingRequired(ctx context.Context, sessionID string) (*model.FillSnapshot, error) {
	return s.step(ctx, sessionID, (*fill.Session).JumpToFirstMissingRequired)
}

// Apply dispatches a websocket event to the matching operation
func (s *FillService) Apply(ctx context.Context, sessionID string, ev Event) (*model.FillSnapshot, error) {
	switch ev.Type {
	case EventAnswer:
		a := model.Answer{}
		if ev.Answer != nil {
			a = *ev.Answer
		}
		return s.SetAnswer(ctx, sessionID, ev.QuestionID, a)
	case EventToggle:
		return s.ToggleEmoji(ctx, sessionID, ev.QuestionID, ev.Emoji)
	case EventNext:
		return s.Next(ctx, sessionID)
	case EventBack:
		return s.Back(ctx, sessionID)
	case EventJump:
		return s.JumpToFirstMissingRequired(ctx, sessionID)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
}

func (s *FillService) load(ctx context.Context, sessionID string) (*fill.Session, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *FillService) save(ctx context.Context, sess *fill.Session) (*model.FillSnapshot, error) {
	if err := s.sessions.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	snap := sess.Snapshot()
	if s.broadcaster != nil {
		s.broadcaster.BroadcastSnapshot(sess.ID, snap)
	}
	return snap, nil
}

func (s *FillService) update(ctx context.Context, sessionID string, fn func(*fill.Session) error) (*model.FillSnapshot, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, err
	}
	return s.save(ctx, sess)
}

// step runs a stepper transition. A submit command is dispatched without
// holding the session lock; the session sits in Pending meanwhile, so any
// concurrent event is refused with fill.ErrSubmissionPending.
func (s *FillService) step(ctx context.Context, sessionID string, fn func(*fill.Session) (fill.Command, error)) (*model.FillSnapshot, error) {
	unlock := s.locks.lock(sessionID)

	sess, err := s.load(ctx, sessionID)
	if err != nil {
		unlock()
		return nil, err
	}
	cmd, err := fn(sess)
	if err != nil {
		unlock()
		return nil, err
	}
	if cmd.Kind != fill.CommandSubmit {
		defer unlock()
		return s.save(ctx, sess)
	}

	// The dispatch outlives the caller: a dropped connection must not leave
	// the session stuck in Pending with the claim held.
	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), submitTimeout)
	defer cancel()

	if err := s.sessions.ClaimSubmission(dctx, sessionID); err != nil {
		unlock()
		if errors.Is(err, cache.ErrDispatched) {
			return nil, fill.ErrSubmissionPending
		}
		return nil, fmt.Errorf("failed to claim submission: %w", err)
	}
	if _, err := s.save(dctx, sess); err != nil {
		s.release(dctx, sessionID)
		unlock()
		return nil, err
	}
	unlock()

	resp, submitErr := s.submitter.Submit(dctx, sess.FormID, *cmd.Payload)

	unlock = s.locks.lock(sessionID)
	defer unlock()

	if submitErr != nil {
		fields := log.Fields{"session": sessionID, "form": sess.FormID}
		if errors.Is(submitErr, ErrInvalidResponse) || errors.Is(submitErr, ErrFormNotFound) {
			// the question snapshot no longer matches the stored form
			log.WithFields(fields).Warnf("closing stale fill session: %v", submitErr)
			s.discard(dctx, sessionID)
			return nil, fmt.Errorf("%w: %w", ErrFormChanged, submitErr)
		}
		log.WithFields(fields).Warnf("submission failed: %v", submitErr)
		_ = sess.Abort()
		s.release(dctx, sessionID)
		if _, err := s.save(dctx, sess); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSubmissionFailed, submitErr)
	}

	if err := sess.Confirm(resp.ID); err != nil {
		return nil, err
	}
	snap, err := s.save(dctx, sess)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"session": sessionID, "response": resp.ID, "vibePoints": snap.VibePoints}).Info("fill session submitted")
	if s.broadcaster != nil {
		s.broadcaster.CloseSession(sessionID)
	}
	return snap, nil
}

// discard drops a session that can no longer be submitted
func (s *FillService) discard(ctx context.Context, sessionID string) {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		log.Warnf("failed to delete fill session %s: %v", sessionID, err)
	}
	s.release(ctx, sessionID)
	if s.broadcaster != nil {
		s.broadcaster.CloseSession(sessionID)
	}
}

func (s *FillService) release(ctx context.Context, sessionID string) {
	if err := s.sessions.ReleaseSubmission(ctx, sessionID); err != nil {
		log.Warnf("failed to release submission claim for %s: %v", sessionID, err)
	}
}

// sessionLocks serialises events per session id within this process.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (l *sessionLocks) lock(id string) func() {
	l.mu.Lock()
	sl, ok := l.locks[id]
	if !ok {
		sl = &sessionLock{}
		l.locks[id] = sl
	}
	sl.refs++
	l.mu.Unlock()

	sl.mu.Lock()
	return func() {
		sl.mu.Unlock()
		l.mu.Lock()
		sl.refs--
		if sl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
