package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"vibeform/internal/cache"
	"vibeform/internal/model"
	"vibeform/internal/repository/repotest"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	snaps  []*model.FillSnapshot
	closed []string
}

func (b *recordingBroadcaster) BroadcastSnapshot(_ string, snap *model.FillSnapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snaps = append(b.snaps, snap)
}

func (b *recordingBroadcaster) CloseSession(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = append(b.closed, sessionID)
}

func (b *recordingBroadcaster) closedIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.closed...)
}

func (b *recordingBroadcaster) phases() []model.FillPhase {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.FillPhase, 0, len(b.snaps))
	for _, s := range b.snaps {
		out = append(out, s.Phase)
	}
	return out
}

// testEnv wires services over in-memory repositories and a miniredis cache.
type testEnv struct {
	forms     *repotest.FormRepo
	responses *repotest.ResponseRepo
	redis     *miniredis.Miniredis

	sessions  cache.SessionCache
	summaries cache.SummaryCache

	formSvc     *FormService
	responseSvc *ResponseService
	summarySvc  *SummaryService
	fillSvc     *FillService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	env := &testEnv{
		forms:     repotest.NewFormRepo(),
		responses: &repotest.ResponseRepo{},
		redis:     mr,
		sessions:  cache.NewSessionCache(client, time.Hour),
		summaries: cache.NewSummaryCache(client, time.Minute),
	}
	env.formSvc = NewFormService(env.forms, env.responses, env.summaries)
	env.responseSvc = NewResponseService(env.formSvc, env.forms, env.responses)
	env.summarySvc = NewSummaryService(env.formSvc, env.responses, env.summaries)
	env.fillSvc = NewFillService(env.formSvc, env.sessions, env.responseSvc)
	return env
}

func sampleInput() *model.FormInput {
	return &model.FormInput{
		Title: "Team pulse",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeShort, Question: "How was your day?", Required: true},
			{ID: "q2", Type: model.QuestionTypeEmoji, Question: "Mood", Options: []string{"😃", "😐", "😢"}},
			{ID: "q3", Type: model.QuestionTypeMultiple, Question: "Lunch", Options: []string{"Pizza", "Salad"}},
		},
	}
}

func (env *testEnv) createForm(t *testing.T, owner string) *model.Form {
	t.Helper()
	form, err := env.formSvc.Create(context.Background(), owner, sampleInput())
	if err != nil {
		t.Fatalf("create form: %v", err)
	}
	return form
}
