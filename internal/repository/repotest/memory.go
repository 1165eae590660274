// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"vibeform/internal/model"
	"vibeform/internal/repository"
)

var (
	_ repository.FormRepo     = (*FormRepo)(nil)
	_ repository.ResponseRepo = (*ResponseRepo)(nil)
	_ repository.UserRepo     = (*UserRepo)(nil)
)

// FormRepo keeps forms in a map. Ids are form-1, form-2, ...
type FormRepo struct {
	mu    sync.Mutex
	seq   int
	forms map[string]*model.Form
}

func NewFormRepo() *FormRepo {
	return &FormRepo{forms: make(map[string]*model.Form)}
}

func (r *FormRepo) Create(_ context.Context, form *model.Form) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	form.ID = fmt.Sprintf("form-%d", r.seq)
	form.CreatedAt = time.Now()
	form.UpdatedAt = form.CreatedAt
	if form.Responses == nil {
		form.Responses = []string{}
	}
	cp := *form
	r.forms[form.ID] = &cp
	return form.ID, nil
}

func (r *FormRepo) GetByID(_ context.Context, id string) (*model.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	cp.Responses = append([]string(nil), f.Responses...)
	return &cp, nil
}

func (r *FormRepo) GetByOwnerID(_ context.Context, ownerID string) ([]*model.Form, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Form
	for _, f := range r.forms {
		if f.OwnerID == ownerID {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *FormRepo) Update(_ context.Context, form *model.Form) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[form.ID]
	if !ok {
		return nil
	}
	f.Title = form.Title
	f.Description = form.Description
	f.Questions = form.Questions
	f.UpdatedAt = time.Now()
	return nil
}

func (r *FormRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, id)
	return nil
}

func (r *FormRepo) AddResponse(_ context.Context, formID, responseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.forms[formID]; ok {
		f.Responses = append(f.Responses, responseID)
	}
	return nil
}

func (r *FormRepo) RemoveResponse(_ context.Context, formID, responseID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[formID]
	if !ok {
		return nil
	}
	kept := f.Responses[:0]
	for _, id := range f.Responses {
		if id != responseID {
			kept = append(kept, id)
		}
	}
	f.Responses = kept
	return nil
}

// ResponseRepo keeps responses newest first.
type ResponseRepo struct {
	mu        sync.Mutex
	seq       int
	responses []*model.Response // newest first
}

func (r *ResponseRepo) Create(_ context.Context, response *model.Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	response.ID = fmt.Sprintf("resp-%d", r.seq)
	if response.SubmittedAt.IsZero() {
		response.SubmittedAt = time.Now()
	}
	r.responses = append([]*model.Response{response}, r.responses...)
	return nil
}

func (r *ResponseRepo) GetByID(_ context.Context, id string) (*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resp := range r.responses {
		if resp.ID == id {
			return resp, nil
		}
	}
	return nil, nil
}

func (r *ResponseRepo) GetByFormID(_ context.Context, formID string) ([]*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Response{}
	for _, resp := range r.responses {
		if resp.FormID == formID {
			out = append(out, resp)
		}
	}
	return out, nil
}

func (r *ResponseRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, resp := range r.responses {
		if resp.ID == id {
			r.responses = append(r.responses[:i], r.responses[i+1:]...)
			break
		}
	}
	return nil
}

func (r *ResponseRepo) DeleteByFormID(_ context.Context, formID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.responses[:0]
	for _, resp := range r.responses {
		if resp.FormID == formID {
			n++
			continue
		}
		kept = append(kept, resp)
	}
	r.responses = kept
	return n, nil
}

// UserRepo keeps users keyed by email.
type UserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func (r *UserRepo) EnsureIndexes(context.Context) error { return nil }

func (r *UserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.users == nil {
		r.users = make(map[string]*model.User)
	}
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrDuplicate
	}
	user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	r.users[user.Email] = user
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[email], nil
}
