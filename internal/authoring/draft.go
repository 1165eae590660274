// Package authoring holds the question list an author edits before a form is
// published. A Draft is owned by a single author; it is not safe for
// concurrent use.
package authoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"vibeform/internal/model"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrTitleRequired   = errors.New("form title is required")
)

// Draft is an editable form. Choice questions may hold blank options while
// editing; Publish strips them.
type Draft struct {
	Questions []model.Question
}

// FromQuestions starts a draft from an existing list, e.g. a create request.
func FromQuestions(questions []model.Question) *Draft {
	d := &Draft{Questions: make([]model.Question, len(questions))}
	for i, q := range questions {
		q.Options = append([]string(nil), q.Options...)
		d.Questions[i] = q
	}
	return d
}

// Add appends an empty question of type t and returns its index.
func (d *Draft) Add(t model.QuestionType) int {
	q := model.Question{Type: t, Options: []string{}}
	if t.HasOptions() {
		q.Options = []string{""}
	}
	d.Questions = append(d.Questions, q)
	return len(d.Questions) - 1
}

func (d *Draft) at(i int) (*model.Question, error) {
	if i < 0 || i >= len(d.Questions) {
		return nil, fmt.Errorf("%w: question %d", ErrIndexOutOfRange, i)
	}
	return &d.Questions[i], nil
}

func (d *Draft) Delete(i int) error {
	if _, err := d.at(i); err != nil {
		return err
	}
	d.Questions = append(d.Questions[:i], d.Questions[i+1:]...)
	return nil
}

func (d *Draft) SetText(i int, text string) error {
	q, err := d.at(i)
	if err != nil {
		return err
	}
	q.Question = text
	return nil
}

func (d *Draft) SetRequired(i int, required bool) error {
	q, err := d.at(i)
	if err != nil {
		return err
	}
	q.Required = required
	return nil
}

func (d *Draft) AddOption(i int, opt string) error {
	q, err := d.at(i)
	if err != nil {
		return err
	}
	q.Options = append(q.Options, opt)
	return nil
}

func (d *Draft) SetOption(i, j int, opt string) error {
	q, err := d.at(i)
	if err != nil {
		return err
	}
	if j < 0 || j >= len(q.Options) {
		return fmt.Errorf("%w: option %d of question %d", ErrIndexOutOfRange, j, i)
	}
	q.Options[j] = opt
	return nil
}

func (d *Draft) DeleteOption(i, j int) error {
	q, err := d.at(i)
	if err != nil {
		return err
	}
	if j < 0 || j >= len(q.Options) {
		return fmt.Errorf("%w: option %d of question %d", ErrIndexOutOfRange, j, i)
	}
	q.Options = append(q.Options[:j], q.Options[j+1:]...)
	return nil
}

// Publish cleans the draft and returns the form it describes. Every malformed
// question is reported in a model.ShapeErrors.
func (d *Draft) Publish(title, description string) (*model.Form, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	description = strings.TrimSpace(description)
	if description == "" {
		description = model.DefaultDescription
	}

	questions := make([]model.Question, len(d.Questions))
	for i, q := range d.Questions {
		questions[i] = clean(q)
	}
	if err := model.ValidateQuestions(questions); err != nil {
		return nil, err
	}

	return &model.Form{
		Title:       title,
		Description: description,
		Questions:   questions,
		Responses:   []string{},
	}, nil
}

func clean(q model.Question) model.Question {
	q.Type = model.QuestionType(strings.ToLower(strings.TrimSpace(string(q.Type))))
	q.Question = strings.TrimSpace(q.Question)
	if q.ID == "" {
		q.ID = uuid.NewString()
	}

	options := []string{}
	if q.Type.HasOptions() {
		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			opt = strings.TrimSpace(opt)
			if opt == "" || seen[opt] {
				continue
			}
			seen[opt] = true
			options = append(options, opt)
		}
	}
	q.Options = options
	return q
}
