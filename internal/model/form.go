package model

import "time"

// DefaultDescription is used when a form is created without a description.
const DefaultDescription = "A VibeForm survey"

// Form is a published questionnaire owned by a user
type Form struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	OwnerID     string     `json:"ownerId" bson:"ownerId"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description" bson:"description"`
	Questions   []Question `json:"questions" bson:"questions"` // presentation order
	Responses   []string   `json:"responses" bson:"responses"` // response ids
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updatedAt"`
}

// QuestionByID returns the question with the given id.
func (f *Form) QuestionByID(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// FormInput is the author-supplied part of a form, used for create and update.
type FormInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// FormWithResponses is the dashboard view of a form.
type FormWithResponses struct {
	Form
	Responses []*Response `json:"responses"`
}
