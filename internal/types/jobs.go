package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Question types supported by the job application form.
const (
	QuestionShortAnswer    = "short_answer"
	QuestionMultipleChoice = "multiple_choice"
)

// JobQuestion is one application question attached to a job posting.
type JobQuestion struct {
	Question         string   `json:"question" validate:"required"`
	Type             string   `json:"type" validate:"required,oneof=short_answer multiple_choice"`
	ExpectedResponse string   `json:"expected_response"`
	Options          []string `json:"options,omitempty" validate:"required_if=Type multiple_choice"`
}

// JobQuestionnaire is the structured block stored next to the description.
type JobQuestionnaire struct {
	Title       string        `json:"title,omitempty"`
	Description string        `json:"description,omitempty"`
	Questions   []JobQuestion `json:"questions"`
}

// JobPosting is a job record as returned by GET /jobs/get.
type JobPosting struct {
	ID          string           `json:"id"`
	Description string           `json:"description"`
	Questions   JobQuestionnaire `json:"questions"`
	CreatedAt   *time.Time       `json:"created_at,omitempty"`
}

// Title returns the first line of the stored description, or "Job <n>"
// where n is position+1 when the description is empty.
func (j JobPosting) Title(position int) string {
	lines := strings.Split(j.Description, "\n")
	if lines[0] != "" {
		return lines[0]
	}
	return fmt.Sprintf("Job %d", position+1)
}

// Body returns the description without its title line and separator.
func (j JobPosting) Body() string {
	lines := strings.Split(j.Description, "\n")
	if len(lines) > 2 {
		if body := strings.Join(lines[2:], "\n"); body != "" {
			return body
		}
	}
	return j.Description
}

// Draft converts a stored posting back into an editable form.
func (j JobPosting) Draft(position int) JobDraft {
	return JobDraft{
		Title:       j.Title(position),
		Description: j.Body(),
		Questions:   append([]JobQuestion(nil), j.Questions.Questions...),
	}
}

// JobDraft is the editable form of a job posting.
type JobDraft struct {
	Title       string        `json:"title" validate:"required"`
	Description string        `json:"description" validate:"required"`
	Questions   []JobQuestion `json:"questions" validate:"required,min=1,dive"`
}

// DefaultJobQuestions are the questions every new posting starts with.
func DefaultJobQuestions() []JobQuestion {
	return []JobQuestion{
		{Question: "name", Type: QuestionShortAnswer, ExpectedResponse: "string_content"},
		{Question: "email", Type: QuestionShortAnswer, ExpectedResponse: "string_content"},
	}
}

// Validate checks the draft the way the create and edit forms do.
func (d *JobDraft) Validate() error {
	validate := validator.New()
	if err := validate.Struct(d); err != nil {
		return err
	}
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("title and description must not be blank")
	}
	for i, q := range d.Questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d must not be blank", i+1)
		}
	}
	return nil
}

// JobPayload is the wire body of POST /jobs/create and PUT /jobs/{id}.
type JobPayload struct {
	Description string           `json:"description"`
	Questions   JobQuestionnaire `json:"questions"`
}

// Payload builds the request body. Options are only sent for
// multiple-choice questions.
func (d JobDraft) Payload() JobPayload {
	questions := make([]JobQuestion, 0, len(d.Questions))
	for _, q := range d.Questions {
		if q.Type != QuestionMultipleChoice {
			q.Options = nil
		}
		questions = append(questions, q)
	}
	return JobPayload{
		Description: d.Title + "\n\n" + d.Description,
		Questions: JobQuestionnaire{
			Title:       d.Title,
			Description: d.Description,
			Questions:   questions,
		},
	}
}

// JobMutationResult is the body returned by job create/update/delete.
type JobMutationResult struct {
	Status string `json:"status"`
	JobID  string `json:"job_id,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Succeeded reports whether the server acknowledged the mutation.
func (r JobMutationResult) Succeeded() bool {
	return r.Status == "success"
}

// RatingDistribution counts candidates per rating for one job.
type RatingDistribution struct {
	JobID        string         `json:"job_id"`
	Distribution map[string]int `json:"rating_distribution"`
}

// Total returns the number of rated candidates.
func (r RatingDistribution) Total() int {
	total := 0
	for _, n := range r.Distribution {
		total += n
	}
	return total
}
