package classroom

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mwalimu/darasa/core"
)

// Material types
const (
	MaterialSummary      = MaterialType("SUMMARY")
	MaterialTest         = MaterialType("TEST")
	MaterialAssignment   = MaterialType("ASSIGNMENT")
	MaterialUpcomingTest = MaterialType("UPCOMING_TEST")
	MaterialMessage      = MaterialType("MESSAGE")
	MaterialUploadedFile = MaterialType("UPLOADED_FILE")
)

var allMaterialTypes = []MaterialType{
	MaterialSummary, MaterialTest, MaterialAssignment,
	MaterialUpcomingTest, MaterialMessage, MaterialUploadedFile,
}

type MaterialType string

func (t MaterialType) Valid() bool {
	for _, mt := range allMaterialTypes {
		if t == mt {
			return true
		}
	}
	return false
}

// RequiresDueDate reports whether publishing this type without a due date is rejected.
func (t MaterialType) RequiresDueDate() bool {
	switch t {
	case MaterialTest, MaterialAssignment, MaterialUpcomingTest:
		return true
	}
	return false
}

type Student struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Classroom binds one teacher, a student roster, materials and messages.
// Its ID doubles as the short, human-shareable join code.
type Classroom struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Subject     string     `json:"subject"`
	Grade       string     `json:"grade"`
	TeacherID   string     `json:"teacher_id"`
	TeacherName string     `json:"teacher_name"`
	Roster      []Student  `json:"roster"`
	Materials   []Material `json:"materials"`  // most-recent-first
	Messages    []Message  `json:"messages"`   // append-only
	CreatedAt   time.Time  `json:"created_at"` // UTC
}

func (c *Classroom) HasStudent(id string) bool {
	for _, s := range c.Roster {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (c *Classroom) material(id string) *Material {
	for i := range c.Materials {
		if c.Materials[i].ID == id {
			return &c.Materials[i]
		}
	}
	return nil
}

// Visibility is the audience of a material. The zero value means the entire
// roster; a non-empty list restricts visibility to the listed students (plus
// the owning teacher, always).
type Visibility []string

func (v Visibility) All() bool { return len(v) == 0 }

func (v Visibility) Allows(studentID string) bool {
	if v.All() {
		return true
	}
	for _, id := range v {
		if id == studentID {
			return true
		}
	}
	return false
}

// Attachment is an opaque blob attached to a material or message.
type Attachment struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type Material struct {
	ID          string       `json:"id"`
	Type        MaterialType `json:"type"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Questions   Questions    `json:"questions,omitempty"` // TEST only
	DueDate     null.Time    `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"` // UTC
	IsPublished bool         `json:"is_published"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Audience    Visibility   `json:"target_student_ids,omitempty"`
	AutoGrade   bool         `json:"auto_grade_by_ai"` // TEST only
	Submissions []Submission `json:"submissions"`
}

// SubmissionBy returns this material's submission by the given student, if any.
func (m *Material) SubmissionBy(studentID string) *Submission {
	for i := range m.Submissions {
		if m.Submissions[i].StudentID == studentID {
			return &m.Submissions[i]
		}
	}
	return nil
}

// Answer is one student answer, aligned by index to the material's questions.
type Answer struct {
	Selected null.Int `json:"selected,omitempty"` // MCQ: chosen option index
	Text     string   `json:"text,omitempty"`     // OPEN: free-form answer
}

type Submission struct {
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name"`
	SubmittedAt  time.Time `json:"submitted_at"` // UTC
	Answers      []Answer  `json:"answers"`
	AIScore      null.Int  `json:"ai_score,omitempty"`      // 0 - 100
	AIFeedback   string    `json:"ai_feedback,omitempty"`
	TeacherGrade null.Int  `json:"teacher_grade,omitempty"` // manual override, 0 - 100
}

// Grade states, in display precedence order.
const (
	GradeUngraded = GradeState("UNGRADED")
	GradeAuto     = GradeState("AUTO")
	GradeManual   = GradeState("MANUAL")
)

type (
	GradeState string

	// Grade is the resolved, displayable score of a submission.
	Grade struct {
		State GradeState
		Score int // meaningless when State == GradeUngraded
	}
)

// Grade resolves the displayed score: a manual teacher grade permanently
// supersedes any auto-grade; absent both, the submission is ungraded.
func (s Submission) Grade() Grade {
	if s.TeacherGrade.Valid {
		return Grade{State: GradeManual, Score: s.TeacherGrade.Int}
	}
	if s.AIScore.Valid {
		return Grade{State: GradeAuto, Score: s.AIScore.Int}
	}
	return Grade{State: GradeUngraded}
}

type Message struct {
	ID          string      `json:"id"`
	SenderID    string      `json:"sender_id"`
	SenderName  string      `json:"sender_name"`
	RecipientID null.String `json:"recipient_id,omitempty"` // absent: broadcast
	Body        string      `json:"body"`
	SentAt      time.Time   `json:"sent_at"` // UTC
	Attachment  *Attachment `json:"attachment,omitempty"`
}

// Broadcast reports whether the message is visible to the whole classroom.
func (m Message) Broadcast() bool { return !m.RecipientID.Valid }

// NewClassroom contains information needed to create a new Classroom.
type NewClassroom struct {
	Name        string `json:"name" validate:"required"`
	Subject     string `json:"subject" validate:"required"`
	Grade       string `json:"grade"`
	TeacherID   string `json:"teacher_id" validate:"required"`
	TeacherName string `json:"teacher_name" validate:"required"`
}

func (nc *NewClassroom) Validate() error {
	nc.Name = core.CleanString(nc.Name)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Grade = core.CleanString(nc.Grade)
	nc.TeacherName = core.CleanString(nc.TeacherName)

	if err := core.Validate.Struct(nc); err != nil {
		return core.TranslateValidationError(err)
	}
	return nil
}

// NewMaterial defines what a teacher provides to publish a material.
type NewMaterial struct {
	Type        MaterialType `json:"type"`
	Title       string       `json:"title" validate:"required"`
	Content     string       `json:"content"`
	Questions   Questions    `json:"questions,omitempty"`
	DueDate     null.Time    `json:"due_date,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Audience    Visibility   `json:"target_student_ids,omitempty"`
	AutoGrade   bool         `json:"auto_grade_by_ai"`
}

func (nm *NewMaterial) Validate() error {
	nm.Title = core.CleanString(nm.Title)

	if err := core.Validate.Struct(nm); err != nil {
		return core.TranslateValidationError(err)
	}
	return nil
}

// NewMessage defines what a classroom member provides to send a message.
type NewMessage struct {
	SenderID    string      `json:"sender_id" validate:"required"`
	SenderName  string      `json:"sender_name" validate:"required"`
	RecipientID null.String `json:"recipient_id,omitempty"`
	Body        string      `json:"body" validate:"required"`
	Attachment  *Attachment `json:"attachment,omitempty"`
}

func (nm *NewMessage) Validate() error {
	nm.Body = core.CleanString(nm.Body)

	if err := core.Validate.Struct(nm); err != nil {
		return core.TranslateValidationError(err)
	}
	return nil
}

// NewSubmission defines what a student provides to submit work on a material.
type NewSubmission struct {
	StudentID   string   `json:"student_id" validate:"required"`
	StudentName string   `json:"student_name" validate:"required"`
	Answers     []Answer `json:"answers"`
}

func (ns *NewSubmission) Validate() error {
	if err := core.Validate.Struct(ns); err != nil {
		return core.TranslateValidationError(err)
	}
	return nil
}
