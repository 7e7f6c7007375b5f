package classroom

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mwalimu/darasa/core"
)

var (
	// errors
	ErrClassroomNotFound  = errors.New("classroom not found")
	ErrMaterialNotFound   = errors.New("material not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrNotRosterMember    = errors.New("not a member of this classroom")
	ErrAlreadyJoined      = errors.New("already a member of this classroom")
	ErrAlreadySubmitted   = errors.New("a submission for this material already exists")
	ErrCodeExhausted      = errors.New("could not allocate a unique classroom code")
	ErrScoreOutOfRange    = errors.New("score must be between 0 and 100")
)

// classCodeAttempts bounds the retry loop when minting a classroom code.
const classCodeAttempts = 10

var nowFunc = time.Now // mockable

type (
	// Store is whole-document persistence of the classroom list. It has no
	// compare-and-swap: the granularity of consistency is "whole document,
	// last writer wins".
	Store interface {
		// Load returns the persisted classrooms, or an empty list when
		// nothing has been written yet or the document cannot be parsed.
		Load() ([]Classroom, error)
		// Save replaces the stored document.
		Save(rooms []Classroom) error
	}

	// Service applies classroom mutations. Every mutation runs
	// load -> mutate copy -> save as one synchronous unit.
	Service struct {
		store  Store
		bus    core.ChangeBus
		grader core.GradingService
		logger core.Logger
	}
)

func NewService(store Store, bus core.ChangeBus, grader core.GradingService, logger core.Logger) *Service {
	return &Service{store: store, bus: bus, grader: grader, logger: logger}
}

// Classrooms returns the current persisted snapshot.
func (svc *Service) Classrooms() ([]Classroom, error) {
	return svc.store.Load()
}

// save persists the new document and signals every active session.
// Two contexts saving concurrently race; the later writer silently discards
// the earlier delta. Accepted limitation of the whole-document store.
func (svc *Service) save(rooms []Classroom) error {
	if err := svc.store.Save(rooms); err != nil {
		return err
	}
	svc.bus.Publish()
	return nil
}

// CreateClassroom mints a classroom with a fresh, globally unique join code.
func (svc *Service) CreateClassroom(nc NewClassroom) (Classroom, error) {
	if err := nc.Validate(); err != nil {
		return Classroom{}, err
	}

	rooms, err := svc.store.Load()
	if err != nil {
		return Classroom{}, err
	}

	var code string
	for i := 0; i < classCodeAttempts; i++ {
		candidate := core.NewClassCode()
		if findClassroom(rooms, candidate) == nil {
			code = candidate
			break
		}
	}
	if code == "" {
		return Classroom{}, ErrCodeExhausted
	}

	room := Classroom{
		ID:          code,
		Name:        nc.Name,
		Subject:     nc.Subject,
		Grade:       nc.Grade,
		TeacherID:   nc.TeacherID,
		TeacherName: nc.TeacherName,
		Roster:      []Student{},
		Materials:   []Material{},
		Messages:    []Message{},
		CreatedAt:   nowFunc().UTC(),
	}
	rooms = append(rooms, room)
	if err := svc.save(rooms); err != nil {
		return Classroom{}, err
	}
	return room, nil
}

// JoinClassroom adds a student to the roster of the classroom with the given
// code. Roster ids stay unique and disjoint from the teacher's.
func (svc *Service) JoinClassroom(code string, student Student) (Classroom, error) {
	rooms, err := svc.store.Load()
	if err != nil {
		return Classroom{}, err
	}
	// codes are stored upper-case
	room := findClassroom(rooms, strings.ToUpper(core.CleanString(code)))
	if room == nil {
		return Classroom{}, ErrClassroomNotFound
	}
	if student.ID == room.TeacherID || room.HasStudent(student.ID) {
		return Classroom{}, ErrAlreadyJoined
	}

	room.Roster = append(room.Roster, student)
	if err := svc.save(rooms); err != nil {
		return Classroom{}, err
	}
	return *room, nil
}

// PublishMaterial validates and prepends a material to the classroom.
// Nothing is written when validation fails.
func (svc *Service) PublishMaterial(classroomID string, nm NewMaterial) (Material, error) {
	if err := nm.Validate(); err != nil {
		return Material{}, err
	}

	rooms, err := svc.store.Load()
	if err != nil {
		return Material{}, err
	}
	room := findClassroom(rooms, classroomID)
	if room == nil {
		return Material{}, ErrClassroomNotFound
	}

	mat := Material{
		ID:          core.NewID(),
		Type:        nm.Type,
		Title:       nm.Title,
		Content:     nm.Content,
		Questions:   nm.Questions,
		DueDate:     nm.DueDate,
		CreatedAt:   nowFunc().UTC(),
		IsPublished: true,
		Attachments: nm.Attachments,
		Audience:    nm.Audience,
		AutoGrade:   nm.Type == MaterialTest && nm.AutoGrade,
		Submissions: []Submission{},
	}
	// most-recent-first
	room.Materials = append([]Material{mat}, room.Materials...)
	if err := svc.save(rooms); err != nil {
		return Material{}, err
	}
	return mat, nil
}

// SendMessage appends a message to the classroom thread. An absent recipient
// means broadcast.
func (svc *Service) SendMessage(classroomID string, nm NewMessage) (Message, error) {
	if err := nm.Validate(); err != nil {
		return Message{}, err
	}

	rooms, err := svc.store.Load()
	if err != nil {
		return Message{}, err
	}
	room := findClassroom(rooms, classroomID)
	if room == nil {
		return Message{}, ErrClassroomNotFound
	}
	if nm.SenderID != room.TeacherID && !room.HasStudent(nm.SenderID) {
		return Message{}, ErrNotRosterMember
	}

	msg := Message{
		ID:          core.NewID(),
		SenderID:    nm.SenderID,
		SenderName:  nm.SenderName,
		RecipientID: nm.RecipientID,
		Body:        nm.Body,
		SentAt:      nowFunc().UTC(),
		Attachment:  nm.Attachment,
	}
	room.Messages = append(room.Messages, msg)
	if err := svc.save(rooms); err != nil {
		return Message{}, err
	}
	return msg, nil
}

// Submit records a student's work on a material, auto-grading it when the
// material is an auto-graded test. A second submission by the same student
// is rejected.
func (svc *Service) Submit(ctx context.Context, classroomID, materialID string, ns NewSubmission) (Submission, error) {
	if err := ns.Validate(); err != nil {
		return Submission{}, err
	}

	rooms, err := svc.store.Load()
	if err != nil {
		return Submission{}, err
	}
	room := findClassroom(rooms, classroomID)
	if room == nil {
		return Submission{}, ErrClassroomNotFound
	}
	if !room.HasStudent(ns.StudentID) {
		return Submission{}, ErrNotRosterMember
	}
	mat := room.material(materialID)
	if mat == nil {
		return Submission{}, ErrMaterialNotFound
	}
	if mat.SubmissionBy(ns.StudentID) != nil {
		return Submission{}, ErrAlreadySubmitted
	}

	sub := Submission{
		StudentID:   ns.StudentID,
		StudentName: ns.StudentName,
		SubmittedAt: nowFunc().UTC(),
		Answers:     ns.Answers,
	}
	svc.autoGrade(ctx, *mat, &sub)

	mat.Submissions = append(mat.Submissions, sub)
	if err := svc.save(rooms); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

// RecordManualGrade sets the teacher's grade on a submission; it permanently
// supersedes any auto-grade for display. An override, not a blend.
func (svc *Service) RecordManualGrade(classroomID, materialID, studentID string, score int) (Submission, error) {
	if score < 0 || score > 100 {
		return Submission{}, core.NewValidationError(ErrScoreOutOfRange,
			core.FieldError{Field: "score", Error: ErrScoreOutOfRange.Error()})
	}

	rooms, err := svc.store.Load()
	if err != nil {
		return Submission{}, err
	}
	room := findClassroom(rooms, classroomID)
	if room == nil {
		return Submission{}, ErrClassroomNotFound
	}
	mat := room.material(materialID)
	if mat == nil {
		return Submission{}, ErrMaterialNotFound
	}
	sub := mat.SubmissionBy(studentID)
	if sub == nil {
		return Submission{}, ErrSubmissionNotFound
	}

	sub.TeacherGrade = null.IntFrom(score)
	if err := svc.save(rooms); err != nil {
		return Submission{}, err
	}
	return *sub, nil
}

// AuthorQuestions drafts test questions through the content collaborator.
func (svc *Service) AuthorQuestions(ctx context.Context, topic string, count int) (Questions, error) {
	drafts, err := svc.grader.GenerateQuestions(ctx, topic, count)
	if err != nil {
		return nil, err
	}
	return QuestionsFromDrafts(drafts), nil
}

// AuthorSummary drafts summary material content through the content collaborator.
func (svc *Service) AuthorSummary(ctx context.Context, topic, source string) (string, error) {
	return svc.grader.GenerateSummary(ctx, topic, source)
}

func findClassroom(rooms []Classroom, id string) *Classroom {
	for i := range rooms {
		if rooms[i].ID == id {
			return &rooms[i]
		}
	}
	return nil
}
