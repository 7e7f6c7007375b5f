package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/volatiletech/null/v8"

	"github.com/mwalimu/darasa/core/classroom"
)

type nopLogger struct{ warned bool }

func (l *nopLogger) Enable(bool)                  {}
func (l *nopLogger) Debug(string, ...interface{}) {}
func (l *nopLogger) Info(string, ...interface{})  {}
func (l *nopLogger) Warn(string, ...interface{})  { l.warned = true }
func (l *nopLogger) Error(string, ...interface{}) {}
func (l *nopLogger) Fatal(string, ...interface{}) {}

func testDocument() []classroom.Classroom {
	created := time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)
	return []classroom.Classroom{{
		ID:          "ABC123",
		Name:        "Physics",
		Subject:     "Science",
		Grade:       "8",
		TeacherID:   "t1",
		TeacherName: "Mrs Otieno",
		Roster:      []classroom.Student{{ID: "s1", Name: "Asha"}},
		Materials: []classroom.Material{{
			ID:          "m1",
			Type:        classroom.MaterialTest,
			Title:       "Quiz",
			DueDate:     null.TimeFrom(created.Add(72 * time.Hour)),
			CreatedAt:   created,
			IsPublished: true,
			AutoGrade:   true,
			Audience:    classroom.Visibility{"s1"},
			Questions: classroom.Questions{
				classroom.MCQQuestion{Prompt: "q1", Options: []string{"a", "b"}, CorrectIndex: 1},
				classroom.OpenQuestion{Prompt: "q2", ModelAnswer: "because"},
			},
			Submissions: []classroom.Submission{{
				StudentID:    "s1",
				StudentName:  "Asha",
				SubmittedAt:  created.Add(time.Hour),
				Answers:      []classroom.Answer{{Selected: null.IntFrom(1)}, {Text: "hm"}},
				AIScore:      null.IntFrom(90),
				TeacherGrade: null.IntFrom(95),
			}},
		}},
		Messages: []classroom.Message{{
			ID: "msg1", SenderID: "s1", SenderName: "Asha",
			RecipientID: null.StringFrom("t1"), Body: "done!", SentAt: created.Add(time.Hour),
		}},
		CreatedAt: created,
	}}
}

// save(load()) must reproduce a structurally identical document, keeping
// field optionality intact.
func TestStoreRoundTrip(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "darasa.json"), &nopLogger{})

	if err := store.Save(testDocument()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want, _ := json.MarshalIndent(testDocument(), "", "  ")
	got, _ := json.MarshalIndent(loaded, "", "  ")
	if string(want) != string(got) {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(want)),
			B:        difflib.SplitLines(string(got)),
			FromFile: "saved",
			ToFile:   "loaded",
			Context:  2,
		})
		t.Errorf("round-trip altered the document:\n%s", diff)
	}

	sub := loaded[0].Materials[0].Submissions[0]
	if got := sub.Grade(); got != (classroom.Grade{State: classroom.GradeManual, Score: 95}) {
		t.Errorf("Grade() after reload = %+v, want MANUAL 95", got)
	}
}

func TestStoreLoadDefaults(t *testing.T) {
	t.Run("missing file is an empty store", func(t *testing.T) {
		store := New(filepath.Join(t.TempDir(), "nope.json"), &nopLogger{})
		rooms, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(rooms) != 0 {
			t.Errorf("Load() = %d classrooms, want 0", len(rooms))
		}
	})

	t.Run("corrupt file recovers as empty and is left untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "darasa.json")
		corrupt := []byte("{oops")
		if err := os.WriteFile(path, corrupt, 0o644); err != nil {
			t.Fatal(err)
		}

		logger := &nopLogger{}
		store := New(path, logger)
		rooms, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v, corruption must never be fatal", err)
		}
		if len(rooms) != 0 {
			t.Errorf("Load() = %d classrooms, want 0", len(rooms))
		}
		if !logger.warned {
			t.Error("corruption recovery did not warn")
		}

		onDisk, _ := os.ReadFile(path)
		if string(onDisk) != string(corrupt) {
			t.Error("Load() rewrote the corrupt document")
		}
	})
}
