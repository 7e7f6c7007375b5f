package classroom

import (
	"time"

	"github.com/mwalimu/darasa/core"
)

// Notification kinds
const (
	NotificationMessage             = NotificationKind("MESSAGE")
	NotificationAssignmentSubmitted = NotificationKind("ASSIGNMENT_SUBMITTED")
)

type (
	NotificationKind string

	// Notification is one user-facing event derived from a change to the
	// shared document.
	Notification struct {
		ID            string           `json:"id"`
		Kind          NotificationKind `json:"kind"`
		ClassroomID   string           `json:"classroom_id"`
		ClassroomName string           `json:"classroom_name"`
		ActorName     string           `json:"actor_name"`               // message sender or submitting student
		MaterialTitle string           `json:"material_title,omitempty"` // submissions only
		CreatedAt     time.Time        `json:"created_at"`               // UTC
		Read          bool             `json:"read"`
	}
)

// Diff compares two store snapshots and synthesizes the teacher's
// notifications for what changed in between. It is stateless and pure over
// its inputs: it keeps no dedup memory, so the caller must treat `current`
// as the new `previous` exactly once after each run.
//
// Classrooms absent from `previous` yield no backlog, and materials created
// between snapshots are not a notification source.
func Diff(previous, current []Classroom, teacherID string) []Notification {
	prevByID := make(map[string]Classroom, len(previous))
	for _, room := range previous {
		prevByID[room.ID] = room
	}

	now := nowFunc().UTC()
	var events []Notification
	for _, room := range current {
		if room.TeacherID != teacherID {
			continue
		}
		prev, seen := prevByID[room.ID]
		if !seen {
			continue // first observation
		}

		// newly appended messages from anyone but the teacher
		if len(room.Messages) > len(prev.Messages) {
			for _, msg := range room.Messages[len(prev.Messages):] {
				if msg.SenderID == teacherID {
					continue
				}
				events = append(events, Notification{
					ID:            core.NewID(),
					Kind:          NotificationMessage,
					ClassroomID:   room.ID,
					ClassroomName: room.Name,
					ActorName:     msg.SenderName,
					CreatedAt:     now,
				})
			}
		}

		// newly appended submissions on materials present in both snapshots
		for _, mat := range room.Materials {
			prevMat := prev.material(mat.ID)
			if prevMat == nil {
				continue
			}
			if len(mat.Submissions) > len(prevMat.Submissions) {
				for _, sub := range mat.Submissions[len(prevMat.Submissions):] {
					events = append(events, Notification{
						ID:            core.NewID(),
						Kind:          NotificationAssignmentSubmitted,
						ClassroomID:   room.ID,
						ClassroomName: room.Name,
						ActorName:     sub.StudentName,
						MaterialTitle: mat.Title,
						CreatedAt:     now,
					})
				}
			}
		}
	}
	return events
}
