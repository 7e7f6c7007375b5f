package classroom

import (
	"testing"

	"github.com/volatiletech/null/v8"
)

func TestVisibleMaterials(t *testing.T) {
	room := Classroom{
		ID:        "ABC123",
		Name:      "Physics",
		TeacherID: "t1",
		Roster:    []Student{{ID: "s1", Name: "Asha"}, {ID: "s2", Name: "Ben"}},
		Materials: []Material{
			{ID: "m1", Type: MaterialSummary, Title: "Waves"},
			{ID: "m2", Type: MaterialMessage, Title: "Note for Asha", Audience: Visibility{"s1"}},
			{ID: "m3", Type: MaterialMessage, Title: "Note for all"},
			{ID: "m4", Type: MaterialTest, Title: "Quiz", Audience: Visibility{"s1"}}, // only MESSAGE is gated
		},
	}

	tests := []struct {
		name     string
		viewerID string
		wantIDs  []string
	}{
		{name: "owning teacher sees everything", viewerID: "t1", wantIDs: []string{"m1", "m2", "m3", "m4"}},
		{name: "targeted student sees the targeted note", viewerID: "s1", wantIDs: []string{"m1", "m2", "m3", "m4"}},
		{name: "other student does not see the targeted note", viewerID: "s2", wantIDs: []string{"m1", "m3", "m4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleMaterials(room, tt.viewerID)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("VisibleMaterials() returned %d materials, want %d", len(got), len(tt.wantIDs))
			}
			for i, mat := range got {
				if mat.ID != tt.wantIDs[i] {
					t.Errorf("VisibleMaterials()[%d] = %s, want %s", i, mat.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestVisibleMessages(t *testing.T) {
	messages := []Message{
		{ID: "1", SenderID: "A"},
		{ID: "2", SenderID: "A", RecipientID: null.StringFrom("B")},
		{ID: "3", SenderID: "C", RecipientID: null.StringFrom("D")},
	}

	tests := []struct {
		viewerID string
		wantIDs  []string
	}{
		{viewerID: "B", wantIDs: []string{"1", "2"}},
		{viewerID: "A", wantIDs: []string{"1", "2"}},
		{viewerID: "C", wantIDs: []string{"1", "3"}},
		{viewerID: "D", wantIDs: []string{"1", "3"}},
		{viewerID: "E", wantIDs: []string{"1"}},
	}
	for _, tt := range tests {
		t.Run("viewer "+tt.viewerID, func(t *testing.T) {
			got := VisibleMessages(messages, tt.viewerID)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("VisibleMessages() returned %d messages, want %d", len(got), len(tt.wantIDs))
			}
			for i, msg := range got {
				if msg.ID != tt.wantIDs[i] {
					t.Errorf("VisibleMessages()[%d] = %s, want %s", i, msg.ID, tt.wantIDs[i])
				}
			}
		})
	}
}
