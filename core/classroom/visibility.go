package classroom

// VisibleMaterials returns the classroom's materials the viewer may see,
// preserving stored order. The owning teacher sees everything. For anyone
// else only MESSAGE materials are audience-gated; every other type is visible
// to the full roster once published.
func VisibleMaterials(room Classroom, viewerID string) []Material {
	if viewerID == room.TeacherID {
		return room.Materials
	}
	visible := make([]Material, 0, len(room.Materials))
	for _, mat := range room.Materials {
		if mat.Type != MaterialMessage || mat.Audience.Allows(viewerID) {
			visible = append(visible, mat)
		}
	}
	return visible
}

// VisibleMessages returns the messages the viewer may see: all broadcasts
// plus their own private thread, never another party's private exchange.
func VisibleMessages(messages []Message, viewerID string) []Message {
	visible := make([]Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Broadcast() || msg.RecipientID.String == viewerID || msg.SenderID == viewerID {
			visible = append(visible, msg)
		}
	}
	return visible
}
