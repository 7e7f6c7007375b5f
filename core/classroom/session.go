package classroom

import (
	"context"
	"sync"

	"github.com/mwalimu/darasa/core"
)

type (
	// Viewer identifies the member a session belongs to.
	Viewer struct {
		ID   string
		Name string
	}

	// Session is one client context's view of the shared document: it holds
	// the last loaded snapshot, derives the viewer's filtered reads from it
	// and, for classrooms the viewer teaches, accumulates notifications by
	// diffing snapshots over time.
	//
	// A session is single-threaded and cooperative; the mutex only guards
	// its own state so Watch may run on a goroutine while the presentation
	// layer reads. Cross-context coordination happens solely through the
	// store and the change bus.
	Session struct {
		svc    *Service
		viewer Viewer
		sub    core.Subscription
		logger core.Logger
		notify func([]Notification) // optional, called with freshly diffed events

		mu       sync.Mutex
		rooms    []Classroom
		baseline []Classroom
		notifs   []Notification
	}

	// SessionOption customizes an opening session.
	SessionOption func(*Session)
)

// WithNotify registers a callback invoked after each refresh that produced
// new notifications, e.g. an email digest sender.
func WithNotify(fn func([]Notification)) SessionOption {
	return func(s *Session) { s.notify = fn }
}

// OpenSession loads the first snapshot, seeds the diff baseline silently
// (no backlog) and subscribes to the change bus. Callers own the session
// and must Close it on teardown.
func OpenSession(svc *Service, bus core.ChangeBus, viewer Viewer, logger core.Logger, opts ...SessionOption) (*Session, error) {
	rooms, err := svc.Classrooms()
	if err != nil {
		return nil, err
	}
	s := &Session{
		svc:      svc,
		viewer:   viewer,
		sub:      bus.Subscribe(),
		logger:   logger,
		rooms:    rooms,
		baseline: rooms,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Refresh resynchronizes with the store, diffs against the baseline and
// advances it. It returns the freshly synthesized notifications, which are
// also retained on the session.
func (s *Session) Refresh() ([]Notification, error) {
	rooms, err := s.svc.Classrooms()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	fresh := Diff(s.baseline, rooms, s.viewer.ID)
	s.rooms = rooms
	s.baseline = rooms
	s.notifs = append(s.notifs, fresh...)
	s.mu.Unlock()

	if s.notify != nil && len(fresh) > 0 {
		s.notify(fresh)
	}
	return fresh, nil
}

// Watch reacts to change-bus signals by refreshing, until ctx is done or the
// session is closed.
func (s *Session) Watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-s.sub.C():
			if !ok {
				return
			}
			if _, err := s.Refresh(); err != nil {
				s.logger.Error("refreshing classroom snapshot", err)
			}
		}
	}
}

// Close releases the bus subscription. Idempotent.
func (s *Session) Close() { s.sub.Close() }

// Classrooms returns the classrooms the viewer belongs to, from the last
// loaded snapshot.
func (s *Session) Classrooms() []Classroom {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := make([]Classroom, 0, len(s.rooms))
	for _, room := range s.rooms {
		if room.TeacherID == s.viewer.ID || room.HasStudent(s.viewer.ID) {
			rooms = append(rooms, room)
		}
	}
	return rooms
}

// VisibleMaterials returns the classroom's materials the viewer may see.
func (s *Session) VisibleMaterials(classroomID string) ([]Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := findClassroom(s.rooms, classroomID)
	if room == nil {
		return nil, ErrClassroomNotFound
	}
	return VisibleMaterials(*room, s.viewer.ID), nil
}

// VisibleMessages returns the classroom's messages the viewer may see.
func (s *Session) VisibleMessages(classroomID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	room := findClassroom(s.rooms, classroomID)
	if room == nil {
		return nil, ErrClassroomNotFound
	}
	return VisibleMessages(room.Messages, s.viewer.ID), nil
}

// Notifications returns the notifications accumulated so far, oldest first.
func (s *Session) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Notification, len(s.notifs))
	copy(out, s.notifs)
	return out
}

// MarkNotificationRead flags the notification as read and reports whether it
// was found.
func (s *Session) MarkNotificationRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.notifs {
		if s.notifs[i].ID == id {
			s.notifs[i].Read = true
			return true
		}
	}
	return false
}
