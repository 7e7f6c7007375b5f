package emailsvc

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/mwalimu/darasa/core"
	"github.com/mwalimu/darasa/core/classroom"
)

// NewNotificationDigest renders freshly diffed notifications into one plain
// text email for the teacher.
func NewNotificationDigest(to mail.Address, notifs []classroom.Notification) *core.EmailMessage {
	lines := make([]string, 0, len(notifs)+1)
	for _, n := range notifs {
		switch n.Kind {
		case classroom.NotificationMessage:
			lines = append(lines, fmt.Sprintf("- %s sent a message in %s", n.ActorName, n.ClassroomName))
		case classroom.NotificationAssignmentSubmitted:
			lines = append(lines, fmt.Sprintf("- %s submitted %q in %s", n.ActorName, n.MaterialTitle, n.ClassroomName))
		}
	}
	return &core.EmailMessage{
		To:      []mail.Address{to},
		Subject: fmt.Sprintf("%d new classroom notifications", len(notifs)),
		BodyStr: strings.Join(lines, "\n"),
	}
}

// DigestNotifier returns a session callback that emails a digest of every
// batch of fresh notifications. Plug it in with classroom.WithNotify.
func DigestNotifier(svc core.EmailService, to mail.Address) func([]classroom.Notification) {
	return func(notifs []classroom.Notification) {
		svc.SendMessages(NewNotificationDigest(to, notifs))
	}
}
