package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sokomart/backend/internal/auth"
	"github.com/sokomart/backend/pkg/models"
)

// Recorder writes the audit trail and user notifications. Every method is
// best-effort: failures are logged and never propagate into the operation
// being recorded.
type Recorder struct {
	activities    ActivityStore
	notifications NotificationStore
	users         UserStore
	log           *logrus.Logger
}

func NewRecorder(activities ActivityStore, notifications NotificationStore, users UserStore, log *logrus.Logger) *Recorder {
	return &Recorder{
		activities:    activities,
		notifications: notifications,
		users:         users,
		log:           log,
	}
}

func (r *Recorder) Activity(ctx context.Context, actor *auth.Principal, action string, subject bson.ObjectID, detail string) {
	activity := &models.Activity{
		Actor:     actor.ID,
		ActorName: actor.UserName,
		Action:    action,
		Subject:   subject,
		Detail:    detail,
	}
	if err := r.activities.Insert(ctx, activity); err != nil {
		r.log.WithError(err).WithField("action", action).Warn("failed to record activity")
	}
}

func (r *Recorder) Notify(ctx context.Context, user bson.ObjectID, message string) {
	notification := &models.Notification{User: user, Message: message}
	if err := r.notifications.Insert(ctx, notification); err != nil {
		r.log.WithError(err).WithField("user", user.Hex()).Warn("failed to deliver notification")
	}
}

// NotifyAdmins fans the message out to every admin account.
func (r *Recorder) NotifyAdmins(ctx context.Context, message string) {
	admins, err := r.users.ListAdmins(ctx)
	if err != nil {
		r.log.WithError(err).Warn("failed to list admins for notification")
		return
	}
	for _, admin := range admins {
		r.Notify(ctx, admin.ID, message)
	}
}
