package service

import (
	"context"
	"errors"

	"selstudy/internal/model"
	"selstudy/internal/repository"
)

// NotificationService manages teacher notifications. Titles for every
// language live on one document, so read-state is consistent across language
// views without any cross-collection cascade.
type NotificationService struct {
	notificationRepo repository.NotificationRepo
	broadcaster      Broadcaster
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepo) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// SetBroadcaster sets the broadcaster for live dashboard push
func (s *NotificationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create stores a notification and pushes it to the teacher's dashboard
func (s *NotificationService) Create(ctx context.Context, teacherID, notifType, titleEn, titleHe string) (*model.Notification, error) {
	if teacherID == "" || (titleEn == "" && titleHe == "") {
		return nil, ErrMissingFields
	}

	n := &model.Notification{
		TeacherID: teacherID,
		Type:      notifType,
		Titles: map[string]string{
			model.LangEN: titleEn,
			model.LangHE: titleHe,
		},
	}
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.NotifyTeacher(teacherID, "notification_created", n)
	}
	return n, nil
}

// List returns a teacher's notifications localized to lang, falling back to
// the other language for titles that are missing in lang
func (s *NotificationService) List(ctx context.Context, teacherID, lang string) ([]*model.NotificationView, error) {
	if teacherID == "" {
		return nil, ErrMissingFields
	}
	if lang != model.LangEN && lang != model.LangHE {
		lang = model.LangEN
	}

	notifications, err := s.notificationRepo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	views := make([]*model.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, &model.NotificationView{
			ID:        n.ID,
			TeacherID: n.TeacherID,
			Type:      n.Type,
			Title:     n.TitleFor(lang),
			Lang:      lang,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return views, nil
}

// MarkRead marks one notification read across every language view
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.notificationRepo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	return nil
}

// MarkAllRead marks all of a teacher's notifications read
func (s *NotificationService) MarkAllRead(ctx context.Context, teacherID string) (int64, error) {
	if teacherID == "" {
		return 0, ErrMissingFields
	}
	return s.notificationRepo.MarkAllRead(ctx, teacherID)
}
