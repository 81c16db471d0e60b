package repository

import (
	"context"
	"time"

	"github.com/01moynul/containerhub-golang/internal/models"
)

// CreateNotification stores an in-app notification for userID. link may
// be empty.
func (s *Store) CreateNotification(ctx context.Context, userID int64, message, link string) error {
	var linkArg *string
	if link != "" {
		linkArg = &link
	}

	_, err := s.insert(ctx, `
		INSERT INTO notifications (user_id, message, link, is_read, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, message, linkArg, false, time.Now().UTC())
	return err
}

// ListNotifications returns the user's latest notifications, unread first.
func (s *Store) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.sel(ctx, &notifications, `
		SELECT id, user_id, message, link, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY is_read ASC, created_at DESC, id DESC
		LIMIT 50`,
		userID)
	return notifications, err
}

// MarkNotificationRead returns ErrNotFound when the notification does not
// exist or belongs to someone else.
func (s *Store) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	return s.execOne(ctx, `UPDATE notifications SET is_read = ? WHERE id = ? AND user_id = ?`, true, id, userID)
}
