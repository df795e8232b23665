package contract

import (
	"context"

	"fitmarket-be/internal/model"

	"github.com/google/uuid"
)

// NotificationRepository works on the model directly; notifications are an
// outbound projection with no domain behavior of their own.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindAllByUser(ctx context.Context, userId uuid.UUID, limit, offset int) ([]*model.Notification, int64, error)
	CountUnread(ctx context.Context, userId uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, userId uuid.UUID) error
}
