package contract

import (
	"context"

	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/specification"

	"github.com/google/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	Update(ctx context.Context, booking *entity.Booking) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Booking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Booking, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountCompletedSessions counts sessions that consume the entitlement for
	// early-release purposes: finished bookings plus cancellations that did not
	// refund the session.
	CountCompletedSessions(ctx context.Context, purchasedId uuid.UUID) (int, error)
}
