package service

import (
	"context"
	"crypto/sha512"
	"fmt"
	"testing"

	"fitmarket-be/internal/config"
	"fitmarket-be/internal/dto"
	"fitmarket-be/internal/entity"
	"fitmarket-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func midtransSignature(orderId, statusCode, grossAmount, serverKey string) string {
	return fmt.Sprintf("%x", sha512.Sum512([]byte(orderId+statusCode+grossAmount+serverKey)))
}

func TestHandlePaymentNotification_RejectsBadSignature(t *testing.T) {
	svc := NewSettlementService(nil, nil, nil, nil, nil, nil,
		config.MidtransConfig{ServerKey: "server-key"}, nopLogger{})

	req := &dto.MidtransWebhookRequest{
		OrderId:           "FIT-1756000000000",
		StatusCode:        "200",
		GrossAmount:       "900000.00",
		SignatureKey:      "forged",
		TransactionStatus: "settlement",
	}

	err := svc.HandlePaymentNotification(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestHandlePaymentNotification_IgnoresNonFinalStatus(t *testing.T) {
	// "pending" carries no settlement consequence, so a correctly signed
	// pending notification must be a no-op even with no backing stores wired.
	svc := NewSettlementService(nil, nil, nil, nil, nil, nil,
		config.MidtransConfig{ServerKey: "server-key"}, nopLogger{})

	req := &dto.MidtransWebhookRequest{
		OrderId:           "FIT-1756000000000",
		StatusCode:        "201",
		GrossAmount:       "900000.00",
		TransactionStatus: "pending",
	}
	req.SignatureKey = midtransSignature(req.OrderId, req.StatusCode, req.GrossAmount, "server-key")

	err := svc.HandlePaymentNotification(context.Background(), req)
	assert.NoError(t, err)
}

func TestHandlePaymentNotification_RejectsMalformedOrderId(t *testing.T) {
	svc := NewSettlementService(nil, nil, nil, nil, nil, nil,
		config.MidtransConfig{ServerKey: "server-key"}, nopLogger{})

	req := &dto.MidtransWebhookRequest{
		OrderId:           "FIT-not-a-code",
		StatusCode:        "200",
		GrossAmount:       "900000.00",
		TransactionStatus: "settlement",
	}
	req.SignatureKey = midtransSignature(req.OrderId, req.StatusCode, req.GrossAmount, "server-key")

	err := svc.HandlePaymentNotification(context.Background(), req)
	assert.Error(t, err)
}

func TestMarkSuccessIfPending_ReplayIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	factory := unitofwork.NewRepositoryFactory(db)
	ctx := context.Background()

	orderCode := int64(1756000000001)
	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.TransactionRepository().Create(ctx, &entity.Transaction{
		OrderId:   uuid.New(),
		OrderCode: orderCode,
		Kind:      entity.TransactionKindGymCourse,
		Status:    entity.TransactionStatusPending,
		Amount:    900_000,
	}))
	require.NoError(t, uow.Commit())

	repo := factory.NewUnitOfWork(ctx).TransactionRepository()

	// First delivery wins the pending -> success flip.
	won, err := repo.MarkSuccessIfPending(ctx, orderCode)
	require.NoError(t, err)
	assert.True(t, won)

	// A replayed webhook finds nothing pending and must not win again.
	won, err = repo.MarkSuccessIfPending(ctx, orderCode)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestParseOrderCode(t *testing.T) {
	code, err := parseOrderCode("FIT-1756000000000")
	require.NoError(t, err)
	assert.Equal(t, int64(1756000000000), code)

	_, err = parseOrderCode("OTHER-123x")
	assert.Error(t, err)
}
