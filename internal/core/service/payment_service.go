package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/streamvault/streaming-api/internal/core/domain"
	"github.com/streamvault/streaming-api/internal/core/ports"
)

// PaymentService implements member payment reads and admin payment CRUD.
type PaymentService struct {
	payments ports.PaymentRepository
	subs     ports.SubscriptionRepository
	log      zerolog.Logger
}

func NewPaymentService(payments ports.PaymentRepository, subs ports.SubscriptionRepository, log zerolog.Logger) *PaymentService {
	return &PaymentService{payments: payments, subs: subs, log: log}
}

func (s *PaymentService) ListMine(ctx context.Context, userID string, filter ports.ListPaymentsFilter) ([]*domain.Payment, int64, error) {
	filter.UserID = userID
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.payments.List(ctx, filter)
}

func (s *PaymentService) GetMine(ctx context.Context, userID, paymentID string) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.UserID != userID {
		return nil, domain.ErrPaymentNotFound
	}
	return payment, nil
}

func (s *PaymentService) ListForSubscription(ctx context.Context, identity *domain.Identity, subscriptionID string) ([]*domain.Payment, error) {
	sub, err := s.subs.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !identity.IsAdmin() && sub.UserID != identity.UserID {
		return nil, domain.ErrSubscriptionNotFound
	}

	items, _, err := s.payments.List(ctx, ports.ListPaymentsFilter{
		SubscriptionID: subscriptionID,
		Page:           1,
		Limit:          maxPageSize,
	})
	return items, err
}

func (s *PaymentService) List(ctx context.Context, filter ports.ListPaymentsFilter) ([]*domain.Payment, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.payments.List(ctx, filter)
}

func (s *PaymentService) Get(ctx context.Context, id string) (*domain.Payment, error) {
	return s.payments.FindByID(ctx, id)
}

func (s *PaymentService) Create(ctx context.Context, in ports.CreatePaymentInput) (*domain.Payment, error) {
	status := in.Status
	if status == "" {
		status = domain.PaymentPending
	}
	if !domain.ValidPaymentStatus(status) {
		return nil, domain.ErrInvalidPaymentStatus
	}

	sub, err := s.subs.FindByID(ctx, in.SubscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.UserID != in.UserID {
		return nil, domain.ErrSubscriptionNotFound
	}

	now := time.Now().UTC()
	payment := &domain.Payment{
		UserID:         in.UserID,
		SubscriptionID: in.SubscriptionID,
		Amount:         in.Amount,
		Currency:       in.Currency,
		Status:         status,
		Provider:       in.Provider,
		ExternalID:     in.ExternalID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if status == domain.PaymentPaid {
		payment.PaidAt = &now
	}

	created, err := s.payments.Create(ctx, payment)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("payment_id", created.ID).Str("subscription_id", in.SubscriptionID).Msg("payment recorded")
	return created, nil
}

func (s *PaymentService) Update(ctx context.Context, id string, in ports.UpdatePaymentInput) (*domain.Payment, error) {
	payment, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Amount != nil {
		payment.Amount = *in.Amount
	}
	if in.Currency != nil {
		payment.Currency = *in.Currency
	}
	if in.Provider != nil {
		payment.Provider = *in.Provider
	}
	if in.ExternalID != nil {
		payment.ExternalID = *in.ExternalID
	}
	now := time.Now().UTC()
	if in.Status != nil {
		if !domain.ValidPaymentStatus(*in.Status) {
			return nil, domain.ErrInvalidPaymentStatus
		}
		// paid_at tracks the PAID state: set on entry, cleared on exit.
		if *in.Status == domain.PaymentPaid && payment.Status != domain.PaymentPaid {
			payment.PaidAt = &now
		}
		if *in.Status != domain.PaymentPaid {
			payment.PaidAt = nil
		}
		payment.Status = *in.Status
	}
	payment.UpdatedAt = now

	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) Delete(ctx context.Context, id string) error {
	if _, err := s.payments.FindByID(ctx, id); err != nil {
		return err
	}
	return s.payments.Delete(ctx, id)
}
