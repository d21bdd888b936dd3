package admin

import (
	"context"
	"time"

	"havenagent/internal/domain"
	"havenagent/internal/modules/onboarding"
)

type PendingLister interface {
	ListPending(ctx context.Context, limit, offset int) ([]domain.OnboardingRecord, int64, error)
}

type UserReader interface {
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
}

type ProfileReader interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
}

// Approver is the onboarding engine; approval itself stays inside the
// engine since it is the only writer of account activation.
type Approver interface {
	ApproveVerification(ctx context.Context, userID int64) (*onboarding.StatusSnapshot, error)
}

type Service struct {
	records  PendingLister
	users    UserReader
	profiles ProfileReader
	engine   Approver
}

func NewService(records PendingLister, users UserReader, profiles ProfileReader, engine Approver) *Service {
	return &Service{
		records:  records,
		users:    users,
		profiles: profiles,
		engine:   engine,
	}
}

// ListPendingVerifications returns agents waiting for review, enriched
// with their email and name. Enrichment lookups degrade to empty
// strings rather than failing the listing.
func (s *Service) ListPendingVerifications(ctx context.Context, page, limit int) ([]PendingVerificationDTO, int, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	records, total, err := s.records.ListPending(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]PendingVerificationDTO, 0, len(records))
	for _, r := range records {
		dto := PendingVerificationDTO{
			UserID:      r.UserID,
			SubmittedAt: r.UpdatedAt.Format(time.RFC3339),
		}
		if user, uerr := s.users.GetByID(ctx, r.UserID); uerr == nil {
			dto.Email = user.Email
		}
		if profile, perr := s.profiles.GetByUserID(ctx, r.UserID); perr == nil {
			dto.FullName = profile.FullName
		}
		items = append(items, dto)
	}

	return items, int(total), nil
}

func (s *Service) ApproveVerification(ctx context.Context, userID int64) (*onboarding.StatusSnapshot, error) {
	return s.engine.ApproveVerification(ctx, userID)
}
