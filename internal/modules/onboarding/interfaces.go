package onboarding

import (
	"context"

	"havenagent/internal/domain"
)

// OnboardingRepository gives upsert-by-user_id access to the record row.
type OnboardingRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.OnboardingRecord, error)
	UpsertEligibility(ctx context.Context, userID int64, column string, value bool) error
	SetVerificationStatus(ctx context.Context, userID int64, status domain.VerificationStatus) error
	Approve(ctx context.Context, userID int64) error
}

// DocumentRepository stores one row per (user_id, doc_type).
type DocumentRepository interface {
	Upsert(ctx context.Context, d *domain.Document) error
	ListByUserID(ctx context.Context, userID int64) ([]domain.Document, error)
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error)
	UpsertFields(ctx context.Context, userID int64, fields map[string]any) error
}

// IdentityProvider is the authority for the user's email. Implemented
// by the auth service; an email change goes through it and stays
// pending until the owner confirms it out of band.
type IdentityProvider interface {
	GetByID(ctx context.Context, userID int64) (*domain.User, error)
	ChangeEmail(ctx context.Context, userID int64, newEmail string) error
}

// NotificationSender pushes status changes to a connected client so it
// can stop polling. Optional; nil disables push.
type NotificationSender interface {
	NotifyVerificationApproved(ctx context.Context, userID int64) error
}
