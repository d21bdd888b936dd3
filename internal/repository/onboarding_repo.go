package repository

import (
	"context"
	"time"

	"havenagent/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OnboardingRepository struct {
	db *gorm.DB
}

func NewOnboardingRepository(db *gorm.DB) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

type OnboardingModel struct {
	UserID             int64     `gorm:"column:user_id;primaryKey"`
	IsLicensedAgent    bool      `gorm:"column:is_licensed_agent"`
	WorksUnderAgency   bool      `gorm:"column:works_under_agency"`
	AgreesToRules      bool      `gorm:"column:agrees_to_rules"`
	VerificationStatus *string   `gorm:"column:verification_status"`
	AccountActivated   bool      `gorm:"column:account_activated"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (OnboardingModel) TableName() string { return "onboarding" }

func toDomainOnboarding(m OnboardingModel) *domain.OnboardingRecord {
	status := domain.VerificationNone
	if m.VerificationStatus != nil && *m.VerificationStatus != "" {
		status = domain.VerificationStatus(*m.VerificationStatus)
	}

	return &domain.OnboardingRecord{
		UserID:             m.UserID,
		IsLicensedAgent:    m.IsLicensedAgent,
		WorksUnderAgency:   m.WorksUnderAgency,
		AgreesToRules:      m.AgreesToRules,
		VerificationStatus: status,
		AccountActivated:   m.AccountActivated,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// GetByUserID returns an empty record (status none) when no row exists
// yet: the record is created lazily on first write.
func (r *OnboardingRepository) GetByUserID(ctx context.Context, userID int64) (*domain.OnboardingRecord, error) {
	var m OnboardingModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m)
	if tx.Error != nil {
		if tx.Error == gorm.ErrRecordNotFound {
			return &domain.OnboardingRecord{
				UserID:             userID,
				VerificationStatus: domain.VerificationNone,
			}, nil
		}
		return nil, tx.Error
	}
	return toDomainOnboarding(m), nil
}

// EnsureExists creates the row if missing, touching nothing else.
func (r *OnboardingRepository) EnsureExists(ctx context.Context, userID int64) error {
	m := OnboardingModel{UserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&m).Error
}

// UpsertEligibility sets exactly one eligibility column. The caller has
// already validated the column name against the closed field set.
func (r *OnboardingRepository) UpsertEligibility(ctx context.Context, userID int64, column string, value bool) error {
	now := time.Now()
	m := OnboardingModel{UserID: userID, CreatedAt: now, UpdatedAt: now}
	switch column {
	case "is_licensed_agent":
		m.IsLicensedAgent = value
	case "works_under_agency":
		m.WorksUnderAgency = value
	case "agrees_to_rules":
		m.AgreesToRules = value
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{column: value, "updated_at": now}),
		}).
		Create(&m).Error
}

// SetVerificationStatus upserts the row with the given status only.
func (r *OnboardingRepository) SetVerificationStatus(ctx context.Context, userID int64, status domain.VerificationStatus) error {
	now := time.Now()
	s := string(status)
	m := OnboardingModel{UserID: userID, VerificationStatus: &s, CreatedAt: now, UpdatedAt: now}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{"verification_status": s, "updated_at": now}),
		}).
		Create(&m).Error
}

// ListPending returns records awaiting admin review, newest first.
func (r *OnboardingRepository) ListPending(ctx context.Context, limit, offset int) ([]domain.OnboardingRecord, int64, error) {
	q := r.db.WithContext(ctx).Model(&OnboardingModel{}).
		Where("verification_status = ?", string(domain.VerificationPending))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []OnboardingModel
	if err := q.
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	records := make([]domain.OnboardingRecord, 0, len(rows))
	for _, m := range rows {
		records = append(records, *toDomainOnboarding(m))
	}
	return records, total, nil
}

// Approve sets verification_status=approved and account_activated=true
// in one statement, so the two can never be observed out of sync.
func (r *OnboardingRepository) Approve(ctx context.Context, userID int64) error {
	now := time.Now()
	s := string(domain.VerificationApproved)
	m := OnboardingModel{
		UserID:             userID,
		VerificationStatus: &s,
		AccountActivated:   true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"verification_status": s,
				"account_activated":   true,
				"updated_at":          now,
			}),
		}).
		Create(&m).Error
}
