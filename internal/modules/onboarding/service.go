package onboarding

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"havenagent/internal/domain"
	"havenagent/internal/storage"
)

const MaxDocumentSize = 10 << 20 // 10 MiB

// AllowedMimeTypes defines which document file types are accepted.
var AllowedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

// eligibilityColumns maps the client field names onto record columns.
// Anything outside this map is rejected before any write.
var eligibilityColumns = map[string]string{
	"isLicensedAgent":  "is_licensed_agent",
	"worksUnderAgency": "works_under_agency",
	"agreesToRules":    "agrees_to_rules",
}

// Service owns the canonical onboarding record for each agent and
// enforces screen sequencing, document completeness, and activation.
// Every mutating operation is a single upsert against the record
// store, so concurrent calls resolve last-write-wins per field.
type Service struct {
	records   OnboardingRepository
	documents DocumentRepository
	profiles  ProfileRepository
	identity  IdentityProvider
	store     storage.DocumentStore
	notifs    NotificationSender
	maxSize   int64
}

func NewService(
	records OnboardingRepository,
	documents DocumentRepository,
	profiles ProfileRepository,
	identity IdentityProvider,
	store storage.DocumentStore,
	notifs NotificationSender,
) *Service {
	return &Service{
		records:   records,
		documents: documents,
		profiles:  profiles,
		identity:  identity,
		store:     store,
		notifs:    notifs,
		maxSize:   MaxDocumentSize,
	}
}

// UpdateEligibility upserts one of the three eligibility booleans and
// leaves the others untouched.
func (s *Service) UpdateEligibility(ctx context.Context, userID int64, field string, value bool) (*StatusSnapshot, error) {
	column, ok := eligibilityColumns[field]
	if !ok {
		return nil, ErrInvalidField
	}

	if err := s.records.UpsertEligibility(ctx, userID, column, value); err != nil {
		return nil, err
	}

	return s.Status(ctx, userID)
}

// UpdateDetails applies whichever profile fields were supplied. An
// email change is delegated to the identity provider and stays pending
// until confirmed, so the snapshot keeps showing the current identity
// email in the meantime.
func (s *Service) UpdateDetails(ctx context.Context, userID int64, req UpdateDetailsRequest) (*StatusSnapshot, error) {
	fields := map[string]any{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if len(fields) > 0 {
		if err := s.profiles.UpsertFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		user, err := s.identity.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		newEmail := strings.ToLower(strings.TrimSpace(*req.Email))
		if newEmail != user.Email {
			if err := s.identity.ChangeEmail(ctx, userID, newEmail); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrEmailChangeRejected, err)
			}
		}
	}

	return s.Status(ctx, userID)
}

// UploadDocument stores the file first and only then upserts the
// document row; a failed row write removes the stored object again, so
// the two can never disagree. Re-upload always resets the status to
// uploaded, including away from rejected.
func (s *Service) UploadDocument(ctx context.Context, userID int64, docType domain.DocType, r io.Reader, size int64, mimeType, filename string) (*StatusSnapshot, error) {
	if !domain.IsValidDocType(docType) {
		return nil, ErrUnsupportedDocType
	}
	if size == 0 {
		return nil, ErrEmptyFile
	}
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}
	mimeType = strings.Split(strings.TrimSpace(mimeType), ";")[0]
	if !AllowedMimeTypes[mimeType] {
		return nil, ErrUnsupportedMimeType
	}

	path := storagePath(userID, docType, filename, time.Now())
	if err := s.store.Put(ctx, path, r, size); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	doc := &domain.Document{
		UserID:      userID,
		DocType:     docType,
		Status:      domain.DocStatusUploaded,
		StoragePath: path,
		MimeType:    mimeType,
		Size:        size,
		UploadedAt:  time.Now(),
	}
	if err := s.documents.Upsert(ctx, doc); err != nil {
		_ = s.store.Remove(ctx, path)
		return nil, err
	}

	return s.Status(ctx, userID)
}

// SubmitVerification checks document completeness and moves the record
// to pending. Resubmitting while pending is a no-op success; an
// already approved record is left alone so activation never regresses.
func (s *Service) SubmitVerification(ctx context.Context, userID int64) (*StatusSnapshot, error) {
	record, err := s.records.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if record.VerificationStatus == domain.VerificationApproved {
		return s.Status(ctx, userID)
	}

	docs, err := s.documents.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	present := map[domain.DocType]bool{}
	for _, d := range docs {
		if d.Status == domain.DocStatusUploaded || d.Status == domain.DocStatusVerified {
			present[d.DocType] = true
		}
	}

	var missing []domain.DocType
	for _, t := range domain.RequiredDocTypes {
		if !present[t] {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return nil, &IncompleteDocumentsError{Missing: missing}
	}

	if err := s.records.SetVerificationStatus(ctx, userID, domain.VerificationPending); err != nil {
		return nil, err
	}

	return s.Status(ctx, userID)
}

// ApproveVerification is the only path that activates an account. The
// repository applies approved + activated in one statement. Caller
// authorization (admin role) is enforced at the route. The identity
// lookup comes first so an unknown userId fails before any write.
func (s *Service) ApproveVerification(ctx context.Context, userID int64) (*StatusSnapshot, error) {
	if _, err := s.identity.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.records.Approve(ctx, userID); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyVerificationApproved(ctx, userID)
	}

	return s.Status(ctx, userID)
}

// Status computes the snapshot fresh: record plus live identity email.
// The profile lookup is display enrichment only and degrades to empty
// strings rather than failing the request.
func (s *Service) Status(ctx context.Context, userID int64) (*StatusSnapshot, error) {
	user, err := s.identity.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	record, err := s.records.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var fullName, phone string
	if profile, perr := s.profiles.GetByUserID(ctx, userID); perr == nil {
		fullName = profile.FullName
		phone = profile.Phone
	}

	docsMap := map[domain.DocType]bool{
		domain.DocEmiratesID:    false,
		domain.DocWorkVisa:      false,
		domain.DocBrokerLicense: false,
	}
	failed := []domain.DocType{}
	for _, d := range docs {
		if _, known := docsMap[d.DocType]; !known {
			continue
		}
		docsMap[d.DocType] = d.Status == domain.DocStatusUploaded || d.Status == domain.DocStatusVerified
		if d.Status == domain.DocStatusRejected {
			failed = append(failed, d.DocType)
		}
	}

	snapshot := &StatusSnapshot{
		Eligibility: Eligibility{
			IsLicensedAgent:  record.IsLicensedAgent,
			WorksUnderAgency: record.WorksUnderAgency,
			AgreesToRules:    record.AgreesToRules,
		},
		BasicDetails: BasicDetails{
			FullName: fullName,
			Email:    user.Email,
			Phone:    phone,
		},
		Documents:          docsMap,
		FailedDocuments:    failed,
		VerificationStatus: record.VerificationStatus,
		AccountActivated:   record.AccountActivated,
	}
	snapshot.Screen = NextScreen(snapshot)

	return snapshot, nil
}

// storagePath derives the object key from (userID, docType, upload
// time); re-uploads land on fresh keys while the row always points at
// the latest one.
func storagePath(userID int64, docType domain.DocType, filename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 {
		ext = ""
	}
	return fmt.Sprintf("%d/%s/%d%s", userID, docType, now.UnixMilli(), ext)
}
