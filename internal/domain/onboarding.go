package domain

import "time"

// DocType is the closed set of documents every agent must provide.
type DocType string

const (
	DocEmiratesID    DocType = "emiratesId"
	DocWorkVisa      DocType = "workVisa"
	DocBrokerLicense DocType = "brokerLicense"
)

// RequiredDocTypes lists every kind in submission order.
var RequiredDocTypes = []DocType{DocEmiratesID, DocWorkVisa, DocBrokerLicense}

func IsValidDocType(t DocType) bool {
	switch t {
	case DocEmiratesID, DocWorkVisa, DocBrokerLicense:
		return true
	}
	return false
}

type DocumentStatus string

const (
	DocStatusAbsent   DocumentStatus = "absent"
	DocStatusUploaded DocumentStatus = "uploaded"
	DocStatusVerified DocumentStatus = "verified"
	DocStatusRejected DocumentStatus = "rejected"
)

type VerificationStatus string

const (
	VerificationNone     VerificationStatus = "none"
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// OnboardingRecord is the per-user aggregate row. account_activated may
// only flip to true together with verification_status=approved.
type OnboardingRecord struct {
	UserID             int64              `json:"user_id"`
	IsLicensedAgent    bool               `json:"is_licensed_agent"`
	WorksUnderAgency   bool               `json:"works_under_agency"`
	AgreesToRules      bool               `json:"agrees_to_rules"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	AccountActivated   bool               `json:"account_activated"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// Document is one uploaded file, keyed by (user_id, doc_type).
// Re-uploads overwrite the row, so at most one per kind exists.
type Document struct {
	UserID      int64          `json:"user_id"`
	DocType     DocType        `json:"doc_type"`
	Status      DocumentStatus `json:"status"`
	StoragePath string         `json:"-"`
	MimeType    string         `json:"mime_type"`
	Size        int64          `json:"size"`
	UploadedAt  time.Time      `json:"uploaded_at"`
}
