package onboarding

import "havenagent/internal/domain"

type UpdateEligibilityRequest struct {
	Field string `json:"field" binding:"required"`
	Value *bool  `json:"value" binding:"required"`
}

// UpdateDetailsRequest carries any subset of the profile fields.
// Pointers distinguish "absent" from "set to empty".
type UpdateDetailsRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

type Eligibility struct {
	IsLicensedAgent  bool `json:"isLicensedAgent"`
	WorksUnderAgency bool `json:"worksUnderAgency"`
	AgreesToRules    bool `json:"agreesToRules"`
}

type BasicDetails struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// StatusSnapshot is the derived view the client routes screens from.
// It is rebuilt from the record plus a live identity lookup on every
// call; approval can happen out-of-band between polls, so nothing here
// is ever cached.
type StatusSnapshot struct {
	Eligibility        Eligibility               `json:"eligibility"`
	BasicDetails       BasicDetails              `json:"basicDetails"`
	Documents          map[domain.DocType]bool   `json:"documents"`
	FailedDocuments    []domain.DocType          `json:"failedDocuments"`
	VerificationStatus domain.VerificationStatus `json:"verificationStatus"`
	AccountActivated   bool                      `json:"accountActivated"`
	Screen             Screen                    `json:"screen"`
}
