package onboarding

import (
	"regexp"
	"strings"

	"havenagent/internal/domain"
)

// Screen names the step an agent should currently be on. It is derived
// from a status snapshot on every navigation decision, never stored.
type Screen string

const (
	ScreenEligibility  Screen = "eligibility"
	ScreenDetails      Screen = "details"
	ScreenDocuments    Screen = "documents"
	ScreenVerification Screen = "verification"
	ScreenActivation   Screen = "activation"
	ScreenDashboard    Screen = "dashboard"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\+?[\d\s-]{8,}$`)
)

// NextScreen walks the onboarding order and returns the first step
// whose requirements are not met.
func NextScreen(s *StatusSnapshot) Screen {
	if !s.Eligibility.IsLicensedAgent || !s.Eligibility.WorksUnderAgency || !s.Eligibility.AgreesToRules {
		return ScreenEligibility
	}
	if !detailsValid(s.BasicDetails) {
		return ScreenDetails
	}
	if !allDocumentsUploaded(s) {
		return ScreenDocuments
	}
	if s.VerificationStatus != domain.VerificationApproved {
		return ScreenVerification
	}
	if !s.AccountActivated {
		return ScreenActivation
	}
	return ScreenDashboard
}

func detailsValid(d BasicDetails) bool {
	return len(strings.TrimSpace(d.FullName)) >= 2 &&
		emailRegex.MatchString(d.Email) &&
		phoneRegex.MatchString(d.Phone)
}

func allDocumentsUploaded(s *StatusSnapshot) bool {
	for _, uploaded := range s.Documents {
		if !uploaded {
			return false
		}
	}
	return len(s.Documents) > 0
}
