package onboarding

import (
	"errors"
	"fmt"
	"strings"

	"havenagent/internal/domain"
)

var (
	ErrInvalidField        = errors.New("invalid eligibility field")
	ErrUnsupportedDocType  = errors.New("invalid document type")
	ErrUnsupportedMimeType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyFile           = errors.New("file is empty")
	ErrStorageFailure      = errors.New("document storage failure")
	ErrEmailChangeRejected = errors.New("email change rejected")
)

// IncompleteDocumentsError names the kinds still missing when an agent
// submits for verification too early.
type IncompleteDocumentsError struct {
	Missing []domain.DocType
}

func (e *IncompleteDocumentsError) Error() string {
	kinds := make([]string, 0, len(e.Missing))
	for _, t := range e.Missing {
		kinds = append(kinds, string(t))
	}
	return fmt.Sprintf("please upload all required documents before submitting: missing %s",
		strings.Join(kinds, ", "))
}
