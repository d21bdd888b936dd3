package admin

type ApproveVerificationRequest struct {
	UserID int64 `json:"userId" binding:"required"`
}

type PendingVerificationDTO struct {
	UserID      int64  `json:"user_id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	SubmittedAt string `json:"submitted_at"`
}

type PendingListResponse struct {
	Verifications []PendingVerificationDTO `json:"verifications"`
	Total         int                      `json:"total"`
	Page          int                      `json:"page"`
	Limit         int                      `json:"limit"`
}
