package verification

type IssueCodeRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
}

type IssueCodeResponse struct {
	Subject          string `json:"subject"`
	IsNewUser        bool   `json:"is_new_user"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}

type VerifyCodeRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
	Code    string `json:"code" validate:"required,len=6"`
	// Name and Password are only consulted when the subject has no account
	// yet and a new one is created on successful verification.
	Name     string `json:"name" validate:"omitempty,min=2,max=255"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

type ForgotPasswordRequest struct {
	Subject string `json:"subject" validate:"required,max=255"`
}

type ResetPasswordRequest struct {
	Subject     string `json:"subject" validate:"required,max=255"`
	Code        string `json:"code" validate:"required,len=6"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
