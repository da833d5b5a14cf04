package requests

import (
	"github.com/tunisiajockeyclub/club/pkg/security"
	"github.com/tunisiajockeyclub/club/pkg/utils"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) Validate() *security.ValidationError {
	var issues []security.FieldIssue
	if err := utils.ValidateEmail(r.Email); err != nil {
		issues = append(issues, security.FieldIssue{Field: "email", Message: err.Error()})
	}
	if r.Password == "" {
		issues = append(issues, security.FieldIssue{Field: "password", Message: "password is required"})
	}
	if len(issues) > 0 {
		return &security.ValidationError{Issues: issues}
	}
	return nil
}

type MFAVerifyRequest struct {
	Code string `json:"code" form:"code"`
}

func (r MFAVerifyRequest) Validate() *security.ValidationError {
	if r.Code == "" {
		return &security.ValidationError{Issues: []security.FieldIssue{
			{Field: "code", Message: "verification code is required"},
		}}
	}
	return nil
}
