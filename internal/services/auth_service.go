package services

import (
	"context"
	"log/slog"

	"github.com/jrc-public-school/school-service/internal/auth"
	"github.com/jrc-public-school/school-service/internal/validator"
)

type authService struct {
	teacherUsername     string
	teacherPasswordHash string
	tokens              *auth.TokenManager
	logger              *slog.Logger
	validator           *validator.Validator
}

func NewAuthService(teacherUsername, teacherPasswordHash string, tokens *auth.TokenManager, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{
		teacherUsername:     teacherUsername,
		teacherPasswordHash: teacherPasswordHash,
		tokens:              tokens,
		logger:              logger,
		validator:           v,
	}
}

// TeacherLogin validates the single static teacher credential. Username and
// password comparison are both case-sensitive, and every failure returns
// the same error so callers cannot probe which part was wrong.
func (s *authService) TeacherLogin(ctx context.Context, req *TeacherLoginRequest) (*TeacherAuthResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, NewValidationError(errs[0].Field, errs[0].Message, errs[0].Value)
	}

	if req.Username != s.teacherUsername || !auth.CheckPassword(s.teacherPasswordHash, req.Password) {
		s.logger.WarnContext(ctx, "Teacher login failed", "username", req.Username)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.IssueTeacherToken(req.Username)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Teacher logged in", "username", req.Username)

	return &TeacherAuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
