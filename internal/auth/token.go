package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Role identifies the kind of session a token carries.
type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrWrongRole    = errors.New("token role not allowed for this resource")
)

// Claims is the decoded identity carried by a session token.
type Claims struct {
	Subject   string
	Role      Role
	StudentID string
	ExpiresAt time.Time
}

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret     []byte
	teacherTTL time.Duration
	studentTTL time.Duration
}

// NewTokenManager creates a token manager with the given signing secret
// and per-role session lifetimes.
func NewTokenManager(secret string, teacherTTL, studentTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		teacherTTL: teacherTTL,
		studentTTL: studentTTL,
	}
}

// IssueTeacherToken creates a teacher session token. The session expires
// after the configured teacher TTL regardless of activity.
func (tm *TokenManager) IssueTeacherToken(username string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.teacherTTL)
	claims := jwt.MapClaims{
		"sub":  username,
		"role": string(RoleTeacher),
		"jti":  uuid.New().String(),
		"iat":  time.Now().Unix(),
		"exp":  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign teacher token: %w", err)
	}

	return signed, expiresAt, nil
}

// IssueStudentToken creates a student session token bound to one
// student record. The embedded student ID scopes every later request.
func (tm *TokenManager) IssueStudentToken(studentID string) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.studentTTL)
	claims := jwt.MapClaims{
		"sub":        studentID,
		"role":       string(RoleStudent),
		"student_id": studentID,
		"jti":        uuid.New().String(),
		"iat":        time.Now().Unix(),
		"exp":        expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign student token: %w", err)
	}

	return signed, expiresAt, nil
}

// VerifyToken parses and validates a token string and returns its claims.
func (tm *TokenManager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}

	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if role, ok := mapClaims["role"].(string); ok {
		claims.Role = Role(role)
	}
	if studentID, ok := mapClaims["student_id"].(string); ok {
		claims.StudentID = studentID
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}

	if claims.Role != RoleTeacher && claims.Role != RoleStudent {
		return nil, ErrInvalidToken
	}
	if claims.Role == RoleStudent && claims.StudentID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
