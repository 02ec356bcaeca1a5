package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type TokenClaims struct {
	Role    string `json:"role"`
	UserID  uint   `json:"user_id"`
	AdminID uint   `json:"admin_id,omitempty"`
	jwt.RegisteredClaims
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
}

// AuthService keeps a local cache of credentials and defers to the identity
// provider for account existence and email verification.
type AuthService struct {
	DB          *gorm.DB
	Identity    IdentityProvider
	Mailer      Mailer
	JWTSecret   []byte
	TokenExpiry time.Duration
	Now         func() time.Time
}

func NewAuthService(db *gorm.DB, identity IdentityProvider, mailer Mailer, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		DB:          db,
		Identity:    identity,
		Mailer:      mailer,
		JWTSecret:   []byte(secret),
		TokenExpiry: expiry,
		Now:         time.Now,
	}
}

// SignupAdmin registers the account with the identity provider, fetches the
// verification link and mails it, and only then writes the local admin row.
// No network call happens while a write transaction is open, and a failed
// mail leaves no local row behind.
func (s *AuthService) SignupAdmin(ctx context.Context, req SignupRequest) (*models.Admin, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, types.NewValidationError(types.ErrValidationFailed, errs)
	}

	db := s.DB.WithContext(ctx)
	var existing int64
	if err := db.Model(&models.Admin{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return nil, types.NewStoreError(err)
	}
	if existing > 0 {
		return nil, ErrEmailTaken
	}

	uid, err := s.Identity.CreateUser(ctx, req.Email, req.Password)
	if err != nil {
		return nil, types.NewUpstreamError("Identity provider error", err)
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, types.NewAppError(types.KindStore, types.ErrInternalError, err)
	}

	link, err := s.Identity.VerificationLink(ctx, req.Email)
	if err != nil {
		return nil, types.NewUpstreamError("Identity provider error", err)
	}

	body := fmt.Sprintf("Hello %s,\n\nConfirm your email address by opening the link below:\n\n%s\n", req.Name, link)
	if err := s.Mailer.Send(ctx, req.Email, "Verify your email", body); err != nil {
		utils.Logger.Error("Failed to send verification email", zap.String("email", req.Email), zap.Error(err))
		return nil, types.NewUpstreamError("Mail delivery failed", err)
	}

	admin := models.Admin{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IdentityUID:  uid,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, mapWriteError(err)
	}
	return &admin, nil
}

func (s *AuthService) LoginAdmin(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, types.NewValidationError(types.ErrValidationFailed, errs)
	}

	db := s.DB.WithContext(ctx)
	var admin models.Admin
	err := db.Where("email = ?", req.Email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, s.lookupUnprovisioned(ctx, req.Email)
	}
	if err != nil {
		return nil, types.NewStoreError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	if !admin.Verified {
		user, err := s.Identity.GetUserByEmail(ctx, req.Email)
		if errors.Is(err, ErrIdentityUserNotFound) {
			return nil, ErrEmailNotVerified
		}
		if err != nil {
			return nil, types.NewUpstreamError("Identity provider error", err)
		}
		if !user.Verified {
			return nil, ErrEmailNotVerified
		}
		if err := db.Model(&admin).Update("verified", true).Error; err != nil {
			return nil, types.NewStoreError(err)
		}
	}

	token, err := s.IssueToken(RoleAdmin, admin.ID, admin.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: RoleAdmin, UserID: admin.ID, Name: admin.Name}, nil
}

// lookupUnprovisioned asks the identity provider about an email that has no
// local admin row.
func (s *AuthService) lookupUnprovisioned(ctx context.Context, email string) error {
	_, err := s.Identity.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrIdentityUserNotFound) {
		return ErrAdminNotFound
	}
	if err != nil {
		return types.NewUpstreamError("Identity provider error", err)
	}
	return ErrNotProvisioned
}

func (s *AuthService) LoginEmployee(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if errs := utils.ValidateStruct(req); errs != nil {
		return nil, types.NewValidationError(types.ErrValidationFailed, errs)
	}

	var employee models.Employee
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, types.NewStoreError(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	if employee.Status == models.EmployeeStatusBanned {
		return nil, ErrEmployeeBanned
	}

	token, err := s.IssueToken(RoleEmployee, employee.ID, employee.AdminID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: RoleEmployee, UserID: employee.ID, Name: employee.Name}, nil
}

func (s *AuthService) IssueToken(role string, userID, adminID uint) (string, error) {
	now := s.Now()
	claims := TokenClaims{
		Role:    role,
		UserID:  userID,
		AdminID: adminID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%s:%d", role, userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenExpiry)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.JWTSecret)
	if err != nil {
		return "", types.NewAppError(types.KindStore, types.ErrInternalError, err)
	}
	return token, nil
}

func (s *AuthService) ParseToken(tokenString string) (*TokenClaims, error) {
	return ParseToken(tokenString, s.JWTSecret)
}

// ParseToken verifies an HS256 token signed with secret.
func ParseToken(tokenString string, secret []byte) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken.Wrap(err)
	}
	if claims.Role != RoleAdmin && claims.Role != RoleEmployee {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
