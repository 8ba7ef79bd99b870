package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
	"busadmin/internal/repositories"
	"busadmin/internal/utils"
)

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email/phone or password"}

// Claims is the JWT payload issued at login.
type Claims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	Users     repositories.UserRepository
	Secret    []byte
	TTL       time.Duration
	RequestID string
	Now       func() time.Time
}

func (s AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type LoginInput struct {
	// Login is an email or a phone number.
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

// Login checks credentials and issues a signed token. Customers cannot sign
// in to the admin dashboard.
func (s AuthService) Login(ctx context.Context, in LoginInput) (LoginResult, error) {
	login := strings.TrimSpace(utils.FirstNonEmpty(in.Login, in.Email))
	if login == "" || in.Password == "" {
		return LoginResult{}, domain.ValidationError{Msg: "login and password are required"}
	}

	u, err := s.Users.GetByLogin(ctx, strings.ToLower(login))
	if domain.IsNotFound(err) {
		return LoginResult{}, errBadCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return LoginResult{}, errBadCredentials
	}
	if !u.IsActive {
		return LoginResult{}, domain.UnauthorizedError{Msg: "account is disabled"}
	}
	if u.Role == models.RoleCustomer {
		return LoginResult{}, domain.UnauthorizedError{Msg: "account has no dashboard access"}
	}

	token, exp, err := s.IssueToken(u)
	if err != nil {
		return LoginResult{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "login", "user signed in", "user_id", u.ID, "role", u.Role)
	return LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s AuthService) IssueToken(u models.User) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.TTL)
	claims := Claims{
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, domain.InternalError{Msg: "sign token", Err: err}
	}
	return signed, exp, nil
}

// ParseToken validates a bearer token and returns the caller it names.
func (s AuthService) ParseToken(raw string) (domain.RequestContext, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.RequestContext{}, domain.UnauthorizedError{Msg: "token expired", Err: err}
		}
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return domain.RequestContext{}, domain.UnauthorizedError{Msg: "invalid token subject", Err: err}
	}
	return domain.RequestContext{UserID: id, Role: string(claims.Role)}, nil
}

func (s AuthService) Profile(ctx context.Context, userID int64) (models.User, error) {
	return s.Users.GetByID(ctx, userID)
}

// ProfileInput is what a signed-in user may change about themselves.
type ProfileInput struct {
	FullName        string `json:"fullName"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	Address         string `json:"address"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfile edits the caller's own record. Changing the password requires
// the current one; role and active state are left untouched.
func (s AuthService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (models.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	form := UserInput{
		FullName:    utils.FirstNonEmpty(in.FullName, u.FullName),
		Phone:       utils.FirstNonEmpty(in.Phone, u.Phone),
		Email:       utils.FirstNonEmpty(in.Email, u.Email),
		CitizenID:   u.CitizenID,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		Address:     utils.FirstNonEmpty(in.Address, u.Address),
		Role:        u.Role,
	}
	updated, err := form.user(userID)
	if err != nil {
		return models.User{}, err
	}
	if in.NewPassword != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.CurrentPassword)); err != nil {
			return models.User{}, domain.ValidationError{Field: "currentPassword", Msg: "does not match"}
		}
		if updated.PasswordHash, err = HashPassword(in.NewPassword); err != nil {
			return models.User{}, err
		}
	}
	if err := s.Users.Update(ctx, updated); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "auth", "update_profile", "profile updated", "user_id", userID)
	return s.Users.GetByID(ctx, userID)
}

// EnsureAdmin creates the first admin account when none exists. It is a
// no-op when email or password is empty.
func (s AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil
	}
	n, err := s.Users.CountByRole(ctx, models.RoleAdmin)
	if err != nil || n > 0 {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	id, err := s.Users.Create(ctx, models.User{
		FullName:     "Administrator",
		Email:        strings.ToLower(strings.TrimSpace(email)),
		Role:         models.RoleAdmin,
		IsActive:     true,
		PasswordHash: hash,
	})
	if err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "auth", "bootstrap_admin", "initial admin created", "user_id", id)
	return nil
}
