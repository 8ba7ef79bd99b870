package services

import (
	"context"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
	"busadmin/internal/repositories"
	"busadmin/internal/utils"
)

const minPasswordLen = 6

type UserService struct {
	Repo      repositories.UserRepository
	RequestID string
}

// UserInput is the admin form. Password is optional on update.
type UserInput struct {
	FullName    string      `json:"fullName"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	CitizenID   string      `json:"citizenId"`
	DateOfBirth string      `json:"dateOfBirth"`
	Gender      string      `json:"gender"`
	Address     string      `json:"address"`
	Role        models.Role `json:"role"`
	IsActive    *bool       `json:"isActive"`
	Password    string      `json:"password"`
}

func (in UserInput) user(id int64) (models.User, error) {
	u := models.User{
		ID:          id,
		FullName:    utils.NormalizeSpace(in.FullName),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		CitizenID:   strings.TrimSpace(in.CitizenID),
		DateOfBirth: strings.TrimSpace(in.DateOfBirth),
		Gender:      strings.TrimSpace(in.Gender),
		Address:     utils.NormalizeSpace(in.Address),
		Role:        in.Role,
		IsActive:    true,
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if u.Role == "" {
		u.Role = models.RoleCustomer
	}

	if err := firstErr(required("fullName", u.FullName), required("email", u.Email)); err != nil {
		return u, err
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return u, domain.ValidationError{Field: "email", Msg: "is not a valid address", Err: err}
	}
	if !models.ValidRole(u.Role) {
		return u, domain.ValidationError{Field: "role", Msg: "must be admin, staff or customer"}
	}
	if u.DateOfBirth != "" {
		dob, err := utils.NormalizeDate(u.DateOfBirth)
		if err != nil {
			return u, domain.ValidationError{Field: "dateOfBirth", Msg: "must be YYYY-MM-DD", Err: err}
		}
		u.DateOfBirth = dob
	}
	return u, nil
}

// HashPassword bcrypt-hashes a password after checking its length.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", domain.ValidationError{Field: "password", Msg: "must be at least 6 characters"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", domain.InternalError{Msg: "hash password", Err: err}
	}
	return string(hash), nil
}

func (s UserService) List(ctx context.Context, q domain.ListQuery) (domain.Page[models.User], error) {
	items, total, err := s.Repo.List(ctx, q)
	if err != nil {
		return domain.Page[models.User]{}, err
	}
	return pageOf(items, total, q.Page), nil
}

func (s UserService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s UserService) Create(ctx context.Context, in UserInput) (models.User, error) {
	u, err := in.user(0)
	if err != nil {
		return models.User{}, err
	}
	if u.PasswordHash, err = HashPassword(in.Password); err != nil {
		return models.User{}, err
	}
	id, err := s.Repo.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "create", "user created", "user_id", id, "role", u.Role)
	return s.Repo.GetByID(ctx, id)
}

// Update changes profile fields and role; the password only when given.
// Active state is managed through SetActive.
func (s UserService) Update(ctx context.Context, id int64, in UserInput) (models.User, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return models.User{}, err
	}
	u, err := in.user(id)
	if err != nil {
		return models.User{}, err
	}
	if in.Password != "" {
		if u.PasswordHash, err = HashPassword(in.Password); err != nil {
			return models.User{}, err
		}
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "update", "user updated", "user_id", id)
	return s.Repo.GetByID(ctx, id)
}

func (s UserService) SetActive(ctx context.Context, id int64, active bool) (models.User, error) {
	if _, err := s.Repo.GetByID(ctx, id); err != nil {
		return models.User{}, err
	}
	if err := s.Repo.SetActive(ctx, id, active); err != nil {
		return models.User{}, err
	}
	utils.LogEvent(s.RequestID, "users", "set_active", "user status changed", "user_id", id, "active", active)
	return s.Repo.GetByID(ctx, id)
}

// Delete removes a user. Admins cannot delete themselves.
func (s UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return domain.ValidationError{Field: "id", Msg: "you cannot delete your own account"}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "users", "delete", "user deleted", "user_id", id)
	return nil
}
