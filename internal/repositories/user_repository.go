package repositories

import (
	"context"
	"fmt"

	intdb "busadmin/internal/db"
	"busadmin/internal/domain"
	"busadmin/internal/domain/models"
)

const userColumns = `id, full_name, phone, email, citizen_id, date_of_birth, gender, address,
	role, is_active, password_hash, created_at, updated_at`

type UserRepository struct {
	DB intdb.DBTX
}

func scanUser(s scanner) (models.User, error) {
	var u models.User
	err := s.Scan(&u.ID, &u.FullName, &u.Phone, &u.Email, &u.CitizenID, &u.DateOfBirth, &u.Gender, &u.Address,
		&u.Role, &u.IsActive, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// List filters on q.Search (name, email, phone) and q.Status which, for users,
// is a role.
func (r UserRepository) List(ctx context.Context, q domain.ListQuery) ([]models.User, int, error) {
	var w whereClause
	if q.Search != "" {
		p := likePattern(q.Search)
		w.add("(full_name LIKE ? OR email LIKE ? OR phone LIKE ?)", p, p, p)
	}
	if q.Status != "" {
		w.add("role = ?", q.Status)
	}

	var total int
	if err := pick(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE `+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repositories.UserRepository.List: count: %w", err)
	}

	args := append(w.args, q.Page.PageSize, q.Page.Offset())
	rows, err := pick(r.DB).QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+w.String()+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("repositories.UserRepository.List: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repositories.UserRepository.List: scan: %w", err)
		}
		out = append(out, u)
	}
	return out, total, rows.Err()
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	u, err := scanUser(pick(r.DB).QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		return models.User{}, fmt.Errorf("repositories.UserRepository.GetByID: %w", mapReadError("user", id, err))
	}
	return u, nil
}

// GetByLogin finds a user by email or phone.
func (r UserRepository) GetByLogin(ctx context.Context, login string) (models.User, error) {
	u, err := scanUser(pick(r.DB).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? OR (phone <> '' AND phone = ?) ORDER BY id LIMIT 1`, login, login))
	if err != nil {
		return models.User{}, fmt.Errorf("repositories.UserRepository.GetByLogin: %w", mapReadError("user", 0, err))
	}
	return u, nil
}

func (r UserRepository) CountByRole(ctx context.Context, role models.Role) (int, error) {
	var n int
	if err := pick(r.DB).QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&n); err != nil {
		return 0, fmt.Errorf("repositories.UserRepository.CountByRole: %w", err)
	}
	return n, nil
}

func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	res, err := pick(r.DB).ExecContext(ctx, `
		INSERT INTO users (full_name, phone, email, citizen_id, date_of_birth, gender, address, role, is_active, password_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.FullName, u.Phone, u.Email, u.CitizenID, u.DateOfBirth, u.Gender, u.Address, u.Role, u.IsActive, u.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("repositories.UserRepository.Create: %w", mapWriteError("user", err))
	}
	return res.LastInsertId()
}

// Update writes profile fields and role. The password hash is only touched
// when non-empty.
func (r UserRepository) Update(ctx context.Context, u models.User) error {
	query := `
		UPDATE users
		SET full_name = ?, phone = ?, email = ?, citizen_id = ?, date_of_birth = ?, gender = ?, address = ?, role = ?`
	args := []any{u.FullName, u.Phone, u.Email, u.CitizenID, u.DateOfBirth, u.Gender, u.Address, u.Role}
	if u.PasswordHash != "" {
		query += `, password_hash = ?`
		args = append(args, u.PasswordHash)
	}
	query += ` WHERE id = ?`
	args = append(args, u.ID)

	if _, err := pick(r.DB).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("repositories.UserRepository.Update: %w", mapWriteError("user", err))
	}
	return nil
}

func (r UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	if _, err := pick(r.DB).ExecContext(ctx, `UPDATE users SET is_active = ? WHERE id = ?`, active, id); err != nil {
		return fmt.Errorf("repositories.UserRepository.SetActive: %w", err)
	}
	return nil
}

func (r UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := pick(r.DB).ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("repositories.UserRepository.Delete: %w", mapWriteError("user", err))
	}
	if err := affectedOrNotFound(res, "user", id); err != nil {
		return fmt.Errorf("repositories.UserRepository.Delete: %w", err)
	}
	return nil
}
