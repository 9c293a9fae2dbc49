package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/passenger-registry/internal/model"
	"github.com/iliyamo/passenger-registry/internal/utils"
)

// UserRepo encapsulates queries against the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a bcrypt-hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, userName, password string, cost int) (uint64, error) {
	userName = strings.TrimSpace(userName)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (user_name, password_hash) VALUES (?,?)",
		userName, hash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUserExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUserName fetches a user by name. Returns sql.ErrNoRows when absent;
// the login handler folds that into the generic credentials error.
func (r *UserRepo) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	userName = strings.TrimSpace(userName)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_name, password_hash, created_at, updated_at FROM users WHERE user_name=? LIMIT 1",
		userName).Scan(&u.ID, &u.UserName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_name, password_hash, created_at, updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.UserName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
