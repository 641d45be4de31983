package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/greentips/tips-platform/internal/domain/user"
	qb "github.com/greentips/tips-platform/internal/platform/querybuilder"
	"github.com/greentips/tips-platform/internal/usecase"
)

type userTableModel struct {
	ID             int64        `db:"id"`
	Email          string       `db:"email"`
	Name           string       `db:"name"`
	IsVIP          bool         `db:"is_vip"`
	VIPActivatedAt sql.NullTime `db:"vip_activated_at"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

func (row userTableModel) toDomain() user.User {
	out := user.User{
		ID:        row.ID,
		Email:     row.Email,
		Name:      row.Name,
		IsVIP:     row.IsVIP,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.VIPActivatedAt.Valid {
		at := row.VIPActivatedAt.Time
		out.VIPActivatedAt = &at
	}
	return out
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq("email", user.NormalizeEmail(email))).
		Limit(1).
		ToSQL()
	if err != nil {
		return user.User{}, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, fmt.Errorf("%w: user email=%s", usecase.ErrNotFound, user.NormalizeEmail(email))
		}
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	}

	return row.toDomain(), nil
}

func (r *UserRepository) ActivateVIP(ctx context.Context, email string, at time.Time) (user.User, error) {
	query, args, err := qb.Update("users").
		Set("is_vip", true).
		Set("vip_activated_at", at).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("email", user.NormalizeEmail(email))).
		Suffix("RETURNING id, email, name, is_vip, vip_activated_at, created_at, updated_at").
		ToSQL()
	if err != nil {
		return user.User{}, fmt.Errorf("build activate vip query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, fmt.Errorf("%w: user email=%s", usecase.ErrNotFound, user.NormalizeEmail(email))
		}
		return user.User{}, fmt.Errorf("activate vip: %w", err)
	}

	return row.toDomain(), nil
}

func (r *UserRepository) SaveTransaction(ctx context.Context, tx user.Transaction) error {
	query, args, err := qb.InsertInto("transactions").
		Columns("user_id", "provider_ref", "amount", "status", "payment_method").
		Values(tx.UserID, tx.ProviderRef, tx.Amount, tx.Status, tx.PaymentMethod).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert transaction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	return nil
}
