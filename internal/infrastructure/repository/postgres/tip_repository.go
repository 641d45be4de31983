package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/greentips/tips-platform/internal/domain/tip"
	qb "github.com/greentips/tips-platform/internal/platform/querybuilder"
	"github.com/greentips/tips-platform/internal/usecase"
)

// TipRepository stores generated tips. Save is a plain insert so repeated
// generation runs accumulate rows; that matches how the feed historically
// behaved and callers rely on it.
type TipRepository struct {
	db *sqlx.DB
}

func NewTipRepository(db *sqlx.DB) *TipRepository {
	return &TipRepository{db: db}
}

func (r *TipRepository) Save(ctx context.Context, tips []tip.Tip) error {
	if len(tips) == 0 {
		return nil
	}

	rows := make([]tipInsertModel, 0, len(tips))
	for _, t := range tips {
		if err := t.ValidateBasic(); err != nil {
			return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		rows = append(rows, newTipInsertModel(t))
	}

	query, args, err := qb.InsertModels("tips", rows, "")
	if err != nil {
		return fmt.Errorf("build insert tips query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert tips: %w", err)
	}

	return nil
}

func (r *TipRepository) List(ctx context.Context, filter tip.Filter) ([]tip.Tip, error) {
	var conditions []qb.Condition
	if filter.Sport != nil {
		conditions = append(conditions, qb.Eq("sport", *filter.Sport))
	}
	if filter.IsVIP != nil {
		conditions = append(conditions, qb.Eq("is_vip", *filter.IsVIP))
	}

	query, args, err := qb.Select("*").From("tips").
		Where(conditions...).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tips query: %w", err)
	}

	var rows []tipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}

	out := make([]tip.Tip, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *TipRepository) GetByID(ctx context.Context, id int64) (tip.Tip, error) {
	query, args, err := qb.Select("*").From("tips").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return tip.Tip{}, fmt.Errorf("build get tip query: %w", err)
	}

	var row tipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return tip.Tip{}, fmt.Errorf("%w: tip id=%d", usecase.ErrNotFound, id)
		}
		return tip.Tip{}, fmt.Errorf("get tip: %w", err)
	}

	return row.toDomain(), nil
}

func (r *TipRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query, args, err := qb.Update("tips").
		Set("status", status).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update tip status query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update tip status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tip status rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: tip id=%d", usecase.ErrNotFound, id)
	}

	return nil
}

func (r *TipRepository) CountByStatus(ctx context.Context) ([]tip.StatusCount, error) {
	query, args, err := qb.Select("status", "COUNT(*) AS count").From("tips").
		GroupBy("status").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count tips by status query: %w", err)
	}

	var rows []struct {
		Status string `db:"status"`
		Count  int64  `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count tips by status: %w", err)
	}

	out := make([]tip.StatusCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, tip.StatusCount{Status: row.Status, Count: row.Count})
	}

	return out, nil
}
