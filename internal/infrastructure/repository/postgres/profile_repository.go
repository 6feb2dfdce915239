package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-predictions/internal/domain/profile"
	qb "github.com/riskibarqy/cricket-predictions/internal/platform/querybuilder"
)

var profileColumns = []string{
	"user_id", "display_name", "avatar_url", "total_points", "accuracy", "guest", "created_at", "updated_at",
}

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select(profileColumns...).
		From("user_profiles").
		Where(qb.Eq("user_id", strings.TrimSpace(userID))).
		Limit(1).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	err = withStatementRetry(ctx, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &row, query, args...)
	})
	if err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile: %w", err)
	}
	return profileFromRow(row), true, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) error {
	insertModel := profileInsertModel{
		UserID:      strings.TrimSpace(item.UserID),
		DisplayName: strings.TrimSpace(item.DisplayName),
		AvatarURL:   optionalString(item.AvatarURL),
		Guest:       item.Guest,
	}

	query, args, err := qb.InsertModel("user_profiles", insertModel, `ON CONFLICT (user_id)
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    avatar_url = COALESCE(EXCLUDED.avatar_url, user_profiles.avatar_url),
    guest = EXCLUDED.guest,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert profile query: %w", err)
	}

	err = withStatementRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) UpdateStats(ctx context.Context, userID string, totalPoints, accuracy int) error {
	query, args, err := qb.Update("user_profiles").
		Set("total_points", totalPoints).
		Set("accuracy", accuracy).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("user_id", strings.TrimSpace(userID))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update profile stats query: %w", err)
	}

	err = withStatementRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("update profile stats: %w", err)
	}
	return nil
}

func (r *ProfileRepository) ListTop(ctx context.Context, limit int) ([]profile.Profile, error) {
	query, args, err := qb.Select(profileColumns...).
		From("user_profiles").
		OrderBy("total_points DESC", "accuracy DESC", "display_name ASC", "user_id ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list top profiles query: %w", err)
	}

	var rows []profileTableModel
	err = withStatementRetry(ctx, func(ctx context.Context) error {
		rows = rows[:0]
		return r.db.SelectContext(ctx, &rows, query, args...)
	})
	if err != nil {
		return nil, fmt.Errorf("list top profiles: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, profileFromRow(row))
	}
	return out, nil
}

func profileFromRow(row profileTableModel) profile.Profile {
	return profile.Profile{
		UserID:      row.UserID,
		DisplayName: row.DisplayName,
		AvatarURL:   strings.TrimSpace(row.AvatarURL.String),
		TotalPoints: row.TotalPoints,
		Accuracy:    row.Accuracy,
		Guest:       row.Guest,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}
