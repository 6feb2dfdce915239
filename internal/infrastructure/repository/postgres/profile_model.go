package postgres

import (
	"database/sql"
	"time"
)

type profileTableModel struct {
	UserID      string         `db:"user_id"`
	DisplayName string         `db:"display_name"`
	AvatarURL   sql.NullString `db:"avatar_url"`
	TotalPoints int            `db:"total_points"`
	Accuracy    int            `db:"accuracy"`
	Guest       bool           `db:"guest"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type profileInsertModel struct {
	UserID      string  `db:"user_id"`
	DisplayName string  `db:"display_name"`
	AvatarURL   *string `db:"avatar_url"`
	Guest       bool    `db:"guest"`
}
