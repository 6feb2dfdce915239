package postgres

import "time"

type seriesCacheTableModel struct {
	SeriesID      string    `db:"series_id"`
	Name          string    `db:"name"`
	Payload       []byte    `db:"payload"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	CreatedAt     time.Time `db:"created_at"`
}

type seriesCacheInsertModel struct {
	SeriesID      string    `db:"series_id"`
	Name          string    `db:"name"`
	Payload       string    `db:"payload"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}
