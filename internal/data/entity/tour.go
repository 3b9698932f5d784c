package entity

type Tour struct {
	Base
	Name            string  `db:"name"`
	Description     string  `db:"description"`
	DurationMinutes int     `db:"duration_minutes"`
	BasePrice       float64 `db:"base_price"`
	Currency        string  `db:"currency"`
	IsActive        bool    `db:"is_active"`
}
