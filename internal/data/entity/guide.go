package entity

type Guide struct {
	Base
	Name     string `db:"name"`
	Email    string `db:"email"`
	Phone    string `db:"phone"`
	IsActive bool   `db:"is_active"`
}
