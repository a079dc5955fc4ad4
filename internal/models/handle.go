package models

type Handle struct {
	ID         int64  `db:"rowid"`
	Identifier string `db:"id"`
}
