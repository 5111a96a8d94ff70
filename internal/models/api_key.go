package models

import "time"

type ApiKey struct {
	ID         int64     `db:"id" json:"id"`
	OperatorID int64     `db:"operator_id" json:"operator_id"`
	ApiKey     string    `db:"api_key" json:"api_key"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
