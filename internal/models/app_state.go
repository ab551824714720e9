package models

import "time"

// AppState is the single-row table backing the sql document store.
type AppState struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Document  string    `gorm:"type:text;not null" json:"document"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name.
func (AppState) TableName() string {
	return "app_states"
}
