package models

import (
	"time"
)

// Record is one serialized blob in the local key-value store. Only two keys
// are ever written: the company profile and the memo collection.
type Record struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     []byte    `gorm:"not null" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Record) TableName() string {
	return "records"
}
