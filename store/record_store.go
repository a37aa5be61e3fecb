package store

import (
	"encoding/json"
	"fmt"

	"github.com/yourusername/promemo/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage keys. These mirror the v1 client-side layout so exported blobs
// stay compatible across versions.
const (
	companyKey = "promemo_company_v1"
	memosKey   = "promemo_memos_v1"
)

// RecordStore persists exactly two serialized blobs: the company profile
// and the memo collection. Reads fail soft; a missing or unreadable blob is
// treated as "no data yet". Writes report failures to the caller.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

// ReadProfile returns the stored company profile, or nil when none has been
// saved yet or the blob cannot be parsed.
func (s *RecordStore) ReadProfile() *models.CompanyProfile {
	raw, ok := s.read(companyKey)
	if !ok {
		return nil
	}
	var profile models.CompanyProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil
	}
	return &profile
}

// WriteProfile replaces the stored profile wholesale. There is no merge.
func (s *RecordStore) WriteProfile(profile models.CompanyProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode company profile: %w", err)
	}
	return s.write(companyKey, raw)
}

// ReadMemos returns the stored memo collection, newest first. A missing or
// malformed blob yields an empty collection rather than an error.
func (s *RecordStore) ReadMemos() []models.CashMemo {
	raw, ok := s.read(memosKey)
	if !ok {
		return []models.CashMemo{}
	}
	var memos []models.CashMemo
	if err := json.Unmarshal(raw, &memos); err != nil {
		return []models.CashMemo{}
	}
	return memos
}

// WriteMemos overwrites the full memo collection.
func (s *RecordStore) WriteMemos(memos []models.CashMemo) error {
	raw, err := json.Marshal(memos)
	if err != nil {
		return fmt.Errorf("encode memos: %w", err)
	}
	return s.write(memosKey, raw)
}

func (s *RecordStore) read(key string) ([]byte, bool) {
	var rec models.Record
	if err := s.db.First(&rec, "key = ?", key).Error; err != nil {
		return nil, false
	}
	return rec.Value, true
}

func (s *RecordStore) write(key string, value []byte) error {
	rec := models.Record{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("write record %q: %w", key, err)
	}
	return nil
}
