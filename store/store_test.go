package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/promemo/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) *RecordStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Record{}))
	return NewRecordStore(db)
}

func memoWith(id, customer string, grandTotal float64) models.CashMemo {
	return models.CashMemo{
		ID:         id,
		Customer:   models.Customer{Name: customer},
		Items:      []models.LineItem{{ID: "1", Description: "Widget", Quantity: 1, UnitPrice: grandTotal, Total: grandTotal}},
		Subtotal:   grandTotal,
		TaxRate:    0.10,
		GrandTotal: grandTotal,
	}
}

func TestRecordStoreProfile(t *testing.T) {
	s := setupTestStore(t)

	t.Run("Absent profile reads as nil", func(t *testing.T) {
		assert.Nil(t, s.ReadProfile())
	})

	t.Run("Write then read", func(t *testing.T) {
		profile := models.CompanyProfile{
			Name:         "Acme Inc.",
			MemoTitle:    "Cash Memo",
			PrimaryColor: "#4f46e5",
		}
		assert.NoError(t, s.WriteProfile(profile))
		assert.Equal(t, &profile, s.ReadProfile())
	})

	t.Run("Write replaces wholesale", func(t *testing.T) {
		assert.NoError(t, s.WriteProfile(models.CompanyProfile{Name: "New Name"}))
		got := s.ReadProfile()
		assert.Equal(t, "New Name", got.Name)
		assert.Empty(t, got.MemoTitle)
	})

	t.Run("Corrupted blob reads as nil", func(t *testing.T) {
		assert.NoError(t, s.db.Save(&models.Record{Key: companyKey, Value: []byte("{not json")}).Error)
		assert.Nil(t, s.ReadProfile())
	})
}

func TestRecordStoreMemosRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	t.Run("Absent collection reads as empty", func(t *testing.T) {
		assert.Empty(t, s.ReadMemos())
	})

	t.Run("Round trip preserves order and fields", func(t *testing.T) {
		memos := []models.CashMemo{
			memoWith("INV-000002", "Jane Doe", 25.50),
			memoWith("INV-000001", "John Smith", 11.00),
		}
		assert.NoError(t, s.WriteMemos(memos))
		assert.Equal(t, memos, s.ReadMemos())
	})

	t.Run("Corrupted blob reads as empty", func(t *testing.T) {
		assert.NoError(t, s.db.Save(&models.Record{Key: memosKey, Value: []byte("{not json")}).Error)
		assert.Empty(t, s.ReadMemos())
	})
}

func TestRecordStoreWriteFailure(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.WriteProfile(models.CompanyProfile{Name: "Acme Inc."}))
	assert.NoError(t, s.WriteMemos([]models.CashMemo{memoWith("INV-000001", "John Smith", 11.00)}))

	sqlDB, err := s.db.DB()
	assert.NoError(t, err)
	assert.NoError(t, sqlDB.Close())

	t.Run("Writes surface the failure", func(t *testing.T) {
		assert.Error(t, s.WriteProfile(models.CompanyProfile{Name: "New Name"}))
		assert.Error(t, s.WriteMemos([]models.CashMemo{memoWith("INV-000002", "Jane Doe", 25.50)}))
	})

	t.Run("Reads still fail soft", func(t *testing.T) {
		assert.Nil(t, s.ReadProfile())
		assert.Empty(t, s.ReadMemos())
	})
}

func TestMemoRepositorySave(t *testing.T) {
	s := setupTestStore(t)
	repo := NewMemoRepository(s)

	assert.NoError(t, repo.Save(memoWith("INV-000001", "John Smith", 11.00)))
	assert.NoError(t, repo.Save(memoWith("INV-000002", "Jane Doe", 25.50)))

	t.Run("Newest first", func(t *testing.T) {
		memos := repo.List()
		assert.Len(t, memos, 2)
		assert.Equal(t, "INV-000002", memos[0].ID)
		assert.Equal(t, "INV-000001", memos[1].ID)
	})

	t.Run("Same id replaces in place", func(t *testing.T) {
		updated := memoWith("INV-000001", "John Smith", 15.00)
		assert.NoError(t, repo.Save(updated))

		memos := repo.List()
		assert.Len(t, memos, 2)
		assert.Equal(t, "INV-000002", memos[0].ID)
		assert.Equal(t, "INV-000001", memos[1].ID)
		assert.Equal(t, 15.00, memos[1].GrandTotal)
	})

	t.Run("Exists", func(t *testing.T) {
		assert.True(t, repo.Exists("INV-000001"))
		assert.False(t, repo.Exists("INV-999999"))
	})
}

func TestMemoRepositoryDelete(t *testing.T) {
	s := setupTestStore(t)
	repo := NewMemoRepository(s)

	assert.NoError(t, repo.Save(memoWith("INV-000001", "John Smith", 11.00)))

	t.Run("Unknown id is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.Delete("INV-999999"))
		assert.Len(t, repo.List(), 1)
	})

	t.Run("Delete removes the memo", func(t *testing.T) {
		assert.NoError(t, repo.Delete("INV-000001"))
		assert.Empty(t, repo.List())
	})
}

func TestMemoRepositorySummarize(t *testing.T) {
	s := setupTestStore(t)
	repo := NewMemoRepository(s)

	t.Run("Empty history", func(t *testing.T) {
		assert.Equal(t, Summary{}, repo.Summarize())
	})

	assert.NoError(t, repo.Save(memoWith("INV-000001", "John Smith", 11.00)))
	assert.NoError(t, repo.Save(memoWith("INV-000002", "Jane Doe", 25.50)))
	assert.NoError(t, repo.Save(memoWith("INV-000003", "Jane Doe", 5.00)))
	// Case-sensitive comparison: a differently capitalized name is distinct.
	assert.NoError(t, repo.Save(memoWith("INV-000004", "jane doe", 5.00)))

	summary := repo.Summarize()
	assert.Equal(t, 46.50, summary.TotalRevenue)
	assert.Equal(t, 4, summary.MemoCount)
	assert.Equal(t, 3, summary.CustomerCount)
}
