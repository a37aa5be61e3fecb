package store

import (
	"errors"

	"github.com/yourusername/promemo/models"
)

// ErrNotFound is returned when no memo has the requested id.
var ErrNotFound = errors.New("memo not found")

// MemoRepository owns the persisted memo collection as an ordered list,
// newest first. Every mutation writes the full collection back through the
// record store.
type MemoRepository struct {
	store *RecordStore
}

func NewMemoRepository(store *RecordStore) *MemoRepository {
	return &MemoRepository{store: store}
}

// List returns all memos, most recently saved first.
func (r *MemoRepository) List() []models.CashMemo {
	return r.store.ReadMemos()
}

// Get returns the memo with the given id.
func (r *MemoRepository) Get(id string) (*models.CashMemo, error) {
	for _, m := range r.store.ReadMemos() {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

// Exists reports whether a memo with the given id is already persisted.
func (r *MemoRepository) Exists(id string) bool {
	_, err := r.Get(id)
	return err == nil
}

// Save inserts the memo at the front of the collection. A memo that shares
// an id with an existing one replaces it in place, keeping its position.
func (r *MemoRepository) Save(memo models.CashMemo) error {
	memos := r.store.ReadMemos()
	replaced := false
	for i := range memos {
		if memos[i].ID == memo.ID {
			memos[i] = memo
			replaced = true
			break
		}
	}
	if !replaced {
		memos = append([]models.CashMemo{memo}, memos...)
	}
	return r.store.WriteMemos(memos)
}

// Delete removes the memo with the given id. Deleting an unknown id leaves
// the collection unchanged and is not an error.
func (r *MemoRepository) Delete(id string) error {
	memos := r.store.ReadMemos()
	filtered := make([]models.CashMemo, 0, len(memos))
	for _, m := range memos {
		if m.ID != id {
			filtered = append(filtered, m)
		}
	}
	return r.store.WriteMemos(filtered)
}

// Summary holds the dashboard aggregates derived from the full collection.
type Summary struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	MemoCount     int     `json:"memoCount"`
	CustomerCount int     `json:"customerCount"`
}

// Summarize derives the dashboard aggregates. Customer names are compared
// case-sensitively, so differently capitalized names count as distinct.
func (r *MemoRepository) Summarize() Summary {
	memos := r.store.ReadMemos()
	names := make(map[string]struct{}, len(memos))
	var revenue float64
	for _, m := range memos {
		revenue += m.GrandTotal
		names[m.Customer.Name] = struct{}{}
	}
	return Summary{
		TotalRevenue:  revenue,
		MemoCount:     len(memos),
		CustomerCount: len(names),
	}
}
