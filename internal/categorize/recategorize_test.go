package categorize

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

type mockStore struct {
	txns    []model.Transaction
	updates map[string]string
	failOn  string
}

func newMockStore(txns ...model.Transaction) *mockStore {
	return &mockStore{txns: txns, updates: make(map[string]string)}
}

func (s *mockStore) Transactions() ([]model.Transaction, error) {
	return s.txns, nil
}

func (s *mockStore) UpdateCategory(txnID, categoryID string) error {
	if s.failOn == txnID {
		return fmt.Errorf("write refused")
	}
	s.updates[txnID] = categoryID
	return nil
}

func systemCats() []model.Category {
	return []model.Category{
		{ID: "uncat", Name: model.SystemUncategorized, IsSystem: true, Order: 0},
		{ID: "excl", Name: model.SystemExcluded, IsSystem: true, Order: 1},
		{ID: "income", Name: model.SystemIncome, IsSystem: true, Matchable: true, Keywords: []string{"PAYROLL"}, Order: 2},
		{ID: "groceries", Name: "Groceries", Keywords: []string{"LOBLAWS"}, Order: 3},
		{ID: "coffee", Name: "Coffee", Keywords: []string{"TIM HORTONS"}, Order: 4},
	}
}

func stored(id, matchField, categoryID string) model.Transaction {
	t := txn(id, matchField)
	t.CategoryID = categoryID
	return t
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("uncategorized")
	require.NoError(t, err)
	assert.Equal(t, ModeUncategorized, m)

	m, err = ParseMode("ALL")
	require.NoError(t, err)
	assert.Equal(t, ModeAll, m)

	_, err = ParseMode("everything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestRecategorize_UncategorizedMode(t *testing.T) {
	store := newMockStore(
		stored("t1", "TIM HORTONS #123", "uncat"),    // now matches Coffee
		stored("t2", "MYSTERY MERCHANT", "uncat"),    // still matches nothing
		stored("t3", "TIM HORTONS #99", "groceries"), // already categorized, out of scope
	)
	result, err := Recategorize(store, systemCats(), ModeUncategorized)
	require.NoError(t, err)

	assert.Equal(t, Result{Processed: 2, Updated: 1, Conflicts: 0}, result)
	assert.Equal(t, map[string]string{"t1": "coffee"}, store.updates)
}

func TestRecategorize_NeverTouchesCategorizedRows(t *testing.T) {
	// A Groceries row is untouched regardless of new keywords elsewhere.
	store := newMockStore(stored("t1", "TIM HORTONS #123", "groceries"))
	result, err := Recategorize(store, systemCats(), ModeUncategorized)
	require.NoError(t, err)
	assert.Equal(t, Result{}, result)
	assert.Empty(t, store.updates)
}

func TestRecategorize_AllMode(t *testing.T) {
	store := newMockStore(
		stored("t1", "TIM HORTONS #123", "groceries"), // wrong bucket, gets rewritten
		stored("t2", "LOBLAWS #1052", "excl"),         // excluded, out of scope
		stored("t3", "PAYROLL ACME", "uncat"),         // income is matchable
	)
	result, err := Recategorize(store, systemCats(), ModeAll)
	require.NoError(t, err)

	assert.Equal(t, Result{Processed: 2, Updated: 2, Conflicts: 0}, result)
	assert.Equal(t, map[string]string{"t1": "coffee", "t3": "income"}, store.updates)
}

func TestRecategorize_AllModeSkipsUnchangedAssignment(t *testing.T) {
	store := newMockStore(stored("t1", "TIM HORTONS #123", "coffee"))
	result, err := Recategorize(store, systemCats(), ModeAll)
	require.NoError(t, err)
	assert.Equal(t, Result{Processed: 1}, result)
	assert.Empty(t, store.updates)
}

func TestRecategorize_ConflictsNotWritten(t *testing.T) {
	cats := append(systemCats(),
		model.Category{ID: "shopping", Name: "Shopping", Keywords: []string{"AMAZON"}, Order: 5},
		model.Category{ID: "subs", Name: "Subscriptions", Keywords: []string{"AMAZON"}, Order: 6},
	)
	store := newMockStore(stored("t1", "AMAZON.CA ORDER", "uncat"))

	result, err := Recategorize(store, cats, ModeUncategorized)
	require.NoError(t, err)
	assert.Equal(t, Result{Processed: 1, Updated: 0, Conflicts: 1}, result)
	assert.Empty(t, store.updates)
}

func TestRecategorize_SystemCategoriesDoNotMatch(t *testing.T) {
	cats := systemCats()
	// Poison the non-matchable system categories with a catch-all keyword;
	// they still must not participate.
	cats[0].Keywords = []string{"TIM"}
	cats[1].Keywords = []string{"TIM"}

	store := newMockStore(stored("t1", "TIM HORTONS #123", "uncat"))
	result, err := Recategorize(store, cats, ModeUncategorized)
	require.NoError(t, err)
	assert.Equal(t, Result{Processed: 1, Updated: 1}, result)
	assert.Equal(t, "coffee", store.updates["t1"])
}

func TestRecategorize_EmptyCategoryIDInScope(t *testing.T) {
	// Rows that never got a category (live conflicts) are fair game in
	// uncategorized mode.
	store := newMockStore(stored("t1", "TIM HORTONS #123", ""))
	result, err := Recategorize(store, systemCats(), ModeUncategorized)
	require.NoError(t, err)
	assert.Equal(t, Result{Processed: 1, Updated: 1}, result)
}

func TestRecategorize_StoreWriteFailure(t *testing.T) {
	store := newMockStore(stored("t1", "TIM HORTONS #123", "uncat"))
	store.failOn = "t1"

	_, err := Recategorize(store, systemCats(), ModeUncategorized)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "updating transaction t1")
}
