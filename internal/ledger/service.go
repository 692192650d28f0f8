package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jos-ren/Sors-Finance-sub002/internal/id"
	"github.com/jos-ren/Sors-Finance-sub002/internal/model"
)

// CategorySource is the slice of the category service the ledger needs.
type CategorySource interface {
	UncategorizedID() string
}

// Service stores canonical transactions in <root>/ledger/transactions.csv.
// It is the persistence collaborator behind imports, recategorization and
// conflict resolution; single-user, whole-file writes.
type Service struct {
	root string
	cats CategorySource
}

// BatchSummary describes one import batch in the ledger.
type BatchSummary struct {
	ID    string
	Count int
	From  time.Time
	To    time.Time
}

// NewService creates a ledger Service.
func NewService(root string, cats CategorySource) *Service {
	return &Service{root: root, cats: cats}
}

// Transactions reads every stored transaction. A missing ledger file means
// an empty ledger, not an error.
func (s *Service) Transactions() ([]model.Transaction, error) {
	path := s.path()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

// Append stores freshly imported transactions under a new batch ID and
// returns it. Rows without a category that are not conflicts are stamped
// into the system Uncategorized category; conflict rows stay unassigned so
// they surface for resolution.
func (s *Service) Append(txns []model.Transaction, now time.Time) (string, error) {
	if len(txns) == 0 {
		return "", nil
	}

	existing, err := s.Transactions()
	if err != nil {
		return "", err
	}

	batchIDs := make([]string, 0, len(existing))
	for _, txn := range existing {
		batchIDs = append(batchIDs, txn.BatchID)
	}
	batchID := id.NextBatchID(now, batchIDs)

	stamped := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		txn.BatchID = batchID
		if txn.CategoryID == "" && !txn.IsConflict {
			txn.CategoryID = s.cats.UncategorizedID()
		}
		stamped[i] = txn
	}

	if err := os.MkdirAll(filepath.Dir(s.path()), 0o755); err != nil {
		return "", fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(s.path()); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(s.path(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, stamped); err != nil {
		return "", fmt.Errorf("appending transactions: %w", err)
	}

	return batchID, nil
}

// UpdateCategory assigns a category to one stored transaction. The conflict
// flag is left as is: a resolved conflict keeps its provenance.
func (s *Service) UpdateCategory(txnID, categoryID string) error {
	txns, err := s.Transactions()
	if err != nil {
		return err
	}

	found := false
	for i := range txns {
		if txns[i].ID == txnID {
			txns[i].CategoryID = categoryID
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("transaction %q not found", txnID)
	}

	return s.rewrite(txns)
}

// Signatures returns the duplicate signature of every stored transaction.
func (s *Service) Signatures() ([]string, error) {
	txns, err := s.Transactions()
	if err != nil {
		return nil, err
	}
	sigs := make([]string, 0, len(txns))
	for _, txn := range txns {
		sigs = append(sigs, txn.Signature())
	}
	return sigs, nil
}

// DeleteBatch removes every transaction in a batch and returns how many
// rows went with it.
func (s *Service) DeleteBatch(batchID string) (int, error) {
	txns, err := s.Transactions()
	if err != nil {
		return 0, err
	}

	kept := make([]model.Transaction, 0, len(txns))
	removed := 0
	for _, txn := range txns {
		if txn.BatchID == batchID {
			removed++
			continue
		}
		kept = append(kept, txn)
	}
	if removed == 0 {
		return 0, fmt.Errorf("batch %q not found", batchID)
	}

	if err := s.rewrite(kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// Batches summarizes the ledger's import batches, oldest first.
func (s *Service) Batches() ([]BatchSummary, error) {
	txns, err := s.Transactions()
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*BatchSummary)
	for _, txn := range txns {
		b, ok := byID[txn.BatchID]
		if !ok {
			b = &BatchSummary{ID: txn.BatchID, From: txn.Date, To: txn.Date}
			byID[txn.BatchID] = b
		}
		b.Count++
		if txn.Date.Before(b.From) {
			b.From = txn.Date
		}
		if txn.Date.After(b.To) {
			b.To = txn.Date
		}
	}

	batches := make([]BatchSummary, 0, len(byID))
	for _, b := range byID {
		batches = append(batches, *b)
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].ID < batches[j].ID })
	return batches, nil
}

func (s *Service) rewrite(txns []model.Transaction) error {
	f, err := os.Create(s.path())
	if err != nil {
		return fmt.Errorf("rewriting ledger: %w", err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

func (s *Service) path() string {
	return filepath.Join(s.root, "ledger", "transactions.csv")
}
