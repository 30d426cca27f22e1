// Package memory holds mutex-guarded in-memory repository implementations.
// They back the service tests and local runs without a database; the single
// store mutex gives the same read-modify-write serialization the postgres
// layer gets from row locks.
package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/credistack/lending-ledger/internal/domain"
)

type Store struct {
	mu sync.Mutex

	users        map[string]domain.User
	accounts     map[string]domain.Account
	transactions map[string]domain.Transaction
	loans        map[string]domain.Loan

	// insertion order per collection, for stable listings
	accountOrder     []string
	transactionOrder []string
	loanOrder        []string
}

func NewStore() *Store {
	return &Store{
		users:        make(map[string]domain.User),
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]domain.Transaction),
		loans:        make(map[string]domain.Loan),
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{store: s} }

func (s *Store) Accounts() *AccountRepository { return &AccountRepository{store: s} }

func (s *Store) Transactions() *TransactionRepository { return &TransactionRepository{store: s} }

func (s *Store) Loans() *LoanRepository { return &LoanRepository{store: s} }

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }
