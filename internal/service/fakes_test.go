// FILE: internal/service/fakes_test.go
package service

import (
	"context"
	"sync"

	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/repository/contract"
	"pixfusion-be/internal/repository/specification"
	"pixfusion-be/internal/repository/unitofwork"
	"pixfusion-be/pkg/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory doubles for the repository layer. They honor the same semantics
// the SQL implementations do: Deduct is conditional on the balance, Add on
// account existence.

type fakeCreditRepo struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*entity.CreditAccount
	txs      []*entity.CreditTransaction
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{accounts: make(map[uuid.UUID]*entity.CreditAccount)}
}

func (r *fakeCreditRepo) FindAccount(_ context.Context, userId uuid.UUID) (*entity.CreditAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.accounts[userId]
	if !ok {
		return nil, nil
	}
	cp := *acct
	return &cp, nil
}

func (r *fakeCreditRepo) Deduct(_ context.Context, userId uuid.UUID, amount int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.accounts[userId]
	if !ok || acct.Balance < amount {
		return false, nil
	}
	acct.Balance -= amount
	return true, nil
}

func (r *fakeCreditRepo) Add(_ context.Context, userId uuid.UUID, amount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.accounts[userId]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	acct.Balance += amount
	return nil
}

func (r *fakeCreditRepo) CreateTransaction(_ context.Context, tx *entity.CreditTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs = append(r.txs, tx)
	return nil
}

func (r *fakeCreditRepo) FindTransactions(_ context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var userId *uuid.UUID
	limit := 0
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.UserOwnedBy:
			id := s.UserID
			userId = &id
		case specification.Pagination:
			limit = s.Limit
		}
	}

	out := make([]*entity.CreditTransaction, 0)
	for i := len(r.txs) - 1; i >= 0; i-- {
		tx := r.txs[i]
		if userId != nil && tx.UserId != *userId {
			continue
		}
		out = append(out, tx)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *fakeCreditRepo) SumAmountByType(_ context.Context, txType entity.TransactionType) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum int64
	for _, tx := range r.txs {
		if tx.Type == txType {
			sum += int64(tx.Amount)
		}
	}
	return sum, nil
}

func (r *fakeCreditRepo) FindUnrefundedDebits(_ context.Context) ([]*entity.CreditTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	refunded := make(map[uuid.UUID]bool)
	for _, tx := range r.txs {
		if tx.Type == entity.TransactionTypeRefund && tx.GenerationId != nil {
			refunded[*tx.GenerationId] = true
		}
	}

	out := make([]*entity.CreditTransaction, 0)
	for _, tx := range r.txs {
		if tx.Type == entity.TransactionTypeGeneration && tx.GenerationId != nil && !refunded[*tx.GenerationId] {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *fakeCreditRepo) transactionsOf(txType entity.TransactionType) []*entity.CreditTransaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.CreditTransaction, 0)
	for _, tx := range r.txs {
		if tx.Type == txType {
			out = append(out, tx)
		}
	}
	return out
}

type fakeGenerationRepo struct {
	mu          sync.Mutex
	generations map[uuid.UUID]*entity.Generation
	deleted     []uuid.UUID
}

func newFakeGenerationRepo() *fakeGenerationRepo {
	return &fakeGenerationRepo{generations: make(map[uuid.UUID]*entity.Generation)}
}

func (r *fakeGenerationRepo) Create(_ context.Context, gen *entity.Generation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *gen
	r.generations[gen.Id] = &cp
	return nil
}

func (r *fakeGenerationRepo) Update(_ context.Context, gen *entity.Generation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *gen
	r.generations[gen.Id] = &cp
	return nil
}

func (r *fakeGenerationRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.Generation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id *uuid.UUID
	var userId *uuid.UUID
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			v := s.ID
			id = &v
		case specification.UserOwnedBy:
			v := s.UserID
			userId = &v
		}
	}

	for _, gen := range r.generations {
		if id != nil && gen.Id != *id {
			continue
		}
		if userId != nil && gen.UserId != *userId {
			continue
		}
		cp := *gen
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeGenerationRepo) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Generation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var userId *uuid.UUID
	for _, spec := range specs {
		if s, ok := spec.(specification.UserOwnedBy); ok {
			v := s.UserID
			userId = &v
		}
	}

	out := make([]*entity.Generation, 0)
	for _, gen := range r.generations {
		if userId != nil && gen.UserId != *userId {
			continue
		}
		cp := *gen
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeGenerationRepo) Count(_ context.Context, specs ...specification.Specification) (int64, error) {
	gens, _ := r.FindAll(context.Background(), specs...)

	var status string
	for _, spec := range specs {
		if s, ok := spec.(specification.ByStatus); ok {
			status = s.Status
		}
	}
	if status == "" {
		return int64(len(gens)), nil
	}

	var n int64
	for _, gen := range gens {
		if string(gen.Status) == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeGenerationRepo) Delete(_ context.Context, id, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen, ok := r.generations[id]; ok && gen.UserId == userId {
		delete(r.generations, id)
		r.deleted = append(r.deleted, id)
	}
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	return r.Create(context.Background(), user)
}

func (r *fakeUserRepo) FindOne(_ context.Context, specs ...specification.Specification) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id *uuid.UUID
	var email string
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			v := s.ID
			id = &v
		case specification.ByEmail:
			email = s.Email
		}
	}

	for _, user := range r.users {
		if id != nil && user.Id != *id {
			continue
		}
		if email != "" && user.Email != email {
			continue
		}
		cp := *user
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, user := range r.users {
		cp := *user
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CreateProvider(_ context.Context, _ *entity.UserProvider) error { return nil }

func (r *fakeUserRepo) FindProvider(_ context.Context, _, _ string) (*entity.UserProvider, error) {
	return nil, nil
}

type fakeBillingRepo struct {
	mu        sync.Mutex
	packages  map[uuid.UUID]*entity.CreditPackage
	purchases map[uuid.UUID]*entity.Purchase
}

func newFakeBillingRepo() *fakeBillingRepo {
	return &fakeBillingRepo{
		packages:  make(map[uuid.UUID]*entity.CreditPackage),
		purchases: make(map[uuid.UUID]*entity.Purchase),
	}
}

func (r *fakeBillingRepo) FindPackages(_ context.Context, _ ...specification.Specification) ([]*entity.CreditPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.CreditPackage, 0, len(r.packages))
	for _, p := range r.packages {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeBillingRepo) FindPackage(_ context.Context, specs ...specification.Specification) (*entity.CreditPackage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, spec := range specs {
		if s, ok := spec.(specification.ByID); ok {
			if p, found := r.packages[s.ID]; found {
				cp := *p
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeBillingRepo) CreatePurchase(_ context.Context, p *entity.Purchase) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.purchases[p.Id] = &cp
	return nil
}

func (r *fakeBillingRepo) UpdatePurchase(_ context.Context, p *entity.Purchase) error {
	return r.CreatePurchase(context.Background(), p)
}

func (r *fakeBillingRepo) FindPurchase(_ context.Context, specs ...specification.Specification) (*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id *uuid.UUID
	var sessionId string
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			v := s.ID
			id = &v
		case specification.FilterBy:
			if s.Field == "stripe_session_id" {
				sessionId, _ = s.Value.(string)
			}
		}
	}

	for _, p := range r.purchases {
		if id != nil && p.Id != *id {
			continue
		}
		if sessionId != "" && p.StripeSessionId != sessionId {
			continue
		}
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeBillingRepo) FindPurchases(_ context.Context, specs ...specification.Specification) ([]*entity.Purchase, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var userId *uuid.UUID
	for _, spec := range specs {
		if s, ok := spec.(specification.UserOwnedBy); ok {
			v := s.UserID
			userId = &v
		}
	}

	out := make([]*entity.Purchase, 0)
	for _, p := range r.purchases {
		if userId != nil && p.UserId != *userId {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

type fakeUnitOfWork struct {
	credits     *fakeCreditRepo
	generations *fakeGenerationRepo
	users       *fakeUserRepo
	billing     *fakeBillingRepo
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                 { return nil }
func (u *fakeUnitOfWork) Rollback() error               { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository             { return u.users }
func (u *fakeUnitOfWork) CreditRepository() contract.CreditRepository         { return u.credits }
func (u *fakeUnitOfWork) GenerationRepository() contract.GenerationRepository { return u.generations }
func (u *fakeUnitOfWork) BillingRepository() contract.BillingRepository       { return u.billing }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{uow: &fakeUnitOfWork{
		credits:     newFakeCreditRepo(),
		generations: newFakeGenerationRepo(),
		users:       newFakeUserRepo(),
		billing:     newFakeBillingRepo(),
	}}
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork { return f.uow }

type fakeArtifactStore struct {
	mu       sync.Mutex
	uploads  int
	deletes  []string
	uploadFn func() (string, error)
}

func (s *fakeArtifactStore) UploadArtifact(_ context.Context, userId uuid.UUID, _ []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads++
	if s.uploadFn != nil {
		return s.uploadFn()
	}
	return "https://cdn.test/generations/" + userId.String() + "/artifact.png", nil
}

func (s *fakeArtifactStore) Delete(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes = append(s.deletes, url)
	return nil
}

func (s *fakeArtifactStore) PublicURL(key string) string { return "https://cdn.test/" + key }

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type fakeMailer struct {
	mu       sync.Mutex
	receipts int
}

func (m *fakeMailer) SendWelcome(string, string, int) error { return nil }

func (m *fakeMailer) SendPurchaseReceipt(string, int, int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts++
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// Provider stubs.

type stubImageProvider struct {
	name  string
	calls int
	fn    func() ([]byte, error)
}

func (p *stubImageProvider) Name() string { return p.name }

func (p *stubImageProvider) GenerateImage(_ context.Context, _, _ string) ([]byte, error) {
	p.calls++
	return p.fn()
}

type stubVideoProvider struct {
	name string
	fn   func() (string, error)
}

func (p *stubVideoProvider) Name() string { return p.name }

func (p *stubVideoProvider) GenerateVideo(_ context.Context, _, _ string) (string, error) {
	return p.fn()
}

type stubTextProvider struct {
	name string
	fn   func(prompt string) (string, error)
}

func (p *stubTextProvider) Name() string { return p.name }

func (p *stubTextProvider) Enhance(_ context.Context, prompt string) (string, error) {
	return p.fn(prompt)
}

type stubEditProvider struct {
	name  string
	calls int
	fn    func() ([]byte, error)
}

func (p *stubEditProvider) Name() string { return p.name }

func (p *stubEditProvider) EditImage(_ context.Context, _ []byte, _, _ string) ([]byte, error) {
	p.calls++
	return p.fn()
}
