package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/enum"
	"github.com/tk-rocha/garcom-api/pkg/pagination"
)

var errTest = errors.New("test failure")

// fakeContextStore is an in-memory ContextStateRepository
type fakeContextStore struct {
	mu     sync.Mutex
	states map[string]*entity.ContextState
}

func newFakeContextStore() *fakeContextStore {
	return &fakeContextStore{states: make(map[string]*entity.ContextState)}
}

func (f *fakeContextStore) Save(ctx context.Context, state *entity.ContextState) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[state.Key] = state
	return nil
}

func (f *fakeContextStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.states, key)
	return nil
}

func (f *fakeContextStore) LoadAll(ctx context.Context) ([]entity.ContextState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	states := make([]entity.ContextState, 0, len(f.states))
	for _, s := range f.states {
		states = append(states, *s)
	}
	return states, nil
}

// fakeSaleRepo is an in-memory SaleRepository. Finalize assigns cupom
// numbers from a local counter and mirrors the net amount into the attached
// ledger when one is set, like the durable implementation does in its
// transaction.
type fakeSaleRepo struct {
	mu        sync.Mutex
	sales     map[int64]*entity.Sale
	nextCupom int64
	failNext  bool
	ledger    *fakeLedgerRepo
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: make(map[int64]*entity.Sale)}
}

func (f *fakeSaleRepo) Finalize(ctx context.Context, sale *entity.Sale) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return errors.New("store unavailable")
	}
	f.nextCupom++
	sale.CupomNumber = f.nextCupom
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	cp := *sale
	f.sales[sale.CupomNumber] = &cp
	if f.ledger != nil {
		date := entity.LedgerDate(sale.SaleDate)
		f.ledger.totals[date] = f.ledger.totals[date].Add(sale.NetAmount)
	}
	return nil
}

func (f *fakeSaleRepo) GetByCupom(ctx context.Context, cupomNumber int64) (*entity.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sale, ok := f.sales[cupomNumber]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (f *fakeSaleRepo) UpdateStatus(ctx context.Context, cupomNumber int64, status enum.SaleStatus, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sale, ok := f.sales[cupomNumber]
	if !ok {
		return errors.New("sale not found")
	}
	sale.Status = status
	sale.CancelReason = &reason
	return nil
}

func (f *fakeSaleRepo) ListByDate(ctx context.Context, date string, params *pagination.PaginationParams) ([]entity.Sale, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sales := make([]entity.Sale, 0)
	for _, s := range f.sales {
		if entity.LedgerDate(s.SaleDate) == date {
			sales = append(sales, *s)
		}
	}
	return sales, int64(len(sales)), nil
}

func (f *fakeSaleRepo) SumNetByDate(ctx context.Context, date string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := decimal.Zero
	for _, s := range f.sales {
		if s.Status != enum.SaleStatusCancelled && entity.LedgerDate(s.SaleDate) == date {
			sum = sum.Add(s.NetAmount)
		}
	}
	return sum, nil
}

// fakeLedgerRepo is an in-memory LedgerRepository
type fakeLedgerRepo struct {
	mu      sync.Mutex
	totals  map[string]decimal.Decimal
	failGet bool
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{totals: make(map[string]decimal.Decimal)}
}

func (f *fakeLedgerRepo) Get(ctx context.Context, date string) (*entity.DailyLedger, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, errTest
	}
	total, ok := f.totals[date]
	if !ok {
		return nil, nil
	}
	return &entity.DailyLedger{Date: date, Total: total}, nil
}

func (f *fakeLedgerRepo) Upsert(ctx context.Context, date string, total decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.totals[date] = total
	return nil
}

func (f *fakeLedgerRepo) total(date string) decimal.Decimal {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totals[date]
}

// fakeLoyaltyRepo is an in-memory LoyaltyRepository
type fakeLoyaltyRepo struct {
	mu     sync.Mutex
	points map[string]int64
}

func newFakeLoyaltyRepo() *fakeLoyaltyRepo {
	return &fakeLoyaltyRepo{points: make(map[string]int64)}
}

func (f *fakeLoyaltyRepo) AddPoints(ctx context.Context, cpf string, points int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.points[cpf] += points
	return nil
}

func (f *fakeLoyaltyRepo) Get(ctx context.Context, cpf string) (*entity.LoyaltyAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &entity.LoyaltyAccount{CPF: cpf, Points: f.points[cpf]}, nil
}

// fakeKitchen records published tickets
type fakeKitchen struct {
	mu      sync.Mutex
	tickets []Ticket
	failAll bool
}

func (f *fakeKitchen) PublishTicket(ctx context.Context, ticket Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("broker down")
	}
	f.tickets = append(f.tickets, ticket)
	return nil
}

func (f *fakeKitchen) published() []Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Ticket(nil), f.tickets...)
}

func newTestRegistry() (*RegistryService, *fakeContextStore) {
	store := newFakeContextStore()
	return NewRegistryService(store, decimal.NewFromInt(10)), store
}
