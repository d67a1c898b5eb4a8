package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/pkg/apperror"
)

type fakeDrawerRepo struct {
	mu        sync.Mutex
	sessions  []*entity.DrawerSession
	movements []*entity.DrawerMovement
}

func (f *fakeDrawerRepo) Create(ctx context.Context, session *entity.DrawerSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeDrawerRepo) GetOpen(ctx context.Context) (*entity.DrawerSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Open {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeDrawerRepo) Update(ctx context.Context, session *entity.DrawerSession) error {
	return nil
}

func (f *fakeDrawerRepo) AddMovement(ctx context.Context, movement *entity.DrawerMovement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.movements = append(f.movements, movement)
	return nil
}

func (f *fakeDrawerRepo) SumMovements(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := decimal.Zero
	for _, m := range f.movements {
		if m.SessionID == sessionID {
			sum = sum.Add(m.Amount)
		}
	}
	return sum, nil
}

func TestDrawerService_SingleOpenSession(t *testing.T) {
	ctx := context.Background()
	svc := NewDrawerService(&fakeDrawerRepo{})
	operator := entity.Operator{ID: "op-1", Name: "ana"}

	if _, err := svc.Open(ctx, operator, d("100.00")); err != nil {
		t.Fatalf("Open: %v", err)
	}

	_, err := svc.Open(ctx, operator, d("50.00"))
	if apperror.GetAppError(err).Code != 409 {
		t.Errorf("second open: code = %d, want 409", apperror.GetAppError(err).Code)
	}
}

func TestDrawerService_CloseComputesDeviation(t *testing.T) {
	ctx := context.Background()
	repo := &fakeDrawerRepo{}
	svc := NewDrawerService(repo)

	session, err := svc.Open(ctx, entity.Operator{ID: "op-1"}, d("100.00"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// +80 cash sale, -30 payout.
	if err := svc.RecordSaleCash(ctx, uuid.New(), d("80.00")); err != nil {
		t.Fatalf("RecordSaleCash: %v", err)
	}
	if err := svc.RecordManual(ctx, "payout", d("30.00"), "supplier"); err != nil {
		t.Fatalf("RecordManual: %v", err)
	}

	closed, err := svc.Close(ctx, d("148.00"))
	if err != nil {
		t.Fatalf("Close: %v", err)
	}

	if closed.ExpectedAmount.StringFixed(2) != "150.00" {
		t.Errorf("ExpectedAmount = %s, want 150.00", closed.ExpectedAmount.StringFixed(2))
	}
	if closed.Deviation.StringFixed(2) != "-2.00" {
		t.Errorf("Deviation = %s, want -2.00", closed.Deviation.StringFixed(2))
	}
	if closed.Open {
		t.Error("session still open after close")
	}
	if closed.ID != session.ID {
		t.Error("close acted on a different session")
	}
}

func TestDrawerService_MovementsNeedOpenSession(t *testing.T) {
	ctx := context.Background()
	svc := NewDrawerService(&fakeDrawerRepo{})

	// Sale cash and reversals silently no-op with the drawer closed; manual
	// movements are operator actions and must fail loudly.
	if err := svc.RecordSaleCash(ctx, uuid.New(), d("10.00")); err != nil {
		t.Errorf("RecordSaleCash with closed drawer: %v", err)
	}
	if err := svc.RecordReversal(ctx, uuid.New(), d("10.00")); err != nil {
		t.Errorf("RecordReversal with closed drawer: %v", err)
	}
	err := svc.RecordManual(ctx, "deposit", d("10.00"), "")
	if apperror.GetAppError(err).Code != 409 {
		t.Errorf("RecordManual: code = %d, want 409", apperror.GetAppError(err).Code)
	}
}

func TestDrawerService_RecordManualValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewDrawerService(&fakeDrawerRepo{})
	if _, err := svc.Open(ctx, entity.Operator{}, decimal.Zero); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := svc.RecordManual(ctx, "withdrawal", d("10.00"), ""); err == nil {
		t.Error("unknown kind accepted")
	}
	if err := svc.RecordManual(ctx, "payout", decimal.Zero, ""); err == nil {
		t.Error("zero amount accepted")
	}
}
