package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tk-rocha/garcom-api/internal/domain/entity"
	"github.com/tk-rocha/garcom-api/internal/domain/repository"
	"github.com/tk-rocha/garcom-api/pkg/apperror"
	"github.com/tk-rocha/garcom-api/pkg/money"
)

// DrawerService manages cash drawer sessions. A single session may be open
// at a time; cash movements accumulate against it and the close computes the
// expected amount and deviation.
type DrawerService struct {
	drawerRepo repository.DrawerRepository
}

// NewDrawerService creates a new drawer service
func NewDrawerService(drawerRepo repository.DrawerRepository) *DrawerService {
	return &DrawerService{drawerRepo: drawerRepo}
}

// Open starts a drawer session with an opening float
func (s *DrawerService) Open(ctx context.Context, operator entity.Operator, openingAmount decimal.Decimal) (*entity.DrawerSession, error) {
	if openingAmount.IsNegative() {
		return nil, apperror.NewValidationError("opening amount cannot be negative")
	}
	existing, err := s.drawerRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A drawer session is already open")
	}

	session := &entity.DrawerSession{
		OperatorID:    operator.ID,
		OperatorName:  operator.Name,
		OpeningAmount: money.Round2(openingAmount),
		Open:          true,
		OpenedAt:      time.Now(),
	}
	if err := s.drawerRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Current returns the open session, or nil when the drawer is closed
func (s *DrawerService) Current(ctx context.Context) (*entity.DrawerSession, error) {
	return s.drawerRepo.GetOpen(ctx)
}

// RecordSaleCash records the cash received for a finalized sale (net of the
// change handed back). No-op when the drawer is closed.
func (s *DrawerService) RecordSaleCash(ctx context.Context, saleID uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	session, err := s.drawerRepo.GetOpen(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.drawerRepo.AddMovement(ctx, &entity.DrawerMovement{
		SessionID:   session.ID,
		Kind:        "sale",
		Amount:      money.Round2(amount),
		Description: "cash sale",
		ReferenceID: &saleID,
	})
}

// RecordReversal records the inverse movement for a cancelled sale's cash
func (s *DrawerService) RecordReversal(ctx context.Context, saleID uuid.UUID, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}
	session, err := s.drawerRepo.GetOpen(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return nil
	}
	return s.drawerRepo.AddMovement(ctx, &entity.DrawerMovement{
		SessionID:   session.ID,
		Kind:        "reversal",
		Amount:      money.Round2(amount).Neg(),
		Description: "sale cancelled",
		ReferenceID: &saleID,
	})
}

// RecordManual records an operator-initiated payout or deposit
func (s *DrawerService) RecordManual(ctx context.Context, kind string, amount decimal.Decimal, description string) error {
	if kind != "payout" && kind != "deposit" {
		return apperror.NewValidationError("movement kind must be payout or deposit")
	}
	if !amount.IsPositive() {
		return apperror.NewValidationError("amount must be greater than zero")
	}
	session, err := s.drawerRepo.GetOpen(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return apperror.NewConflictError("No drawer session is open")
	}

	signed := money.Round2(amount)
	if kind == "payout" {
		signed = signed.Neg()
	}
	return s.drawerRepo.AddMovement(ctx, &entity.DrawerMovement{
		SessionID:   session.ID,
		Kind:        kind,
		Amount:      signed,
		Description: description,
	})
}

// Close ends the open session, computing expected amount and deviation from
// the declared count.
func (s *DrawerService) Close(ctx context.Context, declaredAmount decimal.Decimal) (*entity.DrawerSession, error) {
	if declaredAmount.IsNegative() {
		return nil, apperror.NewValidationError("declared amount cannot be negative")
	}
	session, err := s.drawerRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewConflictError("No drawer session is open")
	}

	movements, err := s.drawerRepo.SumMovements(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	expected := money.Round2(session.OpeningAmount.Add(movements))
	declared := money.Round2(declaredAmount)
	deviation := declared.Sub(expected)
	now := time.Now()

	session.ExpectedAmount = &expected
	session.DeclaredAmount = &declared
	session.Deviation = &deviation
	session.Open = false
	session.ClosedAt = &now

	if err := s.drawerRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
