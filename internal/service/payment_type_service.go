package service

import (
	"context"
	"errors"
	"strings"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"
)

type PaymentTypeService struct {
	paymentTypes repository.PaymentTypeRepository
	payments     repository.PaymentRepository
}

func NewPaymentTypeService(paymentTypes repository.PaymentTypeRepository, payments repository.PaymentRepository) *PaymentTypeService {
	return &PaymentTypeService{paymentTypes: paymentTypes, payments: payments}
}

func (s *PaymentTypeService) Create(ctx context.Context, dto domain.PaymentTypeDTO) (*domain.PaymentType, error) {
	name, err := s.checkName(ctx, dto.Nombre, 0)
	if err != nil {
		return nil, err
	}
	return s.paymentTypes.Create(ctx, &domain.PaymentType{Nombre: name})
}

func (s *PaymentTypeService) GetByID(ctx context.Context, id int) (*domain.PaymentType, error) {
	pt, err := s.paymentTypes.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrPaymentTypeNotFound)
	}
	return pt, nil
}

func (s *PaymentTypeService) List(ctx context.Context) ([]domain.PaymentType, error) {
	return s.paymentTypes.List(ctx)
}

func (s *PaymentTypeService) Update(ctx context.Context, id int, dto domain.PaymentTypeDTO) (*domain.PaymentType, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	name, err := s.checkName(ctx, dto.Nombre, id)
	if err != nil {
		return nil, err
	}
	pt, err := s.paymentTypes.Update(ctx, &domain.PaymentType{ID: id, Nombre: name})
	if err != nil {
		return nil, notFound(err, domain.ErrPaymentTypeNotFound)
	}
	return pt, nil
}

// Delete refuses while payments were made with the type.
func (s *PaymentTypeService) Delete(ctx context.Context, id int) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.payments.CountByPaymentType(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrInUse("payment type", n, "payments")
	}
	return notFound(s.paymentTypes.Delete(ctx, id), domain.ErrPaymentTypeNotFound)
}

// checkName uppercases the name and rejects one already used by another type.
func (s *PaymentTypeService) checkName(ctx context.Context, raw string, selfID int) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return "", domain.NewValidationError("nombre is required")
	}
	existing, err := s.paymentTypes.FindByName(ctx, name)
	if err == nil && existing.ID != selfID {
		return "", domain.ErrDuplicatePaymentType
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	return name, nil
}
