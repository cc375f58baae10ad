package service

import (
	"context"

	"parqueo_api/internal/clock"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"
	"parqueo_api/internal/repository"

	"github.com/sirupsen/logrus"
)

type PaymentService struct {
	tx           repository.Transactor
	payments     repository.PaymentRepository
	paymentTypes repository.PaymentTypeRepository
	tickets      repository.TicketRepository
	clock        clock.Clock
}

func NewPaymentService(
	tx repository.Transactor,
	payments repository.PaymentRepository,
	paymentTypes repository.PaymentTypeRepository,
	tickets repository.TicketRepository,
	clk clock.Clock,
) *PaymentService {
	return &PaymentService{
		tx:           tx,
		payments:     payments,
		paymentTypes: paymentTypes,
		tickets:      tickets,
		clock:        clk,
	}
}

// RegisterPayment settles a closed ticket. The expected amount is recomputed
// from the ticket's stay and its tariff's current price; any excess over it
// is reported as change. Paying less than expected is accepted.
func (s *PaymentService) RegisterPayment(ctx context.Context, dto domain.PaymentDTO) (*domain.PaymentReceipt, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var receipt *domain.PaymentReceipt
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		ticket, err := s.tickets.FindForUpdate(ctx, dto.TicketID)
		if err != nil {
			return notFound(err, domain.ErrTicketNotFound)
		}
		if ticket.IsActive() {
			return domain.ErrTicketNotClosed
		}

		paid, err := s.payments.ExistsForTicket(ctx, ticket.ID)
		if err != nil {
			return err
		}
		if paid {
			return domain.ErrPaymentAlreadyRegistered
		}

		if _, err := s.paymentTypes.FindByID(ctx, dto.TipoPagoID); err != nil {
			return notFound(err, domain.ErrPaymentTypeNotFound)
		}

		expected := ticket.Charge(s.clock.Now()).Amount

		payment, err := s.payments.Create(ctx, &domain.Payment{
			TicketID:   ticket.ID,
			TipoPagoID: dto.TipoPagoID,
			Monto:      domain.NewAmount(dto.Monto.Decimal),
			FechaPago:  s.clock.Now(),
		})
		if err != nil {
			return err
		}

		detail, err := s.payments.FindDetailByID(ctx, payment.ID)
		if err != nil {
			return err
		}
		receipt = &domain.PaymentReceipt{
			Payment:  detail,
			Expected: expected,
			Change:   domain.Change(payment.Monto, expected),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"pago_id":   receipt.Payment.ID,
		"ticket_id": receipt.Payment.TicketID,
		"monto":     receipt.Payment.Monto.String(),
		"esperado":  receipt.Expected.String(),
	}).Info("payment registered")
	return receipt, nil
}

func (s *PaymentService) GetByID(ctx context.Context, id int) (*domain.PaymentDetail, error) {
	p, err := s.payments.FindDetailByID(ctx, id)
	if err != nil {
		return nil, notFound(err, domain.ErrPaymentNotFound)
	}
	return p, nil
}

func (s *PaymentService) GetByTicket(ctx context.Context, ticketID int) (*domain.PaymentDetail, error) {
	p, err := s.payments.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, notFound(err, domain.ErrPaymentNotFound)
	}
	return p, nil
}

// List returns the matching payments and their total.
func (s *PaymentService) List(ctx context.Context, filter domain.PaymentFilterDTO) ([]domain.PaymentDetail, domain.Amount, error) {
	payments, err := s.payments.List(ctx, filter)
	if err != nil {
		return nil, domain.Amount{}, err
	}
	var total domain.Amount
	for _, p := range payments {
		total = domain.NewAmount(total.Add(p.Monto.Decimal))
	}
	return payments, total, nil
}

func (s *PaymentService) Report(ctx context.Context, filter domain.PaymentFilterDTO) (*domain.PaymentReport, error) {
	return s.payments.Report(ctx, filter)
}
