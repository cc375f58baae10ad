package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"parqueo_api/internal/api/middleware"
	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/guregu/null.v4"
)

func init() {
	gin.SetMode(gin.TestMode)
	respond.RegisterValidators()
}

type stubTickets struct {
	entryErr  error
	exitErr   error
	gotDTO    domain.TicketEntryDTO
	gotActing int
	gotPlate  string
	ticket    *domain.TicketDetail
}

func (s *stubTickets) RegisterEntry(_ context.Context, dto domain.TicketEntryDTO, acting int) (*domain.TicketDetail, error) {
	s.gotDTO, s.gotActing = dto, acting
	if s.entryErr != nil {
		return nil, s.entryErr
	}
	return s.ticket, nil
}

func (s *stubTickets) RegisterExit(_ context.Context, _ int) (*domain.TicketDetail, error) {
	if s.exitErr != nil {
		return nil, s.exitErr
	}
	return s.ticket, nil
}

func (s *stubTickets) GetByID(_ context.Context, _ int) (*domain.TicketDetail, error) {
	return s.ticket, nil
}

func (s *stubTickets) List(_ context.Context, _ domain.TicketFilterDTO) ([]domain.TicketDetail, error) {
	return []domain.TicketDetail{*s.ticket}, nil
}

func (s *stubTickets) ListActive(_ context.Context) ([]domain.TicketDetail, error) {
	return nil, nil
}

func (s *stubTickets) ListByPlate(_ context.Context, plate string) ([]domain.TicketDetail, error) {
	s.gotPlate = plate
	return []domain.TicketDetail{}, nil
}

type stubPayments struct {
	err     error
	receipt *domain.PaymentReceipt
	called  bool
	gotDTO  domain.PaymentDTO
}

func (s *stubPayments) RegisterPayment(_ context.Context, dto domain.PaymentDTO) (*domain.PaymentReceipt, error) {
	s.called = true
	s.gotDTO = dto
	return s.receipt, s.err
}

func (s *stubPayments) GetByID(_ context.Context, _ int) (*domain.PaymentDetail, error) {
	return nil, domain.ErrPaymentNotFound
}

func (s *stubPayments) GetByTicket(_ context.Context, _ int) (*domain.PaymentDetail, error) {
	return s.receipt.Payment, nil
}

func (s *stubPayments) List(_ context.Context, _ domain.PaymentFilterDTO) ([]domain.PaymentDetail, domain.Amount, error) {
	return []domain.PaymentDetail{*s.receipt.Payment}, domain.AmountFromString("30"), nil
}

func (s *stubPayments) Report(_ context.Context, _ domain.PaymentFilterDTO) (*domain.PaymentReport, error) {
	return &domain.PaymentReport{}, nil
}

var entry = time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

func closedTicket() *domain.TicketDetail {
	charge := domain.ComputeCharge(entry, entry.Add(125*time.Minute), domain.AmountFromString("10.00"))
	return &domain.TicketDetail{
		Ticket: domain.Ticket{
			ID: 7, VehiculoID: 1, EspacioID: 2, TarifaID: 3,
			HoraEntrada: entry,
			HoraSalida:  null.TimeFrom(entry.Add(125 * time.Minute)),
			Estado:      domain.TicketClosed,
		},
		Placa:      null.StringFrom("P123ABC"),
		PrecioHora: domain.AmountFromString("10.00"),
		Charge:     &charge,
	}
}

// withIdentity stands in for the auth middleware.
func withIdentity(id int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, &domain.UserIdentity{ID: id, Rol: domain.RoleEmployee})
		c.Next()
	}
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func ticketRouter(svc TicketService) *gin.Engine {
	h := NewTicketHandler(svc)
	r := gin.New()
	g := r.Group("/api/tickets", withIdentity(42))
	g.POST("/entrada", h.RegisterEntry)
	g.PUT("/:id/salida", h.RegisterExit)
	g.GET("/vehiculo/:placa", h.ListByPlate)
	g.GET("", h.List)
	return r
}

func TestRegisterEntryHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubTickets{ticket: &domain.TicketDetail{Ticket: domain.Ticket{ID: 1, Estado: domain.TicketActive}}}
		rec := serve(ticketRouter(svc), http.MethodPost, "/api/tickets/entrada", `{"vehiculo_id":1,"espacio_id":2,"tarifa_id":3}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 42, svc.gotActing)
		assert.Equal(t, domain.TicketEntryDTO{VehiculoID: 1, EspacioID: 2, TarifaID: 3}, svc.gotDTO)

		var body struct {
			Mensaje string `json:"mensaje"`
			Ticket  struct {
				ID         int     `json:"id"`
				Estado     string  `json:"estado"`
				HoraSalida *string `json:"hora_salida"`
			} `json:"ticket"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body.Mensaje)
		assert.Equal(t, "ACTIVO", body.Ticket.Estado)
		assert.Nil(t, body.Ticket.HoraSalida)
	})

	tests := []struct {
		name   string
		body   string
		err    error
		status int
		class  string
	}{
		{"missing field", `{"vehiculo_id":1,"espacio_id":2}`, nil, http.StatusBadRequest, respond.ClassValidation},
		{"negative id", `{"vehiculo_id":-1,"espacio_id":2,"tarifa_id":3}`, nil, http.StatusBadRequest, respond.ClassValidation},
		{"vehicle not found", `{"vehiculo_id":1,"espacio_id":2,"tarifa_id":3}`, domain.ErrVehicleNotFound, http.StatusNotFound, respond.ClassNotFound},
		{"space unavailable", `{"vehiculo_id":1,"espacio_id":2,"tarifa_id":3}`, domain.ErrSpaceUnavailable, http.StatusBadRequest, respond.ClassConflict},
		{"duplicate active", `{"vehiculo_id":1,"espacio_id":2,"tarifa_id":3}`, domain.ErrDuplicateActiveTicket, http.StatusBadRequest, respond.ClassConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(ticketRouter(&stubTickets{entryErr: tt.err}), http.MethodPost, "/api/tickets/entrada", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var body respond.ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.class, body.Error)
			assert.NotEmpty(t, body.Mensaje)
		})
	}
}

func TestRegisterExitHandler(t *testing.T) {
	rec := serve(ticketRouter(&stubTickets{ticket: closedTicket()}), http.MethodPut, "/api/tickets/7/salida", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Ticket map[string]any `json:"ticket"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.EqualValues(t, 125, body.Ticket["minutos_totales"])
	assert.EqualValues(t, 3, body.Ticket["horas_cobrar"])
	assert.Equal(t, "30.00", body.Ticket["monto_total"])
	assert.Equal(t, "CERRADO", body.Ticket["estado"])

	rec = serve(ticketRouter(&stubTickets{exitErr: domain.ErrTicketAlreadyClosed}), http.MethodPut, "/api/tickets/7/salida", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(ticketRouter(&stubTickets{}), http.MethodPut, "/api/tickets/abc/salida", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTicketListing(t *testing.T) {
	svc := &stubTickets{ticket: closedTicket()}
	r := ticketRouter(svc)

	rec := serve(r, http.MethodGet, "/api/tickets/vehiculo/p123abc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "P123ABC", svc.gotPlate)
	assert.JSONEq(t, `{"total":0,"placa":"P123ABC","tickets":[]}`, rec.Body.String())

	rec = serve(r, http.MethodGet, "/api/tickets?estado=ABIERTO", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(r, http.MethodGet, "/api/tickets?estado=CERRADO&fecha_inicio=2024-05-01", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func paymentRouter(svc PaymentService) *gin.Engine {
	h := NewPaymentHandler(svc)
	r := gin.New()
	r.POST("/api/pagos", h.RegisterPayment)
	r.GET("/api/pagos", h.List)
	r.GET("/api/pagos/:id", h.GetByID)
	return r
}

func TestRegisterPaymentHandler(t *testing.T) {
	receipt := &domain.PaymentReceipt{
		Payment: &domain.PaymentDetail{Payment: domain.Payment{
			ID: 1, TicketID: 7, TipoPagoID: 1, Monto: domain.AmountFromString("50.00"), FechaPago: entry,
		}},
		Expected: domain.AmountFromString("30.00"),
		Change:   domain.AmountFromString("20.00"),
	}

	rec := serve(paymentRouter(&stubPayments{receipt: receipt}), http.MethodPost, "/api/pagos", `{"ticket_id":7,"tipo_pago_id":1,"monto":50}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Pago          map[string]any `json:"pago"`
		MontoEsperado string         `json:"monto_esperado"`
		Cambio        string         `json:"cambio"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "30.00", body.MontoEsperado)
	assert.Equal(t, "20.00", body.Cambio)
	assert.Equal(t, "50.00", body.Pago["monto"])

	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"zero amount", `{"ticket_id":7,"tipo_pago_id":1,"monto":0}`, nil, http.StatusBadRequest},
		{"ticket not closed", `{"ticket_id":7,"tipo_pago_id":1,"monto":5}`, domain.ErrTicketNotClosed, http.StatusBadRequest},
		{"already paid", `{"ticket_id":7,"tipo_pago_id":1,"monto":5}`, domain.ErrPaymentAlreadyRegistered, http.StatusConflict},
		{"unknown payment type", `{"ticket_id":7,"tipo_pago_id":9,"monto":5}`, domain.ErrPaymentTypeNotFound, http.StatusNotFound},
		{"amount above column range", `{"ticket_id":7,"tipo_pago_id":1,"monto":1000000000}`, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(paymentRouter(&stubPayments{err: tt.err}), http.MethodPost, "/api/pagos", tt.body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestRegisterPaymentRejectsNonNumericAmount(t *testing.T) {
	for name, monto := range map[string]string{
		"text":   `"abc"`,
		"bool":   `true`,
		"object": `{}`,
		"array":  `[1]`,
	} {
		t.Run(name, func(t *testing.T) {
			stub := &stubPayments{}
			rec := serve(paymentRouter(stub), http.MethodPost, "/api/pagos", `{"ticket_id":7,"tipo_pago_id":1,"monto":`+monto+`}`)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body struct {
				Error   string `json:"error"`
				Mensaje string `json:"mensaje"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "validation", body.Error)
			assert.Contains(t, body.Mensaje, "monto")
			assert.False(t, stub.called)
		})
	}

	stub := &stubPayments{receipt: &domain.PaymentReceipt{Payment: &domain.PaymentDetail{}}}
	rec := serve(paymentRouter(stub), http.MethodPost, "/api/pagos", `{"ticket_id":7,"tipo_pago_id":1,"monto":"12.5"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, stub.called)
	assert.Equal(t, "12.50", stub.gotDTO.Monto.String())
}

func TestListPaymentsHandler(t *testing.T) {
	receipt := &domain.PaymentReceipt{Payment: &domain.PaymentDetail{Payment: domain.Payment{ID: 1, Monto: domain.AmountFromString("30")}}}
	rec := serve(paymentRouter(&stubPayments{receipt: receipt}), http.MethodGet, "/api/pagos?tipo_pago_id=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total      int    `json:"total"`
		TotalMonto string `json:"total_monto"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	assert.Equal(t, "30.00", body.TotalMonto)

	rec = serve(paymentRouter(&stubPayments{receipt: receipt}), http.MethodGet, "/api/pagos/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
