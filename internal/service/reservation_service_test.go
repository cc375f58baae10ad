package service

import (
	"context"
	"testing"
	"time"

	"parqueo_api/internal/clock"
	"parqueo_api/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReservationService(t *testing.T) (*ReservationService, *store, int, int) {
	t.Helper()
	st := newStore()
	ctx := context.Background()
	c, _ := fakeClients{st}.Create(ctx, &domain.Client{Nombre: "Carlos"})
	sp, _ := fakeSpaces{st}.Create(ctx, &domain.Space{ZonaID: 1, Codigo: "B-01", Disponible: true})
	clk := clock.NewFixed(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	return NewReservationService(&fakeTx{}, fakeReservations{st}, fakeClients{st}, fakeSpaces{st}, clk), st, c.ID, sp.ID
}

func at(hour int) time.Time {
	return time.Date(2024, 5, 2, hour, 0, 0, 0, time.UTC)
}

func TestCreateReservationRejectsOverlap(t *testing.T) {
	svc, st, client, space := newReservationService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.ReservationDTO{ClienteID: client, EspacioID: space, FechaInicio: at(9), FechaFin: at(11)})
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationActive, first.Estado)

	tests := []struct {
		name       string
		start, end int
		wantErr    error
	}{
		{"inside", 9, 10, domain.ErrReservationOverlap},
		{"touching end", 11, 12, domain.ErrReservationOverlap},
		{"straddling start", 8, 10, domain.ErrReservationOverlap},
		{"after", 12, 13, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, domain.ReservationDTO{ClienteID: client, EspacioID: space, FechaInicio: at(tt.start), FechaFin: at(tt.end)})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Len(t, st.reservations, 2)
}

func TestCreateReservationValidation(t *testing.T) {
	svc, _, client, space := newReservationService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.ReservationDTO{ClienteID: client, EspacioID: space, FechaInicio: at(10), FechaFin: at(10)})
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindValidation, derr.Kind)

	_, err = svc.Create(ctx, domain.ReservationDTO{ClienteID: 999, EspacioID: space, FechaInicio: at(9), FechaFin: at(10)})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	_, err = svc.Create(ctx, domain.ReservationDTO{ClienteID: client, EspacioID: 999, FechaInicio: at(9), FechaFin: at(10)})
	assert.ErrorIs(t, err, domain.ErrSpaceNotFound)
}

func TestCancelledReservationFreesPeriod(t *testing.T) {
	svc, _, client, space := newReservationService(t)
	ctx := context.Background()
	dto := domain.ReservationDTO{ClienteID: client, EspacioID: space, FechaInicio: at(9), FechaFin: at(11)}

	first, err := svc.Create(ctx, dto)
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, cancelled.Estado)

	_, err = svc.Cancel(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrReservationNotActive)
	_, err = svc.Finish(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrReservationNotActive)

	_, err = svc.Create(ctx, dto)
	assert.NoError(t, err)
}

func TestRescheduleIgnoresOwnPeriod(t *testing.T) {
	svc, _, client, space := newReservationService(t)
	ctx := context.Background()

	r, err := svc.Create(ctx, domain.ReservationDTO{ClienteID: client, EspacioID: space, FechaInicio: at(9), FechaFin: at(11)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.ReservationDTO{ClienteID: client, EspacioID: space, FechaInicio: at(14), FechaFin: at(16)})
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, r.ID, domain.ReservationUpdateDTO{FechaInicio: at(10), FechaFin: at(12)})
	require.NoError(t, err)
	assert.Equal(t, at(10), moved.FechaInicio)

	_, err = svc.Reschedule(ctx, r.ID, domain.ReservationUpdateDTO{FechaInicio: at(12), FechaFin: at(15)})
	assert.ErrorIs(t, err, domain.ErrReservationOverlap)

	_, err = svc.Reschedule(ctx, 999, domain.ReservationUpdateDTO{FechaInicio: at(12), FechaFin: at(13)})
	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
}
