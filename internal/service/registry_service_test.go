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

func TestRoleDelete(t *testing.T) {
	st := newStore()
	ctx := context.Background()
	svc := NewRoleService(fakeRoles{st}, fakeUsers{st}, domain.DefaultPolicy())

	admin, _ := fakeRoles{st}.Create(ctx, &domain.Role{Nombre: domain.RoleAdmin})
	assert.ErrorIs(t, svc.Delete(ctx, admin.ID), domain.ErrSystemRole)

	guard, err := svc.Create(ctx, domain.RoleDTO{Nombre: " guardia "})
	require.NoError(t, err)
	assert.Equal(t, "GUARDIA", guard.Nombre)

	_, err = svc.Create(ctx, domain.RoleDTO{Nombre: "Guardia"})
	assert.ErrorIs(t, err, domain.ErrDuplicateRoleName)

	_, _ = fakeUsers{st}.Create(ctx, &domain.User{Correo: "g@example.com", RolID: guard.ID})
	err = svc.Delete(ctx, guard.ID)
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindInvalidState, derr.Kind)

	assert.ErrorIs(t, svc.Delete(ctx, 999), domain.ErrRoleNotFound)
}

func TestRoleUpdateRefusesRenamingSystemRole(t *testing.T) {
	st := newStore()
	ctx := context.Background()
	svc := NewRoleService(fakeRoles{st}, fakeUsers{st}, domain.DefaultPolicy())
	emp, _ := fakeRoles{st}.Create(ctx, &domain.Role{Nombre: domain.RoleEmployee})

	_, err := svc.Update(ctx, emp.ID, domain.RoleDTO{Nombre: "CAJERO"})
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindForbidden, derr.Kind)

	updated, err := svc.Update(ctx, emp.ID, domain.RoleDTO{Nombre: "empleado", Descripcion: "Operador de turno"})
	require.NoError(t, err)
	assert.Equal(t, "Operador de turno", updated.Descripcion.String)

	_, perms, err := svc.Permissions(ctx, emp.ID)
	require.NoError(t, err)
	assert.Contains(t, perms["tickets"], "crear")
}

func TestVehicleLifecycle(t *testing.T) {
	st := newStore()
	ctx := context.Background()
	vehicles := NewVehicleService(fakeVehicles{st}, fakeClients{st}, fakeTickets{st})
	clients := NewClientService(fakeClients{st}, fakeVehicles{st})

	owner, err := clients.Create(ctx, domain.ClientDTO{Nombre: "Marta"})
	require.NoError(t, err)

	_, err = vehicles.Create(ctx, domain.VehicleDTO{Placa: "p-1", ClienteID: 999})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)

	v, err := vehicles.Create(ctx, domain.VehicleDTO{Placa: " p-1 ", ClienteID: owner.ID})
	require.NoError(t, err)
	assert.Equal(t, "P-1", v.Placa)

	_, err = vehicles.Create(ctx, domain.VehicleDTO{Placa: "P-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicatePlate)

	found, err := vehicles.GetByPlate(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, v.ID, found.ID)

	var derr *domain.Error
	require.ErrorAs(t, clients.Delete(ctx, owner.ID), &derr)
	assert.Equal(t, domain.KindInvalidState, derr.Kind)

	st.tickets[500] = domain.Ticket{ID: 500, VehiculoID: v.ID, Estado: domain.TicketClosed}
	require.ErrorAs(t, vehicles.Delete(ctx, v.ID), &derr)

	delete(st.tickets, 500)
	require.NoError(t, vehicles.Delete(ctx, v.ID))
	require.NoError(t, clients.Delete(ctx, owner.ID))
	assert.ErrorIs(t, vehicles.Delete(ctx, v.ID), domain.ErrVehicleNotFound)
}

func TestAccessLogPurge(t *testing.T) {
	st := newStore()
	ctx := context.Background()
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	svc := NewAccessLogService(fakeAccessLogs{st}, fakeUsers{st}, clock.NewFixed(now))

	_, _ = fakeAccessLogs{st}.Create(ctx, &domain.AccessLog{UsuarioID: 1, Accion: domain.ActionLogin, Fecha: now.AddDate(0, 0, -90)})
	_, _ = fakeAccessLogs{st}.Create(ctx, &domain.AccessLog{UsuarioID: 1, Accion: domain.ActionLogout, Fecha: now.AddDate(0, 0, -10)})

	_, _, err := svc.Purge(ctx, 7)
	var derr *domain.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.KindValidation, derr.Kind)

	n, cutoff, err := svc.Purge(ctx, 60)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, now.AddDate(0, 0, -60), cutoff)
	assert.Len(t, st.accessLogs, 1)
}

func TestAccessLogRecordRequiresUser(t *testing.T) {
	st := newStore()
	ctx := context.Background()
	svc := NewAccessLogService(fakeAccessLogs{st}, fakeUsers{st}, clock.NewFixed(time.Now()))

	_, err := svc.Record(ctx, domain.AccessLogDTO{UsuarioID: 7, Accion: "LOGIN"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u, _ := fakeUsers{st}.Create(ctx, &domain.User{Correo: "a@example.com"})
	entry, err := svc.Record(ctx, domain.AccessLogDTO{UsuarioID: u.ID, Accion: "LOGOUT"})
	require.NoError(t, err)
	assert.Equal(t, domain.ActionLogout, entry.Accion)
}
