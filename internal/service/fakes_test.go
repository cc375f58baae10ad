package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"parqueo_api/internal/domain"
	"parqueo_api/internal/repository"
)

// store is an in-memory stand-in for the database shared by the fake
// repositories below. It is not safe for concurrent use.
type store struct {
	nextID int

	vehicles     map[int]domain.Vehicle
	clients      map[int]domain.Client
	spaces       map[int]domain.Space
	tariffs      map[int]domain.Tariff
	tickets      map[int]domain.Ticket
	payments     map[int]domain.Payment
	paymentTypes map[int]domain.PaymentType
	employees    map[int]domain.Employee
	users        map[int]domain.User
	roles        map[int]domain.Role
	accessLogs   map[int]domain.AccessLog
	reservations map[int]domain.Reservation
}

func newStore() *store {
	return &store{
		vehicles:     map[int]domain.Vehicle{},
		clients:      map[int]domain.Client{},
		spaces:       map[int]domain.Space{},
		tariffs:      map[int]domain.Tariff{},
		tickets:      map[int]domain.Ticket{},
		payments:     map[int]domain.Payment{},
		paymentTypes: map[int]domain.PaymentType{},
		employees:    map[int]domain.Employee{},
		users:        map[int]domain.User{},
		roles:        map[int]domain.Role{},
		accessLogs:   map[int]domain.AccessLog{},
		reservations: map[int]domain.Reservation{},
	}
}

func (s *store) id() int {
	s.nextID++
	return s.nextID
}

type fakeTx struct{ calls int }

func (f *fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// --- tickets ---

type fakeTickets struct{ s *store }

func (r fakeTickets) Create(_ context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	for _, other := range r.s.tickets {
		if other.IsActive() && other.VehiculoID == t.VehiculoID {
			return nil, domain.ErrDuplicateActiveTicket
		}
	}
	t.ID = r.s.id()
	r.s.tickets[t.ID] = *t
	return t, nil
}

func (r fakeTickets) FindForUpdate(_ context.Context, id int) (*domain.TicketForBilling, error) {
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.TicketForBilling{Ticket: t, PrecioHora: r.s.tariffs[t.TarifaID].PrecioHora}, nil
}

func (r fakeTickets) FindDetailByID(_ context.Context, id int) (*domain.TicketDetail, error) {
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d := r.detail(t)
	return &d, nil
}

func (r fakeTickets) detail(t domain.Ticket) domain.TicketDetail {
	return domain.TicketDetail{
		Ticket:        t,
		Placa:         domain.NullString(r.s.vehicles[t.VehiculoID].Placa),
		EspacioCodigo: domain.NullString(r.s.spaces[t.EspacioID].Codigo),
		PrecioHora:    r.s.tariffs[t.TarifaID].PrecioHora,
	}
}

func (r fakeTickets) HasActiveForVehicle(_ context.Context, vehicleID int) (bool, error) {
	for _, t := range r.s.tickets {
		if t.IsActive() && t.VehiculoID == vehicleID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeTickets) Close(_ context.Context, id int, exit time.Time) error {
	t, ok := r.s.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	if !t.IsActive() {
		return domain.ErrTicketAlreadyClosed
	}
	t.Estado = domain.TicketClosed
	t.HoraSalida.SetValid(exit)
	r.s.tickets[id] = t
	return nil
}

func (r fakeTickets) list(keep func(domain.Ticket) bool) []domain.TicketDetail {
	out := []domain.TicketDetail{}
	for _, t := range r.s.tickets {
		if keep(t) {
			out = append(out, r.detail(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakeTickets) List(_ context.Context, f domain.TicketFilterDTO) ([]domain.TicketDetail, error) {
	return r.list(func(t domain.Ticket) bool { return f.Estado == "" || string(t.Estado) == f.Estado }), nil
}

func (r fakeTickets) ListActive(_ context.Context) ([]domain.TicketDetail, error) {
	return r.list(func(t domain.Ticket) bool { return t.IsActive() }), nil
}

func (r fakeTickets) ListByPlate(_ context.Context, plate string) ([]domain.TicketDetail, error) {
	return r.list(func(t domain.Ticket) bool { return r.s.vehicles[t.VehiculoID].Placa == plate }), nil
}

func (r fakeTickets) countWhere(keep func(domain.Ticket) bool) int {
	n := 0
	for _, t := range r.s.tickets {
		if keep(t) {
			n++
		}
	}
	return n
}

func (r fakeTickets) CountByVehicle(_ context.Context, id int) (int, error) {
	return r.countWhere(func(t domain.Ticket) bool { return t.VehiculoID == id }), nil
}

func (r fakeTickets) CountBySpace(_ context.Context, id int) (int, error) {
	return r.countWhere(func(t domain.Ticket) bool { return t.EspacioID == id }), nil
}

func (r fakeTickets) CountByTariff(_ context.Context, id int) (int, error) {
	return r.countWhere(func(t domain.Ticket) bool { return t.TarifaID == id }), nil
}

func (r fakeTickets) CountByEmployee(_ context.Context, id int) (int, error) {
	return r.countWhere(func(t domain.Ticket) bool { return t.EmpleadoID.Valid && int(t.EmpleadoID.Int64) == id }), nil
}

// --- vehicles ---

type fakeVehicles struct{ s *store }

func (r fakeVehicles) Create(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	v.ID = r.s.id()
	r.s.vehicles[v.ID] = *v
	return v, nil
}

func (r fakeVehicles) FindByID(_ context.Context, id int) (*domain.VehicleDetail, error) {
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.VehicleDetail{Vehicle: v}, nil
}

func (r fakeVehicles) FindForUpdate(_ context.Context, id int) (*domain.Vehicle, error) {
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &v, nil
}

func (r fakeVehicles) FindByPlate(_ context.Context, plate string) (*domain.VehicleDetail, error) {
	for _, v := range r.s.vehicles {
		if v.Placa == plate {
			return &domain.VehicleDetail{Vehicle: v}, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeVehicles) List(_ context.Context) ([]domain.VehicleDetail, error) {
	out := []domain.VehicleDetail{}
	for _, v := range r.s.vehicles {
		out = append(out, domain.VehicleDetail{Vehicle: v})
	}
	return out, nil
}

func (r fakeVehicles) Update(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	if _, ok := r.s.vehicles[v.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.s.vehicles[v.ID] = *v
	return v, nil
}

func (r fakeVehicles) Delete(_ context.Context, id int) error {
	if _, ok := r.s.vehicles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.vehicles, id)
	return nil
}

func (r fakeVehicles) CountByClient(_ context.Context, clientID int) (int, error) {
	n := 0
	for _, v := range r.s.vehicles {
		if v.ClienteID.Valid && int(v.ClienteID.Int64) == clientID {
			n++
		}
	}
	return n, nil
}

// --- clients ---

type fakeClients struct{ s *store }

func (r fakeClients) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	c.ID = r.s.id()
	r.s.clients[c.ID] = *c
	return c, nil
}

func (r fakeClients) FindByID(_ context.Context, id int) (*domain.Client, error) {
	c, ok := r.s.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r fakeClients) List(_ context.Context) ([]domain.Client, error) {
	out := []domain.Client{}
	for _, c := range r.s.clients {
		out = append(out, c)
	}
	return out, nil
}

func (r fakeClients) Update(_ context.Context, c *domain.Client) (*domain.Client, error) {
	if _, ok := r.s.clients[c.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.s.clients[c.ID] = *c
	return c, nil
}

func (r fakeClients) Delete(_ context.Context, id int) error {
	if _, ok := r.s.clients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.clients, id)
	return nil
}

// --- spaces ---

type fakeSpaces struct{ s *store }

func (r fakeSpaces) Create(_ context.Context, sp *domain.Space) (*domain.Space, error) {
	sp.ID = r.s.id()
	r.s.spaces[sp.ID] = *sp
	return sp, nil
}

func (r fakeSpaces) FindByID(_ context.Context, id int) (*domain.SpaceDetail, error) {
	sp, ok := r.s.spaces[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.SpaceDetail{Space: sp}, nil
}

func (r fakeSpaces) FindForUpdate(_ context.Context, id int) (*domain.Space, error) {
	sp, ok := r.s.spaces[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sp, nil
}

func (r fakeSpaces) FindByCode(_ context.Context, code string) (*domain.Space, error) {
	for _, sp := range r.s.spaces {
		if sp.Codigo == code {
			return &sp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeSpaces) List(_ context.Context, f domain.SpaceFilterDTO) ([]domain.SpaceDetail, error) {
	out := []domain.SpaceDetail{}
	for _, sp := range r.s.spaces {
		if f.ZonaID == 0 || sp.ZonaID == f.ZonaID {
			out = append(out, domain.SpaceDetail{Space: sp})
		}
	}
	return out, nil
}

func (r fakeSpaces) ListAvailable(ctx context.Context, f domain.SpaceFilterDTO) ([]domain.SpaceDetail, error) {
	all, _ := r.List(ctx, f)
	out := []domain.SpaceDetail{}
	for _, sp := range all {
		if sp.Disponible {
			out = append(out, sp)
		}
	}
	return out, nil
}

func (r fakeSpaces) Update(_ context.Context, sp *domain.Space) (*domain.Space, error) {
	if _, ok := r.s.spaces[sp.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.s.spaces[sp.ID] = *sp
	return sp, nil
}

func (r fakeSpaces) SetAvailability(_ context.Context, id int, available bool) error {
	sp, ok := r.s.spaces[id]
	if !ok {
		return repository.ErrNotFound
	}
	sp.Disponible = available
	r.s.spaces[id] = sp
	return nil
}

func (r fakeSpaces) Delete(_ context.Context, id int) error {
	if _, ok := r.s.spaces[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.spaces, id)
	return nil
}

func (r fakeSpaces) CountByZone(_ context.Context, zoneID int) (int, error) {
	n := 0
	for _, sp := range r.s.spaces {
		if sp.ZonaID == zoneID {
			n++
		}
	}
	return n, nil
}

// --- tariffs ---

type fakeTariffs struct{ s *store }

func (r fakeTariffs) Create(_ context.Context, t *domain.Tariff) (*domain.Tariff, error) {
	t.ID = r.s.id()
	r.s.tariffs[t.ID] = *t
	return t, nil
}

func (r fakeTariffs) FindByID(_ context.Context, id int) (*domain.Tariff, error) {
	t, ok := r.s.tariffs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r fakeTariffs) List(_ context.Context) ([]domain.Tariff, error) {
	out := []domain.Tariff{}
	for _, t := range r.s.tariffs {
		out = append(out, t)
	}
	return out, nil
}

func (r fakeTariffs) Update(_ context.Context, t *domain.Tariff) (*domain.Tariff, error) {
	if _, ok := r.s.tariffs[t.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	r.s.tariffs[t.ID] = *t
	return t, nil
}

func (r fakeTariffs) Delete(_ context.Context, id int) error {
	if _, ok := r.s.tariffs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tariffs, id)
	return nil
}

// --- payments ---

type fakePayments struct{ s *store }

func (r fakePayments) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	for _, other := range r.s.payments {
		if other.TicketID == p.TicketID {
			return nil, domain.ErrPaymentAlreadyRegistered
		}
	}
	p.ID = r.s.id()
	r.s.payments[p.ID] = *p
	return p, nil
}

func (r fakePayments) ExistsForTicket(_ context.Context, ticketID int) (bool, error) {
	for _, p := range r.s.payments {
		if p.TicketID == ticketID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakePayments) FindDetailByID(_ context.Context, id int) (*domain.PaymentDetail, error) {
	p, ok := r.s.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.PaymentDetail{Payment: p, TipoPagoNombre: domain.NullString(r.s.paymentTypes[p.TipoPagoID].Nombre)}, nil
}

func (r fakePayments) FindByTicketID(ctx context.Context, ticketID int) (*domain.PaymentDetail, error) {
	for id, p := range r.s.payments {
		if p.TicketID == ticketID {
			return r.FindDetailByID(ctx, id)
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakePayments) List(_ context.Context, f domain.PaymentFilterDTO) ([]domain.PaymentDetail, error) {
	out := []domain.PaymentDetail{}
	for _, p := range r.s.payments {
		if f.TipoPagoID == 0 || p.TipoPagoID == f.TipoPagoID {
			out = append(out, domain.PaymentDetail{Payment: p})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakePayments) Report(_ context.Context, _ domain.PaymentFilterDTO) (*domain.PaymentReport, error) {
	return &domain.PaymentReport{}, nil
}

func (r fakePayments) CountByPaymentType(_ context.Context, id int) (int, error) {
	n := 0
	for _, p := range r.s.payments {
		if p.TipoPagoID == id {
			n++
		}
	}
	return n, nil
}

// --- payment types ---

type fakePaymentTypes struct{ s *store }

func (r fakePaymentTypes) Create(_ context.Context, pt *domain.PaymentType) (*domain.PaymentType, error) {
	pt.ID = r.s.id()
	r.s.paymentTypes[pt.ID] = *pt
	return pt, nil
}

func (r fakePaymentTypes) FindByID(_ context.Context, id int) (*domain.PaymentType, error) {
	pt, ok := r.s.paymentTypes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &pt, nil
}

func (r fakePaymentTypes) FindByName(_ context.Context, name string) (*domain.PaymentType, error) {
	for _, pt := range r.s.paymentTypes {
		if strings.EqualFold(pt.Nombre, name) {
			return &pt, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakePaymentTypes) List(_ context.Context) ([]domain.PaymentType, error) {
	out := []domain.PaymentType{}
	for _, pt := range r.s.paymentTypes {
		out = append(out, pt)
	}
	return out, nil
}

func (r fakePaymentTypes) Update(_ context.Context, pt *domain.PaymentType) (*domain.PaymentType, error) {
	r.s.paymentTypes[pt.ID] = *pt
	return pt, nil
}

func (r fakePaymentTypes) Delete(_ context.Context, id int) error {
	delete(r.s.paymentTypes, id)
	return nil
}

// --- employees ---

type fakeEmployees struct{ s *store }

func (r fakeEmployees) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	e.ID = r.s.id()
	r.s.employees[e.ID] = *e
	return e, nil
}

func (r fakeEmployees) FindByID(_ context.Context, id int) (*domain.EmployeeDetail, error) {
	e, ok := r.s.employees[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.EmployeeDetail{Employee: e}, nil
}

func (r fakeEmployees) FindByUserID(_ context.Context, userID int) (*domain.Employee, error) {
	for _, e := range r.s.employees {
		if e.UsuarioID == userID {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeEmployees) FindByDPI(_ context.Context, dpi string) (*domain.Employee, error) {
	for _, e := range r.s.employees {
		if e.DPI.Valid && e.DPI.String == dpi {
			return &e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeEmployees) List(_ context.Context) ([]domain.EmployeeDetail, error) {
	out := []domain.EmployeeDetail{}
	for _, e := range r.s.employees {
		out = append(out, domain.EmployeeDetail{Employee: e})
	}
	return out, nil
}

func (r fakeEmployees) Update(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	r.s.employees[e.ID] = *e
	return e, nil
}

func (r fakeEmployees) Delete(_ context.Context, id int) error {
	delete(r.s.employees, id)
	return nil
}

func (r fakeEmployees) CountByShift(_ context.Context, shiftID int) (int, error) {
	n := 0
	for _, e := range r.s.employees {
		if e.TurnoID.Valid && int(e.TurnoID.Int64) == shiftID {
			n++
		}
	}
	return n, nil
}

// --- users ---

type fakeUsers struct{ s *store }

func (r fakeUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, other := range r.s.users {
		if other.Correo == u.Correo {
			return nil, domain.ErrEmailAlreadyRegistered
		}
	}
	u.ID = r.s.id()
	u.Activo = true
	u.Rol = r.s.roles[u.RolID].Nombre
	r.s.users[u.ID] = *u
	return u, nil
}

func (r fakeUsers) FindByID(_ context.Context, id int) (*domain.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.Rol = r.s.roles[u.RolID].Nombre
	return &u, nil
}

func (r fakeUsers) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	for id, u := range r.s.users {
		if strings.EqualFold(u.Correo, email) {
			return r.FindByID(ctx, id)
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeUsers) SetActive(_ context.Context, id int, active bool) error {
	u, ok := r.s.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Activo = active
	r.s.users[id] = u
	return nil
}

func (r fakeUsers) CountByRole(_ context.Context, roleID int) (int, error) {
	n := 0
	for _, u := range r.s.users {
		if u.RolID == roleID {
			n++
		}
	}
	return n, nil
}

// --- roles ---

type fakeRoles struct{ s *store }

func (r fakeRoles) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	role.ID = r.s.id()
	r.s.roles[role.ID] = *role
	return role, nil
}

func (r fakeRoles) FindByID(_ context.Context, id int) (*domain.RoleDetail, error) {
	role, ok := r.s.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.RoleDetail{Role: role}, nil
}

func (r fakeRoles) FindByName(_ context.Context, name string) (*domain.Role, error) {
	for _, role := range r.s.roles {
		if strings.EqualFold(role.Nombre, name) {
			return &role, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r fakeRoles) List(_ context.Context) ([]domain.RoleDetail, error) {
	out := []domain.RoleDetail{}
	for _, role := range r.s.roles {
		out = append(out, domain.RoleDetail{Role: role})
	}
	return out, nil
}

func (r fakeRoles) Update(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.s.roles[role.ID] = *role
	return role, nil
}

func (r fakeRoles) Delete(_ context.Context, id int) error {
	delete(r.s.roles, id)
	return nil
}

// --- access logs ---

type fakeAccessLogs struct{ s *store }

func (r fakeAccessLogs) Create(_ context.Context, e *domain.AccessLog) (*domain.AccessLog, error) {
	e.ID = r.s.id()
	r.s.accessLogs[e.ID] = *e
	return e, nil
}

func (r fakeAccessLogs) FindByID(_ context.Context, id int) (*domain.AccessLogDetail, error) {
	e, ok := r.s.accessLogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.AccessLogDetail{AccessLog: e}, nil
}

func (r fakeAccessLogs) List(_ context.Context, f domain.AccessLogFilterDTO) ([]domain.AccessLogDetail, error) {
	out := []domain.AccessLogDetail{}
	for _, e := range r.s.accessLogs {
		if f.UsuarioID == 0 || e.UsuarioID == f.UsuarioID {
			out = append(out, domain.AccessLogDetail{AccessLog: e})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeAccessLogs) Stats(_ context.Context, _ domain.AccessLogFilterDTO) (*domain.AccessStats, error) {
	return &domain.AccessStats{TotalAccesos: len(r.s.accessLogs)}, nil
}

func (r fakeAccessLogs) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, e := range r.s.accessLogs {
		if e.Fecha.Before(cutoff) {
			delete(r.s.accessLogs, id)
			n++
		}
	}
	return n, nil
}

// --- reservations ---

type fakeReservations struct{ s *store }

func (r fakeReservations) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	res.ID = r.s.id()
	r.s.reservations[res.ID] = *res
	return res, nil
}

func (r fakeReservations) FindByID(_ context.Context, id int) (*domain.ReservationDetail, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.ReservationDetail{Reservation: res}, nil
}

func (r fakeReservations) FindForUpdate(_ context.Context, id int) (*domain.Reservation, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &res, nil
}

func (r fakeReservations) List(_ context.Context, f domain.ReservationFilterDTO) ([]domain.ReservationDetail, error) {
	out := []domain.ReservationDetail{}
	for _, res := range r.s.reservations {
		if (f.Estado == "" || string(res.Estado) == f.Estado) && (f.ClienteID == 0 || res.ClienteID == f.ClienteID) {
			out = append(out, domain.ReservationDetail{Reservation: res})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r fakeReservations) HasOverlap(_ context.Context, spaceID int, start, end time.Time, excludeID int) (bool, error) {
	for _, res := range r.s.reservations {
		if res.ID == excludeID || res.EspacioID != spaceID || res.Estado != domain.ReservationActive {
			continue
		}
		if !res.FechaInicio.After(end) && !res.FechaFin.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeReservations) UpdatePeriod(_ context.Context, id int, start, end time.Time) error {
	res := r.s.reservations[id]
	res.FechaInicio, res.FechaFin = start, end
	r.s.reservations[id] = res
	return nil
}

func (r fakeReservations) SetStatus(_ context.Context, id int, status domain.ReservationStatus) error {
	res := r.s.reservations[id]
	res.Estado = status
	r.s.reservations[id] = res
	return nil
}
