package repository

import (
	"context"
	"errors"
	"time"

	"parqueo_api/internal/domain"
)

var ErrNotFound = errors.New("record not found")
var ErrDuplicateEntry = errors.New("record already exists")

// ErrReferenced is returned when a delete is refused by a foreign key.
var ErrReferenced = errors.New("record is still referenced")

// Transactor runs fn inside one database transaction. Repositories called
// with the ctx passed to fn join that transaction; nested calls reuse it.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	// FindForUpdate locks the ticket row and joins its tariff price.
	FindForUpdate(ctx context.Context, id int) (*domain.TicketForBilling, error)
	FindDetailByID(ctx context.Context, id int) (*domain.TicketDetail, error)
	HasActiveForVehicle(ctx context.Context, vehicleID int) (bool, error)
	Close(ctx context.Context, id int, exitTime time.Time) error
	List(ctx context.Context, filter domain.TicketFilterDTO) ([]domain.TicketDetail, error)
	ListActive(ctx context.Context) ([]domain.TicketDetail, error)
	ListByPlate(ctx context.Context, plate string) ([]domain.TicketDetail, error)
	CountByVehicle(ctx context.Context, vehicleID int) (int, error)
	CountBySpace(ctx context.Context, spaceID int) (int, error)
	CountByTariff(ctx context.Context, tariffID int) (int, error)
	CountByEmployee(ctx context.Context, employeeID int) (int, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	ExistsForTicket(ctx context.Context, ticketID int) (bool, error)
	FindDetailByID(ctx context.Context, id int) (*domain.PaymentDetail, error)
	FindByTicketID(ctx context.Context, ticketID int) (*domain.PaymentDetail, error)
	List(ctx context.Context, filter domain.PaymentFilterDTO) ([]domain.PaymentDetail, error)
	Report(ctx context.Context, filter domain.PaymentFilterDTO) (*domain.PaymentReport, error)
	CountByPaymentType(ctx context.Context, paymentTypeID int) (int, error)
}

type PaymentTypeRepository interface {
	Create(ctx context.Context, pt *domain.PaymentType) (*domain.PaymentType, error)
	FindByID(ctx context.Context, id int) (*domain.PaymentType, error)
	FindByName(ctx context.Context, name string) (*domain.PaymentType, error)
	List(ctx context.Context) ([]domain.PaymentType, error)
	Update(ctx context.Context, pt *domain.PaymentType) (*domain.PaymentType, error)
	Delete(ctx context.Context, id int) error
}

type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByID(ctx context.Context, id int) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id int) error
}

type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	FindByID(ctx context.Context, id int) (*domain.VehicleDetail, error)
	// FindForUpdate locks the vehicle row for the rest of the transaction.
	FindForUpdate(ctx context.Context, id int) (*domain.Vehicle, error)
	FindByPlate(ctx context.Context, plate string) (*domain.VehicleDetail, error)
	List(ctx context.Context) ([]domain.VehicleDetail, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int) error
	CountByClient(ctx context.Context, clientID int) (int, error)
}

type ZoneRepository interface {
	Create(ctx context.Context, zone *domain.Zone) (*domain.Zone, error)
	FindByID(ctx context.Context, id int) (*domain.ZoneDetail, error)
	List(ctx context.Context) ([]domain.ZoneDetail, error)
	Update(ctx context.Context, zone *domain.Zone) (*domain.Zone, error)
	Delete(ctx context.Context, id int) error
}

type SpaceRepository interface {
	Create(ctx context.Context, space *domain.Space) (*domain.Space, error)
	FindByID(ctx context.Context, id int) (*domain.SpaceDetail, error)
	// FindForUpdate locks the space row for the rest of the transaction.
	FindForUpdate(ctx context.Context, id int) (*domain.Space, error)
	FindByCode(ctx context.Context, code string) (*domain.Space, error)
	List(ctx context.Context, filter domain.SpaceFilterDTO) ([]domain.SpaceDetail, error)
	ListAvailable(ctx context.Context, filter domain.SpaceFilterDTO) ([]domain.SpaceDetail, error)
	Update(ctx context.Context, space *domain.Space) (*domain.Space, error)
	SetAvailability(ctx context.Context, id int, available bool) error
	Delete(ctx context.Context, id int) error
	CountByZone(ctx context.Context, zoneID int) (int, error)
}

type TariffRepository interface {
	Create(ctx context.Context, tariff *domain.Tariff) (*domain.Tariff, error)
	FindByID(ctx context.Context, id int) (*domain.Tariff, error)
	List(ctx context.Context) ([]domain.Tariff, error)
	Update(ctx context.Context, tariff *domain.Tariff) (*domain.Tariff, error)
	Delete(ctx context.Context, id int) error
}

type FineRepository interface {
	Create(ctx context.Context, fine *domain.Fine) (*domain.Fine, error)
	FindByID(ctx context.Context, id int) (*domain.FineDetail, error)
	List(ctx context.Context) ([]domain.FineDetail, error)
	ListByTicket(ctx context.Context, ticketID int) ([]domain.FineDetail, error)
	Update(ctx context.Context, fine *domain.Fine) (*domain.Fine, error)
	Delete(ctx context.Context, id int) error
}

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	FindByID(ctx context.Context, id int) (*domain.ReservationDetail, error)
	FindForUpdate(ctx context.Context, id int) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilterDTO) ([]domain.ReservationDetail, error)
	// HasOverlap reports an ACTIVA reservation on the space intersecting
	// [start, end]. excludeID skips the reservation being edited.
	HasOverlap(ctx context.Context, spaceID int, start, end time.Time, excludeID int) (bool, error)
	UpdatePeriod(ctx context.Context, id int, start, end time.Time) error
	SetStatus(ctx context.Context, id int, status domain.ReservationStatus) error
}

type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	FindByID(ctx context.Context, id int) (*domain.RoleDetail, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.RoleDetail, error)
	Update(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Delete(ctx context.Context, id int) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	SetActive(ctx context.Context, id int, active bool) error
	CountByRole(ctx context.Context, roleID int) (int, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	FindByID(ctx context.Context, id int) (*domain.EmployeeDetail, error)
	FindByUserID(ctx context.Context, userID int) (*domain.Employee, error)
	FindByDPI(ctx context.Context, dpi string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.EmployeeDetail, error)
	Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Delete(ctx context.Context, id int) error
	CountByShift(ctx context.Context, shiftID int) (int, error)
}

type ShiftRepository interface {
	Create(ctx context.Context, s *domain.Shift) (*domain.Shift, error)
	FindByID(ctx context.Context, id int) (*domain.Shift, error)
	List(ctx context.Context) ([]domain.Shift, error)
	Update(ctx context.Context, s *domain.Shift) (*domain.Shift, error)
	Delete(ctx context.Context, id int) error
}

type AccessLogRepository interface {
	Create(ctx context.Context, entry *domain.AccessLog) (*domain.AccessLog, error)
	FindByID(ctx context.Context, id int) (*domain.AccessLogDetail, error)
	List(ctx context.Context, filter domain.AccessLogFilterDTO) ([]domain.AccessLogDetail, error)
	Stats(ctx context.Context, filter domain.AccessLogFilterDTO) (*domain.AccessStats, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
