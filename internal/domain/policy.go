package domain

import (
	"sort"
	"strings"
)

// Capability names an action on a resource, e.g. "tickets:crear".
type Capability string

const (
	CapClientsRead        Capability = "clientes:leer"
	CapClientsWrite       Capability = "clientes:escribir"
	CapClientsDelete      Capability = "clientes:eliminar"
	CapVehiclesRead       Capability = "vehiculos:leer"
	CapVehiclesWrite      Capability = "vehiculos:escribir"
	CapVehiclesDelete     Capability = "vehiculos:eliminar"
	CapTicketsRead        Capability = "tickets:leer"
	CapTicketsCreate      Capability = "tickets:crear"
	CapTicketsUpdate      Capability = "tickets:actualizar"
	CapPaymentsRead       Capability = "pagos:leer"
	CapPaymentsCreate     Capability = "pagos:crear"
	CapPaymentsReport     Capability = "pagos:reporte"
	CapSpacesRead         Capability = "espacios:leer"
	CapSpacesManage       Capability = "espacios:gestionar"
	CapTariffsRead        Capability = "tarifas:leer"
	CapTariffsManage      Capability = "tarifas:gestionar"
	CapPaymentTypesRead   Capability = "tipospago:leer"
	CapPaymentTypesManage Capability = "tipospago:gestionar"
	CapFinesRead          Capability = "multas:leer"
	CapFinesCreate        Capability = "multas:crear"
	CapFinesManage        Capability = "multas:gestionar"
	CapReservationsRead   Capability = "reservas:leer"
	CapReservationsCreate Capability = "reservas:crear"
	CapReservationsManage Capability = "reservas:gestionar"
	CapEmployeesManage    Capability = "empleados:gestionar"
	CapShiftsManage       Capability = "turnos:gestionar"
	CapRolesManage        Capability = "roles:gestionar"
	CapUsersManage        Capability = "usuarios:gestionar"
	CapAccessLogManage    Capability = "historial:gestionar"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLEADO"
	RoleUser     = "USUARIO"
)

// SystemRoles cannot be deleted.
var SystemRoles = []string{RoleAdmin, "ADMINISTRADOR", RoleUser, RoleEmployee}

func IsSystemRole(name string) bool {
	for _, r := range SystemRoles {
		if strings.EqualFold(r, name) {
			return true
		}
	}
	return false
}

var employeeCaps = []Capability{
	CapClientsRead, CapClientsWrite,
	CapVehiclesRead, CapVehiclesWrite,
	CapTicketsRead, CapTicketsCreate, CapTicketsUpdate,
	CapPaymentsRead, CapPaymentsCreate,
	CapSpacesRead, CapTariffsRead, CapPaymentTypesRead,
	CapFinesRead, CapFinesCreate,
	CapReservationsRead,
}

var userCaps = []Capability{
	CapTicketsRead, CapVehiclesRead,
	CapReservationsRead, CapReservationsCreate,
}

// Policy maps role names to the capabilities they grant. A role listed in
// superRoles is granted everything.
type Policy struct {
	superRoles map[string]struct{}
	grants     map[string]map[Capability]struct{}
}

// DefaultPolicy is the facility's role matrix.
func DefaultPolicy() *Policy {
	p := &Policy{
		superRoles: map[string]struct{}{RoleAdmin: {}, "ADMINISTRADOR": {}},
		grants:     map[string]map[Capability]struct{}{},
	}
	p.Grant(RoleEmployee, employeeCaps...)
	p.Grant(RoleUser, userCaps...)
	return p
}

func (p *Policy) Grant(role string, caps ...Capability) {
	role = strings.ToUpper(role)
	set, ok := p.grants[role]
	if !ok {
		set = map[Capability]struct{}{}
		p.grants[role] = set
	}
	for _, c := range caps {
		set[c] = struct{}{}
	}
}

// Allows reports whether the role grants capability c. Role names compare
// case-insensitively.
func (p *Policy) Allows(role string, c Capability) bool {
	role = strings.ToUpper(role)
	if _, ok := p.superRoles[role]; ok {
		return true
	}
	_, ok := p.grants[role][c]
	return ok
}

// Capabilities lists what the role grants, grouped by resource, for display.
func (p *Policy) Capabilities(role string) map[string][]string {
	role = strings.ToUpper(role)
	out := map[string][]string{}
	if _, ok := p.superRoles[role]; ok {
		out["*"] = []string{"*"}
		return out
	}
	for c := range p.grants[role] {
		resource, action, _ := strings.Cut(string(c), ":")
		out[resource] = append(out[resource], action)
	}
	for _, actions := range out {
		sort.Strings(actions)
	}
	return out
}
