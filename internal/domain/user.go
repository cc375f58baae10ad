package domain

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

type User struct {
	ID            int       `db:"id" json:"id"`
	Nombre        string    `db:"nombre" json:"nombre"`
	Correo        string    `db:"correo" json:"correo"`
	Password      string    `db:"password" json:"-"` // bcrypt hash, never serialized
	RolID         int       `db:"rol_id" json:"rol_id"`
	Rol           string    `db:"rol" json:"rol"`
	Activo        bool      `db:"activo" json:"activo"`
	FechaCreacion time.Time `db:"fecha_creacion" json:"fecha_creacion"`
}

type RegisterUserDTO struct {
	Nombre   string `json:"nombre" binding:"required,max=100"`
	Correo   string `json:"correo" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=100"`
	RolID    int    `json:"rol_id" binding:"omitempty,gt=0"`
}

type LoginUserDTO struct {
	Correo   string `json:"correo" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponseDTO struct {
	Token   string       `json:"token"`
	Usuario UserIdentity `json:"usuario"`
}

// UserIdentity is the authenticated caller as resolved from the store.
type UserIdentity struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
	Rol    string `json:"rol"`
}

func (u *User) Identity() UserIdentity {
	return UserIdentity{ID: u.ID, Nombre: u.Nombre, Correo: u.Correo, Rol: u.Rol}
}

type Role struct {
	ID          int         `db:"id" json:"id"`
	Nombre      string      `db:"nombre" json:"nombre"`
	Descripcion null.String `db:"descripcion" json:"descripcion"`
}

type RoleDetail struct {
	Role
	TotalUsuarios int `db:"total_usuarios" json:"total_usuarios"`
}

type RoleDTO struct {
	Nombre      string `json:"nombre" binding:"required,max=50"`
	Descripcion string `json:"descripcion" binding:"omitempty,max=255"`
}

type AccessAction string

const (
	ActionLogin  AccessAction = "LOGIN"
	ActionLogout AccessAction = "LOGOUT"
)

type AccessLog struct {
	ID        int          `db:"id" json:"id"`
	UsuarioID int          `db:"usuario_id" json:"usuario_id"`
	Accion    AccessAction `db:"accion" json:"accion"`
	Fecha     time.Time    `db:"fecha" json:"fecha"`
}

type AccessLogDetail struct {
	AccessLog
	UsuarioNombre null.String `db:"usuario_nombre" json:"usuario_nombre"`
	UsuarioCorreo null.String `db:"usuario_correo" json:"usuario_correo"`
	RolNombre     null.String `db:"rol_nombre" json:"rol_nombre"`
}

type AccessLogDTO struct {
	UsuarioID int    `json:"usuario_id" binding:"required,gt=0"`
	Accion    string `json:"accion" binding:"required,oneof=LOGIN LOGOUT"`
}

type AccessLogFilterDTO struct {
	UsuarioID   int    `form:"usuario_id" binding:"omitempty,gt=0"`
	Accion      string `form:"accion" binding:"omitempty,oneof=LOGIN LOGOUT"`
	FechaInicio string `form:"fecha_inicio" binding:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin" binding:"omitempty,datetime=2006-01-02"`
	Limit       int    `form:"limit" binding:"omitempty,gt=0,lte=1000"`
}

type AccessPurgeDTO struct {
	Dias int `json:"dias" binding:"required,gte=30"`
}

// MinRetentionDays is the shortest history window a purge may keep.
const MinRetentionDays = 30

type AccessStats struct {
	TotalAccesos   int                `db:"total_accesos" json:"total_accesos"`
	UsuariosUnicos int                `db:"usuarios_unicos" json:"usuarios_unicos"`
	TotalLogins    int                `db:"total_logins" json:"total_logins"`
	TotalLogouts   int                `db:"total_logouts" json:"total_logouts"`
	PorAccion      []AccessActionStat `db:"-" json:"por_accion"`
	PorDia         []AccessDayStat    `db:"-" json:"por_dia"`
}

type AccessActionStat struct {
	Accion   string `db:"accion" json:"accion"`
	Cantidad int    `db:"cantidad" json:"cantidad"`
}

type AccessDayStat struct {
	Fecha    string `db:"fecha" json:"fecha"`
	Cantidad int    `db:"cantidad" json:"cantidad"`
}
