package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"parqueo_api/internal/clock"
	"parqueo_api/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	st      *store
	clk     *clock.Fixed
	svc     *AuthService
	admin   int
	user    int
	empRole int
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	st := newStore()
	ctx := context.Background()
	admin, _ := fakeRoles{st}.Create(ctx, &domain.Role{Nombre: domain.RoleAdmin})
	user, _ := fakeRoles{st}.Create(ctx, &domain.Role{Nombre: domain.RoleUser})
	emp, _ := fakeRoles{st}.Create(ctx, &domain.Role{Nombre: domain.RoleEmployee})

	clk := clock.NewFixed(time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC))
	svc := NewAuthService(fakeUsers{st}, fakeRoles{st}, fakeAccessLogs{st}, domain.DefaultPolicy(), "test-secret", 8*time.Hour, clk)
	svc.hashCost = bcrypt.MinCost

	return &authFixture{st: st, clk: clk, svc: svc, admin: admin.ID, user: user.ID, empRole: emp.ID}
}

func (f *authFixture) register(t *testing.T, email string) *domain.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), domain.RegisterUserDTO{Nombre: "Ana", Correo: email, Password: "secreto1"}, nil)
	require.NoError(t, err)
	return u
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	f := newAuthFixture(t)

	u, err := f.svc.Register(context.Background(), domain.RegisterUserDTO{
		Nombre: " Ana ", Correo: " Ana@Example.com ", Password: "secreto1", RolID: f.admin,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Ana", u.Nombre)
	assert.Equal(t, "ana@example.com", u.Correo)
	assert.Equal(t, f.user, u.RolID)
	assert.Equal(t, domain.RoleUser, u.Rol)
	assert.Empty(t, u.Password)
	assert.NotEqual(t, "secreto1", f.st.users[u.ID].Password)
}

func TestRegisterHonoursRoleForAdminCaller(t *testing.T) {
	f := newAuthFixture(t)
	caller := &domain.UserIdentity{ID: 99, Rol: domain.RoleAdmin}

	u, err := f.svc.Register(context.Background(), domain.RegisterUserDTO{
		Nombre: "Luis", Correo: "luis@example.com", Password: "secreto1", RolID: f.empRole,
	}, caller)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, u.Rol)

	_, err = f.svc.Register(context.Background(), domain.RegisterUserDTO{
		Nombre: "Eva", Correo: "eva@example.com", Password: "secreto1", RolID: 999,
	}, caller)
	assert.ErrorIs(t, err, domain.ErrRoleNotFound)
}

func TestRegisterIgnoresRoleForEmployeeCaller(t *testing.T) {
	f := newAuthFixture(t)
	caller := &domain.UserIdentity{ID: 99, Rol: domain.RoleEmployee}

	u, err := f.svc.Register(context.Background(), domain.RegisterUserDTO{
		Nombre: "Luis", Correo: "luis@example.com", Password: "secreto1", RolID: f.admin,
	}, caller)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Rol)
}

func TestRegisterRejects(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ana@example.com")

	tests := []struct {
		name string
		dto  domain.RegisterUserDTO
		kind domain.ErrorKind
	}{
		{"short password", domain.RegisterUserDTO{Nombre: "A", Correo: "a@example.com", Password: "123"}, domain.KindValidation},
		{"blank name", domain.RegisterUserDTO{Nombre: "  ", Correo: "a@example.com", Password: "secreto1"}, domain.KindValidation},
		{"duplicate email", domain.RegisterUserDTO{Nombre: "A", Correo: "ANA@example.com", Password: "secreto1"}, domain.KindConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tt.dto, nil)
			var derr *domain.Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tt.kind, derr.Kind)
		})
	}
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	u := f.register(t, "ana@example.com")
	ctx := context.Background()

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.Login(ctx, domain.LoginUserDTO{Correo: "ana@example.com", Password: "nope"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.svc.Login(ctx, domain.LoginUserDTO{Correo: "x@example.com", Password: "secreto1"})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("success records access", func(t *testing.T) {
		resp, err := f.svc.Login(ctx, domain.LoginUserDTO{Correo: "ANA@example.com", Password: "secreto1"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, u.ID, resp.Usuario.ID)
		assert.Equal(t, domain.RoleUser, resp.Usuario.Rol)

		claims, err := f.svc.ValidateToken(resp.Token)
		require.NoError(t, err)
		sub, _ := claims.GetSubject()
		assert.Equal(t, strconv.Itoa(u.ID), sub)
		require.Len(t, f.st.accessLogs, 1)
		for _, e := range f.st.accessLogs {
			assert.Equal(t, domain.ActionLogin, e.Accion)
		}
	})

	t.Run("inactive user", func(t *testing.T) {
		require.NoError(t, fakeUsers{f.st}.SetActive(ctx, u.ID, false))
		_, err := f.svc.Login(ctx, domain.LoginUserDTO{Correo: "ana@example.com", Password: "secreto1"})
		assert.ErrorIs(t, err, domain.ErrUserInactive)
	})
}

func TestValidateToken(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "ana@example.com")
	resp, err := f.svc.Login(context.Background(), domain.LoginUserDTO{Correo: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)

	t.Run("tampered", func(t *testing.T) {
		_, err := f.svc.ValidateToken(resp.Token + "x")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("other secret", func(t *testing.T) {
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": "1", "exp": f.clk.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte("another-secret"))
		require.NoError(t, err)
		_, err = f.svc.ValidateToken(forged)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("expired", func(t *testing.T) {
		f.clk.Advance(9 * time.Hour)
		_, err := f.svc.ValidateToken(resp.Token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})
}

func TestResolveIdentityUsesStoredRole(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	u := f.register(t, "ana@example.com")
	resp, err := f.svc.Login(ctx, domain.LoginUserDTO{Correo: "ana@example.com", Password: "secreto1"})
	require.NoError(t, err)

	stored := f.st.users[u.ID]
	stored.RolID = f.admin
	f.st.users[u.ID] = stored

	identity, err := f.svc.ResolveIdentity(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, identity.Rol)

	require.NoError(t, fakeUsers{f.st}.SetActive(ctx, u.ID, false))
	_, err = f.svc.ResolveIdentity(ctx, resp.Token)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.EnsureAdmin(ctx, "admin@parqueo.local", "admin123"))
	require.NoError(t, f.svc.EnsureAdmin(ctx, "admin@parqueo.local", "admin123"))
	require.Len(t, f.st.users, 1)

	resp, err := f.svc.Login(ctx, domain.LoginUserDTO{Correo: "admin@parqueo.local", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, resp.Usuario.Rol)

	assert.Error(t, f.svc.EnsureAdmin(ctx, "other@parqueo.local", "123"))
	assert.NoError(t, f.svc.EnsureAdmin(ctx, "", ""))
}
