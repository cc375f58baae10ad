package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"parqueo_api/internal/clock"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/logger"
	"parqueo_api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users              repository.UserRepository
	roles              repository.RoleRepository
	accessLogs         repository.AccessLogRepository
	policy             *domain.Policy
	jwtSecret          string
	jwtExpirationHours time.Duration
	clock              clock.Clock
	hashCost           int
}

func NewAuthService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	accessLogs repository.AccessLogRepository,
	policy *domain.Policy,
	jwtSecret string,
	jwtExpHours time.Duration,
	clk clock.Clock,
) *AuthService {
	return &AuthService{
		users:              users,
		roles:              roles,
		accessLogs:         accessLogs,
		policy:             policy,
		jwtSecret:          jwtSecret,
		jwtExpirationHours: jwtExpHours,
		clock:              clk,
		hashCost:           bcrypt.DefaultCost,
	}
}

// Register creates a user. The requested rol_id is honoured only when caller
// may manage users; everyone else is registered as USUARIO.
func (s *AuthService) Register(ctx context.Context, dto domain.RegisterUserDTO, caller *domain.UserIdentity) (*domain.User, error) {
	email := normalizeEmail(dto.Correo)
	if strings.TrimSpace(dto.Nombre) == "" || email == "" || len(dto.Password) < 6 {
		return nil, domain.NewValidationError("nombre, correo and a password of at least 6 characters are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	role, err := s.registrationRole(ctx, dto.RolID, caller)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, &domain.User{
		Nombre:   strings.TrimSpace(dto.Nombre),
		Correo:   email,
		Password: string(hashed),
		RolID:    role.ID,
		Rol:      role.Nombre,
	})
	if err != nil {
		return nil, err
	}
	user.Password = ""
	user.Rol = role.Nombre

	logger.FromContext(ctx).WithFields(logrus.Fields{"usuario_id": user.ID, "rol": role.Nombre}).Info("user registered")
	return user, nil
}

func (s *AuthService) registrationRole(ctx context.Context, requested int, caller *domain.UserIdentity) (*domain.Role, error) {
	if requested > 0 && caller != nil && s.policy.Allows(caller.Rol, domain.CapUsersManage) {
		role, err := s.roles.FindByID(ctx, requested)
		if err != nil {
			return nil, notFound(err, domain.ErrRoleNotFound)
		}
		return &role.Role, nil
	}
	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("load default role %s: %w", domain.RoleUser, err)
	}
	return role, nil
}

func (s *AuthService) Login(ctx context.Context, dto domain.LoginUserDTO) (*domain.AuthResponseDTO, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(dto.Correo))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Activo {
		return nil, domain.ErrUserInactive
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	s.recordAccess(ctx, user.ID, domain.ActionLogin)

	return &domain.AuthResponseDTO{Token: token, Usuario: user.Identity()}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID int) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	user.Password = ""
	return user, nil
}

// Logout records the event only; issued tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID int) error {
	if _, err := s.accessLogs.Create(ctx, &domain.AccessLog{
		UsuarioID: userID,
		Accion:    domain.ActionLogout,
		Fecha:     s.clock.Now(),
	}); err != nil {
		return fmt.Errorf("record logout: %w", err)
	}
	return nil
}

func (s *AuthService) issueToken(user *domain.User) (string, error) {
	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub":    strconv.Itoa(user.ID),
		"nombre": user.Nombre,
		"correo": user.Correo,
		"rol":    user.Rol,
		"iat":    now.Unix(),
		"exp":    now.Add(s.jwtExpirationHours).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks signature and expiry and returns the claims.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.clock.Now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return claims, nil
}

// ResolveIdentity validates the token and loads its subject from the store.
// The role reported is the stored one, never the token's claim.
func (s *AuthService) ResolveIdentity(ctx context.Context, tokenString string) (*domain.UserIdentity, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}
	id, err := strconv.Atoi(sub)
	if err != nil || id <= 0 {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, fmt.Errorf("load token subject: %w", err)
	}
	if !user.Activo {
		logger.FromContext(ctx).WithField("usuario_id", id).Warn("token presented by inactive user")
		return nil, domain.ErrTokenInvalid
	}
	identity := user.Identity()
	return &identity, nil
}

// EnsureAdmin creates an ADMIN account for email if no user owns it yet.
// An empty email disables the bootstrap.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}
	if len(password) < 6 {
		return fmt.Errorf("ADMIN_PASSWORD must be at least 6 characters")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		logger.FromContext(ctx).WithFields(logrus.Fields{"correo": email, "rol": existing.Rol}).Debug("bootstrap admin already present")
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("check bootstrap admin: %w", err)
	}

	role, err := s.roles.FindByName(ctx, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("load role %s: %w", domain.RoleAdmin, err)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user, err := s.users.Create(ctx, &domain.User{
		Nombre:   "Administrador",
		Correo:   email,
		Password: string(hashed),
		RolID:    role.ID,
	})
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	logger.FromContext(ctx).WithField("usuario_id", user.ID).Info("bootstrap admin created")
	return nil
}

func (s *AuthService) recordAccess(ctx context.Context, userID int, action domain.AccessAction) {
	if _, err := s.accessLogs.Create(ctx, &domain.AccessLog{UsuarioID: userID, Accion: action, Fecha: s.clock.Now()}); err != nil {
		logger.FromContext(ctx).WithError(err).WithField("usuario_id", userID).Warn("could not record access")
	}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
