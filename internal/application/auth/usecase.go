package auth

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
	"github.com/jhoicas/bluevelvet-api/internal/application/ports"
	"github.com/jhoicas/bluevelvet-api/internal/domain"
	"github.com/jhoicas/bluevelvet-api/internal/domain/entity"
	"github.com/jhoicas/bluevelvet-api/internal/domain/repository"
	"github.com/jhoicas/bluevelvet-api/pkg/password"
)

// MinPasswordLength longitud mínima (en caracteres) del password al registrarse.
const MinPasswordLength = 8

// AuthUseCase casos de uso de autenticación: registro y login.
// No emite tokens: devuelve identidad y rol; la sesión la emite la capa HTTP.
type AuthUseCase struct {
	userRepo         repository.UserRepository
	tx               ports.TxRunner
	allowAdminSignup bool
	hash             func(string) (string, error)
}

// AuthOptions ajustes del registro.
type AuthOptions struct {
	AllowAdminSignup bool // si es false, el registro con rol admin se rechaza con 403
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tx ports.TxRunner, opts AuthOptions) *AuthUseCase {
	return &AuthUseCase{
		userRepo:         userRepo,
		tx:               tx,
		allowAdminSignup: opts.AllowAdminSignup,
		hash:             password.Hash,
	}
}

// Register crea un usuario habilitado con el password hasheado.
// Orden de validación: rol, email duplicado, longitud mínima, confirmación.
// El hash se calcula fuera de la transacción; dentro sólo se revalida el email y se inserta.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	log.Debug().Str("email", in.Email).Msg("registrando usuario")

	role := in.Role
	if role == "" {
		role = entity.RoleShopper
	}
	if !entity.ValidRole(role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, role)
	}

	if role == entity.RoleAdmin && !uc.allowAdminSignup {
		log.Warn().Str("email", in.Email).Msg("registro admin deshabilitado")
		return nil, fmt.Errorf("%w: registro de administradores deshabilitado", domain.ErrForbidden)
	}

	if err := ensureEmailFree(ctx, uc.userRepo, in.Email); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return nil, fmt.Errorf("%w: el password debe tener al menos %d caracteres", domain.ErrInvalidInput, MinPasswordLength)
	}
	if in.Password != in.ConfirmPassword {
		return nil, fmt.Errorf("%w: los passwords no coinciden", domain.ErrInvalidInput)
	}

	hash, err := uc.hash(in.Password)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return nil, fmt.Errorf("%w: el password supera 72 bytes", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(repos ports.Repos) error {
		// otro registro pudo ganar la carrera mientras se hasheaba
		if err := ensureEmailFree(ctx, repos.Users, in.Email); err != nil {
			return err
		}
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("email", user.Email).Str("role", user.Role).Msg("usuario registrado")
	return &dto.AuthResponse{
		ID:      user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Message: "Usuario registrado correctamente",
	}, nil
}

func ensureEmailFree(ctx context.Context, users repository.UserRepository, email string) error {
	exists, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.Warn().Str("email", email).Msg("email ya registrado")
		return domain.ErrDuplicateEmail
	}
	return nil
}

// Login verifica email/password. Email inexistente y password incorrecto devuelven
// exactamente el mismo error para no revelar qué cuentas existen.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	log.Debug().Str("email", in.Email).Msg("intento de login")

	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		log.Warn().Str("email", in.Email).Msg("login: usuario no encontrado")
		return nil, domain.ErrInvalidCredentials
	}
	if !password.Matches(user.PasswordHash, in.Password) {
		log.Warn().Str("email", in.Email).Msg("login: password inválido")
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, fmt.Errorf("%w: cuenta deshabilitada", domain.ErrForbidden)
	}

	log.Info().Str("email", user.Email).Msg("login exitoso")
	return &dto.AuthResponse{
		ID:      user.ID,
		Email:   user.Email,
		Role:    user.Role,
		Message: fmt.Sprintf("Inicio de sesión exitoso. Bienvenido, %s (%s)", user.Email, user.Role),
	}, nil
}
