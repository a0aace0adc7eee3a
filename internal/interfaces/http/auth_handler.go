package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bluevelvet-api/internal/application/auth"
	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
	"github.com/jhoicas/bluevelvet-api/internal/infrastructure/metrics"
	"github.com/jhoicas/bluevelvet-api/pkg/jwt"
)

// JWTConfig parámetros para emitir tokens en el login.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc  *auth.AuthUseCase
	jwt JWTConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, jwtCfg JWTConfig) *AuthHandler {
	return &AuthHandler{uc: uc, jwt: jwtCfg}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, confirm_password, role"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", errorCode(err)).Inc()
		return writeError(c, err)
	}
	out, err := h.uc.Register(c.UserContext(), in)
	metrics.AuthAttemptsTotal.WithLabelValues("register", errorCode(err)).Inc()
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve identidad, rol y un Bearer token para las rutas protegidas.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", errorCode(err)).Inc()
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	metrics.AuthAttemptsTotal.WithLabelValues("login", errorCode(err)).Inc()
	if err != nil {
		return writeError(c, err)
	}

	token, err := jwt.Generate(h.jwt.Secret, jwt.Identity{
		UserID: out.ID,
		Email:  out.Email,
		Role:   out.Role,
	}, h.jwt.Issuer, h.jwt.ExpMinutes)
	if err != nil {
		return writeError(c, err)
	}
	out.Token = token
	return c.JSON(out)
}

// Index redirige GET /api/auth/ a la página de login.
// @Summary      Redirigir al login
// @Tags         auth
// @Success      302
// @Router       /api/auth/ [get]
func (h *AuthHandler) Index(c *fiber.Ctx) error {
	return c.Redirect("/login", fiber.StatusFound)
}
