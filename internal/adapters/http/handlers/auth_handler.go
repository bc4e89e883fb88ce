package handlers

import (
	"net/http"
	"strings"
	"time"

	"myfinbank-admin/internal/adapters/http/middleware"
	"myfinbank-admin/internal/config"
	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/core/services"
	"myfinbank-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles session endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// RegisterRequest represents registration request body
type RegisterRequest struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	FirstName   string `json:"firstName" form:"firstName"`
	LastName    string `json:"lastName" form:"lastName"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
}

// Login handles admin login
// @Summary Admin login
// @Description Authenticate an admin; the token is returned in the body and in the jwt and adminToken cookies
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.authService.Login(c.UserContext(), &services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindAuthFailure {
			return response.Fail(c, fiber.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		}
		return writeError(c, err)
	}

	h.setSessionCookies(c, result.Token)

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Login successful",
		"token":       result.Token,
		"redirectUrl": result.RedirectURL,
		"expiresIn":   result.ExpiresIn,
		"data":        result.Admin,
	})
}

// Logout handles admin logout
// @Summary Admin logout
// @Description Expire the session cookies
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookies(c)
	middleware.SetNoCache(c)

	return c.JSON(fiber.Map{
		"success":     true,
		"message":     "Logout successful",
		"redirectUrl": h.cfg.Auth.LoginPath,
	})
}

// ValidateSession reports whether the session cookie holds a valid token
// @Summary Validate session
// @Description Check the jwt/adminToken cookie without side effects
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /validate-session [get]
func (h *AuthHandler) ValidateSession(c *fiber.Ctx) error {
	middleware.SetNoCache(c)

	token, ok := middleware.ExtractCookieToken(c)
	if ok {
		if subject, valid := h.authService.Probe(token); valid {
			return c.JSON(fiber.Map{
				"valid":    true,
				"username": subject,
			})
		}
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"valid":   false,
		"message": "No valid token found",
	})
}

// Register handles admin registration
// @Summary Register admin
// @Description Create a new active admin account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RegisterRequest true "Registration data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	admin, err := h.authService.Register(c.UserContext(), &services.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return writeError(c, err)
	}

	return response.Created(c, "Admin registered successfully", admin)
}

// setSessionCookies writes the same token under both cookie aliases
func (h *AuthHandler) setSessionCookies(c *fiber.Ctx, token string) {
	maxAge := int(h.cfg.TokenTTL().Seconds())

	for _, name := range []string{middleware.CookieJWT, middleware.CookieAdminToken} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    token,
			Path:     "/",
			MaxAge:   maxAge,
			Secure:   h.cfg.Cookie.Secure,
			HTTPOnly: true,
			SameSite: h.cfg.Cookie.SameSite,
			Domain:   h.cfg.Cookie.Domain,
		})
	}
}

// clearSessionCookies expires both aliases and the legacy session id.
// fasthttp omits Max-Age unless it is positive, so the header is rendered
// by net/http, which writes Max-Age=0 for a negative MaxAge.
func (h *AuthHandler) clearSessionCookies(c *fiber.Ctx) {
	for _, name := range []string{middleware.CookieJWT, middleware.CookieAdminToken, middleware.CookieSessionID} {
		cookie := &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			Secure:   h.cfg.Cookie.Secure,
			HttpOnly: true,
			SameSite: sameSite(h.cfg.Cookie.SameSite),
			Domain:   h.cfg.Cookie.Domain,
		}
		c.Response().Header.Add(fiber.HeaderSetCookie, cookie.String())
	}
}

func sameSite(mode string) http.SameSite {
	switch strings.ToLower(mode) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	default:
		return http.SameSiteDefaultMode
	}
}
