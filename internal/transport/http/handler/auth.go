package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sharespace/internal/app"
	"sharespace/internal/model"
	"sharespace/internal/transport/http/response"
)

// AuthObserver is told the outcome of every signup and login attempt.
type AuthObserver interface {
	ObserveAuth(action string, err error)
}

type AuthHandler struct {
	authService *app.AuthService
	observer    AuthObserver
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    authUser `json:"user"`
}

type verifyResponse struct {
	Valid bool     `json:"valid"`
	User  authUser `json:"user"`
}

func NewAuthHandler(authService *app.AuthService, observer AuthObserver) *AuthHandler {
	return &AuthHandler{authService: authService, observer: observer}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), app.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Meta:     requestMeta(c),
	})
	h.observe("signup", err)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingFields):
			response.Error(c, http.StatusBadRequest, "Name, email, and password are required")
		case errors.Is(err, app.ErrPasswordTooShort):
			response.Error(c, http.StatusBadRequest, "Password must be at least 6 characters")
		case errors.Is(err, app.ErrPasswordTooLong):
			response.Error(c, http.StatusBadRequest, "Password must be at most 72 bytes")
		case errors.Is(err, app.ErrEmailExists):
			response.Error(c, http.StatusConflict, "Email already registered")
		default:
			response.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Message: "Signup successful",
		Token:   result.Token,
		User:    toAuthUser(result.User),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Meta:     requestMeta(c),
	})
	h.observe("login", err)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrMissingLogin):
			response.Error(c, http.StatusBadRequest, "Email and password are required")
		case errors.Is(err, app.ErrInvalidCredential):
			response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		default:
			response.Internal(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    toAuthUser(result.User),
	})
}

// Verify takes whatever follows the first space of the Authorization header
// as the token; the scheme is not checked here.
func (h *AuthHandler) Verify(c *gin.Context) {
	_, token, _ := strings.Cut(c.GetHeader("Authorization"), " ")

	user, err := h.authService.Verify(c.Request.Context(), strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, app.ErrUnauthorized) {
			response.Error(c, http.StatusUnauthorized, response.MsgUnauthorized)
			return
		}
		response.Internal(c, err)
		return
	}

	c.JSON(http.StatusOK, verifyResponse{Valid: true, User: toAuthUser(user)})
}

func (h *AuthHandler) observe(action string, err error) {
	if h.observer != nil {
		h.observer.ObserveAuth(action, err)
	}
}

func toAuthUser(u *model.User) authUser {
	return authUser{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

func requestMeta(c *gin.Context) app.RequestMeta {
	return app.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// bindOptionalJSON decodes the body into dst, treating an empty body as an
// empty object. It writes a 400 and returns false on malformed JSON.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, http.StatusBadRequest, response.MsgInvalidPayload)
		return false
	}
	return true
}
