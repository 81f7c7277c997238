package v1

import (
	"errors"
	"fmt"
	"interview-experience-backend/internal/delivery/http/middleware"
	"interview-experience-backend/internal/delivery/http/response"
	"interview-experience-backend/internal/domain"
	"interview-experience-backend/pkg/apperror"
	"interview-experience-backend/pkg/security"
	"interview-experience-backend/pkg/validation"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
	audit  *security.SecurityLogger
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, audit *security.SecurityLogger) {
	handler := &AuthHandler{authUC: authUC, audit: audit}

	public.POST("/register", handler.Register)
	public.POST("/login", handler.Login)

	protected.GET("/protected", handler.Protected)
}

// Register godoc
// @Summary      Register a user
// @Description  Create an account with a unique email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        user  body      domain.RegisterRequest  true  "Credentials"
// @Success      201   {object}  response.MessageBody
// @Failure      400   {object}  response.Response
// @Router       /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.authUC.Register(ctx, &req); err != nil {
		reason := "store_error"
		if errors.Is(err, domain.ErrEmailExists) {
			reason = "email_taken"
		}
		h.audit.LogRegisterRejected(ctx, req.Email, middleware.AuditMeta(c), reason)
		c.Error(err)
		return
	}
	h.audit.LogRegistered(ctx, req.Email, middleware.AuditMeta(c))

	response.Message(c, http.StatusCreated, "User registered successfully")
}

// Login godoc
// @Summary      Log in
// @Description  Exchange email and password for a bearer token valid for one hour
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body      domain.LoginRequest  true  "Credentials"
// @Success      200          {object}  response.TokenBody
// @Failure      400          {object}  response.Response
// @Failure      401          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Failure      500          {object}  response.Response
// @Router       /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(validation.Message(err)))
		return
	}

	ctx := c.Request.Context()
	token, err := h.authUC.Login(ctx, &req)
	if err != nil {
		if reason := loginFailureReason(err); reason != "" {
			h.audit.LogLoginFailed(ctx, req.Email, middleware.AuditMeta(c), reason)
		}
		c.Error(err)
		return
	}
	h.audit.LogLoginSuccess(ctx, req.Email, middleware.AuditMeta(c))

	c.JSON(http.StatusOK, response.TokenBody{Token: token})
}

// Protected godoc
// @Summary      Token check
// @Description  Greets the authenticated caller
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.MessageBody
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /protected [get]
// @Security     BearerAuth
func (h *AuthHandler) Protected(c *gin.Context) {
	email := c.GetString(string(domain.KeyUserEmail))
	response.Message(c, http.StatusOK, fmt.Sprintf("Welcome %s, you have accessed a protected route!", email))
}

// loginFailureReason names caller mistakes; server faults return "".
func loginFailureReason(err error) string {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return ""
	}
	switch appErr.Code {
	case http.StatusNotFound:
		return "unknown_email"
	case http.StatusUnauthorized:
		return "invalid_credentials"
	}
	return ""
}
