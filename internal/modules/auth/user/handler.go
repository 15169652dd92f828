package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/netplus/core/internal/middleware"
	"github.com/netplus/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	auth := rg.Group("/auth")
	auth.POST("/signup", h.signup)
	auth.POST("/login", h.login)
	auth.GET("/me", authMW, h.me)
}

func (h *Handler) signup(c *gin.Context) {
	var dto SignupDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BindError(c, err)
		return
	}
	token, u, err := h.svc.Signup(&dto, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			response.ValidationError(c, &response.FieldError{Field: "email", Reason: "Email already registered"})
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, authResponse{
		Token: token,
		User:  userResponse{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BindError(c, err)
		return
	}
	token, u, err := h.svc.Login(&dto, c.ClientIP(), c.GetHeader("User-Agent"))
	if err != nil {
		if errors.Is(err, errUserNotFound) || errors.Is(err, errWrongPassword) {
			response.HTTPError(c, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		response.InternalError(c, err)
		return
	}
	response.OK(c, authResponse{
		Token: token,
		User:  userResponse{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}

func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, userResponse{ID: u.ID, Name: u.Name, Email: u.Email})
}
