// Package httpapi exposes the authentication HTTP API.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adijith/HotelManagement/internal/service"
	"github.com/adijith/HotelManagement/internal/token"
)

// Server wires the auth service into HTTP handlers.
type Server struct {
	auth   service.AuthService
	tokens *token.Manager
	log    *zap.Logger
}

// New constructs a Server with injected dependencies.
func New(auth service.AuthService, tokens *token.Manager, log *zap.Logger) *Server {
	return &Server{auth: auth, tokens: tokens, log: log}
}

// Router builds the gin engine with middleware and routes. The login and
// registration endpoints are the only unauthenticated ones.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(Recovery(s.log), RequestLogger(s.log))

	authGroup := r.Group("/api/auth")
	authGroup.POST("/login", s.handleLogin)
	authGroup.POST("/register", s.handleRegister)
	authGroup.GET("/me", BearerAuth(s.tokens, s.log), s.handleMe)

	return r
}

type loginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6"`
}

// authResponse is the success body for both login and registration.
type authResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	sess, err := s.auth.Login(c.Request.Context(), req.Username, req.Password, c.ClientIP())
	if err != nil {
		s.log.Warn("login failed", zap.String("username", req.Username))
		respondError(c, err)
		return
	}
	s.log.Info("login ok", zap.String("username", sess.Username))
	c.JSON(http.StatusOK, authResponse{
		Token:     sess.Token,
		Username:  sess.Username,
		Email:     sess.Email,
		ExpiresAt: sess.ExpiresAt,
	})
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	sess, err := s.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.log.Warn("registration failed", zap.String("username", req.Username))
		respondError(c, err)
		return
	}
	s.log.Info("registered", zap.String("username", sess.Username))
	c.JSON(http.StatusOK, authResponse{
		Token:     sess.Token,
		Username:  sess.Username,
		Email:     sess.Email,
		ExpiresAt: sess.ExpiresAt,
	})
}

// handleMe returns the identity carried by the validated token. It exists so
// clients can prove a held token still opens the trust boundary.
func (s *Server) handleMe(c *gin.Context) {
	claims, ok := ClaimsFromCtx(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Message: "Access denied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username": claims.Subject,
		"email":    claims.Email,
		"userId":   claims.UserID,
	})
}
