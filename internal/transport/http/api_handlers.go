package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dmarkelov/supportchat-server/internal/auth"
	"github.com/dmarkelov/supportchat-server/internal/core"
	"github.com/dmarkelov/supportchat-server/internal/store"
)

// APIHandlers provides HTTP handlers for REST API endpoints.
type APIHandlers struct {
	authService  *auth.Service
	store        store.Store
	op           core.Operator
	historyLimit int
	log          *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(authService *auth.Service, st store.Store, op core.Operator, historyLimit int, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{
		authService:  authService,
		store:        st,
		op:           op,
		historyLimit: historyLimit,
		log:          logger,
	}
}

// LoginRequest represents the operator login request body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents the authentication response body.
type AuthResponse struct {
	Token string `json:"token"`
}

// SubscribeRequest represents the newsletter subscription request body.
type SubscribeRequest struct {
	Email      string `json:"email" binding:"required"`
	Newsletter bool   `json:"newsletter"`
}

// SubscribeResponse reports the outcome of a subscription request.
type SubscribeResponse struct {
	Subscribed bool `json:"subscribed"`
}

// RoomsResponse lists the conversations visible to the operator.
type RoomsResponse struct {
	Rooms []string `json:"rooms"`
}

// RecentMessage is one entry of the operator's recent-messages listing.
type RecentMessage struct {
	User string `json:"user"`
	To   string `json:"to"`
	Text string `json:"text"`
}

// MessagesResponse carries recent messages, newest first.
type MessagesResponse struct {
	Messages []RecentMessage `json:"messages"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Login handles operator login.
// POST /api/login
func (h *APIHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid login request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
			return
		}
		h.log.Error().Err(err).Str("username", req.Username).Msg("failed to login operator")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("username", req.Username).Msg("operator logged in")
	c.JSON(http.StatusOK, AuthResponse{Token: token})
}

// Subscribe captures a newsletter email address.
// POST /api/subscribe
func (h *APIHandlers) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid subscribe request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	// Email saved only when the newsletter box was ticked.
	if !req.Newsletter {
		c.JSON(http.StatusOK, SubscribeResponse{Subscribed: false})
		return
	}

	if _, err := h.store.AddSubscriber(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, store.ErrDuplicateSubscriber) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: "already subscribed"})
			return
		}
		h.log.Error().Err(err).Msg("failed to add subscriber")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, SubscribeResponse{Subscribed: true})
}

// AdminRooms lists every user that has messaged the operator.
// GET /api/admin/rooms
func (h *APIHandlers) AdminRooms(c *gin.Context) {
	senders, err := h.store.DistinctSenders(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list rooms")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	// The operator's own outbound replies do not open rooms.
	rooms := make([]string, 0, len(senders))
	for _, sender := range senders {
		if h.op.Is(sender) {
			continue
		}
		rooms = append(rooms, sender)
	}

	c.JSON(http.StatusOK, RoomsResponse{Rooms: rooms})
}

// AdminMessages lists recent messages, newest first.
// GET /api/admin/messages?limit=
func (h *APIHandlers) AdminMessages(c *gin.Context) {
	limit := h.historyLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	messages, err := h.store.RecentMessages(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list recent messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	recent := make([]RecentMessage, 0, len(messages))
	for _, msg := range messages {
		recent = append(recent, RecentMessage{
			User: h.op.DisplayName(msg.Sender),
			To:   msg.Receiver,
			Text: msg.Text,
		})
	}

	c.JSON(http.StatusOK, MessagesResponse{Messages: recent})
}
