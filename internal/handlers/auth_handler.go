package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "hearth/internal/errors"
	"hearth/internal/middleware"
	"hearth/internal/ratelimit"
	"hearth/internal/services"
	"hearth/internal/session"
)

// AuthHandler handles setup, login and session lifecycle requests.
type AuthHandler struct {
	householdService services.HouseholdServicer
	sessions         *session.Manager
	limiter          *ratelimit.Limiter
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(householdService services.HouseholdServicer, sessions *session.Manager, limiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{householdService: householdService, sessions: sessions, limiter: limiter}
}

// SetupRequest represents the request payload for first-run setup.
type SetupRequest struct {
	PIN string `json:"pin" binding:"required,pin"`
}

// LoginRequest represents the request payload for logging in.
type LoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// setSessionCookie writes the session token as an HTTP-only cookie.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, token, int(h.sessions.TTL().Seconds()), "/", "", false, true)
}

// Setup handles first-run household creation and logs the household in.
func (h *AuthHandler) Setup(c *gin.Context) {
	var req SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN must be 4-6 digits"))
		return
	}

	household, err := h.householdService.SetupHousehold(req.PIN)
	if err != nil {
		respondWithError(c, err)
		return
	}

	token, err := h.sessions.Create(household.ID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{"household": household})
}

// Login verifies the PIN and starts a session. Attempts are rate limited per
// client IP.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "PIN is required"))
		return
	}

	ip := c.ClientIP()
	status, err := h.limiter.Check(ip)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if !status.Allowed {
		c.JSON(apperrors.ErrRateLimited.StatusCode, gin.H{
			"error": gin.H{
				"code":    apperrors.ErrRateLimited.Code,
				"message": apperrors.ErrRateLimited.Message,
			},
			"remaining_attempts": status.RemainingAttempts,
			"lockout_ends_at":    status.LockoutEndsAt,
		})
		return
	}

	household, err := h.householdService.VerifyPIN(req.PIN)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == apperrors.ErrInvalidPIN.Code {
			if recordErr := h.limiter.RecordFailure(ip); recordErr != nil {
				respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, recordErr))
				return
			}
		}
		respondWithError(c, err)
		return
	}

	if err := h.limiter.Clear(ip); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	token, err := h.sessions.Create(household.ID)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	h.setSessionCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"household": household})
}

// Logout clears the session cookie. The token itself stays valid until its
// natural expiry; there is no server-side session store to revoke it in.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// SessionStatus reports the remaining lifetime of the current session and
// whether it is about to expire.
func (h *AuthHandler) SessionStatus(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)

	remaining, ok := h.sessions.TimeRemaining(token)
	if !ok {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"remaining_seconds": remaining,
		"expiring_soon":     h.sessions.ExpiringSoon(token),
	})
}

// Refresh exchanges a valid session for a fresh one with a full lifetime.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookie)

	fresh, err := h.sessions.Refresh(token)
	if err != nil {
		respondWithError(c, apperrors.ErrUnauthorized)
		return
	}
	h.setSessionCookie(c, fresh)

	c.JSON(http.StatusOK, gin.H{"message": "Session refreshed"})
}
