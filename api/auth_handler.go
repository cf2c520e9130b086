package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/inkwell-labs/blog-platform-backend/auth"
	"github.com/inkwell-labs/blog-platform-backend/database"
	"github.com/inkwell-labs/blog-platform-backend/errs"
	"github.com/inkwell-labs/blog-platform-backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	tokens    *auth.TokenManager
	userRepo  *database.UserRepo
	revoked   *database.RevokedTokenRepo
}

func newAuthHandler(tokens *auth.TokenManager, userRepo *database.UserRepo, revoked *database.RevokedTokenRepo) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tokens:    tokens,
		userRepo:  userRepo,
		revoked:   revoked,
	}
}

// register creates a new account
// @Summary Register account
// @Description Creates a new user account from email, username and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body registerRequest true "Account data"
// @Success 201 {object} models.User "Created account"
// @Failure 400 {object} ErrorResponse "Bad Request - validation failure or duplicate email/username"
// @Router /register/ [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("register payload"))
			return
		}

		if err := req.Validate(); err != nil {
			h.responder.WriteValidationErrors(w, err)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not hash password"))
			return
		}

		user := models.User{
			Email:        req.Email,
			Username:     req.Username,
			PasswordHash: hash,
			IsActive:     true,
		}
		// Uniqueness is decided by the indexes, not a racy pre-check; the
		// duplicated-key error is traced back to whichever field collided.
		if err := h.userRepo.Add(&user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if taken, tErr := h.userRepo.EmailTaken(req.Email); tErr == nil && taken {
					h.responder.WriteError(w, errs.NewInvalidFieldError("email", "already registered"))
					return
				}
				if taken, tErr := h.userRepo.UsernameTaken(req.Username); tErr == nil && taken {
					h.responder.WriteError(w, errs.NewInvalidFieldError("username", "already taken"))
					return
				}
			}
			h.responder.WriteError(w, wrapDatabaseError("create user", "user", err))
			return
		}

		h.responder.WriteJSONStatus(w, http.StatusCreated, user)
	}
}

// login issues a token pair for valid credentials
// @Summary Login
// @Description Verifies email and password and returns an access/refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} auth.TokenPair "Token pair"
// @Failure 401 {object} ErrorResponse "Unauthorized - bad credentials"
// @Router /login/ [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("login payload"))
			return
		}

		if err := req.Validate(); err != nil {
			h.responder.WriteValidationErrors(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}
		if user == nil || !user.IsActive || !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid credentials"))
			return
		}

		pair, err := h.tokens.IssuePair(user.ID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not issue tokens"))
			return
		}

		h.responder.WriteJSON(w, pair)
	}
}

// refresh rotates a token pair
// @Summary Refresh tokens
// @Description Exchanges a valid refresh token for a new access/refresh pair; the old refresh token is revoked
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body refreshRequest true "Refresh token"
// @Success 200 {object} auth.TokenPair "New token pair"
// @Failure 401 {object} ErrorResponse "Unauthorized - invalid or revoked refresh token"
// @Router /refresh/ [post]
func (h authHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.parseRefresh(w, r)
		if err != nil {
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		// Rotation: the used refresh token is dead from here on.
		if err := h.revoked.Add(&models.RevokedToken{
			JTI:       claims.ID,
			UserID:    userID,
			ExpiresAt: claims.ExpiresAt.Time,
		}); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("revoke token", "token", err))
			return
		}

		pair, err := h.tokens.IssuePair(userID)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not issue tokens"))
			return
		}

		h.responder.WriteJSON(w, pair)
	}
}

// revoke blacklists a refresh token
// @Summary Revoke token
// @Description Blacklists a refresh token so it can no longer be used
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body refreshRequest true "Refresh token"
// @Success 200 {object} map[string]string "Revocation confirmation"
// @Failure 401 {object} ErrorResponse "Unauthorized - invalid refresh token"
// @Router /revoke/ [post]
func (h authHandler) revoke() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.parseRefresh(w, r)
		if err != nil {
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		if err := h.revoked.Add(&models.RevokedToken{
			JTI:       claims.ID,
			UserID:    userID,
			ExpiresAt: claims.ExpiresAt.Time,
		}); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("revoke token", "token", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "token revoked",
		})
	}
}

// parseRefresh decodes the request body, verifies the refresh token and its
// revocation state, and writes the error response itself on failure.
func (h authHandler) parseRefresh(w http.ResponseWriter, r *http.Request) (*auth.Claims, error) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.WriteError(w, errs.Malformed("token payload"))
		return nil, err
	}
	if err := req.Validate(); err != nil {
		h.responder.WriteValidationErrors(w, err)
		return nil, err
	}

	claims, err := h.tokens.Parse(req.Refresh, auth.UseRefresh)
	if err != nil {
		h.responder.WriteError(w, errs.NewInvalidTokenError())
		return nil, err
	}

	revoked, err := h.revoked.IsRevoked(claims.ID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("check revocation", "token", err))
		return nil, err
	}
	if revoked {
		err := errs.NewRevokedTokenError()
		h.responder.WriteError(w, err)
		return nil, err
	}

	return claims, nil
}

// verify checks a token without consuming it
// @Summary Verify token
// @Description Verifies the signature and expiry of an access or refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param token body verifyRequest true "Token"
// @Success 200 {object} map[string]string "Verification result"
// @Failure 401 {object} ErrorResponse "Unauthorized - invalid token"
// @Router /verify/ [post]
func (h authHandler) verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("token payload"))
			return
		}
		if err := req.Validate(); err != nil {
			h.responder.WriteValidationErrors(w, err)
			return
		}

		claims, err := h.tokens.Parse(req.Token, auth.UseAccess)
		if errors.Is(err, auth.ErrWrongTokenUse) {
			claims, err = h.tokens.Parse(req.Token, auth.UseRefresh)
		}
		if err != nil {
			h.responder.WriteError(w, errs.NewInvalidTokenError())
			return
		}

		if claims.TokenUse == auth.UseRefresh {
			revoked, err := h.revoked.IsRevoked(claims.ID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("check revocation", "token", err))
				return
			}
			if revoked {
				h.responder.WriteError(w, errs.NewRevokedTokenError())
				return
			}
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":    "success",
			"tokenUse":  claims.TokenUse,
			"expiresAt": claims.ExpiresAt.Time.Format(time.RFC3339),
		})
	}
}

// profile returns the authenticated user's own profile
// @Summary Get profile
// @Description Returns the authenticated user's account
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User "Account"
// @Failure 401 {object} ErrorResponse "Unauthorized - missing or invalid token"
// @Router /profile/ [get]
func (h authHandler) profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := userFromCtx(r.Context())
		if user == nil {
			h.responder.WriteError(w, errs.NewMissingTokenError())
			return
		}
		h.responder.WriteJSON(w, user)
	}
}
