package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/inkwell-cms/backend/auth"
	"github.com/inkwell-cms/backend/database"
	"github.com/inkwell-cms/backend/errs"
	"github.com/inkwell-cms/backend/models"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	issuer    auth.TokenIssuer
}

func newUserHandler(userRepo *database.UserRepo, issuer auth.TokenIssuer) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
		issuer:    issuer,
	}
}

// register creates a new account. Open endpoint.
func (h userHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		v := req.validate()

		if len(v) == 0 {
			existing, err := h.userRepo.FindByUsername(req.Username)
			if err != nil {
				h.responder.WriteError(w, wrapRepoError("find user", "user", err))
				return
			}
			if existing != nil {
				v = v.Add("username", "username is already taken")
			}

			existing, err = h.userRepo.FindByEmail(req.Email)
			if err != nil {
				h.responder.WriteError(w, wrapRepoError("find user", "user", err))
				return
			}
			if existing != nil {
				v = v.Add("email", "email is already registered")
			}
		}

		if len(v) > 0 {
			h.responder.WriteError(w, v)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to hash password")
			h.responder.WriteError(w, errs.NewInternalError("could not register user"))
			return
		}

		user := models.User{
			Username:     strings.TrimSpace(req.Username),
			Email:        strings.TrimSpace(req.Email),
			FirstName:    strings.TrimSpace(req.FirstName),
			LastName:     strings.TrimSpace(req.LastName),
			PasswordHash: hash,
		}

		if err := h.userRepo.Add(&user); err != nil {
			h.responder.WriteError(w, wrapRepoError("create user", "user", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusCreated, "User registered successfully", newUserResponse(user))
	}
}

// login exchanges credentials for a bearer token. Open endpoint.
// Unknown usernames and wrong passwords get the same answer.
func (h userHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		user, err := h.userRepo.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find user", "user", err))
			return
		}
		if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewBadRequestError("Invalid credentials"))
			return
		}

		token, err := h.issuer.Issue(user.ID)
		if err != nil {
			h.logger.Error().Err(err).Msg("Failed to issue token")
			h.responder.WriteError(w, errs.NewInternalError("could not log in"))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Login successful", loginResponse{
			Token: token,
			User:  newUserResponse(*user),
		})
	}
}

// profile returns the authenticated user's own record.
func (h userHandler) profile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user"))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "User profile retrieved successfully", newUserResponse(*user))
	}
}

// getAllUsers retrieves all registered users.
func (h userHandler) getAllUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find users", "users", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "Users retrieved successfully", newUserResponses(users))
	}
}

// getUser retrieves a user by ID.
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user"))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "User details retrieved successfully", newUserResponse(*user))
	}
}

// updateUser replaces a user's profile fields.
func (h userHandler) updateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user"))
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		v := req.validate()

		if len(v) == 0 && req.Username != user.Username {
			existing, err := h.userRepo.FindByUsername(req.Username)
			if err != nil {
				h.responder.WriteError(w, wrapRepoError("find user", "user", err))
				return
			}
			if existing != nil {
				v = v.Add("username", "username is already taken")
			}
		}
		if len(v) == 0 && req.Email != user.Email {
			existing, err := h.userRepo.FindByEmail(req.Email)
			if err != nil {
				h.responder.WriteError(w, wrapRepoError("find user", "user", err))
				return
			}
			if existing != nil {
				v = v.Add("email", "email is already registered")
			}
		}

		if len(v) > 0 {
			h.responder.WriteError(w, v)
			return
		}

		user.Username = strings.TrimSpace(req.Username)
		user.Email = strings.TrimSpace(req.Email)
		user.FirstName = strings.TrimSpace(req.FirstName)
		user.LastName = strings.TrimSpace(req.LastName)

		if err := h.userRepo.Update(user); err != nil {
			h.responder.WriteError(w, wrapRepoError("update user", "user", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "User updated successfully", newUserResponse(*user))
	}
}

// deleteUser removes a user and cascades to their posts.
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.responder.WriteError(w, wrapRepoError("find user", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("user"))
			return
		}

		if err := h.userRepo.Delete(userID); err != nil {
			h.responder.WriteError(w, wrapRepoError("delete user", "user", err))
			return
		}

		h.responder.WriteEnvelope(w, http.StatusOK, "User deleted successfully", nil)
	}
}
