package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/taskhub/taskhub-backend/internal/service"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrWeakPassword),
			errors.Is(err, service.ErrPasswordTooLong):
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrEmailTaken):
			respondWithError(w, http.StatusConflict, err.Error())
		default:
			log.Printf("Error registering user: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to register")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokens, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, err.Error())
		} else {
			log.Printf("Error logging in: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to log in")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, tokens)
}

func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokens, err := s.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken),
			errors.Is(err, service.ErrExpiredToken),
			errors.Is(err, service.ErrInvalidCredentials):
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired refresh token.")
		default:
			log.Printf("Error refreshing tokens: %v", err)
			respondWithError(w, http.StatusInternalServerError, "Failed to refresh tokens")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, tokens)
}

func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	resp, err := s.auth.GetUser(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error loading current user: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to load user")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{"user": resp})
}

func (s *Server) verifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(w, r)
	if !ok {
		return
	}

	resp, err := s.auth.VerifyEmail(r.Context(), user.ID)
	if err != nil {
		log.Printf("Error verifying email: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to verify email")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Email verified successfully.",
		"user":    resp,
	})
}
