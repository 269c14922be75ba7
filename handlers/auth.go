package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"cloudnote/middleware"
	"cloudnote/models"
	"cloudnote/store"
	"cloudnote/token"
)

type signupRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Gender    string `json:"gender" validate:"required,oneof=M F O"`
	BirthDate string `json:"birthDate" validate:"required,datetime=2006-01-02"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,strongpassword"`
}

var signupMessages = map[string]string{
	"FirstName": "First Name is required!",
	"LastName":  "Last Name is required!",
	"Gender":    "Please provide your sex.",
	"BirthDate": "Please enter your Date for Birth.",
	"Email":     "Your email is required.",
	"Password":  "Please use a strong password!",
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"Email":    "Please enter a valid email.",
	"Password": "Please enter your password properly",
}

// profile is the public subset of a user returned by UserDetails. The
// password hash is never part of any response.
type profile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birthDate"`
}

// Signup registers a new user, storing a bcrypt hash in place of the
// plaintext password.
func Signup(s store.Store, bcryptCost int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusForbidden, validationMessage(err, signupMessages))
			return
		}

		_, err := s.UserByEmail(r.Context(), req.Email)
		if err == nil {
			writeJSON(w, http.StatusConflict, "User is already exists.")
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			internalError(w, err)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			internalError(w, err)
			return
		}

		user := models.User{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Gender:       req.Gender,
			BirthDate:    req.BirthDate,
			Email:        req.Email,
			PasswordHash: string(hash),
		}
		if err := s.CreateUser(r.Context(), user); err != nil {
			// the unique key catches signups racing on the same email
			if errors.Is(err, store.ErrDuplicateEmail) {
				writeJSON(w, http.StatusConflict, "User is already exists.")
				return
			}
			internalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "User is created successfully.")
	}
}

// Login checks the password against the stored hash and returns a bearer
// token. Unknown email and wrong password get the same response so the API
// does not reveal which emails are registered.
func Login(s store.Store, tokens *token.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, "Invalid request body.")
			return
		}

		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusForbidden, validationMessage(err, loginMessages))
			return
		}

		user, err := s.UserByEmail(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusUnauthorized, "You are NOT authenticated.")
				return
			}
			internalError(w, err)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			writeJSON(w, http.StatusUnauthorized, "You are NOT authenticated.")
			return
		}

		signed, err := tokens.Issue(user.Email)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, signed)
	}
}

// UserDetails returns the public profile of the authenticated user.
func UserDetails(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email, ok := middleware.EmailFromContext(r.Context())
		if !ok {
			writeJSON(w, http.StatusUnauthorized, "Unauthorized Access Request!")
			return
		}

		user, err := s.UserByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSON(w, http.StatusNotFound, "User does not exists.")
				return
			}
			internalError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, profile{
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Gender:    user.Gender,
			BirthDate: user.BirthDate,
		})
	}
}
