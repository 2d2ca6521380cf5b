package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	intconfig "eventscrm/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	jwtSecretMu sync.RWMutex
	jwtSecret   []byte
)

// SetJWTSecret wires the signing secret from config at startup.
func SetJWTSecret(secret string) {
	jwtSecretMu.Lock()
	defer jwtSecretMu.Unlock()
	jwtSecret = []byte(secret)
}

func signingSecret() []byte {
	jwtSecretMu.RLock()
	defer jwtSecretMu.RUnlock()
	return jwtSecret
}

// AuthUser mirrors the auth response user payload.
type AuthUser struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	var (
		user         AuthUser
		passwordHash string
	)
	err := intconfig.DB.QueryRow(`
        SELECT id, name, email, password_hash, role, status
        FROM users
        WHERE email = ?
    `, req.Email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&passwordHash,
		&user.Role,
		&user.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		} else {
			respondError(c, http.StatusInternalServerError, "user_lookup_failed", "could not verify credentials", nil)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString(signingSecret())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_signing_failed", "could not issue token", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		return
	}

	var exists int
	if err := intconfig.DB.QueryRow(`
        SELECT COUNT(*)
        FROM users
        WHERE email = ?
    `, req.Email).Scan(&exists); err != nil {
		respondError(c, http.StatusInternalServerError, "user_lookup_failed", "could not check existing users", nil)
		return
	}
	if exists > 0 {
		respondError(c, http.StatusBadRequest, "email_taken", "email already registered", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "hash_failed", "could not hash password", nil)
		return
	}

	res, err := intconfig.DB.Exec(`
        INSERT INTO users (name, email, password_hash, role, status, created_at, updated_at)
        VALUES (?, ?, ?, 'user', 'active', NOW(), NOW())
    `, req.Name, req.Email, string(hash))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "user_insert_failed", "could not create user", nil)
		return
	}
	id, _ := res.LastInsertId()

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration successful",
		"user": gin.H{
			"id":     id,
			"name":   req.Name,
			"email":  req.Email,
			"role":   "user",
			"status": "active",
		},
	})
}
