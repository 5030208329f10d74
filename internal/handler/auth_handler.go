package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const sessionAdminKey = "admin_email"

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates the admin credentials and opens a cookie session.
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "email and password required") {
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondError(c, http.StatusBadRequest, "email and password required")
		return
	}

	if payload.Email != a.adminUser ||
		bcrypt.CompareHashAndPassword(a.adminHash, []byte(payload.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionAdminKey, payload.Email)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to save session")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"user":    gin.H{"email": payload.Email, "role": "admin"},
	})
}

// Logout clears the admin session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// AuthRequired gates admin-only write endpoints.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdmin(c) {
			respondError(c, http.StatusUnauthorized, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

func isAdmin(c *gin.Context) bool {
	session := sessions.Default(c)
	email, ok := session.Get(sessionAdminKey).(string)
	return ok && email != ""
}
