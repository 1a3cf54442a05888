package api

import (
	"io"
	"net/http" // HTTP status codes
	"strconv"
	"strings" // String manipulation

	"balance_game/internal/blob"
	"balance_game/internal/board"
	"balance_game/internal/domain" // Importing domain models
	"balance_game/internal/middleware"
	"balance_game/internal/utils" // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string `json:"access_token"` // JWT token
}

// SignupHandler registers a new user from a multipart form.
// An optional profile upload is routed through the blob store; files outside
// the image allow-list are skipped without failing the signup.
func SignupHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		password := c.PostForm("password")
		nickname := strings.TrimSpace(c.PostForm("nickname"))
		intro := c.PostForm("intro")

		if username == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
			return
		}

		// Username must be unique
		var existing domain.User
		if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		// Nickname must be unique when provided; null when unset so the
		// unique index only applies to chosen names
		var nicknamePtr *string
		if nickname != "" {
			if err := db.Where("nickname = ?", nickname).First(&existing).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Nickname already exists"})
				return
			}
			nicknamePtr = &nickname
		}

		// Optional age
		var age *int
		if raw := c.PostForm("age"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil {
				age = &v
			}
		}

		// Optional profile image upload
		profileRef := ""
		if file, err := c.FormFile("profile"); err == nil && file != nil {
			if src, err := file.Open(); err == nil {
				data, readErr := io.ReadAll(src)
				src.Close()
				if readErr == nil {
					// Disallowed extensions yield an empty ref and the signup proceeds
					if ref, storeErr := blob.Store(db, data, file.Filename); storeErr == nil {
						profileRef = ref
					}
				}
			}
		}

		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Username:        username,
			Password:        string(hash),
			Nickname:        nicknamePtr,
			Age:             age,
			Intro:           intro,
			ProfileImageRef: profileRef,
		}
		if err := db.Create(&user).Error; err != nil {
			// The pre-checks race against concurrent signups; the unique
			// constraints are the backstop and report the same conflict
			c.JSON(http.StatusConflict, gin.H{"error": "Username or nickname already exists"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user, establishes a cookie session and
// returns a JWT token for API clients. JSON and form bodies are both accepted.
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if c.ContentType() == "application/json" {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
		} else {
			// The HTML login form posts urlencoded fields
			req.Username = c.PostForm("username")
			req.Password = c.PostForm("password")
		}
		principal, err := board.Authenticate(db, req.Username, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(principal.ID, principal.Username, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Establish the cookie session for the server-rendered board
		if err := middleware.SetSessionUser(c, principal.ID, principal.Username); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": principal.ID,
				"error":   err.Error(),
			}).Error("Failed to save session")
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// LogoutHandler clears the cookie session
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := middleware.ClearSession(c); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
