package controllers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ibam-church/membership/initializers"
	"github.com/ibam-church/membership/middlewares"
	"github.com/ibam-church/membership/models"
)

const sessionTTL = 24 * time.Hour

func AdminLogin(c *gin.Context) {
	var login models.AdminLogin

	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(login.Email))
	if len(email) < 6 || !strings.Contains(email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Informe um e-mail válido."})
		return
	}
	if len(login.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Senha muito curta."})
		return
	}

	var admin models.AdminUser
	found, err := initializers.DB.From("admin_user").Select("*").Where(goqu.C("email").Eq(email)).
		ScanStructContext(c.Request.Context(), &admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// same answer for unknown e-mail and wrong password
	if !found || bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(login.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "E-mail ou senha inválidos."})
		return
	}

	if !admin.Is_Active {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin account is disabled"})
		return
	}

	expiresAt := time.Now().Add(sessionTTL)
	generateToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   admin.Admin_User_ID,
		"exp":  expiresAt.Unix(),
		"jti":  uuid.New().String(),
		"role": "admin",
	})

	token, err := generateToken.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Admin logged in successfully.",
		"token":     token,
		"expiresAt": expiresAt,
		"admin":     admin,
	})
}

// AdminLogout revokes the token the request was made with.
func AdminLogout(c *gin.Context) {
	jti := c.GetString("tokenID")
	expiry, ok := c.Get("tokenExpiry")
	if jti == "" || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No active session"})
		return
	}

	middlewares.RevokeToken(jti, expiry.(time.Time))
	c.JSON(http.StatusOK, gin.H{"message": "Admin logged out successfully."})
}

func GetAdminProfile(c *gin.Context) {
	admin, _ := c.Get("currentAdmin")

	c.JSON(http.StatusOK, gin.H{
		"admin":   admin,
		"isAdmin": c.GetBool("admin"),
	})
}
