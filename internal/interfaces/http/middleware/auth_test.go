package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"bankflow.backend/pkg/jwt"
)

func authRouter(svc *jwt.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		email, _ := GetUserEmail(c)
		role, _ := GetUserRole(c)
		c.JSON(http.StatusOK, gin.H{"id": userID, "email": email, "role": role})
	})
	r.GET("/admin", AuthMiddleware(svc), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doGet(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(AuthorizationHeader, authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_HeaderValidation(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := authRouter(svc)

	w := doGet(r, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Authorization header is required")

	w = doGet(r, "/protected", "Basic dXNlcjpwYXNz")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid authorization format")

	w = doGet(r, "/protected", BearerPrefix+"garbage")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := jwt.NewJWTService("secret", -time.Second, -time.Second)
	pair, err := expired.GenerateTokenPair(uuid.New(), "amine@bankflow.tn", "user")
	require.NoError(t, err)

	r := authRouter(jwt.NewJWTService("secret", time.Minute, time.Hour))
	w := doGet(r, "/protected", BearerPrefix+pair.AccessToken)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token has expired")
}

func TestAuthMiddleware_ValidTokenLoadsClaims(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	userID := uuid.New()
	pair, err := svc.GenerateTokenPair(userID, "amine@bankflow.tn", "user")
	require.NoError(t, err)

	r := authRouter(svc)
	w := doGet(r, "/protected", BearerPrefix+pair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
	require.Contains(t, w.Body.String(), "amine@bankflow.tn")
}

func TestRequireRole(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Minute, time.Hour)
	r := authRouter(svc)

	userPair, err := svc.GenerateTokenPair(uuid.New(), "user@bankflow.tn", "user")
	require.NoError(t, err)
	adminPair, err := svc.GenerateTokenPair(uuid.New(), "admin@bankflow.tn", "admin")
	require.NoError(t, err)

	w := doGet(r, "/admin", BearerPrefix+userPair.AccessToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doGet(r, "/admin", BearerPrefix+adminPair.AccessToken)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doGet(r, "/admin", "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestContextAccessors_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	require.False(t, ok)
	_, ok = GetUserEmail(c)
	require.False(t, ok)
	_, ok = GetUserRole(c)
	require.False(t, ok)
}
