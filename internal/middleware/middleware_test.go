package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID, role string, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID, "role": role,
		"exp": time.Now().Add(dur).Unix(), "iat": time.Now().Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func ginTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(JWTAuth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "role": claims.Role})
	})
	r.GET("/admin", RequireRole(RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

// ── Tests: JWT Middleware ─────────────────────────────────────────────────────

func TestProtectedEndpoint_NoToken(t *testing.T) {
	w := get(ginTestRouter(), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail":"Authentication required"}`, w.Body.String())
}

func TestProtectedEndpoint_ValidToken(t *testing.T) {
	id := uuid.NewString()
	w := get(ginTestRouter(), "/protected", signToken(t, id, RoleUser, time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":"`+id+`","role":"USER"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestProtectedEndpoint_ExpiredToken(t *testing.T) {
	w := get(ginTestRouter(), "/protected", signToken(t, uuid.NewString(), RoleUser, -time.Second))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedEndpoint_MalformedUserID(t *testing.T) {
	w := get(ginTestRouter(), "/protected", signToken(t, "not-a-uuid", RoleAdmin, time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedEndpoint_WrongSecret(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": uuid.NewString(), "role": RoleAdmin, "exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("other"))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(ginTestRouter(), "/protected", s).Code)
}

func TestRequireRole(t *testing.T) {
	r := ginTestRouter()
	assert.Equal(t, http.StatusForbidden, get(r, "/admin", signToken(t, uuid.NewString(), RolePartner, time.Hour)).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", signToken(t, uuid.NewString(), RoleAdmin, time.Hour)).Code)
}

// ── Tests: pricing permissions ────────────────────────────────────────────────

func TestPricingPermissions(t *testing.T) {
	owner := uuid.New()
	admin := &JWTClaims{UserID: uuid.NewString(), Role: RoleAdmin}
	ownerClaims := &JWTClaims{UserID: owner.String(), Role: RoleUser}
	stranger := &JWTClaims{UserID: uuid.NewString(), Role: RoleUser}

	assert.True(t, CanManagePricing(admin))
	assert.False(t, CanManagePricing(ownerClaims))
	assert.False(t, CanManagePricing(nil))

	assert.True(t, CanViewPricing(admin, owner))
	assert.True(t, CanViewPricing(ownerClaims, owner))
	assert.False(t, CanViewPricing(stranger, owner))
	assert.False(t, CanViewPricing(nil, owner))
}

// ── Tests: request id, rate limiter, recovery ────────────────────────────────

func TestRequestID_PropagatesCallerID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter("test", 2, time.Minute))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/", "").Code)
	w := get(r, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimiter_SeparateStores(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/a", RateLimiter("a", 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/b", RateLimiter("b", 1, time.Minute), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, get(r, "/a", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/b", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "/a", "").Code)
}

func TestRateStore_Purge(t *testing.T) {
	s := &rateStore{name: "purge", entries: map[string]*rateEntry{
		"1.1.1.1": {count: 3, windowEnd: time.Now().Add(-time.Second)},
		"2.2.2.2": {count: 1, windowEnd: time.Now().Add(time.Minute)},
	}}
	purged, remaining := s.purge(time.Now())
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, remaining)
}

func TestRecovery_ReturnsSafeError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("db password leaked") })

	w := get(r, "/", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestCORS_RestrictsOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("https://app.ca.la"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(origin, method string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(method, "/", nil)
		req.Header.Set("Origin", origin)
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, "https://app.ca.la", send("https://app.ca.la", http.MethodGet).Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, send("https://evil.example", http.MethodGet).Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusNoContent, send("https://app.ca.la", http.MethodOptions).Code)
}
