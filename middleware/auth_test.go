package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lexai-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testSecret = "test-secret"

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Name:  "Jane Doe",
		Email: "jane@example.com",
	}
}

func protectedRouter(secret string) (*gin.Engine, *uuid.UUID) {
	var seenID uuid.UUID
	router := gin.New()
	router.GET("/protected", Auth(secret), func(c *gin.Context) {
		seenID = GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"email": GetUserEmail(c)})
	})
	return router, &seenID
}

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(testUser(), testSecret)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected non-empty token")
	}
}

func TestAuthValidCookie(t *testing.T) {
	user := testUser()
	token, err := GenerateToken(user, testSecret)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	router, seenID := protectedRouter(testSecret)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if *seenID != user.ID {
		t.Errorf("Expected user ID %s in context, got %s", user.ID, *seenID)
	}
}

func TestAuthRejections(t *testing.T) {
	expired := Claims{
		UserID: uuid.NewString(),
		Email:  "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign expired token: %v", err)
	}

	badSubject := Claims{
		UserID: "not-a-uuid",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	badSubjectToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, badSubject).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}

	wrongSecretToken, err := GenerateToken(testUser(), "other-secret")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	unsigned := Claims{
		UserID: uuid.NewString(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, unsigned).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("Failed to build unsigned token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"missing cookie", ""},
		{"garbage token", "not.a.jwt"},
		{"expired token", expiredToken},
		{"wrong secret", wrongSecretToken},
		{"alg none", noneToken},
		{"non-uuid subject", badSubjectToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := protectedRouter(testSecret)

			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.token != "" {
				req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: tt.token})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("Expected status 401, got %d", w.Code)
			}
		})
	}
}

func TestContextAccessorsWithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if got := GetUserID(c); got != uuid.Nil {
		t.Errorf("Expected uuid.Nil, got %s", got)
	}
	if got := GetUserEmail(c); got != "" {
		t.Errorf("Expected empty email, got %q", got)
	}
	if got := GetUserName(c); got != "" {
		t.Errorf("Expected empty name, got %q", got)
	}
}
