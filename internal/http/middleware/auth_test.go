package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/yungbote/storefront-backend/internal/platform/authjwt"
	"github.com/yungbote/storefront-backend/internal/platform/ctxutil"
	"github.com/yungbote/storefront-backend/internal/platform/logger"
)

func newStaffRouter(t *testing.T, signer *authjwt.Signer) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	mw := NewStaffAuthMiddleware(logger.Nop(), signer)
	r.GET("/admin/api/products", mw.RequireStaff(), func(c *gin.Context) {
		sd := ctxutil.GetStaffData(c.Request.Context())
		if sd == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, sd.Username)
	})
	return r
}

func TestRequireStaff(t *testing.T) {
	signer, err := authjwt.NewSigner("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	r := newStaffRouter(t, signer)

	token, _, err := signer.Sign("alice")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "alice" {
		t.Fatalf("valid token: status=%d body=%q", rec.Code, rec.Body.String())
	}
}

func TestRequireStaffRejects(t *testing.T) {
	signer, err := authjwt.NewSigner("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	other, _ := authjwt.NewSigner("other-secret", time.Hour)
	forged, _, _ := other.Sign("mallory")

	customer := jwt.NewWithClaims(jwt.SigningMethodHS256, authjwt.StaffClaims{
		Staff: false,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    authjwt.Issuer,
			Subject:   "bob",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	notStaff, err := customer.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed scheme", "Token abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + forged, http.StatusUnauthorized},
		{"not staff", "Bearer " + notStaff, http.StatusForbidden},
	}
	r := newStaffRouter(t, signer)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/api/products", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status: got=%d want=%d body=%s", rec.Code, tc.want, rec.Body.String())
			}
		})
	}
}
