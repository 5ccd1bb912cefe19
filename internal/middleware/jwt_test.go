package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-pms/internal/utils"
)

const testSecret = "test-secret"

func runMiddleware(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, setup func(echo.Context)) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if setup != nil {
		setup(c)
	}
	handler := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "next")
	})
	require.NoError(t, handler(c))
	return rec, c
}

func TestJWTAuthMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec, _ := runMiddleware(t, JWTAuth(testSecret), req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec, _ := runMiddleware(t, JWTAuth(testSecret), req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("other-secret", 7, 3, "MANAGER", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec, _ := runMiddleware(t, JWTAuth(testSecret), req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidTokenSetsClaims(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, 3, "MANAGER", 5)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	rec, c := runMiddleware(t, JWTAuth(testSecret), req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MANAGER", c.Get("role"))
	uid, err := userIDFromContext(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		role    interface{}
		want    int
	}{
		{"allowed role", []string{"MANAGER", "RECEPTIONIST"}, "RECEPTIONIST", http.StatusOK},
		{"denied role", []string{"MANAGER"}, "RECEPTIONIST", http.StatusForbidden},
		{"missing role", []string{"MANAGER"}, nil, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec, _ := runMiddleware(t, RequireRole(tc.allowed...), req, func(c echo.Context) {
				if tc.role != nil {
					c.Set("role", tc.role)
				}
			})
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestTenantHeaderValidation(t *testing.T) {
	// Header parsing failures are rejected before any database work, so
	// a nil repository is safe here.
	mw := TenantScope(nil)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec, _ := runMiddleware(t, mw, req, func(c echo.Context) { c.Set("user_id", uint64(1)) })
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-numeric header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HotelHeader, "abc")
		rec, _ := runMiddleware(t, mw, req, func(c echo.Context) { c.Set("user_id", uint64(1)) })
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("zero hotel id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HotelHeader, "0")
		rec, _ := runMiddleware(t, mw, req, func(c echo.Context) { c.Set("user_id", uint64(1)) })
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
