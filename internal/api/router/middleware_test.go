package router

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanphm/compliance-be/internal/api/domain"
	"github.com/tuanphm/compliance-be/internal/api/handler"
)

func TestTenantMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	orgID := uuid.New().String()

	tests := []struct {
		name       string
		orgHeader  string
		userHeader string
		wantStatus int
	}{
		{
			name:       "valid headers pass through",
			orgHeader:  orgID,
			userHeader: "user-1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing org header",
			userHeader: "user-1",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing user header",
			orgHeader:  orgID,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed org id",
			orgHeader:  "not-a-uuid",
			userHeader: "user-1",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(TenantMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))

			var seen domain.Tenant
			r.GET("/probe", func(c *gin.Context) {
				v, ok := c.Get(handler.TenantKey)
				require.True(t, ok)
				seen = v.(domain.Tenant)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tt.orgHeader != "" {
				req.Header.Set("X-Org-ID", tt.orgHeader)
			}
			if tt.userHeader != "" {
				req.Header.Set("X-User-ID", tt.userHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.orgHeader, seen.OrgID)
				assert.Equal(t, tt.userHeader, seen.UserID)
			} else {
				// Rejections are uniform and never explain themselves.
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
			}
		})
	}
}
