package http

import (
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/auth"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

const testSecret = "test-secret"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRouter(register func(r *gin.RouterGroup)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	g := r.Group("", RequireIdentity(auth.NewJWTService(testSecret), discardLogger()))
	register(g)
	return r
}

func bearer(t *testing.T, req *http.Request, userID string, role domain.Role) {
	t.Helper()
	token, err := auth.NewJWTService(testSecret).GenerateToken(domain.Identity{UserID: userID, Role: role}, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
