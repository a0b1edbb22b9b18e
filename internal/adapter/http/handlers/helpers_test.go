package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"donation_platform/internal/adapter/http/middleware"
	"donation_platform/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var (
	donorAlice = entities.Actor{ID: "donor-alice", Role: entities.RoleDonor, Name: "Alice"}
	ownerCarol = entities.Actor{ID: "owner-carol", Role: entities.RoleCreator, Name: "Carol"}
	adminDan   = entities.Actor{ID: "admin-dan", Role: entities.RoleAdmin, Name: "Dan"}
)

func newTestRouter(actor *entities.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if actor != nil {
		a := *actor
		r.Use(func(c *gin.Context) { middleware.SetActor(c, a) })
	}
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return env
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
