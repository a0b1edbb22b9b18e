package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"donation_platform/internal/adapter/http/middleware"
	"donation_platform/internal/infrastructure/bootstrap"
	"donation_platform/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testJWTSecret = "routes-test-secret"

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, err := bootstrap.Build(context.Background(), &config.Config{
		StoreBackend:   config.BackendMemory,
		LedgerBackend:  config.BackendMemory,
		PaymentGateway: config.GatewayMock,
		MinDonation:    "1",
		MaxDonation:    "5000",
		JWTSecret:      testJWTSecret,
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	t.Cleanup(c.Close)
	return NewRouter(c)
}

func bearer(t *testing.T, sub, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		Role: role,
		Name: sub,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + token
}

type apiResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data"`
}

func call(t *testing.T, r http.Handler, method, path, auth, body string) (int, apiResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func TestRouter_PingAndAuth(t *testing.T) {
	r := newTestServer(t)

	if code, _ := call(t, r, http.MethodGet, "/v1/ping", "", ""); code != http.StatusOK {
		t.Fatalf("ping: expected 200, got %d", code)
	}
	if code, _ := call(t, r, http.MethodGet, "/v1/donations/history", "", ""); code != http.StatusUnauthorized {
		t.Fatalf("history without token: expected 401, got %d", code)
	}
	donor := bearer(t, "donor-1", "donor")
	if code, _ := call(t, r, http.MethodGet, "/v1/admin/reconciliation/tasks", donor, ""); code != http.StatusForbidden {
		t.Fatalf("admin route as donor: expected 403, got %d", code)
	}
	if code, _ := call(t, r, http.MethodPost, "/v1/campaigns", donor, `{"title":"x","type":"crowdfunding","currency":"USD"}`); code != http.StatusForbidden {
		t.Fatalf("register as donor: expected 403, got %d", code)
	}
}

func TestRouter_DonationLifecycle(t *testing.T) {
	r := newTestServer(t)
	owner := bearer(t, "owner-1", "creator")
	donor := bearer(t, "donor-1", "donor")
	admin := bearer(t, "admin-1", "admin")

	code, resp := call(t, r, http.MethodPost, "/v1/campaigns", owner, `{"id":"camp-1","title":"Water","type":"crowdfunding","currency":"USD","goal_amount":"100"}`)
	if code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", code)
	}
	if code, _ = call(t, r, http.MethodPatch, "/v1/campaigns/camp-1/activate", owner, ""); code != http.StatusOK {
		t.Fatalf("activate: expected 200, got %d", code)
	}

	code, resp = call(t, r, http.MethodPost, "/v1/donations/intents", donor, `{"campaign_id":"camp-1","amount":"40.00"}`)
	if code != http.StatusCreated {
		t.Fatalf("intent: expected 201, got %d", code)
	}
	intentID, _ := resp.Data["intent_id"].(string)
	paymentID, _ := resp.Data["payment_id"].(string)
	if intentID == "" || paymentID == "" {
		t.Fatalf("missing ids in %+v", resp.Data)
	}

	if code, _ = call(t, r, http.MethodPost, "/v1/donations/intents/"+intentID+"/confirm", donor, ""); code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d", code)
	}
	// Retried confirmation stays successful and does not double count.
	code, resp = call(t, r, http.MethodPost, "/v1/donations/intents/"+intentID+"/confirm", donor, "")
	if code != http.StatusOK || resp.Data["already_confirmed"] != true {
		t.Fatalf("repeat confirm: code=%d data=%+v", code, resp.Data)
	}

	if code, _ = call(t, r, http.MethodPost, "/v1/donations/payments/"+paymentID+"/refunds", donor, `{"amount":"5"}`); code != http.StatusForbidden {
		t.Fatalf("donor refund: expected 403, got %d", code)
	}
	if code, _ = call(t, r, http.MethodPost, "/v1/donations/payments/"+paymentID+"/refunds", admin, `{"amount":"15"}`); code != http.StatusCreated {
		t.Fatalf("refund: expected 201, got %d", code)
	}
	if code, _ = call(t, r, http.MethodPost, "/v1/donations/payments/"+paymentID+"/refunds", owner, `{"amount":"30"}`); code != http.StatusUnprocessableEntity {
		t.Fatalf("over refund: expected 422, got %d", code)
	}

	code, resp = call(t, r, http.MethodGet, "/v1/campaigns/camp-1/donations/stats", donor, "")
	if code != http.StatusOK || resp.Data["net_amount"] != "25.00" || resp.Data["raised_amount"] != "25.00" {
		t.Fatalf("stats: code=%d data=%+v", code, resp.Data)
	}

	code, resp = call(t, r, http.MethodGet, "/v1/donations/history/summary", donor, "")
	if code != http.StatusOK || resp.Data["total_refunded"] != "15.00" {
		t.Fatalf("summary: code=%d data=%+v", code, resp.Data)
	}

	if code, _ = call(t, r, http.MethodPost, "/v1/admin/reconciliation/drain", admin, ""); code != http.StatusOK {
		t.Fatalf("drain: expected 200, got %d", code)
	}
}
