package request

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	valid := map[string]string{
		`10.5`:    "10.5",
		`"10.50"`: "10.5",
		`0.1`:     "0.1",
		`"-3"`:    "-3",
		` 7 `:     "7",
		`1e2`:     "100",
	}
	for raw, want := range valid {
		got, err := ParseAmount(json.RawMessage(raw))
		if err != nil || got == nil || got.String() != want {
			t.Fatalf("%s: expected %s, got %v err=%v", raw, want, got, err)
		}
	}

	for _, raw := range []string{``, `null`} {
		got, err := ParseAmount(json.RawMessage(raw))
		if err != nil || got != nil {
			t.Fatalf("%q: expected nil, got %v err=%v", raw, got, err)
		}
	}

	for _, raw := range []string{`true`, `{}`, `"ten"`, `[1]`, `"`, `1e20000000`, `"1e20000000"`, `1e-20000000`, `1234567890123456789012345.5`} {
		if _, err := ParseAmount(json.RawMessage(raw)); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%s: expected ErrInvalidAmount, got %v", raw, err)
		}
	}
}

func TestWebhookRequest_ResolveIntentID(t *testing.T) {
	cases := map[string]string{
		`{"intent_id":" pi_1 "}`: "pi_1",
		`{"type":"payment_intent.succeeded","data":{"object":{"id":"pi_2"}}}`: "pi_2",
		`{"type":"payment","data":{"id":"123"}}`:                              "123",
		`{"type":"payment","data":{"id":456}}`:                                "456",
		`{"type":"ping"}`:                                                     "",
	}
	for body, want := range cases {
		var r WebhookRequest
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			t.Fatalf("%s: %v", body, err)
		}
		if got := r.ResolveIntentID(); got != want {
			t.Fatalf("%s: expected %q, got %q", body, want, got)
		}
	}
}

func TestCreateIntentRequest_ResolveCurrency(t *testing.T) {
	if got := (CreateIntentRequest{Currency: " usd "}).ResolveCurrency(); got != "USD" {
		t.Fatalf("expected USD, got %q", got)
	}
}
