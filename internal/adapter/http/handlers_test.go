package http

import (
	"encoding/json"
	stdhttp "net/http"
	"testing"
)

func TestHealth(t *testing.T) {
	e := newEchoWithValidator()
	h := NewHandler()

	c, rec := newCtx(e, stdhttp.MethodGet, "/health", nil, nil)
	if err := h.Health(c); err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "loanledger" {
		t.Fatalf("body: %v", body)
	}
}
