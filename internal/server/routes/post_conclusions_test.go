package routes

import (
	"errors"
	"net/http"
	"testing"

	"github.com/yppgo/patentgraph/internal/server/middleware"
)

func TestCreateConclusionHandler(t *testing.T) {
	c, rec := newTestContext(t, http.MethodPost, "/api/conclusions", map[string]any{
		"messages": []map[string]string{
			{"role": "user", "message": "What does the IPC entropy series tell us?"},
			{"role": "assistant", "message": "Entropy climbed every year in the window."},
		},
	})
	cc := &middleware.AppContext{Context: c, App: &middleware.App{
		AiClient: &stubClient{chatReply: "The IPC entropy shows a rising trend across the period."},
	}}

	if err := CreateConclusionHandler(cc); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	decodeResponse(t, rec, &resp)

	if resp.Message == "" {
		t.Error("expected the summary in the response message")
	}
	if resp.Type != "trend" {
		t.Errorf("Type = %q, want %q", resp.Type, "trend")
	}
}

func TestCreateConclusionHandlerProviderFailure(t *testing.T) {
	c, rec := newTestContext(t, http.MethodPost, "/api/conclusions", map[string]any{
		"messages": []map[string]string{
			{"role": "user", "message": "Summarize the discussion."},
		},
	})
	cc := &middleware.AppContext{Context: c, App: &middleware.App{
		AiClient: &stubClient{chatErr: errors.New("connection refused")},
	}}

	if err := CreateConclusionHandler(cc); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
}

func TestCreateConclusionHandlerRejectsEmptyMessages(t *testing.T) {
	c, rec := newTestContext(t, http.MethodPost, "/api/conclusions", map[string]any{
		"messages": []map[string]string{},
	})
	cc := &middleware.AppContext{Context: c, App: &middleware.App{AiClient: &stubClient{}}}

	if err := CreateConclusionHandler(cc); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
