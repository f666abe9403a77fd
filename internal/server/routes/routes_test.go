package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/yppgo/patentgraph/pkg/ai"

	"github.com/go-playground/validator"
	"github.com/labstack/echo/v4"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i any) error {
	return tv.v.Struct(i)
}

func newTestContext(t *testing.T, method, target string, body any) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

var _ ai.Client = (*stubClient)(nil)

// stubClient is a canned ai.Client for handler tests.
type stubClient struct {
	chatReply string
	chatErr   error
}

func (s *stubClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", nil
}

func (s *stubClient) GenerateCompletionWithFormat(ctx context.Context, name, description, prompt string, out any, opts ...ai.GenerateOption) error {
	return nil
}

func (s *stubClient) GenerateChat(ctx context.Context, messages []ai.ChatMessage, opts ...ai.GenerateOption) (string, error) {
	return s.chatReply, s.chatErr
}

func (s *stubClient) ListModels(ctx context.Context) ([]ai.ModelInfo, error) {
	return nil, nil
}

func (s *stubClient) ResetMetrics()               {}
func (s *stubClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }
