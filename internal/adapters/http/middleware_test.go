package httpadapter

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestIDMiddlewareEchoesProvidedID(t *testing.T) {
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestIDFromContext(r.Context()) != "req-42" {
			t.Fatalf("request id not propagated to context")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-42")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Header().Get(requestIDHeader) != "req-42" {
		t.Fatalf("request id not echoed, got %q", res.Header().Get(requestIDHeader))
	}
}

func TestRequestIDMiddlewareGeneratesWhenAbsent(t *testing.T) {
	handler := requestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if res.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected a generated request id header")
	}
}

func TestStatusRecorderCapturesStatusAndBytes(t *testing.T) {
	inner := httptest.NewRecorder()
	recorder := &statusRecorder{ResponseWriter: inner, statusCode: http.StatusOK}

	recorder.WriteHeader(http.StatusTeapot)
	if _, err := recorder.Write([]byte("short")); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if recorder.statusCode != http.StatusTeapot {
		t.Fatalf("status not captured, got %d", recorder.statusCode)
	}
	if recorder.bytesWritten != 5 {
		t.Fatalf("bytes not counted, got %d", recorder.bytesWritten)
	}
}
