package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestLoggerPreservesHandlerError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	// An unparseable Content-Length must not displace the handler's error
	req.Header.Set(echo.HeaderContentLength, "not-a-number")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerErr := echo.NewHTTPError(http.StatusTeapot, "boom")
	mw := logger()(func(echo.Context) error {
		return handlerErr
	})

	if err := mw(c); err != handlerErr {
		t.Fatalf("middleware must return the handler error, got %v", err)
	}
}

func TestLoggerPassesThroughSuccess(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := logger()(func(echo.Context) error {
		return nil
	})

	if err := mw(c); err != nil {
		t.Fatal("expected no error from a successful handler, got", err)
	}
}
