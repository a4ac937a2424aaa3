package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/luxmesh/lampd/pkg/registry"
	"github.com/luxmesh/lampd/pkg/storage/memory"
)

func newTestServer() *echo.Echo {
	e := echo.New()
	reg := registry.NewService(memory.NewStore(), nil)
	NewHandler(nil, reg).RegisterRoutes(e)
	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal("failed to decode response:", err, rec.Body.String())
	}
	return out
}

func TestGetCommandUnknownDevice(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodGet, "/api/devices/lamp-1/command", "")
	if rec.Code != http.StatusOK {
		t.Fatal("expected 200, got", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Error("expected no-store response, got", cc)
	}

	cmd := decodeJSON(t, rec)
	if cmd["mode"] != "off" || cmd["brightness"] != float64(0) || cmd["speed"] != float64(5) {
		t.Error("expected powered-off command, got", cmd)
	}
	seg, ok := cmd["segment"].([]interface{})
	if !ok || len(seg) != 2 || seg[0] != float64(1) || seg[1] != float64(59) {
		t.Error("expected segment [1 59], got", cmd["segment"])
	}
}

func TestSetCommandRoundTrip(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/devices/lamp-1/command",
		`{"mode":"rainbow","brightness":200}`)
	if rec.Code != http.StatusOK {
		t.Fatal("expected 200, got", rec.Code, rec.Body.String())
	}

	out := decodeJSON(t, rec)
	if out["ok"] != true || out["devId"] != "lamp-1" {
		t.Error("unexpected acknowledgement:", out)
	}
	cmd, ok := out["cmd"].(map[string]interface{})
	if !ok {
		t.Fatal("expected cmd object, got", out["cmd"])
	}
	if cmd["mode"] != "rainbow" || cmd["brightness"] != float64(200) {
		t.Error("expected submitted fields, got", cmd)
	}
	if cmd["color"] != "#000000" || cmd["speed"] != float64(5) {
		t.Error("expected defaults applied, got", cmd)
	}

	rec = doJSON(e, http.MethodGet, "/api/devices/lamp-1/command", "")
	got := decodeJSON(t, rec)
	if got["mode"] != "rainbow" || got["brightness"] != float64(200) {
		t.Error("expected stored command on poll, got", got)
	}
}

func TestSetCommandValidationFailure(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/devices/lamp-1/command",
		`{"brightness":300}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatal("expected 400, got", rec.Code)
	}
	out := decodeJSON(t, rec)
	if out["error"] == "" {
		t.Error("expected an error message, got", out)
	}

	// Nothing was written: the device still gets the powered-off command
	rec = doJSON(e, http.MethodGet, "/api/devices/lamp-1/command", "")
	got := decodeJSON(t, rec)
	if got["brightness"] != float64(0) {
		t.Error("rejected command must not be stored, got", got)
	}
}

func TestSetCommandUnparseableBody(t *testing.T) {
	e := newTestServer()

	rec := doJSON(e, http.MethodPost, "/api/devices/lamp-1/command", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatal("expected 400, got", rec.Code)
	}
}

func TestSetCommandFormEncoded(t *testing.T) {
	e := newTestServer()

	form := url.Values{}
	form.Set("json", `{"mode":"solid","color":"#00ff00"}`)

	req := httptest.NewRequest(http.MethodPost, "/api/devices/lamp-1/command",
		strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatal("expected 200, got", rec.Code, rec.Body.String())
	}
	out := decodeJSON(t, rec)
	cmd := out["cmd"].(map[string]interface{})
	if cmd["mode"] != "solid" || cmd["color"] != "#00ff00" {
		t.Error("expected form-submitted command stored, got", cmd)
	}
}
