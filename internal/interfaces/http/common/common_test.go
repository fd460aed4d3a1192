package common

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParsePositiveInt(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"", 7, false},
		{" 12 ", 12, true},
		{"0", 7, false},
		{"-3", 7, false},
		{"ten", 7, false},
	}
	for _, tt := range tests {
		got, ok := ParsePositiveInt(tt.in, 7)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePositiveInt(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want int
	}{
		{"missing", "", 1000, 100},
		{"valid", "25", 1000, 25},
		{"invalid", "abc", 1000, 100},
		{"zero", "0", 1000, 100},
		{"clamped", "5000", 1000, 1000},
		{"no clamp", "5000", 0, 5000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLimit(tt.in, 100, tt.max); got != tt.want {
				t.Errorf("ParseLimit(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	rec := httptest.NewRecorder()

	WriteError(logger, rec, http.StatusBadRequest, "bad input")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}
	var body MessageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success || body.Message != "bad input" {
		t.Errorf("body = %+v", body)
	}
}

type decodeTarget struct {
	Name string `json:"name" form:"name"`
}

func TestDecodeBody(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"}`))
		req.Header.Set("Content-Type", "application/json")
		var got decodeTarget
		if err := DecodeBody(req, &got); err != nil || got.Name != "Jane" {
			t.Fatalf("got %+v, err %v", got, err)
		}
	})

	t.Run("missing content type falls back to json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"}`))
		var got decodeTarget
		if err := DecodeBody(req, &got); err != nil || got.Name != "Jane" {
			t.Fatalf("got %+v, err %v", got, err)
		}
	})

	t.Run("form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Jane"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var got decodeTarget
		if err := DecodeBody(req, &got); err != nil || got.Name != "Jane" {
			t.Fatalf("got %+v, err %v", got, err)
		}
	})

	t.Run("form with unknown keys", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("name=Jane&submit=Send&name=Other"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=UTF-8")
		var got decodeTarget
		if err := DecodeBody(req, &got); err != nil || got.Name != "Jane" {
			t.Fatalf("got %+v, err %v", got, err)
		}
	})

	t.Run("multipart", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		_ = mw.WriteField("name", "Jane")
		_ = mw.WriteField("csrf", "token")
		_ = mw.Close()

		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		var got decodeTarget
		if err := DecodeBody(req, &got); err != nil || got.Name != "Jane" {
			t.Fatalf("got %+v, err %v", got, err)
		}
	})

	t.Run("json with unknown keys", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane","extra":true}`))
		req.Header.Set("Content-Type", "application/json")
		var got decodeTarget
		if err := DecodeBody(req, &got); err != nil || got.Name != "Jane" {
			t.Fatalf("got %+v, err %v", got, err)
		}
	})

	t.Run("oversized form", func(t *testing.T) {
		body := "name=" + strings.Repeat("a", MaxSurveyRequestBody+1)
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var got decodeTarget
		if err := DecodeBody(req, &got); err == nil {
			t.Fatal("expected error for oversized body")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		var got decodeTarget
		if err := DecodeBody(req, &got); err == nil {
			t.Fatal("expected error")
		}
	})
}
