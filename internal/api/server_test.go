package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/snakecodec/internal/activity"
	"github.com/matzehuels/snakecodec/pkg/history"
	"github.com/matzehuels/snakecodec/pkg/journal"
)

func newTestServer(t *testing.T) (*Server, *activity.Recorder) {
	t.Helper()
	j, err := journal.New(filepath.Join(t.TempDir(), "journal.log"))
	if err != nil {
		t.Fatal(err)
	}
	rec := &activity.Recorder{History: history.NewMemoryStore(), Journal: j}
	return NewServer(Config{Recorder: rec, MaxTextLength: 100}), rec
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

func TestTransformRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	tests := []struct {
		name   string
		path   string
		body   any
		status int
		result string
		code   string
	}{
		{"caesar default shift", "/v1/transforms/caesar/encode", map[string]any{"text": "abc"}, 200, "def", ""},
		{"caesar explicit shift", "/v1/transforms/shift/encode", map[string]any{"text": "abc", "shift": 1}, 200, "bcd", ""},
		{"morse decode", "/v1/transforms/morse/decode", map[string]any{"text": "... --- ..."}, 200, "SOS", ""},
		{"base64 encode", "/v1/transforms/base64/encode", map[string]any{"text": "Hi"}, 200, "SGk=", ""},
		{"ascii cp1251", "/v1/transforms/ascii/encode", map[string]any{"text": "Я", "code_page": "cp1251"}, 200, "223", ""},
		{"empty decode", "/v1/transforms/binary/decode", map[string]any{"text": "  "}, 400, "", "EMPTY_INPUT"},
		{"bad format", "/v1/transforms/binary/decode", map[string]any{"text": "012"}, 400, "", "INVALID_FORMAT"},
		{"shift out of range", "/v1/transforms/caesar/encode", map[string]any{"text": "a", "shift": 30}, 400, "", "OUT_OF_RANGE"},
		{"unknown transform", "/v1/transforms/vigenere/encode", map[string]any{"text": "a"}, 404, "", "UNKNOWN_TRANSFORM"},
		{"unknown direction", "/v1/transforms/rot/sideways", map[string]any{"text": "a"}, 400, "", "INVALID_INPUT"},
		{"bad layout", "/v1/transforms/caesar/encode", map[string]any{"text": "a", "layout": "greek"}, 400, "", "INVALID_INPUT"},
		{"too long", "/v1/transforms/rot/encode", map[string]any{"text": strings.Repeat("a", 101)}, 413, "", "TEXT_TOO_LONG"},
		{"malformed body", "/v1/transforms/rot/encode", `{"text":`, 400, "", "INVALID_INPUT"},
		{"unknown field", "/v1/transforms/rot/encode", `{"txt":"a"}`, 400, "", "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.path, tt.body)
			if rr.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rr.Code, tt.status, rr.Body.String())
			}
			if tt.code != "" {
				var e errorBody
				decodeBody(t, rr, &e)
				if string(e.Error.Code) != tt.code {
					t.Errorf("code = %q, want %q", e.Error.Code, tt.code)
				}
				return
			}
			var out map[string]string
			decodeBody(t, rr, &out)
			if out["result"] != tt.result {
				t.Errorf("result = %q, want %q", out["result"], tt.result)
			}
		})
	}
}

func TestTransformIsRecorded(t *testing.T) {
	srv, rec := newTestServer(t)
	h := srv.Handler()

	if rr := do(t, h, http.MethodPost, "/v1/transforms/rot/encode", map[string]any{"text": "secret message", "shift": 13}); rr.Code != 200 {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr := do(t, h, http.MethodPost, "/v1/transforms/morse/decode", map[string]any{"text": "x"}); rr.Code != 400 {
		t.Fatalf("failed decode status = %d", rr.Code)
	}

	rr := do(t, h, http.MethodGet, "/v1/history", nil)
	var list struct {
		Entries []history.Entry `json:"entries"`
	}
	decodeBody(t, rr, &list)
	if len(list.Entries) != 1 {
		t.Fatalf("history has %d entries, want 1", len(list.Entries))
	}
	e := list.Entries[0]
	if e.Operation != history.OpEncrypt || e.Transform != "rot" || e.Preview != "secret message" {
		t.Errorf("entry = %+v", e)
	}

	lines, err := rec.Journal.RecentLines(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || !strings.HasSuffix(lines[0], "ENCRYPT: rot: secret message") {
		t.Errorf("journal = %q", lines)
	}
}

func TestPipelineRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rr := do(t, h, http.MethodPost, "/v1/pipelines", map[string]any{"text": "Hi", "steps": []string{"base64:encode", "binary:encode"}})
	if rr.Code != 200 {
		t.Fatalf("status = %d (%s)", rr.Code, rr.Body.String())
	}
	var out struct {
		Result string `json:"result"`
	}
	decodeBody(t, rr, &out)

	rr = do(t, h, http.MethodPost, "/v1/pipelines", map[string]any{"text": out.Result, "steps": []string{"base64:encode", "binary:encode"}, "reverse": true})
	var back struct {
		Result string `json:"result"`
	}
	decodeBody(t, rr, &back)
	if back.Result != "Hi" {
		t.Errorf("reversed pipeline = %q, want %q", back.Result, "Hi")
	}

	rr = do(t, h, http.MethodPost, "/v1/pipelines", map[string]any{"text": "Hi", "steps": []string{"nope"}})
	if rr.Code != 404 {
		t.Errorf("unknown step status = %d, want 404", rr.Code)
	}
}

func TestDetectRoute(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rr := do(t, h, http.MethodPost, "/v1/detect", map[string]any{"text": "01001000 01101001"})
	var out struct {
		Detections []struct {
			Transform string `json:"transform"`
		} `json:"detections"`
	}
	decodeBody(t, rr, &out)
	if len(out.Detections) == 0 || out.Detections[0].Transform != "binary" {
		t.Errorf("detections = %+v", out.Detections)
	}

	rr = do(t, h, http.MethodPost, "/v1/detect", map[string]any{"text": "01001000 01101001", "try": true})
	var tried struct {
		Candidates []struct {
			Output string `json:"output"`
		} `json:"candidates"`
	}
	decodeBody(t, rr, &tried)
	if len(tried.Candidates) == 0 || tried.Candidates[0].Output != "Hi" {
		t.Errorf("candidates = %+v", tried.Candidates)
	}

	if rr := do(t, h, http.MethodPost, "/v1/detect", map[string]any{"text": " "}); rr.Code != 400 {
		t.Errorf("blank detect status = %d, want 400", rr.Code)
	}
}

func TestSignVerifyRoutes(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	rr := do(t, h, http.MethodPost, "/v1/sign", map[string]any{"text": "hello"})
	var signed map[string]string
	decodeBody(t, rr, &signed)
	if signed["signature"] == "" {
		t.Fatalf("no signature in %s", rr.Body.String())
	}

	tests := []struct {
		text string
		sig  string
		want bool
	}{
		{"hello", signed["signature"], true},
		{"hello!", signed["signature"], false},
		{"hello", "garbage", false},
	}
	for _, tt := range tests {
		rr := do(t, h, http.MethodPost, "/v1/verify", map[string]any{"text": tt.text, "signature": tt.sig})
		var out map[string]bool
		decodeBody(t, rr, &out)
		if out["valid"] != tt.want {
			t.Errorf("verify(%q, %q) = %v, want %v", tt.text, tt.sig, out["valid"], tt.want)
		}
	}

	if rr := do(t, h, http.MethodPost, "/v1/sign", map[string]any{"text": ""}); rr.Code != 400 {
		t.Errorf("empty sign status = %d, want 400", rr.Code)
	}
}

func TestHistoryRoutes(t *testing.T) {
	srv, rec := newTestServer(t)
	h := srv.Handler()
	ctx := t.Context()

	enc := history.NewEntry(history.OpEncrypt, "caesar", "one")
	sig := history.NewEntry(history.OpSign, "signature", "two")
	for _, e := range []history.Entry{enc, sig} {
		if err := rec.History.Add(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	var list struct {
		Entries []history.Entry `json:"entries"`
	}
	decodeBody(t, do(t, h, http.MethodGet, "/v1/history", nil), &list)
	if len(list.Entries) != 1 {
		t.Errorf("filtered list has %d entries, want 1", len(list.Entries))
	}
	decodeBody(t, do(t, h, http.MethodGet, "/v1/history?all=true", nil), &list)
	if len(list.Entries) != 2 {
		t.Errorf("full list has %d entries, want 2", len(list.Entries))
	}

	if rr := do(t, h, http.MethodDelete, "/v1/history/"+enc.ID, nil); rr.Code != http.StatusNoContent {
		t.Errorf("remove status = %d", rr.Code)
	}
	if rr := do(t, h, http.MethodDelete, "/v1/history/"+enc.ID, nil); rr.Code != http.StatusNotFound {
		t.Errorf("second remove status = %d, want 404", rr.Code)
	}
	if rr := do(t, h, http.MethodDelete, "/v1/history", nil); rr.Code != http.StatusNoContent {
		t.Errorf("clear status = %d", rr.Code)
	}
	if n, _ := rec.History.Count(ctx); n != 0 {
		t.Errorf("count after clear = %d", n)
	}

	var journalOut struct {
		Lines []string `json:"lines"`
	}
	decodeBody(t, do(t, h, http.MethodGet, "/v1/journal?n=1", nil), &journalOut)
	if len(journalOut.Lines) != 1 || !strings.Contains(journalOut.Lines[0], "HISTORY_CLEAR: 1 entries cleared") {
		t.Errorf("journal = %q", journalOut.Lines)
	}
	if rr := do(t, h, http.MethodGet, "/v1/journal?n=x", nil); rr.Code != 400 {
		t.Errorf("bad n status = %d, want 400", rr.Code)
	}
}

func TestWithoutRecorder(t *testing.T) {
	h := NewServer(Config{}).Handler()

	if rr := do(t, h, http.MethodPost, "/v1/transforms/caesar/encode", map[string]any{"text": "abc"}); rr.Code != 200 {
		t.Errorf("transform status = %d", rr.Code)
	}
	var list struct {
		Entries []history.Entry `json:"entries"`
	}
	rr := do(t, h, http.MethodGet, "/v1/history", nil)
	decodeBody(t, rr, &list)
	if list.Entries == nil || len(list.Entries) != 0 {
		t.Errorf("entries = %v, want empty list", list.Entries)
	}
}

func TestHealthAndTransforms(t *testing.T) {
	h := NewServer(Config{}).Handler()

	if rr := do(t, h, http.MethodGet, "/healthz", nil); rr.Code != 200 {
		t.Errorf("healthz status = %d", rr.Code)
	}
	var out struct {
		Transforms []TransformInfo `json:"transforms"`
	}
	decodeBody(t, do(t, h, http.MethodGet, "/v1/transforms", nil), &out)
	if len(out.Transforms) != 8 {
		t.Errorf("got %d transforms, want 8", len(out.Transforms))
	}
	if rr := do(t, h, http.MethodGet, "/nope", nil); rr.Code != 404 {
		t.Errorf("unknown route status = %d", rr.Code)
	}
}
