package registry

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/time/rate"

	"github.com/guttosm/insynpulse/config"
)

func utf16le(t *testing.T, s string) []byte {
	t.Helper()
	b, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode utf16: %v", err)
	}
	return b
}

func gzipped(t *testing.T, b []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(b); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func testClient(srv *httptest.Server, opts ...ClientOption) *Client {
	return NewClient(config.RegistryConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, opts...)
}

func TestClient_Transactions_GzipUTF16(t *testing.T) {
	export := headerFor(Swedish) + "\r\n" + swedishRow("Hennes "+ampersandEscape+" Mauritz AB", "100", "37,9") + "\r\n"
	body := gzipped(t, utf16le(t, export))

	var gotReq *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, Stockholm)
	q, _ := PublicationsBetween(from, from)

	rc, err := testClient(srv).Transactions(context.Background(), q)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	defer func() { _ = rc.Close() }()

	out, st, err := NewParser(Swedish, WithLogger(zerolog.Nop())).Parse(context.Background(), rc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(out) != 1 || st.Valid != 1 {
		t.Fatalf("want 1 transaction, got %d (%+v)", len(out), st)
	}
	if out[0].Issuer != "Hennes & Mauritz AB" || out[0].Price != 37.9 {
		t.Fatalf("unexpected transaction: %+v", out[0])
	}

	if gotReq.URL.Path != "/sv-SE/Search/Search" {
		t.Fatalf("unexpected path %q", gotReq.URL.Path)
	}
	if gotReq.URL.Query().Get("Publiceringsdatum.From") != "2024-03-01" {
		t.Fatalf("unexpected query %q", gotReq.URL.RawQuery)
	}
	if gotReq.Header.Get("Accept-Encoding") != "gzip" || gotReq.Header.Get("User-Agent") != defaultUserAgent {
		t.Fatalf("unexpected headers: %v", gotReq.Header)
	}
}

func TestClient_Transactions_PlainBody(t *testing.T) {
	body := utf16le(t, "Emittent;Volym;Pris;\nAcme;1;2;\n")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	d := time.Date(2024, 3, 1, 0, 0, 0, 0, Stockholm)
	q, _ := TransactionsBetween(d, d)
	rc, err := testClient(srv).Transactions(context.Background(), q)
	if err != nil {
		t.Fatalf("Transactions: %v", err)
	}
	defer func() { _ = rc.Close() }()

	b, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "Emittent;Volym;Pris;\nAcme;1;2;\n" {
		t.Fatalf("unexpected body %q", b)
	}
}

func TestClient_Transactions_Errors(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv)
	if _, err := c.Transactions(context.Background(), TransactionQuery{}); err == nil {
		t.Fatalf("expected validation error")
	}
	if hits != 0 {
		t.Fatalf("invalid query must not reach the registry")
	}

	d := time.Date(2024, 3, 1, 0, 0, 0, 0, Stockholm)
	q, _ := TransactionsBetween(d, d)
	if _, err := c.Transactions(context.Background(), q); err == nil || !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["x"]`))
	}))
	defer srv.Close()

	c := testClient(srv, WithLimiter(rate.NewLimiter(rate.Every(time.Hour), 1)))
	if _, err := c.Suggest(context.Background(), SuggestIssuer, "a"); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Suggest(ctx, SuggestIssuer, "a"); err == nil {
		t.Fatalf("expected limiter error for second request")
	}
}

func TestClient_Suggest(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`["Swedish Match AB","H` + ampersandEscape + `M Hennes"]` + "\n" + `["Swedish Match AB", " Sweco AB "]`))
	}))
	defer srv.Close()

	names, err := testClient(srv).Suggest(context.Background(), SuggestPDMR, "Swe dish")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	want := []string{"Swedish Match AB", "H&M Hennes", "Sweco AB"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("got %q want %q", names, want)
	}
	if !strings.Contains(gotQuery, "falt=PersonILedandeSt%C3%A4llningNamn") || !strings.Contains(gotQuery, "sokterm=Swe+dish") {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestParseSuggestions_ShortLines(t *testing.T) {
	names, err := ParseSuggestions(strings.NewReader("[]\n\"\"\n[\"A\"]\n"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"A"}) {
		t.Fatalf("got %q", names)
	}
}

func TestDecodeUTF16LE_BOMOverride(t *testing.T) {
	utf8WithBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Emittent;Pris;")...)
	b, err := io.ReadAll(DecodeUTF16LE(io.NopCloser(bytes.NewReader(utf8WithBOM))))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "Emittent;Pris;" {
		t.Fatalf("utf-8 with BOM decoded as %q", b)
	}

	le := utf16le(t, "Närstående;Ja")
	b, err = io.ReadAll(DecodeUTF16LE(io.NopCloser(bytes.NewReader(le))))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "Närstående;Ja" {
		t.Fatalf("utf-16le decoded as %q", b)
	}
}
