package resolver

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"arwikicats/internal/core"
	"arwikicats/internal/telemetry"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"go.opentelemetry.io/otel/attribute"
)

// 上游回應內容上限
const maxResponseBytes = 1 << 20

// HTTPResolver 呼叫標籤服務：GET <base>?title=<title>，回應 {"result": "<label>"}
type HTTPResolver struct {
	HTTPClient *http.Client
	trace      *telemetry.Trace
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

func NewHTTPResolver(trace *telemetry.Trace, client *http.Client, baseURL, userAgent string, timeout time.Duration) *HTTPResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPResolver{HTTPClient: client, trace: trace, baseURL: baseURL, userAgent: userAgent, timeout: timeout}
}

type labelResponse struct {
	Result string `json:"result"`
}

// Resolve 非 2xx、連線失敗或格式錯誤皆包成 core.ErrResolver
func (s *HTTPResolver) Resolve(ctx context.Context, title string) (label string, found bool, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx, "resolver.http")
	defer func() { end(returnedError) }()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	target, err := s.buildURL(title)
	if err != nil {
		returnedError = fmt.Errorf("%w: %w", core.ErrResolver, err)
		return "", false, returnedError
	}
	span.SetAttributes(attribute.String("http.url", target))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		returnedError = fmt.Errorf("%w: create request: %w", core.ErrResolver, err)
		return "", false, returnedError
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Accept-Encoding", "gzip, deflate, zstd, br")
	if s.userAgent != "" {
		httpReq.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		returnedError = fmt.Errorf("%w: request failed: %w", core.ErrResolver, err)
		return "", false, returnedError
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		returnedError = fmt.Errorf("%w: read body: %w", core.ErrResolver, err)
		return "", false, returnedError
	}
	// 手動設定 Accept-Encoding 後 transport 不會自動解壓
	body, err := decompressOnly(raw, resp.Header)
	if err != nil {
		returnedError = fmt.Errorf("%w: decode %s body: %w", core.ErrResolver, resp.Header.Get("Content-Encoding"), err)
		return "", false, returnedError
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		returnedError = fmt.Errorf("%w: upstream %d %s", core.ErrResolver, resp.StatusCode, safeTruncateRunes(strings.TrimSpace(string(body)), 200))
		return "", false, returnedError
	}

	var result labelResponse
	if err := json.Unmarshal(body, &result); err != nil {
		returnedError = fmt.Errorf("%w: decode response: %w", core.ErrResolver, err)
		return "", false, returnedError
	}

	label = strings.TrimSpace(result.Result)
	span.SetAttributes(attribute.Bool("lookup.found", label != ""))
	return label, label != "", nil
}

func (s *HTTPResolver) buildURL(title string) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", err
	}
	query := u.Query()
	query.Set("title", title)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

// ---- 壓縮內容處理 ----

func decompressOnly(raw []byte, h http.Header) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(h.Get("Content-Encoding")))
	switch enc {
	case "gzip":
		return gunzipBytes(raw)
	case "deflate":
		return inflateZlibBytes(raw)
	case "zstd":
		return zstdBytes(raw)
	case "br":
		return brotliBytes(raw)
	default:
		if isGzip(raw) {
			return gunzipBytes(raw)
		}
		if isZlib(raw) {
			return inflateZlibBytes(raw)
		}
		if isZstd(raw) {
			return zstdBytes(raw)
		}
		return raw, nil
	}
}

func gunzipBytes(b []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(io.LimitReader(zr, maxResponseBytes))
}

func inflateZlibBytes(b []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(io.LimitReader(zr, maxResponseBytes))
}

func zstdBytes(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxResponseBytes))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(b, nil)
}

func brotliBytes(b []byte) ([]byte, error) {
	return io.ReadAll(io.LimitReader(brotli.NewReader(bytes.NewReader(b)), maxResponseBytes))
}

func isGzip(b []byte) bool { return len(b) > 2 && b[0] == 0x1f && b[1] == 0x8b }

func isZlib(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x78 && (b[1] == 0x01 || b[1] == 0x9C || b[1] == 0xDA)
}

func isZstd(b []byte) bool {
	return len(b) >= 4 && b[0] == 0x28 && b[1] == 0xB5 && b[2] == 0x2F && b[3] == 0xFD
}

// 安全截斷前 n 個 rune，避免 UTF-8 亂碼
func safeTruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n]) + "…"
	}
	return s
}
