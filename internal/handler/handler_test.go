package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xxxsen/common/webapi"

	"github.com/xxxsen/legalease/internal/ai"
	"github.com/xxxsen/legalease/internal/handler"
	"github.com/xxxsen/legalease/internal/middleware"
	"github.com/xxxsen/legalease/internal/pkg/errcode"
	"github.com/xxxsen/legalease/internal/service"
	"github.com/xxxsen/legalease/internal/summary"
)

const testUploadLimit = 4 * 1024

type staticExtractor struct {
	text string
	err  error
}

func (e staticExtractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	return e.text, e.err
}

type stubGenerator struct {
	replies []string
	err     error
	calls   int
}

func (g *stubGenerator) Chat(ctx context.Context, messages []ai.Message, opts ai.ChatOptions) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if g.calls > len(g.replies) {
		return "", nil
	}
	return g.replies[g.calls-1], nil
}

func setupRouter(t *testing.T, gen ai.IGenerator, extractor service.TextExtractor) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewSummaryService(
		extractor,
		ai.NewManager(gen, ai.ManagerConfig{Timeout: time.Second}),
		nil,
		service.SummaryConfig{},
	)
	deps := handler.RouterDeps{
		Page:           handler.NewPageHandler(svc, testUploadLimit),
		Summaries:      handler.NewSummaryHandler(svc, testUploadLimit),
		Properties:     handler.NewPropertiesHandler(testUploadLimit, svc.MaxInputChars()),
		MaxUploadBytes: testUploadLimit,
	}
	engine, err := webapi.NewEngine(
		"",
		"",
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(nil),
		),
	)
	require.NoError(t, err)
	return engine
}

func uploadRequest(t *testing.T, path, filename, language string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if language != "" {
		require.NoError(t, writer.WriteField("language", language))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

type envelope struct {
	Code int                    `json:"code"`
	Msg  string                 `json:"msg"`
	Data map[string]interface{} `json:"data"`
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	require.Equal(t, http.StatusOK, resp.Code)
	var out envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	return out
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateSummary(t *testing.T) {
	gen := &stubGenerator{replies: []string{"- अपील खारिज\n- लागत नहीं\n- आदेश बरकरार"}}
	router := setupRouter(t, gen, staticExtractor{text: "judgment text"})

	out := decode(t, serve(router, uploadRequest(t, "/api/v1/summaries", "judgment.pdf", "hindi", []byte("%PDF-1.4"))))
	require.Equal(t, 0, out.Code)
	require.Equal(t, "The judgment has been simplified successfully.", out.Data["message"])
	result, ok := out.Data["result"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, "Hindi", result["language"])
	require.Contains(t, result["summary"], "अपील खारिज")
	require.Contains(t, result["html"], "<ul>")
	require.Equal(t, 1, gen.calls)
}

func TestCreateSummaryErrors(t *testing.T) {
	cases := []struct {
		name    string
		gen     *stubGenerator
		extract staticExtractor
		code    int
		msg     string
	}{
		{
			name:    "empty",
			gen:     &stubGenerator{replies: []string{"  "}},
			extract: staticExtractor{text: ""},
			code:    errcode.ErrEmptySummary,
			msg:     "The model returned an empty summary. Try a shorter file or switch to English.",
		},
		{
			name:    "quota",
			gen:     &stubGenerator{err: errors.New("Error code: 402 - insufficient credits")},
			extract: staticExtractor{text: "judgment"},
			code:    errcode.ErrQuota,
			msg:     "Not enough credits with the model provider. Please top up.",
		},
		{
			name:    "timeout",
			gen:     &stubGenerator{err: context.DeadlineExceeded},
			extract: staticExtractor{text: "judgment"},
			code:    errcode.ErrTimeout,
			msg:     "The model did not respond in time. Please try again.",
		},
		{
			name:    "generic",
			gen:     &stubGenerator{err: errors.New("connection refused")},
			extract: staticExtractor{text: "judgment"},
			code:    errcode.ErrInternal,
			msg:     "An error occurred: connection refused",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupRouter(t, tc.gen, tc.extract)
			out := decode(t, serve(router, uploadRequest(t, "/api/v1/summaries", "j.pdf", "English", []byte("%PDF"))))
			require.Equal(t, tc.code, out.Code)
			require.Equal(t, tc.msg, out.Msg)
		})
	}
}

func TestCreateSummaryRejectsInput(t *testing.T) {
	gen := &stubGenerator{replies: []string{"- ok"}}
	router := setupRouter(t, gen, staticExtractor{text: "judgment"})

	out := decode(t, serve(router, uploadRequest(t, "/api/v1/summaries", "j.pdf", "French", []byte("%PDF"))))
	require.Equal(t, errcode.ErrInvalidLanguage, out.Code)
	require.Equal(t, "language must be one of [English Hindi Bengali Urdu]", out.Msg)

	out = decode(t, serve(router, uploadRequest(t, "/api/v1/summaries", "", "English", nil)))
	require.Equal(t, errcode.ErrInvalidFile, out.Code)

	out = decode(t, serve(router, uploadRequest(t, "/api/v1/summaries", "notes.txt", "English", []byte("text"))))
	require.Equal(t, errcode.ErrInvalidFile, out.Code)

	out = decode(t, serve(router, uploadRequest(t, "/api/v1/summaries", "j.pdf", "English", nil)))
	require.Equal(t, errcode.ErrInvalidFile, out.Code)

	big := bytes.Repeat([]byte("a"), testUploadLimit+1)
	out = decode(t, serve(router, uploadRequest(t, "/api/v1/summaries", "j.pdf", "English", big)))
	require.Equal(t, errcode.ErrFileTooLarge, out.Code)
	require.Equal(t, "file exceeds 1MB", out.Msg)

	require.Zero(t, gen.calls)
}

func TestGetProperties(t *testing.T) {
	router := setupRouter(t, &stubGenerator{}, staticExtractor{})
	out := decode(t, serve(router, httptest.NewRequest(http.MethodGet, "/api/v1/properties", nil)))
	require.Equal(t, 0, out.Code)
	props, ok := out.Data["properties"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, []interface{}{"English", "Hindi", "Bengali", "Urdu"}, props["languages"])
	require.Equal(t, float64(summary.DefaultMaxInputChars), props["max_input_chars"])
}

func TestPageIndex(t *testing.T) {
	router := setupRouter(t, &stubGenerator{}, staticExtractor{})
	resp := serve(router, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	require.Contains(t, body, "LegalEase AI")
	require.Contains(t, body, "Generate Summary")
	for _, lang := range summary.SupportedLanguages() {
		require.Contains(t, body, `<option value="`+lang.String()+`"`)
	}
	require.NotContains(t, body, "Simplified Judgment")
}

func TestPageSubmit(t *testing.T) {
	gen := &stubGenerator{replies: []string{"- Appeal dismissed\n- No costs\n- Order upheld"}}
	router := setupRouter(t, gen, staticExtractor{text: "judgment"})

	resp := serve(router, uploadRequest(t, "/", "j.pdf", "English", []byte("%PDF")))
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	require.Contains(t, body, "Simplified Judgment")
	require.Contains(t, body, "<li>Appeal dismissed</li>")
	require.Contains(t, body, "The judgment has been simplified successfully.")
}

func TestPageSubmitError(t *testing.T) {
	gen := &stubGenerator{err: errors.New("402 Payment Required")}
	router := setupRouter(t, gen, staticExtractor{text: "judgment"})

	resp := serve(router, uploadRequest(t, "/", "j.pdf", "Urdu", []byte("%PDF")))
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	require.Contains(t, body, "Not enough credits with the model provider. Please top up.")
	require.NotContains(t, body, "Simplified Judgment")
	require.True(t, strings.Contains(body, `<option value="Urdu" selected>`))
}

func TestCreateSummaryBodyOverLimit(t *testing.T) {
	gen := &stubGenerator{replies: []string{"- ok"}}
	router := setupRouter(t, gen, staticExtractor{text: "judgment"})
	huge := bytes.Repeat([]byte("a"), testUploadLimit+2*1024*1024)

	out := decode(t, serve(router, uploadRequest(t, "/api/v1/summaries", "j.pdf", "English", huge)))
	require.Equal(t, errcode.ErrFileTooLarge, out.Code)
	require.Equal(t, "file exceeds 1MB", out.Msg)

	resp := serve(router, uploadRequest(t, "/", "j.pdf", "English", huge))
	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	require.Contains(t, body, "file exceeds 1MB")
	require.NotContains(t, body, "language must be one of")
	require.Zero(t, gen.calls)
}
