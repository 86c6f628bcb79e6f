package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-chat/internal/llmservice"
	"portfolio-chat/internal/models"
)

type fakeChat struct {
	calls     int
	tokens    []string
	streamErr error
	err       error
}

func (f *fakeChat) ChatStream(ctx context.Context, history []models.Message, message string) (<-chan llmservice.StreamToken, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	ch := make(chan llmservice.StreamToken, len(f.tokens)+1)
	for _, tok := range f.tokens {
		ch <- llmservice.StreamToken{Content: tok}
	}
	if f.streamErr != nil {
		ch <- llmservice.StreamToken{Err: f.streamErr}
	}
	close(ch)
	return ch, nil
}

type fakeMailer struct {
	calls int
	form  models.ContactForm
	err   error
}

func (f *fakeMailer) SendContact(ctx context.Context, form models.ContactForm) error {
	f.calls++
	f.form = form
	return f.err
}

func doChat(h *Handler, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h.Chat(e.NewContext(req, rec))
}

func TestChatStreamsAnswer(t *testing.T) {
	chat := &fakeChat{tokens: []string{"Python", " is one of his skills."}}
	h := NewHandler(chat, &fakeMailer{})

	rec, err := doChat(h, `{"history": [], "message": "What languages does Khoirul know?"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "Python is one of his skills.", rec.Body.String())
}

func TestChatEmptyStreamIsValid(t *testing.T) {
	h := NewHandler(&fakeChat{}, &fakeMailer{})

	rec, err := doChat(h, `{"message": "hello"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestChatMissingMessage(t *testing.T) {
	chat := &fakeChat{tokens: []string{"never"}}
	h := NewHandler(chat, &fakeMailer{})

	rec, err := doChat(h, `{"history": []}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server Error: message is required")
	assert.Equal(t, 0, chat.calls, "pipeline must not run for invalid input")
}

func TestChatMalformedJSON(t *testing.T) {
	chat := &fakeChat{}
	h := NewHandler(chat, &fakeMailer{})

	rec, err := doChat(h, `{"message": `)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server Error:")
	assert.Equal(t, 0, chat.calls)
}

func TestChatPipelineFailure(t *testing.T) {
	h := NewHandler(&fakeChat{err: errors.New("embedding query: quota exceeded")}, &fakeMailer{})

	rec, err := doChat(h, `{"message": "hi"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Server Error: "), "body: %s", rec.Body.String())
}

func TestChatErrorBeforeFirstByte(t *testing.T) {
	h := NewHandler(&fakeChat{streamErr: errors.New("generation stream: bad request")}, &fakeMailer{})

	rec, err := doChat(h, `{"message": "hi"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server Error: generation stream")
}

func TestChatMidStreamErrorAbortsConnection(t *testing.T) {
	h := NewHandler(&fakeChat{tokens: []string{"partial"}, streamErr: errors.New("upstream reset")}, &fakeMailer{})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		_, _ = doChat(h, `{"message": "hi"}`)
	})
}

func doContact(h *Handler, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, h.Contact(e.NewContext(req, rec))
}

func TestContactDeliversMail(t *testing.T) {
	mailer := &fakeMailer{}
	h := NewHandler(&fakeChat{}, mailer)

	rec, err := doContact(h, `{"name":"Naruto","email":"n@konoha.io","subject":"Hi","message":"Hello"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.Equal(t, "Naruto", mailer.form.Name)
}

func TestContactRequiresAllFields(t *testing.T) {
	mailer := &fakeMailer{}
	h := NewHandler(&fakeChat{}, mailer)

	rec, err := doContact(h, `{"name":"Naruto","email":"n@konoha.io"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "All fields are required.")
	assert.Equal(t, 0, mailer.calls)
}

func TestContactDeliveryFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("mail API returned 500")}
	h := NewHandler(&fakeChat{}, mailer)

	rec, err := doContact(h, `{"name":"a","email":"b","subject":"c","message":"d"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestHealth(t *testing.T) {
	h := NewHandler(&fakeChat{}, &fakeMailer{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Health(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
}
