package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"portfolio-chat/internal/llmservice"
	"portfolio-chat/internal/models"
)

// ChatStreamer is what the handler needs from the RAG pipeline.
type ChatStreamer interface {
	ChatStream(ctx context.Context, history []models.Message, message string) (<-chan llmservice.StreamToken, error)
}

// Mailer delivers contact-form submissions.
type Mailer interface {
	SendContact(ctx context.Context, form models.ContactForm) error
}

type Handler struct {
	chat ChatStreamer
	mail Mailer
}

func NewHandler(chat ChatStreamer, mail Mailer) *Handler {
	return &Handler{chat: chat, mail: mail}
}

// Chat handles POST /api/chat. The response is text/plain: the raw
// concatenation of the generation stream, flushed fragment by fragment.
func (h *Handler) Chat(c echo.Context) error {
	var req models.ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Server Error: invalid request body")
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.String(http.StatusBadRequest, "Server Error: message is required")
	}

	ctx := c.Request().Context()
	stream, err := h.chat.ChatStream(ctx, req.History, req.Message)
	if err != nil {
		log.Error().Err(err).Msg("Chat pipeline failed")
		return c.String(http.StatusInternalServerError, "Server Error: "+err.Error())
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")

	started := false
	for {
		select {
		case <-ctx.Done():
			// Client went away; stop draining so the upstream relay
			// can unwind.
			return nil
		case token, ok := <-stream:
			if !ok {
				if !started {
					// Generation produced nothing: an empty 200 is valid.
					res.WriteHeader(http.StatusOK)
				}
				return nil
			}
			if token.Err != nil {
				log.Error().Err(token.Err).Msg("Generation stream failed")
				if !started {
					return c.String(http.StatusInternalServerError, "Server Error: "+token.Err.Error())
				}
				// Bytes are already on the wire, so the status line is
				// gone. Abort the connection without the terminal chunk
				// so the client sees a failure, not a clean truncation.
				panic(http.ErrAbortHandler)
			}
			if !started {
				res.WriteHeader(http.StatusOK)
				started = true
			}
			if _, err := res.Write([]byte(token.Content)); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

// Contact handles POST /api/contact with the success/message shape the
// portfolio UI expects.
func (h *Handler) Contact(c echo.Context) error {
	var form models.ContactForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, models.ContactResponse{Success: false, Message: "All fields are required."})
	}
	if form.Name == "" || form.Email == "" || form.Subject == "" || form.Message == "" {
		return c.JSON(http.StatusBadRequest, models.ContactResponse{Success: false, Message: "All fields are required."})
	}

	if err := h.mail.SendContact(c.Request().Context(), form); err != nil {
		log.Error().Err(err).Msg("Contact mail delivery failed")
		return c.JSON(http.StatusBadGateway, models.ContactResponse{Success: false, Message: "Failed to send message. Please try again later."})
	}
	return c.JSON(http.StatusOK, models.ContactResponse{Success: true, Message: "Your messenger bird has successfully delivered the message!"})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
