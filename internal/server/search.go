package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/bnn-network/perplexed/internal/pipeline"
	"github.com/labstack/echo/v4"
)

const rateLimitedMessage = "Rate limit exceeded. Please try again later."

type streamSearchRequest struct {
	UserPrompt          string                      `json:"user_prompt"`
	ConversationHistory []pipeline.ConversationTurn `json:"conversation_history"`
}

// rejection is the non-stage payload used for input and admission errors.
type rejection struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StreamSearchHandler serves the long-lived streaming search endpoint.
type StreamSearchHandler struct {
	Pipeline *pipeline.Pipeline
	Logger   *log.Logger
}

func (h *StreamSearchHandler) Register(e *echo.Echo) {
	e.POST("/stream_search", h.streamSearch)
}

// streamSearch runs the pipeline and forwards each stage event to the caller
// as a newline-delimited JSON record, flushed as soon as it is produced. A
// rate-limited run yields exactly one rejection record and no stage events.
func (h *StreamSearchHandler) streamSearch(c echo.Context) error {
	var req streamSearchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.UserPrompt) == "" {
		return c.JSON(http.StatusBadRequest, rejection{Message: "Please provide a user prompt."})
	}
	h.Logger.Printf("stream_search query: %s", req.UserPrompt)

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	resp.WriteHeader(http.StatusOK)
	enc := json.NewEncoder(resp)

	// A disconnecting caller must not cancel in-flight remote calls; the
	// run finishes on its own per-call timeouts.
	ctx := context.WithoutCancel(c.Request().Context())

	events := make(chan pipeline.StageEvent)
	errCh := make(chan error, 1)
	go func() {
		defer close(events)
		_, err := h.Pipeline.Run(ctx, pipeline.Request{
			UserPrompt: req.UserPrompt,
			History:    req.ConversationHistory,
		}, events)
		errCh <- err
	}()

	// The channel is unbuffered: writing and flushing here holds the
	// pipeline back until the caller has seen the previous stage.
	for ev := range events {
		if err := enc.Encode(ev); err != nil {
			return err
		}
		resp.Flush()
	}

	if err := <-errCh; err != nil {
		if errors.Is(err, pipeline.ErrRateLimited) {
			if err := enc.Encode(rejection{Success: false, Message: rateLimitedMessage}); err != nil {
				return err
			}
			resp.Flush()
		}
		// Other failures were already reported in-stream as a failed
		// results event.
	}
	return nil
}
