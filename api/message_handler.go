package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/toqaosama/portfolio-backend/database"
	"github.com/toqaosama/portfolio-backend/errs"
	"github.com/toqaosama/portfolio-backend/services"
)

const streamKeepAlive = 25 * time.Second

// messageHandler serves the read-only contact message inbox.
type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.ContactMessageRepo
	broker      services.Subscriber
}

func newMessageHandler(messageRepo *database.ContactMessageRepo, broker services.Subscriber) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
		broker:      broker,
	}
}

func (h messageHandler) getAllMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := h.messageRepo.List(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, messages)
	}
}

// streamMessages sends the current inbox as a "snapshot" event, then one
// "insert" event per new message until the client goes away. The feed is
// released on every exit path.
func (h messageHandler) streamMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.broker == nil {
			h.responder.WriteError(w, errs.NewConfigError("realtime"))
			return
		}
		flusher, ok := w.(http.Flusher)
		if !ok {
			h.responder.WriteError(w, errs.NewInternalError("streaming unsupported"))
			return
		}

		feed, err := services.OpenContactFeed(r.Context(), h.broker, h.messageRepo)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		defer feed.Close()

		// The stream outlives the server write timeout.
		if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
			h.logger.Debug().Err(err).Msg("could not clear write deadline")
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		if err := writeEvent(w, "snapshot", feed.Messages()); err != nil {
			h.logger.Debug().Err(err).Msg("stream closed before snapshot")
			return
		}
		flusher.Flush()

		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case msg, ok := <-feed.Updates():
				if !ok {
					return
				}
				if err := writeEvent(w, "insert", msg); err != nil {
					h.logger.Debug().Err(err).Msg("stream closed")
					return
				}
				flusher.Flush()
			case <-keepAlive.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				flusher.Flush()
			}
		}
	}
}

func writeEvent(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}
