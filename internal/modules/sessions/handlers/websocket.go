package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"nhooyr.io/websocket"

	"github.com/aristath/taxboard/internal/modules/dashboard"
)

const wsWriteTimeout = 10 * time.Second

// Reply is sent for every websocket intent, in order.
type Reply struct {
	Frame  *dashboard.Frame `json:"frame,omitempty"`
	Error  string           `json:"error,omitempty"`
	Status int              `json:"status,omitempty"`
}

// HandleWebsocket handles GET /api/sessions/{id}/ws. Each text message is an
// Intent; the reply is written before the next message is read.
func (h *Handler) HandleWebsocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.store.Get(id); err != nil {
		h.writeFailure(w, err)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		h.log.Warn().Err(err).Str("session", id).Msg("Websocket accept failed")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "unexpected close")

	h.log.Debug().Str("session", id).Msg("Websocket connected")
	ctx := r.Context()

	for {
		msgType, message, err := conn.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				conn.Close(websocket.StatusNormalClosure, "")
				h.log.Debug().Str("session", id).Msg("Websocket closed")
				return
			}
			h.log.Debug().Err(err).Str("session", id).Msg("Websocket read failed")
			return
		}
		if msgType != websocket.MessageText {
			continue
		}

		reply := h.reply(id, message)
		if err := h.writeReply(ctx, conn, reply); err != nil {
			h.log.Debug().Err(err).Str("session", id).Msg("Websocket write failed")
			return
		}
		if reply.Status == http.StatusNotFound && reply.Frame == nil {
			conn.Close(websocket.StatusPolicyViolation, "session expired")
			return
		}
	}
}

func (h *Handler) reply(id string, message []byte) Reply {
	sess, err := h.store.Get(id)
	if err != nil {
		return Reply{Error: err.Error(), Status: StatusFor(err)}
	}

	var intent Intent
	if err := json.Unmarshal(message, &intent); err != nil {
		return Reply{Error: "invalid intent: " + err.Error(), Status: http.StatusBadRequest}
	}
	if err := intent.Apply(sess); err != nil {
		frame := sess.Recorder.Frame()
		return Reply{Frame: &frame, Error: err.Error(), Status: StatusFor(err)}
	}

	frame := sess.Recorder.Frame()
	return Reply{Frame: &frame, Status: http.StatusOK}
}

func (h *Handler) writeReply(ctx context.Context, conn *websocket.Conn, reply Reply) error {
	data, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	writeCtx, cancel := context.WithTimeout(ctx, wsWriteTimeout)
	defer cancel()
	return conn.Write(writeCtx, websocket.MessageText, data)
}
