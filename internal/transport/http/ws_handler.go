package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"millionaire-game-service/internal/app"
	"millionaire-game-service/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type answerPayload struct {
	Slot domain.SlotKey `json:"slot"`
}

type lifelinePayload struct {
	Kind domain.LifelineKind `json:"kind"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// questionView is the client-facing shape of the current question; it
// never carries the correct slot.
type questionView struct {
	Level    int                                           `json:"level"`
	Text     string                                        `json:"text"`
	Variants map[domain.SlotKey]string                     `json:"variants"`
	Help     map[domain.LifelineKind]domain.LifelineResult `json:"help,omitempty"`
}

type gameStateView struct {
	SessionID     string                `json:"sessionId"`
	Status        domain.SessionStatus  `json:"status"`
	Level         int                   `json:"level"`
	Prize         int                   `json:"prize"`
	TimeLeftSecs  int                   `json:"timeLeftSeconds"`
	UsedLifelines []domain.LifelineKind `json:"usedLifelines"`
	Question      *questionView         `json:"question,omitempty"`
}

type answerResult struct {
	Correct bool          `json:"correct"`
	State   gameStateView `json:"state"`
}

type lifelineResult struct {
	Result domain.LifelineResult `json:"result"`
	State  gameStateView         `json:"state"`
}

// ServeWS upgrades HTTP requests to websockets and wires them into the
// game use cases.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	playerID := r.URL.Query().Get("playerId")
	if playerID == "" {
		http.Error(w, "missing playerId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws read failed: %v", err)
			}
			return
		}
		h.dispatch(r, conn, playerID, msg)
	}
}

func (h *WSHandler) dispatch(r *http.Request, conn *websocket.Conn, playerID string, msg inboundMessage) {
	ctx := r.Context()
	switch msg.Type {
	case "start":
		session, err := h.service.Start(ctx, playerID)
		if err != nil {
			writeError(conn, err)
			return
		}
		_ = conn.WriteJSON(outboundMessage[gameStateView]{Type: "state", Payload: stateView(session)})

	case "answer":
		var payload answerPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			writeError(conn, err)
			return
		}
		correct, session, err := h.service.Answer(ctx, playerID, payload.Slot)
		if err != nil {
			writeError(conn, err)
			return
		}
		_ = conn.WriteJSON(outboundMessage[answerResult]{
			Type:    "answer_result",
			Payload: answerResult{Correct: correct, State: stateView(session)},
		})

	case "lifeline":
		var payload lifelinePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			writeError(conn, err)
			return
		}
		result, session, err := h.service.UseLifeline(ctx, playerID, payload.Kind)
		if err != nil {
			writeError(conn, err)
			return
		}
		_ = conn.WriteJSON(outboundMessage[lifelineResult]{
			Type:    "lifeline_result",
			Payload: lifelineResult{Result: result, State: stateView(session)},
		})

	case "cash_out":
		session, err := h.service.CashOut(ctx, playerID)
		if err != nil {
			writeError(conn, err)
			return
		}
		_ = conn.WriteJSON(outboundMessage[gameStateView]{Type: "state", Payload: stateView(session)})

	case "state":
		session, ok := h.service.Active(playerID)
		if !ok {
			writeError(conn, domain.ErrSessionNotFound)
			return
		}
		_ = conn.WriteJSON(outboundMessage[gameStateView]{Type: "state", Payload: stateView(session)})

	default:
		writeError(conn, errors.New("unknown message type: "+msg.Type))
	}
}

func writeError(conn *websocket.Conn, err error) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
}

func stateView(session *app.Session) gameStateView {
	view := gameStateView{
		SessionID:     session.ID(),
		Status:        session.Status(),
		Level:         session.CurrentLevel(),
		Prize:         session.Prize(),
		UsedLifelines: session.UsedLifelines(),
	}
	if left := session.TimeLeft(); left > 0 && !session.Finished() {
		view.TimeLeftSecs = int(left.Seconds())
	}
	if q := session.CurrentQuestion(); q != nil && !session.Finished() {
		view.Question = &questionView{
			Level:    q.Level(),
			Text:     q.Text(),
			Variants: q.Variants(),
			Help:     q.Help(),
		}
	}
	return view
}
