package document

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"sgfkit/internal/domain/document"
	"sgfkit/internal/httpresponse"
)

const liveWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveConn - подключение к /live со своим замком на запись:
// gorilla/websocket не допускает параллельных писателей на одно соединение.
type liveConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *liveConn) write(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// HandleLive принимает ходы по websocket и рассылает новое состояние
// всем, кто смотрит документ, включая автора хода. Сразу после
// подключения клиент получает текущий текст SGF.
func (h *DocumentHandler) HandleLive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, err := gameIndex(r)
	if err != nil {
		httpresponse.WriteError(w, err)
		return
	}
	if _, err = h.docUC.GetDocument(r.Context(), id); err != nil {
		h.log.Errorw("live: document unavailable", "id", id, "error", err)
		httpresponse.WriteError(w, err)
		return
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorw("upgrade error", "error", err)
		return
	}
	conn := &liveConn{conn: ws}
	h.subscribe(id, conn)
	defer h.unsubscribe(id, conn)

	// Первое сообщение - текущее состояние документа.
	text, err := h.docUC.GetSGF(r.Context(), id)
	if err != nil {
		h.log.Errorw("live: failed to load sgf", "id", id, "error", err)
		return
	}
	h.writeTo(conn, document.GameStateResponse{SGF: text})

	for {
		var move document.Move
		if err = ws.ReadJSON(&move); err != nil {
			h.log.Debugw("live connection closed", "id", id, "error", err)
			return
		}

		text, err := h.docUC.AppendMove(r.Context(), id, index, move)
		if err != nil {
			h.log.Warnw("live move rejected", "id", id, "move", move, "error", err)
			h.writeTo(conn, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
			continue
		}
		h.broadcast(id, document.GameStateResponse{Move: move, SGF: text})
	}
}

func (h *DocumentHandler) subscribe(id string, conn *liveConn) {
	h.liveMu.Lock()
	defer h.liveMu.Unlock()
	if h.live[id] == nil {
		h.live[id] = make(map[*liveConn]struct{})
	}
	h.live[id][conn] = struct{}{}
}

func (h *DocumentHandler) unsubscribe(id string, conn *liveConn) {
	h.liveMu.Lock()
	delete(h.live[id], conn)
	if len(h.live[id]) == 0 {
		delete(h.live, id)
	}
	h.liveMu.Unlock()
	_ = conn.conn.Close()
}

// connections возвращает копию списка подключений документа, чтобы
// писать в них без общего мьютекса.
func (h *DocumentHandler) connections(id string) []*liveConn {
	h.liveMu.Lock()
	defer h.liveMu.Unlock()
	conns := make([]*liveConn, 0, len(h.live[id]))
	for conn := range h.live[id] {
		conns = append(conns, conn)
	}
	return conns
}

func (h *DocumentHandler) closeLive(id string) {
	h.liveMu.Lock()
	conns := h.live[id]
	delete(h.live, id)
	h.liveMu.Unlock()
	for conn := range conns {
		_ = conn.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "document deleted"), time.Now().Add(time.Second))
		_ = conn.conn.Close()
	}
}

// broadcast пишет сообщение всем подключениям документа. Медленный клиент
// задерживает только свою запись, и не дольше liveWriteTimeout.
func (h *DocumentHandler) broadcast(id string, msg any) {
	for _, conn := range h.connections(id) {
		if err := conn.write(msg); err != nil {
			h.log.Warnw("write to live connection failed", "id", id, "error", err)
			h.unsubscribe(id, conn)
		}
	}
}

func (h *DocumentHandler) writeTo(conn *liveConn, msg any) {
	if err := conn.write(msg); err != nil {
		h.log.Warnw("write to live connection failed", "error", err)
	}
}
