// Package websocket streams KWIC matches to a client as they are found,
// instead of materializing a full page up front. This is a deliberately
// smaller design than the teacher's internal/web/websocket package: that
// hub/room/broadcast model exists to fan a message out to many
// subscribers of a chat room, which has no analogue here. A concordance
// search is a single pull-based iter.Seq[KWIC] (internal/match, internal/
// search) per connection, so each connection gets its own goroutine pair
// pumping that sequence straight to the socket — grounded on the
// teacher's upgrader.go for connection setup and client.go's
// ReadPump/WritePump split for serializing writes through one goroutine
// and detecting a gone peer, without the hub fan-out.
package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/czcorpus/kwic/internal/errors"
	"github.com/czcorpus/kwic/internal/search"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// request is the client's initial JSON frame: the query to run plus the
// context window sizes (spec.md §6).
type request struct {
	Query string `json:"query"`
	Left  int    `json:"left"`
	Right int    `json:"right"`
}

// frame is one streamed server->client message: either a match record or
// a terminal error/done signal.
type frame struct {
	Type   string              `json:"type"`
	Record *search.KWICRecord  `json:"record,omitempty"`
	Errors []errors.Diagnostic `json:"errors,omitempty"`
}

// Handler streams search results over a WebSocket connection for idx.
type Handler struct {
	idx          *search.Index
	defaultLeft  int
	defaultRight int
}

// NewHandler builds a streaming handler bound to idx.
func NewHandler(idx *search.Index, defaultLeft, defaultRight int) *Handler {
	return &Handler{idx: idx, defaultLeft: defaultLeft, defaultRight: defaultRight}
}

// conn wraps one upgraded WebSocket with the teacher's ReadPump/WritePump
// split: WritePump is the only goroutine that ever calls conn.WriteMessage,
// so pings and search-result frames never race on the same connection.
// Likewise ReadPump is the only goroutine that ever calls a read method on
// the connection — including the client's initial query frame — since
// gorilla/websocket permits only one reader too, and pongs are only
// processed while a read is in flight.
type conn struct {
	ws     *websocket.Conn
	send   chan []byte
	reqCh  chan request
	ctx    context.Context
	cancel context.CancelFunc
}

// ServeHTTP upgrades the request to a WebSocket, reads a single query
// request frame, then streams one frame per KWIC match until the
// sequence is exhausted or the client disconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	c := &conn{
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		reqCh:  make(chan request, 1),
		ctx:    ctx,
		cancel: cancel,
	}
	defer c.cancel()

	go c.readPump()
	go c.writePump()

	var req request
	select {
	case req = <-c.reqCh:
	case <-c.ctx.Done():
		return
	}
	left, right := req.Left, req.Right
	if left <= 0 {
		left = h.defaultLeft
	}
	if right <= 0 {
		right = h.defaultRight
	}

	results, errs := h.idx.Search(req.Query, left, right)
	if len(errs) > 0 {
		c.sendFrame(frame{Type: "error", Errors: errors.ToDiagnostics(errs)})
		return
	}

	for kwic := range results {
		rec := search.ToRecord(kwic)
		if !c.sendFrame(frame{Type: "record", Record: &rec}) {
			return
		}
	}
	c.sendFrame(frame{Type: "done"})
}

// sendFrame marshals f and hands it to writePump, returning false if the
// connection is already gone (so the caller can stop pulling the search
// iterator rather than keep scanning for a dead peer).
func (c *conn) sendFrame(f frame) bool {
	body, err := json.Marshal(f)
	if err != nil {
		return false
	}
	select {
	case c.send <- body:
		return true
	case <-c.ctx.Done():
		return false
	}
}

// readPump is the only goroutine that ever reads from the connection, the
// ReadPump half of the teacher's client.go split: it reads the client's
// initial query frame, hands it to ServeHTTP over reqCh, then keeps
// reading so that pongs (processed inline by gorilla/websocket during a
// read) and the eventual disconnect are detected promptly rather than
// only surfacing on the next failed write. Nothing in this protocol
// expects further client->server messages after the initial query, so
// any later payload is discarded; only the pong handler and the read
// error matter from then on.
func (c *conn) readPump() {
	defer c.cancel()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	var req request
	if err := c.ws.ReadJSON(&req); err != nil {
		return
	}
	select {
	case c.reqCh <- req:
	case <-c.ctx.Done():
		return
	}

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump is the single goroutine that ever calls conn.WriteMessage,
// serializing outgoing frames with the periodic keepalive ping (the
// teacher's client.go WritePump).
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return

		case body, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, body); err != nil {
				return
			}

		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
