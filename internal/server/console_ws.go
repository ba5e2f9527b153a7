package server

import (
	"context"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/raysh454/apiprobe/internal/compare"
	"github.com/raysh454/apiprobe/internal/logging"
)

// handleConsoleWS runs every inbound request on its own goroutine and writes
// each reply as soon as it resolves. Replies are not ordered; the page keeps
// whichever arrives last.
func (s *Server) handleConsoleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}

	// Requests have no cancel control of their own. They only stop when the
	// socket goes away and nobody is left to read the reply.
	ctx, cancel := context.WithCancel(r.Context())
	var wg sync.WaitGroup
	defer conn.Close()
	defer wg.Wait()
	defer cancel()

	var writeMu sync.Mutex
	reply := func(v any) {
		data, err := json.Marshal(v)
		if err != nil {
			s.logger.Error("encoding websocket reply", logging.Field{Key: "error", Value: err.Error()})
			return
		}
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.logger.Debug("writing websocket reply", logging.Field{Key: "error", Value: err.Error()})
		}
	}

	s.logger.Info("console websocket opened", logging.Field{Key: "remote", Value: r.RemoteAddr})
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("reading websocket", logging.Field{Key: "error", Value: err.Error()})
			}
			return
		}

		var msg SocketMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reply(SocketError{Error: "invalid JSON"})
			continue
		}
		id := msg.ID
		if id == "" {
			id = msg.Request.ID
		}
		if id == "" {
			id = s.newID()
		}
		spec, err := msg.Request.Spec(s.catalog.BaseURL)
		if err != nil {
			reply(SocketError{ID: id, Error: err.Error()})
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			out := <-s.exec.Dispatch(ctx, spec)
			s.logger.Info("executed request",
				logging.Field{Key: "id", Value: id},
				logging.Field{Key: "method", Value: string(spec.Method)},
				logging.Field{Key: "url", Value: spec.URL()},
				logging.Field{Key: "ok", Value: out.OK()})
			reply(newExecuteResponse(id, out))
		}()
	}
}

func newDiffResponse(req DiffRequest) DiffResponse {
	res := compare.Diff(req.BaseID, req.HeadID, req.Base, req.Head)
	return DiffResponse{Result: res, Text: res.Unified()}
}
