package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lox/pokerequity/analysis"
)

const (
	// Time allowed to send the equity request after connecting.
	requestWait = 10 * time.Second

	// Progress frames buffered ahead of the writer; extras are dropped.
	progressBuffer = 16
)

// Frame types sent on /ws/equity.
const (
	frameProgress = "progress"
	frameResult   = "result"
	frameError    = "error"
)

type wsFrame struct {
	Type      string          `json:"type"`
	Done      int             `json:"done,omitempty"`
	Total     int             `json:"total,omitempty"`
	ElapsedMS int64           `json:"elapsed_ms,omitempty"`
	Result    *equityResponse `json:"result,omitempty"`
	Error     *errorResponse  `json:"error,omitempty"`
}

func errorFrame(err error) wsFrame {
	status, kind := statusFor(err)
	msg := http.StatusText(status)
	if status < 500 {
		msg = err.Error()
	}
	return wsFrame{Type: frameError, Error: &errorResponse{Message: msg, Kind: kind, StatusCode: status}}
}

// getEquityWS runs one equity request per connection: the client sends an
// equity request as JSON and receives progress frames, then a result or
// error frame, then a normal close.
func (s *Server) getEquityWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := *zerolog.Ctx(r.Context())
		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("could not upgrade connection")
			return
		}
		defer func() { _ = conn.Close() }()

		conn.SetReadLimit(maxBodyBytes)
		_ = conn.SetReadDeadline(s.clock.Now().Add(requestWait))
		var req equityRequest
		if err := conn.ReadJSON(&req); err != nil {
			logger.Debug().Err(err).Msg("no equity request received")
			return
		}

		in, err := s.parseEquityRequest(req)
		if err != nil {
			recordError(r.Context(), err)
			if err := s.writeFrame(conn, errorFrame(err)); err == nil {
				s.writeClose(conn, websocket.CloseNormalClosure, "invalid request")
			}
			return
		}

		frames := make(chan wsFrame, progressBuffer)
		go func() {
			defer close(frames)
			resp, err := s.runEquity(in, logger, func(p analysis.Progress) {
				select {
				case frames <- wsFrame{Type: frameProgress, Done: p.Done, Total: p.Total, ElapsedMS: p.Elapsed.Milliseconds()}:
				default:
				}
			})
			if err != nil {
				recordError(r.Context(), err)
				frames <- errorFrame(err)
				return
			}
			frames <- wsFrame{Type: frameResult, Result: &resp}
		}()

		for f := range frames {
			if err := s.writeFrame(conn, f); err != nil {
				logger.Debug().Err(err).Msg("websocket write failed")
				for range frames {
				}
				return
			}
		}
		s.writeClose(conn, websocket.CloseNormalClosure, "done")
	}
}

func (s *Server) writeFrame(conn *websocket.Conn, f wsFrame) error {
	_ = conn.SetWriteDeadline(s.clock.Now().Add(s.cfg.WriteTimeout()))
	return conn.WriteJSON(f)
}

func (s *Server) writeClose(conn *websocket.Conn, code int, reason string) {
	_ = conn.SetWriteDeadline(s.clock.Now().Add(s.cfg.WriteTimeout()))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
}
