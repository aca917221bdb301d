package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/sqlserve/internal/logger"
	"github.com/bastiangx/sqlserve/pkg/complete"
	"github.com/bastiangx/sqlserve/pkg/config"
)

// Server handles the IPC for SQL completions
type Server struct {
	engine  *complete.Engine
	catalog complete.Catalog
	cfg     *config.Config
	log     *log.Logger
	dec     *msgpack.Decoder
	enc     *msgpack.Encoder
}

// NewServer creates a completion server using stdin/stdout for IPC
func NewServer(engine *complete.Engine, catalog complete.Catalog, cfg *config.Config) *Server {
	return NewServerWithIO(engine, catalog, cfg, os.Stdin, os.Stdout)
}

// NewServerWithIO creates a server over arbitrary streams, mainly for tests
func NewServerWithIO(engine *complete.Engine, catalog complete.Catalog, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	return &Server{
		engine:  engine,
		catalog: catalog,
		cfg:     cfg,
		log:     logger.New("ipc"),
		dec:     msgpack.NewDecoder(r),
		enc:     msgpack.NewEncoder(w),
	}
}

// Start begins listening for IPC requests
func (s *Server) Start() error {
	s.log.Debug("Starting Server.")

	// Signal that the server is ready
	s.send(StatusResponse{Status: "ready"})

	for {
		var request Request
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			s.log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handleRequest(request)
	}
}

// handleRequest dispatches on op
func (s *Server) handleRequest(request Request) {
	switch request.Op {
	case "complete":
		s.handleComplete(request)
	case "record_usage":
		s.handleRecordUsage(request)
	case "refresh":
		s.handleRefresh(request)
	case "status":
		s.handleStatus(request)
	default:
		s.sendError(request.ID, fmt.Sprintf("Unknown op: %s", request.Op), 400)
	}
}

func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		s.log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

// handleComplete validates the request, asks the engine for ranked
// matches and sends them back with timing info.
func (s *Server) handleComplete(request Request) {
	if len(request.Text) > s.cfg.Server.MaxText {
		s.sendError(request.ID, fmt.Sprintf("Text exceeds maximum length of %d characters", s.cfg.Server.MaxText), 400)
		s.log.Debug("Text is too long in request")
		return
	}

	kind, ok := complete.ParseKind(request.Kind)
	if !ok {
		s.sendError(request.ID, fmt.Sprintf("Unknown suggestion kind: %q", request.Kind), 400)
		return
	}

	limit := request.Limit
	if limit < 1 || limit > s.cfg.Server.MaxLimit {
		limit = s.cfg.Server.MaxLimit
	}

	tables := make([]complete.TableRef, len(request.Tables))
	for i, t := range request.Tables {
		tables[i] = complete.TableRef{Schema: t.Schema, Name: t.Name, Alias: t.Alias}
	}

	suggestion := complete.Suggestion{
		Kind:         kind,
		Schema:       request.Schema,
		Tables:       tables,
		Aliases:      request.Aliases,
		UniqueOnly:   request.UniqueOnly,
		SetReturning: request.SetReturning,
	}
	span := complete.Span{Start: request.Start, End: request.End}

	start := time.Now()
	matches, err := s.engine.Matches(context.Background(), suggestion, request.Text, span)
	elapsed := time.Since(start)
	if err != nil {
		code := 500
		if errors.Is(err, complete.ErrUnsupportedKind) {
			code = 400
		}
		s.sendError(request.ID, err.Error(), code)
		s.log.Errorf("Completing %s request: %v", request.Kind, err)
		return
	}

	if len(matches) > limit {
		matches = matches[:limit]
	}
	items := make([]MatchItem, len(matches))
	for i, m := range matches {
		items[i] = MatchItem{
			Text:  m.Text,
			Label: m.Label,
			Start: m.Span.Start,
			End:   m.Span.End,
			Rank:  uint16(i + 1),
		}
	}

	s.send(CompleteResponse{
		ID:        request.ID,
		Matches:   items,
		Count:     len(items),
		TimeTaken: elapsed.Milliseconds(),
	})
}

// handleRecordUsage feeds an accepted completion back into the ranker
func (s *Server) handleRecordUsage(request Request) {
	if request.Keyword == "" && request.Name == "" {
		s.sendError(request.ID, "Missing 'keyword' or 'name' parameter", 400)
		return
	}
	if request.Keyword != "" {
		s.engine.RecordKeywordUsage(request.Keyword)
	}
	if request.Name != "" {
		s.engine.RecordNameUsage(request.Name)
	}
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

// handleRefresh drops cached catalog state when the provider supports it
func (s *Server) handleRefresh(request Request) {
	if c, ok := s.catalog.(interface{ Invalidate() }); ok {
		c.Invalidate()
		s.log.Debug("Catalog cache invalidated")
	}
	s.send(StatusResponse{ID: request.ID, Status: "ok"})
}

// handleStatus reports keyword and cache counters
func (s *Server) handleStatus(request Request) {
	response := StatusResponse{
		ID:       request.ID,
		Status:   "ok",
		Keywords: s.engine.Keywords().Len(),
	}
	if c, ok := s.catalog.(interface{ Stats() map[string]int }); ok {
		response.Cache = c.Stats()
	}
	s.send(response)
}
