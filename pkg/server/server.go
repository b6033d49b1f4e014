package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/shopsearch/pkg/catalog"
	"github.com/bastiangx/shopsearch/pkg/e"
	"github.com/bastiangx/shopsearch/pkg/filter"
	"github.com/bastiangx/shopsearch/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// HistoryFunc returns the current recent and trending query lists.
type HistoryFunc func() (recent, trending []string)

// RecordFunc is told about every results-page search with a non-blank query.
type RecordFunc func(ctx context.Context, query string) error

// Server handles msgpack IPC for one catalog.
type Server struct {
	catalog   *catalog.Catalog
	suggester suggest.Suggester
	history   HistoryFunc
	record    RecordFunc
	dec       *msgpack.Decoder
	writer    *bufio.Writer
	enc       *msgpack.Encoder
}

// Option configures a Server.
type Option func(*Server)

// WithIO replaces stdin/stdout.
func WithIO(r io.Reader, w io.Writer) Option {
	return func(s *Server) {
		s.dec = msgpack.NewDecoder(bufio.NewReader(r))
		s.writer = bufio.NewWriter(w)
		s.enc = msgpack.NewEncoder(s.writer)
	}
}

// WithHistory sets where empty-query suggestions come from.
func WithHistory(fn HistoryFunc) Option {
	return func(s *Server) { s.history = fn }
}

// WithRecorder sets fn to receive submitted queries.
func WithRecorder(fn RecordFunc) Option {
	return func(s *Server) { s.record = fn }
}

// NewServer creates a server reading stdin and writing stdout.
func NewServer(cat *catalog.Catalog, sg suggest.Suggester, opts ...Option) *Server {
	s := &Server{
		catalog:   cat,
		suggester: sg,
		history:   func() ([]string, []string) { return nil, nil },
	}
	WithIO(os.Stdin, os.Stdout)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start serves requests until the input ends or ctx is cancelled.
// A clean end of input returns nil.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting IPC server.")
	s.send(StatusResponse{Status: "ready"})

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := s.dec.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Reading request: %v", err)
			return err
		}
		s.handleRequest(ctx, raw)
	}
}

// handleRequest decodes one message; a malformed message is answered and
// skipped without losing the stream position.
func (s *Server) handleRequest(ctx context.Context, raw msgpack.RawMessage) {
	var req Request
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		log.Debugf("Unmarshaling request: %v", err)
		s.sendError(uuid.NewString(), e.ErrStatusBadRequest)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	switch req.Op {
	case OpSuggest:
		s.handleSuggest(req)
	case OpSearch:
		s.handleSearch(ctx, req)
	case OpCategories:
		s.handleCategories(req)
	case OpHealth:
		s.send(StatusResponse{ID: req.ID, Status: "ok"})
	default:
		s.sendError(req.ID, e.Wrap(fmt.Sprintf("%q", req.Op), e.ErrUnknownOperation))
	}
}

func (s *Server) handleSuggest(req Request) {
	start := time.Now()
	recent, trending := s.history()
	list := s.suggester.Suggest(req.Query, recent, trending)

	s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: toSuggestionItems(list),
		Count:       len(list),
		TimeTaken:   time.Since(start).Microseconds(),
	})
}

func (s *Server) handleSearch(ctx context.Context, req Request) {
	if req.Limit < 0 {
		s.sendError(req.ID, e.ErrInvalidLimit)
		return
	}

	start := time.Now()
	st := req.Filters.State()
	var products []catalog.Product
	if req.Quick {
		products = filter.Quick(s.catalog, req.Query, st)
	} else {
		products = filter.Results(s.catalog, req.Query, st)
		s.recordQuery(ctx, req.Query)
	}
	count := len(products)
	if req.Limit > 0 && req.Limit < count {
		products = products[:req.Limit]
	}

	s.send(SearchResponse{
		ID:        req.ID,
		Products:  toProductItems(products),
		Count:     count,
		TimeTaken: time.Since(start).Microseconds(),
	})
}

func (s *Server) recordQuery(ctx context.Context, query string) {
	if s.record == nil || query == "" {
		return
	}
	if err := s.record(ctx, query); err != nil {
		log.Warnf("Recording query %q: %v", query, err)
	}
}

func (s *Server) handleCategories(req Request) {
	cats := s.catalog.Categories()
	items := make([]CategoryItem, len(cats))
	for i, c := range cats {
		items[i] = CategoryItem{
			ID:    c.ID,
			Label: c.Label,
			Icon:  c.Icon,
			Count: s.catalog.CountInCategory(c.ID),
		}
	}
	s.send(CategoriesResponse{ID: req.ID, Categories: items, Count: len(items)})
}

// send encodes response and flushes it so the client sees it immediately.
func (s *Server) send(response any) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
		return
	}
	if err := s.writer.Flush(); err != nil {
		log.Errorf("Writing response: %v", err)
	}
}

func (s *Server) sendError(id string, err error) {
	s.send(ErrorResponse{ID: id, Error: err.Error(), Code: statusCode(err)})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, e.ErrStatusBadRequest),
		errors.Is(err, e.ErrInvalidLimit),
		errors.Is(err, e.ErrUnknownOperation):
		return 400
	case errors.Is(err, e.ErrNotFound):
		return 404
	default:
		return 500
	}
}
