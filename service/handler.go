package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/0xalexb/kvline/config/parser/kv"
	"github.com/0xalexb/kvline/listener/middleware"
	"github.com/0xalexb/kvline/parse"
	"github.com/0xalexb/kvline/properties"
)

// Tokenizer modes accepted in a request.
const (
	ModeLines = "lines"
	ModeWords = "words"
)

var (
	// ErrUnknownMode is reported for a mode other than lines or words.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrEmptyText is reported for a request without text.
	ErrEmptyText = errors.New("text must not be empty")
)

// Request is the body of POST /parse.
type Request struct {
	Text      string            `json:"text"`
	Mode      string            `json:"mode,omitempty"`
	Schema    properties.Schema `json:"schema,omitempty"`
	Prefix    string            `json:"prefix,omitempty"`
	Normalize bool              `json:"normalize,omitempty"`
}

// EntryError describes one failed entry. Line and Column are 0 when the
// failure has no position, e.g. an input without tokens.
type EntryError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Offset  int    `json:"offset"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Token   string `json:"token,omitempty"`
}

// Response is the body returned by POST /parse.
type Response struct {
	Properties *properties.Properties `json:"properties"`
	Errors     []EntryError           `json:"errors"`
}

type problem struct {
	Error string `json:"error"`
}

type handler struct {
	opts   options
	logger *slog.Logger
}

// NewHandler returns the service with its middleware chain: request ID,
// access log, panic recovery, timeout and body size limit.
func NewHandler(opts ...Option) http.Handler {
	o := defaultOptions()

	for _, apply := range opts {
		apply(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &handler{opts: o, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /parse", h.parse)
	mux.HandleFunc("GET /healthz", h.health)

	mws := []middleware.Middleware{
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
	}

	if o.rate > 0 {
		mws = append(mws, middleware.RateLimit(o.rate, o.burst, logger))
	}

	mws = append(mws,
		middleware.Timeout(o.timeout),
		middleware.MaxRequestSize(o.maxBodyBytes),
	)

	return middleware.Chain(mux, mws...)
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) parse(w http.ResponseWriter, r *http.Request) {
	var req Request

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	err := decoder.Decode(&req)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.fail(w, r, http.StatusRequestEntityTooLarge, err)

			return
		}

		h.fail(w, r, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))

		return
	}

	parser, err := h.parserFor(req)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)

		return
	}

	props, err := parser.Properties([]byte(req.Text), req.Prefix)

	resp := Response{Properties: props, Errors: entryErrors(req.Text, err)}

	status := http.StatusOK
	if len(resp.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}

	h.logger.Debug("parsed request",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.Int("properties", props.Len()),
		slog.Int("errors", len(resp.Errors)))

	writeJSON(w, status, resp)
}

func (h *handler) parserFor(req Request) (*kv.Parser, error) {
	if req.Text == "" {
		return nil, ErrEmptyText
	}

	opts := []kv.Option{
		kv.WithPolicy(kv.Collect),
		kv.WithCommentMarkers(h.opts.commentMarkers),
		kv.WithLogger(h.logger),
	}

	switch req.Mode {
	case "", ModeLines:
	case ModeWords:
		opts = append(opts, kv.WithPattern(parse.WordPattern))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}

	schema := req.Schema
	if schema == nil {
		schema = h.opts.schema
	}

	if schema != nil {
		err := schema.Validate()
		if err != nil {
			return nil, fmt.Errorf("invalid schema: %w", err)
		}

		opts = append(opts, kv.WithSchema(schema))
	}

	if req.Normalize {
		opts = append(opts, kv.WithKeyNormalization())
	}

	return kv.NewParser(opts...), nil
}

// entryErrors flattens a Collect error into positioned entries.
func entryErrors(text string, err error) []EntryError {
	errs := kv.Errors(err)
	out := make([]EntryError, 0, len(errs))

	for _, entryErr := range errs {
		item := EntryError{Kind: "", Message: entryErr.Error(), Offset: -1, Line: 0, Column: 0, Token: ""}

		var perr *parse.Error
		if errors.As(entryErr, &perr) {
			item.Kind = perr.Kind.String()
			item.Message = perr.Error()
			item.Offset = perr.Offset
			item.Token = perr.Token
		}

		var lineErr *kv.LineError
		if errors.As(entryErr, &lineErr) {
			item.Line = lineErr.Position.Line
			item.Column = lineErr.Position.Column
		} else if item.Offset >= 0 {
			pos := parse.Locate(text, item.Offset)
			item.Line, item.Column = pos.Line, pos.Column
		}

		out = append(out, item)
	}

	return out
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.logger.Warn("rejected request",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.Int("status", status),
		slog.String("error", err.Error()))

	writeJSON(w, status, problem{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
