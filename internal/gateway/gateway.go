// Package gateway relays authenticated console requests to the upstream API.
//
// Every registered route runs the same pipeline: check the bearer credential,
// build one upstream call, translate the upstream response according to the
// route's declared Policy and emit it. The gateway never consults permission
// decisions; the upstream API authorizes every forwarded call itself.
package gateway

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/irevlogix/irevlogix-console/internal/credential"
	"github.com/irevlogix/irevlogix-console/internal/platform/httpx"
)

// Headers copied between the console and upstream.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderRequestID  = "X-Request-ID"
)

// Gateway forwards registered routes to the upstream base address.
type Gateway struct {
	baseURL  string
	client   *http.Client
	logger   *slog.Logger
	observer Observer
	validate *validator.Validate
	routes   []Route
}

// Option customises a Gateway.
type Option func(*Gateway)

// WithHTTPClient overrides the HTTP client used for upstream calls.
func WithHTTPClient(client *http.Client) Option {
	return func(g *Gateway) {
		if client != nil {
			g.client = client
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithObserver sets the metrics observer.
func WithObserver(observer Observer) Option {
	return func(g *Gateway) {
		if observer != nil {
			g.observer = observer
		}
	}
}

// New constructs a Gateway targeting baseURL.
func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   http.DefaultClient,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Register validates and adds routes. Nothing is added when any route is invalid.
func (g *Gateway) Register(routes ...Route) error {
	seen := make(map[string]struct{}, len(g.routes)+len(routes))
	for _, existing := range g.routes {
		seen[existing.Method+" "+existing.Pattern] = struct{}{}
	}
	for _, route := range routes {
		if err := validateRoute(g.validate, route); err != nil {
			return err
		}
		key := route.Method + " " + route.Pattern
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w %q: duplicate %s", ErrInvalidRoute, route.Name, key)
		}
		seen[key] = struct{}{}
	}
	g.routes = append(g.routes, routes...)
	return nil
}

// Routes returns a copy of the registered routes.
func (g *Gateway) Routes() []Route {
	out := make([]Route, len(g.routes))
	copy(out, g.routes)
	return out
}

// MountRoutes registers every route on r.
func (g *Gateway) MountRoutes(r chi.Router) {
	for _, route := range g.routes {
		r.Method(route.Method, route.Pattern, g.Handler(route))
	}
}

// Handler returns the forwarding handler for one route.
func (g *Gateway) Handler(route Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stage := StageReceived
		requestID := middleware.GetReqID(r.Context())
		if requestID == "" {
			requestID = uuid.NewString()
		}
		logger := g.logger.With(slog.String("route", route.Name), slog.String("request_id", requestID))

		defer func() {
			if rec := recover(); rec != nil {
				g.fail(w, logger, route, stage, fmt.Errorf("panic: %v", rec))
			}
		}()

		cred, ok := credential.FromRequest(r)
		if !ok && !route.Public {
			logger.Info("rejected request without credential", slog.String("method", r.Method), slog.String("path", r.URL.Path))
			g.observer.ObserveFailure(route.Name, string(stage))
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		stage = StageCredentialChecked

		outbound, err := g.buildRequest(r, route, cred, requestID)
		if err != nil {
			g.fail(w, logger, route, stage, err)
			return
		}
		started := time.Now()
		resp, err := g.client.Do(outbound)
		if err != nil {
			g.fail(w, logger, route, stage, fmt.Errorf("upstream call: %w", err))
			return
		}
		defer func() {
			_ = resp.Body.Close()
		}()
		stage = StageForwarded
		g.observer.ObserveUpstream(route.Name, resp.StatusCode, time.Since(started).Seconds())

		if route.Policy.Kind() == KindPassThrough {
			stage = StageTranslated
			g.passThrough(w, logger, resp)
			return
		}

		out, err := translate(resp, route)
		if err != nil {
			g.fail(w, logger, route, stage, err)
			return
		}
		stage = StageTranslated
		if resp.StatusCode >= http.StatusBadRequest {
			logger.Info("upstream rejected request", slog.Int("status", resp.StatusCode))
		}
		out.emit(w)
		stage = StageEmitted
		logger.Debug("forwarded request", slog.Int("status", out.status), slog.String("stage", string(stage)))
	})
}

func (g *Gateway) buildRequest(r *http.Request, route Route, cred credential.Credential, requestID string) (*http.Request, error) {
	var expandErr error
	path := expand(route.Upstream, func(name string) string {
		value := chi.URLParam(r, name)
		// chi routes on RawPath when set, so params arrive still escaped.
		if r.URL.RawPath != "" {
			unescaped, err := url.PathUnescape(value)
			if err != nil && expandErr == nil {
				expandErr = fmt.Errorf("path parameter %q: %w", name, err)
			}
			value = unescaped
		}
		return url.PathEscape(value)
	})
	if expandErr != nil {
		return nil, expandErr
	}
	target := g.baseURL + path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	var body io.Reader
	if r.Body != nil && r.Body != http.NoBody {
		body = r.Body
	}
	outbound, err := http.NewRequestWithContext(r.Context(), route.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	if body != nil && r.ContentLength > 0 {
		outbound.ContentLength = r.ContentLength
	}
	if header := cred.Header(); header != "" {
		outbound.Header.Set(credential.HeaderAuthorization, header)
	}
	if ct := r.Header.Get("Content-Type"); ct != "" {
		outbound.Header.Set("Content-Type", ct)
	}
	if accept := r.Header.Get("Accept"); accept != "" {
		outbound.Header.Set("Accept", accept)
	} else {
		outbound.Header.Set("Accept", httpx.ContentTypeJSON)
	}
	outbound.Header.Set(HeaderRequestID, requestID)
	return outbound, nil
}

var passThroughHeaders = []string{"Content-Type", "Content-Disposition", HeaderTotalCount}

func (g *Gateway) passThrough(w http.ResponseWriter, logger *slog.Logger, resp *http.Response) {
	for _, name := range passThroughHeaders {
		if value := resp.Header.Get(name); value != "" {
			w.Header().Set(name, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		logger.Warn("pass-through copy interrupted", slog.Any("error", err))
	}
}

// fail converts any error after the credential check into the generic 500.
// The failure is labelled with the last stage the request completed.
func (g *Gateway) fail(w http.ResponseWriter, logger *slog.Logger, route Route, reached Stage, err error) {
	logger.Error("gateway request failed", slog.String("reached", string(reached)), slog.Any("error", err))
	g.observer.ObserveFailure(route.Name, string(reached))
	httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrTranslation, err))
}
