// Package permissions resolves the caller's roles and module permissions from the
// upstream API and answers point-in-time authorization questions for rendering.
//
// Resolution is fail-closed: any failure yields Empty rather than an error, so
// rendering code always receives a usable value and hides what it cannot verify.
// A permission decision only controls what the console offers; the upstream API
// enforces access on every forwarded call.
package permissions

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

// DefaultPath is the upstream endpoint returning the caller's roles and permissions.
const DefaultPath = "/api/auth/permissions"

const (
	maxPayloadBytes = 1 << 20
	defaultTimeout  = 10 * time.Second
)

// Resolver fetches UserPermissions for a bearer token.
type Resolver struct {
	baseURL  string
	path     string
	client   *http.Client
	logger   *slog.Logger
	validate *validator.Validate
	timeout  time.Duration
	group    singleflight.Group
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient overrides the HTTP client used for upstream calls.
func WithHTTPClient(client *http.Client) ResolverOption {
	return func(r *Resolver) {
		if client != nil {
			r.client = client
		}
	}
}

// WithPath overrides the upstream permissions path.
func WithPath(path string) ResolverOption {
	return func(r *Resolver) {
		if path = strings.TrimSpace(path); path != "" {
			r.path = path
		}
	}
}

// WithLogger sets the logger used to report degraded resolutions.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// WithTimeout bounds one upstream permissions call. Callers sharing the call
// still give up as soon as their own context ends.
func WithTimeout(timeout time.Duration) ResolverOption {
	return func(r *Resolver) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// NewResolver constructs a Resolver against the upstream base address.
func NewResolver(baseURL string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		baseURL:  strings.TrimRight(baseURL, "/"),
		path:     DefaultPath,
		client:   http.DefaultClient,
		validate: validator.New(),
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if !strings.HasPrefix(r.path, "/") {
		r.path = "/" + r.path
	}
	return r
}

// Resolve returns the caller's permissions, or Empty on any failure.
func (r *Resolver) Resolve(ctx context.Context, token string) UserPermissions {
	token = strings.TrimSpace(token)
	if token == "" {
		return Empty()
	}
	// The shared call must outlive any single caller that joined it.
	ch := r.group.DoChan(tokenKey(token), func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		defer cancel()
		return r.fetch(fetchCtx, token)
	})
	select {
	case <-ctx.Done():
		r.warn("permissions resolution cancelled", ctx.Err())
		return Empty()
	case res := <-ch:
		if res.Err != nil {
			r.warn("permissions resolution degraded to empty set", res.Err)
			return Empty()
		}
		return res.Val.(UserPermissions)
	}
}

func (r *Resolver) fetch(ctx context.Context, token string) (UserPermissions, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+r.path, nil)
	if err != nil {
		return Empty(), fmt.Errorf("permissions: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return Empty(), fmt.Errorf("permissions: upstream call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPayloadBytes))
		return Empty(), fmt.Errorf("permissions: upstream returned status %d", resp.StatusCode)
	}

	var body payload
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadBytes)).Decode(&body); err != nil {
		return Empty(), fmt.Errorf("permissions: decode payload: %w", err)
	}
	valid := make([]Permission, 0, len(body.Permissions))
	for _, p := range body.Permissions {
		if err := r.validate.Struct(p); err != nil {
			if r.logger != nil {
				r.logger.Debug("skip invalid permission entry", slog.String("module", p.Module), slog.String("action", p.Action))
			}
			continue
		}
		valid = append(valid, p)
	}
	return New(body.Roles, valid), nil
}

func (r *Resolver) warn(msg string, err error) {
	if r.logger == nil {
		return
	}
	r.logger.Warn(msg, slog.Any("error", err))
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
