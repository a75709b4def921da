package gateway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Route declares one forwarded resource and verb.
type Route struct {
	// Name labels logs and metrics.
	Name string `validate:"required"`
	// Method is used both inbound and upstream.
	Method string `validate:"required,oneof=GET POST PUT PATCH DELETE"`
	// Pattern is the chi pattern mounted on the console router.
	Pattern string `validate:"required,startswith=/"`
	// Upstream is the upstream path; {param} placeholders take the matching
	// URL parameter of Pattern.
	Upstream string `validate:"required,startswith=/"`
	Policy   Policy
	// Public routes skip the credential check.
	Public bool
	// Acknowledge synthesizes a success body when upstream answers 2xx with
	// an empty payload.
	Acknowledge bool
}

// ErrInvalidRoute is returned by Register for malformed declarations.
var ErrInvalidRoute = errors.New("gateway: invalid route")

func validateRoute(v *validator.Validate, route Route) error {
	if err := v.Struct(route); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidRoute, route.Name, err)
	}
	if route.Policy.Kind() == KindNormalizeShape {
		m, ok := route.Policy.Mapping()
		if !ok || len(m.Fields) == 0 {
			return fmt.Errorf("%w %q: normalize policy without fields", ErrInvalidRoute, route.Name)
		}
	}
	params := make(map[string]struct{})
	for _, name := range placeholders(route.Pattern) {
		params[name] = struct{}{}
	}
	for _, name := range placeholders(route.Upstream) {
		if _, ok := params[name]; !ok {
			return fmt.Errorf("%w %q: upstream parameter {%s} missing from pattern", ErrInvalidRoute, route.Name, name)
		}
	}
	return nil
}

// placeholders lists the {name} segments of a path; chi regexp suffixes
// ({id:[0-9]+}) are stripped.
func placeholders(path string) []string {
	var names []string
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			return names
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			return names
		}
		name := path[start+1 : start+end]
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		names = append(names, name)
		path = path[start+end+1:]
	}
}

// expand substitutes {name} placeholders using lookup.
func expand(path string, lookup func(string) string) string {
	var b strings.Builder
	for {
		start := strings.IndexByte(path, '{')
		if start < 0 {
			b.WriteString(path)
			return b.String()
		}
		end := strings.IndexByte(path[start:], '}')
		if end < 0 {
			b.WriteString(path)
			return b.String()
		}
		b.WriteString(path[:start])
		name := path[start+1 : start+end]
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		b.WriteString(lookup(name))
		path = path[start+end+1:]
	}
}
