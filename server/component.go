package server

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kbukum/scribeproxy/component"
)

const componentName = "http-server"

var (
	_ component.Component     = (*ServerComponent)(nil)
	_ component.Describable   = (*ServerComponent)(nil)
	_ component.RouteProvider = (*ServerComponent)(nil)
)

// systemPaths are labeled in the startup route listing.
var systemPaths = map[string]bool{
	PathHealth:  true,
	PathInfo:    true,
	PathMetrics: true,
}

// ServerComponent wraps Server to implement component.Component.
type ServerComponent struct {
	server  *Server
	mounted []component.Route
}

// NewComponent returns a component.Component backed by the given Server.
func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

// Name returns the component name used for registration.
func (sc *ServerComponent) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (sc *ServerComponent) Start(ctx context.Context) error {
	return sc.server.Start(ctx)
}

// Stop gracefully shuts down the underlying HTTP server.
func (sc *ServerComponent) Stop(ctx context.Context) error {
	return sc.server.Stop(ctx)
}

// Health returns the health status of the server.
func (sc *ServerComponent) Health(_ context.Context) component.Health {
	return component.Health{
		Name:   componentName,
		Status: component.StatusHealthy,
	}
}

// Describe returns infrastructure summary info for the startup display.
func (sc *ServerComponent) Describe() component.Description {
	cfg := sc.server.config
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: fmt.Sprintf("%s:%d (h2c, max body %s)", cfg.Host, cfg.Port, cfg.MaxBodySize),
		Port:    cfg.Port,
	}
}

// TrackMount records a handler mounted outside gin so it shows up in Routes.
func (sc *ServerComponent) TrackMount(method, path, handler string) {
	sc.mounted = append(sc.mounted, component.Route{Method: method, Path: path, Handler: handler})
}

// Routes returns all registered HTTP routes for the startup summary:
// API routes first by path, then system routes.
func (sc *ServerComponent) Routes() []component.Route {
	routes := append([]component.Route(nil), sc.mounted...)
	for _, r := range sc.server.engine.Routes() {
		routes = append(routes, component.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: formatHandlerName(r.Handler),
		})
	}

	sort.SliceStable(routes, func(i, j int) bool {
		iSys := systemPaths[routes[i].Path]
		jSys := systemPaths[routes[j].Path]
		if iSys != jSys {
			return !iSys
		}
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return methodOrder(routes[i].Method) < methodOrder(routes[j].Method)
	})

	for i := range routes {
		if systemPaths[routes[i].Path] {
			routes[i].Handler += " (system)"
		}
	}
	return routes
}

// formatHandlerName extracts a short handler name from gin's full handler
// path: "github.com/x/y/proxy.(*Handler).Transcribe-fm" -> "Handler.Transcribe".
func formatHandlerName(fullPath string) string {
	name := strings.TrimSuffix(fullPath, "-fm")

	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	name = strings.ReplaceAll(name, "(*", "")
	name = strings.ReplaceAll(name, ")", "")

	// Closures: "endpoint.Health.func1" -> "health"
	if strings.Contains(name, ".func") {
		parts := strings.Split(name, ".")
		for i := len(parts) - 1; i >= 0; i-- {
			if !strings.HasPrefix(parts[i], "func") {
				name = strings.ToLower(parts[i])
				break
			}
		}
	}

	// Drop a lowercase package prefix.
	parts := strings.SplitN(name, ".", 2)
	if len(parts) == 2 && parts[0] == strings.ToLower(parts[0]) && parts[1] != "" {
		name = parts[1]
	}
	return name
}

// methodOrder returns a sort key for HTTP methods (GET first).
func methodOrder(method string) int {
	switch method {
	case "GET":
		return 0
	case "POST":
		return 1
	case "PUT":
		return 2
	case "PATCH":
		return 3
	case "DELETE":
		return 4
	default:
		return 5
	}
}
