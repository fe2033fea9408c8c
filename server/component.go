package server

import (
	"context"
	"sort"

	"github.com/spiralnet/launchpad/component"
)

const componentName = "http-server"

// ServerComponent adapts Server to the component lifecycle so the launcher
// can manage it alongside other infrastructure.
type ServerComponent struct {
	server *Server
}

// NewComponent wraps a Server for registration in a component registry.
func NewComponent(s *Server) *ServerComponent {
	return &ServerComponent{server: s}
}

func (c *ServerComponent) Name() string { return componentName }

func (c *ServerComponent) Start(ctx context.Context) error {
	return c.server.Start(ctx)
}

func (c *ServerComponent) Stop(ctx context.Context) error {
	return c.server.Stop(ctx)
}

func (c *ServerComponent) Health(ctx context.Context) component.Health {
	if !c.server.bound() {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: "listener not bound",
		}
	}
	return component.Health{
		Name:   componentName,
		Status: component.StatusHealthy,
	}
}

func (c *ServerComponent) Describe() component.Description {
	return component.Description{
		Name:    "HTTP Server",
		Type:    "server",
		Details: c.server.Addr(),
		Port:    c.server.Port(),
	}
}

// Routes reports the system endpoints plus the application fallback when one
// is mounted.
func (c *ServerComponent) Routes() []component.Route {
	ginRoutes := c.server.engine.Routes()
	routes := make([]component.Route, 0, len(ginRoutes)+1)
	for _, r := range ginRoutes {
		routes = append(routes, component.Route{
			Method:  r.Method,
			Path:    r.Path,
			Handler: handlerShortName(r.Handler),
		})
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})
	if c.server.Application() != nil {
		routes = append(routes, component.Route{
			Method:  "*",
			Path:    "/*",
			Handler: "application",
		})
	}
	return routes
}
