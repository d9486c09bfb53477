package router

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Route is one endpoint of a resource, relative to the resource prefix
type Route struct {
	Method    string
	Path      string
	Protected bool
	Handler   fiber.Handler
}

// Resource is the handler set of one entity
type Resource struct {
	Name   string
	Prefix string
	Routes []Route
}

// Registry maps entity names to their handler sets. It is filled once at
// startup and mounted onto the app before the server listens.
type Registry struct {
	resources map[string]Resource
	order     []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{resources: make(map[string]Resource)}
}

// Register adds a resource. Names must be unique.
func (r *Registry) Register(res Resource) error {
	if res.Name == "" {
		return fmt.Errorf("registry: resource name is empty")
	}
	if _, exists := r.resources[res.Name]; exists {
		return fmt.Errorf("registry: resource %q already registered", res.Name)
	}
	r.resources[res.Name] = res
	r.order = append(r.order, res.Name)
	return nil
}

// Lookup returns the handler set registered under name
func (r *Registry) Lookup(name string) (Resource, bool) {
	res, ok := r.resources[name]
	return res, ok
}

// Names lists registered resources in registration order
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Mount attaches every registered route to router. Protected routes run
// behind protect first.
func (r *Registry) Mount(router fiber.Router, protect fiber.Handler) {
	for _, name := range r.order {
		res := r.resources[name]
		group := router.Group(res.Prefix)
		for _, route := range res.Routes {
			handlers := []fiber.Handler{route.Handler}
			if route.Protected && protect != nil {
				handlers = []fiber.Handler{protect, route.Handler}
			}
			group.Add(route.Method, route.Path, handlers...)
		}
	}
}
