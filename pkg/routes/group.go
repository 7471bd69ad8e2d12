// Package routes groups HTTP handlers with their OpenAPI operations and
// registers both at once.
package routes

import (
	"net/http"

	"github.com/JaimeStill/storefront/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// AddToSpec documents every route of the group and its children under basePath.
// Operations without tags inherit the group's tags.
func (g *Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath, spec, nil)
}

func (g *Group) addToSpec(parentPrefix string, spec *openapi.Spec, inherited []string) {
	prefix := parentPrefix + g.Prefix

	tags := g.Tags
	if len(tags) == 0 {
		tags = inherited
	}

	if len(g.Schemas) > 0 {
		spec.Components.AddSchemas(g.Schemas)
	}

	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}
		if len(route.OpenAPI.Tags) == 0 {
			route.OpenAPI.Tags = tags
		}
		spec.AddOperation(prefix+route.Pattern, route.Method, route.OpenAPI)
	}

	for i := range g.Children {
		g.Children[i].addToSpec(prefix, spec, tags)
	}
}

// Register mounts every group on mux and adds them to spec.
// mux paths are relative to the module; basePath is the module prefix used
// for documented paths.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
		group.AddToSpec(basePath, spec)
	}
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, prefix, child)
	}
}
