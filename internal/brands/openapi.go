package brands

import "github.com/JaimeStill/storefront/pkg/openapi"

type spec struct {
	List       *openapi.Operation
	Find       *openapi.Operation
	Create     *openapi.Operation
	Update     *openapi.Operation
	Delete     *openapi.Operation
	DeleteMany *openapi.Operation
}

// Spec contains OpenAPI operation definitions for brand endpoints.
var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List brands",
		Description: "Returns one page of brands with optional search, filtering and sorting",
		Parameters: append(
			openapi.PageParams("Case-insensitive match on name or description"),
			openapi.QueryParam("name", "string", "Filter by brand name (contains)", false),
		),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Page of brands", "BrandPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get brand",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Brand UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Brand", "Brand"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create brand",
		RequestBody: openapi.RequestBodyJSON("BrandCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseEnvelope("Brand created", "Brand"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update brand",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Brand UUID")},
		RequestBody: openapi.RequestBodyJSON("BrandCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Brand updated", "Brand"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete brand",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Brand UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Brand deleted", "BulkDeleteResult"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	DeleteMany: &openapi.Operation{
		Summary:     "Delete brands",
		Description: "Deletes every listed brand, or none when any id is unknown",
		RequestBody: openapi.RequestBodyJSON("BulkDeleteCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Brands deleted", "BulkDeleteResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Brand": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"description": {Type: "string"},
				"createdAt":   {Type: "string", Format: "date-time"},
				"updatedAt":   {Type: "string", Format: "date-time"},
			},
		},
		"BrandCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"description": {Type: "string"},
			},
		},
		"BrandPageResult": openapi.PageResultSchema("Brand"),
	}
}
