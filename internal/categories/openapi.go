package categories

import "github.com/JaimeStill/storefront/pkg/openapi"

type spec struct {
	List       *openapi.Operation
	Find       *openapi.Operation
	Create     *openapi.Operation
	Update     *openapi.Operation
	Delete     *openapi.Operation
	DeleteMany *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:    "List categories",
		Parameters: openapi.PageParams("Case-insensitive match on name, slug or description"),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Page of categories", "CategoryPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get category",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Category UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Category", "Category"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create category",
		Description: "Creates a category. The slug is derived from the name when omitted",
		RequestBody: openapi.RequestBodyJSON("CategoryCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseEnvelope("Category created", "Category"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update category",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Category UUID")},
		RequestBody: openapi.RequestBodyJSON("CategoryCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Category updated", "Category"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete category",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Category UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Category deleted", "BulkDeleteResult"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	DeleteMany: &openapi.Operation{
		Summary:     "Delete categories",
		RequestBody: openapi.RequestBodyJSON("BulkDeleteCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Categories deleted", "BulkDeleteResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Category": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"slug":        {Type: "string"},
				"description": {Type: "string"},
				"createdAt":   {Type: "string", Format: "date-time"},
				"updatedAt":   {Type: "string", Format: "date-time"},
			},
		},
		"CategoryCommand": {
			Type:     "object",
			Required: []string{"name"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"slug":        {Type: "string", Description: "Lowercase words joined by hyphens"},
				"description": {Type: "string"},
			},
		},
		"CategoryPageResult": openapi.PageResultSchema("Category"),
	}
}
