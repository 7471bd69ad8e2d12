package posts

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
		Summary:     "List posts",
		Description: "Sortable fields: title, slug, published, publishedAt, createdAt, updatedAt",
		Parameters: append(
			openapi.PageParams("Case-insensitive match on title, slug or excerpt"),
			openapi.QueryParam("published", "boolean", "Filter by published flag", false),
		),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Page of posts", "PostPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get post",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Post UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Post", "Post"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create post",
		Description: "An empty slug is derived from the title",
		RequestBody: openapi.RequestBodyJSON("PostCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseEnvelope("Post created", "Post"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update post",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Post UUID")},
		RequestBody: openapi.RequestBodyJSON("PostCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Post updated", "Post"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete post",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Post UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Post deleted", "BulkDeleteResult"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	DeleteMany: &openapi.Operation{
		Summary:     "Delete posts",
		RequestBody: openapi.RequestBodyJSON("BulkDeleteCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Posts deleted", "BulkDeleteResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Post": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"title":       {Type: "string"},
				"slug":        {Type: "string"},
				"excerpt":     {Type: "string"},
				"body":        {Type: "string"},
				"published":   {Type: "boolean"},
				"publishedAt": {Type: "string", Format: "date-time", Nullable: true},
				"createdAt":   {Type: "string", Format: "date-time"},
				"updatedAt":   {Type: "string", Format: "date-time"},
			},
		},
		"PostCommand": {
			Type:     "object",
			Required: []string{"title"},
			Properties: map[string]*openapi.Schema{
				"title":     {Type: "string"},
				"slug":      {Type: "string"},
				"excerpt":   {Type: "string"},
				"body":      {Type: "string"},
				"published": {Type: "boolean"},
			},
		},
		"PostPageResult": openapi.PageResultSchema("Post"),
	}
}
