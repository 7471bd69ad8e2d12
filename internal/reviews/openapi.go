package reviews

import "github.com/JaimeStill/storefront/pkg/openapi"

type spec struct {
	List       *openapi.Operation
	Find       *openapi.Operation
	Create     *openapi.Operation
	Update     *openapi.Operation
	Approve    *openapi.Operation
	Delete     *openapi.Operation
	DeleteMany *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List reviews",
		Description: "Sortable fields: author, rating, approved, createdAt",
		Parameters: append(
			openapi.PageParams("Case-insensitive match on author or body"),
			openapi.QueryParam("productId", "string", "Filter by product UUID", false),
			openapi.QueryParam("approved", "boolean", "Filter by approval", false),
			openapi.QueryParam("minRating", "integer", "Minimum rating", false),
		),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Page of reviews", "ReviewPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get review",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Review UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Review", "Review"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Submit review",
		RequestBody: openapi.RequestBodyJSON("ReviewCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseEnvelope("Review created", "Review"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update review",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Review UUID")},
		RequestBody: openapi.RequestBodyJSON("ReviewUpdateCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Review updated", "Review"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Approve: &openapi.Operation{
		Summary:     "Approve or unapprove review",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Review UUID")},
		RequestBody: openapi.RequestBodyJSON("ReviewApprovalCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Review moderated", "Review"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete review",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Review UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Review deleted", "BulkDeleteResult"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	DeleteMany: &openapi.Operation{
		Summary:     "Delete reviews",
		RequestBody: openapi.RequestBodyJSON("BulkDeleteCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Reviews deleted", "BulkDeleteResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

var ratingSchema = &openapi.Schema{
	Type:    "integer",
	Minimum: openapi.Bound(MinRating),
	Maximum: openapi.Bound(MaxRating),
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Review": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":        {Type: "string", Format: "uuid"},
				"productId": {Type: "string", Format: "uuid"},
				"author":    {Type: "string"},
				"rating":    ratingSchema,
				"body":      {Type: "string"},
				"approved":  {Type: "boolean"},
				"createdAt": {Type: "string", Format: "date-time"},
				"updatedAt": {Type: "string", Format: "date-time"},
			},
		},
		"ReviewCommand": {
			Type:     "object",
			Required: []string{"productId", "author", "rating"},
			Properties: map[string]*openapi.Schema{
				"productId": {Type: "string", Format: "uuid"},
				"author":    {Type: "string"},
				"rating":    ratingSchema,
				"body":      {Type: "string"},
			},
		},
		"ReviewUpdateCommand": {
			Type:     "object",
			Required: []string{"author", "rating"},
			Properties: map[string]*openapi.Schema{
				"author":   {Type: "string"},
				"rating":   ratingSchema,
				"body":     {Type: "string"},
				"approved": {Type: "boolean"},
			},
		},
		"ReviewApprovalCommand": {
			Type:       "object",
			Required:   []string{"approved"},
			Properties: map[string]*openapi.Schema{"approved": {Type: "boolean"}},
		},
		"ReviewPageResult": openapi.PageResultSchema("Review"),
	}
}
