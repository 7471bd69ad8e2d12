package products

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
		Summary:     "List products",
		Description: "Returns one page of the catalog. Sortable fields: name, sku, price, stock, status, createdAt, updatedAt",
		Parameters: append(
			openapi.PageParams("Case-insensitive match on name, sku or description"),
			openapi.QueryParam("brandId", "string", "Filter by brand UUID", false),
			openapi.QueryParam("categoryId", "string", "Filter by category UUID", false),
			openapi.QueryParam("status", "string", "Filter by status (draft, active, archived)", false),
			openapi.QueryParam("minPrice", "integer", "Minimum price in cents", false),
			openapi.QueryParam("maxPrice", "integer", "Maximum price in cents", false),
			openapi.QueryParam("inStock", "boolean", "Only products with stock", false),
		),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Page of products", "ProductPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get product",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Product UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Product", "Product"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create product",
		RequestBody: openapi.RequestBodyJSON("ProductCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseEnvelope("Product created", "Product"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update product",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Product UUID")},
		RequestBody: openapi.RequestBodyJSON("ProductCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Product updated", "Product"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete product",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Product UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Product deleted", "BulkDeleteResult"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	DeleteMany: &openapi.Operation{
		Summary:     "Delete products",
		Description: "Deletes every listed product, or none when any id is unknown or still ordered",
		RequestBody: openapi.RequestBodyJSON("BulkDeleteCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Products deleted", "BulkDeleteResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
}

var statusSchema = &openapi.Schema{
	Type: "string",
	Enum: []string{string(StatusDraft), string(StatusActive), string(StatusArchived)},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Product": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"name":        {Type: "string"},
				"sku":         {Type: "string"},
				"description": {Type: "string"},
				"priceCents":  {Type: "integer", Minimum: openapi.Bound(0)},
				"stock":       {Type: "integer", Minimum: openapi.Bound(0)},
				"status":      statusSchema,
				"imageUrl":    {Type: "string", Format: "uri"},
				"brandId":     {Type: "string", Format: "uuid", Nullable: true},
				"categoryId":  {Type: "string", Format: "uuid", Nullable: true},
				"createdAt":   {Type: "string", Format: "date-time"},
				"updatedAt":   {Type: "string", Format: "date-time"},
			},
		},
		"ProductCommand": {
			Type:     "object",
			Required: []string{"name", "sku", "priceCents"},
			Properties: map[string]*openapi.Schema{
				"name":        {Type: "string"},
				"sku":         {Type: "string"},
				"description": {Type: "string"},
				"priceCents":  {Type: "integer", Minimum: openapi.Bound(0)},
				"stock":       {Type: "integer", Minimum: openapi.Bound(0)},
				"status":      statusSchema,
				"imageUrl":    {Type: "string", Format: "uri"},
				"brandId":     {Type: "string", Format: "uuid", Nullable: true},
				"categoryId":  {Type: "string", Format: "uuid", Nullable: true},
			},
		},
		"ProductPageResult": openapi.PageResultSchema("Product"),
	}
}
