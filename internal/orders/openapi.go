package orders

import "github.com/JaimeStill/storefront/pkg/openapi"

type spec struct {
	List       *openapi.Operation
	Find       *openapi.Operation
	Create     *openapi.Operation
	Update     *openapi.Operation
	Transition *openapi.Operation
	Delete     *openapi.Operation
	DeleteMany *openapi.Operation
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List orders",
		Description: "Sortable fields: number, customerName, customerEmail, status, total, createdAt, updatedAt",
		Parameters: append(
			openapi.PageParams("Case-insensitive match on number, customer name or email"),
			openapi.QueryParam("status", "string", "Filter by status", false),
			openapi.QueryParam("customer", "string", "Customer email contains", false),
		),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Page of orders", "OrderPageResult"),
		},
	},
	Find: &openapi.Operation{
		Summary:    "Get order with items",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Order UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Order", "Order"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Place order",
		Description: "Lines are priced from the current product price. Repeated products are merged.",
		RequestBody: openapi.RequestBodyJSON("OrderCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseEnvelope("Order placed", "Order"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update order customer",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Order UUID")},
		RequestBody: openapi.RequestBodyJSON("OrderCustomerCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Order updated", "Order"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Transition: &openapi.Operation{
		Summary:     "Change order status",
		Description: "pending to paid or cancelled, paid to shipped or cancelled, shipped to delivered",
		Parameters:  []*openapi.Parameter{openapi.PathParam("id", "Order UUID")},
		RequestBody: openapi.RequestBodyJSON("OrderTransitionCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Order updated", "Order"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete order",
		Parameters: []*openapi.Parameter{openapi.PathParam("id", "Order UUID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Order deleted", "BulkDeleteResult"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	DeleteMany: &openapi.Operation{
		Summary:     "Delete orders",
		RequestBody: openapi.RequestBodyJSON("BulkDeleteCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Orders deleted", "BulkDeleteResult"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

var statusSchema = &openapi.Schema{
	Type: "string",
	Enum: []string{
		string(StatusPending), string(StatusPaid), string(StatusShipped),
		string(StatusDelivered), string(StatusCancelled),
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Order": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":            {Type: "string", Format: "uuid"},
				"number":        {Type: "string"},
				"customerName":  {Type: "string"},
				"customerEmail": {Type: "string", Format: "email"},
				"status":        statusSchema,
				"totalCents":    {Type: "integer", Minimum: openapi.Bound(0)},
				"items":         {Type: "array", Items: openapi.SchemaRef("OrderItem")},
				"createdAt":     {Type: "string", Format: "date-time"},
				"updatedAt":     {Type: "string", Format: "date-time"},
			},
		},
		"OrderItem": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"productId":      {Type: "string", Format: "uuid"},
				"quantity":       {Type: "integer", Minimum: openapi.Bound(1)},
				"unitPriceCents": {Type: "integer", Minimum: openapi.Bound(0)},
			},
		},
		"OrderCommand": {
			Type:     "object",
			Required: []string{"customerName", "customerEmail", "items"},
			Properties: map[string]*openapi.Schema{
				"customerName":  {Type: "string"},
				"customerEmail": {Type: "string", Format: "email"},
				"items": {
					Type: "array",
					Items: &openapi.Schema{
						Type:     "object",
						Required: []string{"productId", "quantity"},
						Properties: map[string]*openapi.Schema{
							"productId": {Type: "string", Format: "uuid"},
							"quantity":  {Type: "integer", Minimum: openapi.Bound(1)},
						},
					},
				},
			},
		},
		"OrderCustomerCommand": {
			Type:     "object",
			Required: []string{"customerName", "customerEmail"},
			Properties: map[string]*openapi.Schema{
				"customerName":  {Type: "string"},
				"customerEmail": {Type: "string", Format: "email"},
			},
		},
		"OrderTransitionCommand": {
			Type:       "object",
			Required:   []string{"status"},
			Properties: map[string]*openapi.Schema{"status": statusSchema},
		},
		"OrderPageResult": openapi.PageResultSchema("Order"),
	}
}
