package reports

import "github.com/JaimeStill/storefront/pkg/openapi"

type spec struct {
	Sales *openapi.Operation
}

var Spec = spec{
	Sales: &openapi.Operation{
		Summary:     "Daily sales",
		Description: "Order count and revenue per day, cancelled orders excluded. Defaults to the last 30 days.",
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("from", "string", "First day (YYYY-MM-DD)", false),
			openapi.QueryParam("to", "string", "Last day (YYYY-MM-DD)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseEnvelope("Sales series", "SalesReport"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"DailySales": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"date":         {Type: "string", Format: "date"},
				"orders":       {Type: "integer"},
				"revenueCents": {Type: "integer"},
			},
		},
		"SalesReport": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"from":              {Type: "string", Format: "date"},
				"to":                {Type: "string", Format: "date"},
				"days":              {Type: "array", Items: openapi.SchemaRef("DailySales")},
				"totalOrders":       {Type: "integer"},
				"totalRevenueCents": {Type: "integer"},
			},
		},
	}
}
