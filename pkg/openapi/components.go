package openapi

// NewComponents creates the shared schemas and responses used by every collection endpoint.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"pageIndex":  {Type: "integer", Description: "Zero-based page index", Minimum: Bound(0)},
					"pageSize":   {Type: "integer", Description: "Results per page", Minimum: Bound(1)},
					"textSearch": {Type: "string", Description: "Case-insensitive search term"},
					"sort": {
						Type:        "string",
						Description: "Comma-separated sort fields. Prefix with - for descending",
						Example:     "name,-createdAt",
					},
				},
			},
			"BulkDeleteCommand": {
				Type:     "object",
				Required: []string{"ids"},
				Properties: map[string]*Schema{
					"ids": {Type: "array", Items: &Schema{Type: "string", Format: "uuid"}},
				},
			},
			"BulkDeleteResult": {
				Type: "object",
				Properties: map[string]*Schema{
					"deleted": {Type: "integer", Description: "Number of deleted records"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": failure("Invalid request"),
			"NotFound":   failure("Resource not found"),
			"Conflict":   failure("Resource conflict"),
		},
	}
}

// AddSchemas merges schemas into the component set, replacing existing names.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// PageResultSchema describes a page of the named item schema.
func PageResultSchema(itemSchema string) *Schema {
	return &Schema{
		Type: "object",
		Properties: map[string]*Schema{
			"items":      {Type: "array", Items: SchemaRef(itemSchema)},
			"totalCount": {Type: "integer", Description: "Total number of matching records"},
			"pageIndex":  {Type: "integer", Description: "Zero-based page index"},
			"pageSize":   {Type: "integer", Description: "Results per page"},
			"totalPages": {Type: "integer", Description: "Total number of pages"},
		},
	}
}

// PageParams returns the query parameters shared by collection list operations.
func PageParams(searchDescription string) []*Parameter {
	return []*Parameter{
		QueryParam("pageIndex", "integer", "Zero-based page index", false),
		QueryParam("pageSize", "integer", "Results per page", false),
		QueryParam("textSearch", "string", searchDescription, false),
		QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending", false),
	}
}

func failure(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"success": {Type: "boolean", Example: false},
					"message": {Type: "string"},
				},
			}},
		},
	}
}
