package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PublishEventResponse represents a successful event ingestion response
type PublishEventResponse struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

// PublishBulkEventsResponse represents a bulk ingestion response
type PublishBulkEventsResponse struct {
	Accepted int      `json:"accepted"`
	Rejected int      `json:"rejected"`
	EventIDs []string `json:"event_ids,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// GroupSummary reports how many records fell into a group
type GroupSummary struct {
	Name    string `json:"name"`
	Members int    `json:"members"`
}

// ExploreResponse is the pipeline output. Each row maps "group" to the group
// name and every metric key to its value: a number or percentage in
// aggregated mode, the record's own value in raw mode.
type ExploreResponse struct {
	Mode     string                   `json:"mode"`
	Fetched  int                      `json:"fetched"`
	Decoded  int                      `json:"decoded"`
	RowCount int                      `json:"row_count"`
	Groups   []GroupSummary           `json:"groups"`
	Rows     []map[string]interface{} `json:"rows"`
}

// OperatorInfo describes a comparison operator
type OperatorInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// FieldInfo describes a selectable property field
type FieldInfo struct {
	Key       string         `json:"key"`
	Label     string         `json:"label"`
	Kind      string         `json:"kind"`
	Operators []OperatorInfo `json:"operators"`
}

// FieldsResponse is the field catalogue
type FieldsResponse struct {
	Fields []FieldInfo `json:"fields"`
	Modes  []string    `json:"modes"`
}
