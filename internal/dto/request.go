package dto

import "encoding/json"

// PublishEventRequest represents a raw event submitted for ingestion.
// CustomProperties may be a JSON object or a string holding one.
type PublishEventRequest struct {
	CustomProperties json.RawMessage `json:"customproperties" binding:"required" swaggertype:"object"`
	AppVersion       string          `json:"appversion" binding:"required" example:"3.7.0"`
	UserID           int64           `json:"userid" example:"0"`
	DeviceID         int64           `json:"deviceid" binding:"required" example:"2141999127683"`
	Platform         string          `json:"platform" binding:"required" example:"Android"`
	OSVersion        string          `json:"osversion" binding:"required" example:"10"`
}

// PublishEventsBulkRequest represents a publish bulk event request
type PublishEventsBulkRequest struct {
	Events []PublishEventRequest `json:"events" binding:"required,min=1,max=1000,dive"`
}

// ExploreCondition is a base condition applied to every record before grouping
type ExploreCondition struct {
	Field    string      `json:"field" binding:"required"`
	Operator string      `json:"operator" binding:"required"`
	Value    interface{} `json:"value"`
}

// ExploreGroup is a named set of equality constraints keyed by field
type ExploreGroup struct {
	Name        string                 `json:"name" binding:"required"`
	Constraints map[string]interface{} `json:"constraints"`
}

// ExploreSource narrows the batch the explore request runs over
type ExploreSource struct {
	Platform   string `json:"platform"`
	AppVersion string `json:"app_version"`
	OSVersion  string `json:"os_version"`
	Limit      int    `json:"limit" binding:"gte=0"`
}

// ExploreRequest carries a complete view configuration
type ExploreRequest struct {
	Metrics    []string           `json:"metrics"`
	Conditions []ExploreCondition `json:"conditions" binding:"dive"`
	Groups     []ExploreGroup     `json:"groups" binding:"dive"`
	Mode       string             `json:"mode" binding:"omitempty,oneof=aggregated raw"`
	Source     ExploreSource      `json:"source"`
}
