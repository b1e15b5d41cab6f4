package models

import "encoding/json"

// SearchResult is the shape shared by the upstream image and audio
// search endpoints. Individual results are kept as raw JSON so the
// gateway stays a passthrough.
type SearchResult struct {
	ResultCount int               `json:"result_count"`
	PageCount   int               `json:"page_count"`
	PageSize    int               `json:"page_size"`
	Results     []json.RawMessage `json:"results"`
}

// filterParamNames maps the API's camelCase filter parameters to the
// snake_case names the upstream expects. Parameters not listed here are
// forwarded unchanged.
var filterParamNames = map[string]string{
	"licenseType":      "license_type",
	"aspectRatio":      "aspect_ratio",
	"sourceList":       "source",
	"imageType":        "category",
	"audioCategory":    "category",
	"fileType":         "extension",
	"imageSize":        "size",
	"audioLength":      "length",
	"searchBy":         "searchBy",
	"matureContent":    "mature",
	"includeSensitive": "unstable__include_sensitive_results",
}

// UpstreamFilterName returns the upstream parameter name for an API
// filter parameter.
func UpstreamFilterName(name string) string {
	if mapped, ok := filterParamNames[name]; ok {
		return mapped
	}
	return name
}
