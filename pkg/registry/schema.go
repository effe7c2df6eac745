// pkg/registry/schema.go
package registry

type ComponentManifest struct {
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated"`
	Components  []ComponentEntry `json:"components"`
}

type ComponentEntry struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	Documentation        string                 `json:"documentation,omitempty"`
	Icon                 string                 `json:"icon,omitempty"`
	Custom               bool                   `json:"custom"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Tags                 []string               `json:"tags"`
}
