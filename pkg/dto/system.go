package dto

// GeneralHealthResponse is served at /health.
type GeneralHealthResponse struct {
	Status           string            `json:"status"`
	Database         string            `json:"database"`
	FacialProcessing string            `json:"facial_processing"`
	Dependencies     map[string]string `json:"dependencies"`
	Configuration    map[string]any    `json:"configuration"`
	Timestamp        string            `json:"timestamp"`
}

// RootInfoResponse is served at the service root.
type RootInfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Status    string            `json:"status"`
	Features  map[string]any    `json:"features"`
	Endpoints map[string]string `json:"endpoints"`
}

// SystemInfoResponse is served at /info.
type SystemInfoResponse struct {
	System        SystemInfoSystem  `json:"system"`
	Configuration map[string]any    `json:"configuration"`
	Database      map[string]any    `json:"database"`
	Dependencies  map[string]string `json:"dependencies"`
	Capabilities  map[string]any    `json:"capabilities"`
}

type SystemInfoSystem struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Mode        string `json:"mode"`
	Environment string `json:"environment"`
}
