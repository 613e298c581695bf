package dto

import "encoding/json"

// Person is one entry of the person list. The server may omit "activo",
// in which case the person counts as active.
type Person struct {
	ID            int     `json:"id"`
	Nombre        string  `json:"nombre"`
	Apellidos     string  `json:"apellidos"`
	Correo        string  `json:"correo"`
	IDEstudiante  *string `json:"id_estudiante,omitempty"`
	PK            string  `json:"pk"`
	FechaRegistro string  `json:"fecha_registro"`
	Activo        int     `json:"activo"`
}

func (p *Person) UnmarshalJSON(data []byte) error {
	type plain Person
	aux := plain{Activo: 1}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Person(aux)
	return nil
}

func (p Person) IsActive() bool { return p.Activo == 1 }

func (p Person) FullName() string { return joinName(p.Nombre, p.Apellidos) }

// PersonResponse is returned by the single-person lookups.
type PersonResponse struct {
	ID            int         `json:"id"`
	Nombre        string      `json:"nombre"`
	Apellidos     string      `json:"apellidos"`
	Correo        string      `json:"correo"`
	IDEstudiante  *string     `json:"id_estudiante,omitempty"`
	PK            string      `json:"pk"`
	FechaRegistro string      `json:"fecha_registro"`
	Activo        int         `json:"activo"`
	SystemInfo    *SystemInfo `json:"system_info,omitempty"`
}

func (p PersonResponse) IsActive() bool { return p.Activo == 1 }

func (p PersonResponse) FullName() string { return joinName(p.Nombre, p.Apellidos) }

type PersonListResponse struct {
	Total       int          `json:"total"`
	Persons     []Person     `json:"persons"`
	SystemStats *SystemStats `json:"system_stats,omitempty"`
	Pagination  *Pagination  `json:"pagination,omitempty"`
}

type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
}

type SystemStats struct {
	TotalPersonas *int           `json:"total_personas,omitempty"`
	PorMetodo     map[string]int `json:"por_metodo,omitempty"`
	PorVersion    map[string]int `json:"por_version,omitempty"`
}

// PersonStats has the same shape as SystemStats; the server reports it
// under database_stats in the processing stats endpoint.
type PersonStats = SystemStats

type PersonRegistrationResponse struct {
	Message          string     `json:"message"`
	PersonID         int        `json:"person_id"`
	PK               string     `json:"pk"`
	FeaturesCount    int        `json:"features_count"`
	FacesDetected    int        `json:"faces_detected"`
	ProcessingMethod string     `json:"processing_method"`
	ProcessingTime   float64    `json:"processing_time"`
	SystemInfo       SystemInfo `json:"system_info"`
}

type PersonUpdateFeaturesResponse struct {
	Message       string `json:"message"`
	PersonID      int    `json:"person_id"`
	Method        string `json:"method"`
	FeaturesCount int    `json:"features_count"`
	FacesDetected int    `json:"faces_detected"`
}

type ProcessingStatsResponse struct {
	DatabaseStats      PersonStats        `json:"database_stats"`
	CurrentConfig      CurrentConfig      `json:"current_config"`
	SystemCapabilities SystemCapabilities `json:"system_capabilities"`
}

type CurrentConfig struct {
	EnhancedProcessing bool    `json:"enhanced_processing"`
	FeatureMethod      string  `json:"feature_method"`
	DefaultThreshold   float64 `json:"default_threshold"`
	AdaptiveThreshold  bool    `json:"adaptive_threshold"`
	MultipleDetectors  bool    `json:"multiple_detectors"`
}

type SystemCapabilities struct {
	DlibAvailable    bool `json:"dlib_available"`
	SklearnAvailable bool `json:"sklearn_available"`
	MigrationEnabled bool `json:"migration_enabled"`
}

// SystemInfo is the processing summary the server attaches to person and
// recognition responses.
type SystemInfo struct {
	EnhancedProcessing bool     `json:"enhanced_processing"`
	FeatureMethod      *string  `json:"feature_method,omitempty"`
	Threshold          *float64 `json:"threshold,omitempty"`
	ComparisonMethod   *string  `json:"comparison_method,omitempty"`
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
