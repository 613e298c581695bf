package dto

// RecognitionResponse is returned by the 1:1 compare endpoints.
type RecognitionResponse struct {
	Person            PersonResponse    `json:"person"`
	RecognitionResult RecognitionResult `json:"recognition_result"`
	SystemInfo        *SystemInfo       `json:"system_info,omitempty"`
}

type RecognitionResult struct {
	Similarity          float64  `json:"similarity"`
	CosineSimilarity    *float64 `json:"cosine_similarity,omitempty"`
	Correlation         *float64 `json:"correlation,omitempty"`
	EuclideanSimilarity *float64 `json:"euclidean_similarity,omitempty"`
	ManhattanSimilarity *float64 `json:"manhattan_similarity,omitempty"`
	IsMatch             bool     `json:"is_match"`
	Threshold           float64  `json:"threshold"`
	Confidence          *float64 `json:"confidence,omitempty"`
	FacesDetected       int      `json:"faces_detected"`
	FeaturesCompared    int      `json:"features_compared"`
	ProcessingMethod    *string  `json:"processing_method,omitempty"`
}

// HasDetailedMetrics reports whether the server returned the per-metric
// breakdown alongside the combined similarity.
func (r RecognitionResult) HasDetailedMetrics() bool { return r.CosineSimilarity != nil }

// IdentificationResponse is returned by the 1:N identify endpoint.
type IdentificationResponse struct {
	IdentificationResult IdentificationResult  `json:"identification_result"`
	AllMatches           []IdentificationMatch `json:"all_matches"`
	SystemInfo           *SystemInfo           `json:"system_info,omitempty"`
}

type IdentificationResult struct {
	BestMatch               *IdentificationMatch `json:"best_match,omitempty"`
	Confidence              float64              `json:"confidence"`
	TotalComparisons        int                  `json:"total_comparisons"`
	FacesDetected           int                  `json:"faces_detected"`
	ProcessingMethod        *string              `json:"processing_method,omitempty"`
	FeatureExtractionMethod *string              `json:"feature_extraction_method,omitempty"`
}

type IdentificationMatch struct {
	Person          MatchedPerson    `json:"person"`
	Similarity      float64          `json:"similarity"`
	IsMatch         bool             `json:"is_match"`
	Threshold       float64          `json:"threshold"`
	Confidence      *float64         `json:"confidence,omitempty"`
	DetailedMetrics *DetailedMetrics `json:"detailed_metrics,omitempty"`
}

type MatchedPerson struct {
	ID                    int     `json:"id"`
	Nombre                string  `json:"nombre"`
	Apellidos             string  `json:"apellidos"`
	Correo                string  `json:"correo"`
	IDEstudiante          *string `json:"id_estudiante,omitempty"`
	MetodoCaracteristicas *string `json:"metodo_caracteristicas,omitempty"`
	VersionAlgoritmo      *string `json:"version_algoritmo,omitempty"`
}

func (p MatchedPerson) FullName() string { return joinName(p.Nombre, p.Apellidos) }

type DetailedMetrics struct {
	CosineSimilarity    float64 `json:"cosine_similarity"`
	Correlation         float64 `json:"correlation"`
	EuclideanSimilarity float64 `json:"euclidean_similarity"`
	ManhattanSimilarity float64 `json:"manhattan_similarity"`
	Consistency         float64 `json:"consistency"`
	AdjustedThreshold   float64 `json:"adjusted_threshold"`
}

type RecognitionStatsResponse struct {
	SystemStats     SystemStats     `json:"system_stats"`
	Configuration   Configuration   `json:"configuration"`
	FeatureConfig   FeatureConfig   `json:"feature_config"`
	DetectionConfig DetectionConfig `json:"detection_config"`
}

// Configuration is the recognition configuration block shared by the
// recognition and admin stats endpoints. Every field may be missing.
type Configuration struct {
	EnhancedProcessing   bool               `json:"enhanced_processing"`
	FeatureMethod        *string            `json:"feature_method,omitempty"`
	DefaultThreshold     float64            `json:"default_threshold"`
	AdaptiveThreshold    bool               `json:"adaptive_threshold"`
	MultipleDetectors    bool               `json:"multiple_detectors"`
	UseMultipleDetectors bool               `json:"use_multiple_detectors"`
	UseDlib              bool               `json:"use_dlib"`
	ComparisonWeights    map[string]float64 `json:"comparison_weights,omitempty"`
}

const DefaultFeatureMethod = "traditional"

// SafeConfiguration is Configuration with the feature method resolved.
type SafeConfiguration struct {
	EnhancedProcessing   bool               `json:"enhanced_processing"`
	FeatureMethod        string             `json:"feature_method"`
	DefaultThreshold     float64            `json:"default_threshold"`
	AdaptiveThreshold    bool               `json:"adaptive_threshold"`
	UseMultipleDetectors bool               `json:"use_multiple_detectors"`
	UseDlib              bool               `json:"use_dlib"`
	ComparisonWeights    map[string]float64 `json:"comparison_weights,omitempty"`
}

func (c Configuration) ToSafeConfiguration() SafeConfiguration {
	method := DefaultFeatureMethod
	if c.FeatureMethod != nil {
		method = *c.FeatureMethod
	}
	return SafeConfiguration{
		EnhancedProcessing:   c.EnhancedProcessing,
		FeatureMethod:        method,
		DefaultThreshold:     c.DefaultThreshold,
		AdaptiveThreshold:    c.AdaptiveThreshold,
		UseMultipleDetectors: c.UseMultipleDetectors,
		UseDlib:              c.UseDlib,
		ComparisonWeights:    c.ComparisonWeights,
	}
}

type FeatureConfig struct {
	Method     string `json:"method"`
	Normalize  bool   `json:"normalize"`
	TargetSize int    `json:"target_size"`
}

type DetectionConfig struct {
	UseMultipleDetectors bool `json:"use_multiple_detectors"`
	UseDlib              bool `json:"use_dlib"`
}
