package dto

type SystemStatsResponse struct {
	SystemInfo         SystemInfoDetailed `json:"system_info"`
	DatabaseStatistics DatabaseStatistics `json:"database_statistics"`
	FileSystem         FileSystemStats    `json:"file_system"`
	Configuration      Configuration      `json:"configuration"`
}

type SystemInfoDetailed struct {
	Version            string  `json:"version"`
	Status             string  `json:"status"`
	Database           string  `json:"database"`
	EnhancedProcessing bool    `json:"enhanced_processing"`
	FeatureMethod      string  `json:"feature_method"`
	DefaultThreshold   float64 `json:"default_threshold"`
}

type DatabaseStatistics struct {
	TotalPersons  int                    `json:"total_persons"`
	TotalModels   int                    `json:"total_models"`
	MySQLVersion  string                 `json:"mysql_version"`
	FirstRegister *string                `json:"first_register,omitempty"`
	LastRegister  *string                `json:"last_register,omitempty"`
	Methods       map[string]MethodStats `json:"methods"`
}

type MethodStats struct {
	Cantidad       int     `json:"cantidad"`
	UmbralPromedio float64 `json:"umbral_promedio"`
}

type FileSystemStats struct {
	Directories        map[string]DirectoryInfo `json:"directories"`
	TotalFiles         int                      `json:"total_files"`
	TotalSize          int64                    `json:"total_size"`
	TotalSizeFormatted string                   `json:"total_size_formatted"`
	DiskUsage          *DiskUsage               `json:"disk_usage,omitempty"`
}

type DirectoryInfo struct {
	Files         int    `json:"files"`
	Size          int64  `json:"size"`
	SizeFormatted string `json:"size_formatted"`
}

type DiskUsage struct {
	Total        string  `json:"total"`
	Used         string  `json:"used"`
	Free         string  `json:"free"`
	UsagePercent float64 `json:"usage_percent"`
}

// HealthCheckResponse is the administrative health report.
type HealthCheckResponse struct {
	Status       string       `json:"status"`
	Components   Components   `json:"components"`
	SystemConfig SystemConfig `json:"system_config"`
	Uptime       string       `json:"uptime"`
	LastCheck    string       `json:"last_check"`
}

type Components struct {
	Database          DatabaseComponent `json:"database"`
	FacialRecognition string            `json:"facial_recognition"`
	FileSystem        string            `json:"file_system"`
	Dependencies      map[string]bool   `json:"dependencies"`
}

type DatabaseComponent struct {
	Status     string `json:"status"`
	Connection bool   `json:"connection"`
}

type SystemConfig struct {
	EnhancedProcessing bool   `json:"enhanced_processing"`
	FeatureMethod      string `json:"feature_method"`
	AdaptiveThreshold  bool   `json:"adaptive_threshold"`
}

type IntegrityCheckResponse struct {
	IntegrityCheck  IntegrityCheck `json:"integrity_check"`
	Recommendations []string       `json:"recommendations"`
}

type IntegrityCheck struct {
	OverallStatus string                     `json:"overall_status"`
	Database      DatabaseStatus             `json:"database"`
	Directories   map[string]DirectoryStatus `json:"directories"`
	DataIntegrity DataIntegrity              `json:"data_integrity"`
}

type DatabaseStatus struct {
	Status     string `json:"status"`
	Connection bool   `json:"connection"`
}

type DirectoryStatus struct {
	Status  string   `json:"status"`
	Files   int      `json:"files"`
	SizeMB  *float64 `json:"size_mb,omitempty"`
	Message *string  `json:"message,omitempty"`
}

type DataIntegrity struct {
	Status                 string   `json:"status"`
	Issues                 []string `json:"issues"`
	PersonsWithoutFeatures int      `json:"persons_without_features"`
	OrphanFeatures         int      `json:"orphan_features"`
	InvalidThresholds      int      `json:"invalid_thresholds"`
}

type CleanupResponse struct {
	Message     string `json:"message"`
	MaxAgeHours int    `json:"max_age_hours"`
	Status      string `json:"status"`
}

type SystemConfigResponse struct {
	FacialRecognition FacialRecognitionConfig `json:"facial_recognition"`
	Thresholds        ThresholdConfig         `json:"thresholds"`
	ComparisonWeights map[string]float64      `json:"comparison_weights,omitempty"`
	System            SystemGeneralConfig     `json:"system"`
	Directories       DirectoriesConfig       `json:"directories"`
}

type FacialRecognitionConfig struct {
	EnhancedProcessing bool    `json:"enhanced_processing"`
	FeatureMethod      string  `json:"feature_method"`
	DefaultThreshold   float64 `json:"default_threshold"`
	AdaptiveThreshold  bool    `json:"adaptive_threshold"`
	MultipleDetectors  bool    `json:"multiple_detectors"`
	UseDlib            bool    `json:"use_dlib"`
}

type ThresholdConfig struct {
	Default float64 `json:"default"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

type SystemGeneralConfig struct {
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level"`
}

type DirectoriesConfig struct {
	Upload     string `json:"upload"`
	Models     string `json:"models"`
	Backup     string `json:"backup"`
	JSONBackup string `json:"json_backup"`
}

type PerformanceMetricsResponse struct {
	DatabasePerformance DatabasePerformance `json:"database_performance"`
	SystemResources     SystemResources     `json:"system_resources"`
	ConfigurationStatus ConfigurationStatus `json:"configuration_status"`
}

type DatabasePerformance struct {
	TotalPersons  int `json:"total_persons"`
	TotalFeatures int `json:"total_features"`
}

type SystemResources struct {
	DependenciesOK bool                     `json:"dependencies_ok"`
	DiskUsage      *DiskUsage               `json:"disk_usage,omitempty"`
	FileCounts     map[string]DirectoryInfo `json:"file_counts"`
}

type ConfigurationStatus struct {
	EnhancedProcessing bool `json:"enhanced_processing"`
	AdaptiveThresholds bool `json:"adaptive_thresholds"`
	MultipleDetectors  bool `json:"multiple_detectors"`
}
