package dto

import (
	"fmt"
	"strconv"
)

type ExportResponse struct {
	Message      string `json:"message"`
	Filename     string `json:"filename"`
	TotalRecords int    `json:"total_records"`
	DownloadURL  string `json:"download_url"`
}

type ImportResponse struct {
	Message      string   `json:"message"`
	Imported     int      `json:"imported"`
	Errors       int      `json:"errors"`
	ErrorDetails []string `json:"error_details"`
}

type BackupResponse struct {
	Message    string         `json:"message"`
	BackupInfo ExportResponse `json:"backup_info"`
}

// SyncCheckResponse keeps the server's synchronization report as an
// untyped map; Status extracts the keys the screens know about.
type SyncCheckResponse struct {
	Synchronization map[string]any `json:"synchronization"`
}

type SyncStatus struct {
	Status          string
	DatabaseRecords int
	JSONBackups     int
	PickleModels    int
	Recommendation  string
}

func (r SyncCheckResponse) Status() SyncStatus {
	m := r.Synchronization
	return SyncStatus{
		Status:          stringValue(m["status"]),
		DatabaseRecords: intValue(m["database_records"]),
		JSONBackups:     intValue(m["json_backups"]),
		PickleModels:    intValue(m["pickle_models"]),
		Recommendation:  stringValue(m["recommendation"]),
	}
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func intValue(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, _ := strconv.Atoi(t)
		return n
	}
	return 0
}
