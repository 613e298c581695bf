package client

import (
	"fmt"
	"net/http"
	"strings"
)

// Endpoint declares one remote operation of the recognition service.
// Path is relative to the base URL unless it starts with "/", in which case
// it is resolved against the host root. Placeholders look like {name}.
type Endpoint struct {
	Name     string
	Method   string
	Path     string
	Fields   []string // text form parts
	FilePart string   // binary part name, empty when the request has no file
	Query    []string
}

// Multipart reports whether requests to e are sent as multipart/form-data.
func (e Endpoint) Multipart() bool {
	return e.FilePart != "" || len(e.Fields) > 0
}

// Expand substitutes the {name} placeholders of the path with already
// escaped values.
func (e Endpoint) Expand(params map[string]string) (string, error) {
	var b strings.Builder
	rest := e.Path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("endpoint %s: unterminated placeholder in %q", e.Name, e.Path)
		}
		name := rest[open+1 : open+end]
		value, ok := params[name]
		if !ok || value == "" {
			return "", fmt.Errorf("endpoint %s: missing path parameter %q", e.Name, name)
		}
		b.WriteString(rest[:open])
		b.WriteString(value)
		rest = rest[open+end+1:]
	}
}

// Persons.
var (
	EndpointRegisterPerson = Endpoint{
		Name:     "register_person",
		Method:   http.MethodPost,
		Path:     "api/persons/register",
		Fields:   []string{"nombre", "apellidos", "correo", "id_estudiante"},
		FilePart: "foto",
	}
	EndpointListPersons = Endpoint{
		Name:   "list_persons",
		Method: http.MethodGet,
		Path:   "api/persons/list",
	}
	EndpointPersonByEmail = Endpoint{
		Name:   "person_by_email",
		Method: http.MethodGet,
		Path:   "api/persons/search/email/{email}",
	}
	EndpointPersonByStudentID = Endpoint{
		Name:   "person_by_student_id",
		Method: http.MethodGet,
		Path:   "api/persons/search/student/{student_id}",
	}
	EndpointPersonByID = Endpoint{
		Name:   "person_by_id",
		Method: http.MethodGet,
		Path:   "api/persons/{person_id}",
	}
	EndpointUpdatePersonFeatures = Endpoint{
		Name:     "update_person_features",
		Method:   http.MethodPut,
		Path:     "api/persons/{person_id}/update-features",
		FilePart: "foto",
	}
	EndpointProcessingStats = Endpoint{
		Name:   "processing_stats",
		Method: http.MethodGet,
		Path:   "api/persons/stats/processing",
	}
)

// Recognition.
var (
	EndpointRecognizeByEmail = Endpoint{
		Name:     "recognize_by_email",
		Method:   http.MethodPost,
		Path:     "api/recognition/compare/email",
		Fields:   []string{"email"},
		FilePart: "test_image",
	}
	EndpointRecognizeByStudentID = Endpoint{
		Name:     "recognize_by_student_id",
		Method:   http.MethodPost,
		Path:     "api/recognition/compare/student",
		Fields:   []string{"student_id"},
		FilePart: "test_image",
	}
	EndpointRecognizeByPersonID = Endpoint{
		Name:     "recognize_by_person_id",
		Method:   http.MethodPost,
		Path:     "api/recognition/compare/id/{person_id}",
		FilePart: "test_image",
	}
	EndpointIdentify = Endpoint{
		Name:     "identify",
		Method:   http.MethodPost,
		Path:     "api/recognition/identify",
		FilePart: "test_image",
	}
	EndpointRecognitionStats = Endpoint{
		Name:   "recognition_stats",
		Method: http.MethodGet,
		Path:   "api/recognition/stats",
	}
)

// Administration.
var (
	EndpointSystemStats = Endpoint{
		Name:   "system_stats",
		Method: http.MethodGet,
		Path:   "api/admin/stats",
	}
	EndpointAdminHealth = Endpoint{
		Name:   "admin_health",
		Method: http.MethodGet,
		Path:   "api/admin/health",
	}
	EndpointIntegrity = Endpoint{
		Name:   "integrity",
		Method: http.MethodGet,
		Path:   "api/admin/integrity",
	}
	EndpointCleanup = Endpoint{
		Name:   "cleanup",
		Method: http.MethodPost,
		Path:   "api/admin/cleanup",
		Query:  []string{"max_age_hours"},
	}
	EndpointSystemConfig = Endpoint{
		Name:   "system_config",
		Method: http.MethodGet,
		Path:   "api/admin/config",
	}
	EndpointPerformance = Endpoint{
		Name:   "performance",
		Method: http.MethodGet,
		Path:   "api/admin/performance",
	}
)

// Data management.
var (
	EndpointExportAll = Endpoint{
		Name:   "export_all",
		Method: http.MethodGet,
		Path:   "api/data/export/all",
	}
	EndpointExportPersonByEmail = Endpoint{
		Name:   "export_person_by_email",
		Method: http.MethodGet,
		Path:   "api/data/export/person/email/{email}",
	}
	EndpointImportData = Endpoint{
		Name:     "import_data",
		Method:   http.MethodPost,
		Path:     "api/data/import",
		FilePart: "file",
	}
	EndpointDownloadFile = Endpoint{
		Name:   "download_file",
		Method: http.MethodGet,
		Path:   "api/data/download/{filename}",
	}
	EndpointCreateBackup = Endpoint{
		Name:   "create_backup",
		Method: http.MethodGet,
		Path:   "api/data/backup/create",
	}
	EndpointSyncCheck = Endpoint{
		Name:   "sync_check",
		Method: http.MethodGet,
		Path:   "api/data/sync/check",
	}
)

// Health and service information.
var (
	EndpointGeneralHealth = Endpoint{
		Name:   "general_health",
		Method: http.MethodGet,
		Path:   "health",
	}
	EndpointRootInfo = Endpoint{
		Name:   "root_info",
		Method: http.MethodGet,
		Path:   "/",
	}
	EndpointSystemInfo = Endpoint{
		Name:   "system_info",
		Method: http.MethodGet,
		Path:   "info",
	}
)

// Endpoints lists every declared operation.
func Endpoints() []Endpoint {
	return []Endpoint{
		EndpointRegisterPerson,
		EndpointListPersons,
		EndpointPersonByEmail,
		EndpointPersonByStudentID,
		EndpointPersonByID,
		EndpointUpdatePersonFeatures,
		EndpointProcessingStats,
		EndpointRecognizeByEmail,
		EndpointRecognizeByStudentID,
		EndpointRecognizeByPersonID,
		EndpointIdentify,
		EndpointRecognitionStats,
		EndpointSystemStats,
		EndpointAdminHealth,
		EndpointIntegrity,
		EndpointCleanup,
		EndpointSystemConfig,
		EndpointPerformance,
		EndpointExportAll,
		EndpointExportPersonByEmail,
		EndpointImportData,
		EndpointDownloadFile,
		EndpointCreateBackup,
		EndpointSyncCheck,
		EndpointGeneralHealth,
		EndpointRootInfo,
		EndpointSystemInfo,
	}
}
