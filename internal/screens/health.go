package screens

import (
	"context"

	"github.com/your-org/frfront/pkg/dto"
)

// Health combines the general health check, the admin health report and
// the service information. Only the general check can fail the view.
func (s *Service) Health(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenHealth, "load", "")
	v := newView(ScreenHealth, title(ScreenHealth))

	var (
		general    *dto.GeneralHealthResponse
		generalErr error
		admin      *dto.HealthCheckResponse
		adminErr   error
		info       *dto.SystemInfoResponse
		infoErr    error
	)
	parallel(
		func() { general, generalErr = s.api.GeneralHealth(ctx) },
		func() { admin, adminErr = s.api.GetAdminHealth(ctx) },
		func() { info, infoErr = s.api.SystemInfo(ctx) },
	)

	if generalErr != nil {
		v.Error = failure("General health check error", generalErr)
	} else {
		v.Notice = serviceStatus(general.Status)
		lines := []string{
			kv("Status", general.Status),
			kv("Database", orDefault(general.Database, "N/A")),
			kv("Facial processing", orDefault(general.FacialProcessing, "N/A")),
		}
		for _, dep := range sortedKeys(general.Dependencies) {
			lines = append(lines, kv("Dependency "+dep, general.Dependencies[dep]))
		}
		lines = append(lines, kv("Timestamp", orDefault(general.Timestamp, "N/A")))
		v.Add("General", lines...)
	}
	if adminErr == nil {
		v.Add("Components", healthLines(admin)...)
	}
	if infoErr == nil {
		v.Add("System", systemLines(info.System)...)
	}
	return s.finish(ctx, act, v, generalErr)
}

// SystemInfo shows the service description from /info and the root endpoint.
func (s *Service) SystemInfo(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenSystemInfo, "load", "")
	v := newView(ScreenSystemInfo, title(ScreenSystemInfo))

	var (
		info    *dto.SystemInfoResponse
		infoErr error
		root    *dto.RootInfoResponse
		rootErr error
	)
	parallel(
		func() { info, infoErr = s.api.SystemInfo(ctx) },
		func() { root, rootErr = s.api.RootInfo(ctx) },
	)

	if rootErr == nil {
		v.Add("Service",
			kv("Message", orDefault(root.Message, "N/A")),
			kv("Version", orDefault(root.Version, "N/A")),
			kv("Status", orDefault(root.Status, "N/A")),
		)
		if len(root.Features) > 0 {
			v.Add("Features", mapLines(root.Features)...)
		}
		if len(root.Endpoints) > 0 {
			v.Add("Endpoints", mapLines(root.Endpoints)...)
		}
	}

	if infoErr != nil {
		v.Error = failure("Error loading information", infoErr)
		return s.finish(ctx, act, v, infoErr)
	}
	v.Add("System", systemLines(info.System)...)
	if len(info.Configuration) > 0 {
		v.Add("Configuration", mapLines(info.Configuration)...)
	}
	if len(info.Database) > 0 {
		v.Add("Database", mapLines(info.Database)...)
	}
	if len(info.Dependencies) > 0 {
		v.Add("Dependencies", mapLines(info.Dependencies)...)
	}
	if len(info.Capabilities) > 0 {
		v.Add("Capabilities", mapLines(info.Capabilities)...)
	}
	return s.finish(ctx, act, v, nil)
}

func systemLines(sys dto.SystemInfoSystem) []string {
	return []string{
		kv("Name", orDefault(sys.Name, "N/A")),
		kv("Version", orDefault(sys.Version, "N/A")),
		kv("Mode", orDefault(sys.Mode, "N/A")),
		kv("Environment", orDefault(sys.Environment, "N/A")),
	}
}
