package screens

import (
	"context"
	"fmt"
	"strconv"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/pkg/dto"
)

// Stats shows system statistics together with the admin health report.
// Only a failure of the statistics call is reported as an error.
func (s *Service) Stats(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenStats, "load", "")
	v := newView(ScreenStats, title(ScreenStats))

	var (
		stats     *dto.SystemStatsResponse
		statsErr  error
		health    *dto.HealthCheckResponse
		healthErr error
	)
	parallel(
		func() { stats, statsErr = s.api.GetSystemStats(ctx) },
		func() { health, healthErr = s.api.GetAdminHealth(ctx) },
	)

	if statsErr != nil {
		v.Error = failure("Error loading statistics", statsErr)
	} else {
		addSystemStats(v, stats)
	}
	if healthErr == nil {
		v.Add("Health", healthLines(health)...)
	} else {
		s.logger.Debug("admin health unavailable", "request_id", act.activity.RequestID, "error", healthErr)
	}
	return s.finish(ctx, act, v, statsErr)
}

func addSystemStats(v *View, st *dto.SystemStatsResponse) {
	info := st.SystemInfo
	v.Add("System",
		kv("Version", info.Version),
		kv("Status", info.Status),
		kv("Database", info.Database),
		kv("Enhanced processing", yesNo(info.EnhancedProcessing)),
		kv("Feature method", orDefault(info.FeatureMethod, "N/A")),
		kv("Default threshold", percent2(info.DefaultThreshold)),
	)

	db := st.DatabaseStatistics
	v.Add("Database",
		kv("Total persons", db.TotalPersons),
		kv("Total models", db.TotalModels),
		kv("MySQL version", orDefault(db.MySQLVersion, "N/A")),
		kv("First registration", FormatDate(orNA(db.FirstRegister))),
		kv("Last registration", FormatDate(orNA(db.LastRegister))),
	)
	if len(db.Methods) > 0 {
		lines := make([]string, 0, len(db.Methods))
		for _, name := range sortedKeys(db.Methods) {
			m := db.Methods[name]
			lines = append(lines, fmt.Sprintf("%s: %d persons, average threshold %s", name, m.Cantidad, percent2(m.UmbralPromedio)))
		}
		v.Add("Methods", lines...)
	}

	fs := st.FileSystem
	lines := []string{
		kv("Total files", fs.TotalFiles),
		kv("Total size", orDefault(fs.TotalSizeFormatted, strconv.FormatInt(fs.TotalSize, 10)+" B")),
	}
	for _, name := range sortedKeys(fs.Directories) {
		d := fs.Directories[name]
		lines = append(lines, fmt.Sprintf("%s: %d files, %s", name, d.Files, orDefault(d.SizeFormatted, strconv.FormatInt(d.Size, 10)+" B")))
	}
	v.Add("File system", lines...)

	if du := fs.DiskUsage; du != nil {
		v.Add("Disk usage", diskLines(du)...)
	}
}

func diskLines(du *dto.DiskUsage) []string {
	return []string{
		kv("Total", du.Total),
		kv("Used", du.Used),
		kv("Free", du.Free),
		kv("Usage", fmt.Sprintf("%.1f%%", du.UsagePercent)),
	}
}

func healthLines(h *dto.HealthCheckResponse) []string {
	c := h.Components
	lines := []string{
		kv("Status", h.Status),
		kv("Database", fmt.Sprintf("%s (connection %s)", c.Database.Status, okError(c.Database.Connection))),
		kv("Facial recognition", c.FacialRecognition),
		kv("File system", c.FileSystem),
	}
	for _, dep := range sortedKeys(c.Dependencies) {
		lines = append(lines, kv("Dependency "+dep, okError(c.Dependencies[dep])))
	}
	lines = append(lines,
		kv("Uptime", orDefault(h.Uptime, "N/A")),
		kv("Last check", orDefault(h.LastCheck, "N/A")),
	)
	return lines
}

// Admin loads configuration, integrity and performance concurrently. A
// failing call only blanks its own section; the view fails when all do.
func (s *Service) Admin(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenAdmin, "load", "")
	v := newView(ScreenAdmin, title(ScreenAdmin))

	var (
		cfg       *dto.SystemConfigResponse
		cfgErr    error
		integrity *dto.IntegrityCheckResponse
		intErr    error
		perf      *dto.PerformanceMetricsResponse
		perfErr   error
	)
	parallel(
		func() { cfg, cfgErr = s.api.GetSystemConfig(ctx) },
		func() { integrity, intErr = s.api.CheckIntegrity(ctx) },
		func() { perf, perfErr = s.api.GetPerformance(ctx) },
	)

	if cfgErr != nil {
		v.Add("Configuration", "unavailable: "+errorText(cfgErr))
	} else {
		v.Add("Configuration", recognitionConfigLines(cfg.FacialRecognition)...)
	}
	if intErr != nil {
		v.Add("Integrity", "unavailable: "+errorText(intErr))
	} else {
		addIntegrity(v, integrity)
	}
	if perfErr != nil {
		v.Add("Performance", "unavailable: "+errorText(perfErr))
	} else {
		v.Add("Performance", performanceLines(perf)...)
	}

	var err error
	if cfgErr != nil && intErr != nil && perfErr != nil {
		err = cfgErr
		v.Error = errorText(err)
	}
	return s.finish(ctx, act, v, err)
}

// Cleanup removes server-side temporary files older than maxAgeHours.
// Zero means the 24 hour default.
func (s *Service) Cleanup(ctx context.Context, maxAgeHours int) *View {
	ctx, act := s.begin(ctx, ScreenAdmin, "cleanup", strconv.Itoa(maxAgeHours))
	v := newView(ScreenAdmin, "System Cleanup")

	if maxAgeHours < 0 {
		v.Error = "Maximum age must be a positive number of hours"
		return s.finish(ctx, act, v, nil)
	}
	if maxAgeHours == 0 {
		maxAgeHours = client.DefaultCleanupMaxAgeHours
	}

	resp, err := s.api.Cleanup(ctx, maxAgeHours)
	if err != nil {
		v.Error = failure("Cleanup error", err)
		return s.finish(ctx, act, v, err)
	}

	v.Notice = fmt.Sprintf("%s\nCleanup completed for files older than %d hours", orDefault(resp.Message, "Cleanup finished"), maxAgeHours)
	v.Add("Cleanup",
		kv("Status", orDefault(resp.Status, "N/A")),
		kv("Max age (hours)", maxAgeHours),
	)
	return s.finish(ctx, act, v, nil)
}

// AdvancedConfig shows the full server configuration.
func (s *Service) AdvancedConfig(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenAdvancedConfig, "load", "")
	v := newView(ScreenAdvancedConfig, title(ScreenAdvancedConfig))

	cfg, err := s.api.GetSystemConfig(ctx)
	if err != nil {
		v.Error = failure("Error loading configuration", err)
		return s.finish(ctx, act, v, err)
	}

	v.Add("Facial recognition", recognitionConfigLines(cfg.FacialRecognition)...)
	v.Add("Thresholds",
		kv("Default", percent2(cfg.Thresholds.Default)),
		kv("Minimum", percent2(cfg.Thresholds.Min)),
		kv("Maximum", percent2(cfg.Thresholds.Max)),
	)
	if len(cfg.ComparisonWeights) > 0 {
		lines := make([]string, 0, len(cfg.ComparisonWeights))
		for _, k := range sortedKeys(cfg.ComparisonWeights) {
			lines = append(lines, kv(k, FormatPercentage(cfg.ComparisonWeights[k])))
		}
		v.Add("Comparison weights", lines...)
	}
	v.Add("System",
		kv("Debug", yesNo(cfg.System.Debug)),
		kv("Log level", orDefault(cfg.System.LogLevel, "N/A")),
	)
	v.Add("Directories",
		kv("Upload", cfg.Directories.Upload),
		kv("Models", cfg.Directories.Models),
		kv("Backup", cfg.Directories.Backup),
		kv("JSON backup", cfg.Directories.JSONBackup),
	)
	v.Add("Notes",
		"Configuration changes are made in the server's .env file",
		"Restart the server after changing the configuration",
		"Enhanced processing requires scikit-learn on the server",
		"Adaptive thresholds tune precision automatically",
	)
	return s.finish(ctx, act, v, nil)
}

func recognitionConfigLines(fr dto.FacialRecognitionConfig) []string {
	return []string{
		kv("Enhanced processing", yesNo(fr.EnhancedProcessing)),
		kv("Feature method", orDefault(fr.FeatureMethod, dto.DefaultFeatureMethod)),
		kv("Default threshold", percent2(fr.DefaultThreshold)),
		kv("Adaptive threshold", yesNo(fr.AdaptiveThreshold)),
		kv("Multiple detectors", yesNo(fr.MultipleDetectors)),
		kv("dlib", yesNo(fr.UseDlib)),
	}
}

func addIntegrity(v *View, r *dto.IntegrityCheckResponse) {
	ic := r.IntegrityCheck
	lines := []string{
		kv("Overall status", orDefault(ic.OverallStatus, "N/A")),
		kv("Database", fmt.Sprintf("%s (connection %s)", ic.Database.Status, okError(ic.Database.Connection))),
	}
	for _, name := range sortedKeys(ic.Directories) {
		d := ic.Directories[name]
		line := fmt.Sprintf("%s: %s, %d files", name, d.Status, d.Files)
		if d.SizeMB != nil {
			line += fmt.Sprintf(", %.2f MB", *d.SizeMB)
		}
		if d.Message != nil {
			line += " (" + *d.Message + ")"
		}
		lines = append(lines, line)
	}
	di := ic.DataIntegrity
	lines = append(lines,
		kv("Data integrity", orDefault(di.Status, "N/A")),
		kv("Persons without features", di.PersonsWithoutFeatures),
		kv("Orphan features", di.OrphanFeatures),
		kv("Invalid thresholds", di.InvalidThresholds),
	)
	for _, issue := range di.Issues {
		lines = append(lines, "issue: "+issue)
	}
	v.Add("Integrity", lines...)

	if len(r.Recommendations) > 0 {
		v.Add("Recommendations", r.Recommendations...)
	}
}

func performanceLines(p *dto.PerformanceMetricsResponse) []string {
	lines := []string{
		kv("Total persons", p.DatabasePerformance.TotalPersons),
		kv("Total features", p.DatabasePerformance.TotalFeatures),
		kv("Dependencies", okError(p.SystemResources.DependenciesOK)),
		kv("Enhanced processing", yesNo(p.ConfigurationStatus.EnhancedProcessing)),
		kv("Adaptive thresholds", yesNo(p.ConfigurationStatus.AdaptiveThresholds)),
		kv("Multiple detectors", yesNo(p.ConfigurationStatus.MultipleDetectors)),
	}
	if du := p.SystemResources.DiskUsage; du != nil {
		lines = append(lines, kv("Disk usage", fmt.Sprintf("%.1f%% (%s free)", du.UsagePercent, du.Free)))
	}
	for _, name := range sortedKeys(p.SystemResources.FileCounts) {
		lines = append(lines, kv("Files in "+name, p.SystemResources.FileCounts[name].Files))
	}
	return lines
}
