package screens

import (
	"context"
	"fmt"
	"strings"

	"github.com/your-org/frfront/internal/client"
)

const (
	ToolIntegrity        = "integrity"
	ToolCleanup          = "cleanup"
	ToolPerformance      = "performance"
	ToolRecognitionStats = "recognition-stats"
	ToolProcessingStats  = "processing-stats"
	ToolExport           = "export"
	ToolBackup           = "backup"
	ToolSync             = "sync"
)

type tool struct {
	name  string
	title string
	run   func(s *Service, ctx context.Context, v *View) error
}

var tools = []tool{
	{ToolIntegrity, "Check Integrity", (*Service).toolIntegrity},
	{ToolCleanup, "Clean Up System", (*Service).toolCleanup},
	{ToolPerformance, "Performance Metrics", (*Service).toolPerformance},
	{ToolRecognitionStats, "Recognition Statistics", (*Service).toolRecognitionStats},
	{ToolProcessingStats, "Processing Statistics", (*Service).toolProcessingStats},
	{ToolExport, "Export All Data", (*Service).toolExport},
	{ToolBackup, "Create Backup", (*Service).toolBackup},
	{ToolSync, "Check Synchronization", (*Service).toolSync},
}

// Tools lists the available tool names.
func Tools() []string {
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.name
	}
	return names
}

// RunTool runs one of the administrative utilities of the tools screen.
func (s *Service) RunTool(ctx context.Context, name string) *View {
	ctx, act := s.begin(ctx, ScreenTools, name, "")

	for _, t := range tools {
		if t.name != name {
			continue
		}
		v := newView(ScreenTools, t.title)
		err := t.run(s, ctx, v)
		return s.finish(ctx, act, v, err)
	}

	v := newView(ScreenTools, title(ScreenTools))
	v.Error = fmt.Sprintf("Unknown tool %q; available: %s", name, strings.Join(Tools(), ", "))
	return s.finish(ctx, act, v, nil)
}

func (s *Service) toolIntegrity(ctx context.Context, v *View) error {
	resp, err := s.api.CheckIntegrity(ctx)
	if err != nil {
		v.Error = failure("Error checking integrity", err)
		return err
	}
	ic := resp.IntegrityCheck
	v.Notice = "Integrity check completed"
	v.Add("Result",
		kv("Overall status", strings.ToUpper(ic.OverallStatus)),
		kv("Database", ic.Database.Status),
		kv("Connection", okError(ic.Database.Connection)),
	)
	if len(resp.Recommendations) == 0 {
		v.Add("Recommendations", "No problems found")
		return nil
	}
	recs := resp.Recommendations
	if len(recs) > 3 {
		recs = recs[:3]
	}
	v.Add("Recommendations", recs...)
	return nil
}

func (s *Service) toolCleanup(ctx context.Context, v *View) error {
	resp, err := s.api.Cleanup(ctx, client.DefaultCleanupMaxAgeHours)
	if err != nil {
		v.Error = failure("Cleanup error", err)
		return err
	}
	v.Notice = fmt.Sprintf("%s\nCleanup completed for files older than %d hours",
		orDefault(resp.Message, "Cleanup finished"), client.DefaultCleanupMaxAgeHours)
	return nil
}

func (s *Service) toolPerformance(ctx context.Context, v *View) error {
	resp, err := s.api.GetPerformance(ctx)
	if err != nil {
		v.Error = failure("Error getting metrics", err)
		return err
	}
	v.Add("Performance", performanceLines(resp)...)
	return nil
}

func (s *Service) toolRecognitionStats(ctx context.Context, v *View) error {
	resp, err := s.api.GetRecognitionStats(ctx)
	if err != nil {
		v.Error = failure("Error getting statistics", err)
		return err
	}
	cfg := resp.Configuration.ToSafeConfiguration()
	v.Add("Database", systemStatsLines(resp.SystemStats)...)
	v.Add("Configuration",
		kv("Enhanced processing", yesNo(cfg.EnhancedProcessing)),
		kv("Method", cfg.FeatureMethod),
		kv("Default threshold", wholePercent(cfg.DefaultThreshold)),
		kv("Adaptive thresholds", yesNo(cfg.AdaptiveThreshold)),
		kv("Multiple detectors", yesNo(cfg.UseMultipleDetectors)),
		kv("dlib", yesNo(cfg.UseDlib)),
	)
	v.Add("Feature extraction",
		kv("Method", orDefault(resp.FeatureConfig.Method, "N/A")),
		kv("Normalization", yesNo(resp.FeatureConfig.Normalize)),
		kv("Target size", resp.FeatureConfig.TargetSize),
	)
	return nil
}

func (s *Service) toolProcessingStats(ctx context.Context, v *View) error {
	resp, err := s.api.GetProcessingStats(ctx)
	if err != nil {
		v.Error = failure("Error getting statistics", err)
		return err
	}
	cc, caps := resp.CurrentConfig, resp.SystemCapabilities
	v.Add("Database", systemStatsLines(resp.DatabaseStats)...)
	v.Add("Current configuration",
		kv("Enhanced processing", yesNo(cc.EnhancedProcessing)),
		kv("Feature method", orDefault(cc.FeatureMethod, "N/A")),
		kv("Default threshold", wholePercent(cc.DefaultThreshold)),
		kv("Adaptive thresholds", yesNo(cc.AdaptiveThreshold)),
		kv("Multiple detectors", yesNo(cc.MultipleDetectors)),
	)
	v.Add("Capabilities",
		kv("dlib available", yesNo(caps.DlibAvailable)),
		kv("scikit-learn available", yesNo(caps.SklearnAvailable)),
		kv("Migration enabled", yesNo(caps.MigrationEnabled)),
	)
	return nil
}

func (s *Service) toolExport(ctx context.Context, v *View) error {
	resp, err := s.api.ExportAll(ctx)
	if err != nil {
		v.Error = failure("Export error", err)
		return err
	}
	v.Notice = orDefault(resp.Message, "Export completed")
	v.Add("Export", exportLines(resp.Filename, resp.TotalRecords, resp.DownloadURL)...)
	return nil
}

func (s *Service) toolBackup(ctx context.Context, v *View) error {
	resp, err := s.api.CreateBackup(ctx)
	if err != nil {
		v.Error = failure("Error creating backup", err)
		return err
	}
	v.Notice = orDefault(resp.Message, "Backup created") + "\nBackup created on the server"
	b := resp.BackupInfo
	if b.Filename != "" {
		v.Add("Backup", exportLines(b.Filename, b.TotalRecords, b.DownloadURL)...)
	}
	return nil
}

func (s *Service) toolSync(ctx context.Context, v *View) error {
	resp, err := s.api.CheckSync(ctx)
	if err != nil {
		v.Error = failure("Error checking synchronization", err)
		return err
	}
	addSyncStatus(v, resp)
	return nil
}

func exportLines(filename string, records int, downloadURL string) []string {
	lines := []string{
		kv("File", filename),
		kv("Records exported", records),
	}
	if downloadURL != "" {
		lines = append(lines, kv("Download", downloadURL))
	}
	return lines
}
