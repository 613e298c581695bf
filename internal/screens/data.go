package screens

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/pkg/dto"
)

const recentArchiveEntries = 10

// Data shows the synchronization state between the database and the
// server's backups, and the most recently archived downloads.
func (s *Service) Data(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenData, "load", "")
	v := newView(ScreenData, title(ScreenData))

	resp, err := s.api.CheckSync(ctx)
	if err != nil {
		v.Error = failure("Error checking synchronization", err)
	} else {
		addSyncStatus(v, resp)
	}

	if s.archiver != nil {
		keys, archErr := s.archiver.RecentArchives(ctx, recentArchiveEntries)
		if archErr != nil {
			s.logger.Warn("list archive", "request_id", act.activity.RequestID, "error", archErr)
			v.Add("Archive", "unavailable")
		} else {
			if len(keys) == 0 {
				keys = []string{"no archived files"}
			}
			v.Add("Archive", keys...)
		}
	}
	return s.finish(ctx, act, v, err)
}

func addSyncStatus(v *View, resp *dto.SyncCheckResponse) {
	st := resp.Status()
	v.Notice = "Synchronization status: " + orDefault(st.Status, "N/A")
	v.Add("Synchronization",
		kv("Database records", st.DatabaseRecords),
		kv("JSON backups", st.JSONBackups),
		kv("Pickle models", st.PickleModels),
		orDefault(st.Recommendation, "Status verified"),
	)
}

func (s *Service) ExportAll(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenData, "export_all", "")
	v := newView(ScreenData, "Export All Data")

	resp, err := s.api.ExportAll(ctx)
	if err != nil {
		v.Error = failure("Export error", err)
		return s.finish(ctx, act, v, err)
	}
	v.Notice = orDefault(resp.Message, "Export completed") + "\nThe file is ready to download"
	v.Add("Export", exportLines(resp.Filename, resp.TotalRecords, resp.DownloadURL)...)
	return s.finish(ctx, act, v, nil)
}

func (s *Service) ExportPerson(ctx context.Context, email string) *View {
	email = strings.TrimSpace(email)
	ctx, act := s.begin(ctx, ScreenData, "export_person", email)
	v := newView(ScreenData, "Export Person")

	if email == "" {
		v.Error = "Please enter the person's email"
		return s.finish(ctx, act, v, nil)
	}

	resp, err := s.api.ExportPersonByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			v.Error = "Person not found"
		} else {
			v.Error = failure("Export error", err)
		}
		return s.finish(ctx, act, v, err)
	}
	v.Notice = orDefault(resp.Message, "Export completed")
	v.Add("Export", exportLines(resp.Filename, resp.TotalRecords, resp.DownloadURL)...)
	return s.finish(ctx, act, v, nil)
}

func (s *Service) Backup(ctx context.Context) *View {
	ctx, act := s.begin(ctx, ScreenData, "backup", "")
	v := newView(ScreenData, "Create Backup")

	err := s.toolBackup(ctx, v)
	return s.finish(ctx, act, v, err)
}

// Import uploads a JSON export back into the server.
func (s *Service) Import(ctx context.Context, file client.File) *View {
	ctx, act := s.begin(ctx, ScreenData, "import", file.Name)
	v := newView(ScreenData, "Import Data")

	if file.Empty() {
		v.Error = "Please select a JSON file to import"
		return s.finish(ctx, act, v, nil)
	}
	if !strings.EqualFold(path.Ext(file.Name), ".json") {
		v.Error = "Only JSON export files can be imported"
		return s.finish(ctx, act, v, nil)
	}
	if file.ContentType == "" {
		file.ContentType = "application/json"
	}

	resp, err := s.api.ImportData(ctx, file)
	if err != nil {
		v.Error = failure("Import error", err)
		return s.finish(ctx, act, v, err)
	}

	v.Notice = orDefault(resp.Message, "Import completed")
	v.Add("Import",
		kv("Imported", resp.Imported),
		kv("Errors", resp.Errors),
	)
	if len(resp.ErrorDetails) > 0 {
		details := resp.ErrorDetails
		if len(details) > 3 {
			details = details[:3]
		}
		v.Add("Errors found", details...)
	}
	return s.finish(ctx, act, v, nil)
}

// Download fetches an exported file. When an archiver is configured the
// file is also stored under exports/YYYY/MM/DD/; archive failures are
// reported in the view but do not fail it.
func (s *Service) Download(ctx context.Context, filename string) (*View, *client.Download) {
	filename = strings.TrimSpace(filename)
	ctx, act := s.begin(ctx, ScreenData, "download", filename)
	v := newView(ScreenData, "Download File")

	if filename == "" || strings.ContainsAny(filename, `/\`) || filename == "." || filename == ".." {
		v.Error = "Please enter a valid file name"
		return s.finish(ctx, act, v, nil), nil
	}

	d, err := s.api.DownloadFile(ctx, filename)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			v.Error = "File not found: " + filename
		} else {
			v.Error = failure("Download error", err)
		}
		return s.finish(ctx, act, v, err), nil
	}

	v.Notice = fmt.Sprintf("Downloaded %s (%d bytes)", d.Filename, len(d.Data))
	lines := []string{
		kv("File", d.Filename),
		kv("Content type", d.ContentType),
		kv("Size", fmt.Sprintf("%d bytes", len(d.Data))),
	}
	if s.archiver != nil {
		key, archErr := s.archiver.ArchiveDownload(ctx, d.Filename, d.ContentType, d.Data, s.now())
		if archErr != nil {
			s.logger.Warn("archive download", "file", d.Filename, "request_id", act.activity.RequestID, "error", archErr)
			lines = append(lines, "Archive: failed")
		} else {
			lines = append(lines, kv("Archived as", key))
		}
	}
	v.Add("Download", lines...)
	return s.finish(ctx, act, v, nil), d
}
