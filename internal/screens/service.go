// Package screens implements the user-facing tasks of the front-end. Each
// screen calls the recognition service through API and renders the result
// as a View; failures become the view's error text, never a Go error.
package screens

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/your-org/frfront/internal/client"
	"github.com/your-org/frfront/internal/models"
	"github.com/your-org/frfront/internal/observability"
	"github.com/your-org/frfront/pkg/dto"
)

// API is the subset of the recognition service the screens use.
// *client.Client implements it.
type API interface {
	RegisterPerson(ctx context.Context, r client.Registration) (*dto.PersonRegistrationResponse, error)
	ListPersons(ctx context.Context) (*dto.PersonListResponse, error)
	GetPersonByEmail(ctx context.Context, email string) (*dto.PersonResponse, error)
	GetPersonByStudentID(ctx context.Context, studentID string) (*dto.PersonResponse, error)
	GetPersonByID(ctx context.Context, personID int) (*dto.PersonResponse, error)
	UpdatePersonFeatures(ctx context.Context, personID int, photo client.File) (*dto.PersonUpdateFeaturesResponse, error)
	GetProcessingStats(ctx context.Context) (*dto.ProcessingStatsResponse, error)

	RecognizeByEmail(ctx context.Context, email string, image client.File) (*dto.RecognitionResponse, error)
	RecognizeByStudentID(ctx context.Context, studentID string, image client.File) (*dto.RecognitionResponse, error)
	RecognizeByPersonID(ctx context.Context, personID int, image client.File) (*dto.RecognitionResponse, error)
	Identify(ctx context.Context, image client.File) (*dto.IdentificationResponse, error)
	GetRecognitionStats(ctx context.Context) (*dto.RecognitionStatsResponse, error)

	GetSystemStats(ctx context.Context) (*dto.SystemStatsResponse, error)
	GetAdminHealth(ctx context.Context) (*dto.HealthCheckResponse, error)
	CheckIntegrity(ctx context.Context) (*dto.IntegrityCheckResponse, error)
	Cleanup(ctx context.Context, maxAgeHours int) (*dto.CleanupResponse, error)
	GetSystemConfig(ctx context.Context) (*dto.SystemConfigResponse, error)
	GetPerformance(ctx context.Context) (*dto.PerformanceMetricsResponse, error)

	ExportAll(ctx context.Context) (*dto.ExportResponse, error)
	ExportPersonByEmail(ctx context.Context, email string) (*dto.ExportResponse, error)
	ImportData(ctx context.Context, file client.File) (*dto.ImportResponse, error)
	DownloadFile(ctx context.Context, filename string) (*client.Download, error)
	CreateBackup(ctx context.Context) (*dto.BackupResponse, error)
	CheckSync(ctx context.Context) (*dto.SyncCheckResponse, error)

	GeneralHealth(ctx context.Context) (*dto.GeneralHealthResponse, error)
	RootInfo(ctx context.Context) (*dto.RootInfoResponse, error)
	SystemInfo(ctx context.Context) (*dto.SystemInfoResponse, error)
}

// Recorder receives one Activity per screen action.
type Recorder interface {
	RecordActivity(ctx context.Context, a models.Activity) error
}

type RecorderFunc func(ctx context.Context, a models.Activity) error

func (f RecorderFunc) RecordActivity(ctx context.Context, a models.Activity) error {
	return f(ctx, a)
}

// Archiver keeps a copy of downloaded files. *storage.MinIOStore implements it.
type Archiver interface {
	// ArchiveDownload stores data and returns the key it was stored under.
	ArchiveDownload(ctx context.Context, filename, contentType string, data []byte, at time.Time) (string, error)
	RecentArchives(ctx context.Context, limit int) ([]string, error)
}

const recordTimeout = 5 * time.Second

type Service struct {
	api       API
	recorders []Recorder
	archiver  Archiver
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorders = append(s.recorders, r) }
}

func WithArchiver(a Archiver) Option {
	return func(s *Service) { s.archiver = a }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(api API, opts ...Option) *Service {
	s := &Service{
		api:    api,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type action struct {
	activity models.Activity
	start    time.Time
}

func (a *action) matched(m models.Match) { a.activity.Match = &m }

// begin starts tracking one screen action. The returned context carries the
// request id shared by every upstream call of the action.
func (s *Service) begin(ctx context.Context, screen, name, subject string) (context.Context, *action) {
	id := client.RequestIDFromContext(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = client.WithRequestID(ctx, id)
	}
	return ctx, &action{
		activity: models.NewActivity(screen, name, subject, id),
		start:    s.now(),
	}
}

// finish classifies the action, hands it to the recorders and returns v.
// err is the upstream failure that produced v.Error, if any.
func (s *Service) finish(ctx context.Context, act *action, v *View, err error) *View {
	a := act.activity
	a.Duration = s.now().Sub(act.start)
	v.RequestID = a.RequestID

	switch {
	case err != nil:
		a.Outcome = models.OutcomeError
		a.ErrorKind = client.ErrorKind(err)
		a.Message = v.Error
	case v.Error != "":
		a.Outcome = models.OutcomeInvalid
		a.Message = v.Error
	default:
		a.Outcome = models.OutcomeSuccess
		a.Message = v.Notice
	}

	observability.ScreenActions.WithLabelValues(a.Screen, string(a.Outcome)).Inc()
	s.logger.Info("screen action",
		"screen", a.Screen,
		"action", a.Action,
		"outcome", a.Outcome,
		"duration", a.Duration.String(),
		"request_id", a.RequestID,
	)
	if err != nil {
		s.logger.Warn("screen action failed", "screen", a.Screen, "action", a.Action, "request_id", a.RequestID, "error", err)
	}

	if len(s.recorders) > 0 {
		recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
		defer cancel()
		for _, r := range s.recorders {
			if err := r.RecordActivity(recCtx, a); err != nil {
				s.logger.Warn("record activity", "screen", a.Screen, "request_id", a.RequestID, "error", err)
			}
		}
	}
	return v
}

// parallel runs fns concurrently and waits for all of them. Each fn writes
// only its own result.
func parallel(fns ...func()) {
	var wg sync.WaitGroup
	wg.Add(len(fns))
	for _, fn := range fns {
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	wg.Wait()
}

// errorText renders an upstream failure the way every screen shows it.
func errorText(err error) string { return failure("Error", err) }

// failure is errorText with a screen specific prefix for status errors.
// Transport failures always read "Connection error: ...".
func failure(prefix string, err error) string {
	var apiErr *client.APIError
	var transportErr *client.TransportError
	switch {
	case errors.As(err, &apiErr):
		msg := prefix + ": " + apiErr.Status
		if apiErr.Detail != "" {
			msg += " (" + apiErr.Detail + ")"
		}
		return msg
	case errors.As(err, &transportErr):
		return "Connection error: " + transportErr.Err.Error()
	}
	return prefix + ": " + err.Error()
}
