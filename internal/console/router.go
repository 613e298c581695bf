// Package console serves the screens as a JSON API with a live activity
// feed, for browsers and scripts that cannot use the CLI.
package console

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/your-org/frfront/internal/auth"
	"github.com/your-org/frfront/internal/console/handlers"
	"github.com/your-org/frfront/internal/console/ws"
	"github.com/your-org/frfront/internal/screens"
)

type RouterConfig struct {
	APIKey  string
	Screens *screens.Service
	// History is nil when no database is configured.
	History handlers.ActivityLister
	// Archive is nil when no object store is configured.
	Archive handlers.ArchiveReader
	Hub     *ws.Hub
	// Checks feed /readyz, keyed by dependency name.
	Checks map[string]handlers.Check
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, auth.HeaderName, "X-Request-ID")
	corsCfg.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	r.Use(cors.New(corsCfg))

	// System endpoints (no auth)
	systemH := handlers.NewSystemHandler(cfg.Checks)
	r.GET("/healthz", systemH.Healthz)
	r.GET("/readyz", systemH.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1")
	v1.Use(auth.APIKeyMiddleware(cfg.APIKey))

	v1.GET("/ws", cfg.Hub.HandleWS)

	historyH := handlers.NewHistoryHandler(cfg.History)
	v1.GET("/history", historyH.List)

	archiveH := handlers.NewArchiveHandler(cfg.Archive)
	v1.GET("/archive/*key", archiveH.Get)

	screenH := handlers.NewScreenHandler(cfg.Screens)
	sg := v1.Group("/screens")
	sg.GET("", screenH.Catalog)
	sg.GET("/"+screens.ScreenHome, screenH.View((*screens.Service).Home))
	sg.GET("/"+screens.ScreenPersons, screenH.View((*screens.Service).Persons))
	sg.GET("/"+screens.ScreenStats, screenH.View((*screens.Service).Stats))
	sg.GET("/"+screens.ScreenAdmin, screenH.View((*screens.Service).Admin))
	sg.GET("/"+screens.ScreenHealth, screenH.View((*screens.Service).Health))
	sg.GET("/"+screens.ScreenSystemInfo, screenH.View((*screens.Service).SystemInfo))
	sg.GET("/"+screens.ScreenAdvancedConfig, screenH.View((*screens.Service).AdvancedConfig))
	sg.GET("/"+screens.ScreenData, screenH.View((*screens.Service).Data))
	sg.GET("/"+screens.ScreenSearch, screenH.Search)

	sg.POST("/"+screens.ScreenRegister, screenH.Register)
	sg.POST("/persons/:id/features", screenH.UpdateFeatures)
	sg.POST("/"+screens.ScreenRecognition, screenH.Recognize)
	sg.POST("/"+screens.ScreenIdentification, screenH.Identify)
	sg.POST("/admin/cleanup", screenH.Cleanup)
	sg.POST("/tools/:tool", screenH.RunTool)

	dg := sg.Group("/data")
	dg.POST("/export", screenH.Export)
	dg.POST("/export-person", screenH.ExportPerson)
	dg.POST("/backup", screenH.Backup)
	dg.POST("/import", screenH.Import)
	dg.GET("/download/:filename", screenH.Download)

	return r
}
