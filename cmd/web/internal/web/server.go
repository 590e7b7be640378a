package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"thirdcoast.systems/trendscout/cmd/web/ctxkeys"
	"thirdcoast.systems/trendscout/cmd/web/handlers/api/comment_api"
	"thirdcoast.systems/trendscout/cmd/web/handlers/api/insight_api"
	"thirdcoast.systems/trendscout/cmd/web/handlers/api/pipeline_api"
	"thirdcoast.systems/trendscout/cmd/web/handlers/api/search_api"
	"thirdcoast.systems/trendscout/cmd/web/handlers/api/trend_api"
	"thirdcoast.systems/trendscout/cmd/web/handlers/common"
	"thirdcoast.systems/trendscout/cmd/web/visitor"
	"thirdcoast.systems/trendscout/internal/pipeline"
)

// Services are the application services the routes dispatch to.
type Services struct {
	Search       search_api.Searcher
	Comments     comment_api.Collector
	Insights     insight_api.Insights
	Trends       trend_api.Reporter
	Pipelines    *pipeline.Hub
	Visitors     *visitor.Manager
	CommentLimit int
	// AllowedOrigins enables CORS for a separately hosted front end.
	AllowedOrigins []string
}

type Webserver struct {
	*echo.Echo
	services Services
}

func NewWebserver(ctx context.Context, services Services) (*Webserver, error) {
	e := echo.New()

	webserver := &Webserver{
		Echo:     e,
		services: services,
	}

	if len(services.AllowedOrigins) == 0 {
		slog.InfoContext(ctx, "CORS_ALLOWED_ORIGINS not set; API is same-origin only")
	}

	if err := webserver.setupMiddleware(); err != nil {
		return nil, err
	}

	if err := webserver.registerRoutes(); err != nil {
		return nil, err
	}

	return webserver, nil
}

func (s *Webserver) setupMiddleware() error {
	s.HideBanner = true
	s.HidePort = true
	s.HTTPErrorHandler = common.HTTPErrorHandler
	s.Use(middleware.BodyLimit("2M"))
	s.Use(middleware.Recover())
	s.Use(middleware.RequestID())
	s.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/api/pipeline/stream"
		},
	}))
	if len(s.services.AllowedOrigins) > 0 {
		s.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     s.services.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowCredentials: true,
		}))
	}
	s.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			switch c.Path() {
			case "/health/live", "/metrics", "/api/pipeline/stream":
				return true
			default:
				return false
			}
		},
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  false,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				fields = append(fields, "error", v.Error)
			}
			slog.Info("request", fields...)
			return nil
		},
	}))

	return nil
}

// withVisitor puts the visitor id in the request context, issuing a cookie
// on first contact.
func (s *Webserver) withVisitor(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := s.services.Visitors.Ensure(c.Response().Writer, c.Request())
		if err != nil {
			slog.Warn("failed to issue visitor cookie", "error", err)
			return common.ErrInternal("could not start a visitor session")
		}
		ctx := context.WithValue(c.Request().Context(), ctxkeys.VisitorID, id)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

func (s *Webserver) registerRoutes() error {
	s.GET("/health/live", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	s.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	apiGroup := s.Group("/api")
	apiGroup.GET("/search", search_api.HandleSearch(s.services.Search))
	apiGroup.GET("/comments", comment_api.HandleComments(s.services.Comments, s.services.CommentLimit))
	apiGroup.POST("/analyze", insight_api.HandleAnalyze(s.services.Insights))
	apiGroup.POST("/recommend", insight_api.HandleRecommend(s.services.Insights))
	apiGroup.POST("/script", insight_api.HandleScript(s.services.Insights))
	apiGroup.POST("/script/render", insight_api.HandleScriptRender())
	apiGroup.GET("/trends", trend_api.HandleTrends(s.services.Trends))

	pipelineGroup := apiGroup.Group("/pipeline", s.withVisitor)
	pipelineGroup.GET("", pipeline_api.HandleGet(s.services.Pipelines))
	pipelineGroup.GET("/stream", pipeline_api.HandleStream(s.services.Pipelines))
	pipelineGroup.POST("/start", pipeline_api.HandleStart(s.services.Pipelines))
	pipelineGroup.POST("/comments", pipeline_api.HandleComments(s.services.Pipelines))
	pipelineGroup.POST("/analyze", pipeline_api.HandleAnalyze(s.services.Pipelines))
	pipelineGroup.POST("/recommend", pipeline_api.HandleRecommend(s.services.Pipelines))
	pipelineGroup.POST("/script", pipeline_api.HandleScript(s.services.Pipelines))
	pipelineGroup.POST("/reset", pipeline_api.HandleReset(s.services.Pipelines))

	return nil
}
