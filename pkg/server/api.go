package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/promptgauge/promptgauge/pkg/config"
	handlers "github.com/promptgauge/promptgauge/pkg/handlers/http"
)

type (
	ApiServerDI struct {
		HandlerTransport handlers.HandlerTransport
		Config           *config.Config
		Logger           *logrus.Logger
	}
	ApiServer struct {
		*BaseServer
		handlerTransport handlers.HandlerTransport
	}
)

func NewApiServer(di ApiServerDI) *ApiServer {
	return &ApiServer{
		BaseServer:       NewBaseServer(di.Config, di.Logger),
		handlerTransport: di.HandlerTransport,
	}
}

func (s *ApiServer) Run() error {
	s.setupRoutes()
	s.setupHealthCheck()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting api server")
	return s.router.Listen(addr)
}

func (s *ApiServer) setupRoutes() {
	v1 := s.router.Group("/api/v1")
	{
		events := v1.Group("/events")
		{
			events.Post("", s.handlerTransport.CreateEventHandler.Handle)
			events.Get("", s.handlerTransport.ListEventsHandler.Handle)
			events.Delete("", s.handlerTransport.DeleteEventsHandler.Handle)
		}

		assessments := v1.Group("/assessments")
		{
			assessments.Post("", s.handlerTransport.AssessRiskHandler.Handle)
		}

		v1.Get("/version", s.handlerTransport.GetVersionHandler.Handle)
	}
}

func (s *ApiServer) Shutdown() error {
	return s.router.Shutdown()
}
