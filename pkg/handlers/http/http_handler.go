package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Events
	CreateEventHandler Handler
	ListEventsHandler  Handler
	DeleteEventsHandler Handler

	// Assessments
	AssessRiskHandler Handler

	// Version
	GetVersionHandler Handler
}
