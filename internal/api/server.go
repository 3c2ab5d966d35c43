package api

import (
	"errors"

	"github.com/Nopass0/repitnew_backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server — HTTP-сервер приложения
type Server struct {
	app    *fiber.App
	addr   string
	logger *zap.Logger
}

func NewServer(ctrl *Controller, addr string, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "repitnew backend",
		ErrorHandler: newErrorHandler(logger),
	})

	app.Post("/reconcile", ctrl.Reconcile)

	app.Post("/subjects", ctrl.CreateSubject)
	app.Get("/subjects", ctrl.GetSubjects)
	app.Put("/subjects/:id", ctrl.UpdateSubject)
	app.Delete("/subjects/:id", ctrl.DeleteSubject)

	app.Post("/prepayments", ctrl.CreatePrepayment)
	app.Get("/prepayments", ctrl.GetPrepayments)
	app.Delete("/prepayments/:id", ctrl.DeletePrepayment)

	app.Get("/lessons", ctrl.GetLessons)
	app.Post("/lessons", ctrl.CreateLesson)
	app.Post("/lessons/:id/cancel", ctrl.CancelLesson)
	app.Post("/lessons/:id/restore", ctrl.RestoreLesson)

	app.Get("/stats", ctrl.GetStats)
	app.Get("/stats/subject/:name", ctrl.GetSubjectStats)
	app.Get("/history", ctrl.GetHistory)
	app.Get("/calendar/week.png", ctrl.GetWeekImage)

	return &Server{
		app:    app,
		addr:   addr,
		logger: logger,
	}
}

// Start запускает сервер, блокируется до остановки
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.addr))
	return s.app.Listen(s.addr)
}

// Shutdown корректно останавливает сервер
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// newErrorHandler переводит ошибки в HTTP-ответы:
// ошибки валидации — 400, остальное — 500
func newErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			code = fiberErr.Code
		} else if service.IsValidationError(err) {
			code = fiber.StatusBadRequest
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}
}
