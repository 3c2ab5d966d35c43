package api

import (
	"context"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/app"
	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/Nopass0/repitnew_backend/internal/render"
	"github.com/Nopass0/repitnew_backend/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Controller — обработчики HTTP-запросов
type Controller struct {
	scheduleService *service.ScheduleService
	generator       *service.Generator
	renderer        *render.WeekRenderer
	debouncer       *app.Debouncer
	validate        *validator.Validate
	logger          *zap.Logger
}

func NewController(
	scheduleService *service.ScheduleService,
	generator *service.Generator,
	renderer *render.WeekRenderer,
	debouncer *app.Debouncer,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		scheduleService: scheduleService,
		generator:       generator,
		renderer:        renderer,
		debouncer:       debouncer,
		validate:        NewValidator(),
		logger:          logger,
	}
}

// scheduleRecalc планирует отложенную сверку после правки данных.
// Быстрая серия правок схлопывается в один пересчёт. Контекст запроса
// к моменту срабатывания уже закрыт, поэтому берётся фоновый
func (ctrl *Controller) scheduleRecalc() {
	ctrl.debouncer.Schedule(func() {
		if _, _, err := ctrl.scheduleService.ReconcileAll(context.Background()); err != nil {
			ctrl.logger.Error("Deferred reconciliation failed", zap.Error(err))
		}
	})
}

// Reconcile — чистый пересчёт полного снимка без обращения к базе.
// POST /reconcile
func (ctrl *Controller) Reconcile(c *fiber.Ctx) error {
	var req ReconcileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	if err := service.ValidateSubjects(req.Subjects); err != nil {
		return err
	}
	if err := service.ValidatePrepayments(req.Prepayments); err != nil {
		return err
	}
	if err := service.ValidateLessons(req.ExistingLessons); err != nil {
		return err
	}

	lessons, _ := ctrl.generator.Generate(req.Subjects, req.ExistingLessons, req.Now)
	service.RefreshPassage(lessons, req.Now)
	reconciled := service.Reconcile(lessons, req.Prepayments)
	stats := service.ComputeStats(reconciled)

	return c.JSON(ReconcileResponse{Lessons: reconciled, Stats: stats})
}

// CreateSubject — POST /subjects
func (ctrl *Controller) CreateSubject(c *fiber.Ctx) error {
	var req CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	subject := req.ToModel()
	if err := ctrl.scheduleService.CreateSubject(c.Context(), &subject); err != nil {
		return err
	}

	if err := ctrl.scheduleService.RefreshLessons(c.Context(), time.Now()); err != nil {
		return err
	}
	ctrl.scheduleRecalc()

	return c.Status(fiber.StatusCreated).JSON(subject)
}

// GetSubjects — GET /subjects
func (ctrl *Controller) GetSubjects(c *fiber.Ctx) error {
	subjects, err := ctrl.scheduleService.GetSubjects(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(subjects)
}

// UpdateSubject — PUT /subjects/:id
func (ctrl *Controller) UpdateSubject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid subject id")
	}

	var req CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	subject := req.ToModel()
	subject.ID = id
	if err := ctrl.scheduleService.UpdateSubject(c.Context(), &subject); err != nil {
		return err
	}

	if err := ctrl.scheduleService.RefreshLessons(c.Context(), time.Now()); err != nil {
		return err
	}
	ctrl.scheduleRecalc()

	return c.JSON(subject)
}

// DeleteSubject — DELETE /subjects/:id
func (ctrl *Controller) DeleteSubject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid subject id")
	}

	if err := ctrl.scheduleService.DeleteSubject(c.Context(), id); err != nil {
		return err
	}
	ctrl.scheduleRecalc()

	return c.SendStatus(fiber.StatusNoContent)
}

// CreatePrepayment — POST /prepayments
func (ctrl *Controller) CreatePrepayment(c *fiber.Ctx) error {
	var req CreatePrepaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	prepayment := model.Prepayment{Amount: req.Amount, DateTime: req.DateTime}
	if err := ctrl.scheduleService.AddPrepayment(c.Context(), &prepayment); err != nil {
		return err
	}
	ctrl.scheduleRecalc()

	return c.Status(fiber.StatusCreated).JSON(prepayment)
}

// GetPrepayments — GET /prepayments
func (ctrl *Controller) GetPrepayments(c *fiber.Ctx) error {
	prepayments, err := ctrl.scheduleService.GetPrepayments(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(prepayments)
}

// DeletePrepayment — DELETE /prepayments/:id
func (ctrl *Controller) DeletePrepayment(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid prepayment id")
	}

	if err := ctrl.scheduleService.DeletePrepayment(c.Context(), id); err != nil {
		return err
	}
	ctrl.scheduleRecalc()

	return c.SendStatus(fiber.StatusNoContent)
}

// GetLessons — GET /lessons
func (ctrl *Controller) GetLessons(c *fiber.Ctx) error {
	lessons, err := ctrl.scheduleService.GetLessons(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(lessons)
}

// CreateLesson — POST /lessons, ручное добавление урока
func (ctrl *Controller) CreateLesson(c *fiber.Ctx) error {
	var req CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctrl.validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	lesson := model.Lesson{
		SubjectName:   req.SubjectName,
		DateTime:      req.DateTime,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		PaymentAmount: req.PaymentAmount,
		EventType:     model.LessonUnpaid,
	}
	if err := ctrl.scheduleService.AddManualLesson(c.Context(), &lesson); err != nil {
		return err
	}
	ctrl.scheduleRecalc()

	return c.Status(fiber.StatusCreated).JSON(lesson)
}

// CancelLesson — POST /lessons/:id/cancel
func (ctrl *Controller) CancelLesson(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lesson id")
	}

	if err := ctrl.scheduleService.CancelLesson(c.Context(), id); err != nil {
		return err
	}
	ctrl.scheduleRecalc()

	return c.SendStatus(fiber.StatusNoContent)
}

// RestoreLesson — POST /lessons/:id/restore
func (ctrl *Controller) RestoreLesson(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid lesson id")
	}

	if err := ctrl.scheduleService.RestoreLesson(c.Context(), id); err != nil {
		return err
	}
	ctrl.scheduleRecalc()

	return c.SendStatus(fiber.StatusNoContent)
}

// GetStats — GET /stats
func (ctrl *Controller) GetStats(c *fiber.Ctx) error {
	stats, err := ctrl.scheduleService.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetSubjectStats — GET /stats/subject/:name
func (ctrl *Controller) GetSubjectStats(c *fiber.Ctx) error {
	name := c.Params("name")
	if name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "subject name is required")
	}

	stats, err := ctrl.scheduleService.StatsForSubject(c.Context(), name)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetHistory — GET /history
func (ctrl *Controller) GetHistory(c *fiber.Ctx) error {
	history, err := ctrl.scheduleService.History(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(history)
}

// GetWeekImage — GET /calendar/week.png?date=2006-01-02
func (ctrl *Controller) GetWeekImage(c *fiber.Ctx) error {
	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		date = parsed
	}

	lessons, err := ctrl.scheduleService.GetLessons(c.Context())
	if err != nil {
		return err
	}

	png, err := ctrl.renderer.RenderWeek(date, lessons)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render calendar")
	}

	c.Type("png")
	return c.Send(png)
}
