package handler

import (
	"jobni/internal/delivery/http/dto"
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/pkg/response"
	"jobni/internal/usecase"
	ucjob "jobni/internal/usecase/job"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobUsecase
}

func NewJobsHandler(uc usecase.JobUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

// RegisterRoutes keeps browsing public and guards writes with auth.
func (h *JobsHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/jobs", h.HandleListJobs)
	r.Get("/jobs/:id", h.HandleGetJob)
	r.Post("/jobs", auth, h.HandleCreateJob)
	r.Put("/jobs/:id", auth, h.HandleUpdateJob)
	r.Delete("/jobs/:id", auth, h.HandleCloseJob)
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	limit, err := parseQueryIntStrict(c, "limit", 0)
	if err != nil {
		return err
	}
	offset, err := parseQueryIntStrict(c, "offset", 0)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), ucjob.ListInput{
		Category:     c.Query("category"),
		DurationType: c.Query("duration_type"),
		Location:     c.Query("location"),
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewJobResponses(items))
}

func (h *JobsHandler) HandleGetJob(c fiber.Ctx) error {
	id, err := uuidParam(c, "id", "job")
	if err != nil {
		return err
	}
	j, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	var req dto.CreateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Create(c.Context(), actor, ucjob.Fields{
		Title:         req.Title,
		Description:   req.Description,
		CompanyName:   req.CompanyName,
		Location:      req.Location,
		Category:      req.Category,
		DurationType:  req.DurationType,
		DurationValue: req.DurationValue,
		Salary:        req.Salary,
		Requirements:  req.Requirements,
		Deadline:      req.Deadline,
	})
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleUpdateJob(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "job")
	if err != nil {
		return err
	}
	var req dto.UpdateJobRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	j, err := h.uc.Update(c.Context(), actor, id, ucjob.UpdateInput{
		Title:         req.Title,
		Description:   req.Description,
		CompanyName:   req.CompanyName,
		Location:      req.Location,
		Category:      req.Category,
		DurationType:  req.DurationType,
		DurationValue: req.DurationValue,
		Salary:        req.Salary,
		Requirements:  req.Requirements,
		Status:        req.Status,
		Deadline:      req.Deadline,
	})
	if err != nil {
		return err
	}
	return response.JSON(c, fiber.StatusOK, dto.NewJobResponse(j))
}

func (h *JobsHandler) HandleCloseJob(c fiber.Ctx) error {
	actor, err := middleware.ActorFrom(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id", "job")
	if err != nil {
		return err
	}
	if _, err := h.uc.Close(c.Context(), actor, id); err != nil {
		return err
	}
	return response.Message(c, fiber.StatusOK, "Job deleted successfully")
}
