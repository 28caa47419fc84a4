package controller

import (
	"strconv"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/pkg/serverutils"
	"ai-interviewer-be/internal/service"
	"ai-interviewer-be/pkg/cv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	SubmitAnswer(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type interviewController struct {
	interviewService service.IInterviewService
}

func NewInterviewController(interviewService service.IInterviewService) IInterviewController {
	return &interviewController{
		interviewService: interviewService,
	}
}

func (c *interviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview/v1")
	h.Post("", c.Create)
	h.Post(":id/answer", c.SubmitAnswer)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

// Create accepts either a JSON body or a multipart form. The multipart
// variant may carry a plain-text CV under the "cv" field, which is indexed
// in the background.
func (c *interviewController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateInterviewRequest
	cvContent := ""

	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		req.Topic = ctx.FormValue("topic")
		req.QuestionStyle = ctx.FormValue("question_style")
		if raw := ctx.FormValue("max_steps"); raw != "" {
			steps, err := strconv.Atoi(raw)
			if err != nil {
				return serverutils.NewHttpError(fiber.StatusBadRequest, "max_steps must be an integer")
			}
			req.MaxSteps = steps
		}

		if files := form.File["cv"]; len(files) > 0 {
			fileHeader := files[0]
			file, err := fileHeader.Open()
			if err != nil {
				return serverutils.NewHttpError(fiber.StatusBadRequest, "unable to read uploaded cv")
			}
			defer file.Close()

			content, err := cv.ExtractText(file, fileHeader.Filename)
			if err != nil {
				return serverutils.NewHttpError(fiber.StatusBadRequest, err.Error())
			}
			cvContent = content
		}
	} else {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interviewService.Create(ctx.Context(), &req, cvContent)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create interview session", res))
}

func (c *interviewController) SubmitAnswer(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.interviewService.SubmitAnswer(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit answer", res))
}

func (c *interviewController) Show(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	res, err := c.interviewService.Show(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show interview session", res))
}

func (c *interviewController) Delete(ctx *fiber.Ctx) error {
	sessionId, err := parseSessionId(ctx)
	if err != nil {
		return err
	}

	if err := c.interviewService.Delete(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete interview session", nil))
}

func parseSessionId(ctx *fiber.Ctx) (uuid.UUID, error) {
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, serverutils.NewHttpError(fiber.StatusBadRequest, "invalid session id")
	}
	return sessionId, nil
}
