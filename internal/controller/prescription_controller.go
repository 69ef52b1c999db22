package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-medassist-be/internal/entity"
	"ai-medassist-be/internal/pkg/serverutils"
	"ai-medassist-be/internal/service"
)

type IPrescriptionController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type prescriptionController struct {
	prescriptionService service.IPrescriptionService
}

func NewPrescriptionController(prescriptionService service.IPrescriptionService) IPrescriptionController {
	return &prescriptionController{
		prescriptionService: prescriptionService,
	}
}

func (c *prescriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/prescription/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("upload", c.Upload)
	h.Get("", c.List)
	h.Get(":id", c.Show)
}

func (c *prescriptionController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		return serverutils.InvalidInput("image file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverutils.InvalidInput("could not open uploaded file")
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return serverutils.InvalidInput("could not read uploaded file")
	}

	doc := entity.RawDocument{
		Content:  content,
		MimeType: fileHeader.Header.Get("Content-Type"),
	}

	res, err := c.prescriptionService.Upload(ctx.Context(), userId, doc)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process prescription", res))
}

func (c *prescriptionController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return serverutils.InvalidInput("invalid prescription id")
	}

	res, err := c.prescriptionService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get prescription", res))
}

func (c *prescriptionController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.prescriptionService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get prescriptions", res))
}
