package api

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"blog-service/internal/service"
)

type PostHandler struct {
	postService service.PostService
	validate    *validator.Validate
}

func NewPostHandler(postService service.PostService) *PostHandler {
	return &PostHandler{
		postService: postService,
		validate:    validator.New(),
	}
}

// Create and Edit take multipart forms: text fields next to the thumbnail
// file, matching what the web client submits.
type PostFormRequest struct {
	Title       string `form:"title" validate:"required"`
	Category    string `form:"category" validate:"required"`
	Description string `form:"description" validate:"required"`
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	callerID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	var request PostFormRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse form"})
	}

	if err := h.validate.Struct(&request); err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Fill in all fields and choose a thumbnail", "details": err.Error()})
	}

	thumbnail, err := attachmentFromForm(c, "thumbnail")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "Fill in all fields and choose a thumbnail"})
	}

	post, err := h.postService.Create(c.Context(), callerID, service.CreatePostInput{
		Title:       request.Title,
		Category:    request.Category,
		Description: request.Description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) List(c *fiber.Ctx) error {
	posts, err := h.postService.List(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID format"})
	}

	post, err := h.postService.Get(c.Context(), postID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) ListByCategory(c *fiber.Ctx) error {
	posts, err := h.postService.ListByCategory(c.Context(), c.Params("category"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) ListByCreator(c *fiber.Ctx) error {
	creatorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID format"})
	}

	posts, err := h.postService.ListByCreator(c.Context(), creatorID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) Edit(c *fiber.Ctx) error {
	callerID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID format"})
	}

	var request PostFormRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse form"})
	}

	// The thumbnail is optional on edit; text-only updates are allowed.
	var thumbnail *service.Attachment
	if fileHeader, err := c.FormFile("thumbnail"); err == nil {
		thumbnail, err = readAttachment(fileHeader)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot read thumbnail"})
		}
	}

	post, err := h.postService.Edit(c.Context(), callerID, postID, service.EditPostInput{
		Title:       request.Title,
		Category:    request.Category,
		Description: request.Description,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	callerID, err := GetUserIDFromClaims(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid post ID format"})
	}

	if err := h.postService.Delete(c.Context(), callerID, postID); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Post " + postID.String() + " is deleted."})
}
