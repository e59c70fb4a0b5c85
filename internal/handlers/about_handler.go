package handlers

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
)

type AboutHandler struct {
	content template.HTML
}

// NewAboutHandler takes the About page already rendered from Markdown.
func NewAboutHandler(content template.HTML) *AboutHandler {
	return &AboutHandler{content: content}
}

func (h *AboutHandler) Show(c *fiber.Ctx) error {
	return render(c, "about", "About", fiber.Map{"Content": h.content})
}
