package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gofiber/template/html/v2"
	"github.com/saeid-a/KickoffCoachWeb/internal/models"
	"github.com/saeid-a/KickoffCoachWeb/internal/services"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

const Layout = "layouts/main"

//go:embed templates
var templateFiles embed.FS

//go:embed content/about.md
var defaultAbout []byte

// Raw HTML in Markdown is escaped since WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// New builds the template engine over the embedded templates. In development the
// templates are re-parsed on every render.
func New(development bool) (*html.Engine, error) {
	root, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	engine := html.NewFileSystem(http.FS(root), ".html")
	engine.Reload(development)
	for name, fn := range Funcs() {
		engine.AddFunc(name, fn)
	}
	return engine, nil
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatTime": services.FormatTime,
		"stars":      Stars,
		"experience": func(level models.ExperienceLevel) string { return level.Label() },
		"hasID": func(ids []int64, id int64) bool {
			for _, candidate := range ids {
				if candidate == id {
					return true
				}
			}
			return false
		},
		"childIDs": func(b models.BookingSummary) []int64 { return b.ChildIDs() },
		"add":      func(a, b int) int { return a + b },
		"childRow": NewChildRow,
	}
}

// ChildRow feeds the shared child form fields.
type ChildRow struct {
	Child  models.Child
	Levels []models.ExperienceLevel
}

func NewChildRow(child models.Child, levels []models.ExperienceLevel) ChildRow {
	return ChildRow{Child: child, Levels: levels}
}

// Stars renders a 1..5 rating as filled and empty stars.
func Stars(rating int) string {
	if rating < 0 {
		rating = 0
	}
	if rating > models.MaxRating {
		rating = models.MaxRating
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", models.MaxRating-rating)
}

func RenderMarkdown(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// DefaultAbout is the About page shipped with the binary.
func DefaultAbout() []byte {
	return defaultAbout
}
