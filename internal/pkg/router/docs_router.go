package router

import (
	"os"
	"path/filepath"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
)

const openAPIFile = "public/docs/v1/openapi.yml"

type DocsRouter struct {
	basePath string
}

func NewDocsRouter(basePath string) *DocsRouter {
	return &DocsRouter{basePath: basePath}
}

func (d DocsRouter) InstallRouter(app *fiber.App) {
	file := filepath.Join(d.basePath, openAPIFile)
	if _, err := os.Stat(file); err != nil {
		fiberlog.Warnf("API docs disabled: %v", err)
		return
	}

	// SWAGGER / OPENAPI
	app.Use(swagger.New(swagger.Config{
		BasePath: "/docs/api/",
		FilePath: file,
		Path:     "v1",
		Title:    "VendaBot API",
	}))
}

// FindBasePath returns the first candidate directory that contains the
// public/ folder, or "" when none does.
func FindBasePath(candidates ...string) string {
	if len(candidates) == 0 {
		candidates = []string{"./", "../../", "../../../"}
	}
	for _, path := range candidates {
		if _, err := os.Stat(filepath.Join(path, "public")); !os.IsNotExist(err) {
			return path
		}
	}
	return ""
}
