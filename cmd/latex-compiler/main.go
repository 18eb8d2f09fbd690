// Command latex-compiler is the LaTeX compilation sidecar. It accepts
// {"latex": "..."} on POST / and answers with the PDF as a base64 data URL.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resume-tailor/internal/domain"
	infra "resume-tailor/pkg/infrastructure"
)

type compileRequest struct {
	Latex string `json:"latex"`
}

func newApp(compiler *infra.Pdflatex, log *slog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{BodyLimit: 8 << 20, DisableStartupMessage: true})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type",
		AllowMethods: "POST, OPTIONS",
	}))

	app.Post("/", func(c *fiber.Ctx) error {
		var req compileRequest
		if err := c.BodyParser(&req); err != nil || req.Latex == "" {
			return c.Status(fiber.StatusBadRequest).JSON(infra.CompileResponse{Error: "body must be {\"latex\": \"...\"}"})
		}
		pdf, err := compiler.Compile(c.UserContext(), req.Latex)
		if err != nil {
			msg := err.Error()
			var ce *domain.CompileError
			if errors.As(err, &ce) {
				msg = ce.Log
			}
			log.Warn("compile failed", "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(infra.CompileResponse{Error: msg})
		}
		return c.JSON(infra.CompileResponse{Success: true, PDF: infra.EncodePDFDataURL(pdf)})
	})
	return app
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	app := newApp(infra.NewPdflatex(), log)
	log.Info("latex compiler listening", "port", port)
	if err := app.Listen(":" + port); err != nil {
		log.Error("listen", "error", err)
		os.Exit(1)
	}
}
