package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/milk9111/marblebounce/codec"
	"github.com/milk9111/marblebounce/store"
)

// Options configures the HTTP app.
type Options struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// RequestTimeout bounds the catalog work of a single request. Zero means no limit.
	RequestTimeout time.Duration
	// Quiet disables request logging.
	Quiet bool
}

// ============================================================
// App
// ============================================================

// New builds the level catalog API.
func New(catalog *store.Catalog, opts Options) *fiber.App {
	if opts.AppName == "" {
		opts.AppName = "Level Server"
	}
	app := fiber.New(fiber.Config{
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		AppName:      opts.AppName,
	})

	app.Use(recover.New())
	if !opts.Quiet {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}

	if opts.RequestTimeout > 0 {
		app.Use(deadline(opts.RequestTimeout))
	}

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	h := &handler{catalog: catalog}
	api := app.Group("/api/v1")
	api.Get("/users/:owner/levels", h.list)
	api.Get("/users/:owner/levels/:name", h.get)
	api.Put("/users/:owner/levels/:name", h.upload)
	api.Delete("/users/:owner/levels/:name", h.remove)
	api.Post("/users/:owner/levels/:name/share", h.share)
	api.Delete("/users/:owner/levels/:name/share", h.unshare)
	api.Get("/shared/:id", h.shared)

	return app
}

// ============================================================
// Handlers
// ============================================================

// deadline attaches a timeout to the request context handed to the catalog.
func deadline(d time.Duration) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), d)
		defer cancel()
		c.SetContext(ctx)
		return c.Next()
	}
}

type handler struct {
	catalog *store.Catalog
}

func (h *handler) list(c fiber.Ctx) error {
	entries, err := h.catalog.List(c.Context(), c.Params("owner"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(entries)
}

func (h *handler) get(c fiber.Ctx) error {
	e, err := h.catalog.Get(c.Context(), c.Params("owner"), c.Params("name"))
	if err != nil {
		return fail(c, err)
	}
	return sendDocument(c, e)
}

func (h *handler) upload(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}
	e, err := h.catalog.Upload(c.Context(), c.Params("owner"), c.Params("name"), string(c.Body()))
	if err != nil {
		return fail(c, err)
	}
	e.Document = ""
	return c.JSON(e)
}

func (h *handler) remove(c fiber.Ctx) error {
	if err := h.catalog.Delete(c.Context(), c.Params("owner"), c.Params("name")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *handler) share(c fiber.Ctx) error {
	id, err := h.catalog.Share(c.Context(), c.Params("owner"), c.Params("name"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"id": id})
}

func (h *handler) unshare(c fiber.Ctx) error {
	if err := h.catalog.Unshare(c.Context(), c.Params("owner"), c.Params("name")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *handler) shared(c fiber.Ctx) error {
	e, err := h.catalog.GetShared(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return sendDocument(c, e)
}

func sendDocument(c fiber.Ctx, e store.Entry) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set("X-Level-Revision", e.Revision)
	return c.SendString(e.Document)
}

// fail maps catalog errors onto HTTP statuses.
func fail(c fiber.Ctx, err error) error {
	var malformed *codec.MalformedLevelError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.As(err, &malformed):
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": malformed.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"error": "request cancelled"})
	default:
		log.Printf("server: %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
