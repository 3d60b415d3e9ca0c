package handler

import (
	"errors"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"rpvscraper/internal/repository"
	"rpvscraper/internal/service"
)

const dateLayout = "2006-01-02"

// pagination reads limit and offset, leaving defaults to the service.
// On failure the 400 response is already written.
func pagination(c *fiber.Ctx) (limit, offset int, ok bool) {
	var err error
	if limit, err = strconv.Atoi(c.Query("limit", "0")); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		return 0, 0, false
	}
	if offset, err = strconv.Atoi(c.Query("offset", "0")); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		return 0, 0, false
	}
	return limit, offset, true
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		return 0, false
	}
	return id, true
}

// writeServiceError maps service sentinels to the error envelope.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "publication not found")
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrArchiveDisabled):
		return writeError(c, fiber.StatusNotImplemented, "ARCHIVE_DISABLED", "source archive is not configured")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ListPublications lists stored publications.
//
//	@Summary	List publications
//	@Tags		publicacoes
//	@Produce	json
//	@Param		processo	query		string	false	"case number, exact match"
//	@Param		data		query		string	false	"availability date (YYYY-MM-DD)"
//	@Param		status		query		string	false	"review status"
//	@Param		envolvido	query		string	false	"party, attorney or defendant substring"
//	@Param		limit		query		int		false	"page size"	default(10)
//	@Param		offset		query		int		false	"page offset"	default(0)
//	@Success	200			{object}	service.PublicationListResult
//	@Failure	400			{object}	errorPayload
//	@Router		/publicacoes [get]
func ListPublications(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.RecordFilter{
			CaseNumber: strings.TrimSpace(c.Query("processo")),
			Status:     strings.TrimSpace(c.Query("status")),
			Party:      strings.TrimSpace(c.Query("envolvido")),
		}
		if raw := c.Query("data"); raw != "" {
			d, err := time.Parse(dateLayout, raw)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "data must be YYYY-MM-DD")
			}
			filter.AvailabilityDate = &d
		}

		limit, offset, ok := pagination(c)
		if !ok {
			return nil
		}

		res, err := svc.List(c.UserContext(), filter, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// PublicationBoard returns one page of publications per review status.
//
//	@Summary	Publications grouped by status
//	@Tags		publicacoes
//	@Produce	json
//	@Param		limit	query		int	false	"page size per column"	default(30)
//	@Param		offset	query		int	false	"page offset"			default(0)
//	@Success	200		{object}	map[string]service.BoardColumn
//	@Router		/publicacoes/status [get]
func PublicationBoard(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pagination(c)
		if !ok {
			return nil
		}

		board, err := svc.Board(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(board)
	}
}

// GetPublication returns a single publication.
//
//	@Summary	Get publication
//	@Tags		publicacoes
//	@Produce	json
//	@Param		id	path		int	true	"publication id"
//	@Success	200	{object}	model.Record
//	@Failure	404	{object}	errorPayload
//	@Router		/publicacoes/{id} [get]
func GetPublication(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}
		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// PublicationSourceURL returns a presigned URL of the source gazette.
//
//	@Summary	Presigned source gazette URL
//	@Tags		publicacoes
//	@Produce	json
//	@Param		id	path		int	true	"publication id"
//	@Success	200	{object}	map[string]string
//	@Failure	404	{object}	errorPayload
//	@Failure	501	{object}	errorPayload
//	@Router		/publicacoes/{id}/source [get]
func PublicationSourceURL(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}
		u, err := svc.SourceURL(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": u})
	}
}

// PublicationPDF streams the archived source gazette.
//
//	@Summary	Download source gazette
//	@Tags		publicacoes
//	@Produce	application/pdf
//	@Param		id	path	int	true	"publication id"
//	@Success	200
//	@Failure	404	{object}	errorPayload
//	@Router		/publicacoes/{id}/pdf [get]
func PublicationPDF(svc service.PublicationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}
		rc, info, err := svc.Source(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `inline; filename="`+path.Base(info.Key)+`"`)
		size := -1
		if info.Size > 0 {
			size = int(info.Size)
		}
		// fasthttp closes rc once the body has been written.
		return c.SendStream(rc, size)
	}
}
