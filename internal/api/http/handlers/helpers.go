package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/juanjsts/game-catalog-service/internal/auth"
	"github.com/juanjsts/game-catalog-service/internal/domain"
	"github.com/juanjsts/game-catalog-service/internal/repository"
)

const dateLayout = "2006-01-02"

func parsePage(c *fiber.Ctx) repository.PageRequest {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	size, _ := strconv.Atoi(c.Query("page_size", "20"))
	return repository.PageRequest{Page: page, PageSize: size}.Normalize()
}

func parseDate(raw string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// includeDeleted honors the include_deleted query flag for admins only.
func includeDeleted(c *fiber.Ctx) bool {
	if c.Query("include_deleted") != "true" {
		return false
	}
	principal, ok := auth.PrincipalFromContext(c)
	return ok && principal.HasRole(domain.RoleAdmin)
}

func pageResponse[T any, R any](page *repository.Page[T], mapItem func(*T) R) fiber.Map {
	items := make([]R, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, mapItem(&page.Items[i]))
	}
	return fiber.Map{
		"data":      items,
		"page":      page.Page,
		"page_size": page.PageSize,
		"total":     page.Total,
	}
}
