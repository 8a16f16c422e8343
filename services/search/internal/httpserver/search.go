package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/util"
)

type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (int64, []models.Shoe, error)
}

type SearchHTTP struct {
	Index Searcher
}

type Response struct {
	Data []models.Shoe `json:"data"`
	Meta util.Meta     `json:"meta"`
}

func (h *SearchHTTP) Search(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "search.search")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusOK, Response{Data: []models.Shoe{}, Meta: util.NewMeta(page, offset, limit, 0)})
	}

	total, shoes, err := h.Index.Search(ctx, q, offset, limit)
	if err != nil {
		l.Error("search_error", "status", 500, "query", q, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, Response{Data: shoes, Meta: util.NewMeta(page, offset, limit, total)})
}
