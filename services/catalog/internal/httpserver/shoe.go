package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/httperr"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	"github.com/Skotchmaster/shoe_shop/pkg/util"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/catalog/internal/transport"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func fail(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, httperr.Message(err, service.ErrValidation))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, httperr.Message(err, service.ErrNotFound))
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func parseID(c echo.Context, l *slog.Logger, event, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		l.Warn(event, "status", 400, "reason", param+" is not a uuid", "error", err)
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, param+" is not a uuid")
	}
	return id, nil
}

func (h *CatalogHTTP) GetShoes(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_shoes")

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	filter := transport.ShoeFilter{Wearer: c.QueryParam("wearer"), Brand: c.QueryParam("brand")}
	total, items, err := h.Svc.ListShoes(ctx, filter, offset, limit)
	if err != nil {
		return fail(l, "get_shoes_error", err)
	}

	return c.JSON(http.StatusOK, transport.ListResponse{
		Data: items,
		Meta: util.NewMeta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) BestSellers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.best_sellers")

	limit := util.ParseIntDefault(c.QueryParam("limit"), service.DefaultBestSellers)
	items, err := h.Svc.BestSellers(ctx, limit)
	if err != nil {
		return fail(l, "best_sellers_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *CatalogHTTP) GetShoe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_shoe")

	id, err := parseID(c, l, "get_shoe_error", "id")
	if err != nil {
		return err
	}

	shoe, err := h.Svc.GetShoe(ctx, id)
	if err != nil {
		return fail(l, "get_shoe_error", err)
	}
	return c.JSON(http.StatusOK, shoe)
}

func (h *CatalogHTTP) CreateShoe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_shoe")

	var req transport.CreateShoeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_shoe_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("create_shoe_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shoe, err := h.Svc.CreateShoe(ctx, req)
	if err != nil {
		return fail(l, "create_shoe_error", err)
	}

	l.Info("create_shoe_success", "shoe_id", shoe.ID)
	return c.JSON(http.StatusCreated, shoe)
}

func (h *CatalogHTTP) PatchShoe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.patch_shoe")

	id, err := parseID(c, l, "patch_shoe_error", "id")
	if err != nil {
		return err
	}

	var req transport.PatchShoeRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_shoe_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("patch_shoe_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shoe, err := h.Svc.PatchShoe(ctx, id, req)
	if err != nil {
		return fail(l, "patch_shoe_error", err)
	}

	l.Info("patch_shoe_success", "shoe_id", id)
	return c.JSON(http.StatusOK, shoe)
}

func (h *CatalogHTTP) SetStock(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.set_stock")

	shoeID, err := parseID(c, l, "set_stock_error", "id")
	if err != nil {
		return err
	}
	variantID, err := parseID(c, l, "set_stock_error", "variantId")
	if err != nil {
		return err
	}
	sizeID, err := parseID(c, l, "set_stock_error", "sizeId")
	if err != nil {
		return err
	}

	var req transport.StockRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_stock_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("set_stock_error", "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	shoe, err := h.Svc.SetStock(ctx, shoeID, variantID, sizeID, *req.Stock)
	if err != nil {
		return fail(l, "set_stock_error", err)
	}

	l.Info("set_stock_success", "shoe_id", shoeID, "size_id", sizeID, "stock", *req.Stock)
	return c.JSON(http.StatusOK, shoe)
}

func (h *CatalogHTTP) DeleteShoe(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_shoe")

	id, err := parseID(c, l, "delete_shoe_error", "id")
	if err != nil {
		return err
	}

	if err := h.Svc.DeleteShoe(ctx, id); err != nil {
		return fail(l, "delete_shoe_error", err)
	}

	l.Info("delete_shoe_success", "shoe_id", id)
	return c.NoContent(http.StatusNoContent)
}
