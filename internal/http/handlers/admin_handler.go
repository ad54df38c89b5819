package handlers

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"gearrent/internal/domain"
	applog "gearrent/internal/log"
	"gearrent/internal/services"
	"gearrent/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
	Orders  *services.OrderService
}

// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	st, err := h.Catalog.Dashboard(c.UserContext())
	if err != nil {
		applog.Error(c, "admin.dashboard.fail", err, nil)
		return err
	}
	return c.JSON(st)
}

// GET /api/v1/admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.Latest(c.UserContext(), 100)
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		return err
	}
	if ords == nil {
		ords = []domain.Order{}
	}
	return c.JSON(fiber.Map{"orders": ords})
}

// GET /api/v1/admin/products
func (h *AdminHandler) Products(c *fiber.Ctx) error {
	ps := h.Catalog.Products(c.UserContext())
	return c.JSON(fiber.Map{"products": ps, "count": len(ps)})
}

// checkProduct returns the offending field, or "" when p is acceptable.
func checkProduct(p *domain.Product) string {
	var ok bool
	if p.Name, ok = validate.Name(p.Name, 80); !ok {
		return "name"
	}
	if p.Category, ok = validate.Name(p.Category, 40); !ok {
		return "category"
	}
	if p.Description = strings.TrimSpace(p.Description); utf8.RuneCountInString(p.Description) > 1000 {
		return "description"
	}
	if p.Image, ok = validate.ImageURL(p.Image); !ok {
		return "image"
	}
	t := p.Prices
	if t.Days2 < 0 || t.Days3 < 0 || t.Days4 < 0 || t.Days5 < 0 || t.Days6 < 0 || t.Days7 < 0 {
		return "prices"
	}
	switch s := p.Stock.(type) {
	case domain.FlatStock:
		if s < 0 {
			return "stock"
		}
	case domain.SizeStock:
		for label, n := range s {
			if _, ok := validate.Label(label); !ok || label == "" || n < 0 {
				return "sizes"
			}
		}
	case domain.VariantStock:
		for _, v := range s {
			_, okS := validate.Label(v.Size)
			_, okC := validate.Label(v.Color)
			if !okS || !okC || v.Size == "" || v.Color == "" || v.Stock < 0 {
				return "variants"
			}
		}
	}
	for color, img := range p.ColorImages {
		if _, ok := validate.ImageURL(img); !ok || color == "" {
			return "colorImages"
		}
	}
	for _, it := range p.PackageItems {
		if _, ok := validate.ID(it.ProductID); !ok || it.Quantity < 1 {
			return "packageItems"
		}
	}
	return ""
}

// POST /api/v1/admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	var p domain.Product
	if !bindJSON(c, &p) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	if p.ID != "" {
		if _, ok := validate.ID(p.ID); !ok {
			return jsonError(c, fiber.StatusBadRequest, "invalid id")
		}
	}
	if field := checkProduct(&p); field != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		return jsonError(c, fiber.StatusBadRequest, "invalid "+field)
	}
	out, err := h.Catalog.CreateProduct(c.UserContext(), p)
	if errors.Is(err, services.ErrInvalidPackage) {
		applog.Security(c, "validation.fail", map[string]any{"field": "packageItems"})
		return jsonError(c, fiber.StatusBadRequest, "package items must use plain stock")
	}
	if err != nil {
		applog.Error(c, "admin.product.create.fail", err, map[string]any{"name": p.Name})
		return err
	}
	applog.Audit(c, "admin.product.create", map[string]any{"product_id": out.ID, "stock": out.TotalStock()})
	return c.Status(fiber.StatusCreated).JSON(out)
}

// PUT /api/v1/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	var p domain.Product
	if !bindJSON(c, &p) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	p.ID = id
	if field := checkProduct(&p); field != "" {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		return jsonError(c, fiber.StatusBadRequest, "invalid "+field)
	}
	out, err := h.Catalog.UpdateProduct(c.UserContext(), p)
	if errors.Is(err, services.ErrInvalidPackage) {
		applog.Security(c, "validation.fail", map[string]any{"field": "packageItems"})
		return jsonError(c, fiber.StatusBadRequest, "package items must use plain stock")
	}
	if errors.Is(err, services.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	if err != nil {
		applog.Error(c, "admin.product.update.fail", err, map[string]any{"product_id": id})
		return err
	}
	applog.Audit(c, "admin.product.update", map[string]any{"product_id": id, "stock": out.TotalStock()})
	return c.JSON(out)
}

// DELETE /api/v1/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	err := h.Catalog.DeleteProduct(c.UserContext(), id)
	if errors.Is(err, services.ErrProductNotFound) {
		return jsonError(c, fiber.StatusNotFound, "product not found")
	}
	if err != nil {
		applog.Error(c, "admin.product.delete.fail", err, map[string]any{"product_id": id})
		return err
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/admin/categories
func (h *AdminHandler) Categories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": h.Catalog.Categories(c.UserContext())})
}

type categoryReq struct {
	Name string `json:"name"`
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToUpper(err.Error()), "UNIQUE")
}

// POST /api/v1/admin/categories
func (h *AdminHandler) CreateCategory(c *fiber.Ctx) error {
	var req categoryReq
	if !bindJSON(c, &req) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	name, ok := validate.Name(req.Name, 40)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return jsonError(c, fiber.StatusBadRequest, "invalid name")
	}
	cat, err := h.Catalog.CreateCategory(c.UserContext(), name)
	if isUniqueViolation(err) {
		return jsonError(c, fiber.StatusConflict, "category already exists")
	}
	if err != nil {
		applog.Error(c, "admin.category.create.fail", err, map[string]any{"name": name})
		return err
	}
	applog.Audit(c, "admin.category.create", map[string]any{"category_id": cat.ID, "name": name})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

// PUT /api/v1/admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "category not found")
	}
	var req categoryReq
	if !bindJSON(c, &req) {
		return jsonError(c, fiber.StatusBadRequest, "invalid request")
	}
	name, ok := validate.Name(req.Name, 40)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "name"})
		return jsonError(c, fiber.StatusBadRequest, "invalid name")
	}
	cat, err := h.Catalog.UpdateCategory(c.UserContext(), id, name)
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		return jsonError(c, fiber.StatusNotFound, "category not found")
	case isUniqueViolation(err):
		return jsonError(c, fiber.StatusConflict, "category already exists")
	case err != nil:
		applog.Error(c, "admin.category.update.fail", err, map[string]any{"category_id": id})
		return err
	}
	applog.Audit(c, "admin.category.update", map[string]any{"category_id": id, "name": name})
	return c.JSON(cat)
}

// DELETE /api/v1/admin/categories/:id leaves products that still name the
// category untouched.
func (h *AdminHandler) DeleteCategory(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonError(c, fiber.StatusNotFound, "category not found")
	}
	err := h.Catalog.DeleteCategory(c.UserContext(), id)
	if errors.Is(err, services.ErrCategoryNotFound) {
		return jsonError(c, fiber.StatusNotFound, "category not found")
	}
	if err != nil {
		applog.Error(c, "admin.category.delete.fail", err, map[string]any{"category_id": id})
		return err
	}
	applog.Audit(c, "admin.category.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
