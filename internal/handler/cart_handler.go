package handler

import (
	"net/http"
	"strconv"

	"app/internal/cart"
	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	cart *cart.Cart
	uc   *usecase.ProductUsecase
}

// DI
func NewCartHandler(c *cart.Cart, uc *usecase.ProductUsecase) *CartHandler {
	return &CartHandler{cart: c, uc: uc}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type CartResponse struct {
	Items     []model.LineItem `json:"items"`
	Total     float64          `json:"total"`
	ItemCount int64            `json:"item_count"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/cart", h.getCart)
	e.POST("/cart/items", h.addItem)
	e.PATCH("/cart/items/:id", h.patchItem)
	e.DELETE("/cart/items/:id", h.deleteItem)
	e.DELETE("/cart", h.clear)
}

func (h *CartHandler) getCart(c echo.Context) error {
	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//公開中の商品だけ追加できる（非公開・削除済みは404が返る）
	p, err := h.uc.GetProductDetail(c.Request().Context(), req.ProductID)
	if err != nil {
		return writeError(c, err)
	}

	h.cart.Add(p)
	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) patchItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//1未満は1に丸められる。行が無ければ何も起きない。
	h.cart.SetQuantity(productID, req.Quantity)
	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	h.cart.Remove(productID)
	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) clear(c echo.Context) error {
	h.cart.Clear()
	return c.JSON(http.StatusOK, h.cartResponse())
}

func (h *CartHandler) cartResponse() CartResponse {
	return CartResponse{
		Items:     h.cart.Items(),
		Total:     h.cart.Total(),
		ItemCount: h.cart.ItemCount(),
	}
}
