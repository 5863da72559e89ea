package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MikeMC777/shop-orders/internal/httpx"
	ord "github.com/MikeMC777/shop-orders/internal/order"
)

const (
	msgQueryFailed   = "查询失败"
	msgNotFound      = "订单不存在"
	msgBadRequest    = "请求参数错误"
	msgCreateFailed  = "创建失败"
	msgCreated       = "订单创建成功"
	msgUpdateFailed  = "更新失败"
	msgStatusUpdated = "订单状态更新成功"
	msgDeleteFailed  = "删除失败"
	msgDeleted       = "订单已删除"
)

func reply(c *gin.Context, code int, msg string) {
	c.JSON(code, ord.MessageResponse{Message: msg})
}

// storeFailure hides the cause from the caller and keeps it in the log. The
// access log line for the request carries the same rid.
func storeFailure(c *gin.Context, log *zap.Logger, msg string, err error) {
	log.Error(msg, zap.String("rid", httpx.RID(c)), zap.Error(err))
	reply(c, http.StatusInternalServerError, msg)
}

// pathID parses :id. Anything that is not a positive integer cannot name an
// order, so callers answer 404 for it like for a missing row.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// queryInt reads a positive integer query parameter. Values too large for an
// int saturate instead of falling back, so an absurd page stays past the end.
func queryInt(c *gin.Context, key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return n
	}
	if err != nil || n < 1 {
		return def
	}
	return n
}

// listOrdersHandler godoc
// @Summary      List orders
// @Description  Paginated, newest first. status is an exact match; keyword matches order_no or user_name as a substring.
// @Tags         orders
// @Produce      json
// @Param        page      query  int     false  "page number"  default(1)
// @Param        pageSize  query  int     false  "page size (max 100)"  default(10)
// @Param        status    query  string  false  "order status"
// @Param        keyword   query  string  false  "order_no / user_name substring"
// @Success      200  {array}   order.Order
// @Failure      500  {object}  order.MessageResponse
// @Router       /orders [get]
func listOrdersHandler(repo ord.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := ord.Query{
			Page:     queryInt(c, "page", ord.DefaultPage),
			PageSize: queryInt(c, "pageSize", ord.DefaultPageSize),
			Status:   c.Query("status"),
			Keyword:  c.Query("keyword"),
		}
		orders, err := repo.List(c.Request.Context(), q)
		if err != nil {
			storeFailure(c, log, msgQueryFailed, err)
			return
		}
		if orders == nil {
			orders = []ord.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// getOrderHandler godoc
// @Summary  Get an order
// @Tags     orders
// @Produce  json
// @Param    id   path      int  true  "order id"
// @Success  200  {object}  order.Order
// @Failure  404  {object}  order.MessageResponse
// @Failure  500  {object}  order.MessageResponse
// @Router   /orders/{id} [get]
func getOrderHandler(repo ord.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			reply(c, http.StatusNotFound, msgNotFound)
			return
		}
		o, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, ord.ErrNotFound) {
				reply(c, http.StatusNotFound, msgNotFound)
				return
			}
			storeFailure(c, log, msgQueryFailed, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// createOrderHandler godoc
// @Summary      Create an order
// @Description  The order starts as 待付款 and is stamped with the store's clock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      order.CreateOrderRequest  true  "order"
// @Success      200   {object}  order.MessageResponse
// @Failure      400   {object}  order.MessageResponse
// @Failure      500   {object}  order.MessageResponse
// @Router       /orders [post]
func createOrderHandler(repo ord.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			reply(c, http.StatusBadRequest, msgBadRequest)
			return
		}
		o := req.Order()
		if err := repo.Create(c.Request.Context(), o); err != nil {
			storeFailure(c, log, msgCreateFailed, err)
			return
		}
		c.JSON(http.StatusOK, ord.MessageResponse{Message: msgCreated, OrderID: o.ID})
	}
}

// updateOrderStatusHandler godoc
// @Summary      Change an order's status
// @Description  Any non-empty status is accepted; no transition rules apply.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path      int                        true  "order id"
// @Param        body  body      order.UpdateStatusRequest  true  "new status"
// @Success      200   {object}  order.MessageResponse
// @Failure      400   {object}  order.MessageResponse
// @Failure      404   {object}  order.MessageResponse
// @Failure      500   {object}  order.MessageResponse
// @Router       /orders/{id}/status [put]
func updateOrderStatusHandler(repo ord.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ord.UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			reply(c, http.StatusBadRequest, msgBadRequest)
			return
		}
		id, ok := pathID(c)
		if !ok {
			reply(c, http.StatusNotFound, msgNotFound)
			return
		}
		if err := repo.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
			if errors.Is(err, ord.ErrNotFound) {
				reply(c, http.StatusNotFound, msgNotFound)
				return
			}
			storeFailure(c, log, msgUpdateFailed, err)
			return
		}
		reply(c, http.StatusOK, msgStatusUpdated)
	}
}

// deleteOrderHandler godoc
// @Summary  Delete an order
// @Tags     orders
// @Produce  json
// @Param    id   path      int  true  "order id"
// @Success  200  {object}  order.MessageResponse
// @Failure  404  {object}  order.MessageResponse
// @Failure  500  {object}  order.MessageResponse
// @Router   /orders/{id} [delete]
func deleteOrderHandler(repo ord.Repository, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			reply(c, http.StatusNotFound, msgNotFound)
			return
		}
		if err := repo.Delete(c.Request.Context(), id); err != nil {
			if errors.Is(err, ord.ErrNotFound) {
				reply(c, http.StatusNotFound, msgNotFound)
				return
			}
			storeFailure(c, log, msgDeleteFailed, err)
			return
		}
		reply(c, http.StatusOK, msgDeleted)
	}
}
