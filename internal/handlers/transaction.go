package handlers

import (
	"strconv"

	"paywallet/internal/models"
	"paywallet/internal/services/transaction"
	"paywallet/internal/utils/pagination"
	"paywallet/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactionService transaction.Service
}

func NewTransactionHandler(transactionService transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

func (h *TransactionHandler) SendMoney(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	var input transaction.SendMoneyRequest
	if ok, err := parseBody(c, &input); !ok {
		return err
	}

	result, err := h.transactionService.SendMoney(c.UserContext(), actor, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, result.Message, result)
}

func (h *TransactionHandler) CashIn(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	var input transaction.CashInRequest
	if ok, err := parseBody(c, &input); !ok {
		return err
	}

	result, err := h.transactionService.AddMoney(c.UserContext(), actor, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, result.Message, result)
}

func (h *TransactionHandler) CashOut(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c)
	}
	var input transaction.CashOutRequest
	if ok, err := parseBody(c, &input); !ok {
		return err
	}

	result, err := h.transactionService.WithdrawMoney(c.UserContext(), actor, input)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, result.Message, result)
}

func (h *TransactionHandler) History(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	page, err := h.transactionService.ViewHistory(c.UserContext(), actor, historyFilter(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(pageResponse(page))
}

func (h *TransactionHandler) CommissionHistory(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return response.Unauthorized(c)
	}

	page, err := h.transactionService.GetCommissionHistory(c.UserContext(), actor, historyFilter(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return c.JSON(pageResponse(page))
}

func historyFilter(c *fiber.Ctx) transaction.HistoryFilter {
	p := pagination.ParseFromRequest(c)
	filter := transaction.HistoryFilter{
		Type:      models.TransactionType(c.Query("type")),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
		Page:      p.Page,
		Limit:     p.Limit,
	}
	if raw := c.Query("userId"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			uid := uint(id)
			filter.UserID = &uid
		}
	}
	return filter
}

func pageResponse(page *transaction.HistoryPage) fiber.Map {
	return pagination.Response(pagination.Pagination{
		Page:   page.Page,
		Limit:  page.Limit,
		Offset: (page.Page - 1) * page.Limit,
		Total:  page.Total,
	}, page.Items)
}
