package handler

import (
	"net/http"

	"rentalhub/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BoardItemHandler manages item lines on a board. Every mutation goes through
// the board service so reservations stay consistent with items.
type BoardItemHandler struct {
	boards *BoardHandler
}

func NewBoardItemHandler(boards *BoardHandler) *BoardItemHandler {
	return &BoardItemHandler{boards: boards}
}

type AddItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Notes     string `json:"notes"`
}

type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type BoardItemResponse struct {
	ID        string `json:"id"`
	BoardID   string `json:"board_id"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Notes     string `json:"notes"`
	CreatedAt string `json:"created_at"`
}

func toBoardItemResponse(item *model.BoardItem) BoardItemResponse {
	return BoardItemResponse{
		ID:        item.ID.String(),
		BoardID:   item.BoardID.String(),
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Notes:     item.Notes,
		CreatedAt: item.CreatedAt.Format(http.TimeFormat),
	}
}

// Add reserves stock for the board's rental window and adds the item
func (h *BoardItemHandler) Add(c *gin.Context) {
	board, ok := h.boards.ownedBoard(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	item, err := h.boards.svc.AddItem(c.Request.Context(), board, req.ProductID, req.Quantity, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBoardItemResponse(item))
}

// Update changes an item's quantity, re-validating availability
func (h *BoardItemHandler) Update(c *gin.Context) {
	board, ok := h.boards.ownedBoard(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	item, err := h.boards.svc.UpdateItemQuantity(c.Request.Context(), board, itemID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBoardItemResponse(item))
}

// Delete removes the item and releases its reservation
func (h *BoardItemHandler) Delete(c *gin.Context) {
	board, ok := h.boards.ownedBoard(c)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(c.Param("item_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID format"})
		return
	}

	if err := h.boards.svc.DeleteItem(c.Request.Context(), board, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
