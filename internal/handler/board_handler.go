package handler

import (
	"net/http"

	"rentalhub/internal/middleware"
	"rentalhub/internal/model"
	"rentalhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	svc *service.BoardService
}

func NewBoardHandler(svc *service.BoardService) *BoardHandler {
	return &BoardHandler{svc: svc}
}

type CreateBoardRequest struct {
	BoardName       string   `json:"board_name" binding:"required"`
	EventDate       string   `json:"event_date" binding:"required"`
	EventType       string   `json:"event_type"`
	RentalStartDate string   `json:"rental_start_date" binding:"required"`
	RentalEndDate   string   `json:"rental_end_date" binding:"required"`
	Budget          *float64 `json:"budget"`
	Notes           string   `json:"notes"`
}

type UpdateBoardRequest struct {
	BoardName       *string  `json:"board_name"`
	EventDate       *string  `json:"event_date"`
	EventType       *string  `json:"event_type"`
	RentalStartDate *string  `json:"rental_start_date"`
	RentalEndDate   *string  `json:"rental_end_date"`
	Budget          *float64 `json:"budget"`
	Notes           *string  `json:"notes"`
	Status          *string  `json:"status"`
}

type BoardResponse struct {
	ID              string   `json:"id"`
	OwnerID         string   `json:"owner_id"`
	BoardName       string   `json:"board_name"`
	EventDate       string   `json:"event_date"`
	EventType       string   `json:"event_type"`
	RentalStartDate string   `json:"rental_start_date"`
	RentalEndDate   string   `json:"rental_end_date"`
	Budget          *float64 `json:"budget,omitempty"`
	Notes           string   `json:"notes"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at"`
}

type BoardDetailResponse struct {
	BoardResponse
	Items []BoardItemResponse `json:"items"`
}

func toBoardResponse(board *model.Board) BoardResponse {
	return BoardResponse{
		ID:              board.ID.String(),
		OwnerID:         board.OwnerID.String(),
		BoardName:       board.Name,
		EventDate:       board.EventDate.Format(dateLayout),
		EventType:       board.EventType,
		RentalStartDate: board.RentalStart.Format(dateLayout),
		RentalEndDate:   board.RentalEnd.Format(dateLayout),
		Budget:          board.Budget,
		Notes:           board.Notes,
		Status:          board.Status,
		CreatedAt:       board.CreatedAt.Format(http.TimeFormat),
	}
}

// Create creates a new event board for the authenticated customer
func (h *BoardHandler) Create(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	ownerID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	var req CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_date, expected YYYY-MM-DD"})
		return
	}
	rentalStart, err := parseDate(req.RentalStartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental_start_date, expected YYYY-MM-DD"})
		return
	}
	rentalEnd, err := parseDate(req.RentalEndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental_end_date, expected YYYY-MM-DD"})
		return
	}

	board, err := h.svc.CreateBoard(c.Request.Context(), ownerID, service.CreateBoardParams{
		Name:        req.BoardName,
		EventDate:   eventDate,
		EventType:   req.EventType,
		RentalStart: rentalStart,
		RentalEnd:   rentalEnd,
		Budget:      req.Budget,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBoardResponse(board))
}

// GetAll returns the authenticated customer's boards
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	ownerID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	boards, err := h.svc.ListBoards(c.Request.Context(), ownerID, c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BoardResponse, len(boards))
	for i := range boards {
		response[i] = toBoardResponse(&boards[i])
	}

	c.JSON(http.StatusOK, response)
}

// GetByID returns one board with its items
func (h *BoardHandler) GetByID(c *gin.Context) {
	board, ok := h.ownedBoard(c)
	if !ok {
		return
	}

	items := make([]BoardItemResponse, len(board.Items))
	for i := range board.Items {
		items[i] = toBoardItemResponse(&board.Items[i])
	}

	c.JSON(http.StatusOK, BoardDetailResponse{
		BoardResponse: toBoardResponse(board),
		Items:         items,
	})
}

// Update patches mutable board fields. Rental dates are rejected once the
// board has items.
func (h *BoardHandler) Update(c *gin.Context) {
	board, ok := h.ownedBoard(c)
	if !ok {
		return
	}

	var req UpdateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	params := service.UpdateBoardParams{
		Name:      req.BoardName,
		EventType: req.EventType,
		Budget:    req.Budget,
		Notes:     req.Notes,
		Status:    req.Status,
	}
	if req.EventDate != nil {
		d, err := parseDate(*req.EventDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event_date, expected YYYY-MM-DD"})
			return
		}
		params.EventDate = &d
	}
	if req.RentalStartDate != nil {
		d, err := parseDate(*req.RentalStartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental_start_date, expected YYYY-MM-DD"})
			return
		}
		params.RentalStart = &d
	}
	if req.RentalEndDate != nil {
		d, err := parseDate(*req.RentalEndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental_end_date, expected YYYY-MM-DD"})
			return
		}
		params.RentalEnd = &d
	}

	updated, err := h.svc.UpdateBoard(c.Request.Context(), board, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBoardResponse(updated))
}

// Delete removes a board, releasing every item's reservation first
func (h *BoardHandler) Delete(c *gin.Context) {
	board, ok := h.ownedBoard(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteBoard(c.Request.Context(), board); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ownedBoard resolves the board from the URL and verifies the authenticated
// user owns it. On failure it has already written the response.
func (h *BoardHandler) ownedBoard(c *gin.Context) (*model.Board, bool) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return nil, false
	}

	authenticatedUserID, ok := userID.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return nil, false
	}

	boardID, err := uuid.Parse(c.Param("board_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid board ID format"})
		return nil, false
	}

	board, err := h.svc.GetBoard(c.Request.Context(), boardID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}

	if board.OwnerID != authenticatedUserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to access this board"})
		return nil, false
	}

	return board, true
}
