package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "webucket-api/internal/domain/bucket"
	"webucket-api/internal/usecase/bucket"
	"webucket-api/internal/usecase/user"
)

// BucketHandler handles HTTP requests for buckets and their items.
type BucketHandler struct {
	uc  bucket.Usecase
	log *zap.Logger
}

// NewBucketHandler creates a new BucketHandler instance.
func NewBucketHandler(uc bucket.Usecase, log *zap.Logger) *BucketHandler {
	return &BucketHandler{uc: uc, log: log}
}

// CreateBucketRequest represents the HTTP request body for creating a bucket.
type CreateBucketRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateBucketRequest represents the HTTP request body for patching a bucket.
type UpdateBucketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// AddItemRequest represents the HTTP request body for adding an item.
type AddItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
	ItemType    string `json:"item_type" binding:"required"`
}

// UpdateItemRequest represents the HTTP request body for patching an item.
type UpdateItemRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Score       *int    `json:"score"`
	Comment     *string `json:"comment"`
}

func actorOf(u *user.Response) bucket.Actor {
	return bucket.Actor{ID: u.ID, Username: u.Username}
}

// CreateBucket handles POST /api/v1/create_bucket
func (h *BucketHandler) CreateBucket(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var req CreateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid create bucket request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.CreateBucket(c.Request.Context(), bucket.CreateBucketRequest{
		Actor:       actorOf(u),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListBuckets handles GET /api/v1/get_buckets_for_user
func (h *BucketHandler) ListBuckets(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	resp, err := h.uc.ListForUser(c.Request.Context(), actorOf(u))
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetBucket handles GET /api/v1/bucket/:bucket_id
func (h *BucketHandler) GetBucket(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	resp, err := h.uc.GetBucket(c.Request.Context(), actorOf(u), c.Param("bucket_id"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateBucket handles PATCH /api/v1/update_bucket/:bucket_id
func (h *BucketHandler) UpdateBucket(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var req UpdateBucketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update bucket request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.UpdateBucket(c.Request.Context(), bucket.UpdateBucketRequest{
		Actor:       actorOf(u),
		BucketID:    c.Param("bucket_id"),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteBucket handles DELETE /api/v1/delete_bucket/:bucket_id
func (h *BucketHandler) DeleteBucket(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteBucket(c.Request.Context(), actorOf(u), c.Param("bucket_id"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddUserToBucket handles PATCH /api/v1/add_user_to_bucket/:bucket_id
func (h *BucketHandler) AddUserToBucket(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	addUsername := c.Query("add_username")
	if addUsername == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "add_username query parameter is required",
		})
		return
	}

	resp, err := h.uc.AddMember(c.Request.Context(), bucket.AddMemberRequest{
		Actor:    actorOf(u),
		BucketID: c.Param("bucket_id"),
		Username: addUsername,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AddItem handles POST /api/v1/add_item_to_bucket/:bucket_id
func (h *BucketHandler) AddItem(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid add item request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.AddItem(c.Request.Context(), bucket.AddItemRequest{
		Actor:       actorOf(u),
		BucketID:    c.Param("bucket_id"),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		ItemType:    domain.ItemType(req.ItemType),
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateItem handles PATCH /api/v1/update_item/:item_id
func (h *BucketHandler) UpdateItem(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid update item request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	resp, err := h.uc.UpdateItem(c.Request.Context(), bucket.UpdateItemRequest{
		Actor:       actorOf(u),
		ItemID:      c.Param("item_id"),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Score:       req.Score,
		Comment:     req.Comment,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteItem handles DELETE /api/v1/delete_item/:item_id
func (h *BucketHandler) DeleteItem(c *gin.Context) {
	u, ok := mustCurrentUser(c)
	if !ok {
		return
	}

	resp, err := h.uc.DeleteItem(c.Request.Context(), actorOf(u), c.Param("item_id"))
	if err != nil {
		handleError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
