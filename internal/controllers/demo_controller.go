package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"lottodesk/internal/models"
	"lottodesk/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DemoController struct {
	Store  *store.DemoStore
	Logger *zap.Logger
}

type createDemoRequest struct {
	ID       *int64              `json:"id" binding:"required"`
	Name     *string             `json:"name"`
	Money    decimal.NullDecimal `json:"money"`
	Birthday *time.Time          `json:"birthday"`
}

type updateDemoRequest struct {
	Name     *string          `json:"name"`
	Money    *decimal.Decimal `json:"money"`
	Birthday *time.Time       `json:"birthday"`
}

// ListDemos returns every demo row ordered by id
func (dc *DemoController) ListDemos(c *gin.Context) {
	demos, err := dc.Store.GetAll(c.Request.Context())
	if err != nil {
		dc.Logger.Error("failed to list demos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"demos": demos})
}

// GetDemo returns one demo row
func (dc *DemoController) GetDemo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	demo, err := dc.Store.GetByID(c.Request.Context(), id)
	if err != nil {
		dc.Logger.Error("failed to get demo", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	if demo == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Demo not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"demo": demo})
}

// CreateDemo inserts a demo row with a caller-chosen id
func (dc *DemoController) CreateDemo(c *gin.Context) {
	var req createDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	demo := models.Demo{
		ID:       *req.ID,
		Name:     req.Name,
		Money:    req.Money,
		Birthday: req.Birthday,
	}

	if err := dc.Store.Create(c.Request.Context(), demo); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Demo already exists"})
			return
		}

		dc.Logger.Error("failed to create demo", zap.Int64("id", demo.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"demo": demo})
}

// UpdateDemo changes the fields present in the body
func (dc *DemoController) UpdateDemo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateDemoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	affected, err := dc.Store.Update(c.Request.Context(), id, store.DemoUpdate{
		Name:     req.Name,
		Money:    req.Money,
		Birthday: req.Birthday,
	})
	if err != nil {
		dc.Logger.Error("failed to update demo", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows_affected": affected})
}

func (dc *DemoController) DeleteDemo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	affected, err := dc.Store.Delete(c.Request.Context(), id)
	if err != nil {
		dc.Logger.Error("failed to delete demo", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows_affected": affected})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
