package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zhihang-app/zhihang/internal/advisor"
	"github.com/zhihang-app/zhihang/internal/progress"
	"github.com/zhihang-app/zhihang/internal/review"
	"github.com/zhihang-app/zhihang/internal/user"
)

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrMajorNotFound):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// UserHandler serves account and profile routes.
type UserHandler struct {
	Users *user.Service
	Log   *zap.Logger
}

func (h *UserHandler) Register(c *gin.Context) {
	var in user.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := in.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, err := h.Users.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": id})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req struct {
		StudentID string `json:"student_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, rec, err := h.Users.Login(c.Request.Context(), req.StudentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": id, "user": rec})
}

func (h *UserHandler) Get(c *gin.Context) {
	rec, err := h.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

func (h *UserHandler) Options(c *gin.Context) {
	opts, err := h.Users.Options(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (h *UserHandler) Roadmap(c *gin.Context) {
	roadmap, err := h.Users.Roadmap(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"must_required_courses": roadmap})
}

// ProgressHandler serves progress submission and warning routes.
type ProgressHandler struct {
	Progress *progress.Service
	Users    *user.Service
	Log      *zap.Logger
}

func (h *ProgressHandler) Update(c *gin.Context) {
	var upd progress.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := upd.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Progress.Apply(c.Request.Context(), c.Param("id"), upd); err != nil {
		writeError(c, err)
		return
	}
	rec, err := h.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *ProgressHandler) Warning(c *gin.Context) {
	warning, err := h.Progress.GraduateWarning(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if warning == nil {
		c.JSON(http.StatusOK, gin.H{"warning": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"warning": warning})
}

// ReviewHandler serves path review and ranking routes.
type ReviewHandler struct {
	Reviews *review.Service
	Log     *zap.Logger
}

func (h *ReviewHandler) Record(c *gin.Context) {
	var req struct {
		Content  string `json:"content" binding:"required"`
		IsPublic *bool  `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Reviews.Record(c.Request.Context(), c.Param("id"), req.Content, req.IsPublic); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": c.Param("id")})
}

func (h *ReviewHandler) AddLike(c *gin.Context) {
	count, err := h.Reviews.AddLike(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"like_count": count})
}

func (h *ReviewHandler) RankList(c *gin.Context) {
	entries, err := h.Reviews.RankList(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rank": entries})
}

// AdvisorHandler serves LLM-backed planning and peer matching routes.
type AdvisorHandler struct {
	Planner *advisor.Planner
	Matcher *advisor.Matcher
	Log     *zap.Logger
}

// available reports whether an LLM provider was configured at startup.
func (h *AdvisorHandler) available(c *gin.Context) bool {
	if h.Planner == nil || h.Matcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no LLM provider configured"})
		return false
	}
	return true
}

func (h *AdvisorHandler) Recommend(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req struct {
		Demand string `json:"demand" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	answer, err := h.Planner.Recommend(c.Request.Context(), c.Param("id"), req.Demand)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

func (h *AdvisorHandler) ResetSession(c *gin.Context) {
	if !h.available(c) {
		return
	}
	h.Planner.ResetSession(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"reset": c.Param("id")})
}

func (h *AdvisorHandler) Match(c *gin.Context) {
	if !h.available(c) {
		return
	}
	matches, err := h.Matcher.MatchPeers(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
