package api_router

import (
	"context"
	"strconv"

	"github.com/solenote/note-keeper-service/internal/app"
	"github.com/solenote/note-keeper-service/internal/dto"
	"github.com/solenote/note-keeper-service/internal/middleware"
	pkgapp "github.com/solenote/note-keeper-service/pkg/app"
	"github.com/solenote/note-keeper-service/pkg/code"
	apperrors "github.com/solenote/note-keeper-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TagHandler 标签 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type TagHandler struct {
	*Handler
}

// NewTagHandler 创建 TagHandler 实例
func NewTagHandler(a *app.App) *TagHandler {
	return &TagHandler{
		Handler: NewHandler(a),
	}
}

func tagID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Create 创建标签
func (h *TagHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TagCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TagHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("TagHandler.Create err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	tag, err := h.App.TagService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "TagHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(tag))
}

// Get 获取标签详情
// 区分标签不存在与无访问权限两种失败
func (h *TagHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := tagID(c)
	if !ok {
		response.ToResponse(code.ErrorTagInvalidID)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("TagHandler.Get err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	tag, err := h.App.TagService.Get(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "TagHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(tag))
}

// List 获取当前用户的标签列表
func (h *TagHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("TagHandler.List err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	tags, err := h.App.TagService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "TagHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(tags))
}

// Update 重命名标签
func (h *TagHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TagUpdateRequest{}

	id, ok := tagID(c)
	if !ok {
		response.ToResponse(code.ErrorTagInvalidID)
		return
	}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TagHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("TagHandler.Update err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	tag, err := h.App.TagService.Update(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "TagHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(tag))
}

// Delete 删除标签
func (h *TagHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := tagID(c)
	if !ok {
		response.ToResponse(code.ErrorTagInvalidID)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("TagHandler.Delete err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.TagService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "TagHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// logError 记录错误日志，包含 Trace ID
func (h *TagHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
