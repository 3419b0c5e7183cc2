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

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App, wss *pkgapp.WebsocketServer) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandlerWithWSS(a, wss),
	}
}

// noteID 读取路径中的笔记 ID
func noteID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Create 创建笔记
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Create.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.Create err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Get 获取单条笔记详情
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.Get err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// List 获取笔记列表
// 支持 title、tag、done、isArchived 过滤，按置顶优先、排序值升序返回
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.List.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.List err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	notes, err := h.App.NoteService.List(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	// 带 page 参数时分页返回，否则返回全量列表
	if _, exists := c.GetQuery("page"); exists {
		cfg := h.App.Config()
		page := pkgapp.GetPage(c)
		pageSize := pkgapp.GetPageSizeWithConfig(c, pkgapp.PaginationConfig{
			DefaultPageSize: cfg.App.DefaultPageSize,
			MaxPageSize:     cfg.App.MaxPageSize,
		})
		total := len(notes)
		offset := pkgapp.GetPageOffset(page, pageSize)
		if offset > total {
			offset = total
		}
		end := offset + pageSize
		if end > total {
			end = total
		}
		response.ToResponseList(code.Success, notes[offset:end], total)
		return
	}

	response.ToResponse(code.Success.WithData(notes))
}

// Update 全量更新笔记可变字段
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Update.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.Update err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.Update(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Delete 删除笔记
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.Delete err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.NoteService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// ToggleArchive 切换归档状态
func (h *NoteHandler) ToggleArchive(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.ToggleArchive err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.ToggleArchive(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.ToggleArchive", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// TogglePin 切换置顶状态
func (h *NoteHandler) TogglePin(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.TogglePin err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.TogglePin(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.TogglePin", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// Reorder 批量调整排序
// 未拥有的笔记 ID 会被跳过，操作幂等且不触发事件
func (h *NoteHandler) Reorder(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteReorderRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.Reorder.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.Reorder err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.NoteService.Reorder(ctx, uid, params); err != nil {
		h.logError(ctx, "NoteHandler.Reorder", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// SetReminder 设置或清除提醒时间
func (h *NoteHandler) SetReminder(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteReminderRequest{}

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.SetReminder.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.SetReminder err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.SetReminder(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.SetReminder", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// ChecklistAdd 追加清单项
func (h *NoteHandler) ChecklistAdd(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ChecklistAddRequest{}

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.ChecklistAdd.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.ChecklistAdd err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.ChecklistAdd(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.ChecklistAdd", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// ChecklistList 获取清单项列表
func (h *NoteHandler) ChecklistList(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.ChecklistList err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	items, err := h.App.NoteService.ChecklistGet(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "NoteHandler.ChecklistList", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(items))
}

// ChecklistToggle 切换清单项完成状态
func (h *NoteHandler) ChecklistToggle(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ChecklistToggleRequest{}

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}
	itemID := c.Param("itemId")

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("NoteHandler.ChecklistToggle.BindAndValid err", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.ChecklistToggle err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.ChecklistToggle(ctx, uid, id, itemID, params)
	if err != nil {
		h.logError(ctx, "NoteHandler.ChecklistToggle", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// ChecklistRemove 移除清单项
func (h *NoteHandler) ChecklistRemove(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := noteID(c)
	if !ok {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}
	itemID := c.Param("itemId")

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("NoteHandler.ChecklistRemove err uid=0")
		response.ToResponse(code.ErrorInvalidUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	note, err := h.App.NoteService.ChecklistRemove(ctx, uid, id, itemID)
	if err != nil {
		h.logError(ctx, "NoteHandler.ChecklistRemove", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(note))
}

// logError 记录错误日志，包含 Trace ID
func (h *NoteHandler) logError(ctx context.Context, method string, err error) {
	traceID := middleware.GetTraceID(ctx)
	h.App.Logger().Error(method,
		zap.Error(err),
		zap.String("traceId", traceID),
	)
}
