package logger

// 统一的日志字段命名常量
// 用于确保整个项目中日志字段命名的一致性，便于日志查询和分析
const (
	// FieldTraceID 追踪 ID 字段
	FieldTraceID = "traceId"

	// FieldUID 用户 ID 字段
	FieldUID = "uid"

	// FieldNoteID 笔记 ID 字段
	FieldNoteID = "noteId"

	// FieldTagID 标签 ID 字段
	FieldTagID = "tagId"

	// FieldItemID 清单项 ID 字段
	FieldItemID = "itemId"

	// FieldAction 操作类型字段
	FieldAction = "action"

	// FieldEvent 事件名称字段
	FieldEvent = "event"

	// FieldTask 任务名称字段
	FieldTask = "task"

	// FieldDuration 耗时字段
	FieldDuration = "duration"

	// FieldMethod 方法名称字段
	FieldMethod = "method"

	// FieldError 错误信息字段
	FieldError = "error"

	// FieldCount 数量字段
	FieldCount = "count"
)
