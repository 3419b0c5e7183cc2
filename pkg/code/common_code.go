package code

// 通用状态码
var (
	Success = NewSuss(200, lang{"Success", "成功"})

	ErrorServerInternal   = NewError(500, lang{"Internal server error", "服务内部错误"})
	ErrorInvalidParams    = NewError(10001, lang{"Invalid request parameters", "入参错误"})
	ErrorNotFoundAPI      = NewError(10002, lang{"API not found", "找不到对应的接口"})
	ErrorTooManyRequests  = NewError(10003, lang{"Too many requests", "请求过多"})
	ErrorDatabase         = NewError(10004, lang{"Database error", "数据库错误"})
	ErrorInvalidTimeParam = NewError(10005, lang{"Invalid date time format", "日期时间格式错误"})
)

// 认证相关状态码
var (
	ErrorNotUserAuthToken     = NewError(20001, lang{"Authorization credential is missing", "缺少认证凭证"})
	ErrorInvalidUserAuthToken = NewError(20002, lang{"Authorization credential is invalid or expired", "认证凭证无效或已过期"})
	ErrorInvalidRefreshToken  = NewError(20003, lang{"Refresh token is invalid", "刷新凭证无效"})
	ErrorNotRefreshToken      = NewError(20004, lang{"Refresh token is required", "缺少刷新凭证"})
	ErrorUserLoginFailed      = NewError(20005, lang{"Invalid username or password", "用户名或密码错误"})
	ErrorUserRegisterDisabled = NewError(20006, lang{"User registration is disabled", "用户注册已关闭"})
	ErrorUserNameExists       = NewError(20007, lang{"Username already exists", "用户名已存在"})
	ErrorInvalidEmail         = NewError(20008, lang{"Username must be a valid email address", "用户名必须是合法的邮箱地址"})
	ErrorPasswordTooShort     = NewError(20009, lang{"The password should be 8 characters long", "密码长度至少为 8 位"})
)

// 笔记相关状态码
var (
	ErrorNoteNotFound          = NewError(30001, lang{"Note not found", "笔记不存在"})
	ErrorNoteTitleRequired     = NewError(30002, lang{"Note title is required", "笔记标题不能为空"})
	ErrorChecklistItemNotFound = NewError(30003, lang{"Checklist item not found", "清单项不存在"})
	ErrorChecklistItemRequired = NewError(30004, lang{"Checklist item text is required", "清单项内容不能为空"})
)

// 标签相关状态码
var (
	ErrorTagNotFound     = NewError(31001, lang{"Tag not found", "标签不存在"})
	ErrorTagNameRequired = NewError(31002, lang{"Tag name is required", "标签名称不能为空"})
	ErrorTagAccessDenied = NewError(31003, lang{"Access denied", "没有访问该标签的权限"})
	ErrorTagInvalidID    = NewError(31004, lang{"Invalid tag ID format", "标签 ID 格式错误"})
	ErrorTagNameExists   = NewError(31005, lang{"Tag already exists", "标签已存在"})
)
