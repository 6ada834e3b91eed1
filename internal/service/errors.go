package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
	ServiceUnavailable  = 503
	GatewayTimeout      = 504
)

var (
	// 确定性错误：原样返回调用方，禁止自动重试
	ErrUnauthenticated   = errors.New("未登录或登录已失效")
	ErrForbidden         = errors.New("权限不足")
	ErrBanned            = errors.New("账号已被封禁，禁止写入操作")
	ErrInvalidTransition = errors.New("帖子当前状态不允许该操作")

	// 参数类错误
	ErrParamInvalid   = errors.New("参数错误")
	ErrTitleEmpty     = errors.New("标题不能为空")
	ErrBodyEmpty      = errors.New("正文不能为空")
	ErrTagNotAllowed  = errors.New("标签不在允许的词表内")
	ErrAttachmentKind = errors.New("附件类型只能是 link 或 file")

	// 用户相关
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserExist         = errors.New("用户名已存在")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrBanSelf           = errors.New("不能封禁自己")
	ErrBanAdmin          = errors.New("不能封禁管理员")

	// 外部协作方：译码器/线索生成器失败需降级，存储失败向上抛出
	ErrExternalUnavailable = errors.New("外部服务暂不可用")
	ErrTimeout             = errors.New("操作超时，请稍后重试")

	ErrPostNotFound   = errors.New("帖子不存在")
	ErrNoticeNotFound = errors.New("通知不存在")
	UnExpectedError   = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrUnauthenticated:   Unauthorized,
	ErrForbidden:         Forbidden,
	ErrBanned:            Forbidden,
	ErrInvalidTransition: Conflict,

	ErrParamInvalid:   BadRequest,
	ErrTitleEmpty:     BadRequest,
	ErrBodyEmpty:      BadRequest,
	ErrTagNotAllowed:  BadRequest,
	ErrAttachmentKind: BadRequest,

	ErrUserNotFound:      NotFound,
	ErrUserExist:         BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrBanSelf:           BadRequest,
	ErrBanAdmin:          BadRequest,

	ErrExternalUnavailable: ServiceUnavailable,
	ErrTimeout:             GatewayTimeout,

	ErrPostNotFound:   NotFound,
	ErrNoticeNotFound: NotFound,
	UnExpectedError:   InternalServerError,
}
