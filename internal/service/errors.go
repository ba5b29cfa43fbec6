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
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrUsernameExist      = errors.New("账号已被占用")
	ErrEmailExist         = errors.New("邮箱已注册")
	ErrEmailNotFound      = errors.New("邮箱未注册")
	ErrNicknameExist      = errors.New("昵称已被占用")
	ErrMemberNotFound     = errors.New("会员不存在")
	ErrPasswordIncorrect  = errors.New("密码错误")
	ErrSignupIncomplete   = errors.New("注册尚未完成")
	ErrSignupCompleted    = errors.New("注册已完成")
	ErrOAuthStateInvalid  = errors.New("社交登录状态无效")
	ErrOAuthProvider      = errors.New("不支持的社交登录提供方")
	ErrOAuthEmailExist    = errors.New("该邮箱已通过其他方式注册")
	ErrPostNotFound       = errors.New("文章不存在")
	ErrSeriesNotFound     = errors.New("合集不存在")
	ErrFileNotSupported   = errors.New("不支持的文件类型")
	ErrActionDuplicate    = errors.New("重复操作")
	ForbiddenError        = errors.New("无权访问该资源")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUsernameExist:     Conflict,
	ErrEmailExist:        Conflict,
	ErrEmailNotFound:     NotFound,
	ErrNicknameExist:     Conflict,
	ErrMemberNotFound:    NotFound,
	ErrPasswordIncorrect: Unauthorized,
	ErrSignupIncomplete:  Unauthorized,
	ErrSignupCompleted:   Conflict,
	ErrOAuthStateInvalid: Unauthorized,
	ErrOAuthProvider:     BadRequest,
	ErrOAuthEmailExist:   Conflict,
	ErrPostNotFound:      NotFound,
	ErrSeriesNotFound:    NotFound,
	ErrFileNotSupported:  BadRequest,
	ErrActionDuplicate:   BadRequest,
	ForbiddenError:       Forbidden,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}
