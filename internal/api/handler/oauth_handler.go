package handler

import (
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OAuthHandler struct {
	oauthSvc service.OAuthService
}

func NewOAuthHandler(oauthSvc service.OAuthService) *OAuthHandler {
	return &OAuthHandler{
		oauthSvc: oauthSvc,
	}
}

// Authorize 跳转到提供方授权页
func (s *OAuthHandler) Authorize(c *gin.Context) {
	provider := c.Param("provider")
	authURL, err := s.oauthSvc.AuthURL(c.Request.Context(), provider)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

// Callback 提供方回调，换取本站登录态
func (s *OAuthHandler) Callback(c *gin.Context) {
	provider := c.Param("provider")
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	result, err := s.oauthSvc.Callback(c.Request.Context(), provider, code, state)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
