package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberSvc service.MemberService
}

func NewMemberHandler(memberSvc service.MemberService) *MemberHandler {
	return &MemberHandler{
		memberSvc: memberSvc,
	}
}

func (s *MemberHandler) Join(c *gin.Context) {
	var joinDTO dto.JoinDTO
	err := c.ShouldBind(&joinDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&joinDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.memberSvc.Join(c.Request.Context(), &joinDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MemberHandler) JoinSocial(c *gin.Context) {
	var joinDTO dto.JoinSocialDTO
	err := c.ShouldBind(&joinDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&joinDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.memberSvc.JoinSocial(c.Request.Context(), c.GetUint64("user_id"), &joinDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MemberHandler) CheckEmail(c *gin.Context) {
	var checkDTO dto.EmailCheckDTO
	err := c.ShouldBind(&checkDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&checkDTO); err != nil {
		response.Error(c, err)
		return
	}
	available, err := s.memberSvc.CheckEmail(c.Request.Context(), checkDTO.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !available {
		response.Error(c, service.ErrEmailExist)
		return
	}
	response.Success(c, nil)
}

func (s *MemberHandler) Login(c *gin.Context) {
	var loginDTO dto.LoginDTO
	err := c.ShouldBind(&loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	token, err := s.memberSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{
		"token": token,
	})
}

func (s *MemberHandler) Logout(c *gin.Context) {
	token := extractBearer(c)
	if token == "" {
		response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
		return
	}
	err := s.memberSvc.Logout(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MemberHandler) Withdraw(c *gin.Context) {
	var withdrawDTO dto.WithdrawDTO
	err := c.ShouldBind(&withdrawDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	err = s.memberSvc.Withdraw(c.Request.Context(), c.GetUint64("user_id"), withdrawDTO.Password, extractBearer(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MemberHandler) GetProfile(c *gin.Context) {
	memberDTO, err := s.memberSvc.GetProfile(c.Request.Context(), c.GetUint64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, memberDTO)
}

func (s *MemberHandler) UpdateProfile(c *gin.Context) {
	var updateDTO dto.UpdateMemberDTO
	err := c.ShouldBind(&updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	memberDTO, err := s.memberSvc.UpdateProfile(c.Request.Context(), c.GetUint64("user_id"), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, memberDTO)
}

func (s *MemberHandler) UpdatePassword(c *gin.Context) {
	var changeDTO dto.ChangePasswordDTO
	err := c.ShouldBind(&changeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&changeDTO); err != nil {
		response.Error(c, err)
		return
	}
	err = s.memberSvc.UpdatePassword(c.Request.Context(), c.GetUint64("user_id"), &changeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *MemberHandler) UploadThumbnail(c *gin.Context) {
	fileHeader, err := c.FormFile("thumbnail")
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	publicURL, err := s.memberSvc.UpdateThumbnail(c.Request.Context(), c.GetUint64("user_id"), file, contentType)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]string{
		"thumbnail_url": publicURL,
	})
}

func (s *MemberHandler) DeleteThumbnail(c *gin.Context) {
	err := s.memberSvc.DeleteThumbnail(c.Request.Context(), c.GetUint64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}
