package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc   service.PostService
	actionSvc service.PostActionService
}

func NewPostHandler(postSvc service.PostService, actionSvc service.PostActionService) *PostHandler {
	return &PostHandler{
		postSvc:   postSvc,
		actionSvc: actionSvc,
	}
}

// GetWrite 编辑页回显，不带 postId 时返回空白新建页
func (s *PostHandler) GetWrite(c *gin.Context) {
	raw := c.Query("postId")
	if raw == "" {
		response.Success(c, &dto.WriteViewDTO{Tags: []string{}})
		return
	}
	postID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || postID == 0 {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	view, err := s.postSvc.GetWrite(c.Request.Context(), c.GetUint64("user_id"), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

func (s *PostHandler) Write(c *gin.Context) {
	var writeDTO dto.WriteDTO
	err := c.ShouldBind(&writeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&writeDTO); err != nil {
		response.Error(c, err)
		return
	}
	postID, err := s.postSvc.Write(c.Request.Context(), c.GetUint64("user_id"), &writeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]uint64{
		"post_id": postID,
	})
}

func (s *PostHandler) WriteTemporary(c *gin.Context) {
	var writeDTO dto.WriteDTO
	err := c.ShouldBind(&writeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = util.ValidateDTO(&writeDTO); err != nil {
		response.Error(c, err)
		return
	}
	postID, err := s.postSvc.WriteTemporary(c.Request.Context(), c.GetUint64("user_id"), &writeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]uint64{
		"post_id": postID,
	})
}

func (s *PostHandler) Delete(c *gin.Context) {
	var deleteDTO dto.DeletePostDTO
	err := c.ShouldBind(&deleteDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	err = s.postSvc.Delete(c.Request.Context(), c.GetUint64("user_id"), deleteDTO.PostID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Love 点赞开关
func (s *PostHandler) Love(c *gin.Context) {
	var loveDTO dto.LoveDTO
	err := c.ShouldBind(&loveDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	loved, err := s.actionSvc.ToggleLovePost(c.Request.Context(), c.GetUint64("user_id"), loveDTO.PostID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, map[string]bool{
		"loved": loved,
	})
}
