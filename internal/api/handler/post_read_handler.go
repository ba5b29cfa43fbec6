package handler

import (
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 20

type PostReadHandler struct {
	readSvc service.PostReadService
}

func NewPostReadHandler(readSvc service.PostReadService) *PostReadHandler {
	return &PostReadHandler{
		readSvc: readSvc,
	}
}

func (s *PostReadHandler) Main(c *gin.Context) {
	page := queryInt(c, "page", 0)
	pageSize := queryInt(c, "size", defaultPageSize)
	res, err := s.readSvc.Main(c.Request.Context(), c.Query("sort"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostReadHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	nickname := c.Query("nickname")
	tag := c.Query("tag")
	if keyword == "" && nickname == "" && tag == "" {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	page := queryInt(c, "page", 0)
	pageSize := queryInt(c, "size", defaultPageSize)
	res, err := s.readSvc.Search(c.Request.Context(), keyword, nickname, tag, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostReadHandler) MemberMain(c *gin.Context) {
	page := queryInt(c, "page", 0)
	pageSize := queryInt(c, "size", defaultPageSize)
	res, err := s.readSvc.MemberMain(c.Request.Context(), c.Param("nickname"), c.GetUint64("user_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostReadHandler) MemberSeries(c *gin.Context) {
	res, err := s.readSvc.MemberSeries(c.Request.Context(), c.Param("nickname"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostReadHandler) MemberSeriesPosts(c *gin.Context) {
	res, err := s.readSvc.MemberSeriesPosts(c.Request.Context(), c.Param("nickname"), c.Param("seriesName"), c.GetUint64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostReadHandler) Read(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("postId"), 10, 64)
	if err != nil {
		response.Fail(c, response.BadRequest, service.ErrParamInvalid.Error())
		return
	}
	res, err := s.readSvc.Read(c.Request.Context(), c.Param("nickname"), postID, c.GetUint64("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostReadHandler) Temp(c *gin.Context) {
	lastID, _ := strconv.ParseUint(c.Query("lastId"), 10, 64)
	pageSize := queryInt(c, "size", defaultPageSize)
	res, err := s.readSvc.TempPosts(c.Request.Context(), c.GetUint64("user_id"), lastID, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostReadHandler) ArchiveLike(c *gin.Context) {
	page := queryInt(c, "page", 0)
	pageSize := queryInt(c, "size", defaultPageSize)
	res, err := s.readSvc.LovedPosts(c.Request.Context(), c.GetUint64("user_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostReadHandler) ArchiveRecent(c *gin.Context) {
	page := queryInt(c, "page", 0)
	pageSize := queryInt(c, "size", defaultPageSize)
	res, err := s.readSvc.RecentPosts(c.Request.Context(), c.GetUint64("user_id"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil || value < 0 || (value == 0 && fallback > 0) {
		return fallback
	}
	return value
}
