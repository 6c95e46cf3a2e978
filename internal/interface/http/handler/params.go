package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// pathID 解析路径中的:id，不是整数时直接返回400
// 正负号由领域服务判断
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperrors.ErrInvalidArgument.WithMessagef("Invalid ID '%s'.", c.Param("id")))
		return 0, false
	}
	return id, true
}

// bindError 请求参数绑定或校验失败
func bindError(c *gin.Context, err error) {
	response.Error(c, apperrors.ErrBindError.WithMessagef("Invalid request: %s", err.Error()))
}
