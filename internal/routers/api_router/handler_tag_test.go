package api_router

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	pkgapp "github.com/solenote/note-keeper-service/pkg/app"
	"github.com/solenote/note-keeper-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTagIDContext(id string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id}}
	return c, w
}

func decodeRes(t *testing.T, w *httptest.ResponseRecorder) pkgapp.Res {
	t.Helper()
	var res pkgapp.Res
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestTagHandlerInvalidIDFormat(t *testing.T) {
	h := &TagHandler{Handler: &Handler{}}

	// 格式错误的 ID 与参数校验失败是两种错误
	for _, raw := range []string{"abc", "0", "-1", "1.5"} {
		c, w := newTagIDContext(raw)
		h.Get(c)
		res := decodeRes(t, w)
		assert.Equal(t, code.ErrorTagInvalidID.Code(), res.Code, "id=%s", raw)
	}

	c, w := newTagIDContext("xyz")
	h.Delete(c)
	assert.Equal(t, code.ErrorTagInvalidID.Code(), decodeRes(t, w).Code)
}
