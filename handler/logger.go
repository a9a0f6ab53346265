package handler

import (
	"bytes"
	"fmt"
	"github.com/SasukeBo/configer"
	"github.com/gin-gonic/gin"
	"gopkg.in/gookit/color.v1"
	"io/ioutil"
)

const logBodyLimit = 512

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (rw responseWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

// HttpRequestLogger 요청/응답 본문 디버그 출력.
// 업로드 본문은 파일 전체라서 앞부분만 남긴다.
func HttpRequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if configer.GetEnv("env") == "prod" {
			c.Next()
			return
		}

		rw := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBufferString(""),
		}
		c.Writer = rw
		body, _ := ioutil.ReadAll(c.Request.Body)
		c.Request.Body = ioutil.NopCloser(bytes.NewBuffer(body))
		c.Next()
		fmt.Printf("\n%s\n", color.Warn.Render("[Debug Output]"))
		fmt.Printf("%s %s\n", color.Notice.Render("[Request Body]"), truncate(body))
		fmt.Printf("%s %s\n\n", color.Notice.Render("[Response Body]"), truncate(rw.body.Bytes()))
	}
}

func truncate(body []byte) string {
	if len(body) > logBodyLimit {
		return fmt.Sprintf("%s ...(%d bytes)", body[:logBodyLimit], len(body))
	}
	return string(body)
}
