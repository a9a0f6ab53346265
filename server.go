package main

import (
	"fmt"
	"github.com/SasukeBo/configer"
	"github.com/SasukeBo/log"
	"github.com/gin-gonic/gin"
	"github.com/hojin-jang/ru-order-producer/handler"
	"github.com/hojin-jang/ru-order-producer/orm"
)

func main() {
	orm.Init()

	r := gin.Default()

	// Panic Recovery
	r.Use(gin.Recovery())

	// 반출 파일 업로드
	r.POST("/import", handler.HttpRequestLogger(), handler.ImportWorkOrders())
	// 최근 업로드 이력
	r.GET("/import/latest", handler.LatestImportBatch())

	log.Info("start service on [%s] mode", configer.GetEnv("env"))
	r.Run(fmt.Sprintf(":%s", configer.GetString("port")))
}
