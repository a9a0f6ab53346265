package handler

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hojin-jang/ru-order-producer/ingest"
	"github.com/hojin-jang/ru-order-producer/orm"
)

const sampleLimit = 5

type Response struct {
	Message string `json:"message"`
	Origin  string `json:"originErr"`
}

type Summary struct {
	TotalProcessed int `json:"total_processed"`
	Created        int `json:"created"`
	Errors         int `json:"errors"`
}

type ImportData struct {
	Orders           []*orm.WorkOrder `json:"orders"`
	ProcessingErrors []string         `json:"processing_errors,omitempty"`
}

type ImportResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Summary   Summary    `json:"summary"`
	Data      ImportData `json:"data"`
	Timestamp string     `json:"timestamp"`
}

// ImportWorkOrders 반출 파일 업로드 처리.
// 디코딩 -> 파싱 -> 정규화 -> 그룹핑 -> 작업지시 생성 -> 일괄 커밋을
// 순서대로 한 번에 수행한다. 개별 건의 실패는 모아서 응답에 싣고,
// 형식 오류와 트랜잭션 오류만 배치 전체를 실패시킨다.
func ImportWorkOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, fileName, err := readUploadFile(c)
		if err != nil {
			var response = Response{
				Message: "업로드 파일을 읽을 수 없습니다. Cannot read the uploaded file.",
				Origin:  err.Error(),
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, response)
			return
		}

		uploader := c.PostForm("uploader")
		if uploader == "" {
			uploader = "system"
		}

		batch := orm.ImportBatch{FileName: fileName, FileSize: len(raw), Uploader: uploader}
		if err := batch.Start(); err != nil {
			var response = Response{
				Message: "업로드 이력 생성에 실패했습니다. Failed to create import batch.",
				Origin:  err.Error(),
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response)
			return
		}

		text := ingest.Decode(raw)
		raws, err := ingest.ParseRows(text)
		if err != nil {
			_ = batch.Fail(orm.ImportBatchStatusFormatError, err.Error())
			var response = Response{
				Message: "파일 형식이 올바르지 않습니다. Invalid file format.",
				Origin:  err.Error(),
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, response)
			return
		}

		rows := ingest.NormalizeRows(raws)
		groups := ingest.BuildGroups(rows)
		_ = batch.MarkParsed(len(rows), len(groups))

		orders, processingErrors := ingest.SynthesizeAll(groups, uploader)

		result, err := orm.CommitBatch(orders)
		if err != nil {
			_ = batch.Fail(orm.ImportBatchStatusFailed, err.Error())
			var response = Response{
				Message: "작업지시 저장에 실패했습니다. Failed to persist work orders.",
				Origin:  err.Error(),
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response)
			return
		}
		processingErrors = append(processingErrors, result.Errors...)

		_ = batch.Finish(len(result.Created), len(processingErrors))

		sample := result.Created
		if len(sample) > sampleLimit {
			sample = sample[:sampleLimit]
		}
		c.JSON(http.StatusOK, ImportResponse{
			Success: true,
			Message: fmt.Sprintf("%d건의 작업지시가 등록되었습니다. %d work orders created.",
				len(result.Created), len(result.Created)),
			Summary: Summary{
				TotalProcessed: result.TotalProcessed,
				Created:        len(result.Created),
				Errors:         len(processingErrors),
			},
			Data: ImportData{
				Orders:           sample,
				ProcessingErrors: processingErrors,
			},
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}

// LatestImportBatch 등록자의 오늘자 최근 업로드 이력 조회
func LatestImportBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		uploader := c.DefaultQuery("uploader", "system")
		var batch orm.ImportBatch
		if err := batch.GetLatest(uploader); err != nil {
			var response = Response{
				Message: "업로드 이력을 찾을 수 없습니다. Import batch not found.",
				Origin:  err.Error(),
			}
			c.AbortWithStatusJSON(http.StatusNotFound, response)
			return
		}
		c.JSON(http.StatusOK, batch)
	}
}

func readUploadFile(c *gin.Context) ([]byte, string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return nil, "", err
		}
		defer f.Close()
		data, err := ioutil.ReadAll(f)
		return data, file.Filename, err
	}
	data, err := ioutil.ReadAll(c.Request.Body)
	return data, "upload.csv", err
}
