package orm

import (
	"fmt"
	"time"

	"github.com/SasukeBo/log"
	"github.com/hojin-jang/ru-order-producer/cache"
	"github.com/jinzhu/copier"
	"github.com/jinzhu/gorm"
)

const (
	ImportBatchStatusReceived    ImportBatchStatus = "Received"
	ImportBatchStatusParsed      ImportBatchStatus = "Parsed"
	ImportBatchStatusCommitted   ImportBatchStatus = "Committed"
	ImportBatchStatusFormatError ImportBatchStatus = "FormatError"
	ImportBatchStatusFailed      ImportBatchStatus = "Failed"
)

func nowDateStr() string {
	var tStr = time.Now().String()
	return tStr[:10]
}

type ImportBatchStatus string

// ImportBatch 업로드 한 건당 하나씩 남는 처리 이력
type ImportBatch struct {
	gorm.Model
	FileName     string            `gorm:"not null" json:"file_name"`      // 업로드 파일명
	FileSize     int               `json:"file_size"`                      // 파일 크기(byte)
	Uploader     string            `gorm:"not null;index" json:"uploader"` // 등록자
	RowCount     int               `json:"row_count"`                      // 데이터 행 수
	GroupCount   int               `json:"group_count"`                    // 관리번호 그룹 수
	CreatedCount int               `json:"created_count"`                  // 등록 성공 건수
	ErrorCount   int               `json:"error_count"`                    // 오류 건수
	Status       ImportBatchStatus `gorm:"not null" json:"status"`         // 처리 상태
	ErrorMessage string            `gorm:"type:TEXT" json:"error_message"` // 실패 사유
}

func (b *ImportBatch) genKey() string {
	return fmt.Sprintf("import_batch_latest_%s_%s", b.Uploader, nowDateStr())
}

// Start 배치 접수. 이력 행을 만들고 캐시에 올린다.
func (b *ImportBatch) Start() error {
	b.Status = ImportBatchStatusReceived
	if err := DB.Create(b).Error; err != nil {
		return fmt.Errorf("create import batch failed: %v", err)
	}
	if err := cache.Set(b.genKey(), *b); err != nil {
		log.Error("cache import batch failed: %v", err)
	}
	return nil
}

// MarkParsed 형식 검사 통과. 행/그룹 집계를 기록한다.
func (b *ImportBatch) MarkParsed(rows, groups int) error {
	b.RowCount = rows
	b.GroupCount = groups
	b.Status = ImportBatchStatusParsed
	if err := cache.Set(b.genKey(), *b); err != nil {
		log.Error("cache import batch failed: %v", err)
	}
	return DB.Save(b).Error
}

// Finish 커밋 완료. 집계를 반영하고 상태를 Committed로 바꾼다.
func (b *ImportBatch) Finish(created, errors int) error {
	b.CreatedCount = created
	b.ErrorCount = errors
	b.Status = ImportBatchStatusCommitted
	if err := cache.Set(b.genKey(), *b); err != nil {
		log.Error("cache import batch failed: %v", err)
	}
	return DB.Save(b).Error
}

// Fail 배치 실패 처리. 형식 오류와 트랜잭션 오류가 여기로 온다.
func (b *ImportBatch) Fail(status ImportBatchStatus, message string) error {
	b.Status = status
	b.ErrorMessage = message
	if err := cache.Set(b.genKey(), *b); err != nil {
		log.Error("cache import batch failed: %v", err)
	}
	return DB.Save(b).Error
}

// GetLatest 등록자의 오늘자 최근 배치를 가져온다.
// 캐시를 먼저 보고, 없으면 데이터베이스에서 조회한 뒤 캐시에 되올린다.
func (b *ImportBatch) GetLatest(uploader string) error {
	b.Uploader = uploader
	cacheKey := b.genKey()

	cacheValue := cache.Get(cacheKey)
	if cacheValue != nil {
		batch, ok := cacheValue.(ImportBatch)
		if ok {
			if err := copier.Copy(b, &batch); err == nil {
				return nil
			}
		}
		log.Info("cacheValue is not ImportBatch type")
	}

	if err := DB.Model(&ImportBatch{}).Where("uploader = ?", uploader).
		Order("id DESC").First(b).Error; err != nil {
		return fmt.Errorf("get latest import batch for %s failed: %v", uploader, err)
	}
	if err := cache.Set(cacheKey, *b); err != nil {
		log.Error("cache import batch failed: %v", err)
	}
	return nil
}
