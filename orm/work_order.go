package orm

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
)

const (
	WorkTypeDU = "DU"
	WorkTypeRU = "RU"

	WorkOrderStatusPending  = "PENDING"
	WorkOrderStatusWorking  = "WORKING"
	WorkOrderStatusFinished = "FINISHED"
)

// RuElement 그룹에 속한 물리 RU 한 대의 정보
type RuElement struct {
	RuID        string `json:"ru_id"`
	RuName      string `json:"ru_name"`
	ChannelCard string `json:"channel_card"`
	Port        string `json:"port"`
	ServiceType string `json:"service_type"`
}

// RuInfoList JSON 컬럼으로 저장되는 RU 목록
type RuInfoList []RuElement

func (l RuInfoList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *RuInfoList) Scan(value interface{}) error {
	return scanJSON(value, l)
}

// MuxInfo 전송장비(MUX) 부가 정보. 이 시스템은 내용을 해석하지 않고 전달만 한다.
type MuxInfo struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

func (m MuxInfo) Value() (driver.Value, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (m *MuxInfo) Scan(value interface{}) error {
	return scanJSON(value, m)
}

func scanJSON(value interface{}, out interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, out)
	case string:
		return json.Unmarshal([]byte(v), out)
	default:
		return errors.New("unsupported type for JSON column")
	}
}

// WorkOrder 작업지시. 개통 건 하나당 DU측/RU측 두 건이 만들어진다.
type WorkOrder struct {
	gorm.Model
	ManagementNumber   string     `gorm:"not null;index" json:"management_number"` // 관리번호 + 측면 접미사
	RequestDate        string     `json:"request_date"`                            // 요청일
	WorkType           string     `gorm:"not null" json:"work_type"`               // DU | RU
	OperationTeam      string     `gorm:"not null" json:"operation_team"`          // 운용팀
	EquipmentName      string     `json:"equipment_name"`
	EquipmentType      string     `json:"equipment_type"`
	Category           string     `json:"category"`
	ServiceType        string     `json:"service_type"`
	ConcentratorName5G string     `gorm:"column:concentrator_name_5g" json:"concentrator_name_5g"` // 집중국명
	CoSiteCount5G      int        `gorm:"column:co_site_count_5g" json:"co_site_count_5g"`         // 국소수
	RuInfoList         RuInfoList `gorm:"type:JSON" json:"ru_info_list"`
	RepresentativeRuID string     `gorm:"column:representative_ru_id" json:"representative_ru_id"`
	MuxInfo            MuxInfo    `gorm:"type:JSON" json:"mux_info"`
	LineNumber         string     `json:"line_number"` // 회선번호, 숫자만
	DUID               string     `gorm:"column:du_id" json:"du_id"`
	DUName             string     `gorm:"column:du_name" json:"du_name"`
	ChannelCard        string     `json:"channel_card"`
	Port               string     `json:"port"`
	ServiceLocation    string     `json:"service_location"` // RU측에만 채워진다
	Status             string     `gorm:"not null" json:"status"`
	CreatedBy          string     `json:"created_by"`
}

// BatchResult 배치 커밋 결과
type BatchResult struct {
	Created        []*WorkOrder
	Errors         []string
	TotalProcessed int
}

// CommitBatch 작업지시 목록을 트랜잭션 하나로 저장한다.
// 개별 건의 저장 실패는 오류 목록에 쌓고 다음 건으로 진행하며,
// 루프가 끝나면 실패 건수와 무관하게 커밋한다.
// 트랜잭션 자체의 오류(begin/commit 실패, panic)만 전체 롤백 사유가 된다.
func CommitBatch(orders []*WorkOrder) (result BatchResult, err error) {
	result.TotalProcessed = len(orders)

	tx := DB.Begin()
	if tx.Error != nil {
		return BatchResult{TotalProcessed: len(orders)},
			fmt.Errorf("begin transaction failed: %v", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			result = BatchResult{TotalProcessed: len(orders)}
			err = fmt.Errorf("commit batch failed: %v", r)
		}
	}()

	for _, order := range orders {
		if createErr := tx.Create(order).Error; createErr != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("%s: 등록 실패: %v", order.ManagementNumber, createErr))
			continue
		}
		result.Created = append(result.Created, order)
	}

	if commitErr := tx.Commit().Error; commitErr != nil {
		tx.Rollback()
		return BatchResult{TotalProcessed: len(orders)},
			fmt.Errorf("commit transaction failed: %v", commitErr)
	}
	return result, nil
}
