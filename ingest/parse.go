package ingest

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/SasukeBo/log"
)

// RawRow 파싱 직후의 원본 행, 헤더 컬럼명 -> 셀 문자열
type RawRow map[string]string

// FormatError 파일 형식 오류. 배치 전체가 거부되며 이후 단계는 실행되지 않는다.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid file format: %s", e.Reason)
}

// ParseRows 텍스트를 행 목록으로 변환한다.
// 빈 줄은 버리고 첫 줄을 헤더로 사용한다. 헤더에 필수 마커 컬럼
// (관리번호, RU_ID)이 없으면 FormatError를 반환한다.
// 컬럼 수가 부족한 행은 빈 값으로 채우고, 넘치는 행은 잘라낸다.
func ParseRows(text string) ([]RawRow, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}
	if len(lines) < 2 {
		return nil, &FormatError{Reason: "파일에 데이터 행이 없습니다"}
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("CSV 파싱 실패: %v", err)}
	}
	if len(records) < 2 {
		return nil, &FormatError{Reason: "파일에 데이터 행이 없습니다"}
	}

	header := records[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	if !containsColumn(header, colManagementNumber) || !containsColumn(header, colRUID) {
		return nil, &FormatError{
			Reason: fmt.Sprintf("필수 컬럼(%s, %s)이 없습니다", colManagementNumber, colRUID),
		}
	}

	rows := make([]RawRow, 0, len(records)-1)
	for n, record := range records[1:] {
		if len(record) != len(header) {
			log.Warn("row %d has %d columns, expected %d", n+2, len(record), len(header))
			if len(record) < len(header) {
				padded := make([]string, len(header))
				copy(padded, record)
				record = padded
			} else {
				record = record[:len(header)]
			}
		}
		row := make(RawRow, len(header))
		for i, h := range header {
			row[h] = record[i]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func containsColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}
