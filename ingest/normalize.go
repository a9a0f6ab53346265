package ingest

import (
	"regexp"
	"strconv"
	"strings"
)

// Field 정규화된 셀 값. 값이 없으면 Valid=false.
// 공백, "-", "undefined"는 값 없음으로 취급하되 "0"은 유효한 값이다.
type Field struct {
	Value string
	Valid bool
}

// Row 정규화 완료된 행, 헤더 컬럼명 -> Field
type Row map[string]Field

var (
	exponentPattern = regexp.MustCompile(`^[+-]?[0-9]+(?:\.[0-9]+)?[eE][+-]?[0-9]+$`)
	nonDigitPattern = regexp.MustCompile(`[^0-9]`)
	zeroWidthKiller = strings.NewReplacer("\u200b", "", "\u200c", "", "\u200d", "", "\ufeff", "")
)

// CleanField 공통 트림 규칙
func CleanField(s string) Field {
	v := strings.TrimSpace(s)
	if v == "" || v == "undefined" || v == "-" {
		return Field{}
	}
	return Field{Value: v, Valid: true}
}

// NormalizeTeam 운용팀명 정규화. 내부 공백과 zero-width 문자를 제거한다.
// 충돌 검사의 비교 키로도 그대로 쓰인다.
func NormalizeTeam(s string) Field {
	f := CleanField(s)
	if !f.Valid {
		return f
	}
	v := zeroWidthKiller.Replace(f.Value)
	v = strings.Join(strings.Fields(v), "")
	if v == "" {
		return Field{}
	}
	return Field{Value: v, Valid: true}
}

// NormalizeCircuit 회선번호 정규화.
// 엑셀이 지수 표기로 바꿔버린 값("4.37255E+11")을 평문 숫자로 복원한 뒤
// 숫자 이외의 문자를 모두 제거한다. float64를 거치므로 2^53을 넘는
// 회선번호는 하위 자릿수가 손실될 수 있다. 기존 시스템과 동일한 동작이며
// 후속 시스템이 이 출력에 의존하므로 고치지 않는다.
func NormalizeCircuit(s string) Field {
	f := CleanField(s)
	if !f.Valid {
		return f
	}
	v := f.Value
	if exponentPattern.MatchString(v) {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			v = strconv.FormatFloat(n, 'f', -1, 64)
		}
	}
	v = nonDigitPattern.ReplaceAllString(v, "")
	if v == "" {
		return Field{}
	}
	return Field{Value: v, Valid: true}
}

// NormalizeRows 행 전체에 필드별 정규화 규칙을 적용한다.
func NormalizeRows(raws []RawRow) []Row {
	rows := make([]Row, 0, len(raws))
	for _, raw := range raws {
		row := make(Row, len(raw))
		for col, val := range raw {
			switch col {
			case colDUTeam, colRUTeam:
				row[col] = NormalizeTeam(val)
			case colLineNumber:
				row[col] = NormalizeCircuit(val)
			default:
				row[col] = CleanField(val)
			}
		}
		rows = append(rows, row)
	}
	return rows
}
