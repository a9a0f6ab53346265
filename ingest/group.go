package ingest

import (
	"strings"

	"github.com/SasukeBo/log"
)

const (
	suffixDU = "_DU"
	suffixRU = "_RU"
)

// Group 하나의 개통 건. 기준 관리번호(접미사 제거)로 묶인 행들의 집합.
// DUTeam/RUTeam은 최초 등장 값이며, 이후 행에서 다른 값이 나와도 바뀌지 않는다.
type Group struct {
	BaseKey     string
	Rows        []Row
	DUTeam      Field
	RUTeam      Field
	DUTeamsSeen map[string]bool
	RUTeamsSeen map[string]bool
}

// BaseManagementNumber 관리번호에서 측면 접미사(_DU/_RU)를 제거한 그룹 키
func BaseManagementNumber(v string) string {
	v = strings.TrimSuffix(v, suffixDU)
	return strings.TrimSuffix(v, suffixRU)
}

// BuildGroups 정규화된 행을 순서대로 접어 그룹 목록을 만든다.
// 관리번호가 없는 행은 조용히 건너뛴다(오류 아님).
// 같은 그룹에서 운용팀 값이 둘 이상 보이면 경고만 남기고 최초 값을 유지한다.
func BuildGroups(rows []Row) []*Group {
	byKey := make(map[string]*Group)
	var ordered []*Group

	for _, row := range rows {
		mgmt := row[colManagementNumber]
		if !mgmt.Valid {
			continue
		}
		base := BaseManagementNumber(mgmt.Value)
		group := byKey[base]
		if group == nil {
			group = &Group{
				BaseKey:     base,
				DUTeamsSeen: make(map[string]bool),
				RUTeamsSeen: make(map[string]bool),
			}
			byKey[base] = group
			ordered = append(ordered, group)
		}
		group.Rows = append(group.Rows, row)

		if team := row[colDUTeam]; team.Valid {
			if !group.DUTeam.Valid {
				group.DUTeam = team
			}
			group.DUTeamsSeen[team.Value] = true
			if len(group.DUTeamsSeen) > 1 {
				log.Warn("관리번호 %s: DU운용팀 값이 %d개 입니다, 최초 값 %s 유지",
					base, len(group.DUTeamsSeen), group.DUTeam.Value)
			}
		}
		if team := row[colRUTeam]; team.Valid {
			if !group.RUTeam.Valid {
				group.RUTeam = team
			}
			group.RUTeamsSeen[team.Value] = true
			if len(group.RUTeamsSeen) > 1 {
				log.Warn("관리번호 %s: RU운용팀 값이 %d개 입니다, 최초 값 %s 유지",
					base, len(group.RUTeamsSeen), group.RUTeam.Value)
			}
		}
	}
	return ordered
}
