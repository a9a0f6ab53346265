package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hojin-jang/ru-order-producer/orm"
)

const defaultTeam = "기타"

// SynthesizeAll 그룹 전체를 작업지시로 변환한다.
// 한 그룹의 변환 실패는 오류 목록에 남기고 나머지 그룹은 계속 진행한다.
func SynthesizeAll(groups []*Group, createdBy string) ([]*orm.WorkOrder, []string) {
	var orders []*orm.WorkOrder
	var errs []string
	for _, group := range groups {
		pair, err := BuildOrders(group, createdBy)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		orders = append(orders, pair...)
	}
	return orders, errs
}

// BuildOrders 그룹 하나에서 DU측/RU측 작업지시 두 건을 만든다.
// RU 목록은 RU_ID가 있는 행으로만 구성하고, 대표 RU는 장비명 명명규칙상
// A 유닛을 우선, 없으면 첫 번째 요소를 사용한다.
// 파생 중 오류가 나면 해당 그룹만 실패 처리하고 나머지 그룹은 계속된다.
func BuildOrders(group *Group, createdBy string) (orders []*orm.WorkOrder, err error) {
	defer func() {
		if r := recover(); r != nil {
			orders = nil
			err = fmt.Errorf("synthesize orders for %s failed: %v", group.BaseKey, r)
		}
	}()

	var ruList orm.RuInfoList
	for _, row := range group.Rows {
		id := row[colRUID]
		if !id.Valid {
			continue
		}
		ruList = append(ruList, orm.RuElement{
			RuID:        id.Value,
			RuName:      row[colRUName].Value,
			ChannelCard: row[colChannelCard].Value,
			Port:        row[colPort].Value,
			ServiceType: row[colServiceType].Value,
		})
	}

	var rep *orm.RuElement
	for i := range ruList {
		if isRepresentativeName(ruList[i].RuName) {
			rep = &ruList[i]
			break
		}
	}
	if rep == nil && len(ruList) > 0 {
		rep = &ruList[0]
	}

	first := group.Rows[0]

	coSiteCount := len(ruList)
	if c := first[colCoSiteCount]; c.Valid {
		if n, convErr := strconv.Atoi(c.Value); convErr == nil {
			coSiteCount = n
		}
	}

	equipmentType := "5G"
	if t := first[colEquipmentType]; t.Valid {
		equipmentType = t.Value
	}

	base := orm.WorkOrder{
		RequestDate:        first[colRequestDate].Value,
		Category:           first[colCategory].Value,
		EquipmentType:      equipmentType,
		ConcentratorName5G: first[colConcentrator].Value,
		CoSiteCount5G:      coSiteCount,
		RuInfoList:         ruList,
		MuxInfo: orm.MuxInfo{
			Text: first[colMuxText].Value,
			Type: first[colMuxType].Value,
		},
		LineNumber: first[colLineNumber].Value,
		DUID:       first[colDUID].Value,
		DUName:     first[colDUName].Value,
		Status:     orm.WorkOrderStatusPending,
		CreatedBy:  createdBy,
	}
	if rep != nil {
		base.RepresentativeRuID = rep.RuID
		base.ChannelCard = rep.ChannelCard
		base.Port = rep.Port
		base.ServiceType = rep.ServiceType
	} else if t := first[colServiceType]; t.Valid {
		base.ServiceType = t.Value
	}

	du := base
	du.ManagementNumber = group.BaseKey + suffixDU
	du.WorkType = orm.WorkTypeDU
	du.OperationTeam = teamOrDefault(group.DUTeam)
	du.EquipmentName = firstNonEmpty(
		first[colConcentrator].Value, first[colDUName].Value, group.BaseKey)

	ru := base
	ru.ManagementNumber = group.BaseKey + suffixRU
	ru.WorkType = orm.WorkTypeRU
	ru.OperationTeam = teamOrDefault(group.RUTeam)
	ru.EquipmentName = group.BaseKey
	if rep != nil {
		ru.EquipmentName = firstNonEmpty(rep.RuName, rep.RuID, group.BaseKey)
	}
	// 현장 주소는 RU측 작업지시에만 붙는다
	ru.ServiceLocation = joinPresent(first,
		colRegion, colSubRegion, colNeighborhood, colLot, colBuilding, colSiteNote)

	return []*orm.WorkOrder{&du, &ru}, nil
}

// isRepresentativeName 국소 대표 유닛 명명 규칙.
// 구분자로 끝나는 A 토큰("..._A", "...-A", "... A", "A") 또는
// "_A_"/"32T_A" 패턴을 대표로 본다. 대소문자 구분 없음.
func isRepresentativeName(name string) bool {
	u := strings.ToUpper(strings.TrimSpace(name))
	if u == "" {
		return false
	}
	if u == "A" ||
		strings.HasSuffix(u, "_A") ||
		strings.HasSuffix(u, "-A") ||
		strings.HasSuffix(u, " A") {
		return true
	}
	return strings.Contains(u, "_A_") || strings.Contains(u, "32T_A")
}

func teamOrDefault(team Field) string {
	if team.Valid {
		return team.Value
	}
	return defaultTeam
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinPresent(row Row, cols ...string) string {
	var parts []string
	for _, col := range cols {
		if f := row[col]; f.Valid {
			parts = append(parts, f.Value)
		}
	}
	return strings.Join(parts, " ")
}
