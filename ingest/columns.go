package ingest

// 반출 파일 헤더 컬럼명
// colManagementNumber, colRUID 두 컬럼은 형식 검사용 필수 마커
const (
	colManagementNumber = "관리번호"
	colRequestDate      = "요청일"
	colDUTeam           = "DU운용팀"
	colDUOwner          = "DU담당자"
	colRUTeam           = "RU운용팀"
	colRUOwner          = "RU담당자"
	colCategory         = "구분"
	colEquipmentType    = "장비유형"
	colRUID             = "RU_ID"
	colRUName           = "RU명"
	colServiceType      = "서비스구분"
	colCoSiteCount      = "국소수"
	colConcentrator     = "집중국명"
	colLineNumber       = "회선번호"
	colMuxText          = "MUX정보"
	colMuxType          = "MUX종류"
	colRegion           = "시도"
	colSubRegion        = "시군구"
	colNeighborhood     = "읍면동"
	colLot              = "번지"
	colBuilding         = "건물명"
	colSiteNote         = "국소명"
	colRemark           = "비고"
	colDUID             = "DU_ID"
	colDUName           = "DU명"
	colChannelCard      = "채널카드"
	colPort             = "포트"
)
