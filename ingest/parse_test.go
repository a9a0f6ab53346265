package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	text := "관리번호,RU_ID,RU명\n" +
		"\n" +
		"ULS-001_RU,RU-01,울산교_32T_A\n" +
		"\r\n" +
		"ULS-001_RU,RU-02,울산교_32T_B\n"

	rows, err := ParseRows(text)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ULS-001_RU", rows[0]["관리번호"])
	assert.Equal(t, "RU-01", rows[0]["RU_ID"])
	assert.Equal(t, "울산교_32T_B", rows[1]["RU명"])
}

func TestParseRowsQuotedDelimiter(t *testing.T) {
	text := "관리번호,RU_ID,비고\n" +
		"ULS-001,RU-01,\"승인 대기, 재협의 필요\"\n"

	rows, err := ParseRows(text)
	require.NoError(t, err)
	assert.Equal(t, "승인 대기, 재협의 필요", rows[0]["비고"])
}

func TestParseRowsPadsAndTruncates(t *testing.T) {
	text := "관리번호,RU_ID,RU명\n" +
		"ULS-001,RU-01\n" +
		"ULS-002,RU-02,name,extra\n"

	rows, err := ParseRows(text)
	require.NoError(t, err)
	assert.Equal(t, "", rows[0]["RU명"])
	assert.Equal(t, "name", rows[1]["RU명"])
}

func TestParseRowsRejectsMissingMarkerColumn(t *testing.T) {
	// RU_ID 마커 컬럼이 없으면 전체 거부
	text := "관리번호,RU명\nULS-001,울산교_A\n"

	rows, err := ParseRows(text)
	require.Error(t, err)
	assert.Nil(t, rows)
	_, ok := err.(*FormatError)
	assert.True(t, ok)
}

func TestParseRowsRejectsHeaderOnly(t *testing.T) {
	_, err := ParseRows("관리번호,RU_ID\n")
	require.Error(t, err)
	_, ok := err.(*FormatError)
	assert.True(t, ok)

	_, err = ParseRows("")
	require.Error(t, err)
}

func TestParseRowsStripsBOM(t *testing.T) {
	text := "\ufeff관리번호,RU_ID\nULS-001,RU-01\n"
	rows, err := ParseRows(text)
	require.NoError(t, err)
	assert.Equal(t, "ULS-001", rows[0]["관리번호"])
}
