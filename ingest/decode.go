package ingest

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Decode 업로드 파일 바이트를 텍스트로 변환한다.
// 현장 반출 파일은 대부분 EUC-KR 인코딩이므로 EUC-KR 우선 디코딩,
// 실패 시 원본 바이트를 UTF-8로 간주한다. 어떤 입력도 거부하지 않는다.
func Decode(raw []byte) string {
	decoded, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), raw)
	if err != nil || bytes.ContainsRune(decoded, utf8.RuneError) {
		return string(raw)
	}
	return string(decoded)
}
