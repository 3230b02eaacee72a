// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/moya-list/internal/service"
)

var errInvalidDate = errors.New("날짜는 YYYY-MM-DD 형식으로 입력하세요")

// humanizeError turns a controller error into the overlay text.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var migrationErr *service.MigrationError
	switch {
	case errors.As(err, &migrationErr):
		return "가져오기에 실패했습니다 (" + strings.Join(migrationErr.Failed, ", ") + "). 로컬 데이터는 그대로 남아 있습니다."
	case errors.Is(err, service.ErrSessionPending):
		return "로그인 확인 중입니다. 잠시 후 다시 시도하세요."
	case errors.Is(err, service.ErrSettingsNotLoaded):
		return "설정을 불러오는 중입니다. 잠시 후 다시 시도하세요."
	case errors.Is(err, service.ErrServerUnavailable):
		return "네트워크가 없거나 서버에 연결할 수 없습니다."
	case errors.Is(err, service.ErrInvalidCredentials):
		return "아이디 또는 비밀번호가 올바르지 않습니다."
	case errors.Is(err, service.ErrLoginAlreadyExists):
		return "이미 사용 중인 아이디입니다."
	case errors.Is(err, service.ErrTooManyImages):
		return "이미지는 최대 4개까지 첨부할 수 있습니다."
	case errors.Is(err, service.ErrUnsupportedImageType):
		return "지원하지 않는 이미지 형식입니다."
	case errors.Is(err, service.ErrImageTooLarge):
		return "이미지가 너무 큽니다."
	case errors.Is(err, service.ErrRemoteNotConfigured):
		return "서버 주소가 설정되지 않아 로컬 모드로 실행 중입니다."
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "네트워크가 없거나 서버에 연결할 수 없습니다."
	}

	return err.Error()
}
