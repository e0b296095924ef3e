package service

import "errors"

var (
	// ErrDuplicateCode 고유 코드 중복. 어떤 insert도 호출되기 전에 반환된다.
	ErrDuplicateCode = errors.New("이미 사용 중인 코드입니다")
	// ErrNotFound 대상 행 없음
	ErrNotFound = errors.New("대상을 찾을 수 없습니다")
	// ErrInvalidCredentials 로그인 실패
	ErrInvalidCredentials = errors.New("아이디 또는 비밀번호가 올바르지 않습니다")
)
