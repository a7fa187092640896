package service

import "errors"

// 各service共用的哨兵错误，handler据此选择HTTP状态码
var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("permission denied")
)
