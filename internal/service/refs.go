package service

import (
	"errors"
	"fmt"
	"math"
	"proctor_guard_backend/internal/repository"
	"proctor_guard_backend/internal/util"
	"strconv"

	"gorm.io/gorm"
)

// ResolveStudentRef 把松散类型的学生引用规约成整数 id。
// 前端各页面传来的形态不一：JSON 数字解码后是 float64，
// 旧页面会传数字字符串。非整数值一律拒绝。
func ResolveStudentRef(value interface{}) (uint, error) {
	id, err := coerceID(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", util.ErrInvalidStudentRef, value)
	}
	return id, nil
}

// ResolveExamRef 把考试引用解析成已存在考试的 id。
// 数字形态先按 id 查，查不到再按 code 兜底；非数字字符串直接按 code 查。
func ResolveExamRef(examRepo *repository.ExamRepository, value interface{}) (uint, error) {
	switch v := value.(type) {
	case string:
		if id, err := coerceID(v); err == nil {
			exam, ferr := examRepo.FindByID(id)
			if ferr == nil {
				return exam.ID, nil
			}
			if !errors.Is(ferr, gorm.ErrRecordNotFound) {
				return 0, ferr
			}
		}
		exam, err := examRepo.FindByCode(v)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: %q", util.ErrExamNotFound, v)
			}
			return 0, err
		}
		return exam.ID, nil
	default:
		id, err := coerceID(value)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", util.ErrInvalidExamRef, value)
		}
		exam, ferr := examRepo.FindByID(id)
		if ferr != nil {
			if errors.Is(ferr, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: %d", util.ErrExamNotFound, id)
			}
			return 0, ferr
		}
		return exam.ID, nil
	}
}

// coerceID 接受 int、整数值 float64 与纯数字字符串。
func coerceID(value interface{}) (uint, error) {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return 0, fmt.Errorf("negative id %d", v)
		}
		return uint(v), nil
	case int64:
		if v < 0 {
			return 0, fmt.Errorf("negative id %d", v)
		}
		return uint(v), nil
	case uint:
		return v, nil
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return 0, fmt.Errorf("not an integer id: %v", v)
		}
		return uint(v), nil
	case string:
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			return uint(n), nil
		}
		// "3.0" 这种浮点写法也要认
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f != math.Trunc(f) {
			return 0, fmt.Errorf("not a numeric id: %q", v)
		}
		return uint(f), nil
	default:
		return 0, fmt.Errorf("unsupported id type %T", value)
	}
}
