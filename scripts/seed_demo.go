// 本地联调用的演示数据脚本
//
// 建一场演示考试（考试码 EXAM-001）和一名演示考生，前端拿考试码
// 就能直接调 /api/analyze-frame 和 /api/submit-exam。
// 重复执行安全：已存在的数据会跳过。
//
// 用法: go run scripts/seed_demo.go

package main

import (
	"errors"
	"log"
	"os"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"proctor_guard_backend/internal/config"
	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/internal/repository"
	"proctor_guard_backend/pkg/database"
	"proctor_guard_backend/pkg/logger"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	examRepo := repository.NewExamRepository(db)
	studentRepo := repository.NewStudentRepository(db)

	exam, err := examRepo.FindByCode("EXAM-001")
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		exam = &model.Exam{
			Name:           "演示考试",
			Code:           "EXAM-001",
			Duration:       90,
			TotalQuestions: 40,
		}
		if err := examRepo.Create(exam); err != nil {
			log.Fatalf("创建演示考试失败: %v", err)
		}
		log.Printf("已创建演示考试 %s (id=%d)", exam.Code, exam.ID)
	case err != nil:
		log.Fatalf("查询演示考试失败: %v", err)
	default:
		log.Printf("演示考试 %s 已存在 (id=%d)，跳过", exam.Code, exam.ID)
	}

	var existing int64
	if err := db.Model(&model.Student{}).Where("email = ?", "demo@example.com").Count(&existing).Error; err != nil {
		log.Fatalf("查询演示考生失败: %v", err)
	}
	if existing > 0 {
		log.Println("演示考生已存在，跳过")
		log.Println("完成！")
		return
	}

	student := &model.Student{
		Name:   "演示考生",
		Email:  "demo@example.com",
		ExamID: &exam.Code,
	}
	if err := studentRepo.Create(student); err != nil {
		log.Fatalf("创建演示考生失败: %v", err)
	}
	log.Printf("已创建演示考生 %s (id=%d)", student.Name, student.ID)
	log.Println("完成！")
}
