// 手动发布问卷新版本脚本
//
// 与 POST /api/admin/lifestyle-quiz 使用同一套校验，适合首次部署或批量导入。
// 加 -dry-run 只校验不写库。
//
// 用法: go run scripts/publish_quiz.go -file quiz_v2.json [-dry-run]

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"risk_screening_backend/internal/config"
	"risk_screening_backend/internal/repository"
	"risk_screening_backend/internal/risk"
	"risk_screening_backend/internal/service"
	"risk_screening_backend/pkg/database"
	"risk_screening_backend/pkg/logger"
	"time"
)

func main() {
	file := flag.String("file", "", "问卷定义 JSON 文件")
	dryRun := flag.Bool("dry-run", false, "只校验不写入数据库")
	flag.Parse()

	if *file == "" {
		log.Fatal("必须指定 -file")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取问卷文件: %v", err)
	}

	var def risk.Definition
	if err := json.Unmarshal(data, &def); err != nil {
		log.Fatalf("解析问卷文件失败: %v", err)
	}

	validated, err := risk.NewDefinition(def.ID, def.Title, def.Description, def.Version, def.Questions, def.Scoring)
	if err != nil {
		log.Fatalf("问卷校验失败: %v", err)
	}
	max := validated.MaxByCategory()
	log.Printf("问卷 %s 校验通过：%d 题，满分 %d（primary %d / secondary %d / tertiary %d）",
		validated.ID, len(validated.Questions), validated.Scoring.MaxTotalPoints,
		max.Primary.MaxScore, max.Secondary.MaxScore, max.Tertiary.MaxScore)

	if *dryRun {
		return
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, false)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	// Redis 不可用时最新问卷缓存最迟在 TTL 到期后刷新
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Printf("Redis 不可用，跳过缓存失效: %v", err)
		rdb = nil
	}

	quizService := service.NewLifestyleQuizService(
		repository.NewLifestyleQuizRepository(db, rdb, cfg.Cache.QuizTTL()),
		repository.NewLifestyleQuizAttemptRepository(db),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	quiz, err := quizService.CreateQuiz(ctx, validated)
	if err != nil {
		log.Fatalf("发布失败: %v", err)
	}
	log.Printf("已发布问卷 %s（版本 %d）", quiz.ID, quiz.Version)
}
