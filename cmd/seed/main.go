package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/config"
	mongodoc "github.com/LimJunBeom/junbeom-sre-gcp-project/internal/infrastructure/mongo"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/application"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type seedOptions struct {
	envFile         string
	responseCount   int
	dropCollections bool
	randomSeed      int64
}

var (
	firstNames = []string{"Alex", "Jordan", "Minji", "Sora", "Taylor", "Haruto", "Jiwoo", "Sam", "Riley", "Yuna"}
	lastNames  = []string{"Kim", "Lee", "Park", "Tanaka", "Smith", "Garcia", "Chen", "Sato", "Choi", "Brown"}
	domains    = []string{"example.com", "mail.example.org", "survey.test"}
	feedbacks  = []string{
		"Quick and easy to fill out.",
		"The results page is really helpful.",
		"Could use more questions.",
		"Loading was a bit slow today.",
		"Great experience overall!",
		"Not sure what the survey was for.",
	}
	// 満足度は高めに偏らせる。
	satisfactionWeights = []int{1, 2, 4, 6, 5}
)

func main() {
	opts := parseFlags()
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
			logrus.Fatalf("環境変数の読み込みに失敗しました: %v", err)
		}
	}

	cfg := config.Load()
	if err := run(cfg, opts); err != nil {
		cfg.ServerLog.Fatal(err)
	}
}

// run は接続から投入までを行い、defer による切断が必ず実行されるようエラーを返す。
func run(cfg config.Config, opts seedOptions) error {
	logger := cfg.ServerLog

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	store, err := mongodoc.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.SurveyCollection)
	if err != nil {
		return fmt.Errorf("MongoDB 接続に失敗しました: %w", err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.WithError(err).Warn("MongoDB 切断時にエラー")
		}
	}()

	if opts.dropCollections {
		if err := store.DropSurveys(ctx); err != nil {
			return fmt.Errorf("コレクション削除に失敗しました: %w", err)
		}
		logger.Info("既存コレクションを削除しました")
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("インデックス作成に失敗しました: %w", err)
	}

	rng := rand.New(rand.NewSource(opts.randomSeed))
	commands := generateSubmissions(rng, opts.responseCount)

	service := application.NewSurveyCommandService(store.Surveys())
	inserted := 0
	for _, cmd := range commands {
		if _, err := service.Submit(ctx, cmd); err != nil {
			return fmt.Errorf("回答データの挿入に失敗しました (%d 件投入済み): %w", inserted, err)
		}
		inserted++
	}

	logger.WithFields(logrus.Fields{
		"responses":  inserted,
		"database":   cfg.MongoDatabase,
		"collection": cfg.SurveyCollection,
		"seed":       opts.randomSeed,
	}).Info("Seed 完了")
	return nil
}

func parseFlags() seedOptions {
	var opts seedOptions
	flag.StringVar(&opts.envFile, "env", ".env", "読み込む env ファイルのパス")
	flag.IntVar(&opts.responseCount, "responses", 50, "生成する回答数")
	flag.BoolVar(&opts.dropCollections, "drop", false, "既存コレクションを削除してから投入する")
	defaultSeed := time.Now().UnixNano()
	flag.Int64Var(&opts.randomSeed, "seed", defaultSeed, "乱数シード（再現用）")
	flag.Parse()

	if opts.responseCount <= 0 {
		logrus.Fatal("responses は 1 以上を指定してください")
	}
	return opts
}

// generateSubmissions は入力検証を通過するランダムな回答を count 件生成する。
func generateSubmissions(rng *rand.Rand, count int) []application.SubmitSurveyCommand {
	commands := make([]application.SubmitSurveyCommand, 0, count)
	for i := 0; i < count; i++ {
		first := pick(rng, firstNames)
		last := pick(rng, lastNames)

		cmd := application.SubmitSurveyCommand{
			Name:         first + " " + last,
			Email:        fmt.Sprintf("%s.%s%d@%s", strings.ToLower(first), strings.ToLower(last), i, pick(rng, domains)),
			Satisfaction: strconv.Itoa(weightedSatisfaction(rng)),
		}
		if rng.Intn(3) > 0 {
			cmd.Age = strconv.Itoa(18 + rng.Intn(50))
		}
		if rng.Intn(2) == 0 {
			cmd.Feedback = pick(rng, feedbacks)
		}
		commands = append(commands, cmd)
	}
	return commands
}

func weightedSatisfaction(rng *rand.Rand) int {
	total := 0
	for _, w := range satisfactionWeights {
		total += w
	}
	n := rng.Intn(total)
	for i, w := range satisfactionWeights {
		if n < w {
			return i + 1
		}
		n -= w
	}
	return len(satisfactionWeights)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
