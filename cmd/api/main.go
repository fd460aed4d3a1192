package main

import (
	"context"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/config"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/infrastructure/memory"
	mongodoc "github.com/LimJunBeom/junbeom-sre-gcp-project/internal/infrastructure/mongo"
	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/server"
)

func main() {
	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		cfg.ServerLog.WithError(err).Fatal("ストアの初期化に失敗しました")
	}

	app := server.New(cfg, store)
	if err := app.Run(); err != nil {
		cfg.ServerLog.WithError(err).Fatal("サーバー起動に失敗")
	}
}

func openStore(cfg config.Config) (server.Store, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		cfg.ServerLog.Warn("メモリストアで起動します。再起動でデータは失われます")
		return memory.NewStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	store, err := mongodoc.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.SurveyCollection)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		cfg.ServerLog.WithError(err).Warn("インデックス作成に失敗しました")
	}
	return store, nil
}
