package mongo

import (
	"context"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/application"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store は Mongo クライアントとその上に構築したリポジトリを束ねる。
type Store struct {
	client  *mongo.Client
	surveys *SurveyRepository
}

// Connect は Stable API v1 でクライアントを生成し Store を返す。
// 実際の疎通確認は Ping に任せる。
func Connect(ctx context.Context, uri, database, collection string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	return NewStore(client, database, collection), nil
}

// NewStore は接続済みクライアントから Store を組み立てる。
func NewStore(client *mongo.Client, database, collection string) *Store {
	return &Store{
		client:  client,
		surveys: NewSurveyRepository(client.Database(database), collection),
	}
}

func (s *Store) Surveys() application.SurveyRepository {
	return s.surveys
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	return s.surveys.EnsureIndexes(ctx)
}

// Ping はプライマリへの疎通を確認する。
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// DropSurveys は回答コレクションを削除する。seed からのみ使う。
func (s *Store) DropSurveys(ctx context.Context) error {
	return s.surveys.responses.Drop(ctx)
}
