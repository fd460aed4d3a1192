package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SurveyRepository はアンケート回答コレクションを MongoDB で扱う実装リポジトリ。
type SurveyRepository struct {
	responses *mongo.Collection
	now       func() time.Time
}

// NewSurveyRepository は回答コレクションを束縛したリポジトリを構築する。
func NewSurveyRepository(db *mongo.Database, collection string) *SurveyRepository {
	return &SurveyRepository{
		responses: db.Collection(collection),
		now:       time.Now,
	}
}

// EnsureIndexes は最新順の取得に使う createdAt 降順インデックスを作成する。
func (r *SurveyRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.responses.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_survey_created"),
	})
	return err
}

// Create は新しい ObjectID と書き込み時刻を割り当てて回答を保存する。
// 保存に成功した場合のみ response の ID / CreatedAt を更新する。
func (r *SurveyRepository) Create(ctx context.Context, response *domain.SurveyResponse) error {
	if response == nil {
		return errors.New("survey response is nil")
	}

	doc := SurveyResponseDocument{
		ID:           primitive.NewObjectID(),
		Name:         response.Name,
		Email:        response.Email,
		Age:          response.Age,
		Satisfaction: response.Satisfaction,
		Feedback:     response.Feedback,
		Timestamp:    response.Timestamp,
		CreatedAt:    r.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.responses.InsertOne(ctx, doc); err != nil {
		return err
	}

	response.ID = doc.ID.Hex()
	response.CreatedAt = doc.CreatedAt
	return nil
}

// FindRecent は createdAt の降順で最大 limit 件の回答を返す。
func (r *SurveyRepository) FindRecent(ctx context.Context, limit int) ([]domain.SurveyResponse, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.responses.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	responses := make([]domain.SurveyResponse, 0)
	for cursor.Next(ctx) {
		var doc SurveyResponseDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		responses = append(responses, mapSurveyResponseDocument(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return responses, nil
}

func mapSurveyResponseDocument(doc SurveyResponseDocument) domain.SurveyResponse {
	return domain.SurveyResponse{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Email:        doc.Email,
		Age:          doc.Age,
		Satisfaction: doc.Satisfaction,
		Feedback:     doc.Feedback,
		Timestamp:    doc.Timestamp,
		CreatedAt:    doc.CreatedAt,
	}
}
