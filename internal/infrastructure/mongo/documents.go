package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SurveyResponseDocument はアンケート回答 1 件を表す Mongo ドキュメント。
// 任意項目 (age / feedback) は未入力なら保存しない。
type SurveyResponseDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Age          *string            `bson:"age,omitempty"`
	Satisfaction int                `bson:"satisfaction"`
	Feedback     *string            `bson:"feedback,omitempty"`
	Timestamp    string             `bson:"timestamp"`
	CreatedAt    time.Time          `bson:"createdAt"`
}
