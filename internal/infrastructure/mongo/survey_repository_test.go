package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/LimJunBeom/junbeom-sre-gcp-project/internal/survey/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSurveyRepositoryCreate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns id and write time", func(mt *mtest.T) {
		repo := NewSurveyRepository(mt.DB, "survey_responses")
		written := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return written }

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		feedback := "great"
		response := &domain.SurveyResponse{
			Name:         "Jane",
			Email:        "jane@example.com",
			Satisfaction: 5,
			Feedback:     &feedback,
			Timestamp:    "2024-06-01T10:00:00Z",
		}
		if err := repo.Create(context.Background(), response); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if _, err := primitive.ObjectIDFromHex(response.ID); err != nil {
			t.Errorf("ID %q is not an ObjectID hex: %v", response.ID, err)
		}
		if !response.CreatedAt.Equal(written) {
			t.Errorf("CreatedAt = %v, want %v", response.CreatedAt, written)
		}
	})

	mt.Run("write error leaves response untouched", func(mt *mtest.T) {
		repo := NewSurveyRepository(mt.DB, "survey_responses")

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "document failed validation",
		}))

		response := &domain.SurveyResponse{Name: "Jane", Email: "jane@example.com", Satisfaction: 3}
		if err := repo.Create(context.Background(), response); err == nil {
			t.Fatal("expected error")
		}
		if response.ID != "" {
			t.Errorf("ID assigned on failed write: %q", response.ID)
		}
	})

	mt.Run("nil response", func(mt *mtest.T) {
		repo := NewSurveyRepository(mt.DB, "survey_responses")
		if err := repo.Create(context.Background(), nil); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestSurveyRepositoryFindRecent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes documents in server order", func(mt *mtest.T) {
		repo := NewSurveyRepository(mt.DB, "survey_responses")
		ns := mt.DB.Name() + ".survey_responses"

		newer := primitive.NewObjectID()
		older := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: newer},
				{Key: "name", Value: "Newer"},
				{Key: "email", Value: "newer@example.com"},
				{Key: "age", Value: "29"},
				{Key: "satisfaction", Value: 4},
				{Key: "timestamp", Value: "2024-06-02T00:00:00Z"},
				{Key: "createdAt", Value: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
			},
			bson.D{
				{Key: "_id", Value: older},
				{Key: "name", Value: "Older"},
				{Key: "email", Value: "older@example.com"},
				{Key: "satisfaction", Value: 2},
				{Key: "feedback", Value: "slow"},
				{Key: "timestamp", Value: "2024-06-01T00:00:00Z"},
				{Key: "createdAt", Value: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
			},
		))

		got, err := repo.FindRecent(context.Background(), 10)
		if err != nil {
			t.Fatalf("FindRecent returned error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d responses, want 2", len(got))
		}
		if got[0].ID != newer.Hex() || got[0].Name != "Newer" {
			t.Errorf("first = %+v", got[0])
		}
		if got[0].Age == nil || *got[0].Age != "29" || got[0].Feedback != nil {
			t.Errorf("optional fields of first not mapped: %+v", got[0])
		}
		if got[1].Feedback == nil || *got[1].Feedback != "slow" || got[1].Age != nil {
			t.Errorf("optional fields of second not mapped: %+v", got[1])
		}
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := NewSurveyRepository(mt.DB, "survey_responses")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".survey_responses", mtest.FirstBatch))

		got, err := repo.FindRecent(context.Background(), 5)
		if err != nil {
			t.Fatalf("FindRecent returned error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", got)
		}
	})

	mt.Run("command error", func(mt *mtest.T) {
		repo := NewSurveyRepository(mt.DB, "survey_responses")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "bad sort",
		}))

		if _, err := repo.FindRecent(context.Background(), 5); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestStoreAdminOperations(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ping, indexes and drop", func(mt *mtest.T) {
		store := NewStore(mt.Client, mt.DB.Name(), "survey_responses")

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		if err := store.Ping(context.Background()); err != nil {
			t.Fatalf("Ping returned error: %v", err)
		}

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		if err := store.EnsureIndexes(context.Background()); err != nil {
			t.Fatalf("EnsureIndexes returned error: %v", err)
		}

		if store.Surveys() == nil {
			t.Fatal("Surveys returned nil repository")
		}

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		if err := store.DropSurveys(context.Background()); err != nil {
			t.Fatalf("DropSurveys returned error: %v", err)
		}
	})
}
