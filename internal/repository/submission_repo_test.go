package repository

import (
	"context"
	"testing"
	"time"
	"winugly/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestSubmissionRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("save upserts", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "a"}}}},
		))

		sub := &model.Submission{ID: "a", SessionID: "s1", Status: model.SubmissionReady}
		require.NoError(t, repo.Save(ctx, sub))
		assert.False(t, sub.CreatedAt.IsZero())

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "update", started.CommandName)
	})

	mt.Run("save error", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		err := repo.Save(ctx, &model.Submission{ID: "a"})
		assert.Error(t, err)
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		ns := mt.DB.Name() + ".submissions"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "a"},
			{Key: "sessionId", Value: "s1"},
			{Key: "strategy", Value: "끝까지 버틴다"},
			{Key: "status", Value: "ready"},
			{Key: "report", Value: bson.D{
				{Key: "diagnosis", Value: "아직 착한 선수입니다."},
				{Key: "missions", Value: bson.A{"스코어보드만 보라"}},
			}},
		}))

		sub, err := repo.GetByID(ctx, "a")
		require.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, "s1", sub.SessionID)
		assert.Equal(t, model.SubmissionReady, sub.Status)
		require.NotNil(t, sub.Report)
		assert.Equal(t, []string{"스코어보드만 보라"}, sub.Report.Missions)
	})

	mt.Run("get missing", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		ns := mt.DB.Name() + ".submissions"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		sub, err := repo.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, sub)
	})

	mt.Run("list by session", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		ns := mt.DB.Name() + ".submissions"
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "b"}, {Key: "sessionId", Value: "s1"}, {Key: "createdAt", Value: now}},
			bson.D{{Key: "_id", Value: "a"}, {Key: "sessionId", Value: "s1"}, {Key: "createdAt", Value: now.Add(-time.Minute)}},
		))

		subs, err := repo.ListBySession(ctx, "s1", 10)
		require.NoError(t, err)
		require.Len(t, subs, 2)
		assert.Equal(t, "b", subs[0].ID)
		assert.Equal(t, now, subs[0].CreatedAt)

		started := mt.GetStartedEvent()
		require.NotNil(t, started)
		assert.Equal(t, "find", started.CommandName)
		assert.Equal(t, int64(10), started.Command.Lookup("limit").AsInt64())
	})

	mt.Run("list empty", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".submissions", mtest.FirstBatch))

		subs, err := repo.ListBySession(ctx, "nobody", 20)
		require.NoError(t, err)
		assert.NotNil(t, subs)
		assert.Empty(t, subs)
	})
}
