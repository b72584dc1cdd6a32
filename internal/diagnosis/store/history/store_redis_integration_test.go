//go:build integration

package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dirok/internal/diagnosis/store/history"
	"dirok/internal/inference/models"
	"dirok/pkg/platform/sentinel"
	"dirok/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *history.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = history.NewRedis(s.redis.Client.Client, 3, history.WithKeyPrefix("test:"))
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeRecord(name string) *models.Record {
	return &models.Record{
		ID:        models.NewDiagnosisID(),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		Profile:   models.Profile{Name: name, Age: 55, SmokingYears: 15, CigarettesPerDay: 12},
		Observations: []models.Observation{
			models.NewObservation("G01", 0.8),
		},
		Results: []models.DiagnosisResult{{
			Disease:    models.Disease{ID: "P1", Name: "Lung cancer", Severity: models.SeverityCritical},
			CF:         0.74,
			OriginalCF: 0.63,
			Percentage: 74,
		}},
	}
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	rec := makeRecord("budi")
	s.Require().NoError(s.store.Save(ctx, rec))

	found, err := s.store.FindByID(ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.ID, found.ID)
	s.True(rec.CreatedAt.Equal(found.CreatedAt))
	s.Equal(rec.Profile, found.Profile)
	s.Equal(rec.Results[0].Disease.ID, found.Results[0].Disease.ID)
	s.Equal("Lung cancer", found.PrimaryDiseaseName())
}

func (s *RedisStoreSuite) TestListNewestFirstWithEviction() {
	ctx := context.Background()
	var recs []*models.Record
	for _, name := range []string{"1", "2", "3", "4"} {
		rec := makeRecord(name)
		recs = append(recs, rec)
		s.Require().NoError(s.store.Save(ctx, rec))
	}

	list, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.Equal("4", list[0].Profile.Name)
	s.Equal("2", list[2].Profile.Name)

	_, err = s.store.FindByID(ctx, recs[0].ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *RedisStoreSuite) TestDeleteAndClear() {
	ctx := context.Background()
	a, b := makeRecord("a"), makeRecord("b")
	s.Require().NoError(s.store.Save(ctx, a))
	s.Require().NoError(s.store.Save(ctx, b))

	s.Require().NoError(s.store.Delete(ctx, a.ID))
	s.ErrorIs(s.store.Delete(ctx, a.ID), sentinel.ErrNotFound)

	list, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(b.ID, list[0].ID)

	s.Require().NoError(s.store.Clear(ctx))
	list, err = s.store.List(ctx)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *RedisStoreSuite) TestClientHealth() {
	s.NoError(s.redis.Client.Health(context.Background()))
}
