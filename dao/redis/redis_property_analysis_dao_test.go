package redis

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propalyze/db"
	"propalyze/logger"
	"propalyze/models"
)

func testAnalysis() *models.PropertyAnalysis {
	return &models.PropertyAnalysis{
		PredictedPrice: 9100000,
		Investment: models.InvestmentInsights{
			History:        []models.PricePoint{{Month: "Jan", Price: 91}},
			Recommendation: "Hold",
		},
	}
}

func TestRedisPropertyAnalysisDAO_Set_Success(t *testing.T) {
	// Arrange
	mockClient := db.NewMockRedisClient()
	dao := NewRedisPropertyAnalysisDAO(mockClient, time.Minute, logger.Discard())

	// Act
	err := dao.SetPropertyAnalysis("P-1", testAnalysis())

	// Assert
	require.NoError(t, err)

	stored, err := mockClient.Get("property_analysis_v1:P-1")
	require.NoError(t, err)

	var got models.PropertyAnalysis
	require.NoError(t, json.Unmarshal([]byte(stored), &got))
	assert.Equal(t, 9100000.0, got.PredictedPrice)
}

func TestRedisPropertyAnalysisDAO_GetRoundTrip(t *testing.T) {
	dao := NewRedisPropertyAnalysisDAO(db.NewMockRedisClient(), time.Minute, logger.Discard())
	require.NoError(t, dao.SetPropertyAnalysis("P-1", testAnalysis()))

	got, err := dao.GetPropertyAnalysis("P-1")

	require.NoError(t, err)
	assert.Equal(t, testAnalysis(), got)
}

func TestRedisPropertyAnalysisDAO_Get_Miss(t *testing.T) {
	dao := NewRedisPropertyAnalysisDAO(db.NewMockRedisClient(), time.Minute, logger.Discard())

	got, err := dao.GetPropertyAnalysis("missing")

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisPropertyAnalysisDAO_Get_CorruptValue(t *testing.T) {
	mockClient := db.NewMockRedisClient()
	require.NoError(t, mockClient.Set("property_analysis_v1:P-1", "{not json", 0))
	dao := NewRedisPropertyAnalysisDAO(mockClient, time.Minute, logger.Discard())

	_, err := dao.GetPropertyAnalysis("P-1")

	assert.ErrorIs(t, err, ErrCorruptPropertyAnalysis)
}

func TestRedisPropertyAnalysisDAO_ListAndDelete(t *testing.T) {
	dao := NewRedisPropertyAnalysisDAO(db.NewMockRedisClient(), time.Minute, logger.Discard())
	require.NoError(t, dao.SetPropertyAnalysis("A", testAnalysis()))
	require.NoError(t, dao.SetPropertyAnalysis("B", testAnalysis()))

	ids, err := dao.ListCachedPropertyIDs()
	require.NoError(t, err)
	sort.Strings(ids)
	assert.Equal(t, []string{"A", "B"}, ids)

	require.NoError(t, dao.DeletePropertyAnalysis("A"))
	got, err := dao.GetPropertyAnalysis("A")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
