package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeeds(t *testing.T) {
	assert.NotZero(t, NewSeed())
	assert.Equal(t, int64(42), SeedOrNew(42))
	assert.NotZero(t, SeedOrNew(0))
}

func TestResponseEnvelopes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Fail(c, http.StatusBadRequest, "invalid input", gin.H{"field": "N"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 400, body.Code)
	assert.Equal(t, "invalid input", body.Message)
	assert.Equal(t, map[string]interface{}{"field": "N"}, body.Data)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	SuccessWithPagination(c, []int{}, 0, 1, 10)
	assert.JSONEq(t, `{"code":200,"message":"success","data":[],"totalCount":0,"currentPage":1,"pageSize":10}`, w.Body.String())
}

func TestTrimNames(t *testing.T) {
	assert.Equal(t, []string{"Rice", "Wheat"}, TrimNames([]string{" Rice ", "", "  ", "Wheat"}))
	assert.Empty(t, TrimNames(nil))
}
