package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(target string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestSuccessEnvelope(t *testing.T) {
	w := performRequest("/probe", func(c *gin.Context) {
		Success(c, gin.H{"answer": 42})
	})

	require.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "success", resp.Message)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 42, data["answer"])
}

func TestRawModeSkipsEnvelope(t *testing.T) {
	for _, raw := range []string{"1", "true", "yes", "TRUE", "%20yes%20"} {
		w := performRequest("/probe?raw="+raw, func(c *gin.Context) {
			Success(c, gin.H{"answer": 42})
		})

		require.Equal(t, http.StatusOK, w.Code, raw)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 42, body["answer"], raw)
		assert.NotContains(t, body, "code", raw)
		assert.NotContains(t, body, "message", raw)
	}
}

func TestRawModeRejectsOtherValues(t *testing.T) {
	for _, raw := range []string{"", "0", "false", "nope"} {
		w := performRequest("/probe?raw="+raw, func(c *gin.Context) {
			Success(c, gin.H{"answer": 42})
		})

		var resp Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Message, raw)
	}
}

func TestCreatedEnvelope(t *testing.T) {
	w := performRequest("/probe", func(c *gin.Context) {
		Created(c, gin.H{"id": 7})
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Equal(t, "created", resp.Message)
}

func TestErrorEnvelopeOmitsData(t *testing.T) {
	w := performRequest("/probe", func(c *gin.Context) {
		BadRequest(c, "image, examId, and studentId are required")
	})

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, http.StatusBadRequest, body["code"])
	assert.Equal(t, "image, examId, and studentId are required", body["message"])
	assert.NotContains(t, body, "data")
}

func TestPayloadTooLarge(t *testing.T) {
	w := performRequest("/probe", func(c *gin.Context) {
		PayloadTooLarge(c)
	})

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
