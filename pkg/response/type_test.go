package response_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankbot/pkg/response"
)

func TestDateTimeMarshalJSON(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 7, 0, time.Local)

	b, err := json.Marshal(struct {
		At response.DateTime `json:"at"`
	}{response.DateTime(tm)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-05-01 15:30:07"}`, string(b))
}

func TestDateTimeMarshalJSON_ConvertsToLocal(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 7, 0, time.UTC)

	b, err := json.Marshal(response.DateTime(tm))
	require.NoError(t, err)
	assert.Equal(t, `"`+tm.Local().Format(response.DateTimeFormat)+`"`, string(b))
}

func TestDateTimeUnmarshalJSON(t *testing.T) {
	tm := time.Date(2024, 5, 1, 15, 30, 7, 0, time.Local)

	b, err := json.Marshal(response.DateTime(tm))
	require.NoError(t, err)

	var got response.DateTime
	require.NoError(t, json.Unmarshal(b, &got))
	assert.True(t, tm.Equal(time.Time(got)))
}

func TestDateTimeUnmarshalJSON_RejectsBadInput(t *testing.T) {
	for _, raw := range []string{`"2024-05-01T15:30:07Z"`, `12`, `"yesterday"`} {
		var got response.DateTime
		assert.Error(t, json.Unmarshal([]byte(raw), &got), raw)
	}
}
