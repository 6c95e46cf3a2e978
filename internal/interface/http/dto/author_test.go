package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Unmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"纯日期", `"1903-06-25"`, time.Date(1903, 6, 25, 0, 0, 0, 0, time.UTC)},
		{"RFC3339截断到日期", `"1965-07-31T08:30:00Z"`, time.Date(1965, 7, 31, 0, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
		{"空串", `""`, time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			require.NoError(t, json.Unmarshal([]byte(tc.input), &d))
			assert.True(t, time.Time(d).Equal(tc.want), "got %v", time.Time(d))
		})
	}
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"25/06/1903"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`19030625`), &d))
}

func TestDate_Marshal(t *testing.T) {
	data, err := json.Marshal(AuthorResponse{Name: "George Orwell", DateOfBirth: Date(time.Date(1903, 6, 25, 0, 0, 0, 0, time.UTC))})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dateOfBirth":"1903-06-25"`)

	data, err = json.Marshal(AuthorResponse{Name: "Anonymous"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"dateOfBirth":null`)
}

func TestUpdateAuthorRequest_ToEntity(t *testing.T) {
	var req UpdateAuthorRequest
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"  Eric Blair ","dateOfBirth":"1903-06-25","version":2}`), &req))

	a := req.ToEntity()
	assert.Equal(t, uint(3), a.ID)
	assert.Equal(t, "Eric Blair", a.Name)
	assert.Equal(t, uint(2), a.Version)
	assert.Equal(t, 1903, a.DateOfBirth.Year())
}
