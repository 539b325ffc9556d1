package filterstate_test

import (
	"net/url"
	"testing"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/filterstate"

	"github.com/stretchr/testify/require"
)

func TestParams_RoundTrip(t *testing.T) {
	cases := []domain.FilterCriteria{
		{},
		{TitleQuery: "report"},
		{TagQuery: "urgent", Status: []string{"In Progress"}},
		{Priority: []string{"Low"}, FromDate: "2024-01-01"},
		{ToDate: "2024-01-31"},
		{
			TitleQuery: "weekly sync",
			TagQuery:   "team",
			Status:     []string{"Completed"},
			Priority:   []string{"High"},
			FromDate:   "2024-01-01",
			ToDate:     "2024-01-31",
		},
	}

	for _, criteria := range cases {
		encoded := filterstate.EncodeParams(criteria)
		decoded := filterstate.DecodeParams(encoded)
		require.Equal(t, criteria, decoded)

		reparsed, err := url.ParseQuery(encoded.Encode())
		require.NoError(t, err)
		require.Equal(t, criteria, filterstate.DecodeParams(reparsed))
	}
}

func TestEncodeParams_OmitsEmptyAndKeepsFirstValue(t *testing.T) {
	values := filterstate.EncodeParams(domain.FilterCriteria{
		TitleQuery: "  padded  ",
		TagQuery:   "   ",
		Status:     []string{"Completed", "Not Started"},
	})

	require.Equal(t, url.Values{
		"title":  {"padded"},
		"status": {"Completed"},
	}, values)
}

func TestDecodeParams_MissingParamsAreEmpty(t *testing.T) {
	criteria := filterstate.DecodeParams(url.Values{"shop": {"demo"}})
	require.True(t, criteria.IsEmpty())
	require.Nil(t, criteria.Status)
}
