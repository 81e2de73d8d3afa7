package research

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/campaign-pipeline/internal/extraction"
	"github.com/jonathan/campaign-pipeline/internal/llm"
	"github.com/jonathan/campaign-pipeline/internal/llm/llmtest"
	"github.com/jonathan/campaign-pipeline/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ReturnsTextAndCitationsInOrder(t *testing.T) {
	client := llmtest.NewFakeClient(llmtest.Response{Result: &llm.Result{
		Text: "Phones are trending toward AI features.",
		Citations: []types.Citation{
			{Title: "A", URI: "u1", Source: types.CitationWeb},
			{Title: "B", URI: "u2", Source: types.CitationRetrievedContext},
		},
	}})

	res, err := Run(context.Background(), client, "market_research", "What is trending?")
	require.NoError(t, err)

	assert.Equal(t, "Phones are trending toward AI features.", res.Text)
	require.Len(t, res.Citations, 2)
	assert.Equal(t, "A", res.Citations[0].Title)
	assert.Equal(t, "u1", res.Citations[0].URI)
	assert.Equal(t, "B", res.Citations[1].Title)
	assert.Equal(t, "u2", res.Citations[1].URI)

	reqs := client.Requests()
	require.Len(t, reqs, 1)
	assert.True(t, reqs[0].Grounding)
	assert.Nil(t, reqs[0].Schema)
	assert.Equal(t, "What is trending?", reqs[0].Prompt)
}

func TestRun_NoCitations(t *testing.T) {
	client := llmtest.NewFakeClient(llmtest.Text("Ungrounded answer"))

	res, err := Run(context.Background(), client, "market_research", "q")
	require.NoError(t, err)
	assert.NotNil(t, res.Citations)
	assert.Empty(t, res.Citations)
}

func TestRun_UpstreamFailure(t *testing.T) {
	client := llmtest.NewFakeClient(llmtest.Fail(errors.New("connection reset")))

	res, err := Run(context.Background(), client, "market_research", "q")
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, extraction.IsUpstream(err))
}

func TestRun_EmptyPrompt(t *testing.T) {
	client := llmtest.NewFakeClient()

	_, err := Run(context.Background(), client, "market_research", " ")
	require.Error(t, err)
	assert.Equal(t, 0, client.Calls())
}

func TestSources(t *testing.T) {
	out := Sources([]types.Citation{
		{Title: "A", URI: "u1"},
		{Title: "B", URI: "u2"},
	})
	assert.Equal(t, "1. A (u1)\n2. B (u2)\n", out)
	assert.Empty(t, Sources(nil))
}
