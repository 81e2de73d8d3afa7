package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/campaign-pipeline/internal/config"
	"github.com/jonathan/campaign-pipeline/internal/llm"
	"github.com/jonathan/campaign-pipeline/internal/llm/llmtest"
	"github.com/jonathan/campaign-pipeline/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSampleBrief = `{"campaign_name":"Pix Phone 9","campaign_objectives":["awareness"],"target_audience":"photographers","media_strategy":["YouTube"],"timeline":"Q1","target_countries":["US"],"performance_metrics":["views"]}`
	testNewBrief    = `{"campaign_name":"Pix Phone 10","campaign_objectives":["sales"],"target_audience":"creators","media_strategy":["Instagram"],"timeline":"Q3","target_countries":["US","FR"],"performance_metrics":["CTR"]}`
	testAdCopy      = `{"ad_copy_options":["Shoot like a pro","Photographiez comme un pro"],"localization_notes":["casual","vous"],"visual_description":["skyline","café"]}`
)

// useFakeClient swaps the model client constructor for the duration of the test
func useFakeClient(t *testing.T, fake *llmtest.FakeClient) {
	t.Helper()
	orig := newLLMClient
	newLLMClient = func(context.Context, *config.Config) (llm.Client, error) {
		return fake, nil
	}
	t.Cleanup(func() { newLLMClient = orig })
}

func writeBriefFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brief.txt")
	require.NoError(t, os.WriteFile(path, []byte("Campaign: Pix Phone 9 launch\nMarkets: US\n"), 0644))
	return path
}

func researchReply() llmtest.Response {
	return llmtest.Response{Result: &llm.Result{
		Text:      "Creators prefer short video.",
		Citations: []types.Citation{{Title: "A", URI: "u1", Source: types.CitationWeb}},
	}}
}

func TestRunCampaign_WritesOutputs(t *testing.T) {
	fake := llmtest.NewFakeClient(
		llmtest.Text(testSampleBrief),
		researchReply(),
		llmtest.Text(testNewBrief),
		llmtest.Text(testAdCopy),
		llmtest.Text("Scene 1: sunrise"),
	)
	useFakeClient(t, fake)

	briefPath := writeBriefFile(t)
	outDir := filepath.Join(t.TempDir(), "out")
	cfg := &config.Config{Brief: briefPath, LogLevel: "error", LogFormat: "console"}

	var stdout, stderr bytes.Buffer
	err := runCampaign(context.Background(), cfg, outDir, &stdout, &stderr)
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "Reading marketing brief from: "+briefPath)
	assert.Contains(t, output, "Sources:\n1. A (u1)")
	assert.Contains(t, output, "CAMPAIGN PIPELINE COMPLETE")
	assert.True(t, fake.Closed())

	// the document is sent inline with a detected media type
	doc := fake.Requests()[0].Attachments[0]
	assert.Equal(t, "text/plain", doc.MIMEType)
	assert.NotEmpty(t, doc.Data)

	// the built-in product is used when no product file is configured
	assert.Contains(t, fake.Requests()[2].Prompt, "Pix Phone 10")

	for _, name := range []string{fileSampleBrief, fileMarketResearch, fileCampaignBrief, fileAdCopy, fileStoryboard} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	content, err := os.ReadFile(filepath.Join(outDir, fileAdCopy))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Photographiez comme un pro")
}

func TestRunCampaign_FailureKeepsCompletedOutputs(t *testing.T) {
	fake := llmtest.NewFakeClient(
		llmtest.Text(testSampleBrief),
		llmtest.Fail(errors.New("429 resource exhausted")),
	)
	useFakeClient(t, fake)

	outDir := t.TempDir()
	cfg := &config.Config{Brief: writeBriefFile(t), LogLevel: "error"}

	var stdout, stderr bytes.Buffer
	err := runCampaign(context.Background(), cfg, outDir, &stdout, &stderr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "market_research")

	assert.FileExists(t, filepath.Join(outDir, fileSampleBrief))
	assert.NoFileExists(t, filepath.Join(outDir, fileMarketResearch))
	assert.NoFileExists(t, filepath.Join(outDir, fileCampaignBrief))
	assert.Contains(t, stdout.String(), "CAMPAIGN PIPELINE HALTED")
}

func TestRunCampaign_BadBrief(t *testing.T) {
	fake := llmtest.NewFakeClient()
	useFakeClient(t, fake)

	cfg := &config.Config{Brief: filepath.Join(t.TempDir(), "missing.pdf")}
	err := runCampaign(context.Background(), cfg, "", &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve brief")
	assert.Zero(t, fake.Calls())
}

func TestRunCampaign_MissingCredentials(t *testing.T) {
	cfg := &config.Config{Brief: writeBriefFile(t)}
	err := runCampaign(context.Background(), cfg, "", &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvProject)
}

func TestRunCommand_MissingBrief(t *testing.T) {
	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "run")
	var env []string
	for _, e := range os.Environ() {
		if !strings.HasPrefix(e, config.EnvProject+"=") && !strings.HasPrefix(e, config.EnvAPIKey+"=") {
			env = append(env, e)
		}
	}
	cmd.Env = env
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "a sample brief document is required")
}
