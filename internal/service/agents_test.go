package service

import (
	"encoding/json"
	"testing"

	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceNavigatorAgent(t *testing.T) {
	agent := NewVoiceNavigatorAgent()

	assert.Equal(t, "voice_ui_navigator", agent.Name)
	assert.Equal(t, "gemini-2.0-flash-live-001", agent.Model)
	assert.Equal(t, []string{"analyze_screenshot", "google_search"}, agent.Tools)
	assert.Equal(t, "Puck", agent.VoiceName())
	assert.Contains(t, agent.Instruction, "analyze_screenshot")
	assert.Contains(t, agent.Instruction, "google_search")
	assert.NotEmpty(t, agent.Description)

	b, err := json.Marshal(agent.GenerateContentConfig)
	require.NoError(t, err)
	assert.JSONEq(t, `{"speech_config":{"voice_config":{"prebuilt_voice_config":{"voice_name":"Puck"}}}}`, string(b))
}

func TestBasicSearchAgent(t *testing.T) {
	agent := NewBasicSearchAgent()

	assert.Equal(t, "basic_search_agent", agent.Name)
	assert.Equal(t, "gemini-1.5-flash", agent.Model)
	assert.Equal(t, "Agent to answer questions using Google Search.", agent.Description)
	assert.Equal(t, "You are an expert researcher. You always stick to the facts.", agent.Instruction)
	assert.Equal(t, []string{"google_search"}, agent.Tools)
	assert.Nil(t, agent.GenerateContentConfig)
	assert.Empty(t, agent.VoiceName())
	assert.False(t, agent.HasTool(AnalyzeScreenshotToolName))
}

func TestAgentRegistry(t *testing.T) {
	r := DefaultAgents()

	names := []string{}
	for _, a := range r.List() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{VoiceNavigatorAgentName, BasicSearchAgentName}, names)

	got, err := r.Get(BasicSearchAgentName)
	require.NoError(t, err)
	assert.Equal(t, BasicSearchAgentName, got.Name)

	_, err = r.Get("travel_agent")
	assert.True(t, errors.Is(err, errors.ErrUnknownAgent))
}

func TestNewAgentRegistryRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name    string
		configs []*models.AgentConfig
	}{
		{name: "empty name", configs: []*models.AgentConfig{{Model: "m"}}},
		{name: "duplicate", configs: []*models.AgentConfig{NewBasicSearchAgent(), NewBasicSearchAgent()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewAgentRegistry(tt.configs...)
			assert.Error(t, err)
			assert.Nil(t, r)
		})
	}
}
