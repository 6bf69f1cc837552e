package service

import (
	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/pkg/errors"
)

const (
	VoiceNavigatorAgentName = "voice_ui_navigator"
	BasicSearchAgentName    = "basic_search_agent"

	AnalyzeScreenshotToolName = "analyze_screenshot"
	GoogleSearchToolName      = "google_search"

	NavigatorVoice = "Puck"
)

const voiceNavigatorInstruction = `You are a Voice UI Navigator — a hands-free research assistant
that can see the user's screen and search the web.

## Your Capabilities
1. **Screen Analysis**: When the user shares a screenshot, call ` + "`analyze_screenshot`" + `
   to understand what is visible. Describe what you see before taking action.
2. **Web Research**: Use ` + "`google_search`" + ` to find information on any topic.
3. **Navigation Planning**: Based on what you see and what the user wants,
   suggest clear step-by-step actions they can take.

## How to Respond
- Always speak naturally — you are having a voice conversation.
- When analyzing a screenshot: describe the page type, key content, and
  what actions are available to the user.
- When searching: summarize the key findings concisely.
- Suggest specific next steps the user can take.
- Keep responses under 3-4 sentences unless detail is requested.

## Important Rules
- NEVER attempt to access the DOM, JavaScript, or any browser APIs.
- You interpret screens visually only, exactly as a human would.
- If no screenshot has been shared, politely ask the user to attach one.
- If you cannot find information via search, say so honestly.
`

// NewVoiceNavigatorAgent is the live, voice-enabled navigator: screenshot
// analysis plus web search, answering with the Puck voice.
func NewVoiceNavigatorAgent() *models.AgentConfig {
	return &models.AgentConfig{
		Name:  VoiceNavigatorAgentName,
		Model: "gemini-2.0-flash-live-001",
		Description: "A voice-powered research assistant that sees your browser screen, " +
			"interprets the UI using Gemini vision, performs Google searches, " +
			"and speaks results back to you in real time.",
		Instruction: voiceNavigatorInstruction,
		Tools:       []string{AnalyzeScreenshotToolName, GoogleSearchToolName},
		GenerateContentConfig: &models.GenerateContentConfig{
			SpeechConfig: &models.SpeechConfig{
				VoiceConfig: &models.VoiceConfig{
					PrebuiltVoiceConfig: &models.PrebuiltVoiceConfig{VoiceName: NavigatorVoice},
				},
			},
		},
	}
}

// NewBasicSearchAgent is the text-only research agent.
func NewBasicSearchAgent() *models.AgentConfig {
	return &models.AgentConfig{
		Name:        BasicSearchAgentName,
		Model:       "gemini-1.5-flash",
		Description: "Agent to answer questions using Google Search.",
		Instruction: "You are an expert researcher. You always stick to the facts.",
		Tools:       []string{GoogleSearchToolName},
	}
}

// AgentRegistry is a read-only, ordered set of agent configurations.
type AgentRegistry struct {
	order  []string
	agents map[string]*models.AgentConfig
}

func NewAgentRegistry(configs ...*models.AgentConfig) (*AgentRegistry, error) {
	r := &AgentRegistry{agents: make(map[string]*models.AgentConfig, len(configs))}
	for _, c := range configs {
		if c.Name == "" {
			return nil, errors.New(`agent name is empty`)
		}
		if _, dup := r.agents[c.Name]; dup {
			return nil, errors.Errorf(`agent %q registered twice`, c.Name)
		}
		r.order = append(r.order, c.Name)
		r.agents[c.Name] = c
	}
	return r, nil
}

// DefaultAgents registers the voice navigator and the basic search agent.
func DefaultAgents() *AgentRegistry {
	r, _ := NewAgentRegistry(NewVoiceNavigatorAgent(), NewBasicSearchAgent())
	return r
}

func (r *AgentRegistry) Get(name string) (*models.AgentConfig, error) {
	c, ok := r.agents[name]
	if !ok {
		return nil, errors.Errorf(`agent %q: %w`, name, errors.ErrUnknownAgent)
	}
	return c, nil
}

// List returns the configurations in registration order.
func (r *AgentRegistry) List() []*models.AgentConfig {
	out := make([]*models.AgentConfig, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.agents[name])
	}
	return out
}
