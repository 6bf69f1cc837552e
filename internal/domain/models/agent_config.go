package models

type PrebuiltVoiceConfig struct {
	VoiceName string `json:"voice_name"`
}

type VoiceConfig struct {
	PrebuiltVoiceConfig *PrebuiltVoiceConfig `json:"prebuilt_voice_config,omitempty"`
}

type SpeechConfig struct {
	VoiceConfig *VoiceConfig `json:"voice_config,omitempty"`
}

type GenerateContentConfig struct {
	SpeechConfig *SpeechConfig `json:"speech_config,omitempty"`
}

// AgentConfig is the declarative description a host reads to build a
// runnable agent. Tools are referenced by name, in the order they are offered
// to the model.
type AgentConfig struct {
	Name                  string                 `json:"name"`
	Model                 string                 `json:"model"`
	Description           string                 `json:"description"`
	Instruction           string                 `json:"instruction"`
	Tools                 []string               `json:"tools"`
	GenerateContentConfig *GenerateContentConfig `json:"generate_content_config,omitempty"`
}

// HasTool reports whether the agent offers the named tool.
func (c *AgentConfig) HasTool(name string) bool {
	for _, t := range c.Tools {
		if t == name {
			return true
		}
	}
	return false
}

// VoiceName returns the prebuilt voice, or "" for text-only agents.
func (c *AgentConfig) VoiceName() string {
	g := c.GenerateContentConfig
	if g == nil || g.SpeechConfig == nil || g.SpeechConfig.VoiceConfig == nil || g.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig == nil {
		return ""
	}
	return g.SpeechConfig.VoiceConfig.PrebuiltVoiceConfig.VoiceName
}
