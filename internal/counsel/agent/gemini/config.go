package gemini

import (
	"google.golang.org/genai"

	"github.com/globalgrad/counsellor/internal/counsel/agent"
)

// LiveConfig translates a session config into the Live API setup message.
// Audio out is the only modality; user speech is transcribed for logging.
func LiveConfig(cfg agent.SessionConfig) *genai.LiveConnectConfig {
	lc := &genai.LiveConnectConfig{
		ResponseModalities:      []genai.Modality{genai.ModalityAudio},
		InputAudioTranscription: &genai.AudioTranscriptionConfig{},
	}
	if cfg.Temperature > 0 {
		lc.Temperature = genai.Ptr(cfg.Temperature)
	}
	if cfg.Voice != "" || cfg.Language != "" {
		lc.SpeechConfig = &genai.SpeechConfig{LanguageCode: cfg.Language}
		if cfg.Voice != "" {
			lc.SpeechConfig.VoiceConfig = &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: cfg.Voice},
			}
		}
	}
	if cfg.Instructions != "" {
		lc.SystemInstruction = genai.NewContentFromText(cfg.Instructions, genai.RoleUser)
	}
	if decls := FunctionDeclarations(cfg.Tools); len(decls) > 0 {
		lc.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}
	return lc
}

// FunctionDeclarations converts tool declarations into OpenAPI style
// schemas. Tools without parameters get no schema at all.
func FunctionDeclarations(tools []agent.ToolDeclaration) []*genai.FunctionDeclaration {
	out := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		fd := &genai.FunctionDeclaration{
			Name:        t.Name,
			Description: t.Description,
		}
		if len(t.Parameters) > 0 {
			schema := &genai.Schema{
				Type:       genai.TypeObject,
				Properties: make(map[string]*genai.Schema, len(t.Parameters)),
			}
			for _, p := range t.Parameters {
				schema.Properties[p.Name] = &genai.Schema{
					Type:        schemaType(p.Type),
					Description: p.Description,
				}
				if p.Required {
					schema.Required = append(schema.Required, p.Name)
				}
			}
			fd.Parameters = schema
		}
		out = append(out, fd)
	}
	return out
}

func schemaType(t string) genai.Type {
	switch t {
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}
