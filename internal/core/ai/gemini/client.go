// Package gemini is a thin REST client for the Google
// generative-language API: text generation with JSON response mode,
// image generation and speech synthesis.
package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"chef-finokio/internal/infrastructure/config"
	"chef-finokio/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client calls the generative-language API over HTTP.
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient creates a Gemini client.
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Gemini.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Gemini.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	ResponseMimeType   string        `json:"responseMimeType,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	PrebuiltVoiceConfig prebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

type prebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string      `json:"text"`
				InlineData *inlineData `json:"inlineData"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText asks the text model for a structured (JSON) reply and
// returns the raw text payload of the first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
		},
	}

	result, err := c.generate(ctx, c.config.Gemini.TextModel, req)
	if err != nil {
		return "", err
	}

	for _, p := range result.Candidates[0].Content.Parts {
		if p.Text != "" {
			return p.Text, nil
		}
	}
	return "", fmt.Errorf("no text part in Gemini response")
}

// GenerateImage asks the image model for one picture and returns it as
// a data URI.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}

	result, err := c.generate(ctx, c.config.Gemini.ImageModel, req)
	if err != nil {
		return "", err
	}

	for _, p := range result.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			mime := p.InlineData.MimeType
			if mime == "" {
				mime = "image/png"
			}
			return fmt.Sprintf("data:%s;base64,%s", mime, p.InlineData.Data), nil
		}
	}
	return "", fmt.Errorf("no inline image in Gemini response")
}

// GenerateSpeech synthesizes the given text with the configured voice
// and returns the decoded raw PCM samples (24 kHz mono s16le).
func (c *Client) GenerateSpeech(ctx context.Context, text string) ([]byte, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					PrebuiltVoiceConfig: prebuiltVoiceConfig{
						VoiceName: c.config.Gemini.Voice,
					},
				},
			},
		},
	}

	result, err := c.generate(ctx, c.config.Gemini.SpeechModel, req)
	if err != nil {
		return nil, err
	}

	for _, p := range result.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			pcm, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode audio payload: %w", err)
			}
			return pcm, nil
		}
	}
	return nil, fmt.Errorf("no inline audio in Gemini response")
}

func (c *Client) generate(ctx context.Context, model string, req generateRequest) (*generateResponse, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("key", c.config.Gemini.APIKey).
		SetBody(req).
		Post(fmt.Sprintf("/models/%s:generateContent", model))

	if err != nil {
		return nil, fmt.Errorf("failed to send request to Gemini: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		common.LogWarn("Gemini returned non-OK status",
			zap.String("model", model),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("Gemini API returned error: %s", resp.String())
	}

	var result generateResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in Gemini response")
	}

	return &result, nil
}
