// Package ai is the gateway in front of the generative endpoints. All
// upstream failure modes (transport, non-OK status, empty payload,
// unparseable JSON) collapse to an error here; callers translate that
// into a user-visible notice and leave state untouched.
package ai

import (
	"context"
	"strings"
	"time"

	"chef-finokio/internal/core/ai/cache"
	"chef-finokio/internal/core/ai/gemini"
	"chef-finokio/internal/core/recipe"
	"chef-finokio/internal/core/speech"
	"chef-finokio/internal/infrastructure/config"
	"chef-finokio/internal/pkg/common"

	"go.uber.org/zap"
)

// Gateway bundles the Gemini client with the response cache.
type Gateway struct {
	config *config.Config
	client *gemini.Client
	cache  *cache.CacheManager
}

// NewGateway creates the gateway. cacheManager may be nil when caching
// is disabled.
func NewGateway(cfg *config.Config, client *gemini.Client, cacheManager *cache.CacheManager) *Gateway {
	return &Gateway{
		config: cfg,
		client: client,
		cache:  cacheManager,
	}
}

// GenerateRecipes runs a recipe prompt and returns the raw, untyped
// recipe candidates. A single-object reply is wrapped in a one-element
// slice.
func (g *Gateway) GenerateRecipes(ctx context.Context, prompt string) ([]recipe.RawRecipe, error) {
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, prompt); err == nil {
			if raws, err := parseRecipePayload(cached); err == nil {
				return raws, nil
			}
		}
	}

	start := time.Now()
	text, err := g.client.GenerateText(ctx, prompt)
	common.LogAICall("generate_recipes", time.Since(start), err, "")
	if err != nil {
		return nil, err
	}

	raws, err := parseRecipePayload(text)
	if err != nil {
		common.LogWarn("unparseable recipe payload",
			zap.Error(err),
			zap.Int("payload_len", len(text)),
		)
		return nil, err
	}

	if g.cache != nil {
		_ = g.cache.Set(ctx, prompt, text)
	}

	return raws, nil
}

// GenerateAdvice runs a prompt whose reply is a single JSON object
// (e.g. the sommelier pairing).
func (g *Gateway) GenerateAdvice(ctx context.Context, prompt string) (map[string]interface{}, error) {
	start := time.Now()
	text, err := g.client.GenerateText(ctx, prompt)
	common.LogAICall("generate_advice", time.Since(start), err, "")
	if err != nil {
		return nil, err
	}

	payload, err := common.ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var advice map[string]interface{}
	if err := common.ParseJSON(payload, &advice); err != nil {
		if err := common.ParseJSON(common.QuoteJSONKeys(payload), &advice); err != nil {
			return nil, err
		}
	}
	return advice, nil
}

// GenerateImage returns a generated picture as a data URI.
func (g *Gateway) GenerateImage(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	uri, err := g.client.GenerateImage(ctx, prompt)
	common.LogAICall("generate_image", time.Since(start), err, "")
	if err != nil {
		return "", err
	}
	return uri, nil
}

// GenerateSpeech synthesizes the narration text and returns playable
// WAV bytes.
func (g *Gateway) GenerateSpeech(ctx context.Context, text string) ([]byte, error) {
	start := time.Now()
	pcm, err := g.client.GenerateSpeech(ctx, text)
	common.LogAICall("generate_speech", time.Since(start), err, "")
	if err != nil {
		return nil, err
	}
	return speech.WrapPCM(pcm), nil
}

// parseRecipePayload extracts and decodes the JSON recipes out of a
// model reply. Retries with quoted keys when the first decode fails.
func parseRecipePayload(text string) ([]recipe.RawRecipe, error) {
	payload, err := common.ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	raws, err := decodeRecipes(payload)
	if err != nil {
		raws, err = decodeRecipes(common.QuoteJSONKeys(payload))
		if err != nil {
			return nil, err
		}
	}
	return raws, nil
}

func decodeRecipes(payload string) ([]recipe.RawRecipe, error) {
	if strings.HasPrefix(payload, "[") {
		var raws []recipe.RawRecipe
		if err := common.ParseJSON(payload, &raws); err != nil {
			return nil, err
		}
		return raws, nil
	}

	var raw recipe.RawRecipe
	if err := common.ParseJSON(payload, &raw); err != nil {
		return nil, err
	}
	return []recipe.RawRecipe{raw}, nil
}
