package speech

// Handle holds the synthesized narration for one recipe. It is created
// once per selected recipe and released whenever the selection changes.
type Handle struct {
	RecipeID string
	MimeType string
	Data     []byte
}

// NewHandle wraps WAV audio for a recipe.
func NewHandle(recipeID string, wav []byte) *Handle {
	return &Handle{
		RecipeID: recipeID,
		MimeType: "audio/wav",
		Data:     wav,
	}
}

// Release drops the audio buffer.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.Data = nil
}
