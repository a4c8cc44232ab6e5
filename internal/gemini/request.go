package gemini

import "google.golang.org/genai"

// ImageInput is a local image fed into an edit call.
type ImageInput struct {
	Path     string
	MIMEType string
	Data     []byte
}

// Request describes one generation or edit call against the Gemini API.
// PrimaryImage and References are nil for pure text-to-image generation.
type Request struct {
	Model        string
	Prompt       string
	AspectRatio  string
	ImageSize    string
	PrimaryImage *ImageInput
	References   []ImageInput
}

// Contents assembles the request parts in upstream order: prompt text
// first, then the primary image, then any reference images.
func (r Request) Contents() []*genai.Content {
	parts := []*genai.Part{genai.NewPartFromText(r.Prompt)}
	if r.PrimaryImage != nil {
		parts = append(parts, inlinePart(*r.PrimaryImage))
	}
	for _, ref := range r.References {
		parts = append(parts, inlinePart(ref))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

// Config builds the generation config. Both text and image modalities are
// requested so the model can annotate its output. The resolution tier is
// only understood by the pro model and is omitted elsewhere.
func (r Request) Config() *genai.GenerateContentConfig {
	imageConfig := &genai.ImageConfig{AspectRatio: r.AspectRatio}
	if r.Model == ModelPro {
		imageConfig.ImageSize = r.ImageSize
	}
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		ImageConfig:        imageConfig,
	}
}

func inlinePart(img ImageInput) *genai.Part {
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: img.MIMEType,
			Data:     img.Data,
		},
	}
}
