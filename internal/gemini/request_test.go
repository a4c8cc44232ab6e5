package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_ContentsOrdering(t *testing.T) {
	req := Request{
		Prompt:       "blend these",
		PrimaryImage: &ImageInput{Path: "a.png", MIMEType: "image/png", Data: []byte("primary")},
		References: []ImageInput{
			{Path: "b.jpg", MIMEType: "image/jpeg", Data: []byte("ref-1")},
			{Path: "c.webp", MIMEType: "image/webp", Data: []byte("ref-2")},
		},
	}

	contents := req.Contents()
	require.Len(t, contents, 1)
	parts := contents[0].Parts
	require.Len(t, parts, 4)

	assert.Equal(t, "blend these", parts[0].Text)
	assert.Equal(t, []byte("primary"), parts[1].InlineData.Data)
	assert.Equal(t, "image/jpeg", parts[2].InlineData.MIMEType)
	assert.Equal(t, "image/webp", parts[3].InlineData.MIMEType)
}

func TestRequest_ContentsTextOnly(t *testing.T) {
	req := Request{Prompt: "a lighthouse at dusk"}
	contents := req.Contents()
	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 1)
	assert.Equal(t, "a lighthouse at dusk", contents[0].Parts[0].Text)
}

func TestRequest_ConfigModalities(t *testing.T) {
	cfg := Request{Model: ModelFlash, AspectRatio: "16:9", ImageSize: "2K"}.Config()
	assert.Equal(t, []string{"TEXT", "IMAGE"}, cfg.ResponseModalities)
	assert.Equal(t, "16:9", cfg.ImageConfig.AspectRatio)
	assert.Empty(t, cfg.ImageConfig.ImageSize, "resolution tier is a pro-only knob")
}

func TestRequest_ConfigProImageSize(t *testing.T) {
	cfg := Request{Model: ModelPro, AspectRatio: "1:1", ImageSize: "4K"}.Config()
	assert.Equal(t, "4K", cfg.ImageConfig.ImageSize)
}
