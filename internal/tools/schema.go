package tools

import "github.com/invopop/jsonschema"

// Input shapes for the tools. Schemas are derived by reflection, so the
// jsonschema tags here are the single source of truth for what clients see.

// ConfigureInput configures the API key for the session.
type ConfigureInput struct {
	APIKey string `json:"apiKey" jsonschema_description:"Gemini API key to use for all subsequent image operations."`
}

// GenerateInput creates a new image from a text prompt.
type GenerateInput struct {
	Prompt      string `json:"prompt" jsonschema_description:"Text description of the image to generate."`
	AspectRatio string `json:"aspectRatio,omitempty" jsonschema:"enum=1:1,enum=2:3,enum=3:2,enum=3:4,enum=4:3,enum=4:5,enum=5:4,enum=9:16,enum=16:9,enum=21:9,default=4:3" jsonschema_description:"Aspect ratio of the generated image."`
	ImageSize   string `json:"imageSize,omitempty" jsonschema:"enum=1K,enum=2K,enum=4K,default=1K" jsonschema_description:"Resolution tier. Only honored by the pro model variant."`
}

// EditInput transforms an existing image according to a prompt.
type EditInput struct {
	ImagePath       string   `json:"imagePath" jsonschema_description:"Absolute path of the image to edit."`
	Prompt          string   `json:"prompt" jsonschema_description:"Text description of the edit to apply."`
	ReferenceImages []string `json:"referenceImages,omitempty" jsonschema_description:"Optional paths of additional images to guide the edit. Unreadable entries are skipped."`
	AspectRatio     string   `json:"aspectRatio,omitempty" jsonschema:"enum=1:1,enum=2:3,enum=3:2,enum=3:4,enum=4:3,enum=4:5,enum=5:4,enum=9:16,enum=16:9,enum=21:9,default=4:3" jsonschema_description:"Aspect ratio of the edited image."`
	ImageSize       string   `json:"imageSize,omitempty" jsonschema:"enum=1K,enum=2K,enum=4K,default=1K" jsonschema_description:"Resolution tier. Only honored by the pro model variant."`
}

// ContinueInput edits the most recently produced image of this session.
type ContinueInput struct {
	Prompt          string   `json:"prompt" jsonschema_description:"Text description of the edit to apply to the last image."`
	ReferenceImages []string `json:"referenceImages,omitempty" jsonschema_description:"Optional paths of additional images to guide the edit. Unreadable entries are skipped."`
	AspectRatio     string   `json:"aspectRatio,omitempty" jsonschema:"enum=1:1,enum=2:3,enum=3:2,enum=3:4,enum=4:3,enum=4:5,enum=5:4,enum=9:16,enum=16:9,enum=21:9,default=4:3" jsonschema_description:"Aspect ratio of the edited image."`
	ImageSize       string   `json:"imageSize,omitempty" jsonschema:"enum=1K,enum=2K,enum=4K,default=1K" jsonschema_description:"Resolution tier. Only honored by the pro model variant."`
}

// EmptyInput is used by tools that take no arguments.
type EmptyInput struct{}

// GenerateSchema reflects a JSON schema from an input struct. Fields
// without omitempty in their json tag are marked required.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	schema.Version = "" // clients expect a bare object schema
	return schema
}

// Definition is one entry of the tools/list result.
type Definition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// Definitions returns the tool catalogue in a fixed order.
func Definitions() []Definition {
	return []Definition{
		{
			Name:        "configure_gemini_token",
			Description: "Store a Gemini API key for this and future sessions. The key is validated to be non-empty, kept in memory, and saved to gemini-token.json in the server's working directory.",
			InputSchema: GenerateSchema[ConfigureInput](),
		},
		{
			Name:        "generate_image",
			Description: "Generate an image from a text prompt. The image is saved to the output directory and returned inline.",
			InputSchema: GenerateSchema[GenerateInput](),
		},
		{
			Name:        "edit_image",
			Description: "Edit an existing image according to a text prompt, optionally guided by reference images. The result is saved to the output directory and returned inline.",
			InputSchema: GenerateSchema[EditInput](),
		},
		{
			Name:        "get_configuration_status",
			Description: "Report whether an API key is configured and where it came from.",
			InputSchema: GenerateSchema[EmptyInput](),
		},
		{
			Name:        "continue_editing",
			Description: "Apply a further edit to the most recently generated or edited image of this session.",
			InputSchema: GenerateSchema[ContinueInput](),
		},
		{
			Name:        "get_last_image_info",
			Description: "Report the path and file details of the most recently saved image of this session.",
			InputSchema: GenerateSchema[EmptyInput](),
		},
	}
}
