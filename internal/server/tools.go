package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// Tool names.
const (
	ToolLanguages = "infographic_languages"
	ToolTranslate = "infographic_translate"
	ToolRender    = "infographic_render"
	ToolGenerate  = "infographic_generate"
	ToolVerify    = "infographic_verify"
)

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func languageProp() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Target language name or code",
		"enum": []string{
			"Telugu", "Hindi", "Tamil", "Kannada", "Malayalam", "Bengali",
			"te", "hi", "ta", "kn", "ml", "bn",
		},
	}
}

// renderProps are the geometry and output options shared by render and
// generate.
func renderProps() map[string]interface{} {
	return map[string]interface{}{
		"width": map[string]interface{}{
			"type":        "integer",
			"description": "Canvas width in pixels. Default 800",
			"default":     800,
		},
		"height": map[string]interface{}{
			"type":        "integer",
			"description": "Canvas height in pixels. Default 450",
			"default":     450,
		},
		"font_size": map[string]interface{}{
			"type":        "integer",
			"description": "Font size in pixels. Text that does not fit is reduced. Default 32",
			"default":     32,
		},
		"save": map[string]interface{}{
			"type":        "boolean",
			"description": "Also write <Language>_infographic.png to the server's output directory",
			"default":     false,
		},
		"preview_scale": map[string]interface{}{
			"type":        "number",
			"description": "Return a resized copy instead of the full image (e.g., 0.5). Default 1.0",
			"default":     1.0,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	renderSchema := renderProps()
	renderSchema["text"] = stringProp("Text already written in the target language")
	renderSchema["language"] = languageProp()

	generateSchema := renderProps()
	generateSchema["text"] = stringProp("English text to translate and render")
	generateSchema["language"] = languageProp()

	return []Tool{
		{
			Name:        ToolLanguages,
			Description: "List the supported languages with their translation codes, scripts and whether the Noto Sans font for each is installed.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        ToolTranslate,
			Description: "Translate English text into one of the supported Indic languages without rendering it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text":     stringProp("English text to translate"),
					"language": languageProp(),
				},
				"required": []string{"text", "language"},
			},
		},
		{
			Name:        ToolRender,
			Description: "Render text that is already in the target language centered on a bordered canvas and return it as a base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": renderSchema,
				"required":   []string{"text", "language"},
			},
		},
		{
			Name:        ToolGenerate,
			Description: "Translate English text into the target language and render it as an infographic PNG. Fails before translating if the language is unsupported or its font is missing.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": generateSchema,
				"required":   []string{"text", "language"},
			},
		},
		{
			Name:        ToolVerify,
			Description: "Check a rendered infographic: border position, text centering margins, background color and, when OCR is available, how closely the recognized text matches the expected text.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"image_base64": stringProp("PNG image as base64. Either this or path is required"),
					"path":         stringProp("Absolute path to a PNG file"),
					"language":     languageProp(),
					"expected":     stringProp("Text the image should contain. OCR is skipped when empty"),
				},
				"required": []string{"language"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
