package logging

// Component names attached to log records under the "component" key.
const (
	ComponentStartup    = "startup"
	ComponentMCP        = "mcp"
	ComponentHTTP       = "http"
	ComponentFonts      = "fonts"
	ComponentTranslator = "translator"
	ComponentRenderer   = "renderer"
	ComponentOCR        = "ocr"
)
