package ocr

// Info describes the OCR backend compiled into the binary.
type Info struct {
	Available bool   `json:"available"`
	Backend   string `json:"backend"`
	Version   string `json:"version,omitempty"`
	Tessdata  string `json:"tessdata,omitempty"`
	Error     string `json:"error,omitempty"`
}
