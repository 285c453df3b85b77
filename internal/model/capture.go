package model

// Screenshot is an encoded screen capture returned by a screenshot call.
type Screenshot struct {
	Success     bool   `yaml:"success"           json:"success"`
	ImageBase64 string `yaml:"-"                 json:"imageBase64,omitempty"`
	MimeType    string `yaml:"mime_type,omitempty" json:"mimeType,omitempty"`
	Message     string `yaml:"message,omitempty" json:"message,omitempty"`
}

// TextCapture is the text of the currently focused document.
type TextCapture struct {
	Success bool   `yaml:"success"           json:"success"`
	Text    string `yaml:"text,omitempty"    json:"resultValue,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}
