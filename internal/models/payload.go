package models

// MenuPayload is the replace-style write body for a restaurant's menu:
// the full item list together with the full customisation list.
type MenuPayload struct {
	MenuItems      []MenuItem          `json:"menuItems"`
	Customisations []ItemCustomisation `json:"customisations"`
}

// MenuResponse is the standard write-result envelope
type MenuResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// UploadResponse is returned by the image upload endpoint
type UploadResponse struct {
	Success bool   `json:"success"`
	FileURL string `json:"fileUrl,omitempty"`
	Error   string `json:"error,omitempty"`
}
