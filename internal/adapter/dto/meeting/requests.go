package meeting

// AnalyzeMediaRequest submits a recording as base64 in a JSON body, the
// alternative to a multipart upload
type AnalyzeMediaRequest struct {
	Title    string `json:"title"`
	MimeType string `json:"mime_type" validate:"required"`
	Data     string `json:"data" validate:"required"` // base64
	Deep     bool   `json:"deep"`
}

// AnalyzeTranscriptRequest submits text captured live for analysis
type AnalyzeTranscriptRequest struct {
	Title      string `json:"title"`
	Transcript string `json:"transcript" validate:"required"`
	Deep       bool   `json:"deep"`
}

// UpdatePreferencesRequest replaces the stored display preferences
type UpdatePreferencesRequest struct {
	Theme    string `json:"theme" validate:"required,oneof=light dark"`
	FontSize int    `json:"font_size" validate:"required,min=12,max=20"`
}

// ExportResponse points at an export document persisted in object storage
type ExportResponse struct {
	FileName  string `json:"file_name"`
	StoredURL string `json:"stored_url"`
}
