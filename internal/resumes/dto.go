package resumes

// optimizeRequest is the body of POST /optimize-resume.
type optimizeRequest struct {
	IDToken string `json:"id_token" binding:"required"`
	Prompt  string `json:"prompt" binding:"required"`
	FileURL string `json:"file_url" binding:"required"`
}

// createRequest is the body of POST /create-resume. FileURL is optional: when
// present, the referenced document seeds the generation as context.
type createRequest struct {
	IDToken string `json:"id_token" binding:"required"`
	Prompt  string `json:"prompt" binding:"required"`
	FileURL string `json:"file_url"`
}

// optimizeResponse is the success body of POST /optimize-resume.
type optimizeResponse struct {
	MatchScore float64 `json:"match_score"`
	Feedback   string  `json:"feedback"`
	PDFLink    string  `json:"pdf_link"`
}

// createResponse is the success body of POST /create-resume.
type createResponse struct {
	PDFLink string `json:"pdf_link"`
}
