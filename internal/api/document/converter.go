package document

// askRequest is the ask endpoint's JSON body. The single document_id field is
// kept for backward compatibility and folded into document_ids.
type askRequest struct {
	Question    string   `json:"question"`
	DocumentIDs []string `json:"document_ids,omitempty"`
	DocumentID  string   `json:"document_id,omitempty"`
}

func (r *askRequest) scopedDocumentIDs() []string {
	if len(r.DocumentIDs) == 0 && r.DocumentID != "" {
		return []string{r.DocumentID}
	}
	return r.DocumentIDs
}

type uploadResponse struct {
	Message         string `json:"message"`
	DocumentID      string `json:"document_id"`
	Filename        string `json:"filename"`
	ChunksProcessed int    `json:"chunks_processed"`
	TotalChunks     int    `json:"total_chunks"`
}

type deleteResponse struct {
	Message string `json:"message"`
}
