package queue

// QueueImportMsg asks the worker to batch import analysis result files from a
// folder into the graph database.
type QueueImportMsg struct {
	Message string `json:"message"`
	Folder  string `json:"folder"`
	Pattern string `json:"pattern,omitempty"`
}

// QueueDownloadMsg asks the worker to fetch a paper PDF by DOI and archive it.
type QueueDownloadMsg struct {
	Message string `json:"message"`
	DOI     string `json:"doi"`
	DestDir string `json:"dest_dir,omitempty"`
}

// QueueExtractMsg asks the worker to run causal extraction over a paper text
// and merge the result into the ontology file.
type QueueExtractMsg struct {
	Message      string `json:"message"`
	PaperID      string `json:"paper_id"`
	Text         string `json:"text,omitempty"`
	FilePath     string `json:"file_path,omitempty"`
	OntologyPath string `json:"ontology_path"`
	Model        string `json:"model,omitempty"`
}
