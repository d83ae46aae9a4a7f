package report

type ReportIssueRequest struct {
	Subject     string `json:"subject" binding:"required,min=1,max=200"`
	Category    string `json:"category" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,min=1,max=5000"`
}
