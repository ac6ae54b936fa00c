package batch

const (
	StatusDraft     = "draft"
	StatusGenerated = "generated"
	StatusApproved  = "approved"
)
