package transfer

// PublishResult is the per-platform outcome of one publish call. Posted and
// LedgerSaved are reported separately: a post can succeed on the platform
// while the ledger write fails, and that success must not be hidden.
type PublishResult struct {
	Platform       string `json:"platform"`
	Posted         bool   `json:"posted"`
	LedgerSaved    bool   `json:"ledger_saved"`
	ExternalPostID string `json:"external_post_id,omitempty"`
	PostURL        string `json:"post_url,omitempty"`
	Error          string `json:"error,omitempty"`
}

type EngagementSnapshot struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

type PlatformToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64
}

type PlatformAccount struct {
	ID   string
	Name string
}
