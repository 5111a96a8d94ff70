package transfer

type VehicleCreation struct {
	Make        string `json:"make"`
	Model       string `json:"model"`
	Year        int    `json:"year"`
	VIN         string `json:"vin"`
	StockNumber string `json:"stock_number"`
	Price       int64  `json:"price"`
	Mileage     int    `json:"mileage"`
	Color       string `json:"color"`
}

type StageChange struct {
	Notes string `json:"notes"`
	// Stage is only read by the explicit set-stage escape hatch.
	Stage string `json:"stage"`
}

type VoiceProfileUpdate struct {
	Formality           int      `json:"formality"`
	Energy              int      `json:"energy"`
	EmojiUsage          int      `json:"emoji_usage"`
	TechnicalDetail     string   `json:"technical_detail"`
	CommunityConnection string   `json:"community_connection"`
	PrimaryEmotions     []string `json:"primary_emotions"`
	ValueProps          []string `json:"value_props"`
	ToneUse             []string `json:"tone_use"`
	ToneAvoid           []string `json:"tone_avoid"`
	ExamplePhrases      []string `json:"example_phrases"`
}

type TemplateUpdate struct {
	Stage string `json:"stage"`
	Name  string `json:"name"`
	Body  string `json:"body"`
}

type CaptionGeneration struct {
	EventID       int64  `json:"event_id"`
	TemplateID    int64  `json:"template_id"`
	OperatorNotes string `json:"operator_notes"`
}

type CaptionEdit struct {
	Body     string   `json:"body"`
	Hashtags []string `json:"hashtags"`
}

type PublishRequest struct {
	CaptionID int64    `json:"caption_id"`
	Platforms []string `json:"platforms"`
	ImageKeys []string `json:"image_keys"`
}
