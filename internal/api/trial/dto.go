package trial

// Wire types match the web client's TrialService expectations.

type StatusResponse struct {
	ChatMessages    int  `json:"chatMessages"`
	VoiceNotes      int  `json:"voiceNotes"`
	IsTrialExceeded bool `json:"isTrialExceeded"`
}

type UpdateUsageRequest struct {
	FingerprintID string `json:"fingerprintId" binding:"required"`

	// Pointers so "field absent" is distinguishable from a legitimate zero.
	ChatMessages *int `json:"chatMessages" binding:"required"`
	VoiceNotes   *int `json:"voiceNotes" binding:"required"`
}

type UpdateUsageResponse struct {
	IsTrialExceeded bool `json:"isTrialExceeded"`
}
