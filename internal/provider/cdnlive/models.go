package cdnlive

// The feed is a category→list mapping nested under a provider root key:
// { "<rootKey>": { "Soccer": [ {homeTeam, awayTeam, time|start, status?,
// channels: [...]}, ... ] } }.

type feedResponse map[string]map[string][]feedEvent

type feedEvent struct {
	HomeTeam    string        `json:"homeTeam"`
	AwayTeam    string        `json:"awayTeam"`
	HomeTeamIMG string        `json:"homeTeamIMG"`
	Time        string        `json:"time"`  // "HH:MM", today
	Start       string        `json:"start"` // "YYYY-MM-DD HH:MM", preferred when present
	Status      string        `json:"status"`
	Channels    []feedChannel `json:"channels"`
}

type feedChannel struct {
	ChannelName string  `json:"channel_name"`
	ChannelCode string  `json:"channel_code"`
	URL         string  `json:"url"`
	Priority    float64 `json:"priority"`
}
