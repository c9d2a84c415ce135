package apifootball

// Wire structures for the API-Football v3 responses. Only the fields the
// adapter reads are declared.

type fixturesResponse struct {
	Response []fixtureEntry `json:"response"`
}

type fixtureEntry struct {
	Fixture fixtureInfo `json:"fixture"`
	Teams   teamsInfo   `json:"teams"`
	League  leagueInfo  `json:"league"`
}

type fixtureInfo struct {
	ID     int64      `json:"id"`
	Date   string     `json:"date"`
	Status statusInfo `json:"status"`
}

type statusInfo struct {
	Short string `json:"short"`
}

type teamsInfo struct {
	Home teamInfo `json:"home"`
	Away teamInfo `json:"away"`
}

type teamInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type leagueInfo struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Season  int    `json:"season"`
}

type oddsResponse struct {
	Response []oddsEntry `json:"response"`
}

type oddsEntry struct {
	Bookmakers []bookmakerInfo `json:"bookmakers"`
}

type bookmakerInfo struct {
	Name string    `json:"name"`
	Bets []betInfo `json:"bets"`
}

type betInfo struct {
	Name   string     `json:"name"`
	Values []betValue `json:"values"`
}

type betValue struct {
	Value string `json:"value"`
	Odd   string `json:"odd"`
}
