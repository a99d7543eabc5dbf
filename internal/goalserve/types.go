package goalserve

import "time"

// ScheduleEntry is one fixture from the schedule feed, already flattened out
// of the feed's XML envelope. ExternalID is the feed's stable match key used
// for idempotent upserts.
type ScheduleEntry struct {
	ExternalID  string
	TeamA       string
	TeamB       string
	Venue       string
	Group       string
	Stage       string
	MatchNumber int
	RoundNumber int
	MatchDate   *time.Time
}

// TossCandidate is one live/recent match from the toss feed. Date and Time
// keep the feed's own formats; correlation works off the parsed MatchDate.
type TossCandidate struct {
	ID          string
	LocalTeam   string
	VisitorTeam string
	Date        string
	Time        string
	TossText    string
	MatchDate   *time.Time
}

// feed XML envelope shared by the schedule and live feeds.
type scoresFeed struct {
	Categories []category `xml:"category"`
}

type category struct {
	Name    string     `xml:"name,attr"`
	Matches []feedMatch `xml:"matches>match"`
}

type feedMatch struct {
	ID          string   `xml:"id,attr"`
	Date        string   `xml:"date,attr"`
	Time        string   `xml:"time,attr"`
	VenueName   string   `xml:"venue_name,attr"`
	MatchNumber int      `xml:"match_num,attr"`
	Round       int      `xml:"round,attr"`
	Stage       string   `xml:"stage,attr"`
	Toss        string   `xml:"toss,attr"`
	LocalTeam   feedTeam `xml:"localteam"`
	VisitorTeam feedTeam `xml:"visitorteam"`
}

type feedTeam struct {
	Name string `xml:"name,attr"`
}
