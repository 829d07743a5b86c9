package eventbus

// TopicLeaderboardUpdated is published after a round's leaderboard snapshot changes.
const TopicLeaderboardUpdated = "leaderboard.updated"

// LeaderboardUpdated is the payload of TopicLeaderboardUpdated.
type LeaderboardUpdated struct {
	Round          int `json:"round"`
	ChangedPlayers int `json:"changed_players"`
}
