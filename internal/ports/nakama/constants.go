package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameMarbles is the authoritative match handler name registered with Nakama.
	MatchNameMarbles = "marbles_match"

	// GameName tags match labels so quick match only finds marbles tables.
	GameName = "marbles"
)

// Match label keys.
const (
	LabelKeyGame  = "game"
	LabelKeyPhase = "phase"
	LabelKeyOpen  = "open"

	LabelPhaseLobby   = "lobby"
	LabelPhasePlaying = "playing"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlayCard  int64 = 2
	OpDiscard   int64 = 3
	OpResetGame int64 = 4

	// Server -> Client events
	OpRoster        int64 = 101
	OpHostToken     int64 = 102 // send privately
	OpGameState     int64 = 103
	OpHand          int64 = 104 // send privately
	OpMoveApplied   int64 = 105
	OpCardDiscarded int64 = 106
	OpGameEnded     int64 = 107
	OpGameReset     int64 = 108
	OpGameError     int64 = 109 // send privately
)

// Error codes carried by OpGameError.
const (
	ErrorCodeBadRequest = 400
	ErrorCodeForbidden  = 403
	ErrorCodeConflict   = 409
)
