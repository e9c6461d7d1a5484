package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameGoita is the authoritative match handler name registered with Nakama.
	MatchNameGoita = "goita_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartRound int64 = 1
	OpMove       int64 = 2

	// Server -> Client events
	OpMatchState   int64 = 101
	OpRoundStarted int64 = 102
	OpHand         int64 = 103 // send privately
	OpMoveApplied  int64 = 104
	OpLegalMoves   int64 = 105 // send privately
	OpRoundEnded   int64 = 106
	OpError        int64 = 107
)

// Error codes carried by OpError.
const (
	ErrCodeBadRequest   = 400
	ErrCodeNotYourTurn  = 403
	ErrCodeIllegalMove  = 409
	ErrCodeRoundMissing = 404
)

const (
	labelStateLobby   = "lobby"
	labelStatePlaying = "playing"
	labelGame         = "goita"
)
