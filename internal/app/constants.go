package app

// Default deal rules. A seat dealt five or more pawns is redealt.
const (
	DefaultMaxOnesPerSeat = 4
	DefaultDealRetryLimit = 5000
)

// DefaultMaxSteps bounds a simulated round. A round cannot take more than a
// few dozen moves, so hitting it means a policy is misbehaving.
const DefaultMaxSteps = 500
