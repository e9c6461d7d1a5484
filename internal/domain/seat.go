package domain

// NumSeats is the fixed number of players in a round.
const NumSeats = 4

// Seat is a table position (0..3). Play proceeds 0→1→2→3→0.
type Seat int8

// NoSeat marks an unset seat, e.g. before the first attack.
const NoSeat Seat = -1

// Valid reports whether s is a real table position.
func (s Seat) Valid() bool { return s >= 0 && s < NumSeats }

// Next returns the seat that plays after s.
func (s Seat) Next() Seat { return (s + 1) % NumSeats }

// Team returns the partnership s belongs to.
func (s Seat) Team() Team { return Team(s % 2) }

// Partner returns the seat across the table.
func (s Seat) Partner() Seat { return (s + 2) % NumSeats }

func (s Seat) String() string {
	if !s.Valid() {
		return "-"
	}
	return string(rune('A' + s))
}

// Team is one of the two partnerships: seats 0 and 2, or seats 1 and 3.
type Team int8

const (
	TeamAC Team = 0
	TeamBD Team = 1
)

// NumTeams is the number of partnerships.
const NumTeams = 2

// Seats returns the two seats belonging to the team.
func (t Team) Seats() [2]Seat { return [2]Seat{Seat(t), Seat(t) + 2} }

func (t Team) String() string {
	if t == TeamAC {
		return "AC"
	}
	return "BD"
}
