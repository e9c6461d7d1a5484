package integration

import (
	"testing"
	"time"

	"goita/internal/domain"
	"goita/internal/ports/nakama"

	"google.golang.org/protobuf/types/known/structpb"
)

func TestFullRound(t *testing.T) {
	clients := make([]*TestClient, domain.NumSeats)
	for i := range clients {
		clients[i] = NewTestClient(t)
		defer clients[i].Close()
	}

	matchID := clients[0].QuickMatch(t)
	t.Logf("Client 0 joined match: %s", matchID)
	for i := 1; i < len(clients); i++ {
		clients[i].Join(t, matchID)
	}

	// Wait a bit for presences to sync
	time.Sleep(1 * time.Second)

	bySeat := make(map[int]*TestClient)
	var snapshot *structpb.Struct
	for snapshot == nil || len(bySeat) < domain.NumSeats {
		snapshot = clients[0].Wait(t, nakama.OpMatchState, 5*time.Second)
		clear(bySeat)
		for seat, v := range snapshot.Fields["seats"].GetListValue().GetValues() {
			for _, c := range clients {
				if c.UserID == v.GetStringValue() {
					bySeat[seat] = c
				}
			}
		}
	}

	clients[0].Send(t, matchID, nakama.OpStartRound, &structpb.Struct{})

	for i, c := range clients {
		hand := c.Wait(t, nakama.OpHand, 5*time.Second)
		if n := len(hand.Fields["hand"].GetListValue().GetValues()); n != domain.HandSize {
			t.Fatalf("Client %d got %d tiles, want %d", i, n, domain.HandSize)
		}
	}
	started := clients[0].Wait(t, nakama.OpRoundStarted, 5*time.Second)
	turn := int(started.Fields["turn"].GetNumberValue())

	for step := 0; ; step++ {
		if step > 200 {
			t.Fatal("round did not finish")
		}
		c := bySeat[turn]
		legal := c.Wait(t, nakama.OpLegalMoves, 5*time.Second)
		moves := legal.Fields["moves"].GetListValue().GetValues()
		if len(moves) == 0 {
			t.Fatalf("seat %d on turn with no legal moves", turn)
		}
		c.Send(t, matchID, nakama.OpMove, moves[0].GetStructValue())

		applied := clients[0].Wait(t, nakama.OpMoveApplied, 5*time.Second)
		seat := int(applied.Fields["seat"].GetNumberValue())
		if seat != turn {
			t.Fatalf("applied move from seat %d, expected %d", seat, turn)
		}
		if applied.Fields["hand_sizes"].GetListValue().GetValues()[seat].GetNumberValue() == 0 {
			break
		}
		turn = int(applied.Fields["turn"].GetNumberValue())
	}

	for i, c := range clients {
		ended := c.Wait(t, nakama.OpRoundEnded, 5*time.Second)
		if points := ended.Fields["points"].GetNumberValue(); points < 10 {
			t.Fatalf("Client %d saw %v points", i, points)
		}
	}
	t.Log("Round played to the end with 4 players.")
}
