package nakama

import (
	"errors"
	"fmt"
	"math"

	"goita/internal/app"
	"goita/internal/domain"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var errBadMove = errors.New("malformed move")

func tilesToList(tiles []domain.Tile) []any {
	out := make([]any, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, int(t))
	}
	return out
}

func moveToMap(m domain.Move) map[string]any {
	out := map[string]any{"kind": string(m.Kind())}
	switch m := m.(type) {
	case domain.Receive:
		out["block"] = int(m.Block)
	case domain.Attack:
		out["attack"] = int(m.Tile)
	case domain.CoverThenAttack:
		if m.Block != domain.TileNone {
			out["block"] = int(m.Block)
		}
		out["attack"] = int(m.Attack)
	}
	return out
}

func movesToList(moves []domain.Move) []any {
	out := make([]any, 0, len(moves))
	for _, m := range moves {
		out = append(out, moveToMap(m))
	}
	return out
}

// tileField reads a tile number from a move message.
func tileField(fields map[string]*structpb.Value, name string) (domain.Tile, error) {
	v, ok := fields[name]
	if !ok {
		return domain.TileNone, fmt.Errorf("%w: missing %s", errBadMove, name)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return domain.TileNone, fmt.Errorf("%w: %s is not a number", errBadMove, name)
	}
	f := n.NumberValue
	if f != math.Trunc(f) || f < float64(domain.MinTile) || f > float64(domain.MaxTile) {
		return domain.TileNone, fmt.Errorf("%w: %s=%v is not a tile", errBadMove, name, f)
	}
	return domain.Tile(f), nil
}

// moveFromStruct decodes {kind, block, attack} into a domain move.
func moveFromStruct(s *structpb.Struct) (domain.Move, error) {
	fields := s.GetFields()
	kind := domain.MoveKind(fields["kind"].GetStringValue())
	switch kind {
	case domain.KindPass:
		return domain.Pass{}, nil
	case domain.KindReceive:
		b, err := tileField(fields, "block")
		if err != nil {
			return nil, err
		}
		return domain.Receive{Block: b}, nil
	case domain.KindAttack:
		a, err := tileField(fields, "attack")
		if err != nil {
			return nil, err
		}
		return domain.Attack{Tile: a}, nil
	case domain.KindCoverThenAttack:
		b, err := tileField(fields, "block")
		if err != nil {
			return nil, err
		}
		a, err := tileField(fields, "attack")
		if err != nil {
			return nil, err
		}
		return domain.CoverThenAttack{Block: b, Attack: a}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", errBadMove, kind)
	}
}

// decodeMove parses a binary structpb.Struct sent with OpMove.
func decodeMove(data []byte) (domain.Move, error) {
	s := &structpb.Struct{}
	if err := proto.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadMove, err)
	}
	return moveFromStruct(s)
}

// EncodeMove serialises a move the way clients send it.
func EncodeMove(m domain.Move) ([]byte, error) {
	s, err := structpb.NewStruct(moveToMap(m))
	if err != nil {
		return nil, err
	}
	return proto.Marshal(s)
}

func boardToMap(b domain.Board) map[string]any {
	blocks := make([]any, 0, len(b.Blocks))
	for _, slot := range b.Blocks {
		blocks = append(blocks, map[string]any{"tile": int(slot.Tile), "hidden": slot.Hidden})
	}
	return map[string]any{"blocks": blocks, "attacks": tilesToList(b.Attacks)}
}

func viewToMap(v app.RoundView) map[string]any {
	seats := make([]any, 0, domain.NumSeats)
	for _, sv := range v.Seats {
		seats = append(seats, map[string]any{
			"seat":      int(sv.Seat),
			"hand_size": sv.HandSize,
			"board":     boardToMap(sv.Board),
		})
	}
	return map[string]any{
		"round_id":       v.RoundID,
		"viewer":         int(v.Viewer),
		"dealer":         int(v.Dealer),
		"phase":          string(v.Phase),
		"turn":           int(v.Turn),
		"attacker":       int(v.Attacker),
		"current_attack": int(v.CurrentAttack),
		"hand":           tilesToList(v.Hand),
		"seats":          seats,
		"finished":       v.Finished,
		"team_scores":    []any{v.TeamScores[0], v.TeamScores[1]},
	}
}

// eventMessage maps an app event to its op code and wire body.
func eventMessage(ev app.Event) (int64, *structpb.Struct, error) {
	var op int64
	var body map[string]any

	switch p := ev.Payload.(type) {
	case app.RoundStartedPayload:
		op = OpRoundStarted
		body = map[string]any{"round_id": p.RoundID, "dealer": int(p.Dealer), "turn": int(p.Turn)}
	case app.HandDealtPayload:
		op = OpHand
		body = map[string]any{"seat": int(p.Seat), "hand": tilesToList(p.Hand)}
	case app.LegalMovesPayload:
		op = OpLegalMoves
		body = map[string]any{"seat": int(p.Seat), "phase": string(p.Phase), "moves": movesToList(p.Moves)}
	case app.MoveAppliedPayload:
		op = OpMoveApplied
		sizes := make([]any, 0, domain.NumSeats)
		for _, n := range p.HandSizes {
			sizes = append(sizes, n)
		}
		body = map[string]any{
			"round_id":       p.RoundID,
			"seq":            p.Sequence,
			"seat":           int(p.Seat),
			"move":           moveToMap(domain.Public(p.Move)),
			"phase":          string(p.Phase),
			"turn":           int(p.Turn),
			"current_attack": int(p.CurrentAttack),
			"hand_sizes":     sizes,
		}
	case app.RoundEndedPayload:
		op = OpRoundEnded
		concealed := make([]any, 0, domain.NumSeats)
		for _, tiles := range p.Concealed {
			concealed = append(concealed, tilesToList(tiles))
		}
		body = map[string]any{
			"round_id":     p.RoundID,
			"dealer":       int(p.Dealer),
			"winner":       int(p.Result.Winner),
			"team":         int(p.Result.Team),
			"tile":         int(p.Result.Tile),
			"points":       p.Result.Points,
			"double":       p.Result.Double,
			"paired_kings": p.Result.PairedKings,
			"team_scores":  []any{p.TeamScores[0], p.TeamScores[1]},
			"concealed":    concealed,
			"moves":        p.Moves,
		}
	default:
		return 0, nil, fmt.Errorf("no wire mapping for event %s", ev.Kind)
	}

	s, err := structpb.NewStruct(body)
	if err != nil {
		return 0, nil, fmt.Errorf("encode %s: %w", ev.Kind, err)
	}
	return op, s, nil
}
