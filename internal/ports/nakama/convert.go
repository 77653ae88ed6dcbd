package nakama

import (
	"encoding/json"
	"fmt"

	"marbles/internal/app"
	"marbles/internal/domain"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// hostRequest carries the capability token for host-only actions (start, reset).
type hostRequest struct {
	HostToken string `json:"host_token"`
}

// playRequest is the OpPlayCard body. Joker is "GETOUT" or a step count and only read for jokers.
type playRequest struct {
	HandIndex int    `json:"hand_index"`
	Rank      string `json:"rank"`
	MarbleID  int    `json:"marble_id"`
	Joker     string `json:"joker,omitempty"`
}

type discardRequest struct {
	HandIndex int    `json:"hand_index"`
	Rank      string `json:"rank"`
}

func decodeRequest(data []byte, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("empty request")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed request: %w", err)
	}
	return nil
}

// toPlay converts a play request from seat into a domain play.
func (r playRequest) toPlay(seat domain.Seat) (domain.Play, error) {
	rank, ok := domain.ParseRank(r.Rank)
	if !ok {
		return domain.Play{}, domain.Reject(domain.ReasonUnknownRank)
	}
	play := domain.Play{Seat: seat, HandIndex: r.HandIndex, Rank: rank, MarbleID: r.MarbleID}
	if rank == domain.Joker {
		if r.Joker == "" {
			return domain.Play{}, domain.Reject(domain.ReasonMalformedJoker)
		}
		choice, err := domain.ParseJokerChoice(r.Joker)
		if err != nil {
			return domain.Play{}, err
		}
		play.Joker = &choice
	}
	return play, nil
}

// encodeStruct renders fields as protojson over a structpb.Struct.
func encodeStruct(fields map[string]interface{}) ([]byte, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("build struct: %w", err)
	}
	return protojson.Marshal(s)
}

func ranksValue(hand []domain.Rank) []interface{} {
	out := make([]interface{}, 0, len(hand))
	for _, r := range hand {
		out = append(out, r.String())
	}
	return out
}

func seatsValue(seats []domain.Seat) []interface{} {
	out := make([]interface{}, 0, len(seats))
	for _, s := range seats {
		out = append(out, int(s))
	}
	return out
}

func marbleValue(v domain.MarbleView) map[string]interface{} {
	return map[string]interface{}{
		"where": string(v.Where),
		"index": v.Index,
	}
}

func locationValue(loc domain.Location) map[string]interface{} {
	return marbleValue(domain.ViewOf(loc))
}

func snapshotValue(snap domain.Snapshot) map[string]interface{} {
	players := make([]interface{}, 0, domain.SeatCount)
	for seat, p := range snap.Players {
		marbles := make([]interface{}, 0, domain.MarblesPerSeat)
		for _, m := range p.Marbles {
			marbles = append(marbles, marbleValue(m))
		}
		players = append(players, map[string]interface{}{
			"seat":     seat,
			"all_home": p.AllHome,
			"marbles":  marbles,
		})
	}
	return map[string]interface{}{
		"turn":    int(snap.Turn),
		"phase":   string(snap.Phase),
		"players": players,
	}
}

func relocationsValue(rs []domain.Relocation) []interface{} {
	out := make([]interface{}, 0, len(rs))
	for _, r := range rs {
		out = append(out, map[string]interface{}{
			"seat":      int(r.Seat),
			"marble_id": r.MarbleID,
			"from":      locationValue(r.From),
			"to":        locationValue(r.To),
		})
	}
	return out
}

// eventFields maps an app event to its op code and wire fields.
func eventFields(ev app.Event) (int64, map[string]interface{}, error) {
	switch p := ev.Payload.(type) {
	case app.GameStartedPayload:
		return OpGameState, map[string]interface{}{
			"reason":   string(app.EventGameStarted),
			"snapshot": snapshotValue(p.Snapshot),
		}, nil
	case app.HandDealtPayload:
		return OpHand, map[string]interface{}{
			"seat": int(p.Seat),
			"hand": ranksValue(p.Hand),
		}, nil
	case app.MoveAppliedPayload:
		fields := map[string]interface{}{
			"seat":         int(p.Seat),
			"target_seat":  int(p.TargetSeat),
			"rank":         p.Rank.String(),
			"marble_id":    p.MarbleID,
			"from":         marbleValue(p.From),
			"to":           marbleValue(p.To),
			"captured":     relocationsValue(p.Captured),
			"rescued":      relocationsValue(p.Rescued),
			"entered_home": p.EnteredHome,
			"corner_hop":   p.CornerHop,
			"snapshot":     snapshotValue(p.Snapshot),
		}
		if p.Joker != nil {
			fields["joker"] = p.Joker.String()
		}
		return OpMoveApplied, fields, nil
	case app.CardDiscardedPayload:
		return OpCardDiscarded, map[string]interface{}{
			"seat":     int(p.Seat),
			"rank":     p.Rank.String(),
			"snapshot": snapshotValue(p.Snapshot),
		}, nil
	case app.GameEndedPayload:
		fields := map[string]interface{}{
			"exhausted": p.Exhausted,
			"seats":     seatsValue(p.Seats),
		}
		if !p.Exhausted {
			fields["winner"] = p.Winner.String()
		}
		return OpGameEnded, fields, nil
	case app.GameResetPayload:
		return OpGameReset, map[string]interface{}{}, nil
	}
	return 0, nil, fmt.Errorf("unknown event kind %s", ev.Kind)
}

// matchLabel builds the label Nakama indexes for quick match.
func matchLabel(open int, playing bool) (string, error) {
	phase := LabelPhaseLobby
	if playing {
		phase = LabelPhasePlaying
	}
	b, err := encodeStruct(map[string]interface{}{
		LabelKeyGame:  GameName,
		LabelKeyPhase: phase,
		LabelKeyOpen:  open,
	})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
