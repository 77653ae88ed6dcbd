package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"marbles/internal/app"
	"marbles/internal/bot"
	"marbles/internal/config"
	"marbles/internal/domain"
	"marbles/internal/ports"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
// The game itself lives in the shared registry under RoomID.
type MatchState struct {
	RoomID           string                      // Registry key, the Nakama match id
	Seats            [domain.SeatCount]string    // User IDs by seat, empty string means seat is empty
	HostSeat         int                         // Seat index of the room host, -1 when no human is seated
	Tick             int64                       // Current tick of the match
	TickRate         int                         // Ticks per second
	Presences        map[string]runtime.Presence // Map UserId -> Presence for targeted messaging
	BotsEnabled      bool                        // Whether AI players are allowed
	BotLevel         bot.BotLevel                // Default strategy for bots without a configured difficulty
	BotMinDelay      int                         // Min seconds a bot waits
	BotMaxDelay      int                         // Max seconds a bot waits
	BotAutoFillDelay int                         // Seconds to wait before filling empty seats with bots
	BotWaitUntil     int64                       // Tick when the bot should act
	LobbyWaitSince   int64                       // Tick when humans started waiting on empty seats
	Bots             map[string]*bot.Agent       // Active bot agents
	Results          ports.ResultsPort           // Win ledger, nil disables crediting
	WinReward        int64                       // marble_wins credit per human winner
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !isBotUserId(seat) {
			count++
		}
	}
	return count
}

// seatOf returns the seat held by userID or -1.
func (ms *MatchState) seatOf(userID string) int {
	for i, seatUserID := range ms.Seats {
		if seatUserID != "" && seatUserID == userID {
			return i
		}
	}
	return -1
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

type matchHandler struct {
	registry *app.Registry
	cfg      config.GameConfig
	env      config.RuntimeEnv
	rng      *rand.Rand
	results  func(nk runtime.NakamaModule) ports.ResultsPort
}

func newMatchHandler(registry *app.Registry, cfg config.GameConfig, env config.RuntimeEnv) *matchHandler {
	return &matchHandler{
		registry: registry,
		cfg:      cfg,
		env:      env,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		results: func(nk runtime.NakamaModule) ports.ResultsPort {
			if nk == nil {
				return nil
			}
			return NewNakamaResultsAdapter(nk)
		},
	}
}

func (mh *matchHandler) game(state *MatchState) *domain.Game {
	session, err := mh.registry.Get(state.RoomID)
	if err != nil {
		return nil
	}
	return session.Game
}

func (mh *matchHandler) playing(state *MatchState) bool {
	g := mh.game(state)
	return g != nil && g.Phase == domain.PhasePlaying
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	roomID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	if roomID == "" {
		roomID = uuid.NewString()
	}
	logger.Debug("MatchInit: Initializing room %s.", roomID)

	state := &MatchState{
		RoomID:           roomID,
		HostSeat:         -1,
		TickRate:         mh.cfg.TickRate,
		Presences:        make(map[string]runtime.Presence),
		BotsEnabled:      mh.env.BotsEnabled,
		BotLevel:         bot.BotLevel(mh.cfg.BotLevel),
		BotMinDelay:      mh.cfg.BotMinDelaySeconds,
		BotMaxDelay:      mh.cfg.BotMaxDelaySeconds,
		BotAutoFillDelay: mh.cfg.BotAutoFillDelaySeconds,
		Bots:             make(map[string]*bot.Agent),
		Results:          mh.results(nk),
		WinReward:        mh.cfg.WinReward,
	}
	if state.TickRate <= 0 {
		state.TickRate = 1
	}

	label, err := matchLabel(state.GetOpenSeatsCount(), false)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}
	return state, state.TickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// A seated player reconnecting keeps their seat.
	if matchState.seatOf(presence.GetUserId()) >= 0 {
		return state, true, ""
	}
	if mh.playing(matchState) {
		return state, false, "Game in progress"
	}

	// Allow join if there is an empty seat or a bot to replace.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		for _, seat := range matchState.Seats {
			if isBotUserId(seat) {
				hasBot = true
				break
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}
	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		matchState.Presences[userID] = p

		if seat := matchState.seatOf(userID); seat >= 0 {
			logger.Debug("MatchJoin: User %s rejoined seat %d.", userID, seat)
			mh.sendHand(matchState, dispatcher, logger, domain.Seat(seat))
			continue
		}

		// Assign seat: lowest empty seat first, then a bot seat.
		assigned := -1
		for i, seatUserId := range matchState.Seats {
			if seatUserId == "" {
				assigned = i
				break
			}
		}
		if assigned < 0 {
			for i, seatUserId := range matchState.Seats {
				if isBotUserId(seatUserId) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, userID, i)
					delete(matchState.Bots, seatUserId)
					assigned = i
					break
				}
			}
		}
		if assigned < 0 {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", userID)
			continue
		}
		matchState.Seats[assigned] = userID
	}

	mh.ensureHost(matchState, dispatcher, logger)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastRoster(matchState, dispatcher, logger)

	return matchState
}

// ensureHost makes sure a seated human holds the host token. The room session is opened
// with the first human host; later hosts receive a transferred token.
func (mh *matchHandler) ensureHost(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.HostSeat >= 0 && state.Seats[state.HostSeat] != "" && !isBotUserId(state.Seats[state.HostSeat]) {
		return
	}
	seat := findFirstHumanSeat(state.Seats[:])
	state.HostSeat = seat
	if seat < 0 {
		return
	}
	userID := state.Seats[seat]

	var token string
	var err error
	if _, getErr := mh.registry.Get(state.RoomID); errors.Is(getErr, app.ErrUnknownRoom) {
		token, err = mh.registry.Open(state.RoomID, userID)
	} else {
		token, err = mh.registry.TransferHost(state.RoomID, userID)
	}
	if err != nil {
		logger.Error("ensureHost: Failed to hand host token to %s: %v", userID, err)
		return
	}
	logger.Debug("ensureHost: Host set to %s at seat %d.", userID, seat)

	mh.sendTo(state, dispatcher, logger, userID, OpHostToken, map[string]interface{}{
		"room_id":    state.RoomID,
		"host_token": token,
	})
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	inGame := mh.playing(matchState)
	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		seat := matchState.seatOf(userID)
		if seat < 0 {
			continue
		}
		if inGame && matchState.BotsEnabled {
			// The table keeps its four seats; a bot finishes the game for the leaver.
			mh.seatBot(matchState, logger, seat)
			logger.Info("MatchLeave: User %s left mid-game, bot took seat %d.", userID, seat)
			continue
		}
		if !inGame {
			matchState.Seats[seat] = ""
		}
		logger.Debug("MatchLeave: User %s left seat %d.", userID, seat)
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) || len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating room %s with no humans.", matchState.RoomID)
		mh.registry.Close(matchState.RoomID)
		return nil
	}

	mh.ensureHost(matchState, dispatcher, logger)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastRoster(matchState, dispatcher, logger)
	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpPlayCard:
			mh.handlePlayCard(ctx, matchState, dispatcher, logger, msg)
		case OpDiscard:
			mh.handleDiscard(ctx, matchState, dispatcher, logger, msg)
		case OpResetGame:
			mh.handleReset(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) seconds(state *MatchState, s int) int64 {
	return int64(s * state.TickRate)
}

func (mh *matchHandler) seatBot(state *MatchState, logger runtime.Logger, seat int) {
	identity := bot.GetBotIdentity(seat)
	state.Seats[seat] = identity.UserID
	agent, err := bot.NewAgent(identity, domain.Seat(seat), state.BotLevel)
	if err != nil {
		logger.Error("seatBot: Failed to create bot agent for %s: %v", identity.UserID, err)
		return
	}
	state.Bots[identity.UserID] = agent
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	game := mh.game(state)
	inGame := game != nil && game.Phase == domain.PhasePlaying

	// 1. Fill empty lobby seats with bots once humans have waited long enough.
	if !inGame {
		if state.GetHumanPlayerCount() > 0 && state.GetOpenSeatsCount() > 0 {
			if state.LobbyWaitSince == 0 {
				state.LobbyWaitSince = state.Tick
				logger.Debug("processBots: Empty seats detected, starting auto-fill timer.")
			}
			if state.Tick-state.LobbyWaitSince >= mh.seconds(state, state.BotAutoFillDelay) {
				for i, seat := range state.Seats {
					if seat == "" {
						mh.seatBot(state, logger, i)
						logger.Info("processBots: Added bot %s to seat %d", state.Seats[i], i)
					}
				}
				mh.updateLabel(state, dispatcher, logger)
				mh.broadcastRoster(state, dispatcher, logger)
				state.LobbyWaitSince = 0
			}
		} else {
			state.LobbyWaitSince = 0
		}
		return
	}

	// 2. Handle bot turns in-game.
	seat := game.Turn
	userID := state.Seats[seat]
	if !isBotUserId(userID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := state.BotMinDelay
		if state.BotMaxDelay > state.BotMinDelay {
			delay += mh.rng.Intn(state.BotMaxDelay - state.BotMinDelay + 1)
		}
		state.BotWaitUntil = state.Tick + mh.seconds(state, delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", userID, seat, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[userID]
	if !exists {
		mh.seatBot(state, logger, int(seat))
		if agent, exists = state.Bots[userID]; !exists {
			return
		}
	}

	move, err := agent.Play(game)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", userID, err)
		return
	}

	var events []app.Event
	if move.Discard {
		events, err = mh.registry.Discard(state.RoomID, seat, move.Play.HandIndex, move.Play.Rank)
	} else {
		events, err = mh.registry.Play(state.RoomID, move.Play)
	}
	if err != nil {
		logger.Error("processBots: Bot %s move %+v rejected: %v", userID, move, err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) roster(state *MatchState) []app.RosterEntry {
	roster := make([]app.RosterEntry, 0, domain.SeatCount)
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		seat := domain.Seat(i)
		roster = append(roster, app.RosterEntry{Seat: seat, Team: seat.Team(), UserID: userID})
	}
	return roster
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	logger.Info("StartGame: Request received from %s (host_seat=%d, open=%d)", senderID, state.HostSeat, state.GetOpenSeatsCount())

	var req hostRequest
	if err := decodeRequest(msg.GetData(), &req); err != nil {
		logger.Warn("StartGame: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	events, err := mh.registry.Start(state.RoomID, req.HostToken, mh.roster(state))
	if err != nil {
		logger.Warn("StartGame: User %s could not start: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	state.BotWaitUntil = 0
	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	logger.Info("StartGame: Game started in room %s.", state.RoomID)
}

func (mh *matchHandler) handlePlayCard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)
	if senderSeat < 0 {
		logger.Warn("handlePlayCard: User %s is not seated.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, domain.Reject(domain.ReasonWrongTurn))
		return
	}

	var req playRequest
	if err := decodeRequest(msg.GetData(), &req); err != nil {
		logger.Warn("handlePlayCard: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	play, err := req.toPlay(domain.Seat(senderSeat))
	if err != nil {
		logger.Warn("handlePlayCard: User %s sent a bad card: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	events, err := mh.registry.Play(state.RoomID, play)
	if err != nil {
		logger.Warn("handlePlayCard: User %s (seat %d) failed to play %s on marble %d: %v", senderID, senderSeat, play.Rank, play.MarbleID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleDiscard(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.seatOf(senderID)
	if senderSeat < 0 {
		logger.Warn("handleDiscard: User %s is not seated.", senderID)
		mh.sendError(state, dispatcher, logger, senderID, domain.Reject(domain.ReasonWrongTurn))
		return
	}

	var req discardRequest
	if err := decodeRequest(msg.GetData(), &req); err != nil {
		logger.Warn("handleDiscard: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	rank, ok := domain.ParseRank(req.Rank)
	if !ok {
		mh.sendError(state, dispatcher, logger, senderID, domain.Reject(domain.ReasonUnknownRank))
		return
	}

	events, err := mh.registry.Discard(state.RoomID, domain.Seat(senderSeat), req.HandIndex, rank)
	if err != nil {
		logger.Warn("handleDiscard: User %s (seat %d) failed to discard: %v", senderID, senderSeat, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleReset(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var req hostRequest
	if err := decodeRequest(msg.GetData(), &req); err != nil {
		logger.Warn("handleReset: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}
	events, err := mh.registry.Reset(state.RoomID, req.HostToken)
	if err != nil {
		logger.Warn("handleReset: User %s could not reset: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, err)
		return
	}

	state.BotWaitUntil = 0
	// Seats kept for humans who left mid-game are freed.
	for i, userID := range state.Seats {
		if _, connected := state.Presences[userID]; userID != "" && !connected && !isBotUserId(userID) {
			state.Seats[i] = ""
		}
	}
	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
	logger.Info("handleReset: Room %s reset by %s.", state.RoomID, senderID)
}

func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(ctx, state, dispatcher, logger, ev)
	}
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, fields, err := eventFields(ev)
	if err != nil {
		logger.Warn("Unknown event kind: %v", ev.Kind)
		return
	}
	logger.Debug("Event: %s (recipients=%d)", ev.Kind, len(ev.Recipients))

	switch p := ev.Payload.(type) {
	case app.GameEndedPayload:
		mh.creditWinners(ctx, state, logger, p)
		mh.updateLabel(state, dispatcher, logger)
	case app.GameResetPayload:
		mh.updateLabel(state, dispatcher, logger)
	}

	data, err := encodeStruct(fields)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, seat := range ev.Recipients {
			if !seat.Valid() {
				continue
			}
			if p, ok := state.Presences[state.Seats[seat]]; ok {
				recipients = append(recipients, p)
			}
		}
		// Intended recipients that are not connected (e.g. bots) must not turn into a broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("Failed to dispatch event %v: %v", ev.Kind, err)
	}
}

// creditWinners records a win for every human on the winning team.
func (mh *matchHandler) creditWinners(ctx context.Context, state *MatchState, logger runtime.Logger, p app.GameEndedPayload) {
	if state.Results == nil || p.Exhausted {
		return
	}
	credits := make([]ports.WinCredit, 0, len(p.Seats))
	for _, seat := range p.Seats {
		userID := state.Seats[seat]
		if userID == "" || isBotUserId(userID) {
			continue
		}
		credits = append(credits, ports.WinCredit{
			UserID: userID,
			Amount: state.WinReward,
			Metadata: map[string]interface{}{
				"match_id": state.RoomID,
				"reason":   "game_won",
				"team":     p.Winner.String(),
			},
		})
	}
	if err := state.Results.CreditWins(ctx, credits); err != nil {
		logger.Error("Failed to credit wins: %v", err)
	}
}

func (mh *matchHandler) sendHand(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, seat domain.Seat) {
	hand, err := mh.registry.Hand(state.RoomID, seat)
	if err != nil {
		return
	}
	mh.sendTo(state, dispatcher, logger, state.Seats[seat], OpHand, map[string]interface{}{
		"seat": int(seat),
		"hand": ranksValue(hand),
	})
}

func (mh *matchHandler) sendTo(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, opCode int64, fields map[string]interface{}) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send op %d to %s: Presence not found", opCode, userID)
		return
	}
	data, err := encodeStruct(fields)
	if err != nil {
		logger.Error("Failed to marshal op %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send op %d to %s: %v", opCode, userID, err)
	}
}

// errorCode classifies an app or domain error for the client.
func errorCode(err error) int {
	switch {
	case errors.Is(err, app.ErrNotHost):
		return ErrorCodeForbidden
	case errors.Is(err, app.ErrGameInProgress), errors.Is(err, app.ErrGameOver):
		return ErrorCodeConflict
	default:
		return ErrorCodeBadRequest
	}
}

// sendError sends a game error to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, err error) {
	mh.sendTo(state, dispatcher, logger, userID, OpGameError, map[string]interface{}{
		"code":    errorCode(err),
		"reason":  string(domain.ReasonOf(err)),
		"message": err.Error(),
	})
}

func (mh *matchHandler) broadcastRoster(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	players := make([]interface{}, 0, domain.SeatCount)
	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		displayName := userID
		if p, exists := state.Presences[userID]; exists {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(userID); name != "" {
			displayName = name
		}
		players = append(players, map[string]interface{}{
			"user_id":      userID,
			"seat":         i,
			"team":         domain.Seat(i).Team().String(),
			"display_name": displayName,
			"is_bot":       isBotUserId(userID),
			"is_host":      i == state.HostSeat,
		})
	}

	data, err := encodeStruct(map[string]interface{}{
		"room_id":   state.RoomID,
		"host_seat": state.HostSeat,
		"tick":      state.Tick,
		"players":   players,
	})
	if err != nil {
		logger.Error("broadcastRoster: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpRoster, data, nil, nil, true); err != nil {
		logger.Error("broadcastRoster: Failed to dispatch: %v", err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state.GetOpenSeatsCount(), mh.playing(state))
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		mh.registry.Close(matchState.RoomID)
	}
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
