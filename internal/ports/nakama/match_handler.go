package nakama

import (
	"context"
	"database/sql"
	"errors"
	"math/rand"
	"time"

	"goita/internal/app"
	"goita/internal/bot"
	"goita/internal/config"
	"goita/internal/domain"
	"goita/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats                [domain.NumSeats]string     `json:"seats"`                   // User IDs, empty string means seat is empty
	OwnerSeat            int                         `json:"owner_seat"`              // Seat index of the match owner
	LastWinnerSeat       int                         `json:"last_winner_seat"`        // Winner of the last round, deals the next one
	Tick                 int64                       `json:"tick"`                    // Current tick of the match
	Presences            map[string]runtime.Presence `json:"-"`                       // Map UserId -> Presence for targeted messaging
	App                  *app.Service                `json:"-"`                       // Goita app service
	Round                *domain.Round               `json:"-"`                       // Current or last finished round, nil before the first deal
	Config               *config.GameConfig          `json:"-"`                       // Settings captured at MatchInit
	BotWaitUntil         int64                       `json:"bot_wait_until"`          // Tick when the bot on turn should act
	LastSinglePlayerTick int64                       `json:"last_single_player_tick"` // Tick when a lone human started waiting
	Bots                 map[string]*bot.Agent       `json:"-"`                       // Active bot agents
	Economy              ports.EconomyPort           `json:"-"`                       // Interface to Nakama wallet
	Recorder             *app.Recorder               `json:"-"`                       // Move stream and round archive

	rng *rand.Rand
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

func (ms *MatchState) GetOccupiedSeatCount() int {
	return domain.NumSeats - ms.GetOpenSeatsCount()
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

// InRound reports whether a round is being played.
func (ms *MatchState) InRound() bool {
	return ms.Round != nil && !ms.Round.Finished()
}

// abandonRound drops an unfinished round so the recorder forgets it.
func (ms *MatchState) abandonRound() {
	if ms.InRound() {
		ms.Recorder.Abandon(ms.Round.ID().String())
	}
	ms.Round = nil
}

// SeatOf returns the seat held by userID, or domain.NoSeat.
func (ms *MatchState) SeatOf(userID string) domain.Seat {
	if userID == "" {
		return domain.NoSeat
	}
	for i, id := range ms.Seats {
		if id == userID {
			return domain.Seat(i)
		}
	}
	return domain.NoSeat
}

func (ms *MatchState) config() *config.GameConfig {
	if ms.Config == nil {
		ms.Config = config.GetGameConfig()
	}
	return ms.Config
}

func (ms *MatchState) random() *rand.Rand {
	if ms.rng == nil {
		ms.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return ms.rng
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userId := seats[seatIndex]
	return userId != "" && !isBotUserId(userId)
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
	publisher ports.MovePublisher
	archive   ports.RoundArchive
}

// newMatchHandler builds a handler whose matches record to the given sinks.
// Either sink may be nil.
func newMatchHandler(publisher ports.MovePublisher, archive ports.RoundArchive) *matchHandler {
	return &matchHandler{publisher: publisher, archive: archive}
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	cfg := config.GetGameConfig()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	state := &MatchState{
		Tick:           time.Now().Unix(),
		Presences:      make(map[string]runtime.Presence),
		App:            app.NewService(rng).WithDealRules(cfg.MaxOnesPerSeat, cfg.DealRetryLimit),
		Config:         cfg,
		OwnerSeat:      -1,
		LastWinnerSeat: cfg.DealerSeat,
		Bots:           make(map[string]*bot.Agent),
		Economy:        NewNakamaEconomyAdapter(nk, cfg.PointsCurrency),
		Recorder:       app.NewRecorder(mh.publisher, mh.archive),
		rng:            rng,
	}

	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace between rounds.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if !matchState.InRound() {
			for _, seat := range matchState.Seats {
				if isBotUserId(seat) {
					hasBot = true
					break
				}
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
		matchState.Presences[p.GetUserId()] = p
		if matchState.SeatOf(p.GetUserId()) != domain.NoSeat {
			continue
		}
		if !mh.seatHuman(matchState, logger, p.GetUserId()) {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

	return matchState
}

// seatHuman places userID in the first empty seat, or between rounds in the
// first seat held by a bot.
func (mh *matchHandler) seatHuman(state *MatchState, logger runtime.Logger, userID string) bool {
	for i, seatUserId := range state.Seats {
		if seatUserId == "" {
			state.Seats[i] = userID
			return true
		}
	}
	if state.InRound() {
		return false
	}
	for i, seatUserId := range state.Seats {
		if isBotUserId(seatUserId) {
			logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserId, userID, i)
			delete(state.Bots, seatUserId)
			state.Seats[i] = userID
			return true
		}
	}
	return false
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := matchState.SeatOf(p.GetUserId())
		if seat == domain.NoSeat {
			continue
		}
		if int(seat) == matchState.OwnerSeat {
			ownerLeft = true
		}
		if matchState.InRound() && matchState.config().BotsEnabled {
			// A round in progress cannot lose a seat; a bot finishes it.
			if mh.placeBot(matchState, logger, seat) {
				continue
			}
		}
		matchState.Seats[seat] = ""
		logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), seat)
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		} else if ownerLeft {
			logger.Debug("MatchLeave: Owner left and no human owner is available.")
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		matchState.abandonRound()
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastMatchState(matchState, dispatcher, logger)

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
		case OpStartRound:
			mh.handleStartRound(ctx, matchState, dispatcher, logger, msg.GetUserId())
		case OpMove:
			mh.handleMove(ctx, matchState, dispatcher, logger, msg.GetUserId(), msg.GetData())
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.config().BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// placeBot seats a pooled bot that is not already at the table. It reports
// false, leaving the seat untouched, when the pool is exhausted.
func (mh *matchHandler) placeBot(state *MatchState, logger runtime.Logger, seat domain.Seat) bool {
	identity, ok := bot.FreeIdentity(int(seat), func(userID string) bool {
		return state.SeatOf(userID) != domain.NoSeat
	})
	if !ok {
		logger.Error("placeBot: No free bot identity for seat %d", seat)
		return false
	}
	state.Seats[seat] = identity.UserID
	mh.ensureAgent(state, logger, identity.UserID, seat)
	logger.Info("placeBot: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, seat)
	return true
}

// ensureAgent returns the agent for botID, creating it when missing.
func (mh *matchHandler) ensureAgent(state *MatchState, logger runtime.Logger, botID string, seat domain.Seat) *bot.Agent {
	if agent, ok := state.Bots[botID]; ok && agent.Seat == seat {
		return agent
	}
	level, err := bot.ParseLevel(state.config().BotLevel)
	if err != nil {
		logger.Warn("ensureAgent: %v, using %s", err, bot.BotLevelRule)
		level = bot.BotLevelRule
	}
	agent, err := bot.NewAgentFor(botID, seat, level, state.random())
	if err != nil {
		logger.Error("ensureAgent: Failed to create bot agent for %s: %v", botID, err)
		return nil
	}
	state.Bots[botID] = agent
	return agent
}

func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	cfg := state.config()

	// 1. Auto-fill the table with bots if a lone human has waited long enough.
	if !state.InRound() {
		if state.GetHumanPlayerCount() == 1 && state.GetOpenSeatsCount() > 0 {
			if state.LastSinglePlayerTick == 0 {
				state.LastSinglePlayerTick = state.Tick
				logger.Debug("processBots: Single player detected, starting auto-fill timer.")
			}

			if state.Tick-state.LastSinglePlayerTick >= int64(cfg.BotAutoFillDelaySeconds) {
				for i, seat := range state.Seats {
					if seat == "" {
						mh.placeBot(state, logger, domain.Seat(i))
					}
				}
				mh.updateLabel(state, dispatcher, logger)
				mh.broadcastMatchState(state, dispatcher, logger)
				state.LastSinglePlayerTick = 0
			}
		} else {
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Handle bot turns in-round.
	turn := state.Round.Turn()
	currentUserID := state.Seats[turn]
	if !isBotUserId(currentUserID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := cfg.BotMinDelaySec
		if spread := cfg.BotMaxDelaySec - cfg.BotMinDelaySec; spread > 0 {
			delay += state.random().Intn(spread + 1)
		}
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s (seat %d) will act at tick %d (current %d)", currentUserID, turn, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent := mh.ensureAgent(state, logger, currentUserID, turn)
	if agent == nil {
		return
	}
	move, err := agent.Play(state.Round)
	if err != nil {
		logger.Error("processBots: Bot %s failed to calculate move: %v", currentUserID, err)
		return
	}
	events, err := state.App.ApplyMove(state.Round, turn, move)
	if err != nil {
		logger.Error("processBots: Bot %s chose %v: %v", currentUserID, move, err)
		return
	}
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func (mh *matchHandler) handleStartRound(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string) {
	senderSeat := state.SeatOf(senderID)
	logger.Info("StartRound: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if int(senderSeat) != state.OwnerSeat {
		logger.Warn("StartRound: User %s tried to start a round but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeNotYourTurn, "only the match owner can start a round")
		return
	}
	if state.InRound() {
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, "round already in progress")
		return
	}
	if state.GetOpenSeatsCount() > 0 {
		logger.Warn("StartRound: Cannot start with %d players. Need %d.", state.GetOccupiedSeatCount(), domain.NumSeats)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, "all four seats must be filled")
		return
	}

	dealer := domain.Seat(state.LastWinnerSeat)
	if !dealer.Valid() {
		dealer = domain.Seat(state.config().DealerSeat)
	}
	round, events, err := state.App.StartRound(dealer)
	if err != nil {
		logger.Error("StartRound: Failed to start round: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, err.Error())
		return
	}

	mh.beginRound(state, logger, round)
	mh.updateLabel(state, dispatcher, logger)
	mh.dispatchEvents(ctx, state, dispatcher, logger, events)

	logger.Info("StartRound: Round %s started, dealer seat %d.", round.ID(), dealer)
}

// beginRound installs round and feeds every applied move to the bot agents.
func (mh *matchHandler) beginRound(state *MatchState, logger runtime.Logger, round *domain.Round) {
	state.Round = round
	state.BotWaitUntil = 0
	for i, userID := range state.Seats {
		if isBotUserId(userID) {
			mh.ensureAgent(state, logger, userID, domain.Seat(i))
		}
	}
	round.Observe(func(seat domain.Seat, move domain.Move) {
		for _, agent := range state.Bots {
			seen := move
			if agent.Seat != seat {
				seen = domain.Public(move)
			}
			agent.ObserveMove(round, seat, seen)
		}
	})
}

func (mh *matchHandler) handleMove(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID string, data []byte) {
	seat := state.SeatOf(senderID)

	move, err := decodeMove(data)
	if err != nil {
		logger.Warn("handleMove: Invalid move from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, ErrCodeBadRequest, err.Error())
		return
	}

	events, err := state.App.ApplyMove(state.Round, seat, move)
	if err != nil {
		logger.Warn("handleMove: User %s (seat %d) failed to play %v: %v", senderID, seat, move, err)
		mh.sendError(state, dispatcher, logger, senderID, errorCode(err), err.Error())
		return
	}

	mh.dispatchEvents(ctx, state, dispatcher, logger, events)
}

func errorCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrIllegalMove):
		return ErrCodeIllegalMove
	case errors.Is(err, app.ErrNoRound), errors.Is(err, app.ErrRoundFinished):
		return ErrCodeRoundMissing
	case errors.Is(err, app.ErrUnknownSeat):
		return ErrCodeNotYourTurn
	default:
		return ErrCodeBadRequest
	}
}

// dispatchEvents sends events to clients, records them and settles a
// finished round.
func (mh *matchHandler) dispatchEvents(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}

	if err := state.Recorder.Record(ctx, events); err != nil {
		logger.Error("dispatchEvents: Failed to record events: %v", err)
	}

	for _, ev := range events {
		ended, ok := ev.Payload.(app.RoundEndedPayload)
		if !ok {
			continue
		}
		mh.settle(ctx, state, logger, ended)
		state.LastWinnerSeat = int(ended.Result.Winner)
		state.BotWaitUntil = 0
		mh.updateLabel(state, dispatcher, logger)
	}
}

// settle credits the winning team's human seats with the round's points.
func (mh *matchHandler) settle(ctx context.Context, state *MatchState, logger runtime.Logger, ended app.RoundEndedPayload) {
	if state.Economy == nil || ended.Result.Points == 0 {
		return
	}
	updates := make([]ports.WalletUpdate, 0, 2)
	for _, seat := range ended.Result.Team.Seats() {
		userID := state.Seats[seat]
		if userID == "" || isBotUserId(userID) {
			continue
		}
		updates = append(updates, ports.WalletUpdate{
			UserID: userID,
			Amount: int64(ended.Result.Points),
			Metadata: map[string]interface{}{
				"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
				"round_id": ended.RoundID,
				"reason":   "round_win",
			},
		})
	}
	if err := state.Economy.UpdateBalances(ctx, updates); err != nil {
		logger.Error("settle: Failed to update balances: %v", err)
	}
}

// broadcastEvent converts an app event and sends it to its recipients.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	opCode, body, err := eventMessage(ev)
	if err != nil {
		logger.Warn("broadcastEvent: %v", err)
		return
	}
	bytes, err := proto.Marshal(body)
	if err != nil {
		logger.Error("Failed to marshal event %v: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, seat := range ev.Recipients {
			if p, ok := state.Presences[state.Seats[seat]]; ok {
				recipients = append(recipients, p)
			}
		}
		// Private events for bots go nowhere.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("broadcastEvent: Failed to send %v: %v", ev.Kind, err)
	}
}

// snapshot builds the match state as seen by userID.
func snapshot(state *MatchState, userID string) map[string]any {
	players := make([]any, 0, domain.NumSeats)
	for i, id := range state.Seats {
		if id == "" {
			continue
		}
		displayName := id
		if p, ok := state.Presences[id]; ok {
			displayName = p.GetUsername()
		} else if name := bot.GetBotDisplayName(id); name != "" {
			displayName = name
		}
		handSize := 0
		if state.Round != nil {
			handSize = state.Round.HandSize(domain.Seat(i))
		}
		players = append(players, map[string]any{
			"user_id":      id,
			"seat":         i,
			"is_owner":     i == state.OwnerSeat,
			"is_bot":       isBotUserId(id),
			"display_name": displayName,
			"hand_size":    handSize,
		})
	}
	seats := make([]any, 0, domain.NumSeats)
	for _, id := range state.Seats {
		seats = append(seats, id)
	}

	out := map[string]any{
		"seats":      seats,
		"owner_seat": state.OwnerSeat,
		"tick":       state.Tick,
		"players":    players,
		"in_round":   state.InRound(),
	}
	if state.Round != nil {
		out["round"] = viewToMap(app.View(state.Round, state.SeatOf(userID)))
	}
	return out
}

// broadcastMatchState sends every connected player their own view of the match.
func (mh *matchHandler) broadcastMatchState(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	for userID, p := range state.Presences {
		body, err := structpb.NewStruct(snapshot(state, userID))
		if err != nil {
			logger.Error("broadcastMatchState: Failed to build snapshot: %v", err)
			return
		}
		bytes, err := proto.Marshal(body)
		if err != nil {
			logger.Error("broadcastMatchState: Failed to marshal snapshot: %v", err)
			return
		}
		if err := dispatcher.BroadcastMessage(OpMatchState, bytes, []runtime.Presence{p}, nil, true); err != nil {
			logger.Warn("broadcastMatchState: Failed to send to %s: %v", userID, err)
		}
	}
}

// sendError sends an error event to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}
	body, err := structpb.NewStruct(map[string]any{"code": code, "message": message})
	if err != nil {
		logger.Error("Failed to build error event: %v", err)
		return
	}
	bytes, err := proto.Marshal(body)
	if err != nil {
		logger.Error("Failed to marshal error event: %v", err)
		return
	}
	dispatcher.BroadcastMessage(OpError, bytes, []runtime.Presence{presence}, nil, true)
}

// matchLabel renders the JSON label the quick-match query filters on.
func matchLabel(state *MatchState) (string, error) {
	phase := labelStateLobby
	if state.InRound() {
		phase = labelStatePlaying
	}
	open := state.GetOpenSeatsCount()
	if !state.InRound() {
		// Bots give their seats up to humans between rounds.
		for _, id := range state.Seats {
			if isBotUserId(id) {
				open++
			}
		}
	}
	label, err := structpb.NewStruct(map[string]any{
		"game":  labelGame,
		"open":  open,
		"phase": phase,
	})
	if err != nil {
		return "", err
	}
	bytes, err := (&protojson.MarshalOptions{EmitUnpopulated: true}).Marshal(label)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated, grace %d seconds", graceSeconds)
	if matchState, ok := state.(*MatchState); ok {
		matchState.abandonRound()
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
