package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"sync"

	"github.com/heroiclabs/nakama-common/runtime"

	"goita/internal/domain"
)

// BotIdentity is one account in the bot pool.
type BotIdentity struct {
	DeviceID    string `json:"device_id"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Level       string `json:"level"` // a BotLevel name or "easy"/"medium"/"hard"
	AvatarIndex int    `json:"avatar_index"`
}

// DefaultPoolSize is the number of generated identities installed when no
// identity file is available.
const DefaultPoolSize = 8

// identityPool keeps the pool in file order; byID holds only identities that
// already have a user id.
type identityPool struct {
	list []BotIdentity
	byID map[string]int
}

func newIdentityPool(list []BotIdentity) *identityPool {
	p := &identityPool{list: list, byID: make(map[string]int, len(list))}
	for i, identity := range list {
		if identity.UserID != "" {
			p.byID[identity.UserID] = i
		}
	}
	return p
}

var (
	poolMu        sync.RWMutex
	pool          = newIdentityPool(nil)
	loadOnce      sync.Once
	provisionOnce sync.Once
	loadErr       error
)

// parseIdentities decodes an identity file. Every level must be one
// ParseLevel understands and user ids must be unique.
func parseIdentities(data []byte) ([]BotIdentity, error) {
	var list []BotIdentity
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bot identities: %w", err)
	}
	seen := make(map[string]bool, len(list))
	for _, identity := range list {
		if _, err := ParseLevel(identity.Level); err != nil {
			return nil, fmt.Errorf("bot %q: %w", identity.Username, err)
		}
		if identity.UserID == "" {
			continue
		}
		if seen[identity.UserID] {
			return nil, fmt.Errorf("duplicate bot user id %q", identity.UserID)
		}
		seen[identity.UserID] = true
	}
	return list, nil
}

// LoadIdentities loads the bot profiles from the given path, once.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}
		list, err := parseIdentities(data)
		if err != nil {
			loadErr = err
			return
		}
		setPool(list)
	})
	return loadErr
}

// UseDefaultIdentities installs n generated bot profiles. They have no
// device id, so ProvisionBots leaves them alone.
func UseDefaultIdentities(n int) {
	list := make([]BotIdentity, 0, n)
	for i := range n {
		list = append(list, BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", i),
			Username:    fmt.Sprintf("bot%d", i),
			DisplayName: fmt.Sprintf("AI Player %d", i+1),
		})
	}
	setPool(list)
}

func setPool(list []BotIdentity) {
	poolMu.Lock()
	defer poolMu.Unlock()
	pool = newIdentityPool(list)
}

// ProvisionBots creates or refreshes the Nakama account behind every pooled
// identity that has a device id, tagging it with is_bot and its level.
func ProvisionBots(ctx context.Context, nk runtime.NakamaModule, logger runtime.Logger) error {
	provisionOnce.Do(func() {
		poolMu.RLock()
		list := append([]BotIdentity(nil), pool.list...)
		poolMu.RUnlock()

		for i := range list {
			identity := &list[i]
			if identity.DeviceID == "" {
				continue
			}
			userID, username, _, err := nk.AuthenticateDevice(ctx, identity.DeviceID, identity.Username, true)
			if err != nil {
				logger.Error("ProvisionBots: Failed to authenticate bot %s: %v", identity.Username, err)
				continue
			}
			identity.UserID = userID
			identity.Username = username

			metadata := map[string]interface{}{
				"is_bot":       true,
				"level":        identity.Level,
				"avatar_index": identity.AvatarIndex,
			}
			if err := nk.AccountUpdateId(ctx, userID, identity.Username, metadata, identity.DisplayName, "", "", "", ""); err != nil {
				logger.Warn("ProvisionBots: Failed to update bot account %s: %v", userID, err)
			}
			logger.Info("ProvisionBots: Bot %s (%s) is ready. Level: %s", identity.DisplayName, userID, identity.Level)
		}
		setPool(list)
	})
	return nil
}

// PoolSize returns the number of known bot identities.
func PoolSize() int {
	poolMu.RLock()
	defer poolMu.RUnlock()
	return len(pool.list)
}

// GetBotIdentity returns an identity for a bot by index (mod pool size).
func GetBotIdentity(index int) BotIdentity {
	poolMu.RLock()
	defer poolMu.RUnlock()
	if len(pool.list) == 0 {
		return BotIdentity{
			UserID:      fmt.Sprintf("bot-%d", index),
			DisplayName: fmt.Sprintf("AI Player %d", index),
		}
	}
	return pool.list[index%len(pool.list)]
}

// FreeIdentity walks the pool from start and returns the first identity
// with a user id that taken rejects.
func FreeIdentity(start int, taken func(userID string) bool) (BotIdentity, bool) {
	poolMu.RLock()
	defer poolMu.RUnlock()
	n := len(pool.list)
	for k := range n {
		identity := pool.list[(start+k)%n]
		if identity.UserID != "" && !taken(identity.UserID) {
			return identity, true
		}
	}
	return BotIdentity{}, false
}

func lookupIdentity(userID string) (BotIdentity, bool) {
	poolMu.RLock()
	defer poolMu.RUnlock()
	i, ok := pool.byID[userID]
	if !ok {
		return BotIdentity{}, false
	}
	return pool.list[i], true
}

// IsBot reports whether the given user ID belongs to the bot pool.
func IsBot(userID string) bool {
	_, ok := lookupIdentity(userID)
	return ok
}

// GetBotDisplayName returns the display name for a bot ID, falling back to
// its username, or "" for non-bots.
func GetBotDisplayName(userID string) string {
	identity, ok := lookupIdentity(userID)
	if !ok {
		return ""
	}
	if identity.DisplayName != "" {
		return identity.DisplayName
	}
	return identity.Username
}

// GetAllBotIDs returns every pooled user id, sorted.
func GetAllBotIDs() []string {
	poolMu.RLock()
	ids := make([]string, 0, len(pool.byID))
	for id := range pool.byID {
		ids = append(ids, id)
	}
	poolMu.RUnlock()
	sort.Strings(ids)
	return ids
}

// NewAgentFor builds an agent for a pooled bot at seat. Identities without a
// level fall back to fallback.
func NewAgentFor(userID string, seat domain.Seat, fallback BotLevel, rng *rand.Rand) (*Agent, error) {
	level := fallback
	if identity, ok := lookupIdentity(userID); ok && identity.Level != "" {
		parsed, err := ParseLevel(identity.Level)
		if err != nil {
			return nil, err
		}
		level = parsed
	}
	brain, err := NewBrain(level, rng)
	if err != nil {
		return nil, err
	}
	return NewAgent(userID, GetBotDisplayName(userID), seat, brain), nil
}
