package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/rtapi"
	"github.com/heroiclabs/nakama-go/v2"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServerKey = "defaultkey"
	HttpKey   = "defaulthttpkey"
	Host      = "127.0.0.1"
	Port      = 7350
)

// inbox buffers match data so a test can wait for an op code that arrived
// before it started waiting.
type inbox struct {
	mu       sync.Mutex
	messages []*rtapi.MatchData
	notify   chan struct{}
}

func newInbox() *inbox {
	return &inbox{notify: make(chan struct{}, 1)}
}

func (in *inbox) push(data *rtapi.MatchData) {
	in.mu.Lock()
	in.messages = append(in.messages, data)
	in.mu.Unlock()
	select {
	case in.notify <- struct{}{}:
	default:
	}
}

// take removes and returns the oldest message with opCode.
func (in *inbox) take(opCode int64) *rtapi.MatchData {
	in.mu.Lock()
	defer in.mu.Unlock()
	for i, m := range in.messages {
		if m.OpCode == opCode {
			in.messages = append(in.messages[:i], in.messages[i+1:]...)
			return m
		}
	}
	return nil
}

type TestClient struct {
	Client  *nakama.Client
	Session *nakama.Session
	Socket  *nakama.Socket
	UserID  string

	inbox *inbox
}

func NewTestClient(t *testing.T) *TestClient {
	client := nakama.NewClient(ServerKey, Host, Port, false)

	deviceID := fmt.Sprintf("test_device_%d", time.Now().UnixNano())
	session, err := client.AuthenticateDevice(context.Background(), deviceID, true, "")
	if err != nil {
		t.Fatalf("Failed to authenticate: %v", err)
	}

	tc := &TestClient{
		Client:  client,
		Session: session,
		Socket:  client.NewSocket(),
		UserID:  session.UserId,
		inbox:   newInbox(),
	}
	tc.Socket.OnMatchData = tc.inbox.push

	if err := tc.Socket.Connect(context.Background(), session, true); err != nil {
		t.Fatalf("Failed to connect socket: %v", err)
	}
	return tc
}

func (tc *TestClient) Close() {
	if tc.Socket != nil {
		tc.Socket.Close()
	}
}

// QuickMatch calls the quick_match RPC and joins the returned match.
func (tc *TestClient) QuickMatch(t *testing.T) string {
	rpc, err := tc.Client.RpcFunc(context.Background(), tc.Session, "quick_match", "{}")
	if err != nil {
		t.Fatalf("RPC quick_match failed: %v", err)
	}

	var resp struct {
		MatchID string `json:"match_id"`
		IsNew   bool   `json:"is_new"`
	}
	if err := json.Unmarshal([]byte(rpc.Payload), &resp); err != nil || resp.MatchID == "" {
		t.Fatalf("RPC quick_match returned %q: %v", rpc.Payload, err)
	}

	tc.Join(t, resp.MatchID)
	return resp.MatchID
}

func (tc *TestClient) Join(t *testing.T, matchID string) {
	if _, err := tc.Socket.JoinMatch(context.Background(), nil, matchID, nil); err != nil {
		t.Fatalf("Failed to join match %s: %v", matchID, err)
	}
}

// Send encodes body as a structpb.Struct and sends it with opCode.
func (tc *TestClient) Send(t *testing.T, matchID string, opCode int64, body *structpb.Struct) {
	data, err := proto.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal op %d: %v", opCode, err)
	}
	if _, err := tc.Socket.SendMatchState(context.Background(), matchID, opCode, data, nil); err != nil {
		t.Fatalf("Failed to send op %d: %v", opCode, err)
	}
}

// Wait returns the next unread message with opCode, decoded.
func (tc *TestClient) Wait(t *testing.T, opCode int64, timeout time.Duration) *structpb.Struct {
	deadline := time.After(timeout)
	for {
		if m := tc.inbox.take(opCode); m != nil {
			body := &structpb.Struct{}
			if err := proto.Unmarshal(m.Data, body); err != nil {
				t.Fatalf("Failed to decode op %d: %v", opCode, err)
			}
			return body
		}
		select {
		case <-tc.inbox.notify:
		case <-time.After(50 * time.Millisecond):
		case <-deadline:
			t.Fatalf("Timeout waiting for OpCode %d", opCode)
			return nil
		}
	}
}
