// Package livekit connects the voice agent to a LiveKit server. Room
// lifecycle comes from signed webhooks and data packets go out through the
// RoomService Twirp API, so the worker never holds a media connection.
package livekit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/globalgrad/counsellor/pkg/jwtx"
)

const sendDataPath = "/twirp/livekit.RoomService/SendData"

// adminTokenTTL bounds the lifetime of per-request server tokens.
const adminTokenTTL = 5 * time.Minute

// Publisher delivers data packets to everyone in a room.
type Publisher interface {
	SendData(ctx context.Context, room, topic string, payload []byte) error
}

// RoomService is a minimal RoomService client.
type RoomService struct {
	baseURL string
	keys    jwtx.LiveKitKeys
	client  *http.Client
}

// NewRoomService accepts the same ws(s):// URL handed to browsers.
func NewRoomService(url string, keys jwtx.LiveKitKeys, client *http.Client) *RoomService {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &RoomService{baseURL: HTTPURL(url), keys: keys, client: client}
}

// HTTPURL maps a ws:// or wss:// server URL onto its HTTP API base.
func HTTPURL(url string) string {
	url = strings.TrimRight(strings.TrimSpace(url), "/")
	switch {
	case strings.HasPrefix(url, "wss://"):
		return "https://" + strings.TrimPrefix(url, "wss://")
	case strings.HasPrefix(url, "ws://"):
		return "http://" + strings.TrimPrefix(url, "ws://")
	default:
		return url
	}
}

type sendDataRequest struct {
	Room  string `json:"room"`
	Data  []byte `json:"data"`
	Kind  string `json:"kind"`
	Topic string `json:"topic,omitempty"`
}

type twirpError struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// SendData publishes a reliable packet on topic.
func (c *RoomService) SendData(ctx context.Context, room, topic string, payload []byte) error {
	token, err := c.keys.Mint("", "", jwtx.VideoGrant{RoomAdmin: true, Room: room}, adminTokenTTL)
	if err != nil {
		return fmt.Errorf("livekit: mint admin token: %w", err)
	}

	body, err := json.Marshal(sendDataRequest{Room: room, Data: payload, Kind: "RELIABLE", Topic: topic})
	if err != nil {
		return fmt.Errorf("livekit: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendDataPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("livekit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("livekit: send data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		var te twirpError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &te) == nil && te.Code != "" {
			return fmt.Errorf("livekit: send data: %s: %s", te.Code, te.Msg)
		}
		return fmt.Errorf("livekit: send data: unexpected status %d", resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
