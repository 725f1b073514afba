package service

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/globalgrad/counsellor/internal/counsel/domain"
	"github.com/globalgrad/counsellor/pkg/cryptox"
	"github.com/globalgrad/counsellor/pkg/jwtx"
	"github.com/globalgrad/counsellor/pkg/slogx"
)

// VoiceToken lets a browser join its counsellor room.
type VoiceToken struct {
	Token    string `json:"token"`
	RoomName string `json:"room_name"`
	URL      string `json:"url,omitempty"`
}

type VoiceService struct {
	Keys jwtx.LiveKitKeys
	URL  string
}

// Issue mints a room-join credential for user's stable room.
func (s *VoiceService) Issue(ctx context.Context, user domain.User) (VoiceToken, error) {
	if !s.Keys.Configured() {
		return VoiceToken{}, ErrVoiceUnconfigured
	}

	room := domain.RoomName(user.ID)
	token, err := s.Keys.Mint(strconv.FormatInt(user.ID, 10), user.DisplayName(), jwtx.VideoGrant{
		RoomJoin:       true,
		Room:           room,
		CanPublish:     jwtx.Bool(true),
		CanSubscribe:   jwtx.Bool(true),
		CanPublishData: jwtx.Bool(true),
	}, jwtx.DefaultLiveKitTTL)
	if err != nil {
		return VoiceToken{}, err
	}

	slogx.FromContext(ctx).Debug("voice token issued",
		slog.Int64("user_id", user.ID),
		slog.String("room", room),
		slog.String("token_fp", cryptox.FingerprintToken(token)),
	)
	return VoiceToken{Token: token, RoomName: room, URL: s.URL}, nil
}
