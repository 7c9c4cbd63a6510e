package http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmarkelov/supportchat-server/internal/core"
	"github.com/dmarkelov/supportchat-server/internal/proto"
)

// dispatch maps one inbound frame onto the core operation it requests.
// The payload field names are the wire contract with the client.
func (h *WSHandler) dispatch(ctx context.Context, client *core.Client, inbound proto.Inbound) error {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return err
		}
		if join.Room == "" {
			return fmt.Errorf("join: room is required")
		}
		h.registry.Join(client, join.Room)
		return nil

	case proto.InboundTypeMessage:
		var msg proto.MessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return err
		}
		return h.router.RouteText(ctx, msg.Sender, msg.Receiver, msg.Text)

	case proto.InboundTypeAdminReply:
		var reply proto.AdminReplyData
		if err := json.Unmarshal(inbound.Data, &reply); err != nil {
			return err
		}
		return h.router.RouteAdminReply(ctx, reply.To, reply.Text)

	case proto.InboundTypeImage:
		var img proto.ImageData
		if err := json.Unmarshal(inbound.Data, &img); err != nil {
			return err
		}
		return h.router.RouteImage(ctx, img.Sender, img.Receiver, img.URL)

	case proto.InboundTypeLoadHistory:
		var load proto.LoadHistoryData
		if err := json.Unmarshal(inbound.Data, &load); err != nil {
			return err
		}
		return h.replayer.Replay(ctx, client, load.Username)

	default:
		return fmt.Errorf("unknown event type %q", inbound.Type)
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeMessage,
			Data: proto.EventMessage{
				User:      event.User,
				To:        event.To,
				Text:      event.Text,
				Timestamp: event.Timestamp.Format("15:04"),
				IsImage:   event.IsImage,
			},
		}
	case core.EventHistory:
		messages := make([]proto.HistoryMessage, 0, len(event.History))
		for _, entry := range event.History {
			messages = append(messages, proto.HistoryMessage{
				User:    entry.User,
				Text:    entry.Text,
				IsImage: entry.IsImage,
			})
		}
		return proto.Outbound{
			Type: proto.OutboundTypeHistory,
			Data: proto.EventHistory{Messages: messages},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeMessage}
	}
}
