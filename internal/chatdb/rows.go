package chatdb

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/matheus3301/sxport/internal/export"
)

// SenderMe marks rows sent from the local profile.
const SenderMe = "me"

// MessageRows loads every raw message row for one conversation, unordered
// and uninterpreted beyond column mapping. Deliberately mechanical: all
// collapsing, ordering and reference resolution happens downstream.
func (db *DB) MessageRows(conv Conversation) ([]export.RawRow, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if conv.IsGroup {
		rows, err = db.Query(`
			SELECT ci.chat_item_id, ci.item_ts, ci.item_sent, ci.item_text,
				ci.item_deleted, ci.quoted_chat_item_id, ci.shared_msg_id,
				ci.item_content,
				COALESCE(gm.local_display_name, '')
			FROM chat_items ci
			LEFT JOIN group_members gm ON ci.group_member_id = gm.group_member_id
			WHERE ci.group_id = ?
			  AND (ci.item_content LIKE '%rcvMsgContent%' OR ci.item_content LIKE '%sndMsgContent%')`,
			conv.ID)
	} else {
		rows, err = db.Query(`
			SELECT ci.chat_item_id, ci.item_ts, ci.item_sent, ci.item_text,
				ci.item_deleted, ci.quoted_chat_item_id, ci.shared_msg_id,
				ci.item_content,
				'' AS member_name
			FROM chat_items ci
			WHERE ci.contact_id = ?
			  AND (ci.item_content LIKE '%rcvMsgContent%' OR ci.item_content LIKE '%sndMsgContent%')`,
			conv.ID)
	}
	if err != nil {
		return nil, dataErr("load message rows", err)
	}
	defer func() { _ = rows.Close() }()

	loaded := []export.RawRow{}
	for rows.Next() {
		var (
			id         int64
			ts         string
			sent       bool
			text       sql.NullString
			deleted    sql.NullInt64
			quotedID   sql.NullInt64
			editGroup  sql.NullString
			content    sql.NullString
			memberName string
		)
		if err := rows.Scan(&id, &ts, &sent, &text, &deleted, &quotedID, &editGroup, &content, &memberName); err != nil {
			return nil, dataErr("scan message row", err)
		}

		row := export.RawRow{
			ID:        id,
			Sender:    senderName(sent, conv, memberName),
			Text:      text.String,
			Timestamp: parseItemTS(ts),
			QuotedID:  quotedID.Int64,
			EditGroup: editGroup.String,
			Deleted:   deleted.Int64 != 0,
		}
		if tag := contentTag(content.String); tag != "" && tag != "text" {
			row.Media = &export.MediaRef{
				Kind:    export.MediaKindFromTag(tag),
				Caption: text.String,
			}
		}
		loaded = append(loaded, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr("load message rows", err)
	}
	return loaded, nil
}

func senderName(sent bool, conv Conversation, memberName string) string {
	if sent {
		return SenderMe
	}
	if conv.IsGroup {
		if memberName != "" {
			return memberName
		}
		return export.UnknownSender
	}
	if conv.DisplayName != "" {
		return conv.DisplayName
	}
	return conv.Name
}

// itemContentEnvelope mirrors the JSON stored in chat_items.item_content.
type itemContentEnvelope struct {
	Rcv *contentBody `json:"rcvMsgContent"`
	Snd *contentBody `json:"sndMsgContent"`
}

type contentBody struct {
	MsgContent struct {
		Type string `json:"type"`
	} `json:"msgContent"`
}

// contentTag extracts the msgContent type tag ("text", "image", ...) from
// the item_content JSON. Unparseable content maps to plain text.
func contentTag(raw string) string {
	if raw == "" {
		return "text"
	}
	var env itemContentEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return "text"
	}
	body := env.Rcv
	if body == nil {
		body = env.Snd
	}
	if body == nil || body.MsgContent.Type == "" {
		return "text"
	}
	return body.MsgContent.Type
}

var tsLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseItemTS parses the item_ts column. SimpleX stores ISO 8601 text,
// with or without fractional seconds and zone. Layouts without a zone are
// treated as UTC. Unparseable values yield the zero time; the row still
// loads.
func parseItemTS(ts string) time.Time {
	for _, layout := range tsLayouts {
		if t, err := time.ParseInLocation(layout, ts, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
