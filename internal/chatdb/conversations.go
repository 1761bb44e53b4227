package chatdb

// Conversation identifies an exportable chat: a direct contact or a group.
type Conversation struct {
	ID           int64
	Name         string // local display name
	DisplayName  string // profile display name, may be empty
	IsGroup      bool
	MessageCount int64
}

// Stats holds database-wide totals shown before selection.
type Stats struct {
	Contacts int64
	Groups   int64
	Messages int64
}

// Contacts returns all non-deleted contacts with their message counts.
func (db *DB) Contacts() ([]Conversation, error) {
	rows, err := db.Query(`
		SELECT c.contact_id, c.local_display_name,
			COALESCE(cp.display_name, ''),
			(SELECT COUNT(*) FROM chat_items
			 WHERE contact_id = c.contact_id
			   AND item_content LIKE '%MsgContent%') AS msg_count
		FROM contacts c
		LEFT JOIN contact_profiles cp ON c.contact_profile_id = cp.contact_profile_id
		WHERE c.deleted = 0
		ORDER BY c.local_display_name`)
	if err != nil {
		return nil, dataErr("list contacts", err)
	}
	defer func() { _ = rows.Close() }()

	var convs []Conversation
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayName, &c.MessageCount); err != nil {
			return nil, dataErr("scan contact", err)
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr("list contacts", err)
	}
	return convs, nil
}

// Groups returns all groups with their message counts.
func (db *DB) Groups() ([]Conversation, error) {
	rows, err := db.Query(`
		SELECT g.group_id, g.local_display_name,
			COALESCE(gp.display_name, ''),
			(SELECT COUNT(*) FROM chat_items
			 WHERE group_id = g.group_id
			   AND item_content LIKE '%MsgContent%') AS msg_count
		FROM groups g
		LEFT JOIN group_profiles gp ON g.group_profile_id = gp.group_profile_id
		ORDER BY g.local_display_name`)
	if err != nil {
		return nil, dataErr("list groups", err)
	}
	defer func() { _ = rows.Close() }()

	var convs []Conversation
	for rows.Next() {
		var c Conversation
		c.IsGroup = true
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayName, &c.MessageCount); err != nil {
			return nil, dataErr("scan group", err)
		}
		convs = append(convs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, dataErr("list groups", err)
	}
	return convs, nil
}

// GetStats returns database-wide totals.
func (db *DB) GetStats() (*Stats, error) {
	var s Stats
	if err := db.QueryRow(`SELECT COUNT(*) FROM contacts WHERE deleted = 0`).Scan(&s.Contacts); err != nil {
		return nil, dataErr("count contacts", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM groups`).Scan(&s.Groups); err != nil {
		return nil, dataErr("count groups", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM chat_items WHERE item_content LIKE '%MsgContent%'`).Scan(&s.Messages); err != nil {
		return nil, dataErr("count messages", err)
	}
	return &s, nil
}
