package models

import "time"

// ChatRoomID derives the deterministic room id for a participant pair.
// The id is identical regardless of argument order, which guarantees exactly
// one room per unordered pair without a lookup query.
func ChatRoomID(uidA, uidB string) string {
	if uidA < uidB {
		return uidA + "_" + uidB
	}
	return uidB + "_" + uidA
}

// ChatRoom is a persistent two-party thread keyed by the pair id.
// Participants are stored sorted (UserAID < UserBID) so the pair id and the
// columns always agree.
type ChatRoom struct {
	BaseModel
	UserAID       string     `gorm:"size:80;index" json:"userAId"`
	UserBID       string     `gorm:"size:80;index" json:"userBId"`
	UserAName     string     `gorm:"size:200" json:"userAName"`
	UserBName     string     `gorm:"size:200" json:"userBName"`
	LastMessage   string     `gorm:"type:text" json:"lastMessage"`
	LastUpdatedAt *time.Time `json:"lastUpdatedAt,omitempty"`
	UnreadA       int        `gorm:"default:0" json:"-"`
	UnreadB       int        `gorm:"default:0" json:"-"`

	Messages []ChatMessage `gorm:"foreignKey:RoomID" json:"-"`
}

// HasParticipant reports whether userID is one of the two participants.
func (r *ChatRoom) HasParticipant(userID string) bool {
	return r.UserAID == userID || r.UserBID == userID
}

// OtherParticipant returns the id of the participant opposite userID.
func (r *ChatRoom) OtherParticipant(userID string) string {
	if r.UserAID == userID {
		return r.UserBID
	}
	return r.UserAID
}

// UnreadFor returns the unread counter for userID.
func (r *ChatRoom) UnreadFor(userID string) int {
	if r.UserAID == userID {
		return r.UnreadA
	}
	if r.UserBID == userID {
		return r.UnreadB
	}
	return 0
}

// AddUnread bumps the unread counter for userID by n.
func (r *ChatRoom) AddUnread(userID string, n int) {
	switch userID {
	case r.UserAID:
		r.UnreadA += n
	case r.UserBID:
		r.UnreadB += n
	}
}

// ResetUnread zeroes the unread counter for userID.
func (r *ChatRoom) ResetUnread(userID string) {
	switch userID {
	case r.UserAID:
		r.UnreadA = 0
	case r.UserBID:
		r.UnreadB = 0
	}
}

// NameFor returns the display name stored for userID.
func (r *ChatRoom) NameFor(userID string) string {
	if r.UserAID == userID {
		return r.UserAName
	}
	if r.UserBID == userID {
		return r.UserBName
	}
	return ""
}

// ChatMessage is an append-only message in a room, ordered by creation time.
type ChatMessage struct {
	BaseModel
	RoomID   string `gorm:"size:170;index" json:"roomId"`
	SenderID string `gorm:"size:80;index" json:"senderId"`
	Text     string `gorm:"type:text;not null" json:"text"`
}
