package entity

import (
	"time"
)

// Space types as reported by the Chat API
const (
	SpaceTypeRoom          = "ROOM"
	SpaceTypeDirectMessage = "DM"

	SpaceTypeSpace     = "SPACE"
	SpaceTypeGroupChat = "GROUP_CHAT"
	SpaceTypeDM        = "DIRECT_MESSAGE"
)

// Space represents a Google Chat space visible to the authenticated user
type Space struct {
	Name        string // spaces/AAAA...
	DisplayName string
	Type        string // deprecated "type" field: ROOM, DM
	SpaceType   string // SPACE, GROUP_CHAT, DIRECT_MESSAGE
	CreateTime  string
	MemberCount int64
}

// IsRoom reports whether the space is a named multi-user room.
// The deprecated type field wins when present.
func (s *Space) IsRoom() bool {
	if s.DisplayName == "" {
		return false
	}
	if s.Type != "" {
		return s.Type == SpaceTypeRoom
	}
	return s.SpaceType == SpaceTypeSpace
}

// SpaceRow is one exported worksheet row
type SpaceRow struct {
	DisplayName string
	SpaceID     string
	CreateTime  string
	MemberCount int64
	UpdatedAt   time.Time
}
