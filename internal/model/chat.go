// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role identifies who produced a chat turn.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "Assistant"
	default:
		return string(r)
	}
}

// =============================================================================
// CHAT TURN
// =============================================================================

// ChatTurn is one entry of the follow-up transcript.
type ChatTurn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// UserTurn creates a user turn stamped now.
func UserTurn(content string) ChatTurn {
	return ChatTurn{Role: RoleUser, Content: content, Timestamp: time.Now()}
}

// BotTurn creates a bot turn stamped now.
func BotTurn(content string) ChatTurn {
	return ChatTurn{Role: RoleBot, Content: content, Timestamp: time.Now()}
}

// IsUser reports whether the turn came from the user.
func (c ChatTurn) IsUser() bool {
	return c.Role == RoleUser
}
