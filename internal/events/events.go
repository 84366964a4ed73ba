package events

import "strconv"

// Broker topics
const (
	TopicUserEvents = "user_events"
	TopicChatEvents = "chat_events"
)

// UserEvent is published after a user registers
type UserEvent struct {
	Event    string `json:"event"`
	Username string `json:"username"`
}

// ChatEvent is published after a chat is stored
type ChatEvent struct {
	Event  string `json:"event"`
	UserID uint   `json:"user_id"`
	Prompt string `json:"prompt"`
}

// UserCreated builds the create_user record
func UserCreated(username string) UserEvent {
	return UserEvent{Event: "create_user", Username: username}
}

// ChatAdded builds the add_chat record
func ChatAdded(userID uint, prompt string) ChatEvent {
	return ChatEvent{Event: "add_chat", UserID: userID, Prompt: prompt}
}

// ChatKey partitions chat events by owner
func ChatKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
